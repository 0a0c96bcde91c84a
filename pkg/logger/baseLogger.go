package logger

import (
	"fmt"
	"io"
	"sync"
)

// BaseLogger writes prefixed lines to a writer. A nil writer discards output.
type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
	}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return
	}
	message := fmt.Sprintf(l.prefix+" "+format, v...)
	fmt.Fprintln(l.writer, message)
}

// WithPrefix derives a logger with an extra prefix segment, sharing the
// writer.
func (l *BaseLogger) WithPrefix(extraPrefix string) *BaseLogger {
	return &BaseLogger{
		writer: l.writer,
		prefix: l.prefix + " " + extraPrefix,
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}
