package metrics

import "sync/atomic"

// RequestTally counts outgoing requests per client instance, independent of
// the process-wide Prometheus registry.
type RequestTally struct {
	IssuedCount  atomic.Int32
	ErroredCount atomic.Int32
}
