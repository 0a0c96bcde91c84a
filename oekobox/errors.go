package oekobox

import (
	"errors"
	"fmt"
)

// Every failed API call surfaces as exactly one of the error kinds below.
// Callers branch with errors.As or the Is* helpers; raw net/http errors never
// escape the client.

// AuthenticationError reports rejected credentials or a rejected session
// (HTTP 401/403 or an authentication result code in the response body).
type AuthenticationError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return "authentication failed: " + e.Message
}

// ConnectionError reports a network failure before any response was obtained,
// including timeouts and cancellation. It wraps the transport error.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection error: %s: %v", e.Message, e.Err)
	}
	return "connection error: " + e.Message
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError reports any other non-2xx response or non-ok API result. It keeps
// the original status code and the server-provided message for caller-side
// branching.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (HTTP %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// ValidationError reports a precondition rejected before any request was
// issued, or a response whose shape did not match the documented format.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return "validation error: " + e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsConnection reports whether err is a network/timeout failure.
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsAPI reports whether err is a generic API failure.
func IsAPI(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Result codes of the vendor API that signal rejected credentials.
var authResultCodes = map[string]bool{
	"no_such_user":   true,
	"wrong_password": true,
	"blocked":        true,
	"duplicate_user": true,
}

// Result codes that signal a rejected/empty request rather than a failure.
var validationResultCodes = map[string]bool{
	"empty":   true,
	"no_data": true,
}

// resultError maps an API-level result code (carried in an HTTP 200 body) to
// the matching error kind.
func resultError(code string, statusCode int) error {
	switch {
	case authResultCodes[code]:
		return &AuthenticationError{StatusCode: statusCode, Code: code, Message: "authentication failed: " + code}
	case validationResultCodes[code]:
		return &ValidationError{Message: "api rejected request: " + code}
	default:
		return &APIError{StatusCode: statusCode, Code: code, Message: "api returned result " + code}
	}
}
