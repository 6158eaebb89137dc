package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid tmdb configuration")

// RequestFailedError is returned when TMDB answers with a non-2xx status
type RequestFailedError struct {
	Op         string
	StatusCode int
	Status     string
	// Message is the service-supplied status message when one was sent,
	// otherwise the HTTP status text or a generic fallback.
	Message string
}

// Error implements the error interface
func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("failed to %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestFailedError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestFailedError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// TransportError is returned when no usable response was received
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRequestFailed reports whether err is, or wraps, a *RequestFailedError
func IsRequestFailed(err error) bool {
	var reqErr *RequestFailedError
	return errors.As(err, &reqErr)
}

// IsTransport reports whether err is, or wraps, a *TransportError
func IsTransport(err error) bool {
	var trErr *TransportError
	return errors.As(err, &trErr)
}
