package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory defines the normalized failure taxonomy for API calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the caller's deadline expired
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the API returned a body we could not decode
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates a transport failure or non-success status
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the requested code does not exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates a failure on our side (bad URL, cancelled context)
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps an API failure with its category and HTTP status, if any.
type Error struct {
	Category   ErrorCategory
	Operation  string
	StatusCode int
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("countries %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("countries %s [%s]: %s", e.Operation, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(category ErrorCategory, operation, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ErrorInternal
}

// Classify maps a raw HTTP outcome onto the taxonomy. It returns nil for a
// 2xx or 3xx response without a transport error.
func Classify(operation string, status int, err error) error {
	if err != nil {
		return transportError(operation, err)
	}
	if status >= 200 && status < 400 {
		return nil
	}
	e := newError(statusCategory(status), operation, fmt.Sprintf("status %d", status), nil)
	e.StatusCode = status
	return e
}

func transportError(operation string, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(ErrorTimeout, operation, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return newError(ErrorInternal, operation, "request cancelled", err)
	default:
		return newError(ErrorProviderOutage, operation, "transport failure", err)
	}
}

func statusCategory(status int) ErrorCategory {
	switch {
	case status == http.StatusNotFound:
		return ErrorNotFound
	case status == http.StatusTooManyRequests:
		return ErrorRateLimited
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return ErrorTimeout
	default:
		return ErrorProviderOutage
	}
}

// IsRetryable reports whether a later attempt could succeed. The client never
// retries on its own; load summaries count retryable failures with it.
func IsRetryable(err error) bool {
	switch GetCategory(err) {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited:
		return true
	default:
		return false
	}
}
