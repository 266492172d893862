package finder

import (
	"errors"
	"fmt"
)

// Error codes for categorizing finder errors
const (
	ErrCodeTransport = "TRANSPORT_ERROR"
	ErrCodeAPI       = "API_ERROR"
)

// Error is a categorized error returned by a finder.
type Error struct {
	Code    string // Error category code
	API     string // Name of the API that failed, e.g. "nibl"
	Message string // Message reported by the API (API errors only)
	Cause   error  // Underlying error (transport errors only)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeAPI:
		return fmt.Sprintf("the %s API returned an error: %s", e.API, e.Message)
	case ErrCodeTransport:
		if e.Cause != nil {
			return fmt.Sprintf("request to %s failed: %v", e.API, e.Cause)
		}
		return fmt.Sprintf("request to %s failed", e.API)
	default:
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.API, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is().
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Common error instances for comparison
var (
	ErrTransport = &Error{Code: ErrCodeTransport}
	ErrAPI       = &Error{Code: ErrCodeAPI}
)

// NewTransportError wraps a network, HTTP or decoding failure.
func NewTransportError(api string, cause error) *Error {
	return &Error{
		Code:  ErrCodeTransport,
		API:   api,
		Cause: cause,
	}
}

// NewAPIError reports a response whose status was not OK.
func NewAPIError(api, message string) *Error {
	return &Error{
		Code:    ErrCodeAPI,
		API:     api,
		Message: message,
	}
}

// IsTransportError returns whether the error is a transport error.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsAPIError returns whether the error is an API error.
func IsAPIError(err error) bool {
	return errors.Is(err, ErrAPI)
}
