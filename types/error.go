package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the library.
type ErrorCode string

// Caller-side error codes
const (
	ErrPrecondition ErrorCode = "PRECONDITION_FAILED"
)

// Upstream error codes
const (
	ErrUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrRateLimited     ErrorCode = "RATE_LIMITED"
	ErrModelOverloaded ErrorCode = "MODEL_OVERLOADED"
	ErrUpstream        ErrorCode = "UPSTREAM_ERROR"
)

// Response-side error codes
const (
	ErrDecode      ErrorCode = "DECODE_FAILED"
	ErrValidation  ErrorCode = "VALIDATION_FAILED"
	ErrCardinality ErrorCode = "CARDINALITY_TOO_FEW"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Path       string    `json:"path,omitempty"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithPath sets the field path the error refers to.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithProvider sets the provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// Code extracts the error code from an error, unwrapping as needed.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsPrecondition reports whether err is a caller-input error raised before
// any network call.
func IsPrecondition(err error) bool {
	return Code(err) == ErrPrecondition
}

// IsUpstream reports whether err came from the completion capability itself
// (transport, auth, rate limiting, overload).
func IsUpstream(err error) bool {
	switch Code(err) {
	case ErrUnauthorized, ErrRateLimited, ErrModelOverloaded, ErrUpstream:
		return true
	}
	return false
}

// IsDecode reports whether err marks structured-argument text that failed to
// parse as JSON.
func IsDecode(err error) bool {
	return Code(err) == ErrDecode
}

// IsValidation reports whether err marks a schema mismatch in a parsed
// response.
func IsValidation(err error) bool {
	return Code(err) == ErrValidation
}

// IsCardinality reports whether err marks a list result with fewer elements
// than the declared minimum.
func IsCardinality(err error) bool {
	return Code(err) == ErrCardinality
}
