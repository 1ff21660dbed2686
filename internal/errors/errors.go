// Package errors provides standardized domain errors with codes for the Idea Board API.
//
// Usage:
//
//	// In services - return typed errors
//	if title == "" {
//	    return errors.Validation("title is required")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrStorageUnavailable) {
//	    // surface a retryable failure
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeValidation:
//	        ...
//	    case errors.CodeStorageRejected:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidation         Code = "VALIDATION"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeStorageRejected    Code = "STORAGE_REJECTED"
	CodeServerOnly         Code = "SERVER_ONLY"
	CodeInvalidIdentity    Code = "INVALID_IDENTITY"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case CodeStorageRejected:
		return http.StatusBadGateway
	case CodeServerOnly, CodeInvalidIdentity:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the whole operation may be retried by the caller.
// Only backend-unreachable failures are transient; everything else is either
// user-correctable or a programming error.
//
// Retryability ends at gateway memoization: once the storage gateway has
// memoized a failed connection attempt, retried calls against the same
// process return the memoized failure. Retrying is useful for per-operation
// timeouts and for calls routed to a fresh process.
func (c Code) Retryable() bool {
	return c == CodeStorageUnavailable
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrStorageUnavailable = &Error{Code: CodeStorageUnavailable, Message: "storage unavailable"}
	ErrStorageRejected    = &Error{Code: CodeStorageRejected, Message: "storage rejected the operation"}
	ErrServerOnly         = &Error{Code: CodeServerOnly, Message: "server-only operation"}
	ErrInvalidIdentity    = &Error{Code: CodeInvalidIdentity, Message: "invalid record identity"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// StorageUnavailable creates a storage unavailable error.
func StorageUnavailable(msg string) *Error {
	return &Error{Code: CodeStorageUnavailable, Message: msg}
}

// StorageRejected creates a storage rejected error.
func StorageRejected(msg string) *Error {
	return &Error{Code: CodeStorageRejected, Message: msg}
}

// ServerOnly creates a server-only error.
func ServerOnly(msg string) *Error {
	return &Error{Code: CodeServerOnly, Message: msg}
}

// InvalidIdentity creates an invalid identity error.
func InvalidIdentity(msg string) *Error {
	return &Error{Code: CodeInvalidIdentity, Message: msg}
}

// InvalidIdentityf creates an invalid identity error with formatted message.
func InvalidIdentityf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidIdentity, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
