// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and the HTTP layer
// automatically maps them to appropriate HTTP status codes. Every error also
// carries a wire code that method-channel callers switch on.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindInvalidParameters indicates a missing or malformed call argument.
	KindInvalidParameters
	// KindInvalidNumber indicates a number the library rejects or deems invalid.
	KindInvalidNumber
	// KindNotImplemented indicates an unknown method name.
	KindNotImplemented
	// KindUnauthorized indicates authentication is required or failed.
	KindUnauthorized
	// KindCanceled indicates the caller gave up before the result was ready.
	KindCanceled
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Wire codes reported to callers.
const (
	CodeInvalidParameters = "InvalidParameters"
	CodeInvalidNumber     = "InvalidNumber"
	CodeNotImplemented    = "NotImplemented"
	CodeUnauthorized      = "Unauthorized"
	CodeCanceled          = "Canceled"
	CodeInternal          = "Internal"
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the wire code for this error kind.
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidParameters:
		return CodeInvalidParameters
	case KindInvalidNumber:
		return CodeInvalidNumber
	case KindNotImplemented:
		return CodeNotImplemented
	case KindUnauthorized:
		return CodeUnauthorized
	case KindCanceled:
		return CodeCanceled
	default:
		return CodeInternal
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidParameters:
		return http.StatusBadRequest
	case KindInvalidNumber:
		return http.StatusUnprocessableEntity
	case KindNotImplemented:
		return http.StatusNotImplemented
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp sets the operation that failed and returns the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// InvalidParameter reports a missing or malformed argument by its wire key.
func InvalidParameter(key string) *Error {
	return New(KindInvalidParameters, fmt.Sprintf("Invalid '%s' parameter.", key))
}

// InvalidNumber reports a number that failed to parse or validate.
func InvalidNumber(number string, err error) *Error {
	return Wrap(KindInvalidNumber, fmt.Sprintf("Number %s is invalid", number), err)
}

// NotImplemented reports an unknown method.
func NotImplemented(method string) *Error {
	return New(KindNotImplemented, fmt.Sprintf("Method %s is not implemented", method))
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Canceled wraps a context error.
func Canceled(err error) *Error {
	return Wrap(KindCanceled, "call canceled", err)
}

// Internal creates an internal server error.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error chain holds no *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
