// Package apperrors defines the error taxonomy crossing the API boundary.
// Every error surfaced to a client carries a stable machine-readable kind;
// anything unclassified is logged server-side and translated to INTERNAL
// before leaving the process.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for the API boundary
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindNotFound        Kind = "NOT_FOUND"
	KindValidation      Kind = "VALIDATION"
	KindUpstream        Kind = "UPSTREAM_FAILURE"
	KindInternal        Kind = "INTERNAL"
)

// Error is the application error type
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind to an HTTP status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Unauthenticated creates an UNAUTHENTICATED error
func Unauthenticated(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NotFound creates a NOT_FOUND error
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation creates a VALIDATION error
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Upstream creates an UPSTREAM_FAILURE error wrapping the upstream cause
func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Internal creates an INTERNAL error wrapping the cause
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Wrap wraps err with additional context, preserving its kind
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Kind:    appErr.Kind,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound checks if an error is classified NOT_FOUND
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation checks if an error is classified VALIDATION
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsUpstream checks if an error is classified UPSTREAM_FAILURE
func IsUpstream(err error) bool {
	return KindOf(err) == KindUpstream
}
