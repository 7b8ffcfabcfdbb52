package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a service error that carries the HTTP status it should surface as.
// Wrapped causes stay available for logging, the message is what the client sees.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a malformed or semantically invalid request
func Validation(err error, msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg, Err: err}
}

// NotFound reports a missing resource
func NotFound(err error, msg string) *Error {
	return &Error{Code: http.StatusNotFound, Message: msg, Err: err}
}

// Forbidden reports an ownership or permission failure
func Forbidden(err error, msg string) *Error {
	return &Error{Code: http.StatusForbidden, Message: msg, Err: err}
}

// Unauthorized reports a missing or invalid credential
func Unauthorized(err error, msg string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: msg, Err: err}
}

// Internal reports an unexpected server-side failure
func Internal(err error, msg string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: msg, Err: err}
}

// CodeOf extracts the HTTP status for an error, defaulting to 500
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the client-facing message for an error
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
