// Package apperrors defines the closed set of failures a request can end with
// and how each one is rendered to clients.
package apperrors

import (
	"errors"
	"net/http"

	"inventory/internal/models"
)

// Kind classifies a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindDatabase
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

const (
	notFoundMessage = "Product not found"
	internalMessage = "Internal server error"
)

// Error is the only error type handlers return to the HTTP layer.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Database wraps a storage engine failure.
func Database(err error) *Error {
	return &Error{Kind: KindDatabase, Message: "Database error: " + err.Error(), Err: err}
}

// NotFound reports a missing product.
func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: notFoundMessage}
}

// BadRequest reports rejected input.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Internal wraps an unexpected failure. The cause is never shown to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: err}
}

func (e *Error) Error() string {
	if e.Kind == KindInternal && e.Err != nil {
		return internalMessage + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindDatabase:
		return http.StatusInternalServerError
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Response maps any error to a status code and error body.
// Errors outside the taxonomy are treated as internal.
func Response(err error) (int, models.ErrorResponse) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	message := appErr.Message
	if appErr.Kind == KindInternal {
		message = internalMessage
	}
	return appErr.Status(), models.NewErrorResponse(message)
}
