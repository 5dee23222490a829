package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes this API can return.
// Services raise them at the point of detection; the HTTP layer maps them to
// status codes. Nothing in between retries or rewrites them.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

// AppError pairs a sentinel (for errors.Is checks) with the exact message the
// client will see in the {"errors": "..."} envelope. The message is part of
// the API contract — tests assert against it verbatim.
type AppError struct {
	Err     error  // sentinel, drives the HTTP status
	Message string // human-readable, surfaced to the client as-is
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Unauthorized returns a 401-class error with the given message.
//
// Callers deliberately reuse the same message ("UNAUTHORIZED") for both a
// missing token and a token that matches no user, so the response never
// reveals whether a guessed token was close.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// NotFound returns a 404-class error for the named resource.
// "Does not exist" and "exists but belongs to someone else" both land here —
// collapsing them keeps other tenants' data unguessable.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found!", resource),
	}
}

// BadRequest returns a 400-class error carrying a client-facing message,
// typically the aggregated validation violations or a registration conflict.
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
