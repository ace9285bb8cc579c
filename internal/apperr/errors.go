// Package apperr carries the failure conditions the admin service can
// raise. Every condition is a sentinel kind; an *Error wraps the kind
// with a human-readable message, so callers match with errors.Is and
// users still see "Product not found" rather than a bare category.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotAllowedValue  = errors.New("value not allowed")
	ErrUnauthorized     = errors.New("unauthorized")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func InvalidParameter(msg string) error {
	return &Error{Kind: ErrInvalidParameter, Message: msg}
}

func NotAllowedValue(msg string) error {
	return &Error{Kind: ErrNotAllowedValue, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

// HTTPStatus maps a condition to the status the controller layer
// answers with. Unknown errors are internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidParameter), errors.Is(err, ErrNotAllowedValue):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
