// Package apperr is the error taxonomy shared by the services and the HTTP
// layer. Business failures travel as *Error values; handlers branch on them
// with errors.As instead of string matching.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Error carries an HTTP status code, a user-facing message and a flag
// separating expected failures (bad input, not found, business-rule
// violations) from programming errors. Non-operational errors never surface
// their detail to production callers.
type Error struct {
	Code        int
	Message     string
	Operational bool
}

func (e *Error) Error() string { return e.Message }

// Status is "fail" for client errors and "error" for everything else,
// mirrored into the response envelope.
func (e *Error) Status() string {
	if e.Code >= 400 && e.Code < 500 {
		return "fail"
	}
	return "error"
}

func New(code int, message string, operational bool) *Error {
	return &Error{Code: code, Message: message, Operational: operational}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, true)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, true)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message, true)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message, false)
}

// FromStorage translates storage-layer failures into the taxonomy by
// structural category: a missing row maps to 404, a uniqueness violation to
// 409, anything unrecognized to a non-operational 500.
func FromStorage(err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("Duplicate value")
	}
	return Internal("Internal server error")
}
