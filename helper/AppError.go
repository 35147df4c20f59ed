package helper

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the only error kind handlers surface to clients.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func NotFound(resource, id string) *AppError {
	return NewAppError(http.StatusNotFound, fmt.Sprintf("%s with ID: %s not found.", resource, id))
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func Internal(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// AsAppError reports whether err wraps an *AppError and returns it.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
