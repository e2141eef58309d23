package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrTransport
	ErrValidation
	ErrConflict
)

// Error constructors
func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// NewTransport wraps a failure that happened before a response envelope was read.
func NewTransport(err error) *AppError {
	return &AppError{
		Code:    ErrTransport,
		Message: "request failed",
		Err:     err,
	}
}

// FromStatus maps a backend rejection to an AppError. message is the
// backend-supplied text and may be empty.
func FromStatus(status int, message string) *AppError {
	code := ErrBadRequest
	switch {
	case status == http.StatusNotFound:
		code = ErrNotFound
	case status == http.StatusUnauthorized:
		code = ErrUnauthorized
	case status == http.StatusForbidden:
		code = ErrForbidden
	case status == http.StatusConflict:
		code = ErrConflict
	case status >= http.StatusInternalServerError:
		code = ErrInternal
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Unauthorized is returned before any request goes out when the session
// token can no longer be used.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Message returns the text to show an operator for err. Messages attached to
// a response status win; fallback is used for transport and internal failures.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Status != 0 && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
