package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError is an error carrying a stable code and the HTTP status it maps to.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so wrapped copies still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New constructs an AppError.
func New(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status}
}

// Wrap attaches an underlying cause to a copy of the AppError.
func Wrap(err error, appErr *AppError) *AppError {
	if appErr == nil {
		appErr = ErrInternalServer
	}
	cp := *appErr
	cp.Err = err
	return &cp
}

// NewBadRequest returns a 400 error with a custom message.
func NewBadRequest(message string) *AppError {
	return New("BAD_REQUEST", message, http.StatusBadRequest)
}

// FromError converts any error into an AppError, defaulting to an internal server error.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternalServer)
}

var (
	ErrBadRequest     = New("BAD_REQUEST", "Bad request", http.StatusBadRequest)
	ErrNotFound       = New("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternalServer = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)
