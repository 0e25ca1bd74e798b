package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but the caller is not allowed to
// know that it exists.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates that the caller is known but lacks permission for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure, typically from the backing store.
var ErrInternal = errors.New("internal error")

// AppError wraps a backing-store or infrastructure failure with an HTTP-ish
// status code and a message safe to log. Repositories return these instead of
// leaking raw driver errors to services.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	// A 5xx AppError without a wrapped cause is still an internal failure.
	return ErrInternal
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsStorageFailure reports whether err is an infrastructure failure rather
// than a domain outcome (not-found, forbidden, validation, duplicate, conflict).
func IsStorageFailure(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConflict):
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code >= 500
	}
	return errors.Is(err, ErrInternal)
}
