package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// Common errors
var (
	// ErrValidationFailed is the root of every field-scoped input error.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means no valid token was presented.
	ErrUnauthenticated = errors.New("authentication credentials were not provided or are invalid")

	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrTokenNotFound         = errors.New("token not found")
)

// InvalidCredentialsMessage is the only message returned for failed logins.
const InvalidCredentialsMessage = "Unable to log in with provided credentials."

// ValidationError carries field-level problems, field name -> messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field has a problem
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], "; "))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, ", ")
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewFieldError creates a ValidationError with a single field message
func NewFieldError(field, message string) *ValidationError {
	return NewValidationError().Add(field, message)
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
