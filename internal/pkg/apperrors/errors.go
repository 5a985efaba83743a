package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")
)

// Student errors
var (
	ErrStudentNotFound      = NewCustomError(ErrResourceNotFound, "Student not found")
	ErrStudentAlreadyExists = NewCustomError(ErrConflict, "Student with this roll number already exists in the same class and section")
)

// Teacher errors
var (
	ErrTeacherNotFound      = NewCustomError(ErrResourceNotFound, "Teacher not found")
	ErrTeacherAlreadyExists = NewCustomError(ErrConflict, "Teacher with this ID already exists")
)

// Session errors
var (
	ErrSessionInvalid = NewCustomError(ErrUnauthorized, "Your session is no longer valid. Please log in again.")
	ErrMissingToken   = NewCustomError(ErrUnauthorized, "Authorization token is required")
)

// Mark errors
var (
	ErrMarkNotFound = NewCustomError(ErrResourceNotFound, "Mark entry not found")
	ErrUpsertFailed = NewCustomError(ErrStorageFailure, "Failed to save student marks.")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStorageError wraps a storage-layer failure. The cause is kept for logging
// and errors.Is, the message is what callers are allowed to see.
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     ErrStorageFailure,
		Message: message,
		Cause:   cause,
	}
}

// Message returns the user-facing message of err if it carries one.
func Message(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	// Cause is the underlying failure, hidden from API responses.
	Cause error
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
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is reports whether target is a CustomError of the same kind and message,
// so copies made by WithCause still match their sentinel.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Err == e.Err && t.Message == e.Message
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithCause returns a copy of e that also wraps cause.
func (e *CustomError) WithCause(cause error) *CustomError {
	cp := *e
	cp.Cause = cause
	return &cp
}
