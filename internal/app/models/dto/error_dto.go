package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeSessionRevoked     ErrorCode = "AUTH_009"
	ErrorCodeForbidden          ErrorCode = "AUTH_010"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field" example:"marksData[0].marks"`
	Message string `json:"message" example:"must be at most 100"`
}

// ErrorResponse represents the standard error response structure.
// Error carries the short user-facing message; login failures repeat it in
// Message, which is the field the login form reads.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     string       `json:"error" example:"Student not found"`
	Message   string       `json:"message,omitempty" example:"Invalid student credentials."`
	Code      ErrorCode    `json:"code,omitempty" example:"RES_001"`
	Details   []FieldError `json:"details,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithMessage mirrors the error text into the message field
func (e *ErrorResponse) WithMessage() *ErrorResponse {
	e.Message = e.Error
	return e
}

// WithDetails attaches per-field validation failures
func (e *ErrorResponse) WithDetails(details []FieldError) *ErrorResponse {
	e.Details = details
	return e
}

// HandleValidationError converts binding and validator failures into an error
// response listing every offending field. A body that could not be decoded
// at all is reported as a bad request.
func HandleValidationError(err error) *ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorResponse(ErrorCodeBadRequest, "Invalid request data").
			WithDetails([]FieldError{{Field: "body", Message: err.Error()}})
	}

	resp := NewErrorResponse(ErrorCodeValidationFailed, "Invalid request data")

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fieldPath(fe),
			Message: describe(fe),
		})
	}
	return resp.WithDetails(details)
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
