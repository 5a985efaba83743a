package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/logger"
)

// classify maps an error onto its HTTP status, code and default message.
// Storage failures are checked first: a failed upsert may also wrap the
// not-found cause that triggered it.
func classify(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrStorageFailure):
		return http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Internal server error"
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrSessionInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeSessionRevoked, "Session revoked"
	case errors.Is(err, apperrors.ErrMissingToken):
		return http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Authentication required"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	}
}

func buildErrorResponse(c *gin.Context, err error) (int, *dto.ErrorResponse) {
	status, code, message := classify(err)
	if msg, ok := apperrors.Message(err); ok {
		message = msg
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	return status, dto.NewErrorResponse(code, message)
}

// HandleAPIError writes the error response for err. Storage details are
// logged, never returned.
func HandleAPIError(c *gin.Context, err error) {
	status, resp := buildErrorResponse(c, err)
	c.AbortWithStatusJSON(status, resp)
}

// HandleLoginError is HandleAPIError with the text repeated in message,
// which is where the login form reads it.
func HandleLoginError(c *gin.Context, err error) {
	status, resp := buildErrorResponse(c, err)
	c.AbortWithStatusJSON(status, resp.WithMessage())
}
