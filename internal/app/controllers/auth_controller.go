// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/services"
	"github.com/yigit/marksheet/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticates an admin, teacher or student. Teacher and student passwords are derived from their records. Returns the session descriptor and its signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials or invalid role"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.HandleValidationError(err).WithMessage())
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		middleware.HandleLoginError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		Message:   result.Message,
		User:      result.Session,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Session returns the caller's current descriptor
// @Summary Current session
// @Description Returns the session descriptor resolved from the bearer token against the current records
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SessionDescriptor "Current session"
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or revoked session"
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return
	}
	ctx.JSON(http.StatusOK, session)
}
