package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/auth"
)

// SessionKey is the gin context key holding the resolved SessionDescriptor
const SessionKey = "session"

// SessionAuthenticator turns a session token into a current descriptor
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (models.SessionDescriptor, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator SessionAuthenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator SessionAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// tokenFrom reads the Authorization header, falling back to the token query
// parameter used by websocket clients.
func tokenFrom(c *gin.Context) string {
	header := strings.Trim(strings.TrimSpace(c.GetHeader("Authorization")), "\"'")
	if header != "" {
		token, err := auth.ExtractBearerToken(header)
		if err == nil {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Query("token"))
}

// JWTAuth middleware verifies the session token and stores the resolved
// descriptor under SessionKey
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			HandleAPIError(c, apperrors.ErrMissingToken)
			return
		}

		session, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RoleRequired middleware to check if the session has one of the roles
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrMissingToken)
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		HandleAPIError(c, apperrors.NewForbiddenError("You don't have sufficient permissions for this operation"))
	}
}

// SessionFrom returns the descriptor stored by JWTAuth
func SessionFrom(c *gin.Context) (models.SessionDescriptor, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return models.SessionDescriptor{}, false
	}
	session, ok := v.(models.SessionDescriptor)
	return session, ok
}
