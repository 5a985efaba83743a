package dto

import (
	"time"

	"github.com/yigit/marksheet/internal/app/models"
)

// LoginRequest represents login credentials. Completeness is checked by the
// auth service so the form receives its usual message.
type LoginRequest struct {
	Username string `json:"username" example:"AmitKumar20125A"`
	Password string `json:"password" example:"12"`
	Role     string `json:"role" example:"student" enums:"admin,teacher,student"`
}

// LoginResponse represents a successful login. Token is the signed form of
// User and must be sent back as a Bearer token.
type LoginResponse struct {
	Success   bool                     `json:"success" example:"true"`
	Message   string                   `json:"message" example:"Student login successful"`
	User      models.SessionDescriptor `json:"user"`
	Token     string                   `json:"token"`
	ExpiresAt *time.Time               `json:"expiresAt,omitempty"`
}
