package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/config"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/auth"
)

// Login failures, worded as the login form shows them
var (
	ErrLoginIncomplete     = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Please enter all credentials and select a role.")
	ErrLoginInvalidRole    = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid role selected.")
	ErrInvalidAdmin        = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid admin credentials.")
	ErrTeacherIDNotFound   = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Teacher ID not found.")
	ErrInvalidTeacherPass  = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid password for teacher.")
	ErrInvalidStudentLogin = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid student credentials.")
)

// Token failures
var (
	ErrSessionExpired = apperrors.NewCustomError(apperrors.ErrUnauthorized, "Your session has expired. Please log in again.")
	ErrSessionToken   = apperrors.NewCustomError(apperrors.ErrUnauthorized, "Invalid session token")
)

// LoginResult is a successful login: the descriptor and its signed form
type LoginResult struct {
	Session   models.SessionDescriptor
	Token     string
	ExpiresAt *time.Time
	Message   string
}

// AuthService handles authentication operations. No credentials are stored:
// teacher and student secrets are derived from their records.
type AuthService struct {
	queries    repositories.Queries
	admins     []config.AdminCredential
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	queries repositories.Queries,
	admins []config.AdminCredential,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		queries:    queries,
		admins:     admins,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the credentials for the selected role and issues a session token
func (s *AuthService) Login(ctx context.Context, username, password, role string) (*LoginResult, error) {
	if username == "" || password == "" || strings.TrimSpace(role) == "" {
		return nil, ErrLoginIncomplete
	}

	r, err := models.ParseRole(role)
	if err != nil {
		return nil, ErrLoginInvalidRole
	}

	var (
		session models.SessionDescriptor
		message string
	)
	switch r {
	case models.RoleAdmin:
		session, err = s.loginAdmin(username, password)
		message = "Admin login successful"
	case models.RoleTeacher:
		session, err = s.loginTeacher(ctx, username, password)
		message = "Teacher login successful"
	case models.RoleStudent:
		session, err = s.loginStudent(ctx, username, password)
		message = "Student login successful"
	}
	if err != nil {
		s.logger.Warn().Str("role", string(r)).Str("username", username).Msg("Login rejected")
		return nil, err
	}

	token, expiresAt, err := s.jwtService.IssueToken(session)
	if err != nil {
		s.logger.Error().Err(err).Str("subject", session.SubjectID()).Msg("Failed to issue session token")
		return nil, apperrors.NewStorageError("Login failed. Please try again.", err)
	}

	s.logger.Info().Str("subject", session.SubjectID()).Msg("Login successful")
	return &LoginResult{
		Session:   session,
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   message,
	}, nil
}

func (s *AuthService) findAdmin(username string) (config.AdminCredential, bool) {
	for _, admin := range s.admins {
		if admin.Username == username {
			return admin, true
		}
	}
	return config.AdminCredential{}, false
}

func (s *AuthService) loginAdmin(username, password string) (models.SessionDescriptor, error) {
	admin, ok := s.findAdmin(username)
	if !ok || !auth.MatchSecret(admin.Password, admin.PasswordHash, password) {
		return models.SessionDescriptor{}, ErrInvalidAdmin
	}
	return models.AdminSession(admin.Username), nil
}

// loginTeacher looks the teacher up by teacher_id and compares the derived password
func (s *AuthService) loginTeacher(ctx context.Context, teacherID, password string) (models.SessionDescriptor, error) {
	teacher, err := s.queries.GetTeacherByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return models.SessionDescriptor{}, ErrTeacherIDNotFound
		}
		return models.SessionDescriptor{}, apperrors.NewStorageError("Login failed. Please try again.", err)
	}
	if !auth.EqualDerived(auth.TeacherPassword(teacher), password) {
		return models.SessionDescriptor{}, ErrInvalidTeacherPass
	}
	return models.TeacherSession(teacher), nil
}

// loginStudent scans every student in id order; the first whose derived
// username and password both match wins.
func (s *AuthService) loginStudent(ctx context.Context, username, password string) (models.SessionDescriptor, error) {
	students, err := s.queries.FindStudents(ctx, models.StudentFilter{})
	if err != nil {
		return models.SessionDescriptor{}, apperrors.NewStorageError("Login failed. Please try again.", err)
	}
	for _, student := range students {
		if auth.EqualDerived(auth.StudentUsername(student), username) &&
			auth.EqualDerived(auth.StudentPassword(student), password) {
			return models.StudentSession(student), nil
		}
	}
	return models.SessionDescriptor{}, ErrInvalidStudentLogin
}

// Authenticate verifies a session token and resolves its descriptor
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.SessionDescriptor, error) {
	if token == "" {
		return models.SessionDescriptor{}, apperrors.ErrMissingToken
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return models.SessionDescriptor{}, ErrSessionExpired.WithCause(apperrors.ErrTokenExpired)
		}
		return models.SessionDescriptor{}, ErrSessionToken.WithCause(apperrors.ErrTokenInvalid)
	}

	return s.Resolve(ctx, claims.Session)
}

// Resolve re-derives the identity behind a descriptor from the current
// records. Descriptors of removed admins, teachers or students are rejected.
func (s *AuthService) Resolve(ctx context.Context, session models.SessionDescriptor) (models.SessionDescriptor, error) {
	switch session.Role {
	case models.RoleAdmin:
		if _, ok := s.findAdmin(session.Username); !ok {
			return models.SessionDescriptor{}, apperrors.ErrSessionInvalid
		}
		return models.AdminSession(session.Username), nil

	case models.RoleTeacher:
		teacher, err := s.queries.GetTeacherByTeacherID(ctx, session.TeacherID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return models.SessionDescriptor{}, apperrors.ErrSessionInvalid
			}
			return models.SessionDescriptor{}, apperrors.NewStorageError("Failed to verify session.", err)
		}
		return models.TeacherSession(teacher), nil

	case models.RoleStudent:
		student, err := s.queries.GetStudentByID(ctx, session.StudentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return models.SessionDescriptor{}, apperrors.ErrSessionInvalid
			}
			return models.SessionDescriptor{}, apperrors.NewStorageError("Failed to verify session.", err)
		}
		return models.StudentSession(student), nil
	}

	return models.SessionDescriptor{}, apperrors.ErrSessionInvalid
}
