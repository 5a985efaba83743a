package auth

import (
	"context"
	"errors"

	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/logger"
)

// Authorization errors shown to callers
var (
	ErrNotYourClass     = apperrors.NewCustomError(apperrors.ErrPermissionDenied, "You can only manage marks of your own class and section")
	ErrNotYourRecord    = apperrors.NewCustomError(apperrors.ErrPermissionDenied, "You can only view your own records")
	ErrMarksWriteDenied = apperrors.NewCustomError(apperrors.ErrPermissionDenied, "Students cannot modify marks")
)

// AuthorizationService answers scope questions for a session
type AuthorizationService struct {
	students repositories.StudentQueries
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(students repositories.StudentQueries) *AuthorizationService {
	return &AuthorizationService{students: students}
}

// CanViewStudent allows admins and teachers to view any student, and a
// student only itself.
func (s *AuthorizationService) CanViewStudent(session models.SessionDescriptor, studentID int64) error {
	switch session.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil
	case models.RoleStudent:
		if session.StudentID == studentID {
			return nil
		}
		return ErrNotYourRecord
	}
	return apperrors.ErrPermissionDenied
}

// CanWriteMarks allows admins everywhere and teachers within their own class
// section. The student is looked up only for teachers; an admin writing for an
// unknown student is left to the store's foreign key.
func (s *AuthorizationService) CanWriteMarks(ctx context.Context, session models.SessionDescriptor, studentID int64) error {
	switch session.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		student, err := s.students.GetStudentByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return apperrors.ErrStudentNotFound
			}
			logger.Error().Err(err).Int64("studentID", studentID).Msg("Error loading student for marks authorization")
			return err
		}
		if !student.InClass(session.ClassAssigned, session.Section) {
			return ErrNotYourClass
		}
		return nil
	default:
		return ErrMarksWriteDenied
	}
}
