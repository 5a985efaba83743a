package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/events"
	"github.com/yigit/marksheet/internal/pkg/helpers"
	"github.com/yigit/marksheet/internal/pkg/validation"
)

const msgTeacherFieldsRequired = "All fields are required: Teacher ID, Full Name, Date of Birth, Class Assigned, Section, Subject"

// TeacherService defines the interface for teacher operations
type TeacherService interface {
	AddTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error)
	RemoveTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]*models.Teacher, error)
	CountTeachers(ctx context.Context) (int64, error)
}

// teacherServiceImpl implements TeacherService
type teacherServiceImpl struct {
	store    repositories.RecordStore
	events   events.Publisher
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(store repositories.RecordStore, publisher events.Publisher, logger zerolog.Logger) TeacherService {
	return &teacherServiceImpl{
		store:    store,
		events:   publisher,
		validate: validation.Validator(),
		logger:   logger,
	}
}

func (s *teacherServiceImpl) buildTeacher(req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	if req == nil {
		return nil, apperrors.NewValidationError(msgTeacherFieldsRequired)
	}

	teacher := &models.Teacher{
		TeacherID:     strings.TrimSpace(req.TeacherID),
		Fullname:      strings.TrimSpace(req.Fullname),
		ClassAssigned: req.ClassAssigned,
		Section:       strings.TrimSpace(req.Section),
		Subject:       strings.TrimSpace(req.Subject),
	}
	if teacher.TeacherID == "" || teacher.Fullname == "" || strings.TrimSpace(req.DOB) == "" ||
		teacher.ClassAssigned <= 0 || teacher.Section == "" || teacher.Subject == "" {
		return nil, apperrors.NewValidationError(msgTeacherFieldsRequired)
	}
	if err := s.validate.Var(teacher.Section, "section"); err != nil {
		return nil, apperrors.NewValidationError("Section must be 1 to 8 letters or digits")
	}

	dob, err := helpers.ParseDate(req.DOB)
	if err != nil {
		return nil, apperrors.NewValidationError("Date of birth must be in YYYY-MM-DD format")
	}
	teacher.DOB = dob

	return teacher, nil
}

// AddTeacher inserts a teacher unless its teacher_id is taken, then announces it
func (s *teacherServiceImpl) AddTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.buildTeacher(req)
	if err != nil {
		return nil, err
	}

	conflict := apperrors.NewConflictError(fmt.Sprintf("Teacher with ID %s already exists.", teacher.TeacherID))

	err = s.store.WithTransaction(ctx, func(ctx context.Context, q repositories.Queries) error {
		exists, err := q.TeacherIDExists(ctx, teacher.TeacherID)
		if err != nil {
			return err
		}
		if exists {
			return conflict
		}
		id, err := q.InsertTeacher(ctx, teacher)
		if err != nil {
			return err
		}
		teacher.ID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, conflict
		}
		s.logger.Error().Err(err).Str("teacherID", teacher.TeacherID).Msg("Error adding teacher")
		return nil, apperrors.NewStorageError("Failed to add teacher.", err)
	}

	s.events.PublishWithNotice(events.NewTeacherAdded(teacher))
	s.logger.Info().Int64("id", teacher.ID).Str("teacherID", teacher.TeacherID).Msg("Teacher added")
	return teacher, nil
}

// RemoveTeacher deletes the teacher and announces the removal
func (s *teacherServiceImpl) RemoveTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid teacher ID")
	}

	teacher, err := s.store.DeleteTeacher(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("Error removing teacher")
		return nil, apperrors.NewStorageError("Failed to remove teacher.", err)
	}

	s.events.PublishWithNotice(events.NewTeacherDeleted(teacher))
	s.logger.Info().Int64("id", id).Str("teacherID", teacher.TeacherID).Msg("Teacher removed")
	return teacher, nil
}

func (s *teacherServiceImpl) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid teacher ID")
	}
	teacher, err := s.store.GetTeacherByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, apperrors.NewStorageError("Failed to retrieve teacher.", err)
	}
	return teacher, nil
}

func (s *teacherServiceImpl) ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]*models.Teacher, error) {
	filter.TeacherID = strings.TrimSpace(filter.TeacherID)
	filter.Fullname = strings.TrimSpace(filter.Fullname)
	filter.Section = strings.TrimSpace(filter.Section)

	teachers, err := s.store.FindTeachers(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to retrieve teachers.", err)
	}
	return teachers, nil
}

func (s *teacherServiceImpl) CountTeachers(ctx context.Context) (int64, error) {
	n, err := s.store.CountTeachers(ctx)
	if err != nil {
		return 0, apperrors.NewStorageError("Failed to count teachers.", err)
	}
	return n, nil
}
