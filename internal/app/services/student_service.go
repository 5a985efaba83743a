package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/cache"
	"github.com/yigit/marksheet/internal/pkg/events"
	"github.com/yigit/marksheet/internal/pkg/helpers"
	"github.com/yigit/marksheet/internal/pkg/validation"
)

// Student validation messages
const (
	msgStudentFieldsRequired = "Missing required fields: Roll Number, Student Name, Class, Section, Phone Number"
	msgSearchFieldsRequired  = "Roll Number, Class ID and Section are required."
)

// StudentService defines the interface for student operations
type StudentService interface {
	AddStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	RemoveStudent(ctx context.Context, id int64) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	SearchStudent(ctx context.Context, key models.StudentNaturalKey) (*models.Student, error)
	CountStudents(ctx context.Context) (int64, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	store    repositories.RecordStore
	cache    *cache.GridCache
	events   events.Publisher
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	store repositories.RecordStore,
	gridCache *cache.GridCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		store:    store,
		cache:    gridCache,
		events:   publisher,
		validate: validation.Validator(),
		logger:   logger,
	}
}

// buildStudent validates the request and converts it into a model
func (s *studentServiceImpl) buildStudent(req *dto.CreateStudentRequest) (*models.Student, error) {
	if req == nil {
		return nil, apperrors.NewValidationError(msgStudentFieldsRequired)
	}

	student := &models.Student{
		RollNo:     strings.TrimSpace(req.RollNo),
		Fullname:   strings.TrimSpace(req.Fullname),
		FatherName: strings.TrimSpace(req.FatherName),
		MotherName: strings.TrimSpace(req.MotherName),
		ClassID:    req.ClassID,
		Section:    strings.TrimSpace(req.Section),
		Address:    strings.TrimSpace(req.Address),
		Phone:      strings.TrimSpace(req.Phone),
	}

	if student.RollNo == "" || student.Fullname == "" || student.ClassID <= 0 || student.Section == "" || student.Phone == "" {
		return nil, apperrors.NewValidationError(msgStudentFieldsRequired)
	}
	if err := s.validate.Var(student.Section, "section"); err != nil {
		return nil, apperrors.NewValidationError("Section must be 1 to 8 letters or digits")
	}

	dob, err := helpers.ParseDate(req.DOB)
	if err != nil {
		return nil, apperrors.NewValidationError("Date of birth must be in YYYY-MM-DD format")
	}
	student.DOB = dob

	if req.Email != nil {
		if email := strings.TrimSpace(*req.Email); email != "" {
			if err := s.validate.Var(email, "email"); err != nil {
				return nil, apperrors.NewValidationError("Invalid email address")
			}
			student.Email = &email
		}
	}

	return student, nil
}

// AddStudent inserts a student unless its (roll_no, class_id, section) is
// taken, then announces it.
func (s *studentServiceImpl) AddStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student, err := s.buildStudent(req)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, q repositories.Queries) error {
		exists, err := q.StudentExists(ctx, student.NaturalKey())
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrStudentAlreadyExists
		}
		id, err := q.InsertStudent(ctx, student)
		if err != nil {
			return err
		}
		student.ID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrStudentAlreadyExists
		}
		s.logger.Error().Err(err).Str("rollNo", student.RollNo).Msg("Error adding student")
		return nil, apperrors.NewStorageError("Failed to add student.", err)
	}

	s.events.PublishWithNotice(events.NewStudentAdded(student))
	s.logger.Info().Int64("studentID", student.ID).Int("classID", student.ClassID).Str("section", student.Section).Msg("Student added")
	return student, nil
}

// RemoveStudent deletes the student with its marks and announces the removal
func (s *studentServiceImpl) RemoveStudent(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid student ID")
	}

	student, err := s.store.DeleteStudent(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		s.logger.Error().Err(err).Int64("studentID", id).Msg("Error removing student")
		return nil, apperrors.NewStorageError("Failed to remove student.", err)
	}

	s.cache.Invalidate(ctx, id)
	s.events.PublishWithNotice(events.NewStudentDeleted(student))
	s.logger.Info().Int64("studentID", id).Msg("Student removed")
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid student ID")
	}
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewStorageError("Failed to retrieve student.", err)
	}
	return student, nil
}

func (s *studentServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	filter.RollNo = strings.TrimSpace(filter.RollNo)
	filter.Fullname = strings.TrimSpace(filter.Fullname)
	filter.Section = strings.TrimSpace(filter.Section)

	students, err := s.store.FindStudents(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to retrieve students.", err)
	}
	return students, nil
}

// SearchStudent finds the student by its natural key
func (s *studentServiceImpl) SearchStudent(ctx context.Context, key models.StudentNaturalKey) (*models.Student, error) {
	key.RollNo = strings.TrimSpace(key.RollNo)
	key.Section = strings.TrimSpace(key.Section)
	if key.RollNo == "" || key.ClassID <= 0 || key.Section == "" {
		return nil, apperrors.NewValidationError(msgSearchFieldsRequired)
	}

	student, err := s.store.GetStudentByNaturalKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewStorageError("Failed to search student.", err)
	}
	return student, nil
}

func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	n, err := s.store.CountStudents(ctx)
	if err != nil {
		return 0, apperrors.NewStorageError("Failed to count students.", err)
	}
	return n, nil
}
