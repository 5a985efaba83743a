package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/cache"
	"github.com/yigit/marksheet/internal/pkg/events"
	"github.com/yigit/marksheet/internal/pkg/validation"
)

// MarkCellInput is one requested cell write. A nil Marks stores null.
type MarkCellInput struct {
	ExamType string `json:"exam_type" validate:"required,exam_type"`
	Subject  string `json:"subject" validate:"required,subject"`
	Marks    *int   `json:"marks" validate:"omitempty,min=0,max=100"`
}

// StudentGrid pairs a student with its mark grid
type StudentGrid struct {
	Student *models.Student
	Grid    models.MarkGrid
}

// MarksService defines the interface for mark operations
type MarksService interface {
	// UpsertMarks writes every cell or none, then publishes one marks:updated
	UpsertMarks(ctx context.Context, studentID int64, cells []MarkCellInput) error
	GetStudentMarks(ctx context.Context, studentID int64) (models.MarkGrid, error)
	ListClassSection(ctx context.Context, classID int, section string) ([]StudentGrid, error)
}

// marksServiceImpl implements the MarksService interface
type marksServiceImpl struct {
	store    repositories.RecordStore
	cache    *cache.GridCache
	events   events.Publisher
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewMarksService creates a new marks service instance; gridCache may be nil
func NewMarksService(
	store repositories.RecordStore,
	gridCache *cache.GridCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) MarksService {
	return &marksServiceImpl{
		store:    store,
		cache:    gridCache,
		events:   publisher,
		validate: validation.Validator(),
		logger:   logger,
	}
}

var errMarksRequired = apperrors.NewValidationError("Student ID and marks data array are required.")

// validateBatch checks the whole batch before any storage work
func (s *marksServiceImpl) validateBatch(studentID int64, cells []MarkCellInput) ([]models.MarkEntry, error) {
	if studentID <= 0 || cells == nil {
		return nil, errMarksRequired
	}

	entries := make([]models.MarkEntry, 0, len(cells))
	var problems []string
	for i, c := range cells {
		if err := s.validate.Struct(c); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Sprintf("marksData[%d].%s failed %s", i, fe.Field(), fe.Tag()))
				}
				continue
			}
			return nil, apperrors.NewValidationError(err.Error())
		}
		entries = append(entries, models.MarkEntry{
			MarkKey: models.MarkKey{
				StudentID: studentID,
				MarkCell:  models.MarkCell{ExamType: models.ExamType(c.ExamType), Subject: models.Subject(c.Subject)},
			},
			Marks: c.Marks,
		})
	}

	if len(problems) > 0 {
		return nil, apperrors.NewValidationError("Invalid marks data: " + strings.Join(problems, "; "))
	}
	return entries, nil
}

// UpsertMarks writes the batch in one transaction: each cell is updated when
// present and inserted otherwise. Any failure rolls the whole batch back and
// is reported as ErrUpsertFailed.
func (s *marksServiceImpl) UpsertMarks(ctx context.Context, studentID int64, cells []MarkCellInput) error {
	entries, err := s.validateBatch(studentID, cells)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, q repositories.Queries) error {
		for _, entry := range entries {
			if err := upsertCell(ctx, q, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Int("cells", len(entries)).Msg("Marks upsert rolled back")
		return apperrors.ErrUpsertFailed.WithCause(err)
	}

	s.cache.Invalidate(ctx, studentID)
	s.events.Publish(events.NewMarksUpdated(studentID))

	s.logger.Info().Int64("studentID", studentID).Int("cells", len(entries)).Msg("Marks upsert committed")
	return nil
}

func upsertCell(ctx context.Context, q repositories.Queries, entry models.MarkEntry) error {
	_, err := q.GetMark(ctx, entry.MarkKey)
	switch {
	case err == nil:
		n, err := q.UpdateMark(ctx, entry)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("mark %s of student %d disappeared during update", entry.Key(), entry.StudentID)
		}
		return nil
	case errors.Is(err, apperrors.ErrMarkNotFound):
		_, err := q.InsertMark(ctx, entry)
		return err
	default:
		return err
	}
}

// GetStudentMarks returns the student's grid, served from the cache when possible.
// Unknown students are reported as ErrStudentNotFound.
func (s *marksServiceImpl) GetStudentMarks(ctx context.Context, studentID int64) (models.MarkGrid, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("Invalid student ID")
	}

	if grid, ok := s.cache.Get(ctx, studentID); ok {
		return grid, nil
	}
	version := s.cache.Version(ctx, studentID)

	if _, err := s.store.GetStudentByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewStorageError("Failed to retrieve student marks.", err)
	}

	entries, err := s.store.FindMarks(ctx, studentID)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to retrieve student marks.", err)
	}

	grid := models.GridFromEntries(entries)[studentID]
	if grid == nil {
		grid = models.MarkGrid{}
	}
	s.cache.Set(ctx, studentID, version, grid)
	return grid, nil
}

// ListClassSection returns the class section ordered by roll number, each
// student with its full grid.
func (s *marksServiceImpl) ListClassSection(ctx context.Context, classID int, section string) ([]StudentGrid, error) {
	if classID <= 0 || strings.TrimSpace(section) == "" {
		return nil, apperrors.NewValidationError("Class ID and Section are required.")
	}

	students, err := s.store.ListStudentsByClass(ctx, classID, section)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to retrieve students for class and section.", err)
	}

	ids := make([]int64, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	entries, err := s.store.FindMarks(ctx, ids...)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to retrieve students for class and section.", err)
	}
	grids := models.GridFromEntries(entries)

	out := make([]StudentGrid, len(students))
	for i, st := range students {
		grid := grids[st.ID]
		if grid == nil {
			grid = models.MarkGrid{}
		}
		out[i] = StudentGrid{Student: st, Grid: grid}
	}
	return out, nil
}
