// Package seed loads a YAML fixture of teachers, students and marks through
// the application services. Records that already exist are left untouched,
// so the same fixture can be applied on every start.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/services"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk seed format
type Fixture struct {
	Teachers []TeacherFixture `yaml:"teachers"`
	Students []StudentFixture `yaml:"students"`
}

// TeacherFixture mirrors the teacher creation form
type TeacherFixture struct {
	TeacherID     string `yaml:"teacher_id"`
	Fullname      string `yaml:"fullname"`
	DOB           string `yaml:"dob"`
	ClassAssigned int    `yaml:"class_assigned"`
	Section       string `yaml:"section"`
	Subject       string `yaml:"subject"`
}

// StudentFixture mirrors the student creation form plus an optional grid,
// keyed exam type first: marks.unit1.math: 78
type StudentFixture struct {
	RollNo     string                                      `yaml:"roll_no"`
	Fullname   string                                      `yaml:"fullname"`
	FatherName string                                      `yaml:"father_name"`
	MotherName string                                      `yaml:"mother_name"`
	DOB        string                                      `yaml:"dob"`
	ClassID    int                                         `yaml:"class_id"`
	Section    string                                      `yaml:"section"`
	Address    string                                      `yaml:"address"`
	Phone      string                                      `yaml:"phone"`
	Email      *string                                     `yaml:"email"`
	Marks      map[models.ExamType]map[models.Subject]*int `yaml:"marks"`
}

// Result counts what a seed run created
type Result struct {
	Teachers int
	Students int
	Marks    int
}

// Seeder applies fixtures through the services
type Seeder struct {
	students services.StudentService
	teachers services.TeacherService
	marks    services.MarksService
	logger   zerolog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(students services.StudentService, teachers services.TeacherService, marks services.MarksService, logger zerolog.Logger) *Seeder {
	return &Seeder{
		students: students,
		teachers: teachers,
		marks:    marks,
		logger:   logger,
	}
}

// LoadFile reads and parses a fixture file
func LoadFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &fixture, nil
}

// SeedFile loads path and applies it
func (s *Seeder) SeedFile(ctx context.Context, path string) (Result, error) {
	fixture, err := LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	return s.Seed(ctx, fixture)
}

// Seed creates every record of the fixture that does not exist yet. Marks are
// written for new and existing students alike. Failures are collected and the
// run continues with the next record.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (Result, error) {
	var (
		result   Result
		finalErr error
	)

	s.logger.Info().
		Int("teachers", len(fixture.Teachers)).
		Int("students", len(fixture.Students)).
		Msg("Applying seed fixture")

	for _, t := range fixture.Teachers {
		_, err := s.teachers.AddTeacher(ctx, &dto.CreateTeacherRequest{
			TeacherID:     t.TeacherID,
			Fullname:      t.Fullname,
			DOB:           t.DOB,
			ClassAssigned: t.ClassAssigned,
			Section:       t.Section,
			Subject:       t.Subject,
		})
		switch {
		case err == nil:
			result.Teachers++
		case errors.Is(err, apperrors.ErrConflict):
			s.logger.Debug().Str("teacherID", t.TeacherID).Msg("Teacher already exists, skipping")
		default:
			s.logger.Error().Err(err).Str("teacherID", t.TeacherID).Msg("Error seeding teacher")
			finalErr = errors.Join(finalErr, fmt.Errorf("teacher %s: %w", t.TeacherID, err))
		}
	}

	for _, st := range fixture.Students {
		student, created, err := s.ensureStudent(ctx, st)
		if err != nil {
			s.logger.Error().Err(err).Str("rollNo", st.RollNo).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, fmt.Errorf("student %s: %w", st.RollNo, err))
			continue
		}
		if created {
			result.Students++
		}

		cells := markCells(st.Marks)
		if len(cells) == 0 {
			continue
		}
		if err := s.marks.UpsertMarks(ctx, student.ID, cells); err != nil {
			s.logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error seeding marks")
			finalErr = errors.Join(finalErr, fmt.Errorf("marks for student %s: %w", st.RollNo, err))
			continue
		}
		result.Marks += len(cells)
	}

	s.logger.Info().
		Int("teachers", result.Teachers).
		Int("students", result.Students).
		Int("marks", result.Marks).
		Msg("Seed fixture applied")

	return result, finalErr
}

func (s *Seeder) ensureStudent(ctx context.Context, st StudentFixture) (*models.Student, bool, error) {
	student, err := s.students.AddStudent(ctx, &dto.CreateStudentRequest{
		RollNo:     st.RollNo,
		Fullname:   st.Fullname,
		FatherName: st.FatherName,
		MotherName: st.MotherName,
		DOB:        st.DOB,
		ClassID:    st.ClassID,
		Section:    st.Section,
		Address:    st.Address,
		Phone:      st.Phone,
		Email:      st.Email,
	})
	if err == nil {
		return student, true, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, false, err
	}

	existing, err := s.students.SearchStudent(ctx, models.StudentNaturalKey{
		RollNo:  st.RollNo,
		ClassID: st.ClassID,
		Section: st.Section,
	})
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// markCells flattens the fixture grid in a stable order
func markCells(grid map[models.ExamType]map[models.Subject]*int) []services.MarkCellInput {
	var cells []services.MarkCellInput
	for _, exam := range models.ExamTypes {
		row, ok := grid[exam]
		if !ok {
			continue
		}
		for _, subject := range models.Subjects {
			value, ok := row[subject]
			if !ok {
				continue
			}
			cells = append(cells, services.MarkCellInput{
				ExamType: string(exam),
				Subject:  string(subject),
				Marks:    value,
			})
		}
	}
	return cells
}
