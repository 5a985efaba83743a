package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/dberrors"
	"github.com/yigit/marksheet/internal/pkg/logger"
)

var teacherColumns = []string{"id", "teacher_id", "fullname", "dob", "class_assigned", "section", "subject"}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	t := &models.Teacher{}
	if err := row.Scan(&t.ID, &t.TeacherID, &t.Fullname, &t.DOB, &t.ClassAssigned, &t.Section, &t.Subject); err != nil {
		return nil, err
	}
	return t, nil
}

// FindTeachers lists teachers matching the filter ordered by id
func (r *pgQueries) FindTeachers(ctx context.Context, filter models.TeacherFilter) ([]*models.Teacher, error) {
	query := r.sb.Select(teacherColumns...).From("teachers").OrderBy("id ASC")

	if filter.TeacherID != "" {
		query = query.Where(squirrel.Eq{"teacher_id": filter.TeacherID})
	}
	if filter.Fullname != "" {
		query = query.Where(squirrel.ILike{"fullname": containsPattern(filter.Fullname)})
	}
	if filter.ClassAssigned != nil {
		query = query.Where(squirrel.Eq{"class_assigned": *filter.ClassAssigned})
	}
	if filter.Section != "" {
		query = query.Where(squirrel.Eq{"section": filter.Section})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find teachers SQL")
		return nil, fmt.Errorf("failed to build find teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning teacher row")
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}
	return teachers, nil
}

func (r *pgQueries) getTeacher(ctx context.Context, where squirrel.Eq) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	t, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}
	return t, nil
}

// GetTeacherByID retrieves a teacher by its store id
func (r *pgQueries) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getTeacher(ctx, squirrel.Eq{"id": id})
}

// GetTeacherByTeacherID retrieves a teacher by the external teacher id
func (r *pgQueries) GetTeacherByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	return r.getTeacher(ctx, squirrel.Eq{"teacher_id": teacherID})
}

// TeacherIDExists reports whether the teacher id is taken
func (r *pgQueries) TeacherIDExists(ctx context.Context, teacherID string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("teachers").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build teacher exists query: %w", err)
	}
	return r.exists(ctx, sql, args)
}

// InsertTeacher inserts a teacher and returns its id
func (r *pgQueries) InsertTeacher(ctx context.Context, t *models.Teacher) (int64, error) {
	sql, args, err := r.sb.Insert("teachers").
		Columns("teacher_id", "fullname", "dob", "class_assigned", "section", "subject").
		Values(t.TeacherID, t.Fullname, t.DOB, t.ClassAssigned, t.Section, t.Subject).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert teacher SQL")
		return 0, fmt.Errorf("failed to build insert teacher query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintTeacherID) {
			return 0, apperrors.ErrTeacherAlreadyExists
		}
		logger.Error().Err(err).Str("teacherID", t.TeacherID).Msg("Error executing insert teacher query")
		return 0, fmt.Errorf("error inserting teacher: %w", err)
	}
	return id, nil
}

// DeleteTeacher deletes a teacher and returns the removed row
func (r *pgQueries) DeleteTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(teacherColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	t, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing delete teacher query")
		return nil, fmt.Errorf("error deleting teacher: %w", err)
	}
	return t, nil
}

// CountTeachers returns the number of teachers
func (r *pgQueries) CountTeachers(ctx context.Context) (int64, error) {
	return r.count(ctx, "teachers")
}
