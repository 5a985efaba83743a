package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/dberrors"
	"github.com/yigit/marksheet/internal/pkg/logger"
)

var errMarkOutOfRange = apperrors.NewValidationError("Marks must be between 0 and 100.")

// FindMarks returns every stored entry of the given students
func (r *pgQueries) FindMarks(ctx context.Context, studentIDs ...int64) ([]models.MarkEntry, error) {
	if len(studentIDs) == 0 {
		return []models.MarkEntry{}, nil
	}

	sql, args, err := r.sb.Select("id", "student_id", "exam_type", "subject", "marks").
		From("marks").
		Where(squirrel.Eq{"student_id": studentIDs}).
		OrderBy("student_id ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find marks SQL")
		return nil, fmt.Errorf("failed to build find marks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find marks query")
		return nil, fmt.Errorf("error querying marks: %w", err)
	}
	defer rows.Close()

	entries := []models.MarkEntry{}
	for rows.Next() {
		var e models.MarkEntry
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ExamType, &e.Subject, &e.Marks); err != nil {
			logger.Error().Err(err).Msg("Error scanning mark row")
			return nil, fmt.Errorf("error scanning mark row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mark rows: %w", err)
	}
	return entries, nil
}

func markKeyEq(key models.MarkKey) squirrel.Eq {
	return squirrel.Eq{
		"student_id": key.StudentID,
		"exam_type":  string(key.ExamType),
		"subject":    string(key.Subject),
	}
}

// GetMark returns the entry stored under key or ErrMarkNotFound
func (r *pgQueries) GetMark(ctx context.Context, key models.MarkKey) (*models.MarkEntry, error) {
	sql, args, err := r.sb.Select("id", "marks").
		From("marks").
		Where(markKeyEq(key)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mark query: %w", err)
	}

	e := &models.MarkEntry{MarkKey: key}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.Marks); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMarkNotFound
		}
		logger.Error().Err(err).Int64("studentID", key.StudentID).Str("cell", key.Key()).Msg("Error scanning mark row")
		return nil, fmt.Errorf("error getting mark: %w", err)
	}
	return e, nil
}

// InsertMark stores a new entry. When a concurrent transaction created the
// same cell first, the row is overwritten instead, so the last commit wins.
// An unknown student violates the foreign key and yields ErrStudentNotFound.
func (r *pgQueries) InsertMark(ctx context.Context, e models.MarkEntry) (int64, error) {
	sql, args, err := r.sb.Insert("marks").
		Columns("student_id", "exam_type", "subject", "marks").
		Values(e.StudentID, string(e.ExamType), string(e.Subject), e.Marks).
		Suffix("ON CONFLICT ON CONSTRAINT " + constraintMarkCell + " DO UPDATE SET marks = EXCLUDED.marks RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert mark query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return 0, apperrors.ErrStudentNotFound.WithCause(err)
		case dberrors.IsCheckViolation(err):
			return 0, errMarkOutOfRange
		}
		logger.Error().Err(err).Int64("studentID", e.StudentID).Str("cell", e.Key()).Msg("Error executing insert mark query")
		return 0, fmt.Errorf("error inserting mark: %w", err)
	}
	return id, nil
}

// UpdateMark overwrites the value under the entry's key, null included
func (r *pgQueries) UpdateMark(ctx context.Context, e models.MarkEntry) (int64, error) {
	sql, args, err := r.sb.Update("marks").
		Set("marks", e.Marks).
		Where(markKeyEq(e.MarkKey)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update mark query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return 0, errMarkOutOfRange
		}
		logger.Error().Err(err).Int64("studentID", e.StudentID).Str("cell", e.Key()).Msg("Error executing update mark query")
		return 0, fmt.Errorf("error updating mark: %w", err)
	}
	return tag.RowsAffected(), nil
}
