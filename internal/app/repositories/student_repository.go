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

var studentColumns = []string{
	"id", "roll_no", "fullname", "father_name", "mother_name", "dob",
	"class_id", "section", "address", "phone", "email",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.RollNo, &s.Fullname, &s.FatherName, &s.MotherName, &s.DOB,
		&s.ClassID, &s.Section, &s.Address, &s.Phone, &s.Email)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgQueries) selectStudents(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building student SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing student query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// FindStudents lists students matching the filter ordered by id
func (r *pgQueries) FindStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	query := r.sb.Select(studentColumns...).From("students").OrderBy("id ASC")

	if filter.RollNo != "" {
		query = query.Where(squirrel.Eq{"roll_no": filter.RollNo})
	}
	if filter.Fullname != "" {
		query = query.Where(squirrel.ILike{"fullname": containsPattern(filter.Fullname)})
	}
	if filter.ClassID != nil {
		query = query.Where(squirrel.Eq{"class_id": *filter.ClassID})
	}
	if filter.Section != "" {
		query = query.Where(squirrel.Eq{"section": filter.Section})
	}

	return r.selectStudents(ctx, query, "find students")
}

// ListStudentsByClass lists one class section; roll numbers sort numerically
// when they are digit strings.
func (r *pgQueries) ListStudentsByClass(ctx context.Context, classID int, section string) ([]*models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"class_id": classID, "section": section}).
		OrderBy("char_length(roll_no) ASC", "roll_no ASC", "id ASC")

	return r.selectStudents(ctx, query, "list class students")
}

func (r *pgQueries) getStudent(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return s, nil
}

// GetStudentByID retrieves a student by its store id
func (r *pgQueries) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"id": id})
}

// GetStudentByNaturalKey retrieves a student by roll number, class and section
func (r *pgQueries) GetStudentByNaturalKey(ctx context.Context, key models.StudentNaturalKey) (*models.Student, error) {
	return r.getStudent(ctx, squirrel.Eq{"roll_no": key.RollNo, "class_id": key.ClassID, "section": key.Section})
}

// StudentExists reports whether the natural key is taken
func (r *pgQueries) StudentExists(ctx context.Context, key models.StudentNaturalKey) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"roll_no": key.RollNo, "class_id": key.ClassID, "section": key.Section}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student exists SQL")
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	return r.exists(ctx, sql, args)
}

// InsertStudent inserts a student and returns its id. A natural-key clash
// yields ErrStudentAlreadyExists.
func (r *pgQueries) InsertStudent(ctx context.Context, s *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("roll_no", "fullname", "father_name", "mother_name", "dob",
			"class_id", "section", "address", "phone", "email").
		Values(s.RollNo, s.Fullname, s.FatherName, s.MotherName, s.DOB,
			s.ClassID, s.Section, s.Address, s.Phone, s.Email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert student SQL")
		return 0, fmt.Errorf("failed to build insert student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintStudentNaturalKey) {
			return 0, apperrors.ErrStudentAlreadyExists
		}
		logger.Error().Err(err).Str("rollNo", s.RollNo).Msg("Error executing insert student query")
		return 0, fmt.Errorf("error inserting student: %w", err)
	}
	return id, nil
}

// DeleteStudent deletes a student; its marks go with it (ON DELETE CASCADE)
func (r *pgQueries) DeleteStudent(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return nil, fmt.Errorf("failed to build delete student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return nil, fmt.Errorf("error deleting student: %w", err)
	}
	return s, nil
}

// CountStudents returns the number of students
func (r *pgQueries) CountStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, "students")
}

func (r *pgQueries) count(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

// exists runs a "SELECT 1 ... LIMIT 1" query
func (r *pgQueries) exists(ctx context.Context, sql string, args []interface{}) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error executing exists query")
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return true, nil
}
