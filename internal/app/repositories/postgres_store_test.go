package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case **int:
			*p = r.values[i].(*int)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

// recorder captures the last statement and replays a canned result
type recorder struct {
	sql  string
	args []any
	row  fakeRow
	tag  pgconn.CommandTag
	err  error
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return r.tag, r.err
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql, r.args = sql, args
	return nil, errors.New("query not supported by recorder")
}

func (r *recorder) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.sql, r.args = sql, args
	return r.row
}

func TestInsertStudentMapsNaturalKeyViolation(t *testing.T) {
	rec := &recorder{row: fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: constraintStudentNaturalKey}}}
	q := newPgQueries(rec)

	_, err := q.InsertStudent(context.Background(), &models.Student{RollNo: "1", Fullname: "A", ClassID: 5, Section: "A"})
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, rec.sql, "INSERT INTO students")
	assert.Contains(t, rec.sql, "RETURNING id")
	assert.Len(t, rec.args, 10)
}

func TestInsertStudentReturnsID(t *testing.T) {
	rec := &recorder{row: fakeRow{values: []any{int64(17)}}}
	id, err := newPgQueries(rec).InsertStudent(context.Background(), &models.Student{RollNo: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)
}

func TestGetStudentNotFound(t *testing.T) {
	rec := &recorder{row: fakeRow{err: pgx.ErrNoRows}}
	_, err := newPgQueries(rec).GetStudentByID(context.Background(), 3)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Contains(t, rec.sql, "SELECT id, roll_no, fullname, father_name, mother_name, dob, class_id, section, address, phone, email FROM students")
	assert.Contains(t, rec.sql, "WHERE id = $1")
	assert.Equal(t, []any{int64(3)}, rec.args)
}

func TestStudentExists(t *testing.T) {
	rec := &recorder{row: fakeRow{err: pgx.ErrNoRows}}
	q := newPgQueries(rec)
	key := models.StudentNaturalKey{RollNo: "1", ClassID: 5, Section: "A"}

	ok, err := q.StudentExists(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, rec.sql, "class_id = $1 AND roll_no = $2 AND section = $3")
	assert.Equal(t, []any{5, "1", "A"}, rec.args)

	rec.row = fakeRow{values: []any{1}}
	ok, err = q.StudentExists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInsertMarkForeignKeyViolation(t *testing.T) {
	rec := &recorder{row: fakeRow{err: &pgconn.PgError{Code: "23503", ConstraintName: "marks_student_id_fkey"}}}
	entry := models.MarkEntry{MarkKey: models.MarkKey{StudentID: 99, MarkCell: models.MarkCell{ExamType: models.ExamUnit1, Subject: models.SubjectMath}}}

	_, err := newPgQueries(rec).InsertMark(context.Background(), entry)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Equal(t, "INSERT INTO marks (student_id,exam_type,subject,marks) VALUES ($1,$2,$3,$4) "+
		"ON CONFLICT ON CONSTRAINT marks_cell_key DO UPDATE SET marks = EXCLUDED.marks RETURNING id", rec.sql)
}

func TestInsertMarkOverwritesConcurrentlyCreatedCell(t *testing.T) {
	rec := &recorder{row: fakeRow{values: []any{int64(41)}}}
	entry := models.MarkEntry{
		MarkKey: models.MarkKey{StudentID: 4, MarkCell: models.MarkCell{ExamType: models.ExamUnit1, Subject: models.SubjectMath}},
		Marks:   models.IntPtr(72),
	}

	id, err := newPgQueries(rec).InsertMark(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
	assert.Contains(t, rec.sql, "ON CONFLICT ON CONSTRAINT marks_cell_key DO UPDATE SET marks = EXCLUDED.marks")
	assert.Equal(t, []any{int64(4), "unit1", "math", entry.Marks}, rec.args)
}

func TestMarkRangeViolationIsValidationError(t *testing.T) {
	check := &pgconn.PgError{Code: "23514", ConstraintName: "marks_value_range"}
	hundredOne := 101
	entry := models.MarkEntry{
		MarkKey: models.MarkKey{StudentID: 4, MarkCell: models.MarkCell{ExamType: models.ExamUnit2, Subject: models.SubjectSST}},
		Marks:   &hundredOne,
	}

	_, err := newPgQueries(&recorder{row: fakeRow{err: check}}).InsertMark(context.Background(), entry)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = newPgQueries(&recorder{err: check}).UpdateMark(context.Background(), entry)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateMarkWritesNull(t *testing.T) {
	rec := &recorder{tag: pgconn.NewCommandTag("UPDATE 1")}
	entry := models.MarkEntry{MarkKey: models.MarkKey{StudentID: 4, MarkCell: models.MarkCell{ExamType: models.ExamYearly, Subject: models.SubjectGK}}}

	n, err := newPgQueries(rec).UpdateMark(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "UPDATE marks SET marks = $1 WHERE exam_type = $2 AND student_id = $3 AND subject = $4", rec.sql)
	require.Len(t, rec.args, 4)
	assert.Nil(t, rec.args[0])
}

func TestFindMarksWithoutIDsSkipsQuery(t *testing.T) {
	rec := &recorder{}
	entries, err := newPgQueries(rec).FindMarks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, rec.sql)
}

func TestContainsPatternEscapes(t *testing.T) {
	assert.Equal(t, `%Amit%`, containsPattern("Amit"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_off"))
}
