package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/marksheet/internal/db"
)

// Constraint names from migrations/001_init.sql
const (
	constraintStudentNaturalKey = "students_natural_key"
	constraintTeacherID         = "teachers_teacher_id_key"
	constraintMarkCell          = "marks_cell_key"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQueries implements Queries on top of a querier
type pgQueries struct {
	db querier
	sb squirrel.StatementBuilderType
}

func newPgQueries(q querier) *pgQueries {
	return &pgQueries{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// PostgresStore is the RecordStore backed by PostgreSQL
type PostgresStore struct {
	*pgQueries
	database *db.PostgresDB
}

// NewPostgresStore creates a store running its queries on the pool
func NewPostgresStore(database *db.PostgresDB) *PostgresStore {
	return &PostgresStore{
		pgQueries: newPgQueries(database.Pool),
		database:  database,
	}
}

// WithTransaction runs fn with queries bound to a single transaction
func (s *PostgresStore) WithTransaction(ctx context.Context, fn TxFn) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newPgQueries(tx))
	})
}

// Driver implements RecordStore
func (s *PostgresStore) Driver() string {
	return "postgres"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive partial-match pattern
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
