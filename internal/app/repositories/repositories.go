package repositories

import (
	"context"

	"github.com/yigit/marksheet/internal/app/models"
)

// StudentQueries reads and writes student rows
type StudentQueries interface {
	// FindStudents lists students matching filter in store order (id ascending)
	FindStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	// ListStudentsByClass lists a class section ordered by roll number
	ListStudentsByClass(ctx context.Context, classID int, section string) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByNaturalKey(ctx context.Context, key models.StudentNaturalKey) (*models.Student, error)
	StudentExists(ctx context.Context, key models.StudentNaturalKey) (bool, error)
	InsertStudent(ctx context.Context, student *models.Student) (int64, error)
	// DeleteStudent removes the student and its marks and returns the removed row
	DeleteStudent(ctx context.Context, id int64) (*models.Student, error)
	CountStudents(ctx context.Context) (int64, error)
}

// TeacherQueries reads and writes teacher rows
type TeacherQueries interface {
	FindTeachers(ctx context.Context, filter models.TeacherFilter) ([]*models.Teacher, error)
	GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetTeacherByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
	TeacherIDExists(ctx context.Context, teacherID string) (bool, error)
	InsertTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	DeleteTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	CountTeachers(ctx context.Context) (int64, error)
}

// MarkQueries reads and writes mark entries
type MarkQueries interface {
	FindMarks(ctx context.Context, studentIDs ...int64) ([]models.MarkEntry, error)
	GetMark(ctx context.Context, key models.MarkKey) (*models.MarkEntry, error)
	// InsertMark creates the entry, or overwrites it when the key already exists
	InsertMark(ctx context.Context, entry models.MarkEntry) (int64, error)
	// UpdateMark overwrites the value stored under entry's key
	UpdateMark(ctx context.Context, entry models.MarkEntry) (int64, error)
}

// Queries is the full query surface, available outside and inside a transaction
type Queries interface {
	StudentQueries
	TeacherQueries
	MarkQueries
}

// TxFn runs inside a transaction; returning an error rolls it back
type TxFn func(ctx context.Context, q Queries) error

// RecordStore is the storage used by the services
type RecordStore interface {
	Queries
	// WithTransaction commits every write made through q only if fn returns nil
	WithTransaction(ctx context.Context, fn TxFn) error
	// Driver names the backing storage, e.g. "postgres"
	Driver() string
}
