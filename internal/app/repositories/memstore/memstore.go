// Package memstore provides an in-memory RecordStore. A transaction works on
// a cloned state which replaces the live one only when the transaction
// function succeeds, so a failed batch leaves no trace.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
)

type state struct {
	students map[int64]models.Student
	teachers map[int64]models.Teacher
	marks    map[models.MarkKey]models.MarkEntry

	nextStudentID int64
	nextTeacherID int64
	nextMarkID    int64
}

func newState() state {
	return state{
		students: make(map[int64]models.Student),
		teachers: make(map[int64]models.Teacher),
		marks:    make(map[models.MarkKey]models.MarkEntry),
	}
}

func (s state) clone() state {
	c := state{
		students:      make(map[int64]models.Student, len(s.students)),
		teachers:      make(map[int64]models.Teacher, len(s.teachers)),
		marks:         make(map[models.MarkKey]models.MarkEntry, len(s.marks)),
		nextStudentID: s.nextStudentID,
		nextTeacherID: s.nextTeacherID,
		nextMarkID:    s.nextMarkID,
	}
	for k, v := range s.students {
		c.students[k] = cloneStudent(v)
	}
	for k, v := range s.teachers {
		c.teachers[k] = cloneTeacher(v)
	}
	for k, v := range s.marks {
		c.marks[k] = cloneMark(v)
	}
	return c
}

func cloneStudent(s models.Student) models.Student {
	if s.DOB != nil {
		dob := *s.DOB
		s.DOB = &dob
	}
	if s.Email != nil {
		email := *s.Email
		s.Email = &email
	}
	return s
}

func cloneTeacher(t models.Teacher) models.Teacher {
	if t.DOB != nil {
		dob := *t.DOB
		t.DOB = &dob
	}
	return t
}

func cloneMark(e models.MarkEntry) models.MarkEntry {
	if e.Marks != nil {
		v := *e.Marks
		e.Marks = &v
	}
	return e
}

// Store is a mutex-guarded in-memory RecordStore
type Store struct {
	mu    sync.RWMutex
	state state
}

var _ repositories.RecordStore = (*Store)(nil)

// New creates an empty store
func New() *Store {
	return &Store{state: newState()}
}

// Driver implements RecordStore
func (s *Store) Driver() string {
	return "memory"
}

// WithTransaction serialises fn against other writers and commits its
// changes only when it returns nil.
func (s *Store) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(ctx, &view{st: &work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) read() *view {
	return &view{st: &s.state}
}

// FindStudents implements StudentQueries
func (s *Store) FindStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindStudents(ctx, filter)
}

// ListStudentsByClass implements StudentQueries
func (s *Store) ListStudentsByClass(ctx context.Context, classID int, section string) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListStudentsByClass(ctx, classID, section)
}

// GetStudentByID implements StudentQueries
func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetStudentByID(ctx, id)
}

// GetStudentByNaturalKey implements StudentQueries
func (s *Store) GetStudentByNaturalKey(ctx context.Context, key models.StudentNaturalKey) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetStudentByNaturalKey(ctx, key)
}

// StudentExists implements StudentQueries
func (s *Store) StudentExists(ctx context.Context, key models.StudentNaturalKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().StudentExists(ctx, key)
}

// InsertStudent implements StudentQueries
func (s *Store) InsertStudent(ctx context.Context, student *models.Student) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().InsertStudent(ctx, student)
}

// DeleteStudent implements StudentQueries
func (s *Store) DeleteStudent(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteStudent(ctx, id)
}

// CountStudents implements StudentQueries
func (s *Store) CountStudents(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().CountStudents(ctx)
}

// FindTeachers implements TeacherQueries
func (s *Store) FindTeachers(ctx context.Context, filter models.TeacherFilter) ([]*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindTeachers(ctx, filter)
}

// GetTeacherByID implements TeacherQueries
func (s *Store) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetTeacherByID(ctx, id)
}

// GetTeacherByTeacherID implements TeacherQueries
func (s *Store) GetTeacherByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetTeacherByTeacherID(ctx, teacherID)
}

// TeacherIDExists implements TeacherQueries
func (s *Store) TeacherIDExists(ctx context.Context, teacherID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().TeacherIDExists(ctx, teacherID)
}

// InsertTeacher implements TeacherQueries
func (s *Store) InsertTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().InsertTeacher(ctx, teacher)
}

// DeleteTeacher implements TeacherQueries
func (s *Store) DeleteTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteTeacher(ctx, id)
}

// CountTeachers implements TeacherQueries
func (s *Store) CountTeachers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().CountTeachers(ctx)
}

// FindMarks implements MarkQueries
func (s *Store) FindMarks(ctx context.Context, studentIDs ...int64) ([]models.MarkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindMarks(ctx, studentIDs...)
}

// GetMark implements MarkQueries
func (s *Store) GetMark(ctx context.Context, key models.MarkKey) (*models.MarkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetMark(ctx, key)
}

// InsertMark implements MarkQueries
func (s *Store) InsertMark(ctx context.Context, entry models.MarkEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().InsertMark(ctx, entry)
}

// UpdateMark implements MarkQueries
func (s *Store) UpdateMark(ctx context.Context, entry models.MarkEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateMark(ctx, entry)
}

// view runs queries against one state without locking; the caller holds the lock
type view struct {
	st *state
}

var _ repositories.Queries = (*view)(nil)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (v *view) sortedStudents(match func(*models.Student) bool) []*models.Student {
	out := []*models.Student{}
	for _, st := range v.st.students {
		st := cloneStudent(st)
		if match(&st) {
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *view) FindStudents(_ context.Context, f models.StudentFilter) ([]*models.Student, error) {
	return v.sortedStudents(func(s *models.Student) bool {
		return (f.RollNo == "" || s.RollNo == f.RollNo) &&
			(f.Fullname == "" || containsFold(s.Fullname, f.Fullname)) &&
			(f.ClassID == nil || s.ClassID == *f.ClassID) &&
			(f.Section == "" || s.Section == f.Section)
	}), nil
}

func (v *view) ListStudentsByClass(_ context.Context, classID int, section string) ([]*models.Student, error) {
	out := v.sortedStudents(func(s *models.Student) bool { return s.InClass(classID, section) })
	sort.SliceStable(out, func(i, j int) bool {
		return models.CompareRollNo(out[i].RollNo, out[j].RollNo) < 0
	})
	return out, nil
}

func (v *view) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	st, ok := v.st.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	st = cloneStudent(st)
	return &st, nil
}

func (v *view) GetStudentByNaturalKey(_ context.Context, key models.StudentNaturalKey) (*models.Student, error) {
	found := v.sortedStudents(func(s *models.Student) bool { return s.NaturalKey() == key })
	if len(found) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return found[0], nil
}

func (v *view) StudentExists(ctx context.Context, key models.StudentNaturalKey) (bool, error) {
	_, err := v.GetStudentByNaturalKey(ctx, key)
	return err == nil, nil
}

func (v *view) InsertStudent(ctx context.Context, student *models.Student) (int64, error) {
	if exists, _ := v.StudentExists(ctx, student.NaturalKey()); exists {
		return 0, apperrors.ErrStudentAlreadyExists
	}
	v.st.nextStudentID++
	row := cloneStudent(*student)
	row.ID = v.st.nextStudentID
	v.st.students[row.ID] = row
	return row.ID, nil
}

func (v *view) DeleteStudent(_ context.Context, id int64) (*models.Student, error) {
	st, ok := v.st.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	delete(v.st.students, id)
	for key := range v.st.marks {
		if key.StudentID == id {
			delete(v.st.marks, key)
		}
	}
	return &st, nil
}

func (v *view) CountStudents(context.Context) (int64, error) {
	return int64(len(v.st.students)), nil
}

func (v *view) sortedTeachers(match func(*models.Teacher) bool) []*models.Teacher {
	out := []*models.Teacher{}
	for _, t := range v.st.teachers {
		t := cloneTeacher(t)
		if match(&t) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *view) FindTeachers(_ context.Context, f models.TeacherFilter) ([]*models.Teacher, error) {
	return v.sortedTeachers(func(t *models.Teacher) bool {
		return (f.TeacherID == "" || t.TeacherID == f.TeacherID) &&
			(f.Fullname == "" || containsFold(t.Fullname, f.Fullname)) &&
			(f.ClassAssigned == nil || t.ClassAssigned == *f.ClassAssigned) &&
			(f.Section == "" || t.Section == f.Section)
	}), nil
}

func (v *view) GetTeacherByID(_ context.Context, id int64) (*models.Teacher, error) {
	t, ok := v.st.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	t = cloneTeacher(t)
	return &t, nil
}

func (v *view) GetTeacherByTeacherID(_ context.Context, teacherID string) (*models.Teacher, error) {
	found := v.sortedTeachers(func(t *models.Teacher) bool { return t.TeacherID == teacherID })
	if len(found) == 0 {
		return nil, apperrors.ErrTeacherNotFound
	}
	return found[0], nil
}

func (v *view) TeacherIDExists(ctx context.Context, teacherID string) (bool, error) {
	_, err := v.GetTeacherByTeacherID(ctx, teacherID)
	return err == nil, nil
}

func (v *view) InsertTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	if exists, _ := v.TeacherIDExists(ctx, teacher.TeacherID); exists {
		return 0, apperrors.ErrTeacherAlreadyExists
	}
	v.st.nextTeacherID++
	row := cloneTeacher(*teacher)
	row.ID = v.st.nextTeacherID
	v.st.teachers[row.ID] = row
	return row.ID, nil
}

func (v *view) DeleteTeacher(_ context.Context, id int64) (*models.Teacher, error) {
	t, ok := v.st.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	delete(v.st.teachers, id)
	return &t, nil
}

func (v *view) CountTeachers(context.Context) (int64, error) {
	return int64(len(v.st.teachers)), nil
}

func (v *view) FindMarks(_ context.Context, studentIDs ...int64) ([]models.MarkEntry, error) {
	wanted := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	out := []models.MarkEntry{}
	for key, e := range v.st.marks {
		if wanted[key.StudentID] {
			out = append(out, cloneMark(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (v *view) GetMark(_ context.Context, key models.MarkKey) (*models.MarkEntry, error) {
	e, ok := v.st.marks[key]
	if !ok {
		return nil, apperrors.ErrMarkNotFound
	}
	e = cloneMark(e)
	return &e, nil
}

func (v *view) InsertMark(_ context.Context, entry models.MarkEntry) (int64, error) {
	if _, ok := v.st.students[entry.StudentID]; !ok {
		return 0, apperrors.ErrStudentNotFound
	}
	if !entry.Valid() {
		return 0, apperrors.NewValidationError("invalid mark cell " + entry.Key())
	}
	if entry.Marks != nil && (*entry.Marks < models.MinMark || *entry.Marks > models.MaxMark) {
		return 0, apperrors.NewValidationError("mark out of range for " + entry.Key())
	}
	if e, ok := v.st.marks[entry.MarkKey]; ok {
		e.Marks = cloneMark(entry).Marks
		v.st.marks[entry.MarkKey] = e
		return e.ID, nil
	}
	v.st.nextMarkID++
	row := cloneMark(entry)
	row.ID = v.st.nextMarkID
	v.st.marks[row.MarkKey] = row
	return row.ID, nil
}

func (v *view) UpdateMark(_ context.Context, entry models.MarkEntry) (int64, error) {
	e, ok := v.st.marks[entry.MarkKey]
	if !ok {
		return 0, nil
	}
	if entry.Marks != nil && (*entry.Marks < models.MinMark || *entry.Marks > models.MaxMark) {
		return 0, apperrors.NewValidationError("mark out of range for " + entry.Key())
	}
	e.Marks = cloneMark(entry).Marks
	v.st.marks[entry.MarkKey] = e
	return 1, nil
}
