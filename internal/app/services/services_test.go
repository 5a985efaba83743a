package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/app/repositories/memstore"
	"github.com/yigit/marksheet/internal/pkg/cache"
	"github.com/yigit/marksheet/internal/pkg/events"
)

var errDiskFull = errors.New("disk full")

// faultyStore fails the n-th mark insert made inside a transaction
type faultyStore struct {
	*memstore.Store
	failOnInsert int
}

func (f *faultyStore) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	return f.Store.WithTransaction(ctx, func(ctx context.Context, q repositories.Queries) error {
		return fn(ctx, &faultyQueries{Queries: q, failOn: f.failOnInsert})
	})
}

type faultyQueries struct {
	repositories.Queries
	failOn  int
	inserts int
}

func (q *faultyQueries) InsertMark(ctx context.Context, entry models.MarkEntry) (int64, error) {
	q.inserts++
	if q.inserts == q.failOn {
		return 0, errDiskFull
	}
	return q.Queries.InsertMark(ctx, entry)
}

type fixture struct {
	store    repositories.RecordStore
	bus      *events.Bus
	sub      *events.Subscription
	marks    MarksService
	students StudentService
	teachers TeacherService
}

func newFixture(t *testing.T, store repositories.RecordStore, gridCache *cache.GridCache) *fixture {
	t.Helper()
	bus := events.NewBus(256, zerolog.Nop())
	sub := bus.Subscribe()
	t.Cleanup(bus.Close)

	return &fixture{
		store:    store,
		bus:      bus,
		sub:      sub,
		marks:    NewMarksService(store, gridCache, bus, zerolog.Nop()),
		students: NewStudentService(store, gridCache, bus, zerolog.Nop()),
		teachers: NewTeacherService(store, bus, zerolog.Nop()),
	}
}

// published drains everything delivered so far
func (f *fixture) published() []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-f.sub.C():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func (f *fixture) addStudent(t *testing.T, roll, name string, class int, section, dob string) *models.Student {
	t.Helper()
	st, err := f.students.AddStudent(context.Background(), &dto.CreateStudentRequest{
		RollNo: roll, Fullname: name, ClassID: class, Section: section, DOB: dob, Phone: "9876543210",
	})
	require.NoError(t, err)
	return st
}

func (f *fixture) addTeacher(t *testing.T, id, name string, class int, section string) *models.Teacher {
	t.Helper()
	tc, err := f.teachers.AddTeacher(context.Background(), &dto.CreateTeacherRequest{
		TeacherID: id, Fullname: name, DOB: "1985-07-15", ClassAssigned: class, Section: section, Subject: "math",
	})
	require.NoError(t, err)
	return tc
}

func kinds(evs []events.Event) []events.Kind {
	out := make([]events.Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}
