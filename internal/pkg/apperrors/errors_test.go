package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatching(t *testing.T) {
	cause := errors.New("connection reset by peer")
	wrapped := fmt.Errorf("upsert marks: %w", ErrUpsertFailed.WithCause(cause))

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "sentinel matches itself", err: ErrStudentNotFound, target: ErrStudentNotFound, want: true},
		{name: "sentinel matches its kind", err: ErrStudentNotFound, target: ErrResourceNotFound, want: true},
		{name: "different message does not match", err: ErrStudentNotFound, target: ErrTeacherNotFound, want: false},
		{name: "copy with cause matches sentinel", err: wrapped, target: ErrUpsertFailed, want: true},
		{name: "copy with cause matches kind", err: wrapped, target: ErrStorageFailure, want: true},
		{name: "cause is reachable", err: wrapped, target: cause, want: true},
		{name: "conflict is not not-found", err: ErrTeacherAlreadyExists, target: ErrResourceNotFound, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestMessageHidesCause(t *testing.T) {
	err := NewStorageError("Failed to add student", errors.New("pq: relation does not exist"))

	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "Failed to add student", msg)
	assert.Equal(t, "Failed to add student", err.Error())

	_, ok = Message(errors.New("plain"))
	assert.False(t, ok)
}
