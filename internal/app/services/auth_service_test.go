package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/repositories/memstore"
	"github.com/yigit/marksheet/internal/config"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
	"github.com/yigit/marksheet/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*fixture, *AuthService) {
	t.Helper()
	f := newFixture(t, memstore.New(), nil)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenTTL: time.Hour, TokenIssuer: "marksheet"})
	admins := []config.AdminCredential{{Username: "admin", Password: "admin123"}}
	return f, NewAuthService(f.store, admins, jwtService, zerolog.Nop())
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	res, err := svc.Login(ctx, "admin", "admin123", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin login successful", res.Message)
	assert.Equal(t, models.AdminSession("admin"), res.Session)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.ExpiresAt)

	_, err = svc.Login(ctx, "admin", "admin124", "admin")
	assert.ErrorIs(t, err, ErrInvalidAdmin)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginTeacher(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	f.addTeacher(t, "T1", "John Doe", 10, "A")

	res, err := svc.Login(ctx, "T1", "JohnDoe10A", "Teacher")
	require.NoError(t, err)
	assert.Equal(t, "Teacher login successful", res.Message)
	assert.Equal(t, "T1", res.Session.TeacherID)
	assert.Equal(t, 10, res.Session.ClassAssigned)

	_, err = svc.Login(ctx, "T1", "JohnDoe10a", "teacher")
	assert.ErrorIs(t, err, ErrInvalidTeacherPass)

	_, err = svc.Login(ctx, "T9", "JohnDoe10A", "teacher")
	assert.ErrorIs(t, err, ErrTeacherIDNotFound)
}

func TestLoginComparesUsernameExactly(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	f.addTeacher(t, "T1", "John Doe", 10, "A")
	f.addStudent(t, "12", "Amit Kumar", 5, "A", "2012-04-01")

	_, err := svc.Login(ctx, " T1", "JohnDoe10A", "teacher")
	assert.ErrorIs(t, err, ErrTeacherIDNotFound)

	_, err = svc.Login(ctx, "AmitKumar20125A ", "12", "student")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, " admin", "admin123", "admin")
	assert.ErrorIs(t, err, ErrInvalidAdmin)
}

func TestLoginStudent(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	st := f.addStudent(t, "12", "Amit Kumar", 5, "A", "2012-04-01")

	res, err := svc.Login(ctx, "AmitKumar20125A", "12", "student")
	require.NoError(t, err)
	assert.Equal(t, "Student login successful", res.Message)
	assert.Equal(t, st.ID, res.Session.StudentID)
	assert.Equal(t, "12", res.Session.RollNo)

	for _, bad := range [][2]string{
		{"AmitKumar20125B", "12"},
		{"AmitKumar20125A", "13"},
		{"amitKumar20125A", "12"},
		{"AmitKumar2012 5A", "12"},
	} {
		_, err := svc.Login(ctx, bad[0], bad[1], "student")
		assert.ErrorIs(t, err, ErrInvalidStudentLogin, "username %q password %q", bad[0], bad[1])
	}
}

func TestLoginStudentFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	// class 5 section "1A" and class 51 section "A" derive the same username
	first := f.addStudent(t, "7", "Amit Kumar", 5, "1A", "2012-04-01")
	f.addStudent(t, "7", "Amit Kumar", 51, "A", "2012-09-09")

	res, err := svc.Login(ctx, "AmitKumar201251A", "7", "student")
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.Session.StudentID)
}

func TestLoginRejectsIncompleteAndUnknownRole(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Login(ctx, "", "x", "admin")
	assert.ErrorIs(t, err, ErrLoginIncomplete)
	_, err = svc.Login(ctx, "admin", "", "admin")
	assert.ErrorIs(t, err, ErrLoginIncomplete)
	_, err = svc.Login(ctx, "admin", "admin123", "")
	assert.ErrorIs(t, err, ErrLoginIncomplete)

	_, err = svc.Login(ctx, "admin", "admin123", "principal")
	assert.ErrorIs(t, err, ErrLoginInvalidRole)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAuthenticateResolvesCurrentRecord(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	st := f.addStudent(t, "12", "Amit Kumar", 5, "A", "2012-04-01")

	res, err := svc.Login(ctx, "AmitKumar20125A", "12", "student")
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session, session)

	_, err = f.students.RemoveStudent(ctx, st.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)

	_, err = svc.Authenticate(ctx, "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", TokenTTL: time.Hour, TokenIssuer: "marksheet"})
	token, _, err := other.IssueToken(models.AdminSession("admin"))
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestResolveRejectsRemovedTeacher(t *testing.T) {
	ctx := context.Background()
	f, svc := newAuthFixture(t)
	tc := f.addTeacher(t, "T1", "John Doe", 10, "A")
	session := models.TeacherSession(tc)

	resolved, err := svc.Resolve(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, session, resolved)

	_, err = f.teachers.RemoveTeacher(ctx, tc.ID)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, session)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	_, err = svc.Resolve(ctx, models.AdminSession("ghost"))
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}
