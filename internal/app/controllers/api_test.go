package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/repositories/memstore"
	"github.com/yigit/marksheet/internal/bootstrap"
	"github.com/yigit/marksheet/internal/config"
)

type api struct {
	t      *testing.T
	router *gin.Engine
	deps   *bootstrap.Dependencies
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.Redis.TTL = "1m"
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTL = "1h"
	cfg.Auth.Issuer = "marksheet"
	cfg.Auth.Admins = []config.AdminCredential{{Username: "admin", Password: "admin123"}}
	cfg.Events.BufferSize = 16
	return cfg
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := testConfig()
	deps := bootstrap.BuildDependencies(cfg, &bootstrap.Storage{Store: memstore.New()}, zerolog.Nop())
	t.Cleanup(deps.Bus.Close)

	router, err := bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)
	return &api{t: t, router: router, deps: deps}
}

func (a *api) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *api) login(username, password, role string) string {
	a.t.Helper()
	w := a.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password, Role: role})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.LoginResponse](a.t, w).Token
}

func (a *api) adminToken() string {
	return a.login("admin", "admin123", "admin")
}

func (a *api) addStudent(roll, name string, class int, section, dob string) *models.Student {
	a.t.Helper()
	s, err := a.deps.StudentService.AddStudent(context.Background(), &dto.CreateStudentRequest{
		RollNo: roll, Fullname: name, DOB: dob, ClassID: class, Section: section, Phone: "9000000000",
	})
	require.NoError(a.t, err)
	return s
}

func (a *api) addTeacher(id, name string, class int, section string) *models.Teacher {
	a.t.Helper()
	teacher, err := a.deps.TeacherService.AddTeacher(context.Background(), &dto.CreateTeacherRequest{
		TeacherID: id, Fullname: name, DOB: "1980-03-12", ClassAssigned: class, Section: section, Subject: "math",
	})
	require.NoError(a.t, err)
	return teacher
}

func marksBody(studentID int64, exam, subject string, marks interface{}) map[string]interface{} {
	return map[string]interface{}{
		"student_id": studentID,
		"marksData": []map[string]interface{}{
			{"exam_type": exam, "subject": subject, "marks": marks},
		},
	}
}

func TestLogin(t *testing.T) {
	a := newAPI(t)
	a.addStudent("12", "Amit Kumar", 5, "A", "2012-04-01")
	a.addTeacher("T1", "John Doe", 10, "A")

	t.Run("student with derived credentials", func(t *testing.T) {
		w := a.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "AmitKumar20125A", Password: "12", Role: "student"})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.LoginResponse](t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "Student login successful", resp.Message)
		assert.Equal(t, models.RoleStudent, resp.User.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("teacher with derived password", func(t *testing.T) {
		w := a.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "T1", Password: "JohnDoe10A", Role: "teacher"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Teacher login successful", decode[dto.LoginResponse](t, w).Message)
	})

	failures := []struct {
		name    string
		req     dto.LoginRequest
		status  int
		message string
	}{
		{"wrong admin password", dto.LoginRequest{Username: "admin", Password: "nope", Role: "admin"}, http.StatusUnauthorized, "Invalid admin credentials."},
		{"unknown teacher", dto.LoginRequest{Username: "T9", Password: "x", Role: "teacher"}, http.StatusUnauthorized, "Teacher ID not found."},
		{"wrong teacher password", dto.LoginRequest{Username: "T1", Password: "johndoe10a", Role: "teacher"}, http.StatusUnauthorized, "Invalid password for teacher."},
		{"wrong student password", dto.LoginRequest{Username: "AmitKumar20125A", Password: "13", Role: "student"}, http.StatusUnauthorized, "Invalid student credentials."},
		{"missing role", dto.LoginRequest{Username: "admin", Password: "admin123"}, http.StatusBadRequest, "Please enter all credentials and select a role."},
		{"invalid role", dto.LoginRequest{Username: "admin", Password: "admin123", Role: "parent"}, http.StatusBadRequest, "Invalid role selected."},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			w := a.request(http.MethodPost, "/api/auth/login", "", tc.req)
			require.Equal(t, tc.status, w.Code)
			resp := decode[dto.ErrorResponse](t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Error)
			assert.Equal(t, tc.message, resp.Message)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, resp.Error, resp.Message)
	})
}

func TestAuthenticationRequired(t *testing.T) {
	a := newAPI(t)

	w := a.request(http.MethodGet, "/api/students", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeTokenNotFound, decode[dto.ErrorResponse](t, w).Code)

	w = a.request(http.MethodGet, "/api/students", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decode[dto.ErrorResponse](t, w).Code)

	w = a.request(http.MethodGet, "/api/students/count?token="+a.adminToken(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[dto.CountResponse](t, w).Count)
}

func TestSessionEndpoint(t *testing.T) {
	a := newAPI(t)

	w := a.request(http.MethodGet, "/api/auth/session", a.adminToken(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[models.SessionDescriptor](t, w)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.Equal(t, "admin", session.Username)
}

func TestStudentAdministration(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()

	body := dto.CreateStudentRequest{RollNo: "12", Fullname: "Amit Kumar", DOB: "2012-04-01", ClassID: 5, Section: "A", Phone: "9876543210"}

	w := a.request(http.MethodPost, "/api/students", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.CreateStudentResponse](t, w)
	assert.True(t, created.Success)
	assert.Equal(t, "Student added successfully", created.Message)
	assert.Positive(t, created.StudentID)

	w = a.request(http.MethodPost, "/api/students", admin, body)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Student with this roll number already exists in the same class and section", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodPost, "/api/students", admin, dto.CreateStudentRequest{RollNo: "13", Fullname: "No Phone", ClassID: 5, Section: "A"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: Roll Number, Student Name, Class, Section, Phone Number", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodGet, "/api/students/search?roll_no=12&class_id=5&section=A", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amit Kumar", decode[models.Student](t, w).Fullname)

	w = a.request(http.MethodGet, "/api/students/search?roll_no=12&class_id=5", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.request(http.MethodGet, "/api/students?fullname=Amit", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Student](t, w), 1)

	path := "/api/students/" + strconv.FormatInt(created.StudentID, 10)
	w = a.request(http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Student removed successfully", decode[dto.SuccessResponse](t, w).Message)

	w = a.request(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.request(http.MethodDelete, "/api/students/abc", admin, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid student ID format", decode[dto.ErrorResponse](t, w).Error)
}

func TestStudentMutationsAreAdminOnly(t *testing.T) {
	a := newAPI(t)
	a.addTeacher("T1", "John Doe", 10, "A")
	teacher := a.login("T1", "JohnDoe10A", "teacher")

	w := a.request(http.MethodPost, "/api/students", teacher, dto.CreateStudentRequest{RollNo: "1", Fullname: "X", ClassID: 10, Section: "A", Phone: "1"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decode[dto.ErrorResponse](t, w).Code)
}

func TestByClassSectionReturnsEveryGridKey(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()
	ten := a.addStudent("10", "Ravi Das", 5, "A", "2012-02-02")
	a.addStudent("2", "Neha Verma", 5, "A", "2012-09-23")
	a.addStudent("1", "Other Section", 5, "B", "2012-01-01")

	w := a.request(http.MethodPost, "/api/students/marks", admin, marksBody(ten.ID, "unit1", "math", 88))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.request(http.MethodGet, "/api/students/byClassSection?class_id=5&section=A", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]interface{}](t, w)
	require.Len(t, rows, 2)

	assert.Equal(t, "2", rows[0]["roll_no"])
	assert.Equal(t, "10", rows[1]["roll_no"])
	for _, row := range rows {
		assert.Len(t, row, models.GridSize+5)
		assert.Contains(t, row, "yearly_moral_science")
	}
	assert.Nil(t, rows[0]["unit1_math"])
	assert.Equal(t, float64(88), rows[1]["unit1_math"])

	w = a.request(http.MethodGet, "/api/students/byClassSection?class_id=5", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertMarksPermissions(t *testing.T) {
	a := newAPI(t)
	own := a.addStudent("3", "Rahul Singh", 10, "A", "2007-01-30")
	other := a.addStudent("12", "Amit Kumar", 5, "A", "2012-04-01")
	a.addTeacher("T1", "John Doe", 10, "A")

	teacher := a.login("T1", "JohnDoe10A", "teacher")
	student := a.login("AmitKumar20125A", "12", "student")

	w := a.request(http.MethodPost, "/api/students/marks", teacher, marksBody(own.ID, "half_yearly", "sst", 67))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Student marks saved successfully.", decode[dto.SuccessResponse](t, w).Message)

	w = a.request(http.MethodPost, "/api/students/marks", teacher, marksBody(other.ID, "unit1", "math", 50))
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only manage marks of your own class and section", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodPost, "/api/students/marks", teacher, marksBody(9999, "unit1", "math", 50))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.request(http.MethodPost, "/api/students/marks", student, marksBody(other.ID, "unit1", "math", 100))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpsertMarksValidation(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()
	s := a.addStudent("12", "Amit Kumar", 5, "A", "2012-04-01")

	w := a.request(http.MethodPost, "/api/students/marks", admin, map[string]interface{}{"student_id": s.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Student ID and marks data array are required.", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodPost, "/api/students/marks", admin, marksBody(s.ID, "unit1", "math", 101))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Error, "Invalid marks data")

	w = a.request(http.MethodPost, "/api/students/marks", admin, marksBody(s.ID, "final", "math", 10))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.request(http.MethodPost, "/api/students/marks", admin, marksBody(s.ID, "unit1", "math", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStudentMarksOwnership(t *testing.T) {
	a := newAPI(t)
	amit := a.addStudent("12", "Amit Kumar", 5, "A", "2012-04-01")
	neha := a.addStudent("7", "Neha Verma", 5, "A", "2012-09-23")

	admin := a.adminToken()
	w := a.request(http.MethodPost, "/api/students/marks", admin, marksBody(amit.ID, "yearly", "drawing", 95))
	require.Equal(t, http.StatusOK, w.Code)

	student := a.login("AmitKumar20125A", "12", "student")

	w = a.request(http.MethodGet, "/api/students/"+strconv.FormatInt(amit.ID, 10)+"/marks", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	grid := decode[map[string]interface{}](t, w)
	assert.Len(t, grid, models.GridSize+1)
	assert.Equal(t, float64(amit.ID), grid["student_id"])
	assert.Equal(t, float64(95), grid["yearly_drawing"])

	w = a.request(http.MethodGet, "/api/students/"+strconv.FormatInt(neha.ID, 10)+"/marks", student, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only view your own records", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodGet, "/api/students/9999/marks", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemovedStudentLosesSession(t *testing.T) {
	a := newAPI(t)
	amit := a.addStudent("12", "Amit Kumar", 5, "A", "2012-04-01")
	student := a.login("AmitKumar20125A", "12", "student")

	w := a.request(http.MethodGet, "/api/auth/session", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, amit.ID, decode[models.SessionDescriptor](t, w).StudentID)

	w = a.request(http.MethodDelete, "/api/students/"+strconv.FormatInt(amit.ID, 10), a.adminToken(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.request(http.MethodGet, "/api/auth/session", student, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeSessionRevoked, decode[dto.ErrorResponse](t, w).Code)
}

func TestTeacherAdministration(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()
	body := dto.CreateTeacherRequest{TeacherID: "T1", Fullname: "John Doe", DOB: "1980-03-12", ClassAssigned: 10, Section: "A", Subject: "math"}

	w := a.request(http.MethodPost, "/api/teachers", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.CreateTeacherResponse](t, w)
	assert.Equal(t, "Teacher added successfully", created.Message)

	w = a.request(http.MethodPost, "/api/teachers", admin, body)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Teacher with ID T1 already exists.", decode[dto.ErrorResponse](t, w).Error)

	w = a.request(http.MethodPost, "/api/teachers", admin, dto.CreateTeacherRequest{TeacherID: "T2"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required: Teacher ID, Full Name, Date of Birth, Class Assigned, Section, Subject", decode[dto.ErrorResponse](t, w).Error)

	path := "/api/teachers/" + strconv.FormatInt(created.TeacherID, 10)
	w = a.request(http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T1", decode[models.Teacher](t, w).TeacherID)

	w = a.request(http.MethodGet, "/api/teachers?class_assigned=10", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Teacher](t, w), 1)

	w = a.request(http.MethodGet, "/api/teachers/count", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[dto.CountResponse](t, w).Count)

	w = a.request(http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Teacher removed successfully", decode[dto.SuccessResponse](t, w).Message)

	w = a.request(http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	w := a.request(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Storage: "memory", Clients: 0}, decode[dto.HealthResponse](t, w))
}
