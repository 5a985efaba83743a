package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/services"
	"github.com/yigit/marksheet/internal/middleware"
)

// StudentController handles student administration and lookups
type StudentController struct {
	studentService services.StudentService
	marksService   services.MarksService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	marksService services.MarksService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		marksService:   marksService,
		logger:         logger,
	}
}

// AddStudent handles student creation
// @Summary Add a student
// @Description Creates a student. Roll number, name, class, section and phone are required; (roll_no, class_id, section) must be unique.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.CreateStudentResponse "Student added"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 409 {object} dto.ErrorResponse "Roll number taken in this class and section"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.AddStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateStudentResponse{
		Success:   true,
		Message:   "Student added successfully",
		StudentID: student.ID,
	})
}

// RemoveStudent handles student deletion
// @Summary Remove a student
// @Description Deletes the student together with all of its marks
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.SuccessResponse "Student removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) RemoveStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "student")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.studentService.RemoveStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Student removed successfully"})
}

// ListStudents handles the filtered student listing
// @Summary List students
// @Description Lists students in insertion order. fullname is a partial, case-insensitive match.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param roll_no query string false "Roll number"
// @Param fullname query string false "Part of the name"
// @Param class_id query int false "Class"
// @Param section query string false "Section"
// @Success 200 {array} models.Student "Students"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var query dto.StudentQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), models.StudentFilter{
		RollNo:   query.RollNo,
		Fullname: query.Fullname,
		ClassID:  query.ClassID,
		Section:  query.Section,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// SearchStudent handles the natural-key lookup
// @Summary Find a student
// @Description Finds the student with the given roll number in a class section
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param roll_no query string true "Roll number"
// @Param class_id query int true "Class"
// @Param section query string true "Section"
// @Success 200 {object} models.Student "Student"
// @Failure 400 {object} dto.ErrorResponse "Missing parameters"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/search [get]
func (c *StudentController) SearchStudent(ctx *gin.Context) {
	var query dto.StudentSearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	student, err := c.studentService.SearchStudent(ctx.Request.Context(), models.StudentNaturalKey{
		RollNo:  query.RollNo,
		ClassID: query.ClassID,
		Section: query.Section,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// ListByClassSection returns a class section with every student's grid
// @Summary Class section mark sheet
// @Description Lists the students of a class section ordered by roll number, each with all 48 mark keys (null when ungraded)
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param class_id query int true "Class"
// @Param section query string true "Section"
// @Success 200 {array} object "student_id, roll_no, fullname, class_id, section and <exam>_<subject> keys"
// @Failure 400 {object} dto.ErrorResponse "Missing parameters"
// @Router /students/byClassSection [get]
func (c *StudentController) ListByClassSection(ctx *gin.Context) {
	var query dto.ClassSectionQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	rows, err := c.marksService.ListClassSection(ctx.Request.Context(), query.ClassID, query.Section)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]map[string]interface{}, len(rows))
	for i, r := range rows {
		out[i] = gridRow(r.Student, r.Grid)
	}
	ctx.JSON(http.StatusOK, out)
}

// CountStudents returns the number of students
// @Summary Count students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CountResponse "Student count"
// @Router /students/count [get]
func (c *StudentController) CountStudents(ctx *gin.Context) {
	n, err := c.studentService.CountStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
