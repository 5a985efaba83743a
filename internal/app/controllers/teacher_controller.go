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

// TeacherController handles teacher administration and lookups
type TeacherController struct {
	teacherService services.TeacherService
	logger         zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService, logger zerolog.Logger) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
		logger:         logger,
	}
}

// AddTeacher handles teacher creation
// @Summary Add a teacher
// @Description Creates a teacher. Every field is required and teacher_id must be unique; it is also the teacher's login name.
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Success 201 {object} dto.CreateTeacherResponse "Teacher added"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 409 {object} dto.ErrorResponse "Teacher ID already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers [post]
func (c *TeacherController) AddTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.AddTeacher(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTeacherResponse{
		Success:   true,
		Message:   "Teacher added successfully",
		TeacherID: teacher.ID,
	})
}

// RemoveTeacher handles teacher deletion
// @Summary Remove a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher row ID"
// @Success 200 {object} dto.SuccessResponse "Teacher removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [delete]
func (c *TeacherController) RemoveTeacher(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "teacher")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.teacherService.RemoveTeacher(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Teacher removed successfully"})
}

// GetTeacher returns one teacher
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher row ID"
// @Success 200 {object} models.Teacher "Teacher"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "teacher")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	teacher, err := c.teacherService.GetTeacher(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, teacher)
}

// ListTeachers handles the filtered teacher listing
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param teacher_id query string false "Teacher ID"
// @Param fullname query string false "Part of the name"
// @Param class_assigned query int false "Class"
// @Param section query string false "Section"
// @Success 200 {array} models.Teacher "Teachers"
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	var query dto.TeacherQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	teachers, err := c.teacherService.ListTeachers(ctx.Request.Context(), models.TeacherFilter{
		TeacherID:     query.TeacherID,
		Fullname:      query.Fullname,
		ClassAssigned: query.ClassAssigned,
		Section:       query.Section,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, teachers)
}

// CountTeachers returns the number of teachers
// @Summary Count teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CountResponse "Teacher count"
// @Router /teachers/count [get]
func (c *TeacherController) CountTeachers(ctx *gin.Context) {
	n, err := c.teacherService.CountTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
