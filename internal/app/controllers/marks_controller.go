package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/marksheet/internal/app/auth"
	"github.com/yigit/marksheet/internal/app/models/dto"
	"github.com/yigit/marksheet/internal/app/services"
	"github.com/yigit/marksheet/internal/middleware"
)

// MarksController handles mark sheet reads and writes
type MarksController struct {
	marksService services.MarksService
	authz        *appauth.AuthorizationService
	logger       zerolog.Logger
}

// NewMarksController creates a new MarksController
func NewMarksController(marksService services.MarksService, authz *appauth.AuthorizationService, logger zerolog.Logger) *MarksController {
	return &MarksController{
		marksService: marksService,
		authz:        authz,
		logger:       logger,
	}
}

// UpsertMarks writes a batch of mark cells
// @Summary Save student marks
// @Description Inserts or updates every listed cell in one transaction: either all cells are written or none. A null mark is stored as null. Teachers may only write for their own class and section.
// @Tags marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertMarksRequest true "Student ID and cells"
// @Success 200 {object} dto.SuccessResponse "Marks saved"
// @Failure 400 {object} dto.ErrorResponse "Missing student ID, marks data or invalid cell"
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's class and section"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Batch rolled back"
// @Router /students/marks [post]
func (c *MarksController) UpsertMarks(ctx *gin.Context) {
	var req dto.UpsertMarksRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, _ := middleware.SessionFrom(ctx)
	if req.StudentID > 0 {
		if err := c.authz.CanWriteMarks(ctx.Request.Context(), session, req.StudentID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	var cells []services.MarkCellInput
	if req.MarksData != nil {
		cells = make([]services.MarkCellInput, len(req.MarksData))
		for i, m := range req.MarksData {
			cells[i] = services.MarkCellInput{ExamType: m.ExamType, Subject: m.Subject, Marks: m.Marks}
		}
	}

	if err := c.marksService.UpsertMarks(ctx.Request.Context(), req.StudentID, cells); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("subject", session.SubjectID()).Int64("studentID", req.StudentID).Msg("Marks saved")
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Student marks saved successfully."})
}

// GetStudentMarks returns one student's flattened grid
// @Summary Get student marks
// @Description Returns student_id and all 48 <exam>_<subject> keys (null when ungraded). Students may only read their own.
// @Tags marks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} object "student_id and <exam>_<subject> keys"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Not the caller's record"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/marks [get]
func (c *MarksController) GetStudentMarks(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "student")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, _ := middleware.SessionFrom(ctx)
	if err := c.authz.CanViewStudent(session, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grid, err := c.marksService.GetStudentMarks(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make(map[string]interface{}, len(grid)+1)
	for key, v := range grid.Flatten() {
		out[key] = v
	}
	out["student_id"] = id
	ctx.JSON(http.StatusOK, out)
}
