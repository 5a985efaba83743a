package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/marksheet/internal/app/models"
	"github.com/yigit/marksheet/internal/pkg/apperrors"
)

// parseIDParam reads a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + label + " ID format")
	}
	return id, nil
}

// gridRow renders a student with its flattened grid: identity columns plus
// all 48 "<exam>_<subject>" keys, null when ungraded.
func gridRow(student *models.Student, grid models.MarkGrid) map[string]interface{} {
	row := make(map[string]interface{}, models.GridSize+5)
	for key, v := range grid.Flatten() {
		row[key] = v
	}
	row["student_id"] = student.ID
	row["roll_no"] = student.RollNo
	row["fullname"] = student.Fullname
	row["class_id"] = student.ClassID
	row["section"] = student.Section
	return row
}
