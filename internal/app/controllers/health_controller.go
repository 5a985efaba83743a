package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/marksheet/internal/app/models/dto"
)

// ClientCounter reports connected event subscribers
type ClientCounter interface {
	Clients() int
}

// HealthController reports liveness
type HealthController struct {
	driver  string
	clients ClientCounter
}

// NewHealthController creates a new HealthController
func NewHealthController(driver string, clients ClientCounter) *HealthController {
	return &HealthController{driver: driver, clients: clients}
}

// Health handles the liveness check
// @Summary Health check
// @Description Reports the storage driver in use and the number of connected dashboards.
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is up"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Storage: c.driver,
		Clients: c.clients.Clients(),
	})
}
