package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/fathom-relay/internal/usecase/health"
)

// HealthHandler serves the liveness report
type HealthHandler struct {
	reporter *health.Reporter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reporter *health.Reporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// Health returns process liveness and configuration presence
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  health.Report
// @Router       /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reporter.Report())
}
