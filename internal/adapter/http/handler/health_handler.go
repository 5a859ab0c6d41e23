package handler

import (
	"net/http"

	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	checkers []ports.HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checkers ...ports.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Check handles GET /health. Any failing dependency degrades the status
// to 503.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:     "ok",
		Components: make(map[string]string, len(h.checkers)),
	}
	status := http.StatusOK

	for _, checker := range h.checkers {
		if err := checker.Ping(c.Request.Context()); err != nil {
			resp.Components[checker.Name()] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[checker.Name()] = "ok"
	}

	c.JSON(status, resp)
}
