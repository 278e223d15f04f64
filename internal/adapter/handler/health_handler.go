package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	healthUseCase *usecase.HealthUseCase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(healthUseCase *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{healthUseCase: healthUseCase}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.GetHealth)
}

// GetHealth returns the service health status
// @Summary Get service health
// @Tags Health
// @Produce json
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	health, err := h.healthUseCase.GetHealth(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	statusCode := http.StatusOK
	if health.Status == entities.HealthStatusDown {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, health)
}
