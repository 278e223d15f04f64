package usecase

import (
	"context"
	"time"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// HealthUseCase handles health check business logic
type HealthUseCase struct {
	healthRepo repository.HealthRepository
	startTime  time.Time
	version    string
}

// NewHealthUseCase creates a new health use case
func NewHealthUseCase(healthRepo repository.HealthRepository, version string) *HealthUseCase {
	return &HealthUseCase{
		healthRepo: healthRepo,
		startTime:  time.Now(),
		version:    version,
	}
}

// GetHealth returns the overall health status
func (h *HealthUseCase) GetHealth(ctx context.Context) (*entities.HealthCheck, error) {
	health, err := h.healthRepo.CheckHealth(ctx)
	if err != nil {
		return nil, err
	}

	health.Version = h.version
	health.Uptime = time.Since(h.startTime)
	health.Timestamp = time.Now()
	return health, nil
}
