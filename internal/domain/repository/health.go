package repository

import (
	"context"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// HealthRepository defines the interface for health checks
type HealthRepository interface {
	// CheckHealth runs all checks and aggregates the result
	CheckHealth(ctx context.Context) (*entities.HealthCheck, error)

	// CheckDatabase verifies the session database is reachable
	CheckDatabase(ctx context.Context) entities.CheckResult
}
