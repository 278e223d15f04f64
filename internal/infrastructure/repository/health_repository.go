package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// HealthRepositoryImpl implements HealthRepository against the session
// database. Backend reachability is deliberately not probed here: health
// must stay cheap and must not consume Bot API quota.
type HealthRepositoryImpl struct {
	db *sql.DB
}

// NewHealthRepository creates a new health repository
func NewHealthRepository(db *sql.DB) repository.HealthRepository {
	return &HealthRepositoryImpl{db: db}
}

// CheckHealth performs all checks and aggregates the result
func (h *HealthRepositoryImpl) CheckHealth(ctx context.Context) (*entities.HealthCheck, error) {
	checks := map[string]entities.CheckResult{
		"database": h.CheckDatabase(ctx),
	}

	overall := entities.HealthStatusUp
	for _, check := range checks {
		if check.Status == entities.HealthStatusDown {
			overall = entities.HealthStatusDown
		}
	}

	var sessions int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&sessions); err != nil {
		sessions = 0
	}

	return &entities.HealthCheck{
		Status:         overall,
		Checks:         checks,
		ActiveSessions: sessions,
	}, nil
}

// CheckDatabase verifies the session database responds to a ping
func (h *HealthRepositoryImpl) CheckDatabase(ctx context.Context) entities.CheckResult {
	if err := h.db.PingContext(ctx); err != nil {
		return entities.CheckResult{
			Status:  entities.HealthStatusDown,
			Message: fmt.Sprintf("Database connection failed: %v", err),
		}
	}
	return entities.CheckResult{Status: entities.HealthStatusUp, Message: "Database is healthy"}
}
