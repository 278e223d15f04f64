package entities

import "time"

// HealthStatus represents the health state of the service
type HealthStatus string

const (
	HealthStatusUp      HealthStatus = "up"
	HealthStatusDown    HealthStatus = "down"
	HealthStatusPartial HealthStatus = "partial"
)

// CheckResult is the outcome of a single health check
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message"`
}

// HealthCheck aggregates the individual checks
type HealthCheck struct {
	Status         HealthStatus           `json:"status"`
	Checks         map[string]CheckResult `json:"checks"`
	ActiveSessions int                    `json:"active_sessions"`
	Version        string                 `json:"version"`
	Uptime         time.Duration          `json:"uptime"`
	Timestamp      time.Time              `json:"timestamp"`
}
