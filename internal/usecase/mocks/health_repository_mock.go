package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// MockHealthRepository is a mock implementation of HealthRepository
type MockHealthRepository struct {
	mock.Mock
}

// CheckHealth mocks the CheckHealth method
func (m *MockHealthRepository) CheckHealth(ctx context.Context) (*entities.HealthCheck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HealthCheck), args.Error(1)
}

// CheckDatabase mocks the CheckDatabase method
func (m *MockHealthRepository) CheckDatabase(ctx context.Context) entities.CheckResult {
	args := m.Called(ctx)
	return args.Get(0).(entities.CheckResult)
}
