package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// MockIndexStore is a mock implementation of IndexStore
type MockIndexStore struct {
	mock.Mock
}

// Load mocks the Load method
func (m *MockIndexStore) Load(ctx context.Context) (entities.Index, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.Index), args.Error(1)
}

// Save mocks the Save method
func (m *MockIndexStore) Save(ctx context.Context, index entities.Index) error {
	args := m.Called(ctx, index)
	return args.Error(0)
}
