package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

// Save mocks the Save method
func (m *MockSessionRepository) Save(ctx context.Context, session *entities.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetByID mocks the GetByID method
func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

// List mocks the List method
func (m *MockSessionRepository) List(ctx context.Context) ([]*entities.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Session), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
