package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// MockChannelAPI is a mock implementation of ChannelAPI
type MockChannelAPI struct {
	mock.Mock
}

// Me mocks the Me method
func (m *MockChannelAPI) Me(ctx context.Context) (*repository.BotInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BotInfo), args.Error(1)
}

// ListChats mocks the ListChats method
func (m *MockChannelAPI) ListChats(ctx context.Context) ([]repository.ChatInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ChatInfo), args.Error(1)
}

// UploadAttachment mocks the UploadAttachment method
func (m *MockChannelAPI) UploadAttachment(ctx context.Context, chatID int64, payload []byte, displayName string) (*repository.Attachment, error) {
	args := m.Called(ctx, chatID, payload, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Attachment), args.Error(1)
}

// FetchAttachment mocks the FetchAttachment method
func (m *MockChannelAPI) FetchAttachment(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// GetChatPinned mocks the GetChatPinned method
func (m *MockChannelAPI) GetChatPinned(ctx context.Context, chatID int64) (*repository.PinnedMessage, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PinnedMessage), args.Error(1)
}

// Pin mocks the Pin method
func (m *MockChannelAPI) Pin(ctx context.Context, chatID, messageID int64) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

// Unpin mocks the Unpin method
func (m *MockChannelAPI) Unpin(ctx context.Context, chatID, messageID int64) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}
