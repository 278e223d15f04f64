package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	domainrepo "github.com/tgcloud/tgcloud/internal/domain/repository"
	infrarepo "github.com/tgcloud/tgcloud/internal/infrastructure/repository"
	"github.com/tgcloud/tgcloud/internal/usecase"
	"github.com/tgcloud/tgcloud/internal/usecase/mocks"
	"github.com/tgcloud/tgcloud/pkg/sharelink"
)

func newSessionUseCase(chat *fakeChat, repo domainrepo.SessionRepository) *usecase.SessionUseCase {
	return usecase.NewSessionUseCase(repo,
		func(string) domainrepo.ChannelAPI { return chat },
		infrarepo.NewPinnedIndexStore)
}

func TestConnectCreatesAndPersistsSession(t *testing.T) {
	chat := newFakeChat()
	repo := new(mocks.MockSessionRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*entities.Session")).Return(nil)

	sessions := newSessionUseCase(chat, repo)
	session, err := sessions.Connect(context.Background(), "123:token", 42)

	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, int64(42), session.ChatID)
	assert.Equal(t, entities.UserHashFor("123:token"), session.UserHash)
	repo.AssertCalled(t, "Save", mock.Anything, session)

	// The catalog is live immediately.
	catalog, err := sessions.Catalog(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, catalog.List(entities.ListOptions{}))
}

func TestCatalogUnknownSession(t *testing.T) {
	chat := newFakeChat()
	repo := new(mocks.MockSessionRepository)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, entities.ErrSessionNotFound)

	sessions := newSessionUseCase(chat, repo)
	_, err := sessions.Catalog(context.Background(), "nope")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestCatalogResumesPersistedSession(t *testing.T) {
	chat := newFakeChat()
	ctx := context.Background()

	// A previous process uploaded a file.
	previous := newTestCatalog(t, chat)
	_, err := previous.Upload(ctx, []byte("persisted"), "old.txt", "")
	require.NoError(t, err)

	stored := &entities.Session{
		ID:        "resumed-session",
		BotToken:  "123:token",
		UserHash:  entities.UserHashFor("123:token"),
		ChatID:    42,
		CreatedAt: time.Now().UTC(),
	}
	repo := new(mocks.MockSessionRepository)
	repo.On("GetByID", mock.Anything, "resumed-session").Return(stored, nil)

	sessions := newSessionUseCase(chat, repo)
	catalog, err := sessions.Catalog(ctx, "resumed-session")
	require.NoError(t, err)

	listing := catalog.List(entities.ListOptions{})
	require.Len(t, listing, 1)
	assert.Equal(t, "old.txt", listing[0].Name)

	// The resumed catalog is cached; the repo is not hit again.
	again, err := sessions.Catalog(ctx, "resumed-session")
	require.NoError(t, err)
	assert.Same(t, catalog, again)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestSessionsListsPersistedBindings(t *testing.T) {
	chat := newFakeChat()
	stored := []*entities.Session{
		{ID: "s1", BotToken: "123:token", ChatID: 42},
		{ID: "s2", BotToken: "456:token", ChatID: 43},
	}
	repo := new(mocks.MockSessionRepository)
	repo.On("List", mock.Anything).Return(stored, nil)

	sessions := newSessionUseCase(chat, repo)
	listed, err := sessions.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "s1", listed[0].ID)
	assert.Equal(t, "s2", listed[1].ID)
}

func TestDisconnect(t *testing.T) {
	chat := newFakeChat()
	repo := new(mocks.MockSessionRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	sessions := newSessionUseCase(chat, repo)
	session, err := sessions.Connect(context.Background(), "123:token", 42)
	require.NoError(t, err)

	require.NoError(t, sessions.Disconnect(context.Background(), session.ID))

	repo.On("GetByID", mock.Anything, session.ID).Return(nil, entities.ErrSessionNotFound)
	_, err = sessions.Catalog(context.Background(), session.ID)
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestDiscoverChats(t *testing.T) {
	chat := newFakeChat()
	sessions := newSessionUseCase(chat, new(mocks.MockSessionRepository))

	chats, err := sessions.DiscoverChats(context.Background(), "123:token")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, int64(42), chats[0].ID)
}

func TestRedeemMalformedToken(t *testing.T) {
	chat := newFakeChat()
	sessions := newSessionUseCase(chat, new(mocks.MockSessionRepository))

	_, _, err := sessions.Redeem(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, sharelink.ErrMalformed)
}

func TestRedeemStaleHandle(t *testing.T) {
	chat := newFakeChat()
	sessions := newSessionUseCase(chat, new(mocks.MockSessionRepository))

	token, err := sharelink.Encode(sharelink.Record{
		BotToken: "123:token",
		FileID:   "file-never-uploaded",
		Name:     "gone.txt",
	})
	require.NoError(t, err)

	_, _, err = sessions.Redeem(context.Background(), token)
	assert.ErrorIs(t, err, entities.ErrTransport)
}
