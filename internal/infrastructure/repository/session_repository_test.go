package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	domainrepo "github.com/tgcloud/tgcloud/internal/domain/repository"
	infrarepo "github.com/tgcloud/tgcloud/internal/infrastructure/repository"
)

func newTestSessionRepo(t *testing.T) domainrepo.SessionRepository {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := infrarepo.NewSQLiteSessionRepository(db)
	require.NoError(t, err)
	return repo
}

func testStoredSession(id string) *entities.Session {
	return &entities.Session{
		ID:        id,
		BotToken:  "123:token",
		UserHash:  entities.UserHashFor("123:token"),
		ChatID:    42,
		CreatedAt: time.Date(2026, 5, 6, 7, 8, 9, 123456000, time.UTC),
	}
}

func TestSessionRepositorySaveAndGet(t *testing.T) {
	repo := newTestSessionRepo(t)
	ctx := context.Background()

	session := testStoredSession("s1")
	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	repo := newTestSessionRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestSessionRepositorySaveReplaces(t *testing.T) {
	repo := newTestSessionRepo(t)
	ctx := context.Background()

	session := testStoredSession("s1")
	require.NoError(t, repo.Save(ctx, session))

	session.ChatID = 77
	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(77), loaded.ChatID)
}

func TestSessionRepositoryList(t *testing.T) {
	repo := newTestSessionRepo(t)
	ctx := context.Background()

	first := testStoredSession("s1")
	second := testStoredSession("s2")
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, "s2", sessions[1].ID)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := newTestSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testStoredSession("s1")))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "s1"), entities.ErrSessionNotFound)
}
