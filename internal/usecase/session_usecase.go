package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
	"github.com/tgcloud/tgcloud/pkg/sharelink"
)

// SessionUseCase manages the lifecycle of sessions: one bot credential
// bound to one chat, with one catalog (and one index store) per active
// session. Bindings are persisted so sessions can be resumed lazily after
// a restart.
type SessionUseCase struct {
	mu         sync.Mutex
	sessions   repository.SessionRepository
	newChannel repository.ChannelFactory
	newStore   repository.IndexStoreFactory
	catalogs   map[string]*CatalogUseCase
}

// NewSessionUseCase wires the session manager. The factories keep this
// package independent of the concrete backend client and store.
func NewSessionUseCase(sessions repository.SessionRepository,
	newChannel repository.ChannelFactory, newStore repository.IndexStoreFactory) *SessionUseCase {
	return &SessionUseCase{
		sessions:   sessions,
		newChannel: newChannel,
		newStore:   newStore,
		catalogs:   make(map[string]*CatalogUseCase),
	}
}

// DiscoverChats lists the chats a credential can store into, from the
// bot's pending updates. The bot must have received at least one message
// from a chat for it to appear.
func (s *SessionUseCase) DiscoverChats(ctx context.Context, botToken string) ([]repository.ChatInfo, error) {
	api := s.newChannel(botToken)
	if _, err := api.Me(ctx); err != nil {
		return nil, fmt.Errorf("validating credential: %w", err)
	}
	return api.ListChats(ctx)
}

// Connect validates the credential, binds it to the chat, performs the
// initial index load and persists the session. An unreadable remote index
// degrades to an empty catalog (already logged by the store) rather than
// failing the connection.
func (s *SessionUseCase) Connect(ctx context.Context, botToken string, chatID int64) (*entities.Session, error) {
	api := s.newChannel(botToken)
	bot, err := api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("validating credential: %w", err)
	}

	session := &entities.Session{
		ID:        uuid.NewString(),
		BotToken:  botToken,
		UserHash:  entities.UserHashFor(botToken),
		ChatID:    chatID,
		CreatedAt: time.Now().UTC(),
	}

	catalog := NewCatalogUseCase(session, api, s.newStore(api, chatID))
	if err := catalog.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading index for chat %d: %w", chatID, err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.catalogs[session.ID] = catalog
	s.mu.Unlock()

	log.Printf("session %s: bot @%s connected to chat %d", session.ID, bot.Username, chatID)
	return session, nil
}

// Catalog returns the live catalog for a session id, resuming a persisted
// session on first access after a restart.
func (s *SessionUseCase) Catalog(ctx context.Context, sessionID string) (*CatalogUseCase, error) {
	s.mu.Lock()
	catalog, ok := s.catalogs[sessionID]
	s.mu.Unlock()
	if ok {
		return catalog, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	api := s.newChannel(session.BotToken)
	catalog = NewCatalogUseCase(session, api, s.newStore(api, session.ChatID))
	if err := catalog.Load(ctx); err != nil {
		return nil, fmt.Errorf("resuming session %s: %w", sessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.catalogs[sessionID]; ok {
		// Another caller resumed it first; keep the one already in use.
		return existing, nil
	}
	s.catalogs[sessionID] = catalog
	return catalog, nil
}

// Sessions lists every persisted session binding, including ones not yet
// resumed since the last restart. Tokens never leave this layer; the
// entity hides them from serialization.
func (s *SessionUseCase) Sessions(ctx context.Context) ([]*entities.Session, error) {
	return s.sessions.List(ctx)
}

// Disconnect drops the session binding and its in-memory catalog. Stored
// files and the pinned index are untouched.
func (s *SessionUseCase) Disconnect(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.catalogs, sessionID)
	s.mu.Unlock()
	return nil
}

// Redeem decodes a share token and fetches the file through a transient
// session built from the token's own credential. No catalog is consulted:
// the token stays usable after the original entry is deleted, failing
// only if the backend no longer honors the handle.
func (s *SessionUseCase) Redeem(ctx context.Context, token string) ([]byte, *sharelink.Record, error) {
	record, err := sharelink.Decode(token)
	if err != nil {
		return nil, nil, err
	}

	api := s.newChannel(record.BotToken)
	data, err := api.FetchAttachment(ctx, record.FileID)
	if err != nil {
		return nil, nil, fmt.Errorf("redeeming share for %q: %w", record.Name, err)
	}
	return data, record, nil
}
