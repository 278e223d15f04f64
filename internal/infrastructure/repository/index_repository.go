package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
)

// IndexMarkerName is the reserved display name under which the index
// document is uploaded. A pinned message carrying any other name is user
// content, not ours.
const IndexMarkerName = "tgcloud-index.json"

// syncState tracks the store's knowledge of the chat's pointer.
type syncState int

const (
	stateUnsynced syncState = iota
	stateSynced
	stateDegraded
)

// PinnedIndexStore keeps the index for one chat reachable through the
// chat's pinned message: the current index document is always the pinned
// message, and replacing the index means pin-new-then-unpin-old. At most
// one writer per chat is supported; a concurrent second writer wins by
// overwriting the pointer.
type PinnedIndexStore struct {
	api     repository.ChannelAPI
	chatID  int64
	state   syncState
	pointer *repository.PinnedMessage
}

// NewPinnedIndexStore builds a store for one chat on one channel session.
func NewPinnedIndexStore(api repository.ChannelAPI, chatID int64) repository.IndexStore {
	return &PinnedIndexStore{api: api, chatID: chatID}
}

// Load reconciles with the chat's pinned message. See the interface
// contract for the empty-index and sync-failure cases.
func (s *PinnedIndexStore) Load(ctx context.Context) (entities.Index, error) {
	pinned, err := s.api.GetChatPinned(ctx, s.chatID)
	if err != nil {
		return nil, fmt.Errorf("reading chat state: %w", err)
	}

	if pinned == nil || pinned.FileID == "" || pinned.Name != IndexMarkerName {
		// First use: nothing pinned, or the pinned message is not an
		// index document. Not a failure.
		s.pointer = nil
		s.state = stateSynced
		return entities.Index{}, nil
	}

	// The pointer is known even if the document turns out unreadable; a
	// later Save replaces it.
	s.pointer = pinned
	s.state = stateSynced

	data, err := s.api.FetchAttachment(ctx, pinned.FileID)
	if err != nil {
		log.Printf("WARN: chat %d: pinned index unreadable, starting empty: %v", s.chatID, err)
		return entities.Index{}, fmt.Errorf("%w: fetching pinned index: %w", entities.ErrSyncFailed, err)
	}
	var index entities.Index
	if err := json.Unmarshal(data, &index); err != nil {
		log.Printf("WARN: chat %d: pinned index unparseable, starting empty: %v", s.chatID, err)
		return entities.Index{}, fmt.Errorf("%w: parsing pinned index: %w", entities.ErrSyncFailed, err)
	}
	if index == nil {
		// A body of "null" unmarshals into a nil map without error.
		index = entities.Index{}
	}
	return index, nil
}

// Save publishes a new index document and advances the pointer. The new
// pin must be live before the old one is removed, so there is no window
// with zero valid pointers.
func (s *PinnedIndexStore) Save(ctx context.Context, index entities.Index) error {
	switch s.state {
	case stateUnsynced:
		return fmt.Errorf("%w: index never loaded for chat %d", entities.ErrSyncFailed, s.chatID)
	case stateDegraded:
		return fmt.Errorf("%w: a newer index exists unpinned; reload before saving", entities.ErrSyncFailed)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializing index: %v", entities.ErrSyncFailed, err)
	}

	attachment, err := s.api.UploadAttachment(ctx, s.chatID, data, IndexMarkerName)
	if err != nil {
		// Nothing changed remotely; the caller's mutation is revertable.
		return fmt.Errorf("uploading index: %w", err)
	}

	if err := s.api.Pin(ctx, s.chatID, attachment.MessageID); err != nil {
		// The new blob exists but is not reachable as the pointer. The
		// store cannot self-heal this; the operator must grant pin
		// rights and reload.
		s.state = stateDegraded
		return fmt.Errorf("pinning index message: %w", err)
	}

	previous := s.pointer
	s.pointer = &repository.PinnedMessage{
		MessageID: attachment.MessageID,
		FileID:    attachment.FileID,
		Name:      IndexMarkerName,
	}
	s.state = stateSynced

	if previous != nil && previous.MessageID != attachment.MessageID {
		if err := s.api.Unpin(ctx, s.chatID, previous.MessageID); err != nil {
			log.Printf("WARN: chat %d: could not unpin superseded index message %d: %v",
				s.chatID, previous.MessageID, err)
		}
	}
	return nil
}
