package repository

import (
	"context"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// IndexStore maintains the authoritative index for one chat, persisting it
// through the chat's pinned message. Implementations are not safe for
// concurrent use; the owning catalog serializes access.
type IndexStore interface {
	// Load fetches the index behind the chat's pinned message. No pinned
	// message, or a pinned message that is not recognized as an index
	// document, yields an empty index: that is the normal first-use
	// condition. A pinned index document that cannot be fetched or
	// parsed also yields an empty index, but with an error wrapping
	// entities.ErrSyncFailed so the caller can warn that real data may
	// have been discarded.
	Load(ctx context.Context) (entities.Index, error)

	// Save uploads the serialized index under the reserved marker name,
	// pins the new message, and only then unpins the previous pointer.
	// If the upload fails nothing changes. If the pin fails the store
	// is left degraded: a newer index blob exists unpinned, and further
	// saves are refused until a fresh Load re-establishes the pointer.
	Save(ctx context.Context, index entities.Index) error
}

// IndexStoreFactory builds an IndexStore bound to one chat on one
// channel session.
type IndexStoreFactory func(api ChannelAPI, chatID int64) IndexStore
