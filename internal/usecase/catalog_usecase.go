package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/domain/repository"
	"github.com/tgcloud/tgcloud/pkg/archive"
	"github.com/tgcloud/tgcloud/pkg/fingerprint"
	"github.com/tgcloud/tgcloud/pkg/sharelink"
)

// CatalogUseCase keeps one session's file catalog and the remote binary
// store mutually consistent. Every mutation goes: apply in memory, push
// the index through the store, revert in memory on failure. The mutex
// serializes callers within this process; cross-process writers against
// the same chat are last-writer-wins and unsupported.
type CatalogUseCase struct {
	mu      sync.Mutex
	session *entities.Session
	api     repository.ChannelAPI
	store   repository.IndexStore
	index   entities.Index
}

// NewCatalogUseCase builds the catalog for one session. Call Load before
// using it.
func NewCatalogUseCase(session *entities.Session, api repository.ChannelAPI, store repository.IndexStore) *CatalogUseCase {
	return &CatalogUseCase{
		session: session,
		api:     api,
		store:   store,
		index:   entities.Index{},
	}
}

// Session returns the session this catalog belongs to.
func (c *CatalogUseCase) Session() *entities.Session {
	return c.session
}

// Load fetches the remote index and replaces the in-memory copy. An
// unreadable pinned index is degraded to an empty catalog with a warning
// already logged by the store; the session stays usable.
func (c *CatalogUseCase) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index, err := c.store.Load(ctx)
	if err != nil && !errors.Is(err, entities.ErrSyncFailed) {
		return err
	}
	if index == nil {
		index = entities.Index{}
	}
	c.index = index
	return nil
}

// Upload stores payload under logicalName (uploadName when empty) and
// publishes the updated index. Identical content under the same logical
// name is a no-op reported via UploadResult.AlreadyStored, with no network
// traffic at all.
func (c *CatalogUseCase) Upload(ctx context.Context, payload []byte, uploadName, logicalName string) (*entities.UploadResult, error) {
	if entities.TooLarge(int64(len(payload))) {
		return nil, fmt.Errorf("%q: %w", uploadName, entities.ErrTooLarge)
	}
	if logicalName == "" {
		logicalName = uploadName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	hash := fingerprint.Sum(payload)
	// Dedup only against a well-formed stored digest: a corrupted entry
	// must force a real upload, not a false hit.
	if current, ok := c.index[logicalName]; ok && fingerprint.Valid(current.Hash) && current.Hash == hash {
		return &entities.UploadResult{
			Name:          logicalName,
			Size:          current.Size,
			Hash:          hash,
			AlreadyStored: true,
		}, nil
	}

	attachment, err := c.api.UploadAttachment(ctx, c.session.ChatID, payload, uploadName)
	if err != nil {
		return nil, fmt.Errorf("uploading %q: %w", logicalName, err)
	}

	previous := c.index.Clone()
	c.index[logicalName] = entities.IndexEntry{
		FileID:       attachment.FileID,
		Hash:         hash,
		Size:         int64(len(payload)),
		UploadDate:   time.Now().UTC(),
		OriginalName: uploadName,
	}

	if err := c.store.Save(ctx, c.index); err != nil {
		// Revert so the in-memory view matches what was last confirmed
		// remotely. The uploaded binary stays behind as an orphan; the
		// backend offers no way to remove it.
		c.index = previous
		return nil, fmt.Errorf("%q was uploaded but the catalog could not be updated: %w: %w",
			logicalName, entities.ErrSyncFailed, err)
	}

	log.Printf("session %s: stored %q (%s, %d bytes)",
		c.session.ID, logicalName, fingerprint.Short(hash, 8), len(payload))
	return &entities.UploadResult{
		Name: logicalName,
		Size: int64(len(payload)),
		Hash: hash,
	}, nil
}

// UploadFolder packs a local folder into a zip archive and uploads it as
// a single file. The logical name defaults to "<folder>.zip".
func (c *CatalogUseCase) UploadFolder(ctx context.Context, folderPath, logicalName string) (*entities.UploadResult, error) {
	payload, err := archive.ZipFolder(folderPath)
	if err != nil {
		return nil, err
	}
	uploadName := filepath.Base(filepath.Clean(folderPath)) + ".zip"
	return c.Upload(ctx, payload, uploadName, logicalName)
}

// Download fetches the bytes behind a logical name.
func (c *CatalogUseCase) Download(ctx context.Context, logicalName string) ([]byte, *entities.IndexEntry, error) {
	c.mu.Lock()
	entry, ok := c.index[logicalName]
	c.mu.Unlock()
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", logicalName, entities.ErrNotFound)
	}

	data, err := c.api.FetchAttachment(ctx, entry.FileID)
	if err != nil {
		return nil, nil, fmt.Errorf("downloading %q: %w", logicalName, err)
	}
	return data, &entry, nil
}

// Delete removes the catalog entry and publishes the updated index. The
// remote binary itself is never removed, only the reference to it. A
// failed save re-inserts the entry.
func (c *CatalogUseCase) Delete(ctx context.Context, logicalName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[logicalName]; !ok {
		return fmt.Errorf("%q: %w", logicalName, entities.ErrNotFound)
	}

	previous := c.index.Clone()
	delete(c.index, logicalName)
	if err := c.store.Save(ctx, c.index); err != nil {
		c.index = previous
		return fmt.Errorf("deleting %q: %w: %w", logicalName, entities.ErrSyncFailed, err)
	}
	return nil
}

// List filters and orders the in-memory index. No network access.
func (c *CatalogUseCase) List(opts entities.ListOptions) []entities.NamedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	query := strings.ToLower(opts.Query)
	result := make([]entities.NamedEntry, 0, len(c.index))
	for name, entry := range c.index {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		result = append(result, entities.NamedEntry{Name: name, Entry: entry})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if opts.Descending {
			a, b = b, a
		}
		switch opts.SortBy {
		case entities.SortBySize:
			return a.Entry.Size < b.Entry.Size
		case entities.SortByDate:
			return a.Entry.UploadDate.Before(b.Entry.UploadDate)
		default:
			return a.Name < b.Name
		}
	})
	return result
}

// Stats summarizes the catalog: totals plus the five largest and five most
// recently uploaded files.
func (c *CatalogUseCase) Stats() entities.CatalogStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := entities.CatalogStats{TotalFiles: len(c.index)}
	all := make([]entities.NamedEntry, 0, len(c.index))
	for name, entry := range c.index {
		stats.TotalBytes += entry.Size
		all = append(all, entities.NamedEntry{Name: name, Entry: entry})
	}
	if stats.TotalFiles > 0 {
		stats.AverageSize = stats.TotalBytes / int64(stats.TotalFiles)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Entry.Size > all[j].Entry.Size })
	stats.Largest = topN(all, 5)

	sort.Slice(all, func(i, j int) bool { return all[i].Entry.UploadDate.After(all[j].Entry.UploadDate) })
	stats.Recent = topN(all, 5)

	return stats
}

func topN(entries []entities.NamedEntry, n int) []entities.NamedEntry {
	if len(entries) < n {
		n = len(entries)
	}
	top := make([]entities.NamedEntry, n)
	copy(top, entries[:n])
	return top
}

// Share issues a self-contained token for a catalogued file. The token
// copies the entry and the session credential; deleting the entry later
// does not revoke tokens already handed out.
func (c *CatalogUseCase) Share(logicalName string) (string, error) {
	c.mu.Lock()
	entry, ok := c.index[logicalName]
	c.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%q: %w", logicalName, entities.ErrNotFound)
	}

	token, err := sharelink.Encode(sharelink.Record{
		BotToken:   c.session.BotToken,
		FileID:     entry.FileID,
		Name:       logicalName,
		Size:       entry.Size,
		UploadDate: entry.UploadDate,
	})
	if err != nil {
		return "", fmt.Errorf("sharing %q: %v", logicalName, err)
	}
	log.Printf("issued share token for %q (session %s)", logicalName, c.session.ID)
	return token, nil
}
