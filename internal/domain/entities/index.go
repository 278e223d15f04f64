package entities

import (
	"time"
)

// MaxAttachmentSize is the largest payload the messaging backend accepts
// for a single attachment (2 GiB).
const MaxAttachmentSize int64 = 2 << 30

// TooLarge reports whether a payload of the given size would be rejected
// by the backend. Exactly MaxAttachmentSize is still accepted.
func TooLarge(size int64) bool {
	return size > MaxAttachmentSize
}

// IndexEntry describes one catalogued file. The JSON field names match the
// serialized index document stored in the chat.
type IndexEntry struct {
	FileID       string    `json:"file_id"`
	Hash         string    `json:"hash"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"upload_date"`
	OriginalName string    `json:"original_filename"`
}

// Index maps a logical file name to its storage metadata. Every entry
// present refers to an attachment that was reachable at the time the index
// was last saved.
type Index map[string]IndexEntry

// Clone returns a shallow copy of the index. Entries are value types, so
// the copy is safe to mutate independently.
func (i Index) Clone() Index {
	c := make(Index, len(i))
	for name, entry := range i {
		c[name] = entry
	}
	return c
}

// NamedEntry pairs a logical name with its entry for listing results.
type NamedEntry struct {
	Name  string     `json:"name"`
	Entry IndexEntry `json:"entry"`
}

// Sort fields accepted by List.
const (
	SortByName = "name"
	SortBySize = "size"
	SortByDate = "date"
)

// ListOptions narrows and orders a catalog listing. Query is a
// case-insensitive substring match on the logical name. Descending applies
// to whichever sort field is selected; the zero value lists everything
// sorted by name ascending.
type ListOptions struct {
	Query      string
	SortBy     string
	Descending bool
}

// UploadResult reports the outcome of a catalog upload.
type UploadResult struct {
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	Hash          string `json:"hash"`
	AlreadyStored bool   `json:"already_stored"`
}

// CatalogStats summarizes the catalog for the statistics view.
type CatalogStats struct {
	TotalFiles  int          `json:"total_files"`
	TotalBytes  int64        `json:"total_bytes"`
	AverageSize int64        `json:"average_size"`
	Largest     []NamedEntry `json:"largest"`
	Recent      []NamedEntry `json:"recent"`
}
