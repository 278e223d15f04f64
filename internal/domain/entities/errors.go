package entities

import "errors"

var (
	// ErrTooLarge means the payload exceeds MaxAttachmentSize. Checked
	// before any network call is made.
	ErrTooLarge = errors.New("file exceeds the 2 GiB attachment limit")

	// ErrNotFound means the logical name is absent from the index.
	ErrNotFound = errors.New("file not found")

	// ErrTransport covers any backend HTTP-level problem: bad status,
	// timeout, malformed response.
	ErrTransport = errors.New("backend transport failure")

	// ErrSyncFailed means the index could not be saved (or read back)
	// after a local mutation was already applied. Callers revert the
	// mutation before surfacing this.
	ErrSyncFailed = errors.New("index synchronization failed")

	// ErrNeedsPermission means pinning the index message was refused
	// because the bot lacks admin rights in the chat. Retrying without
	// granting pin rights cannot succeed.
	ErrNeedsPermission = errors.New("bot needs permission to pin messages in the chat")

	// ErrSessionNotFound means no session with the given id exists.
	ErrSessionNotFound = errors.New("session not found")
)
