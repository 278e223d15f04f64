package repository

import (
	"context"
)

// Attachment is the backend's reference to an uploaded document: the chat
// message that carries it and the opaque file handle needed to fetch the
// bytes back.
type Attachment struct {
	MessageID int64
	FileID    string
}

// PinnedMessage describes the chat's current pinned message. FileID is
// empty when the pinned message carries no document.
type PinnedMessage struct {
	MessageID int64
	FileID    string
	Name      string
}

// BotInfo identifies the bot behind a credential.
type BotInfo struct {
	ID        int64
	Username  string
	FirstName string
}

// ChatInfo describes a chat the bot can reach, discovered from its
// pending updates.
type ChatInfo struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// ChannelAPI is the messaging backend as seen by the core: a blocking
// request/response client with per-call atomicity and no transactions.
// Every method maps backend failures to entities.ErrTransport, except Pin
// which distinguishes entities.ErrNeedsPermission.
type ChannelAPI interface {
	// Me validates the credential and returns the bot identity.
	Me(ctx context.Context) (*BotInfo, error)

	// ListChats discovers chats from the bot's pending updates.
	ListChats(ctx context.Context) ([]ChatInfo, error)

	// UploadAttachment sends payload as a document named displayName to
	// the chat and returns its handle. The backend offers no way to
	// delete an attachment afterwards.
	UploadAttachment(ctx context.Context, chatID int64, payload []byte, displayName string) (*Attachment, error)

	// FetchAttachment downloads the bytes behind a previously issued
	// file handle.
	FetchAttachment(ctx context.Context, fileID string) ([]byte, error)

	// GetChatPinned returns the chat's pinned message, or nil when the
	// chat has none.
	GetChatPinned(ctx context.Context, chatID int64) (*PinnedMessage, error)

	// Pin marks the message as the chat's pinned message.
	Pin(ctx context.Context, chatID, messageID int64) error

	// Unpin removes the pin from the message. Best effort at call
	// sites: a failure is logged, never fatal.
	Unpin(ctx context.Context, chatID, messageID int64) error
}

// ChannelFactory opens a ChannelAPI for a credential. Share-link
// redemption uses it to build a transient session for a token-supplied
// credential.
type ChannelFactory func(botToken string) ChannelAPI
