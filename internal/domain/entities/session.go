package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session binds one bot credential to one storage chat. Each session owns
// exactly one in-memory index; two sessions against the same chat are
// last-writer-wins and are not coordinated.
type Session struct {
	ID        string    `json:"id"`
	BotToken  string    `json:"-"`
	UserHash  string    `json:"user_hash"`
	ChatID    int64     `json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UserHashFor derives the short identifier shown for a credential without
// exposing the credential itself.
func UserHashFor(botToken string) string {
	sum := sha256.Sum256([]byte(botToken))
	return hex.EncodeToString(sum[:])[:16]
}
