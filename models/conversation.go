package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups the chat messages of one assistant thread
type Conversation struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ChatMessage is a single turn in a conversation. Seq is a per-conversation
// counter assigned at insert, so readers see a total order even when two
// messages share a created_at timestamp.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	UserID         uuid.UUID `json:"user_id"`
	Message        string    `json:"message"`
	IsUser         bool      `json:"isUser"`
	Seq            int64     `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}
