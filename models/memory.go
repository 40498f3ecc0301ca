package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxMemoryLength bounds a memory entry. Memories are short curated facts
// about a user, injected as system context into chat prompts; anything
// larger is a payload, not a memory.
const MaxMemoryLength = 2000

// Memory is a persisted free-text fact about a user
type Memory struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Memory    string    `json:"memory"`
	CreatedAt time.Time `json:"created_at"`
}
