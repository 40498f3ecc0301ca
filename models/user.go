package models

import (
	"github.com/google/uuid"
)

// User mirrors the identity held by the external auth provider. Rows are
// created the first time a session for that identity is seen and never
// mutated afterwards.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name,omitempty"`
	Email string    `json:"email"`
}
