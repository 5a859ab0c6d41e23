package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns wallets. All entity access is scoped to
// the authenticated user's id.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id, never expose
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
