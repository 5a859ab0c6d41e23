package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity kind tags used in guard failures and error payloads.
const (
	EntityWallet     = "wallet"
	EntityInstrument = "instrument"
)

// Wallet is a named savings container owned by a single user. Wallets are
// never removed physically; deletion sets DeletedAt.
type Wallet struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the wallet has been soft-deleted.
func (w *Wallet) IsDeleted() bool {
	return w.DeletedAt != nil
}
