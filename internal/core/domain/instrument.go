package domain

import (
	"time"

	"github.com/google/uuid"
)

// InstrumentType is the fixed enumeration of position kinds.
type InstrumentType string

const (
	InstrumentTypeBonds  InstrumentType = "bonds"
	InstrumentTypeETF    InstrumentType = "etf"
	InstrumentTypeStocks InstrumentType = "stocks"
)

// Valid reports whether t is one of the known instrument types.
func (t InstrumentType) Valid() bool {
	switch t {
	case InstrumentTypeBonds, InstrumentTypeETF, InstrumentTypeStocks:
		return true
	}
	return false
}

// Instrument is a single financial position inside a wallet. All monetary
// fields are grosze and non-negative; GoalGrosze is optional. OwnerID is
// denormalised from the parent wallet so guards need a single row.
type Instrument struct {
	ID                  uuid.UUID      `json:"id"`
	WalletID            uuid.UUID      `json:"wallet_id"`
	OwnerID             uuid.UUID      `json:"owner_id"`
	Type                InstrumentType `json:"type"`
	Name                string         `json:"name"`
	Description         *string        `json:"description,omitempty"`
	InvestedMoneyGrosze int64          `json:"invested_money_grosze"`
	CurrentValueGrosze  int64          `json:"current_value_grosze"`
	GoalGrosze          *int64         `json:"goal_grosze,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           *time.Time     `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the instrument has been soft-deleted.
func (i *Instrument) IsDeleted() bool {
	return i.DeletedAt != nil
}
