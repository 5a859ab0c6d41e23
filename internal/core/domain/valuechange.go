package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValueDirection classifies a value change by the sign of its delta.
type ValueDirection string

const (
	ValueDirectionIncrease  ValueDirection = "increase"
	ValueDirectionDecrease  ValueDirection = "decrease"
	ValueDirectionUnchanged ValueDirection = "unchanged"
)

// ValueChange is an immutable record of one current-value transition of an
// instrument. Rows are written when an update changes the value and are
// never mutated afterwards.
type ValueChange struct {
	ID           uuid.UUID `json:"id"`
	InstrumentID uuid.UUID `json:"instrument_id"`
	BeforeGrosze int64     `json:"before_grosze"`
	AfterGrosze  int64     `json:"after_grosze"`
	CreatedAt    time.Time `json:"created_at"`
}

// Delta returns the exact grosze difference (after minus before).
func (v *ValueChange) Delta() int64 {
	return v.AfterGrosze - v.BeforeGrosze
}

// Direction classifies the change by the sign of Delta.
func (v *ValueChange) Direction() ValueDirection {
	switch d := v.Delta(); {
	case d > 0:
		return ValueDirectionIncrease
	case d < 0:
		return ValueDirectionDecrease
	default:
		return ValueDirectionUnchanged
	}
}
