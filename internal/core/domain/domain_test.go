package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstrumentType_Valid(t *testing.T) {
	tests := []struct {
		name string
		typ  InstrumentType
		want bool
	}{
		{"bonds", InstrumentTypeBonds, true},
		{"etf", InstrumentTypeETF, true},
		{"stocks", InstrumentTypeStocks, true},
		{"unknown", InstrumentType("crypto"), false},
		{"empty", InstrumentType(""), false},
		{"wrong case", InstrumentType("Stocks"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Valid())
		})
	}
}

func TestWallet_IsDeleted(t *testing.T) {
	w := &Wallet{}
	assert.False(t, w.IsDeleted())

	now := time.Now()
	w.DeletedAt = &now
	assert.True(t, w.IsDeleted())
}

func TestInstrument_IsDeleted(t *testing.T) {
	i := &Instrument{}
	assert.False(t, i.IsDeleted())

	now := time.Now()
	i.DeletedAt = &now
	assert.True(t, i.IsDeleted())
}

func TestValueChange_Delta(t *testing.T) {
	vc := &ValueChange{BeforeGrosze: 10000, AfterGrosze: 12000}
	assert.Equal(t, int64(2000), vc.Delta())

	vc = &ValueChange{BeforeGrosze: 12000, AfterGrosze: 10000}
	assert.Equal(t, int64(-2000), vc.Delta())
}

func TestValueChange_Direction(t *testing.T) {
	tests := []struct {
		name   string
		before int64
		after  int64
		want   ValueDirection
	}{
		{"increase", 100, 200, ValueDirectionIncrease},
		{"decrease", 200, 100, ValueDirectionDecrease},
		{"unchanged", 150, 150, ValueDirectionUnchanged},
		{"from zero", 0, 1, ValueDirectionIncrease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc := &ValueChange{BeforeGrosze: tt.before, AfterGrosze: tt.after}
			assert.Equal(t, tt.want, vc.Direction())
		})
	}
}
