package service

import (
	"piggy-bank/internal/core/domain"
	"piggy-bank/internal/core/ports"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentOf returns numer/denom as a percentage rounded half away from
// zero to two decimals. Zero denominator yields zero, not an error:
// a wallet without goals simply has no progress to report.
func percentOf(numer, denom int64) float64 {
	if denom == 0 {
		return 0
	}
	return decimal.NewFromInt(numer).
		Div(decimal.NewFromInt(denom)).
		Mul(hundred).
		Round(2).
		InexactFloat64()
}

// aggregatesFromSums derives the percentage figures from raw grosze sums.
func aggregatesFromSums(sums ports.WalletSums) ports.WalletAggregates {
	return ports.WalletAggregates{
		TargetGrosze:       sums.TargetGrosze,
		CurrentValueGrosze: sums.CurrentGrosze,
		InvestedSumGrosze:  sums.InvestedGrosze,
		ProgressPercent:    percentOf(sums.CurrentGrosze, sums.TargetGrosze),
		PerformancePercent: percentOf(sums.CurrentGrosze-sums.InvestedGrosze, sums.InvestedGrosze),
	}
}

// sumInstruments folds live instruments into raw sums. Missing goals
// count as zero target.
func sumInstruments(instruments []domain.Instrument) ports.WalletSums {
	var sums ports.WalletSums
	for i := range instruments {
		inst := &instruments[i]
		if inst.GoalGrosze != nil {
			sums.TargetGrosze += *inst.GoalGrosze
		}
		sums.CurrentGrosze += inst.CurrentValueGrosze
		sums.InvestedGrosze += inst.InvestedMoneyGrosze
		sums.InstrumentCount++
	}
	return sums
}
