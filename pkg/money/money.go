// Package money converts between integer grosze (minor units) and
// two-decimal PLN display strings. Grosze are the only representation
// used for storage and arithmetic; strings exist purely for output.
package money

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"piggy-bank/pkg/apperror"
)

// MaxGrosze is the largest amount that survives a round trip through
// JSON number types without precision loss (2^53 - 1).
const MaxGrosze int64 = 1<<53 - 1

var amountRe = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

var maxGroszeBig = big.NewInt(MaxGrosze)

// Parse converts a decimal PLN string into grosze. The input is trimmed,
// must match digits with an optional one- or two-digit fraction, and the
// result must not exceed MaxGrosze. No signs, separators or symbols.
func Parse(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if !amountRe.MatchString(s) {
		return 0, apperror.ErrAmountFormat(input)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	switch len(fracPart) {
	case 0:
		fracPart = "00"
	case 1:
		fracPart += "0"
	}

	// big.Int keeps the intermediate exact for inputs longer than int64.
	units, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return 0, apperror.ErrAmountFormat(input)
	}
	frac, ok := new(big.Int).SetString(fracPart, 10)
	if !ok {
		return 0, apperror.ErrAmountFormat(input)
	}

	units.Mul(units, big.NewInt(100))
	units.Add(units, frac)

	if units.Cmp(maxGroszeBig) > 0 {
		return 0, apperror.ErrAmountRange(s)
	}
	return units.Int64(), nil
}

// ParseOptional parses a nullable amount. nil in, nil out.
func ParseOptional(input *string) (*int64, error) {
	if input == nil {
		return nil, nil
	}
	v, err := Parse(*input)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Format renders grosze as a PLN string with exactly two decimals.
// Negative values and values above MaxGrosze are rejected; stored
// amounts never hit either branch.
func Format(grosze int64) (string, error) {
	if grosze < 0 || grosze > MaxGrosze {
		return "", apperror.ErrAmountRange(fmt.Sprintf("%d", grosze))
	}
	return fmt.Sprintf("%d.%02d", grosze/100, grosze%100), nil
}

// FormatOptional formats a nullable amount. nil in, nil out.
func FormatOptional(grosze *int64) (*string, error) {
	if grosze == nil {
		return nil, nil
	}
	s, err := Format(*grosze)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Dual bundles the exact integer and the display string of one amount.
type Dual struct {
	Grosze int64  `json:"grosze"`
	PLN    string `json:"pln"`
}

// AsDual returns both representations of an amount.
func AsDual(grosze int64) (Dual, error) {
	s, err := Format(grosze)
	if err != nil {
		return Dual{}, err
	}
	return Dual{Grosze: grosze, PLN: s}, nil
}
