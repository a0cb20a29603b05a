// Package units converts between integer base units and display quantities.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTooPrecise    = errors.New("amount has more decimal places than the asset supports")
	ErrOverflow      = errors.New("amount is too large")
)

// FromBaseUnits returns raw / 10^decimals.
func FromBaseUnits(raw uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-decimals)
}

// FormatFixed renders raw with exactly places fractional digits.
func FormatFixed(raw uint64, decimals, places int32) string {
	return FromBaseUnits(raw, decimals).StringFixed(places)
}

// FormatTrimmed renders raw at full precision, trims trailing zeros and keeps
// at least minPlaces fractional digits.
func FormatTrimmed(raw uint64, decimals, minPlaces int32) string {
	if minPlaces > decimals {
		minPlaces = decimals
	}
	s := FromBaseUnits(raw, decimals).StringFixed(decimals)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	keep := len(s)
	for keep > dot+1+int(minPlaces) && s[keep-1] == '0' {
		keep--
	}
	if keep == dot+1 {
		keep = dot
	}
	return s[:keep]
}

// ParseAmount converts a user-entered quantity into base units. Zero and
// negative values parse fine; callers decide whether they are acceptable.
func ParseAmount(s string, decimals int32) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Sign() <= 0 {
		return 0, nil
	}
	base := d.Shift(decimals)
	if !base.Equal(base.Truncate(0)) {
		return 0, fmt.Errorf("%w (%d)", ErrTooPrecise, decimals)
	}
	if base.GreaterThan(decimal.NewFromUint64(math.MaxUint64)) {
		return 0, ErrOverflow
	}
	return base.BigInt().Uint64(), nil
}
