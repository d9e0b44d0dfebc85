package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary amounts round to 2 places, formula results to 4. Both use
// commercial (half-up) rounding; banker's rounding would not reconcile with
// the totals users check by hand.
const (
	MoneyPlaces    = 2
	QuantityPlaces = 4
)

var ErrNotANumber = errors.New("value is not a valid decimal number")

// Round2 rounds half-up to 2 decimal places (money).
func Round2(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, MoneyPlaces)
}

// Round4 rounds half-up to 4 decimal places (quantities, intermediate
// formula results).
func Round4(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, QuantityPlaces)
}

func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	// decimal.Round implements half-up away from zero, which matches the
	// commercial rounding users expect on invoices.
	return d.Round(places)
}

// Parse normalizes an externally supplied numeric value into a Decimal.
// Accepted representations: decimal string ("12.50"), json.Number, float64
// and the integer types that JSON decoding may hand us. Raw binary floats are
// converted through their shortest decimal representation so "0.1" stays 0.1.
func Parse(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, ErrNotANumber
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, n)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, n.String())
		}
		return d, nil
	case float64:
		// decimal.NewFromFloat panics on NaN/Inf; they must surface as a
		// normal parse failure.
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, fmt.Errorf("%w: non-finite value %v", ErrNotANumber, n)
		}
		return decimal.NewFromFloat(n), nil
	case float32:
		if f := float64(n); math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("%w: non-finite value %v", ErrNotANumber, n)
		}
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case nil:
		return decimal.Zero, ErrNotANumber
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrNotANumber, v)
	}
}

// ParseString parses a decimal string, rejecting empty input.
func ParseString(s string) (decimal.Decimal, error) {
	return Parse(s)
}

// MustFromString is a test/fixture helper; it panics on malformed input.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsIntegral reports whether d has no fractional part.
func IsIntegral(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
