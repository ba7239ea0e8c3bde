package valueobject

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits money is displayed and
// persisted with. Intermediate calculations keep full precision.
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds an amount half away from zero to MoneyPlaces digits
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// NonNegative returns d, or zero when d is negative
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percentage returns pct percent of base
func Percentage(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// ClampPercentage limits pct to the closed range [0, 100]
func ClampPercentage(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// SplitEven divides amount into parts shares. Every share but the last is
// the per-part amount truncated to cents; the last share absorbs whatever
// remains, so the shares always sum to amount exactly.
// Returns nil when parts is not positive.
func SplitEven(amount decimal.Decimal, parts int) []decimal.Decimal {
	if parts <= 0 {
		return nil
	}
	shares := make([]decimal.Decimal, parts)
	if parts == 1 {
		shares[0] = amount
		return shares
	}

	base := amount.Div(decimal.NewFromInt(int64(parts))).Truncate(MoneyPlaces)
	distributed := decimal.Zero
	for i := 0; i < parts-1; i++ {
		shares[i] = base
		distributed = distributed.Add(base)
	}
	shares[parts-1] = amount.Sub(distributed)
	return shares
}

// ParseAmount parses s as a decimal, treating blank or malformed input as zero
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LenientDecimal is a decimal that never fails to decode. Numbers and
// numeric strings decode normally; null, blanks and anything else decode
// to zero. Form inputs are recalculated on every keystroke, so a half-typed
// value must not reject the whole request.
type LenientDecimal struct {
	decimal.Decimal
}

// NewLenientDecimal wraps d
func NewLenientDecimal(d decimal.Decimal) LenientDecimal {
	return LenientDecimal{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler
func (l *LenientDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		l.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			l.Decimal = decimal.Zero
			return nil
		}
		l.Decimal = ParseAmount(s)
		return nil
	}
	l.Decimal = ParseAmount(string(data))
	return nil
}

// MarshalJSON implements json.Marshaler
func (l LenientDecimal) MarshalJSON() ([]byte, error) {
	return l.Decimal.MarshalJSON()
}
