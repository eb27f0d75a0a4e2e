package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary value. The backend transmits amounts
// inconsistently as JSON numbers or strings; Amount accepts both.
// Unparsable values decode as zero rather than failing the whole record.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a decimal string, returning zero on failure.
func AmountFromString(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{Decimal: decimal.Zero}
	}
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON implements json.Marshaler. Amounts are always emitted as
// strings, matching what the backend accepts in form bodies.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.Decimal.String() + `"`), nil
}
