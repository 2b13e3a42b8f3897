package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount kept in its wire form. The API sends prices as
// strings ("9.99") but numbers are accepted too.
type Money string

// UnmarshalJSON accepts a JSON string, number or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*m = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Money(strings.TrimSpace(s))
	default:
		*m = Money(raw)
	}
	return nil
}

// Decimal parses the amount. Anything non-numeric counts as zero.
func (m Money) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(m)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MoneyFromDecimal formats d with two fractional digits.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.StringFixed(2))
}
