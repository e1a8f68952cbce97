package api

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a fixed-point dollar amount. It is serialized as a string with two decimal places.
type Currency struct {
	decimal.Decimal
}

// NewCurrency wraps a decimal amount
func NewCurrency(d decimal.Decimal) Currency {
	return Currency{Decimal: d}
}

// String returns the amount with two decimal places, e.g. "250.00"
func (c Currency) String() string {
	return c.StringFixed(2)
}

// Dollars returns the amount formatted for display, e.g. "$250.00"
func (c Currency) Dollars() string {
	return FormatDollars(c.Decimal)
}

func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string
func (c *Currency) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		c.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	c.Decimal = d
	return nil
}

// FormatDollars renders an amount with a dollar sign and two decimal places, e.g. "$250.00" or "-$5.00"
func FormatDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
