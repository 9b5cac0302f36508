package entities

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a price keeps.
const PriceScale = 2

// Price is a fixed-point amount stored as DECIMAL(10,2).
// It serialises to JSON as a string with exactly two fractional digits.
type Price struct {
	decimal.Decimal
}

// NewPrice parses a decimal string, rounding it to PriceScale digits.
func NewPrice(value string) (Price, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return Price{Decimal: d.Round(PriceScale)}, nil
}

// MustPrice is NewPrice for literals; it panics on malformed input.
func MustPrice(value string) Price {
	p, err := NewPrice(value)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) String() string {
	return p.StringFixed(PriceScale)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted strings and bare JSON numbers.
func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	p.Decimal = d.Round(PriceScale)
	return nil
}

func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

func (p *Price) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	p.Decimal = d.Round(PriceScale)
	return nil
}
