package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Purity is gold fineness in parts per thousand (e.g. 916 for 22K, 999 for 24K).
// The shop's fixed valuation purity is used for stock and accounting math;
// a vendor-claimed purity is recorded but never drives valuation.
type Purity int

// Common finenesses
const (
	Purity916 Purity = 916
	Purity999 Purity = 999
)

// NewPurity creates a Purity, validating the per-mille range
func NewPurity(value int) (Purity, error) {
	p := Purity(value)
	if !p.IsValid() {
		return 0, fmt.Errorf("purity must be between 1 and 999, got %d", value)
	}
	return p, nil
}

// IsValid checks the per-mille range
func (p Purity) IsValid() bool {
	return p >= 1 && p <= 999
}

// Int returns the fineness as an int
func (p Purity) Int() int {
	return int(p)
}

// Factor returns the pure-gold fraction (fineness / 1000)
func (p Purity) Factor() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(1000))
}

// FineWeight converts a gross weight to its pure-gold equivalent
func (p Purity) FineWeight(gross Weight) Weight {
	return NewWeight(gross.Grams().Mul(p.Factor())).Round()
}

// String returns the fineness as a string
func (p Purity) String() string {
	return fmt.Sprintf("%d", int(p))
}
