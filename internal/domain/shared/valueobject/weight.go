package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Weight is a value object for gold weight in grams.
// Stock and gold-ledger figures are carried to 3 decimal places.
type Weight struct {
	grams decimal.Decimal
}

// NewWeight creates a Weight from a decimal gram value
func NewWeight(grams decimal.Decimal) Weight {
	return Weight{grams: grams}
}

// NewWeightFromFloat creates a Weight from a float64 gram value
func NewWeightFromFloat(grams float64) Weight {
	return Weight{grams: decimal.NewFromFloat(grams)}
}

// NewWeightFromString creates a Weight from a string gram value
func NewWeightFromString(grams string) (Weight, error) {
	d, err := decimal.NewFromString(grams)
	if err != nil {
		return Weight{}, fmt.Errorf("invalid weight string: %w", err)
	}
	return Weight{grams: d}, nil
}

// ZeroWeight returns a zero-value Weight
func ZeroWeight() Weight {
	return Weight{grams: decimal.Zero}
}

// Grams returns the decimal gram value
func (w Weight) Grams() decimal.Decimal {
	return w.grams
}

// IsZero returns true if the weight is zero
func (w Weight) IsZero() bool {
	return w.grams.IsZero()
}

// IsPositive returns true if the weight is positive
func (w Weight) IsPositive() bool {
	return w.grams.IsPositive()
}

// IsNegative returns true if the weight is negative
func (w Weight) IsNegative() bool {
	return w.grams.IsNegative()
}

// Add returns a new Weight with the sum of both weights
func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams.Add(other.grams)}
}

// Subtract returns a new Weight with the difference
func (w Weight) Subtract(other Weight) Weight {
	return Weight{grams: w.grams.Sub(other.grams)}
}

// Negate returns a new Weight with the sign reversed
func (w Weight) Negate() Weight {
	return Weight{grams: w.grams.Neg()}
}

// MultiplyRate multiplies the weight by a per-gram money rate, producing Money
func (w Weight) MultiplyRate(rate Money) Money {
	return NewMoney(w.grams.Mul(rate.Amount()))
}

// Round returns a new Weight rounded to 3 decimal places
func (w Weight) Round() Weight {
	return Weight{grams: w.grams.Round(3)}
}

// Equals returns true if both weights are equal
func (w Weight) Equals(other Weight) bool {
	return w.grams.Equal(other.grams)
}

// LessThan returns true if this weight is less than the other
func (w Weight) LessThan(other Weight) bool {
	return w.grams.LessThan(other.grams)
}

// GreaterThan returns true if this weight is greater than the other
func (w Weight) GreaterThan(other Weight) bool {
	return w.grams.GreaterThan(other.grams)
}

// String returns a string representation fixed to 3 decimal places
func (w Weight) String() string {
	return w.grams.StringFixed(3)
}

// Float64 returns the weight as a float64 (may lose precision)
func (w Weight) Float64() float64 {
	f, _ := w.grams.Round(3).Float64()
	return f
}

// MarshalJSON implements json.Marshaler
func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.grams.StringFixed(3))
}

// UnmarshalJSON implements json.Unmarshaler
func (w *Weight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	grams, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid weight: %w", err)
	}
	w.grams = grams
	return nil
}

// Value implements driver.Valuer for database storage
func (w Weight) Value() (driver.Value, error) {
	return w.grams.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (w *Weight) Scan(value any) error {
	if value == nil {
		w.grams = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		w.grams = decimal.NewFromFloat(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Weight", value)
	}

	grams, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	w.grams = grams
	return nil
}
