package money

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount in minor units (cents). All arithmetic on
// monetary values happens on this type; decimal values only appear at I/O
// boundaries (JSON bodies, database columns).
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a decimal currency value to minor units,
// rounding half-up to 2 decimal places.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(2).Shift(2).IntPart())
}

// FromString parses a decimal string such as "123.45" into an Amount.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount as a decimal currency value (2 decimal places).
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String formats the amount with exactly two decimal places, e.g. "250.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// MultiplyQuantityPrice computes quantity × unit price, rounded half-up to
// currency precision. Quantity may be fractional (e.g. 2.5 labour hours).
func MultiplyQuantityPrice(quantity decimal.Decimal, unitPrice Amount) Amount {
	return FromDecimal(quantity.Mul(unitPrice.Decimal()))
}

// ApplyPercentage computes base × percent/100, rounded half-up to currency
// precision. Used for per-line tax amounts.
func ApplyPercentage(base Amount, percent decimal.Decimal) Amount {
	return FromDecimal(base.Decimal().Mul(percent).Div(hundred))
}

// SubClampZero returns a − b, clamped at zero. Negative currency totals are
// never propagated.
func SubClampZero(a, b Amount) Amount {
	if b >= a {
		return 0
	}
	return a - b
}

// Value implements driver.Valuer, storing the amount as a fixed-precision
// decimal string so the column stays decimal(15,2) at the storage layer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner. Accepts decimal strings, bytes and numeric
// values since drivers differ in how they hand back decimal columns.
func (a *Amount) Scan(src interface{}) error {
	if src == nil {
		*a = 0
		return nil
	}
	switch v := src.(type) {
	case string:
		parsed, err := FromString(v)
		if err != nil {
			return err
		}
		*a = parsed
	case []byte:
		parsed, err := FromString(string(v))
		if err != nil {
			return err
		}
		*a = parsed
	case int64:
		*a = FromDecimal(decimal.NewFromInt(v))
	case float64:
		*a = FromDecimal(decimal.NewFromFloat(v))
	default:
		return fmt.Errorf("cannot scan %T into money.Amount", src)
	}
	return nil
}

// GormDataType tells gorm which column type to use for Amount fields that
// don't carry an explicit type tag.
func (Amount) GormDataType() string {
	return "decimal(15,2)"
}

// MarshalJSON renders the amount as a JSON number with two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*a = 0
		return nil
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
