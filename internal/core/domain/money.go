package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultMoneyPrecision is the minor-unit precision used when a currency does
// not specify its own (2 decimal places, i.e. cents).
const DefaultMoneyPrecision int32 = 2

// Money is an immutable value object holding a monetary amount as an integer
// count of minor units (e.g. cents) together with its currency code and
// minor-unit precision. All arithmetic happens on the integer amount;
// conversion to a display decimal happens only at formatting boundaries.
//
// Rounding is half-up (half away from zero); the engine only ever rounds
// non-negative amounts, where the two are equivalent.
type Money struct {
	minorUnits int64
	currency   string
	precision  int32
}

// NewMoney builds Money from a decimal amount, rounding to the currency's
// minor-unit precision.
func NewMoney(amount decimal.Decimal, currencyCode string, precision int32) Money {
	scaled := amount.Shift(precision).Round(0)
	return Money{
		minorUnits: scaled.IntPart(),
		currency:   currencyCode,
		precision:  precision,
	}
}

// NewMoneyFromMinorUnits builds Money directly from a minor-unit count.
func NewMoneyFromMinorUnits(minorUnits int64, currencyCode string, precision int32) Money {
	return Money{minorUnits: minorUnits, currency: currencyCode, precision: precision}
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currencyCode string, precision int32) Money {
	return Money{currency: currencyCode, precision: precision}
}

// MinorUnits returns the integer minor-unit amount.
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// CurrencyCode returns the currency code of this amount.
func (m Money) CurrencyCode() string {
	return m.currency
}

// Precision returns the minor-unit precision of this amount.
func (m Money) Precision() int32 {
	return m.precision
}

// Decimal converts the minor-unit amount back to a display decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minorUnits, -m.precision)
}

// String renders the amount as "<decimal> <currency>".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().String(), m.currency)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.minorUnits < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.minorUnits > 0
}

// Add returns m + other. Fails if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{minorUnits: m.minorUnits + other.minorUnits, currency: m.currency, precision: m.precision}, nil
}

// Sub returns m - other. Fails if the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{minorUnits: m.minorUnits - other.minorUnits, currency: m.currency, precision: m.precision}, nil
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{minorUnits: -m.minorUnits, currency: m.currency, precision: m.precision}
}

// ClampZero returns zero when the amount is negative, the amount otherwise.
// Only derived values (totals, balances) are ever clamped; raw inputs are
// rejected instead.
func (m Money) ClampZero() Money {
	if m.minorUnits < 0 {
		return ZeroMoney(m.currency, m.precision)
	}
	return m
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
// Fails if the currencies differ.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.checkCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.minorUnits < other.minorUnits:
		return -1, nil
	case m.minorUnits > other.minorUnits:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.minorUnits == other.minorUnits && m.precision == other.precision
}

// MulRate multiplies the amount by a decimal factor, rounding half-up to the
// currency's precision. Used for tax and percentage computations.
func (m Money) MulRate(factor decimal.Decimal) Money {
	result := m.Decimal().Mul(factor)
	return NewMoney(result, m.currency, m.precision)
}

func (m Money) checkCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return nil
}
