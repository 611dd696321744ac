package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is an amount of currency in minor units (cents).
type Money int64

var (
	ErrNegativeMoney  = errors.New("amount must not be negative")
	ErrSubCent        = errors.New("amount has more than two decimal places")
	ErrAmountTooLarge = errors.New("amount is too large")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseMoney converts decimal text such as "8.99" into cents.
func ParseMoney(text string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", text, err)
	}
	if d.IsNegative() {
		return 0, ErrNegativeMoney
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, ErrSubCent
	}
	if cents.GreaterThan(maxCents) {
		return 0, ErrAmountTooLarge
	}
	return Money(cents.IntPart()), nil
}

// MustParseMoney is ParseMoney for literals; it panics on bad input.
func MustParseMoney(text string) Money {
	m, err := ParseMoney(text)
	if err != nil {
		panic(err)
	}
	return m
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// Decimal returns the amount as a decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMoney(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
