package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Fixed-point amounts in minor units (kopecks)
// =============================================================================

// Money is an amount of the home currency in minor units (kopecks).
// All engine arithmetic is integer arithmetic; decimal.Decimal is used only
// at the boundaries where fractions and rates come in, so repeated
// computations never drift.
type Money int64

// NewMoney builds a Money from whole units and minor units (e.g. 100000₽ 50к).
func NewMoney(units int64, cents int64) Money {
	return Money(units*100 + cents)
}

// MoneyFromDecimal converts a decimal amount of whole currency units to
// minor units, rounding half-to-even.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).RoundBank(0).IntPart())
}

// Decimal returns the amount in whole currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// MulRounded multiplies the amount by a decimal factor and rounds the result
// half-to-even to a whole number of minor units.
func (m Money) MulRounded(factor decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(factor).RoundBank(0).IntPart())
}

// DivRounded divides the amount by a decimal divisor, rounding half-to-even.
func (m Money) DivRounded(divisor decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Div(divisor).RoundBank(0).IntPart())
}

func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// String formats the amount as "1234.56".
func (m Money) String() string {
	units, cents := int64(m)/100, int64(m)%100
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%d.%02d", units, cents)
}

// MustDecimal parses a decimal constant and panics on failure. For package
// constants like tax rates and fractions.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("payroll: bad decimal constant %q: %v", s, err))
	}
	return d
}
