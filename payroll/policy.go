package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAY POLICY - When and how the monthly salary is split
// =============================================================================

// PayKind distinguishes the two payments of a bi-monthly cycle.
type PayKind string

const (
	KindAdvance PayKind = "advance"
	KindFinal   PayKind = "final"
)

// PayPolicy configures the bi-monthly payment cycle for one salary.
//
// The advance is always paid inside the pay month on AdvanceDay. The final
// payment is paid on FinalDay, either later in the same month or - the usual
// Russian scheme (advance on the 25th, final on the 10th of the next month) -
// in the month after, when FinalNextMonth is set.
type PayPolicy struct {
	AdvanceDay     int  // day-of-month of the advance, 1-31
	FinalDay       int  // day-of-month of the final payment, 1-31
	FinalNextMonth bool // final payment falls in the month after the pay month

	// AdvanceFraction is the share of the gross salary paid as the advance,
	// strictly between 0 and 1. 0 or 1 would degenerate the split into a
	// single payment.
	AdvanceFraction decimal.Decimal
}

// StandardPolicy is the conventional scheme the original calculator assumed:
// advance on the given day of the pay month, final 15 days later in the next
// month, half the salary up front.
func StandardPolicy(advanceDay int) PayPolicy {
	finalDay := advanceDay - 15
	if finalDay < 1 {
		finalDay = 1
	}
	return PayPolicy{
		AdvanceDay:      advanceDay,
		FinalDay:        finalDay,
		FinalNextMonth:  true,
		AdvanceFraction: MustDecimal("0.5"),
	}
}

// Validate checks the policy invariants. Violations are reported, never
// silently corrected.
func (p PayPolicy) Validate() error {
	if p.AdvanceDay < 1 || p.AdvanceDay > 31 {
		return &PolicyError{Field: "advance_day", Reason: "must be between 1 and 31"}
	}
	if p.FinalDay < 1 || p.FinalDay > 31 {
		return &PolicyError{Field: "final_day", Reason: "must be between 1 and 31"}
	}
	if !p.FinalNextMonth && p.AdvanceDay >= p.FinalDay {
		return &PolicyError{Field: "advance_day", Reason: "advance must precede the final payment"}
	}
	one := decimal.NewFromInt(1)
	if !p.AdvanceFraction.IsPositive() || p.AdvanceFraction.GreaterThanOrEqual(one) {
		return &PolicyError{Field: "advance_fraction", Reason: "must be strictly between 0 and 1"}
	}
	return nil
}

// NominalDates places the policy's two payment days in the pay month,
// clamping days that overflow short months.
func (p PayPolicy) NominalDates(m Month) (advance, final Date) {
	advance = m.Date(p.AdvanceDay)
	finalMonth := m
	if p.FinalNextMonth {
		finalMonth = m.Next()
	}
	final = finalMonth.Date(p.FinalDay)
	return advance, final
}
