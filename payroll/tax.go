package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TAX - Flat-rate NDFL withholding
// =============================================================================

// DefaultTaxRate is the standard NDFL rate.
var DefaultTaxRate = MustDecimal("0.13")

// TaxCalculator withholds income tax at a single flat rate. Withholding
// applies to the FINAL payment of a cycle only; the advance is disbursed
// gross with tax reconciled on the final portion.
type TaxCalculator struct {
	Rate decimal.Decimal
}

// NewTaxCalculator builds a calculator with the default 13% rate.
func NewTaxCalculator() TaxCalculator {
	return TaxCalculator{Rate: DefaultTaxRate}
}

// Withhold splits a gross amount into tax and net. The tax is the rate
// product rounded half-to-even; the net is the residual gross-tax, so
// tax + net == gross exactly. Rounding tax and net independently could leak
// a kopeck - only the tax is rounded.
func (t TaxCalculator) Withhold(gross Money) (tax, net Money) {
	tax = gross.MulRounded(t.Rate)
	return tax, gross - tax
}

// GrossUp inverts Withhold: given a desired take-home amount it returns the
// gross that yields it and the tax withheld. Because the gross is rounded to
// whole kopecks, re-withholding the returned gross may differ from the
// requested net by at most one kopeck.
func (t TaxCalculator) GrossUp(net Money) (gross, tax Money) {
	keep := decimal.NewFromInt(1).Sub(t.Rate)
	gross = net.DivRounded(keep)
	return gross, gross - net
}
