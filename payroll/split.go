package payroll

// =============================================================================
// PAY SPLITTING - Monthly gross into nominal line items
// =============================================================================

// LineItem is a nominal (pre-shift, pre-tax) payment of a cycle.
type LineItem struct {
	Kind    PayKind
	Nominal Date
	Amount  Money
}

// Split turns one monthly gross salary into its advance and final line
// items under the given policy. The advance is the banker-rounded fraction
// of the gross; the final amount is the residual, so the two always sum to
// the gross exactly. Nominal dates are placed by the policy and clamped to
// the month length.
//
// The policy is validated first; an invalid one fails with InvalidPolicy.
func Split(gross Money, m Month, policy PayPolicy) ([]LineItem, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if !gross.IsPositive() {
		return nil, &PolicyError{Field: "gross_salary", Reason: "must be positive"}
	}

	advanceAmount := gross.MulRounded(policy.AdvanceFraction)
	finalAmount := gross - advanceAmount

	advanceDate, finalDate := policy.NominalDates(m)

	return []LineItem{
		{Kind: KindAdvance, Nominal: advanceDate, Amount: advanceAmount},
		{Kind: KindFinal, Nominal: finalDate, Amount: finalAmount},
	}, nil
}
