package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func standardCycle() payroll.PayPolicy {
	return payroll.PayPolicy{
		AdvanceDay:      25,
		FinalDay:        10,
		FinalNextMonth:  true,
		AdvanceFraction: payroll.MustDecimal("0.4"),
	}
}

func month(year int, m time.Month) payroll.Month {
	return payroll.Month{Year: year, Month: m}
}

// =============================================================================
// SPLIT TESTS
// =============================================================================

func TestSplit_AdvanceAndFinalSumToGross(t *testing.T) {
	// GIVEN: 100000.00 gross, 40% advance
	// WHEN: Splitting June
	// THEN: 40000 advance on the 25th, 60000 final on July 10

	items, err := payroll.Split(payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, payroll.KindAdvance, items[0].Kind)
	assert.Equal(t, "40000.00", items[0].Amount.String())
	assert.Equal(t, payroll.NewDate(2023, time.June, 25), items[0].Nominal)

	assert.Equal(t, payroll.KindFinal, items[1].Kind)
	assert.Equal(t, "60000.00", items[1].Amount.String())
	assert.Equal(t, payroll.NewDate(2023, time.July, 10), items[1].Nominal)

	assert.Equal(t, payroll.NewMoney(100000, 0), items[0].Amount+items[1].Amount)
}

func TestSplit_ResidualAbsorbsRounding(t *testing.T) {
	// An odd gross with a third as advance cannot split evenly; the final
	// amount takes the residual so the sum never leaks.

	policy := standardCycle()
	policy.AdvanceFraction = payroll.MustDecimal("0.333")

	for gross := payroll.Money(1); gross <= 5000; gross++ {
		items, err := payroll.Split(gross, month(2023, time.June), policy)
		require.NoError(t, err)
		require.Equal(t, gross, items[0].Amount+items[1].Amount, "leak at gross=%d", gross)
	}
}

func TestSplit_ClampsDayToMonthLength(t *testing.T) {
	// GIVEN: Advance on the 31st, final on the 31st of the next month
	// WHEN: Splitting months too short for those days
	// THEN: Nominal dates clamp to the last calendar day before shifting

	policy := payroll.PayPolicy{
		AdvanceDay:      31,
		FinalDay:        31,
		FinalNextMonth:  true,
		AdvanceFraction: payroll.MustDecimal("0.5"),
	}

	// June has 30 days; nominal advance clamps to June 30.
	items, err := payroll.Split(payroll.NewMoney(50000, 0), month(2023, time.June), policy)
	require.NoError(t, err)
	assert.Equal(t, payroll.NewDate(2023, time.June, 30), items[0].Nominal)

	// January's final lands in February (28 days in 2023).
	items, err = payroll.Split(payroll.NewMoney(50000, 0), month(2023, time.January), policy)
	require.NoError(t, err)
	assert.Equal(t, payroll.NewDate(2023, time.February, 28), items[1].Nominal)

	// 2024 is a leap year.
	items, err = payroll.Split(payroll.NewMoney(50000, 0), month(2024, time.January), policy)
	require.NoError(t, err)
	assert.Equal(t, payroll.NewDate(2024, time.February, 29), items[1].Nominal)
}

// =============================================================================
// POLICY VALIDATION TESTS
// =============================================================================

func TestSplit_AdvanceAfterFinal_Rejected(t *testing.T) {
	// GIVEN: Advance on the 20th, final on the 10th of the SAME month
	// THEN: InvalidPolicy - the advance would follow the final payment

	policy := payroll.PayPolicy{
		AdvanceDay:      20,
		FinalDay:        10,
		AdvanceFraction: payroll.MustDecimal("0.4"),
	}

	_, err := payroll.Split(payroll.NewMoney(100000, 0), month(2023, time.June), policy)
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicy)

	var polErr *payroll.PolicyError
	require.ErrorAs(t, err, &polErr)
	assert.Equal(t, "advance_day", polErr.Field)
}

func TestPolicy_DegenerateFraction_Rejected(t *testing.T) {
	for _, fraction := range []string{"0", "1", "1.5", "-0.2"} {
		policy := standardCycle()
		policy.AdvanceFraction = payroll.MustDecimal(fraction)

		err := policy.Validate()
		assert.ErrorIs(t, err, payroll.ErrInvalidPolicy, "fraction %s should be rejected", fraction)
	}
}

func TestPolicy_DayOutOfRange_Rejected(t *testing.T) {
	policy := standardCycle()
	policy.AdvanceDay = 0
	assert.ErrorIs(t, policy.Validate(), payroll.ErrInvalidPolicy)

	policy = standardCycle()
	policy.FinalDay = 32
	assert.ErrorIs(t, policy.Validate(), payroll.ErrInvalidPolicy)
}

func TestSplit_NonPositiveGross_Rejected(t *testing.T) {
	_, err := payroll.Split(0, month(2023, time.June), standardCycle())
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicy)
}

func TestStandardPolicy_FinalFifteenDaysLater(t *testing.T) {
	policy := payroll.StandardPolicy(25)
	require.NoError(t, policy.Validate())
	assert.Equal(t, 10, policy.FinalDay)
	assert.True(t, policy.FinalNextMonth)
}
