package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// =============================================================================
// FAKE PROVIDERS
// =============================================================================

// fakeCalendars serves fixed in-memory calendars; years it does not hold
// fail with CalendarUnavailable, like a remote source with no data.
type fakeCalendars struct {
	years map[int]*payroll.Calendar
	calls int
}

func (f *fakeCalendars) YearCalendar(ctx context.Context, year int) (*payroll.Calendar, error) {
	f.calls++
	cal, ok := f.years[year]
	if !ok {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "no data for year"}
	}
	return cal, nil
}

type fakeRates struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRates) Rate(ctx context.Context) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

func weekendsOnly(years ...int) *fakeCalendars {
	f := &fakeCalendars{years: make(map[int]*payroll.Calendar)}
	for _, y := range years {
		f.years[y] = payroll.YearOfWeekends(y)
	}
	return f
}

// =============================================================================
// SCHEDULE SCENARIO TESTS
// =============================================================================

func TestComputeSchedule_JuneScenario(t *testing.T) {
	// GIVEN: 100000 salary, advance day 25 (40%), final day 10 next month,
	//        June 2023 - the 25th falls on a Sunday
	// WHEN: Computing the June schedule
	// THEN: Advance pays Friday June 23, 40000 gross and untaxed;
	//       final pays July 10, 60000 gross, 7800 tax, 52200 net

	scheduler := payroll.NewScheduler(weekendsOnly(2023), nil)
	schedule, err := scheduler.ComputeSchedule(
		context.Background(),
		payroll.NewMoney(100000, 0),
		month(2023, time.June),
		standardCycle(),
	)
	require.NoError(t, err)
	require.Len(t, schedule.Events, 2)

	advance := schedule.Events[0]
	assert.Equal(t, payroll.KindAdvance, advance.Kind)
	assert.Equal(t, payroll.NewDate(2023, time.June, 25), advance.Nominal)
	assert.Equal(t, payroll.NewDate(2023, time.June, 23), advance.Actual)
	assert.True(t, advance.Moved)
	assert.Equal(t, "40000.00", advance.Gross.String())
	assert.Equal(t, "0.00", advance.Tax.String())
	assert.Equal(t, "40000.00", advance.Net.String())

	final := schedule.Events[1]
	assert.Equal(t, payroll.KindFinal, final.Kind)
	assert.Equal(t, payroll.NewDate(2023, time.July, 10), final.Actual)
	assert.False(t, final.Moved)
	assert.Equal(t, "60000.00", final.Gross.String())
	assert.Equal(t, "7800.00", final.Tax.String())
	assert.Equal(t, "52200.00", final.Net.String())
}

func TestComputeSchedule_SumInvariant(t *testing.T) {
	// advance + final net + final tax == gross for any salary.
	scheduler := payroll.NewScheduler(weekendsOnly(2023), nil)

	for _, gross := range []payroll.Money{1, 99, 10001, 12345678, 1000000001} {
		schedule, err := scheduler.ComputeSchedule(context.Background(), gross, month(2023, time.June), standardCycle())
		require.NoError(t, err)

		var total payroll.Money
		for _, e := range schedule.Events {
			total += e.Net + e.Tax
			require.Equal(t, e.Gross, e.Net+e.Tax)
		}
		require.Equal(t, gross, total, "invariant broken at gross=%d", gross)
	}
}

func TestComputeSchedule_EventsOrderedAndNeverLate(t *testing.T) {
	scheduler := payroll.NewScheduler(weekendsOnly(2022, 2023, 2024), nil)

	for m := time.January; m <= time.December; m++ {
		schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(80000, 0), month(2023, m), standardCycle())
		require.NoError(t, err)

		for i, e := range schedule.Events {
			require.False(t, e.Actual.After(e.Nominal), "%s: paid after nominal date", e.Actual)
			if i > 0 {
				require.False(t, e.Actual.Before(schedule.Events[i-1].Actual), "events out of order in %v", schedule.Month)
			}
		}
	}
}

func TestComputeSchedule_Idempotent(t *testing.T) {
	// Identical inputs and calendar snapshot must yield identical schedules.
	scheduler := payroll.NewScheduler(weekendsOnly(2023), &fakeRates{rate: decimal.NewFromInt(90)})

	first, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.NoError(t, err)
	second, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// =============================================================================
// YEAR BOUNDARY TESTS
// =============================================================================

func TestComputeSchedule_DecemberCycle_MergesTwoYears(t *testing.T) {
	// GIVEN: December cycle whose final payment is nominally January 1,
	//        with the New Year run marked as holidays in both years
	// WHEN: Computing December
	// THEN: Both year calendars are fetched, and the final payment shifts
	//       back across the year boundary onto December 30

	calendars := weekendsOnly(2024, 2025)
	days2024 := calendars.years[2024].Days()
	days2024[payroll.NewDate(2024, time.December, 31)] = payroll.DayHoliday
	days2024[payroll.NewDate(2024, time.December, 30)] = payroll.DayPreHolidayShort
	calendars.years[2024] = payroll.NewCalendar(days2024)

	days2025 := calendars.years[2025].Days()
	days2025[payroll.NewDate(2025, time.January, 1)] = payroll.DayHoliday
	calendars.years[2025] = payroll.NewCalendar(days2025)

	policy := payroll.PayPolicy{
		AdvanceDay:      25,
		FinalDay:        1,
		FinalNextMonth:  true,
		AdvanceFraction: payroll.MustDecimal("0.4"),
	}

	scheduler := payroll.NewScheduler(calendars, nil)
	schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2024, time.December), policy)
	require.NoError(t, err)

	final := schedule.Events[1]
	assert.Equal(t, payroll.NewDate(2025, time.January, 1), final.Nominal)
	assert.Equal(t, payroll.NewDate(2024, time.December, 30), final.Actual)
	assert.True(t, final.Moved)
	assert.Equal(t, 2, calendars.calls, "both year calendars should be fetched")
}

func TestComputeSchedule_MissingNextYear_Aborts(t *testing.T) {
	// December's final payment needs the next year's calendar; without it
	// the whole computation aborts - no partial schedule.
	scheduler := payroll.NewScheduler(weekendsOnly(2024), nil)

	schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2024, time.December), standardCycle())
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrCalendarUnavailable)
	assert.Nil(t, schedule)
}

func TestComputeSchedule_CalendarUnavailable_NoPartialResult(t *testing.T) {
	scheduler := payroll.NewScheduler(&fakeCalendars{years: map[int]*payroll.Calendar{}}, nil)

	schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrCalendarUnavailable)
	assert.Nil(t, schedule)

	var calErr *payroll.CalendarUnavailableError
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, 2023, calErr.Year)
}

// =============================================================================
// FX ANNOTATION TESTS
// =============================================================================

func TestComputeSchedule_FXAnnotation(t *testing.T) {
	// 100000 gross at 90 RUB/USD, 7800 tax -> 1111.11 / 86.67 / 1024.44.
	scheduler := payroll.NewScheduler(weekendsOnly(2023), &fakeRates{rate: decimal.NewFromInt(90)})

	schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.NoError(t, err)
	require.NotNil(t, schedule.FX)

	assert.Equal(t, "USD", schedule.FX.Currency)
	assert.Equal(t, "1111.11", schedule.FX.Gross.String())
	assert.Equal(t, "86.67", schedule.FX.Tax.String())
	assert.Equal(t, "1024.44", schedule.FX.Net.String())
}

func TestComputeSchedule_RateFailure_DegradesGracefully(t *testing.T) {
	// A dead rate feed drops the annotation but never fails the schedule.
	scheduler := payroll.NewScheduler(weekendsOnly(2023), &fakeRates{err: errors.New("feed down")})

	schedule, err := scheduler.ComputeSchedule(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), standardCycle())
	require.NoError(t, err)
	assert.Nil(t, schedule.FX)
	require.Len(t, schedule.Events, 2)
}

// =============================================================================
// YEAR PLAN AND PRO-RATED SALARY TESTS
// =============================================================================

func TestComputeYear_TwelveCycles(t *testing.T) {
	scheduler := payroll.NewScheduler(weekendsOnly(2022, 2023, 2024), nil)

	schedules, err := scheduler.ComputeYear(context.Background(), payroll.NewMoney(100000, 0), 2023, standardCycle())
	require.NoError(t, err)
	require.Len(t, schedules, 12)

	assert.Equal(t, time.January, schedules[0].Month.Month)
	assert.Equal(t, time.December, schedules[11].Month.Month)
	// December's final lands in January 2024.
	assert.Equal(t, 2024, schedules[11].Events[1].Nominal.Year)
}

func TestSalaryForDays_GrossMode(t *testing.T) {
	// June 2023 has 22 weekday working days; 11 worked = exactly half.
	scheduler := payroll.NewScheduler(weekendsOnly(2023), nil)

	breakdown, err := scheduler.SalaryForDays(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), 11, payroll.ModeGross)
	require.NoError(t, err)

	assert.Equal(t, 22, breakdown.WorkingDays)
	assert.Equal(t, "50000.00", breakdown.Gross.String())
	assert.Equal(t, "6500.00", breakdown.Tax.String())
	assert.Equal(t, "43500.00", breakdown.Net.String())
	assert.Equal(t, breakdown.Gross, breakdown.Tax+breakdown.Net)
}

func TestSalaryForDays_NetMode_GrossesUp(t *testing.T) {
	scheduler := payroll.NewScheduler(weekendsOnly(2023), nil)

	breakdown, err := scheduler.SalaryForDays(context.Background(), payroll.NewMoney(87000, 0), month(2023, time.June), 22, payroll.ModeNet)
	require.NoError(t, err)

	assert.Equal(t, "87000.00", breakdown.Net.String())
	assert.Equal(t, "100000.00", breakdown.Gross.String())
	assert.Equal(t, "13000.00", breakdown.Tax.String())
}

func TestSalaryForDays_TooManyDays_Rejected(t *testing.T) {
	scheduler := payroll.NewScheduler(weekendsOnly(2023), nil)

	_, err := scheduler.SalaryForDays(context.Background(), payroll.NewMoney(100000, 0), month(2023, time.June), 23, payroll.ModeGross)
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicy)
}
