package payroll

// =============================================================================
// PAYDAY SHIFTING - Resolve a nominal date to an actual payout date
// =============================================================================

// maxShiftDays bounds the backward search: a month of days plus a small
// margin. Even the longest New Year holiday run is far shorter; hitting the
// bound means the calendar data is malformed.
const maxShiftDays = 35

// ResolvePayday maps a nominal payment date to the day the payment actually
// goes out. A date that is already payable (working or pre-holiday short) is
// returned unchanged. Otherwise the search walks backward one day at a time:
// salaries are paid BEFORE a weekend or holiday run, never after - paying
// late is a compliance violation.
//
// The walk is a counted loop, bounded by maxShiftDays, and fails with
// NoWorkingDayError if the bound is exhausted. A date the calendar cannot
// classify fails with CalendarUnavailable.
func ResolvePayday(cal *Calendar, nominal Date) (Date, error) {
	current := nominal
	for i := 0; i <= maxShiftDays; i++ {
		kind, err := cal.KindOf(current)
		if err != nil {
			return Date{}, err
		}
		if kind.Payable() {
			return current, nil
		}
		current = current.AddDays(-1)
	}
	return Date{}, &NoWorkingDayError{Nominal: nominal, Searched: maxShiftDays}
}
