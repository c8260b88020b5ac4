/*
Package payroll implements the payday scheduling and net-amount engine:
splitting a monthly salary into advance and final payments, shifting payment
dates off non-working days, and withholding flat income tax.

THIS FILE (calendar.go):
  Models the Russian production calendar: a per-day classification of the
  whole year into working days, weekends, holidays and pre-holiday short
  days. Paydays may only land on working or pre-holiday days, so the
  calendar is the ground truth every scheduling decision consults.

KEY RULES:
  - Every date of a fetched year has exactly ONE classification.
  - A date the calendar does not know is an ERROR, never a silent default.
    Guessing "probably a weekday" would move real paydays.
  - Pre-holiday short days are working days for payout purposes (and count
    one hour short for working-hours totals).

PROVIDERS:
  CalendarProvider and RateProvider are the only two collaborators that
  touch the network. They are injected as interfaces so the engine is
  testable with fixed in-memory data. Caching fetched data is the caller's
  concern (see store/sqlite), not the engine's.

SEE ALSO:
  - shift.go: payday resolution against the calendar
  - calendarapi/: the remote-service implementation of CalendarProvider
  - rates/: the CBR implementation of RateProvider
*/
package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY CLASSIFICATION
// =============================================================================

type DayKind string

const (
	DayWorking         DayKind = "working"
	DayWeekend         DayKind = "weekend"
	DayHoliday         DayKind = "holiday"
	DayPreHolidayShort DayKind = "preholiday" // shortened working day before a holiday
)

// Payable reports whether a payment may be disbursed on a day of this kind.
func (k DayKind) Payable() bool {
	return k == DayWorking || k == DayPreHolidayShort
}

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar maps dates to their production-calendar classification. It is
// read-only after construction; merged calendars are new values.
type Calendar struct {
	days map[Date]DayKind
}

// NewCalendar builds a calendar from an explicit day map. The map is copied.
func NewCalendar(days map[Date]DayKind) *Calendar {
	copied := make(map[Date]DayKind, len(days))
	for d, k := range days {
		copied[d] = k
	}
	return &Calendar{days: copied}
}

// KindOf returns the classification of a date. A date the calendar has no
// entry for is a data problem and surfaces as CalendarUnavailable.
func (c *Calendar) KindOf(d Date) (DayKind, error) {
	kind, ok := c.days[d]
	if !ok {
		return "", &CalendarUnavailableError{Year: d.Year, Reason: "no classification for " + d.String()}
	}
	return kind, nil
}

// Len returns the number of classified days.
func (c *Calendar) Len() int { return len(c.days) }

// Days returns a copy of the underlying day map. Used by caches that need
// to persist the calendar.
func (c *Calendar) Days() map[Date]DayKind {
	copied := make(map[Date]DayKind, len(c.days))
	for d, k := range c.days {
		copied[d] = k
	}
	return copied
}

// Merge combines two calendars into a new one. On overlapping dates the
// other calendar wins; in practice merged calendars cover disjoint years.
func (c *Calendar) Merge(other *Calendar) *Calendar {
	merged := make(map[Date]DayKind, len(c.days)+len(other.days))
	for d, k := range c.days {
		merged[d] = k
	}
	for d, k := range other.days {
		merged[d] = k
	}
	return &Calendar{days: merged}
}

// =============================================================================
// MONTH STATS - Aggregates for the production-calendar view
// =============================================================================

// MonthStats summarizes one month of the production calendar.
type MonthStats struct {
	Month        Month
	WorkingDays  int // includes pre-holiday short days
	RestDays     int // weekends + holidays
	ShortDays    int
	WorkingHours int // 8h per full working day, 7h per short day
}

const (
	fullDayHours  = 8
	shortDayHours = 7
)

// Stats aggregates the month's day classifications. Fails with
// CalendarUnavailable if any day of the month is unclassified.
func (c *Calendar) Stats(m Month) (MonthStats, error) {
	stats := MonthStats{Month: m}
	for day := 1; day <= m.Days(); day++ {
		kind, err := c.KindOf(NewDate(m.Year, m.Month, day))
		if err != nil {
			return MonthStats{}, err
		}
		switch kind {
		case DayWorking:
			stats.WorkingDays++
			stats.WorkingHours += fullDayHours
		case DayPreHolidayShort:
			stats.WorkingDays++
			stats.ShortDays++
			stats.WorkingHours += shortDayHours
		default:
			stats.RestDays++
		}
	}
	return stats, nil
}

// WorkingDaysIn counts payable days in the month.
func (c *Calendar) WorkingDaysIn(m Month) (int, error) {
	stats, err := c.Stats(m)
	if err != nil {
		return 0, err
	}
	return stats.WorkingDays, nil
}

// =============================================================================
// PROVIDER CONTRACTS
// =============================================================================

// CalendarProvider supplies the production calendar for a year. Implementations
// fetch from the remote calendar service (calendarapi) or a cache wrapping it
// (store/sqlite). Failures surface as CalendarUnavailable; the engine never
// falls back to plain weekday logic.
type CalendarProvider interface {
	YearCalendar(ctx context.Context, year int) (*Calendar, error)
}

// RateProvider supplies the current home-per-foreign currency rate. It is an
// optional enrichment source: the scheduler tolerates its failure.
type RateProvider interface {
	// Rate returns how many home-currency units one unit of the configured
	// foreign currency costs.
	Rate(ctx context.Context) (decimal.Decimal, error)
}

// YearOfWeekends builds a calendar for a whole year where Saturdays and
// Sundays are weekends and every other day is working. Useful as a base for
// tests and fixtures; real calendars come from a CalendarProvider.
func YearOfWeekends(year int) *Calendar {
	days := make(map[Date]DayKind, 366)
	for d := NewDate(year, time.January, 1); d.Year == year; d = d.AddDays(1) {
		if d.IsWeekend() {
			days[d] = DayWeekend
		} else {
			days[d] = DayWorking
		}
	}
	return &Calendar{days: days}
}
