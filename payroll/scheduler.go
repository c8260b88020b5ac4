/*
scheduler.go - The payday scheduling orchestrator

PURPOSE:
  Composes the engine pieces into the one entry point callers drive:
  split the salary, resolve each nominal date against the production
  calendar, withhold tax on the final portion, and return the ordered
  schedule. Also carries the two calculator features the original app
  offered around the schedule: full-year planning and pro-rated salary
  for a partially worked month.

CONTROL FLOW (ComputeSchedule):
  1. Fetch + merge calendars for every year the cycle touches
  2. Split(gross, month, policy)      -> nominal line items
  3. ResolvePayday(calendar, nominal) -> actual payout date per item
  4. Withhold(final item only)        -> tax + net
  5. Sort by actual date, annotate with the FX rate if one is available

FAILURE POLICY:
  The first collaborator error aborts the whole computation - no partial
  schedules. The single exception is the FX annotation: a dead rate feed
  only drops the annotation, it never blocks payroll.

CONCURRENCY:
  Each call is independent and referentially transparent given the same
  calendar snapshot. The scheduler holds no mutable state, so concurrent
  calls for different months or employees need no coordination here.

SEE ALSO:
  - split.go, shift.go, tax.go: the composed pieces
  - calendar.go: provider contracts
  - api/handlers.go: the HTTP front-end driving this entry point
*/
package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// PayEvent is one concrete payment of a cycle. Immutable once produced.
type PayEvent struct {
	Kind    PayKind
	Nominal Date // where the policy placed the payment
	Actual  Date // payable day after backward shifting
	Moved   bool // Actual differs from Nominal

	Gross Money
	Tax   Money // zero for advances; withholding happens on the final portion
	Net   Money
}

// FXQuote annotates a schedule with amounts in a second currency. Display
// enrichment only: it never affects dates or tax.
type FXQuote struct {
	Currency string
	Rate     decimal.Decimal // home units per foreign unit
	Gross    decimal.Decimal
	Tax      decimal.Decimal
	Net      decimal.Decimal
}

// Schedule is the ordered payment plan for one (salary, month, policy)
// computation, events sorted by actual payout date.
type Schedule struct {
	Month  Month
	Events []PayEvent
	FX     *FXQuote // nil when no rate was available
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler computes payment schedules. Calendars is required; Rates is
// optional and only feeds the FX annotation.
type Scheduler struct {
	Calendars CalendarProvider
	Rates     RateProvider
	Tax       TaxCalculator
	Currency  string // FX annotation currency code, e.g. "USD"
}

// NewScheduler builds a scheduler with the default tax rate and USD
// annotation. rates may be nil to disable the annotation.
func NewScheduler(calendars CalendarProvider, rates RateProvider) *Scheduler {
	return &Scheduler{
		Calendars: calendars,
		Rates:     rates,
		Tax:       NewTaxCalculator(),
		Currency:  "USD",
	}
}

// ComputeSchedule derives the concrete payment schedule for one month's
// salary. It fails whole - CalendarUnavailable, NoWorkingDayFound or
// InvalidPolicy - rather than returning a partial schedule.
func (s *Scheduler) ComputeSchedule(ctx context.Context, gross Money, m Month, policy PayPolicy) (*Schedule, error) {
	items, err := Split(gross, m, policy)
	if err != nil {
		return nil, err
	}

	cal, err := s.calendarCovering(ctx, items)
	if err != nil {
		return nil, err
	}

	events := make([]PayEvent, 0, len(items))
	for _, item := range items {
		actual, err := ResolvePayday(cal, item.Nominal)
		if err != nil {
			return nil, err
		}
		event := PayEvent{
			Kind:    item.Kind,
			Nominal: item.Nominal,
			Actual:  actual,
			Moved:   actual != item.Nominal,
			Gross:   item.Amount,
			Net:     item.Amount,
		}
		if item.Kind == KindFinal {
			event.Tax, event.Net = s.Tax.Withhold(item.Amount)
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Actual.Before(events[j].Actual)
	})

	schedule := &Schedule{Month: m, Events: events}
	s.annotateFX(ctx, schedule, gross)
	return schedule, nil
}

// ComputeYear plans all twelve cycles of a year with the same salary and
// policy. Fails on the first month that cannot be computed.
func (s *Scheduler) ComputeYear(ctx context.Context, gross Money, year int, policy PayPolicy) ([]*Schedule, error) {
	schedules := make([]*Schedule, 0, 12)
	for month := 1; month <= 12; month++ {
		schedule, err := s.ComputeSchedule(ctx, gross, Month{Year: year, Month: time.Month(month)}, policy)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

// calendarCovering fetches and merges the year calendars the cycle touches.
// Besides the nominal years themselves, a nominal date in January pulls in
// the previous year: backward shifting can cross into late December.
func (s *Scheduler) calendarCovering(ctx context.Context, items []LineItem) (*Calendar, error) {
	years := make(map[int]bool)
	for _, item := range items {
		years[item.Nominal.Year] = true
		if item.Nominal.Month == time.January {
			years[item.Nominal.Year-1] = true
		}
	}

	ordered := make([]int, 0, len(years))
	for year := range years {
		ordered = append(ordered, year)
	}
	sort.Ints(ordered)

	var merged *Calendar
	for _, year := range ordered {
		cal, err := s.Calendars.YearCalendar(ctx, year)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = cal
		} else {
			merged = merged.Merge(cal)
		}
	}
	return merged, nil
}

// annotateFX attaches second-currency amounts when a rate is available.
// A missing or failing rate feed drops the annotation silently: currency
// display is never allowed to block payroll computation.
func (s *Scheduler) annotateFX(ctx context.Context, schedule *Schedule, gross Money) {
	if s.Rates == nil {
		return
	}
	rate, err := s.Rates.Rate(ctx)
	if err != nil || !rate.IsPositive() {
		return
	}

	var tax Money
	for _, e := range schedule.Events {
		tax += e.Tax
	}
	net := gross - tax

	schedule.FX = &FXQuote{
		Currency: s.Currency,
		Rate:     rate,
		Gross:    gross.Decimal().DivRound(rate, 2),
		Tax:      tax.Decimal().DivRound(rate, 2),
		Net:      net.Decimal().DivRound(rate, 2),
	}
}

// =============================================================================
// SALARY FOR DAYS WORKED
// =============================================================================

// SalaryMode selects which side of the tax the input amount describes.
type SalaryMode string

const (
	ModeGross SalaryMode = "gross" // amount is the salary before tax
	ModeNet   SalaryMode = "net"   // amount is the desired take-home pay
)

// SalaryBreakdown is the before-tax/tax/after-tax decomposition of a
// pro-rated salary.
type SalaryBreakdown struct {
	Month       Month
	DaysWorked  int
	WorkingDays int
	Gross       Money
	Tax         Money
	Net         Money
}

// SalaryForDays pro-rates a monthly salary over the days actually worked:
// the daily rate is the amount over the month's production-calendar working
// days. In gross mode the amount is taxed down; in net mode it is grossed up
// first.
func (s *Scheduler) SalaryForDays(ctx context.Context, amount Money, m Month, daysWorked int, mode SalaryMode) (*SalaryBreakdown, error) {
	if !amount.IsPositive() {
		return nil, &PolicyError{Field: "amount", Reason: "must be positive"}
	}

	cal, err := s.Calendars.YearCalendar(ctx, m.Year)
	if err != nil {
		return nil, err
	}
	workingDays, err := cal.WorkingDaysIn(m)
	if err != nil {
		return nil, err
	}
	if workingDays == 0 {
		return nil, &CalendarUnavailableError{Year: m.Year, Reason: "month " + m.String() + " has no working days"}
	}
	if daysWorked < 0 || daysWorked > workingDays {
		return nil, &PolicyError{Field: "days_worked", Reason: "must be between 0 and the month's working days"}
	}

	period := amount.Decimal().
		Div(decimal.NewFromInt(int64(workingDays))).
		Mul(decimal.NewFromInt(int64(daysWorked)))
	periodAmount := MoneyFromDecimal(period)

	breakdown := &SalaryBreakdown{Month: m, DaysWorked: daysWorked, WorkingDays: workingDays}
	switch mode {
	case ModeGross:
		breakdown.Gross = periodAmount
		breakdown.Tax, breakdown.Net = s.Tax.Withhold(periodAmount)
	case ModeNet:
		breakdown.Net = periodAmount
		breakdown.Gross, breakdown.Tax = s.Tax.GrossUp(periodAmount)
	default:
		return nil, &PolicyError{Field: "mode", Reason: "must be gross or net"}
	}
	return breakdown, nil
}
