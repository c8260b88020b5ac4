/*
errors.go - Error kinds of the scheduling engine

PURPOSE:
  All engine error types in one place. Three kinds exist:

  1. CalendarUnavailable - the calendar collaborator failed or returned
     incomplete data. Not recoverable locally; the caller decides whether
     to retry. The engine never papers over it with weekday guessing.
  2. NoWorkingDayFound  - pathological calendar data: the backward payday
     search exhausted its bound without hitting a payable day.
  3. InvalidPolicy      - caller configuration error. Surfaced immediately,
     never silently corrected.

  Each kind is a sentinel (for errors.Is) plus a structured wrapper that
  carries context and unwraps to the sentinel.

USAGE:
  if errors.Is(err, payroll.ErrCalendarUnavailable) { ... }

  var polErr *payroll.PolicyError
  if errors.As(err, &polErr) { log.Println(polErr.Reason) }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCalendarUnavailable is returned when the production calendar for a
	// requested year cannot be fetched or is missing dates.
	ErrCalendarUnavailable = errors.New("production calendar unavailable")

	// ErrNoWorkingDay is returned when the backward shift search finds no
	// payable day within its bound.
	ErrNoWorkingDay = errors.New("no working day found")

	// ErrInvalidPolicy is returned for malformed pay policies.
	ErrInvalidPolicy = errors.New("invalid pay policy")

	// ErrRateUnavailable is returned by rate providers when the current
	// exchange rate cannot be fetched. The scheduler treats it as benign.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CalendarUnavailableError reports which year's calendar failed and why.
type CalendarUnavailableError struct {
	Year   int
	Reason string
	Err    error // underlying transport/decode error, may be nil
}

func (e *CalendarUnavailableError) Error() string {
	msg := fmt.Sprintf("calendar for %d unavailable: %s", e.Year, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CalendarUnavailableError) Unwrap() error { return ErrCalendarUnavailable }

// NoWorkingDayError reports the nominal date whose backward search failed.
type NoWorkingDayError struct {
	Nominal  Date
	Searched int // days inspected before giving up
}

func (e *NoWorkingDayError) Error() string {
	return fmt.Sprintf("no working day within %d days before %s", e.Searched, e.Nominal)
}

func (e *NoWorkingDayError) Unwrap() error { return ErrNoWorkingDay }

// PolicyError reports a pay-policy validation failure.
type PolicyError struct {
	Field  string
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("invalid pay policy: %s: %s", e.Field, e.Reason)
}

func (e *PolicyError) Unwrap() error { return ErrInvalidPolicy }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is the caller's fault (bad input)
// rather than a collaborator or data failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPolicy)
}
