/*
Package calendarapi fetches the Russian production calendar from the remote
calendar service (calendar.kuzyak.in) and converts it into the engine's
per-day classification.

CLASSIFICATION:
  The service publishes the year's holidays and pre-holiday short days.
  Every day of the year is classified from that:
    listed holiday        -> holiday (wins over weekend)
    listed short day      -> pre-holiday short
    Saturday / Sunday     -> weekend
    anything else         -> working

FAILURE POLICY:
  Unreachable service, non-200 status or a malformed body all surface as
  payroll.CalendarUnavailable. The client never fabricates weekday-only
  calendars - a wrong calendar moves real paydays.

USAGE:
  client := calendarapi.New("")          // default base URL
  cal, err := client.YearCalendar(ctx, 2025)

SEE ALSO:
  - payroll/calendar.go: the CalendarProvider contract
  - store/sqlite: read-through cache wrapping this client
*/
package calendarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// DefaultBaseURL is the public production-calendar service.
const DefaultBaseURL = "https://calendar.kuzyak.in"

// Client fetches year calendars over HTTP. It implements
// payroll.CalendarProvider and performs no retries; retry policy belongs to
// the caller, not here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ payroll.CalendarProvider = (*Client)(nil)

// New creates a client. An empty baseURL selects the public service.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type holidaysResponse struct {
	Year      int         `json:"year"`
	Holidays  []namedDate `json:"holidays"`
	ShortDays []namedDate `json:"shortDays"`
}

type namedDate struct {
	Date string `json:"date"` // RFC 3339, e.g. "2025-01-01T00:00:00.000Z"
	Name string `json:"name"`
}

// =============================================================================
// FETCH
// =============================================================================

// YearCalendar fetches and classifies the production calendar for a year.
func (c *Client) YearCalendar(ctx context.Context, year int) (*payroll.Calendar, error) {
	url := fmt.Sprintf("%s/api/calendar/%d/holidays", c.baseURL, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "calendar service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &payroll.CalendarUnavailableError{
			Year:   year,
			Reason: "calendar service returned " + resp.Status,
		}
	}

	var decoded holidaysResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "malformed response body", Err: err}
	}
	if decoded.Year != year {
		return nil, &payroll.CalendarUnavailableError{
			Year:   year,
			Reason: fmt.Sprintf("response is for year %d", decoded.Year),
		}
	}

	holidays, err := dateSet(decoded.Holidays)
	if err != nil {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "malformed holiday date", Err: err}
	}
	short, err := dateSet(decoded.ShortDays)
	if err != nil {
		return nil, &payroll.CalendarUnavailableError{Year: year, Reason: "malformed short-day date", Err: err}
	}

	return classifyYear(year, holidays, short), nil
}

func dateSet(entries []namedDate) (map[payroll.Date]bool, error) {
	set := make(map[payroll.Date]bool, len(entries))
	for _, e := range entries {
		t, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", e.Date, err)
		}
		set[payroll.DateFromTime(t.UTC())] = true
	}
	return set, nil
}

// classifyYear walks every day of the year exactly once. Holidays win over
// weekends so shifted rest days stay non-payable.
func classifyYear(year int, holidays, short map[payroll.Date]bool) *payroll.Calendar {
	days := make(map[payroll.Date]payroll.DayKind, 366)
	for d := payroll.NewDate(year, time.January, 1); d.Year == year; d = d.AddDays(1) {
		switch {
		case holidays[d]:
			days[d] = payroll.DayHoliday
		case short[d]:
			days[d] = payroll.DayPreHolidayShort
		case d.IsWeekend():
			days[d] = payroll.DayWeekend
		default:
			days[d] = payroll.DayWorking
		}
	}
	return payroll.NewCalendar(days)
}
