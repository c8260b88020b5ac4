/*
Package rates reads the Central Bank of Russia daily rate feed
(cbr-xml-daily.ru) and exposes one currency's rate to the engine.

The rate is display enrichment only: the scheduler tolerates this feed being
down by dropping the second-currency annotation, so this client reports
failures honestly instead of falling back to a stale constant.
*/
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// DefaultBaseURL is the public CBR daily JSON feed.
const DefaultBaseURL = "https://www.cbr-xml-daily.ru"

// Client fetches the latest published rate for one currency code.
// Implements payroll.RateProvider.
type Client struct {
	baseURL    string
	currency   string
	httpClient *http.Client
}

var _ payroll.RateProvider = (*Client)(nil)

// New creates a client for the given currency code (e.g. "USD"). Empty
// arguments select the public feed and USD.
func New(baseURL, currency string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if currency == "" {
		currency = "USD"
	}
	return &Client{
		baseURL:    baseURL,
		currency:   currency,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Currency returns the configured currency code.
func (c *Client) Currency() string { return c.currency }

// =============================================================================
// WIRE TYPES
// =============================================================================

type dailyFeed struct {
	Valute map[string]quote `json:"Valute"`
}

type quote struct {
	Nominal int64           `json:"Nominal"` // e.g. 100 for JPY
	Value   decimal.Decimal `json:"Value"`   // rubles per Nominal units
}

// =============================================================================
// FETCH
// =============================================================================

// Rate returns the current home-per-foreign rate for the configured
// currency, normalized to one foreign unit.
func (c *Client) Rate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/daily_json.js", nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", payroll.ErrRateUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: feed unreachable: %v", payroll.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: feed returned %s", payroll.ErrRateUnavailable, resp.Status)
	}

	var feed dailyFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed feed: %v", payroll.ErrRateUnavailable, err)
	}

	q, ok := feed.Valute[c.currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: feed has no %s quote", payroll.ErrRateUnavailable, c.currency)
	}
	if q.Nominal <= 0 || !q.Value.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: nonsense %s quote (nominal %d, value %s)",
			payroll.ErrRateUnavailable, c.currency, q.Nominal, q.Value)
	}

	return q.Value.Div(decimal.NewFromInt(q.Nominal)), nil
}
