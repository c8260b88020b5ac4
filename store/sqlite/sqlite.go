/*
Package sqlite provides SQLite-backed read-through caches for the two
network collaborators: year calendars and currency rates.

PURPOSE:
  The scheduling engine is cache-oblivious; avoiding redundant network
  calls is the caller's job. This package is that caller-side layer: it
  wraps a CalendarProvider or RateProvider and persists what they return.

CACHING RULES:
  calendar_cache: keyed by year, kept indefinitely. A published production
                  calendar for a year practically never changes; delete the
                  row (or the db file) to force a refetch.
  rate_cache:     keyed by currency code with a freshness TTL - rates are
                  republished daily.

  A corrupted cache row is treated as a miss and overwritten on the next
  successful fetch, never served.

CONCURRENCY:
  sync.RWMutex around the connection, WAL mode for crash recovery. Plenty
  for a single-process cache.

USAGE:
  store, err := sqlite.New("payday.db")   // ":memory:" for tests
  calendars := sqlite.NewCachedCalendars(store, calendarapi.New(""))
  rates := sqlite.NewCachedRates(store, ratesClient, "USD", 12*time.Hour)

SEE ALSO:
  - payroll/calendar.go: provider contracts being decorated
  - calendarapi/, rates/: the wrapped sources
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// Store owns the SQLite connection both caches share.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the cache database. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calendar_cache (
		year       INTEGER PRIMARY KEY,
		days       TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rate_cache (
		currency   TEXT PRIMARY KEY,
		rate       TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALENDAR ROWS
// =============================================================================

// getCalendar returns the cached calendar for a year. A missing row or a
// row that fails to decode reports a miss.
func (s *Store) getCalendar(ctx context.Context, year int) (*payroll.Calendar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT days FROM calendar_cache WHERE year = ?`, year).Scan(&encoded)
	if err != nil {
		return nil, false
	}

	cal, err := decodeCalendar(encoded)
	if err != nil {
		return nil, false // corrupted row: refetch and overwrite
	}
	return cal, true
}

func (s *Store) putCalendar(ctx context.Context, year int, cal *payroll.Calendar) error {
	encoded, err := encodeCalendar(cal)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calendar_cache (year, days, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(year) DO UPDATE SET days = excluded.days, fetched_at = excluded.fetched_at`,
		year, encoded, time.Now().UTC())
	return err
}

func encodeCalendar(cal *payroll.Calendar) (string, error) {
	flat := make(map[string]string, cal.Len())
	for d, k := range cal.Days() {
		flat[d.String()] = string(k)
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeCalendar(encoded string) (*payroll.Calendar, error) {
	var flat map[string]string
	if err := json.Unmarshal([]byte(encoded), &flat); err != nil {
		return nil, err
	}
	days := make(map[payroll.Date]payroll.DayKind, len(flat))
	for key, kind := range flat {
		t, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, err
		}
		days[payroll.DateFromTime(t)] = payroll.DayKind(kind)
	}
	return payroll.NewCalendar(days), nil
}

// =============================================================================
// RATE ROWS
// =============================================================================

func (s *Store) getRate(ctx context.Context, currency string, maxAge time.Duration) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encoded string
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT rate, fetched_at FROM rate_cache WHERE currency = ?`, currency).
		Scan(&encoded, &fetchedAt)
	if err != nil {
		return decimal.Zero, false
	}
	if time.Since(fetchedAt) > maxAge {
		return decimal.Zero, false // stale
	}

	rate, err := decimal.NewFromString(encoded)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

func (s *Store) putRate(ctx context.Context, currency string, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rate_cache (currency, rate, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(currency) DO UPDATE SET rate = excluded.rate, fetched_at = excluded.fetched_at`,
		currency, rate.String(), time.Now().UTC())
	return err
}

// =============================================================================
// PROVIDER DECORATORS
// =============================================================================

// CachedCalendars is a read-through cache over a CalendarProvider.
type CachedCalendars struct {
	store  *Store
	source payroll.CalendarProvider
}

var _ payroll.CalendarProvider = (*CachedCalendars)(nil)

func NewCachedCalendars(store *Store, source payroll.CalendarProvider) *CachedCalendars {
	return &CachedCalendars{store: store, source: source}
}

// YearCalendar serves from the cache when possible, otherwise fetches from
// the source and persists. Source failures propagate untouched so the
// engine still sees CalendarUnavailable.
func (c *CachedCalendars) YearCalendar(ctx context.Context, year int) (*payroll.Calendar, error) {
	if cal, ok := c.store.getCalendar(ctx, year); ok {
		return cal, nil
	}

	cal, err := c.source.YearCalendar(ctx, year)
	if err != nil {
		return nil, err
	}
	if err := c.store.putCalendar(ctx, year, cal); err != nil {
		return nil, fmt.Errorf("caching calendar for %d: %w", year, err)
	}
	return cal, nil
}

// CachedRates is a read-through cache over a RateProvider with a freshness
// TTL.
type CachedRates struct {
	store    *Store
	source   payroll.RateProvider
	currency string
	maxAge   time.Duration
}

var _ payroll.RateProvider = (*CachedRates)(nil)

func NewCachedRates(store *Store, source payroll.RateProvider, currency string, maxAge time.Duration) *CachedRates {
	return &CachedRates{store: store, source: source, currency: currency, maxAge: maxAge}
}

// Rate serves a fresh cached rate or fetches a new one. Since the rate is
// optional enrichment downstream, source failures propagate and let the
// scheduler degrade as it normally would.
func (c *CachedRates) Rate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok := c.store.getRate(ctx, c.currency, c.maxAge); ok {
		return rate, nil
	}

	rate, err := c.source.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.store.putRate(ctx, c.currency, rate); err != nil {
		return decimal.Zero, fmt.Errorf("caching %s rate: %w", c.currency, err)
	}
	return rate, nil
}
