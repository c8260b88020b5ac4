// Package config loads service configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port            int
	DBPath          string // SQLite cache location; ":memory:" to disable persistence
	CalendarBaseURL string // empty selects the public calendar service
	RatesBaseURL    string // empty selects the public CBR feed
	RateCurrency    string
	TaxRate         string // decimal, e.g. "0.13"
}

// Load reads configuration from the environment. A .env file is honored
// when present and silently skipped when not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return &Config{
		Port:            port,
		DBPath:          getEnv("DB_PATH", "payday.db"),
		CalendarBaseURL: getEnv("CALENDAR_BASE_URL", ""),
		RatesBaseURL:    getEnv("RATES_BASE_URL", ""),
		RateCurrency:    getEnv("RATE_CURRENCY", "USD"),
		TaxRate:         getEnv("TAX_RATE", "0.13"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
