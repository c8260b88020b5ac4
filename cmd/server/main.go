/*
main.go - Payday scheduler entry point

STARTUP SEQUENCE:
  1. Load env config (.env honored), parse flag overrides
  2. Open the SQLite cache
  3. Wrap the calendar and rate clients in the cache
  4. Build the scheduler and HTTP router
  5. Serve with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite cache path (overrides DB_PATH; ":memory:" works)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain for up to 30s,
  close the cache database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dantetemplar/payday-scheduler/api"
	"github.com/dantetemplar/payday-scheduler/calendarapi"
	"github.com/dantetemplar/payday-scheduler/config"
	"github.com/dantetemplar/payday-scheduler/payroll"
	"github.com/dantetemplar/payday-scheduler/rates"
	"github.com/dantetemplar/payday-scheduler/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite cache path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open cache database: %v", err)
	}
	defer store.Close()

	ratesClient := rates.New(cfg.RatesBaseURL, cfg.RateCurrency)
	calendars := sqlite.NewCachedCalendars(store, calendarapi.New(cfg.CalendarBaseURL))
	rateFeed := sqlite.NewCachedRates(store, ratesClient, ratesClient.Currency(), 12*time.Hour)

	scheduler := payroll.NewScheduler(calendars, rateFeed)
	scheduler.Currency = ratesClient.Currency()
	scheduler.Tax = payroll.TaxCalculator{Rate: payroll.MustDecimal(cfg.TaxRate)}

	router := api.NewRouter(api.NewHandler(scheduler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Payday scheduler listening on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
