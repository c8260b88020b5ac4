/*
server.go - Router and middleware for the payday scheduler API

MIDDLEWARE STACK:
  1. CORS:          browser front-ends on other origins
  2. RequestLogger: structured request logs (httplog over slog, ECS schema)
  3. CleanPath + Recoverer + Heartbeat

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: startup and shutdown
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter wires all routes and middleware.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payday-scheduler"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Post("/schedule", h.ComputeSchedule)
		r.Post("/schedule/year", h.ComputeYearSchedule)
		r.Post("/salary", h.Salary)
		r.Get("/calendar/{year}", h.GetCalendar)
		r.Get("/rate", h.GetRate)
	})

	return r
}
