/*
handlers.go - HTTP handlers for the payday scheduler

PURPOSE:
  Exposes the scheduling engine as a JSON API. Handlers parse and validate
  input, delegate to the engine, and map its error kinds onto HTTP status
  codes.

ENDPOINTS:
  POST /api/schedule        One month's payment schedule
  POST /api/schedule/year   All twelve cycles of a year
  POST /api/salary          Pro-rated salary for days worked
  GET  /api/calendar/{year} Production calendar summarized by month
  GET  /api/rate            Current exchange rate

ERROR HANDLING:
  400: InvalidPolicy and any malformed input
  502: CalendarUnavailable / rate feed down (upstream data problem)
  500: NoWorkingDayFound and everything else

SEE ALSO:
  - dto.go: wire types
  - server.go: router and middleware
  - payroll/scheduler.go: the engine being exposed
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// Handler holds the handlers' single dependency: the scheduling engine
// (which carries the calendar and rate providers).
type Handler struct {
	Scheduler *payroll.Scheduler
}

// NewHandler creates a handler around a configured scheduler.
func NewHandler(scheduler *payroll.Scheduler) *Handler {
	return &Handler{Scheduler: scheduler}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ComputeSchedule returns one month's payment schedule.
func (h *Handler) ComputeSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	month, ok := parseMonth(w, req.Year, req.Month)
	if !ok {
		return
	}

	schedule, err := h.Scheduler.ComputeSchedule(r.Context(), payroll.MoneyFromDecimal(req.Salary), month, req.Policy.toPolicy())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(schedule))
}

// ComputeYearSchedule returns the schedules of all twelve months.
func (h *Handler) ComputeYearSchedule(w http.ResponseWriter, r *http.Request) {
	var req YearScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if !validYear(req.Year) {
		writeError(w, http.StatusBadRequest, "year out of range", nil)
		return
	}

	schedules, err := h.Scheduler.ComputeYear(r.Context(), payroll.MoneyFromDecimal(req.Salary), req.Year, req.Policy.toPolicy())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dtos := make([]ScheduleDTO, len(schedules))
	for i, s := range schedules {
		dtos[i] = toScheduleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Salary returns the pro-rated salary for a partially worked month.
func (h *Handler) Salary(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	month, ok := parseMonth(w, req.Year, req.Month)
	if !ok {
		return
	}
	mode := payroll.SalaryMode(req.Mode)
	if req.Mode == "" {
		mode = payroll.ModeGross
	}

	breakdown, err := h.Scheduler.SalaryForDays(r.Context(), payroll.MoneyFromDecimal(req.Amount), month, req.DaysWorked, mode)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSalaryDTO(breakdown))
}

// =============================================================================
// CALENDAR AND RATE HANDLERS
// =============================================================================

// GetCalendar returns the production calendar of a year by month.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || !validYear(year) {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return
	}

	cal, err := h.Scheduler.Calendars.YearCalendar(r.Context(), year)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := CalendarYearDTO{Year: year, Months: make([]MonthStatsDTO, 0, 12)}
	for m := time.January; m <= time.December; m++ {
		stats, err := cal.Stats(payroll.Month{Year: year, Month: m})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		dto.Months = append(dto.Months, MonthStatsDTO{
			Month:        int(m),
			WorkingDays:  stats.WorkingDays,
			RestDays:     stats.RestDays,
			ShortDays:    stats.ShortDays,
			WorkingHours: stats.WorkingHours,
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetRate returns the current exchange rate. Unlike the schedule FX
// annotation this endpoint asks for the rate explicitly, so a dead feed is
// an upstream error here.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	if h.Scheduler.Rates == nil {
		writeError(w, http.StatusNotFound, "rate feed not configured", nil)
		return
	}
	rate, err := h.Scheduler.Rates.Rate(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "rate feed unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, RateDTO{Currency: h.Scheduler.Currency, Rate: rate.String()})
}

// =============================================================================
// HELPERS
// =============================================================================

func validYear(year int) bool { return year >= 2000 && year <= 2100 }

func parseMonth(w http.ResponseWriter, year, month int) (payroll.Month, bool) {
	if !validYear(year) {
		writeError(w, http.StatusBadRequest, "year out of range", nil)
		return payroll.Month{}, false
	}
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12", nil)
		return payroll.Month{}, false
	}
	return payroll.Month{Year: year, Month: time.Month(month)}, true
}

// writeEngineError maps engine error kinds onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid input", err)
	case errors.Is(err, payroll.ErrCalendarUnavailable):
		writeError(w, http.StatusBadGateway, "production calendar unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "schedule computation failed", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
