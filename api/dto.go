/*
dto.go - JSON types of the payday scheduler API

PURPOSE:
  Decouples the engine's domain types (fixed-point Money, Date values)
  from the wire format. Amounts travel as decimal strings ("40000.00") so
  clients never see kopeck integers; dates travel as ISO 8601.

NAMING CONVENTION:
  - *Request: request bodies from clients
  - *DTO:     response types returned to clients

SEE ALSO:
  - handlers.go: builds these from engine results
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/dantetemplar/payday-scheduler/payroll"
)

// =============================================================================
// REQUESTS
// =============================================================================

// PolicyRequest mirrors payroll.PayPolicy on the wire. A nil policy in a
// request selects the conventional scheme (advance on the 16th).
type PolicyRequest struct {
	AdvanceDay      int             `json:"advance_day"`
	FinalDay        int             `json:"final_day"`
	FinalNextMonth  bool            `json:"final_next_month"`
	AdvanceFraction decimal.Decimal `json:"advance_fraction"`
}

func (p *PolicyRequest) toPolicy() payroll.PayPolicy {
	if p == nil {
		return payroll.StandardPolicy(16)
	}
	return payroll.PayPolicy{
		AdvanceDay:      p.AdvanceDay,
		FinalDay:        p.FinalDay,
		FinalNextMonth:  p.FinalNextMonth,
		AdvanceFraction: p.AdvanceFraction,
	}
}

// ScheduleRequest asks for one month's payment schedule.
type ScheduleRequest struct {
	Salary decimal.Decimal `json:"salary"` // monthly gross, whole currency units
	Year   int             `json:"year"`
	Month  int             `json:"month"` // 1-12
	Policy *PolicyRequest  `json:"policy,omitempty"`
}

// YearScheduleRequest asks for all twelve cycles of a year.
type YearScheduleRequest struct {
	Salary decimal.Decimal `json:"salary"`
	Year   int             `json:"year"`
	Policy *PolicyRequest  `json:"policy,omitempty"`
}

// SalaryRequest asks for a pro-rated salary over days worked.
type SalaryRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	DaysWorked int             `json:"days_worked"`
	Mode       string          `json:"mode"` // "gross" (default) or "net"
}

// =============================================================================
// RESPONSES
// =============================================================================

// PayEventDTO is one concrete payment.
type PayEventDTO struct {
	Kind        string `json:"kind"`
	NominalDate string `json:"nominal_date"`
	ActualDate  string `json:"actual_date"`
	Moved       bool   `json:"moved"`
	Gross       string `json:"gross"`
	Tax         string `json:"tax"`
	Net         string `json:"net"`
}

// FXDTO is the optional second-currency annotation.
type FXDTO struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
	Gross    string `json:"gross"`
	Tax      string `json:"tax"`
	Net      string `json:"net"`
}

// ScheduleDTO is one month's payment plan.
type ScheduleDTO struct {
	Month  string        `json:"month"` // "2025-06"
	Events []PayEventDTO `json:"events"`
	FX     *FXDTO        `json:"fx,omitempty"`
}

// MonthStatsDTO is one row of the production-calendar view.
type MonthStatsDTO struct {
	Month        int `json:"month"`
	WorkingDays  int `json:"working_days"`
	RestDays     int `json:"rest_days"`
	ShortDays    int `json:"short_days"`
	WorkingHours int `json:"working_hours"`
}

// CalendarYearDTO is the production calendar summarized by month.
type CalendarYearDTO struct {
	Year   int             `json:"year"`
	Months []MonthStatsDTO `json:"months"`
}

// RateDTO is the current exchange rate.
type RateDTO struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
}

// SalaryDTO is the pro-rated salary breakdown.
type SalaryDTO struct {
	Month       string `json:"month"`
	DaysWorked  int    `json:"days_worked"`
	WorkingDays int    `json:"working_days"`
	Gross       string `json:"gross"`
	Tax         string `json:"tax"`
	Net         string `json:"net"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toScheduleDTO(s *payroll.Schedule) ScheduleDTO {
	dto := ScheduleDTO{Month: s.Month.String(), Events: make([]PayEventDTO, len(s.Events))}
	for i, e := range s.Events {
		dto.Events[i] = PayEventDTO{
			Kind:        string(e.Kind),
			NominalDate: e.Nominal.String(),
			ActualDate:  e.Actual.String(),
			Moved:       e.Moved,
			Gross:       e.Gross.String(),
			Tax:         e.Tax.String(),
			Net:         e.Net.String(),
		}
	}
	if s.FX != nil {
		dto.FX = &FXDTO{
			Currency: s.FX.Currency,
			Rate:     s.FX.Rate.String(),
			Gross:    s.FX.Gross.StringFixed(2),
			Tax:      s.FX.Tax.StringFixed(2),
			Net:      s.FX.Net.StringFixed(2),
		}
	}
	return dto
}

func toSalaryDTO(b *payroll.SalaryBreakdown) SalaryDTO {
	return SalaryDTO{
		Month:       b.Month.String(),
		DaysWorked:  b.DaysWorked,
		WorkingDays: b.WorkingDays,
		Gross:       b.Gross.String(),
		Tax:         b.Tax.String(),
		Net:         b.Net.String(),
	}
}
