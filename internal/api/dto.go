/*
dto.go - request and response bodies of the HTTP API

The DTOs keep the wire format (camelCase JSON, YYYY-MM-DD birth dates,
YYYY-MM periods) apart from the engine types. Validation happens in the
handlers through the engine's own checks; DTOs only convert.
*/
package api

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/compare"
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
	"github.com/rgehrsitz/vcpgo/internal/transform"
	"github.com/shopspring/decimal"
)

// ProfileDTO is the worker profile shared by every request
type ProfileDTO struct {
	BirthDate           string          `json:"birthDate"`
	RetirementAge       int             `json:"retirementAge"`
	PriorWeeks          int             `json:"priorWeeks"`
	Dependent           bool            `json:"dependent"`
	HistoricalDailyWage decimal.Decimal `json:"historicalDailyWage"`
}

// ToDomain parses the birth date (YYYY-MM-DD or RFC 3339)
func (p ProfileDTO) ToDomain() (domain.WorkerProfile, error) {
	birth, err := parseDate(p.BirthDate)
	if err != nil {
		return domain.WorkerProfile{}, domain.NewValidationError("birth_date", "invalid birth date %q (use YYYY-MM-DD)", p.BirthDate)
	}
	return domain.WorkerProfile{
		BirthDate:           birth,
		RetirementAge:       p.RetirementAge,
		PriorWeeks:          p.PriorWeeks,
		Dependent:           p.Dependent,
		HistoricalDailyWage: domain.NewDailyWage(p.HistoricalDailyWage),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// StrategyDTO selects a strategy by type and wage level
type StrategyDTO struct {
	Type      domain.StrategyType `json:"type"`
	WageLevel decimal.Decimal     `json:"wageLevel"`
	Start     domain.YearMonth    `json:"start"`
	Months    int                 `json:"months,omitempty"`
	End       domain.YearMonth    `json:"end,omitempty"`
}

// ToDomain builds the schedule strategy against the engine's tables
func (s StrategyDTO) ToDomain(tables *domain.StatutoryTables) (domain.Strategy, error) {
	if s.Months > 0 && !s.End.IsZero() {
		return domain.Strategy{}, domain.NewValidationError("strategy.end", "give either months or end, not both")
	}
	cfg := config.StrategyConfig{Type: s.Type, WageLevel: s.WageLevel, Start: s.Start, Months: s.Months, End: s.End}
	return cfg.ToStrategy(tables)
}

// ComputeRequest is the body of POST /api/v1/strategies/compute
type ComputeRequest struct {
	Profile         ProfileDTO  `json:"profile"`
	Strategy        StrategyDTO `json:"strategy"`
	IncludeSchedule bool        `json:"includeSchedule"`
	AgeSensitivity  bool        `json:"ageSensitivity"`
}

// ComputeResponse carries a single projection and, on request, the same
// strategy at every retirement age.
type ComputeResponse struct {
	Result         *domain.BenefitResult   `json:"result"`
	AgeSensitivity []*domain.BenefitResult `json:"ageSensitivity,omitempty"`
}

// SearchRequest is the body of POST /api/v1/strategies/search
type SearchRequest struct {
	Profile         ProfileDTO        `json:"profile"`
	MinWageLevel    int               `json:"minWageLevel"`
	MaxWageLevel    int               `json:"maxWageLevel"`
	AsOf            domain.YearMonth  `json:"asOf"` // current month when omitted
	CustomStart     *domain.YearMonth `json:"customStart,omitempty"`
	Limit           int               `json:"limit"`
	IncludeSchedule bool              `json:"includeSchedule"`
}

// ToDomain converts the body into a search request and solver options
func (r SearchRequest) ToDomain() (optimize.SearchRequest, optimize.SolverOptions, error) {
	profile, err := r.Profile.ToDomain()
	if err != nil {
		return optimize.SearchRequest{}, optimize.SolverOptions{}, err
	}
	if r.Limit < 0 {
		return optimize.SearchRequest{}, optimize.SolverOptions{}, domain.NewValidationError("limit", "limit cannot be negative")
	}
	asOf := r.AsOf
	if asOf.IsZero() {
		asOf = domain.YearMonthOf(time.Now())
	}
	req := optimize.SearchRequest{
		BirthDate:           profile.BirthDate,
		RetirementAge:       profile.RetirementAge,
		PriorWeeks:          profile.PriorWeeks,
		Dependent:           profile.Dependent,
		HistoricalDailyWage: profile.HistoricalDailyWage,
		MinWageLevel:        r.MinWageLevel,
		MaxWageLevel:        r.MaxWageLevel,
		AsOf:                asOf,
		CustomStart:         r.CustomStart,
	}
	return req, optimize.SolverOptions{Limit: r.Limit, IncludeSchedule: r.IncludeSchedule}, nil
}

// CompareRequest is the body of POST /api/v1/strategies/compare
type CompareRequest struct {
	Profile    ProfileDTO  `json:"profile"`
	Strategy   StrategyDTO `json:"strategy"`
	Templates  []string    `json:"templates,omitempty"`
	Transforms []string    `json:"transforms,omitempty"`
}

// ToDomain converts the body into a base plan and comparison options
func (r CompareRequest) ToDomain() (*transform.Plan, compare.CompareOptions, error) {
	profile, err := r.Profile.ToDomain()
	if err != nil {
		return nil, compare.CompareOptions{}, err
	}
	if r.Strategy.Months > 0 && !r.Strategy.End.IsZero() {
		return nil, compare.CompareOptions{}, domain.NewValidationError("strategy.end", "give either months or end, not both")
	}
	cfg := config.StrategyConfig{
		Type:      r.Strategy.Type,
		WageLevel: r.Strategy.WageLevel,
		Start:     r.Strategy.Start,
		Months:    r.Strategy.Months,
		End:       r.Strategy.End,
	}
	base := transform.NewPlan("base", profile, &cfg)
	return base, compare.CompareOptions{Templates: r.Templates, Transforms: r.Transforms}, nil
}

// ReconstructRequest is the body of POST /api/v1/payments/reconstruct
type ReconstructRequest struct {
	Profile             ProfileDTO                       `json:"profile"`
	Strategy            *StrategyDTO                     `json:"strategy,omitempty"`
	Payments            []reconstruct.PaymentRecord      `json:"payments,omitempty"`
	Resume              *domain.YearMonth                `json:"resume,omitempty"`
	RetroactiveMultiple *decimal.Decimal                 `json:"retroactiveMultiple,omitempty"`
	Planned             *reconstruct.PlannedContinuation `json:"planned,omitempty"`
}

// ToDomain converts the body into a reconstruction request
func (r ReconstructRequest) ToDomain(tables *domain.StatutoryTables) (reconstruct.Request, error) {
	profile, err := r.Profile.ToDomain()
	if err != nil {
		return reconstruct.Request{}, err
	}
	req := reconstruct.Request{
		Profile:             profile,
		Payments:            r.Payments,
		Resume:              r.Resume,
		RetroactiveMultiple: r.RetroactiveMultiple,
		Planned:             r.Planned,
	}
	if r.Strategy != nil {
		strategy, err := r.Strategy.ToDomain(tables)
		if err != nil {
			return reconstruct.Request{}, err
		}
		req.Strategy = &strategy
	}
	return req, nil
}

// ScheduleRequest is the body of POST /api/v1/schedules
type ScheduleRequest struct {
	Strategy StrategyDTO `json:"strategy"`
}

// ScheduleResponse lists the generated months and their total cost
type ScheduleResponse struct {
	Strategy domain.Strategy              `json:"strategy"`
	Months   []domain.MonthlyContribution `json:"months"`
	Total    decimal.Decimal              `json:"total"`
}

// Response is the envelope of every successful response
type Response struct {
	RequestID string `json:"requestId"`
	Data      any    `json:"data"`
}

// ErrorResponse is the envelope of every failed response
type ErrorResponse struct {
	RequestID string `json:"requestId"`
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Details   string `json:"details,omitempty"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status        string `json:"status"`
	TablesVersion string `json:"tablesVersion"`
}

func describeStrategy(s domain.Strategy) string {
	return fmt.Sprintf("%s (%d months)", s, s.Range.Months())
}
