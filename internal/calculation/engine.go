package calculation

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/domain"
)

// CalculationEngine runs the projection pipeline: schedule, rolling window
// average, statutory benefit. It holds only immutable tables, so one engine
// can serve concurrent callers.
type CalculationEngine struct {
	Tables *domain.StatutoryTables
	Logger Logger
}

// NewCalculationEngine creates an engine with the built-in statutory tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithTables(domain.DefaultStatutoryTables())
}

// NewCalculationEngineWithTables creates an engine pinned to a law version
func NewCalculationEngineWithTables(tables *domain.StatutoryTables) *CalculationEngine {
	if tables == nil {
		tables = domain.DefaultStatutoryTables()
	}
	return &CalculationEngine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// ProjectionParams are the inputs of a single-strategy projection
type ProjectionParams struct {
	Profile         domain.WorkerProfile
	Strategy        domain.Strategy
	IncludeSchedule bool
}

// BuildContributionSchedule generates the monthly schedule for a strategy
func (ce *CalculationEngine) BuildContributionSchedule(strategy domain.Strategy) ([]domain.MonthlyContribution, error) {
	return BuildSchedule(ce.Tables, strategy)
}

// ComputeSingleStrategy projects the pension for one strategy.
func (ce *CalculationEngine) ComputeSingleStrategy(params ProjectionParams) (*domain.BenefitResult, error) {
	if err := params.Profile.Validate(ce.Tables); err != nil {
		return nil, err
	}
	if params.Strategy.Range.Months() > ce.Tables.Scheme.MaxMonths {
		return nil, &domain.LimitExceededError{Original: params.Strategy.Range.Months(), Limit: ce.Tables.Scheme.MaxMonths}
	}

	schedule, err := ce.BuildContributionSchedule(params.Strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule for %s: %w", params.Strategy, err)
	}

	result, err := ce.Evaluate(schedule, params.Profile)
	if err != nil {
		return nil, err
	}
	result.StrategyKind = params.Strategy.Kind
	if params.IncludeSchedule {
		result.Schedule = schedule
	}
	return result, nil
}

// Evaluate runs the window average and benefit formula over a schedule that
// is already in chronological order. It is shared by generated and
// reconstructed schedules.
func (ce *CalculationEngine) Evaluate(schedule []domain.MonthlyContribution, profile domain.WorkerProfile) (*domain.BenefitResult, error) {
	avg, err := AverageWage(ce.Tables, profile.HistoricalDailyWage, schedule)
	if err != nil {
		return nil, err
	}

	weeks := profile.PriorWeeks + SchemeWeeks(ce.Tables, len(schedule))
	result, err := CalculateBenefit(ce.Tables, BenefitInput{
		AverageMonthlyWage: avg.Monthly,
		TotalWeeks:         weeks,
		RetirementYear:     profile.RetirementYear(),
		RetirementAge:      profile.RetirementAge,
		Dependent:          profile.Dependent,
		TotalInvestment:    domain.TotalContributions(schedule),
		MonthsContributed:  len(schedule),
	})
	if err != nil {
		return nil, err
	}

	if len(schedule) > 0 {
		result.FirstPeriod = schedule[0].Period
		result.LastPeriod = schedule[len(schedule)-1].Period
	}

	if result.Failure != nil {
		ce.logger().Debugf("no pension for %d months ending %s: %s", len(schedule), result.LastPeriod, result.Failure.Reason)
	} else {
		ce.logger().Debugf("%d months, %d weeks, average daily wage %s, pension %s",
			len(schedule), weeks, avg.Daily.StringFixed(2), result.MonthlyPension.StringFixed(2))
	}
	return result, nil
}

// AgeSensitivity projects the strategy once per retirement age in the tables
func (ce *CalculationEngine) AgeSensitivity(params ProjectionParams) ([]*domain.BenefitResult, error) {
	results := make([]*domain.BenefitResult, 0, len(ce.Tables.AgeFactors))
	for _, af := range ce.Tables.AgeFactors {
		variant := params
		variant.Profile.RetirementAge = af.Age
		variant.IncludeSchedule = false
		r, err := ce.ComputeSingleStrategy(variant)
		if err != nil {
			return nil, fmt.Errorf("age %d: %w", af.Age, err)
		}
		results = append(results, r)
	}
	return results, nil
}
