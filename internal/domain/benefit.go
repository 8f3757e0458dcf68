package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerProfile holds the facts about the worker shared by every entry point.
type WorkerProfile struct {
	BirthDate           time.Time `yaml:"birth_date" json:"birthDate"`
	RetirementAge       int       `yaml:"retirement_age" json:"retirementAge"`
	PriorWeeks          int       `yaml:"prior_weeks" json:"priorWeeks"`
	Dependent           bool      `yaml:"dependent" json:"dependent"`
	HistoricalDailyWage DailyWage `yaml:"historical_daily_wage" json:"historicalDailyWage"`
}

// RetirementYear is the calendar year in which the worker reaches RetirementAge
func (p WorkerProfile) RetirementYear() int {
	return p.BirthDate.Year() + p.RetirementAge
}

// RetirementPeriod is the birthday month in the retirement year
func (p WorkerProfile) RetirementPeriod() YearMonth {
	return YearMonthOf(p.BirthDate).AddMonths(p.RetirementAge * 12)
}

// Validate checks the profile against the scheme rules in force
func (p WorkerProfile) Validate(tables *StatutoryTables) error {
	if p.BirthDate.IsZero() {
		return NewValidationError("birth_date", "birth date is required")
	}
	if p.RetirementAge < tables.Scheme.MinRetirementAge || p.RetirementAge > tables.Scheme.MaxRetirementAge {
		return NewValidationError("retirement_age", "retirement age must be between %d and %d, got %d",
			tables.Scheme.MinRetirementAge, tables.Scheme.MaxRetirementAge, p.RetirementAge)
	}
	if p.PriorWeeks < 0 {
		return NewValidationError("prior_weeks", "prior weeks cannot be negative")
	}
	if !p.HistoricalDailyWage.IsPositive() {
		return NewValidationError("historical_daily_wage", "historical daily wage must be positive")
	}
	return nil
}

// BenefitResult is the outcome of projecting one contribution schedule.
// MonthlyPension is nil when Failure is set.
type BenefitResult struct {
	StrategyKind StrategyKind `yaml:"strategy_kind,omitempty" json:"strategyKind,omitempty"`
	StrategyType StrategyType `yaml:"strategy_type,omitempty" json:"strategyType,omitempty"`
	WageLevel    int          `yaml:"wage_level,omitempty" json:"wageLevel,omitempty"`
	FirstPeriod  YearMonth    `yaml:"first_period" json:"firstPeriod"`
	LastPeriod   YearMonth    `yaml:"last_period" json:"lastPeriod"`

	MonthsContributed       int              `yaml:"months_contributed" json:"monthsContributed"`
	TotalInvestment         decimal.Decimal  `yaml:"total_investment" json:"totalInvestment"`
	MonthlyPension          *decimal.Decimal `yaml:"monthly_pension" json:"monthlyPension"`
	PensionWithYearEndBonus decimal.Decimal  `yaml:"pension_with_year_end_bonus" json:"pensionWithYearEndBonus"`
	ReturnRatio             decimal.Decimal  `yaml:"return_ratio" json:"returnRatio"`
	BreakEvenMonths         decimal.Decimal  `yaml:"break_even_months" json:"breakEvenMonths"`

	TotalWeeks          int             `yaml:"total_weeks" json:"totalWeeks"`
	AverageDailyWage    DailyWage       `yaml:"average_daily_wage" json:"averageDailyWage"`
	AverageMonthlyWage  MonthlyWage     `yaml:"average_monthly_wage" json:"averageMonthlyWage"`
	AverageWageMultiple WageMultiple    `yaml:"average_wage_multiple" json:"averageWageMultiple"`
	BenefitPercentage   decimal.Decimal `yaml:"benefit_percentage" json:"benefitPercentage"`
	AgeFactor           decimal.Decimal `yaml:"age_factor" json:"ageFactor"`
	RetirementYear      int             `yaml:"retirement_year" json:"retirementYear"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirementAge"`

	Failure  *Failure              `yaml:"failure,omitempty" json:"failure,omitempty"`
	Schedule []MonthlyContribution `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// Eligible reports whether a pension was computed
func (r *BenefitResult) Eligible() bool {
	return r != nil && r.MonthlyPension != nil
}

// Pension returns the monthly pension or zero when none was computed
func (r *BenefitResult) Pension() decimal.Decimal {
	if !r.Eligible() {
		return decimal.Zero
	}
	return *r.MonthlyPension
}
