package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StatutoryTables contains all regulatory data the projection engine reads.
// A value of this type is one "law version"; it is injected into the engine
// so tests can pin a version and law amendments never touch the algorithm.
type StatutoryTables struct {
	Metadata          TablesMetadata   `yaml:"metadata" json:"metadata"`
	WageIndex         WageIndexRules   `yaml:"wage_index" json:"wage_index"`
	ContributionRates []YearRate       `yaml:"contribution_rates" json:"contribution_rates"`
	PensionBrackets   []PensionBracket `yaml:"pension_brackets" json:"pension_brackets"`
	AgeFactors        []AgeFactor      `yaml:"age_factors" json:"age_factors"`
	Benefit           BenefitRules     `yaml:"benefit" json:"benefit"`
	Scheme            SchemeRules      `yaml:"scheme" json:"scheme"`
}

// TablesMetadata describes the law version
type TablesMetadata struct {
	Version     string `yaml:"version" json:"version"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// WageIndexRules define the daily wage index and its projected growth
type WageIndexRules struct {
	BaseYear       int             `yaml:"base_year" json:"base_year"`
	BaseDailyValue decimal.Decimal `yaml:"base_daily_value" json:"base_daily_value"`
	AnnualGrowth   decimal.Decimal `yaml:"annual_growth" json:"annual_growth"`
}

// YearRate is the contribution rate in force from Year onwards
type YearRate struct {
	Year int             `yaml:"year" json:"year"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// PensionBracket maps wage multiples up to Ceiling to a base percentage and
// the increment earned per 52 weeks above the minimum.
type PensionBracket struct {
	Ceiling        decimal.Decimal `yaml:"ceiling" json:"ceiling"`
	BasePercentage decimal.Decimal `yaml:"base_percentage" json:"base_percentage"`
	Increment      decimal.Decimal `yaml:"increment" json:"increment"`
}

// AgeFactor is the share of the pension paid when retiring at Age
type AgeFactor struct {
	Age    int             `yaml:"age" json:"age"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
}

// BenefitRules contains the fixed multipliers applied after the bracket lookup
type BenefitRules struct {
	LegalMultiplier    decimal.Decimal `yaml:"legal_multiplier" json:"legal_multiplier"`
	DependentBonus     decimal.Decimal `yaml:"dependent_bonus" json:"dependent_bonus"`
	YearEndBonusMonths decimal.Decimal `yaml:"year_end_bonus_months" json:"year_end_bonus_months"`
	ReturnHorizonYears int             `yaml:"return_horizon_years" json:"return_horizon_years"`
}

// SchemeRules contains the voluntary continuation scheme's limits and
// unit conversions.
type SchemeRules struct {
	MinimumWeeks       int             `yaml:"minimum_weeks" json:"minimum_weeks"`
	WeeksPerIncrement  int             `yaml:"weeks_per_increment" json:"weeks_per_increment"`
	WeeksPerMonth      decimal.Decimal `yaml:"weeks_per_month" json:"weeks_per_month"`
	DaysPerMonth       decimal.Decimal `yaml:"days_per_month" json:"days_per_month"`
	WindowWeeks        int             `yaml:"window_weeks" json:"window_weeks"`
	WholeWeeksPerMonth int             `yaml:"whole_weeks_per_month" json:"whole_weeks_per_month"`
	BlendEveryMonths   int             `yaml:"blend_every_months" json:"blend_every_months"`
	MaxMonths          int             `yaml:"max_months" json:"max_months"`
	MinWageMultiple    decimal.Decimal `yaml:"min_wage_multiple" json:"min_wage_multiple"`
	MaxWageMultiple    decimal.Decimal `yaml:"max_wage_multiple" json:"max_wage_multiple"`
	EntryAge           int             `yaml:"entry_age" json:"entry_age"`
	ReentryGraceMonths int             `yaml:"reentry_grace_months" json:"reentry_grace_months"`
	MinRetirementAge   int             `yaml:"min_retirement_age" json:"min_retirement_age"`
	MaxRetirementAge   int             `yaml:"max_retirement_age" json:"max_retirement_age"`
}

// DefaultStatutoryTables returns the built-in law version.
func DefaultStatutoryTables() *StatutoryTables {
	d := decimal.RequireFromString
	return &StatutoryTables{
		Metadata: TablesMetadata{
			Version:     "2025.1",
			LastUpdated: "2025-02-01",
			Description: "Wage index 2025, contribution-rate reform schedule 2023-2030, pension bracket table",
		},
		WageIndex: WageIndexRules{
			BaseYear:       2025,
			BaseDailyValue: d("113.14"),
			AnnualGrowth:   d("0.05"),
		},
		ContributionRates: []YearRate{
			{Year: 2022, Rate: d("0.10075")},
			{Year: 2023, Rate: d("0.11166")},
			{Year: 2024, Rate: d("0.12256")},
			{Year: 2025, Rate: d("0.13347")},
			{Year: 2026, Rate: d("0.14438")},
			{Year: 2027, Rate: d("0.15528")},
			{Year: 2028, Rate: d("0.16619")},
			{Year: 2029, Rate: d("0.17709")},
			{Year: 2030, Rate: d("0.18800")},
		},
		PensionBrackets: []PensionBracket{
			{Ceiling: d("1.00"), BasePercentage: d("80.00"), Increment: d("0.563")},
			{Ceiling: d("1.25"), BasePercentage: d("77.11"), Increment: d("0.814")},
			{Ceiling: d("1.50"), BasePercentage: d("58.18"), Increment: d("1.178")},
			{Ceiling: d("1.75"), BasePercentage: d("49.23"), Increment: d("1.430")},
			{Ceiling: d("2.00"), BasePercentage: d("42.67"), Increment: d("1.615")},
			{Ceiling: d("2.25"), BasePercentage: d("37.65"), Increment: d("1.756")},
			{Ceiling: d("2.50"), BasePercentage: d("33.68"), Increment: d("1.868")},
			{Ceiling: d("2.75"), BasePercentage: d("30.48"), Increment: d("1.958")},
			{Ceiling: d("3.00"), BasePercentage: d("27.83"), Increment: d("2.033")},
			{Ceiling: d("3.25"), BasePercentage: d("25.60"), Increment: d("2.096")},
			{Ceiling: d("3.50"), BasePercentage: d("23.70"), Increment: d("2.149")},
			{Ceiling: d("3.75"), BasePercentage: d("22.07"), Increment: d("2.195")},
			{Ceiling: d("4.00"), BasePercentage: d("20.65"), Increment: d("2.235")},
			{Ceiling: d("4.25"), BasePercentage: d("19.39"), Increment: d("2.271")},
			{Ceiling: d("4.50"), BasePercentage: d("18.29"), Increment: d("2.302")},
			{Ceiling: d("4.75"), BasePercentage: d("17.30"), Increment: d("2.330")},
			{Ceiling: d("5.00"), BasePercentage: d("16.41"), Increment: d("2.355")},
			{Ceiling: d("5.25"), BasePercentage: d("15.61"), Increment: d("2.377")},
			{Ceiling: d("5.50"), BasePercentage: d("14.88"), Increment: d("2.398")},
			{Ceiling: d("5.75"), BasePercentage: d("14.22"), Increment: d("2.416")},
			{Ceiling: d("6.00"), BasePercentage: d("13.62"), Increment: d("2.433")},
			{Ceiling: d("25.00"), BasePercentage: d("13.00"), Increment: d("2.450")},
		},
		AgeFactors: []AgeFactor{
			{Age: 60, Factor: d("0.75")},
			{Age: 61, Factor: d("0.80")},
			{Age: 62, Factor: d("0.85")},
			{Age: 63, Factor: d("0.90")},
			{Age: 64, Factor: d("0.95")},
			{Age: 65, Factor: d("1.00")},
		},
		Benefit: BenefitRules{
			LegalMultiplier:    d("1.11"),
			DependentBonus:     d("0.15"),
			YearEndBonusMonths: d("13"),
			ReturnHorizonYears: 20,
		},
		Scheme: SchemeRules{
			MinimumWeeks:       500,
			WeeksPerIncrement:  52,
			WeeksPerMonth:      d("4.33"),
			DaysPerMonth:       d("30.4"),
			WindowWeeks:        250,
			WholeWeeksPerMonth: 4,
			BlendEveryMonths:   3,
			MaxMonths:          58,
			MinWageMultiple:    d("1"),
			MaxWageMultiple:    d("25"),
			EntryAge:           55,
			ReentryGraceMonths: 12,
			MinRetirementAge:   60,
			MaxRetirementAge:   65,
		},
	}
}

// IndexValue returns the daily wage index value for a calendar year. Values
// are compounded from the base year and rounded to cents each year, the way
// they are published.
func (t *StatutoryTables) IndexValue(year int) decimal.Decimal {
	value := t.WageIndex.BaseDailyValue
	growth := decimal.NewFromInt(1).Add(t.WageIndex.AnnualGrowth)
	for y := t.WageIndex.BaseYear; y < year; y++ {
		value = value.Mul(growth).Round(2)
	}
	for y := t.WageIndex.BaseYear; y > year; y-- {
		value = value.Div(growth).Round(2)
	}
	return value
}

// ContributionRate returns the rate in force for a calendar year. Years
// before the first entry use the first rate; years after the last entry
// keep the terminal rate.
func (t *StatutoryTables) ContributionRate(year int) decimal.Decimal {
	if len(t.ContributionRates) == 0 {
		return decimal.Zero
	}
	rate := t.ContributionRates[0].Rate
	for _, yr := range t.ContributionRates {
		if yr.Year > year {
			break
		}
		rate = yr.Rate
	}
	return rate
}

// BracketFor returns the first bracket whose ceiling is at or above the
// multiple. Multiples above every ceiling fall in the last bracket.
func (t *StatutoryTables) BracketFor(multiple WageMultiple) (PensionBracket, bool) {
	if len(t.PensionBrackets) == 0 {
		return PensionBracket{}, false
	}
	for _, b := range t.PensionBrackets {
		if b.Ceiling.GreaterThanOrEqual(multiple.Decimal) {
			return b, true
		}
	}
	return t.PensionBrackets[len(t.PensionBrackets)-1], true
}

// AgeFactorFor returns the factor for a retirement age
func (t *StatutoryTables) AgeFactorFor(age int) (decimal.Decimal, bool) {
	for _, af := range t.AgeFactors {
		if af.Age == age {
			return af.Factor, true
		}
	}
	return decimal.Zero, false
}

// Normalize sorts the year- and ceiling-ordered tables in place so lookups
// can rely on ascending order regardless of how a file listed them.
func (t *StatutoryTables) Normalize() {
	sort.SliceStable(t.ContributionRates, func(i, j int) bool {
		return t.ContributionRates[i].Year < t.ContributionRates[j].Year
	})
	sort.SliceStable(t.PensionBrackets, func(i, j int) bool {
		return t.PensionBrackets[i].Ceiling.LessThan(t.PensionBrackets[j].Ceiling)
	})
	sort.SliceStable(t.AgeFactors, func(i, j int) bool {
		return t.AgeFactors[i].Age < t.AgeFactors[j].Age
	})
}

// ValidWageMultiple reports whether m is inside the statutory range
func (t *StatutoryTables) ValidWageMultiple(m decimal.Decimal) bool {
	return m.GreaterThanOrEqual(t.Scheme.MinWageMultiple) && m.LessThanOrEqual(t.Scheme.MaxWageMultiple)
}
