package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StrategyKind selects how a contribution schedule evolves over time
type StrategyKind string

const (
	// FixedContribution pays a fixed amount that rises only with the
	// statutory contribution rate.
	FixedContribution StrategyKind = "fixed_contribution"
	// FixedWageIndex keeps the registered wage at a constant multiple of the
	// wage index, so the contribution rises with both index and rate.
	FixedWageIndex StrategyKind = "fixed_wage_index"
)

// StrategyType is the user-facing name used when ranking strategies
type StrategyType string

const (
	StrategyFixed       StrategyType = "fixed"
	StrategyProgressive StrategyType = "progressive"
)

// StrategyTypes lists the types explored by the strategy search, in order.
var StrategyTypes = []StrategyType{StrategyFixed, StrategyProgressive}

// Kind returns the schedule kind backing the strategy type
func (t StrategyType) Kind() StrategyKind {
	if t == StrategyFixed {
		return FixedContribution
	}
	return FixedWageIndex
}

// ParseStrategyType parses "fixed" or "progressive"
func ParseStrategyType(s string) (StrategyType, error) {
	switch StrategyType(s) {
	case StrategyFixed, StrategyProgressive:
		return StrategyType(s), nil
	}
	return "", NewValidationError("strategy.type", "unknown strategy type %q (want fixed or progressive)", s)
}

// Strategy describes a contribution plan over a range of months.
type Strategy struct {
	Kind                StrategyKind    `yaml:"kind" json:"kind"`
	InitialContribution decimal.Decimal `yaml:"initial_contribution" json:"initialContribution"`
	WageMultiple        decimal.Decimal `yaml:"wage_multiple" json:"wageMultiple"`
	Range               Range           `yaml:"range" json:"range"`
}

func (s Strategy) String() string {
	switch s.Kind {
	case FixedContribution:
		return fmt.Sprintf("%s %s from %s to %s", s.Kind, s.InitialContribution.StringFixed(2), s.Range.Start, s.Range.End)
	default:
		return fmt.Sprintf("%s x%s from %s to %s", s.Kind, s.WageMultiple.String(), s.Range.Start, s.Range.End)
	}
}

// ContributionOrigin records where a month in a schedule came from
type ContributionOrigin string

const (
	OriginGenerated   ContributionOrigin = "generated"
	OriginPaid        ContributionOrigin = "paid"
	OriginRetroactive ContributionOrigin = "retroactive"
	OriginPlanned     ContributionOrigin = "planned"
)

// MonthlyContribution is one month of a contribution schedule.
//
// Invariants: Contribution = MonthlyWage × ContributionRate and
// MonthlyWage = WageMultiple × WageIndexValue × days per month.
type MonthlyContribution struct {
	Period           YearMonth          `yaml:"period" json:"period"`
	Contribution     decimal.Decimal    `yaml:"contribution" json:"contribution"`
	DailyWage        DailyWage          `yaml:"daily_wage" json:"dailyWage"`
	MonthlyWage      MonthlyWage        `yaml:"monthly_wage" json:"monthlyWage"`
	WageMultiple     WageMultiple       `yaml:"wage_multiple" json:"wageMultiple"`
	ContributionRate decimal.Decimal    `yaml:"contribution_rate" json:"contributionRate"`
	WageIndexValue   decimal.Decimal    `yaml:"wage_index_value" json:"wageIndexValue"`
	Origin           ContributionOrigin `yaml:"origin" json:"origin"`
}

// TotalContributions sums the contribution amounts of a schedule
func TotalContributions(months []MonthlyContribution) decimal.Decimal {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.Contribution)
	}
	return total
}
