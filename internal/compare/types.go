package compare

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/transform"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one projected plan with its key metrics
type ComparisonResult struct {
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	Plan        *transform.Plan       `json:"plan" yaml:"plan"`
	Result      *domain.BenefitResult `json:"result" yaml:"result"`

	// Key Metrics
	Eligible        bool            `json:"eligible" yaml:"eligible"`
	MonthlyPension  decimal.Decimal `json:"monthlyPension" yaml:"monthly_pension"`
	TotalInvestment decimal.Decimal `json:"totalInvestment" yaml:"total_investment"`
	ReturnRatio     decimal.Decimal `json:"returnRatio" yaml:"return_ratio"`
	BreakEvenMonths decimal.Decimal `json:"breakEvenMonths" yaml:"break_even_months"`
	TotalWeeks      int             `json:"totalWeeks" yaml:"total_weeks"`

	// Comparison to Base
	PensionDiffFromBase    decimal.Decimal `json:"pensionDiffFromBase" yaml:"pension_diff_from_base"`
	PensionPctFromBase     decimal.Decimal `json:"pensionPctFromBase" yaml:"pension_pct_from_base"`
	InvestmentDiffFromBase decimal.Decimal `json:"investmentDiffFromBase" yaml:"investment_diff_from_base"`
	RatioDiffFromBase      decimal.Decimal `json:"ratioDiffFromBase" yaml:"ratio_diff_from_base"`
	WeeksDiffFromBase      int             `json:"weeksDiffFromBase" yaml:"weeks_diff_from_base"`
}

// ComparisonSet represents a base plan and its alternatives
type ComparisonSet struct {
	BaseName           string             `json:"baseName" yaml:"base_name"`
	BaseResult         *ComparisonResult  `json:"baseResult" yaml:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternativeResults" yaml:"alternative_results"`
	Recommendations    []string           `json:"recommendations" yaml:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty" yaml:"profile_path,omitempty"`
}

// MetricsCalculator extracts key metrics from projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics of one projected plan
func (mc *MetricsCalculator) CalculateMetrics(plan *transform.Plan, result *domain.BenefitResult) ComparisonResult {
	return ComparisonResult{
		Name:            plan.Name,
		Plan:            plan,
		Result:          result,
		Eligible:        result.Eligible(),
		MonthlyPension:  result.Pension(),
		TotalInvestment: result.TotalInvestment,
		ReturnRatio:     result.ReturnRatio,
		BreakEvenMonths: result.BreakEvenMonths,
		TotalWeeks:      result.TotalWeeks,
	}
}

// CalculateComparison computes the differences between a plan and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.PensionDiffFromBase = alt.MonthlyPension.Sub(base.MonthlyPension)
	if !base.MonthlyPension.IsZero() {
		alt.PensionPctFromBase = alt.PensionDiffFromBase.
			Div(base.MonthlyPension).
			Mul(decimal.NewFromInt(100))
	}
	alt.InvestmentDiffFromBase = alt.TotalInvestment.Sub(base.TotalInvestment)
	alt.RatioDiffFromBase = alt.ReturnRatio.Sub(base.ReturnRatio)
	alt.WeeksDiffFromBase = alt.TotalWeeks - base.TotalWeeks
	return alt
}

// GenerateRecommendations names the alternatives that beat the base on
// pension, return ratio, cost and break-even. Ineligible plans never win.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest pension
	bestPension := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Eligible && alt.MonthlyPension.GreaterThan(bestPension.MonthlyPension) {
			bestPension = alt
		}
	}
	if bestPension != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Pension: %s pays $%s more per month than %s",
			bestPension.Name, bestPension.MonthlyPension.Sub(base.MonthlyPension).StringFixed(2), base.Name))
	}

	// Highest return ratio
	bestRatio := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Eligible && alt.ReturnRatio.GreaterThan(bestRatio.ReturnRatio) {
			bestRatio = alt
		}
	}
	if bestRatio != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Return: %s returns %s per unit invested (base %s)",
			bestRatio.Name, bestRatio.ReturnRatio.StringFixed(2), base.ReturnRatio.StringFixed(2)))
	}

	// Cheapest eligible plan; an ineligible base is beaten by any eligible one
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.Eligible {
			continue
		}
		if !cheapest.Eligible || alt.TotalInvestment.LessThan(cheapest.TotalInvestment) {
			cheapest = alt
		}
	}
	if cheapest != base && cheapest.Eligible {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Cost: %s qualifies for $%s less than %s",
			cheapest.Name, base.TotalInvestment.Sub(cheapest.TotalInvestment).StringFixed(2), base.Name))
	}

	// Fastest break-even
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.Eligible {
			continue
		}
		if !fastest.Eligible || alt.BreakEvenMonths.LessThan(fastest.BreakEvenMonths) {
			fastest = alt
		}
	}
	if fastest != base && fastest.Eligible {
		recommendations = append(recommendations, fmt.Sprintf(
			"Fastest Break-even: %s recovers its cost in %s months",
			fastest.Name, fastest.BreakEvenMonths.StringFixed(1)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, fmt.Sprintf("%s is not beaten by any alternative", base.Name))
	}

	return recommendations
}
