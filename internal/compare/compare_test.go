package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePlan(priorWeeks int) *transform.Plan {
	profile := domain.WorkerProfile{
		BirthDate:           time.Date(1965, time.March, 14, 0, 0, 0, 0, time.UTC),
		RetirementAge:       65,
		PriorWeeks:          priorWeeks,
		HistoricalDailyWage: domain.NewDailyWage(decimal.NewFromInt(450)),
	}
	return transform.NewPlan("base", profile, &config.StrategyConfig{
		Type:      domain.StrategyFixed,
		WageLevel: decimal.NewFromInt(10),
		Start:     domain.NewYearMonth(2025, time.January),
		Months:    58,
	})
}

func runCompare(t *testing.T, base *transform.Plan, opts CompareOptions) *ComparisonSet {
	t.Helper()
	set, err := NewCompareEngine(nil).Compare(context.Background(), base, opts)
	require.NoError(t, err)
	return set
}

func TestCompare_Templates(t *testing.T) {
	set := runCompare(t, basePlan(600), CompareOptions{Templates: []string{"level_up_2", "shorter_12mo", "progressive"}})

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, "base", set.BaseName)
	assert.True(t, set.BaseResult.Eligible)
	assert.Equal(t, 851, set.BaseResult.TotalWeeks)
	assert.Contains(t, set.BaseResult.Description, "fixed level 10 for 58 months")

	require.Len(t, set.AlternativeResults, 3)

	up := set.AlternativeResults[0]
	assert.Equal(t, "level_up_2", up.Name)
	assert.Equal(t, "Two wage levels higher", up.Description)
	assert.Equal(t, 12, up.Result.WageLevel)
	assert.True(t, up.PensionDiffFromBase.IsPositive())
	assert.True(t, up.PensionPctFromBase.IsPositive())
	assert.True(t, up.InvestmentDiffFromBase.IsPositive())
	assert.Equal(t, 0, up.WeeksDiffFromBase)

	shorter := set.AlternativeResults[1]
	assert.Equal(t, 799, shorter.TotalWeeks)
	assert.Equal(t, -52, shorter.WeeksDiffFromBase)
	assert.True(t, shorter.InvestmentDiffFromBase.IsNegative())
	assert.Equal(t, 46, shorter.Result.MonthsContributed)

	assert.Equal(t, domain.StrategyProgressive, set.AlternativeResults[2].Result.StrategyType)
	assert.Equal(t, domain.FixedWageIndex, set.AlternativeResults[2].Result.StrategyKind)

	require.NotEmpty(t, set.Recommendations)
	assert.True(t, strings.HasPrefix(set.Recommendations[0], "Best Pension: "))
}

func TestCompare_Transforms(t *testing.T) {
	set := runCompare(t, basePlan(600), CompareOptions{Transforms: []string{"set_retirement_age:age=60", "delay_start:months=6"}})

	require.Len(t, set.AlternativeResults, 2)
	early := set.AlternativeResults[0]
	assert.Equal(t, "set_retirement_age:age=60", early.Name)
	assert.Equal(t, "Retire at 60", early.Description)
	assert.Equal(t, 60, early.Result.RetirementAge)
	assert.True(t, early.Result.AgeFactor.LessThan(set.BaseResult.Result.AgeFactor))

	delayed := set.AlternativeResults[1]
	assert.Equal(t, domain.NewYearMonth(2025, time.July), delayed.Result.FirstPeriod)
}

func TestCompare_IneligibleAlternative(t *testing.T) {
	set := runCompare(t, basePlan(300), CompareOptions{Transforms: []string{"set_months:months=12"}})

	assert.True(t, set.BaseResult.Eligible)
	alt := set.AlternativeResults[0]
	assert.False(t, alt.Eligible)
	assert.True(t, alt.MonthlyPension.IsZero())
	require.NotNil(t, alt.Result.Failure)
	assert.Equal(t, domain.FailureEligibility, alt.Result.Failure.Kind)
	assert.Equal(t, []string{"base is not beaten by any alternative"}, set.Recommendations)
}

func TestCompare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	_, err := engine.Compare(ctx, nil, CompareOptions{Templates: []string{"fixed"}})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, basePlan(600), CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Compare(ctx, basePlan(600), CompareOptions{Templates: []string{"retire_70"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Compare(ctx, basePlan(600), CompareOptions{Transforms: []string{"bogus:x=1"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Compare(ctx, basePlan(600), CompareOptions{Transforms: []string{"set_retirement_age:age=70"}})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "transforms", ve.Field)
	assert.Contains(t, err.Error(), "transform set_retirement_age (validate): age must be between 60 and 65")

	strict := domain.DefaultStatutoryTables()
	strict.Scheme.MinRetirementAge = 62
	_, err = NewCompareEngine(calculation.NewCalculationEngineWithTables(strict)).
		Compare(ctx, basePlan(600), CompareOptions{Templates: []string{"retire_60"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Compare(ctx, basePlan(600), CompareOptions{Transforms: []string{"adjust_months:delta=1"}})
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, basePlan(600), CompareOptions{Templates: []string{"fixed"}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerateRecommendations(t *testing.T) {
	d := decimal.NewFromInt
	base := ComparisonResult{Name: "base", Eligible: true, MonthlyPension: d(10000), TotalInvestment: d(300000), ReturnRatio: d(2), BreakEvenMonths: d(30)}
	set := &ComparisonSet{
		BaseResult: &base,
		AlternativeResults: []ComparisonResult{
			{Name: "rich", Eligible: true, MonthlyPension: d(15000), TotalInvestment: d(500000), ReturnRatio: d(1), BreakEvenMonths: d(40)},
			{Name: "lean", Eligible: true, MonthlyPension: d(9000), TotalInvestment: d(100000), ReturnRatio: d(5), BreakEvenMonths: d(11)},
			{Name: "broke", Eligible: false, TotalInvestment: d(10)},
		},
	}

	recs := GenerateRecommendations(set)
	require.Len(t, recs, 4)
	assert.Equal(t, "Best Pension: rich pays $5000.00 more per month than base", recs[0])
	assert.Equal(t, "Best Return: lean returns 5.00 per unit invested (base 2.00)", recs[1])
	assert.Equal(t, "Lowest Cost: lean qualifies for $200000.00 less than base", recs[2])
	assert.Equal(t, "Fastest Break-even: lean recovers its cost in 11.0 months", recs[3])

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &base}))
}

func TestCalculateComparison_ZeroBasePension(t *testing.T) {
	mc := NewMetricsCalculator()
	alt := mc.CalculateComparison(
		ComparisonResult{MonthlyPension: decimal.NewFromInt(100), TotalWeeks: 520},
		ComparisonResult{TotalWeeks: 480},
	)
	assert.True(t, alt.PensionDiffFromBase.Equal(decimal.NewFromInt(100)))
	assert.True(t, alt.PensionPctFromBase.IsZero())
	assert.Equal(t, 40, alt.WeeksDiffFromBase)
}

func TestFormatters(t *testing.T) {
	set := runCompare(t, basePlan(300), CompareOptions{Templates: []string{"level_up_2"}, Transforms: []string{"set_months:months=12"}})
	set.ProfilePath = "profile.yaml"

	text, err := GetFormatter("table").Format(set)
	require.NoError(t, err)
	assert.Contains(t, text, "STRATEGY COMPARISON")
	assert.Contains(t, text, "Base Plan: base")
	assert.Contains(t, text, "Profile:   profile.yaml")
	assert.Contains(t, text, "level_up_2: Two wage levels higher")
	assert.Contains(t, text, "No pension (eligibility)")
	assert.Contains(t, text, "RECOMMENDATIONS")

	out, err := GetFormatter("csv").Format(set)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"base", "base", "fixed", "10", "2025-01", "58", "65", "true"}, rows[1][:8])
	assert.Equal(t, "12", rows[2][3])
	assert.Equal(t, "false", rows[3][7])
	assert.Equal(t, "", rows[3][8])

	out, err = GetFormatter("json").Format(set)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "base", decoded["baseName"])
	assert.Len(t, decoded["alternativeResults"], 2)

	out, err = GetFormatter("yml").Format(set)
	require.NoError(t, err)
	assert.Contains(t, out, "base_name: base")
	assert.Contains(t, out, "alternative_results:")

	assert.Nil(t, GetFormatter("html"))
	assert.IsType(t, &TableFormatter{}, GetFormatter(" Console "))
}
