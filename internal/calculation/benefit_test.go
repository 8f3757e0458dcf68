package calculation

import (
	"testing"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenTimesIndex2025 is a monthly wage of exactly ten daily index values in 2025
var tenTimesIndex2025 = domain.NewMonthlyWage(dec("34394.56"))

func TestSchemeWeeks(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	tests := []struct {
		months int
		weeks  int
	}{
		{months: 0, weeks: 0},
		{months: 1, weeks: 4},
		{months: 3, weeks: 12},
		{months: 10, weeks: 43},
		{months: 58, weeks: 251},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.weeks, SchemeWeeks(tables, tt.months), "months=%d", tt.months)
	}
}

func TestCalculateBenefit_HandComputed(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: tenTimesIndex2025,
		TotalWeeks:         851,
		RetirementYear:     2025,
		RetirementAge:      65,
		TotalInvestment:    dec("200000"),
		MonthsContributed:  58,
	})
	require.NoError(t, err)
	require.True(t, result.Eligible())
	assert.Nil(t, result.Failure)

	// multiple 10 -> top bracket 13% + 2.45% × floor(351/52)=6 -> 27.7%
	assert.True(t, result.AverageWageMultiple.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.BenefitPercentage.Equal(dec("27.7")), "got %s", result.BenefitPercentage)

	// 0.277 × 34394.56 × 1.00 × 1.11
	assert.True(t, result.MonthlyPension.Equal(dec("10575.2953632")), "got %s", result.MonthlyPension)
	assert.Equal(t, "11456.57", result.PensionWithYearEndBonus.StringFixed(2))
	assert.Equal(t, "18.91", result.BreakEvenMonths.StringFixed(2))
	assert.Equal(t, "12.69", result.ReturnRatio.StringFixed(2))
}

func TestCalculateBenefit_DependentBonus(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: tenTimesIndex2025,
		TotalWeeks:         851,
		RetirementYear:     2025,
		RetirementAge:      65,
		Dependent:          true,
	})
	require.NoError(t, err)
	require.True(t, result.Eligible())
	assert.True(t, result.MonthlyPension.Equal(dec("12161.58966768")), "got %s", result.MonthlyPension)
	assert.True(t, result.ReturnRatio.IsZero(), "no investment means no return ratio")
}

func TestCalculateBenefit_AgeFactor(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: tenTimesIndex2025,
		TotalWeeks:         851,
		RetirementYear:     2025,
		RetirementAge:      60,
	})
	require.NoError(t, err)
	require.True(t, result.Eligible())
	assert.True(t, result.MonthlyPension.Equal(dec("10575.2953632").Mul(dec("0.75"))), "got %s", result.MonthlyPension)
}

func TestCalculateBenefit_InsufficientWeeks(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: tenTimesIndex2025,
		TotalWeeks:         443,
		RetirementYear:     2025,
		RetirementAge:      65,
		TotalInvestment:    dec("50000"),
	})
	require.NoError(t, err, "ineligibility is a result, not an error")
	assert.Nil(t, result.MonthlyPension)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureEligibility, result.Failure.Kind)
	assert.True(t, result.ReturnRatio.IsZero())
}

func TestCalculateBenefit_NonPositivePension(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: domain.NewMonthlyWage(decimal.Zero),
		TotalWeeks:         900,
		RetirementYear:     2025,
		RetirementAge:      65,
	})
	require.NoError(t, err)
	assert.Nil(t, result.MonthlyPension)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureComputation, result.Failure.Kind)
}

func TestCalculateBenefit_InvalidAge(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	for _, age := range []int{59, 66} {
		result, err := CalculateBenefit(tables, BenefitInput{
			AverageMonthlyWage: tenTimesIndex2025,
			TotalWeeks:         900,
			RetirementYear:     2025,
			RetirementAge:      age,
		})
		assert.ErrorIs(t, err, domain.ErrValidation, "age %d", age)
		assert.Nil(t, result)
	}
}

func TestCalculateBenefit_AgeNeverDecreasesPension(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	previous := decimal.Zero
	for age := 60; age <= 65; age++ {
		result, err := CalculateBenefit(tables, BenefitInput{
			AverageMonthlyWage: tenTimesIndex2025,
			TotalWeeks:         1200,
			RetirementYear:     2025,
			RetirementAge:      age,
		})
		require.NoError(t, err)
		require.True(t, result.Eligible())
		assert.True(t, result.MonthlyPension.GreaterThanOrEqual(previous), "age %d", age)
		previous = *result.MonthlyPension
	}
}

func TestCalculateBenefit_LowBracketIncrements(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	// one index value a day: 80% + 0.563% × floor((1020-500)/52)=10
	result, err := CalculateBenefit(tables, BenefitInput{
		AverageMonthlyWage: domain.NewMonthlyWage(dec("3439.456")),
		TotalWeeks:         1020,
		RetirementYear:     2025,
		RetirementAge:      65,
	})
	require.NoError(t, err)
	assert.True(t, result.BenefitPercentage.Equal(dec("85.63")), "got %s", result.BenefitPercentage)
}
