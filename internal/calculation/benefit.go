package calculation

import (
	"fmt"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BenefitInput contains everything the statutory benefit formula needs
type BenefitInput struct {
	AverageMonthlyWage domain.MonthlyWage
	TotalWeeks         int
	RetirementYear     int
	RetirementAge      int
	Dependent          bool
	TotalInvestment    decimal.Decimal
	MonthsContributed  int
}

// SchemeWeeks converts contributed months to whole weeks: floor(months × 4.33).
func SchemeWeeks(tables *domain.StatutoryTables, months int) int {
	return int(decimal.NewFromInt(int64(months)).Mul(tables.Scheme.WeeksPerMonth).Floor().IntPart())
}

// CalculateBenefit applies the bracket table, weekly increments, age factor,
// legal multiplier and dependent bonus to an average wage. Ineligibility and
// non-positive results are reported through BenefitResult.Failure; only
// invalid input returns an error.
func CalculateBenefit(tables *domain.StatutoryTables, in BenefitInput) (*domain.BenefitResult, error) {
	ageFactor, ok := tables.AgeFactorFor(in.RetirementAge)
	if !ok || in.RetirementAge < tables.Scheme.MinRetirementAge || in.RetirementAge > tables.Scheme.MaxRetirementAge {
		return nil, domain.NewValidationError("retirement_age", "retirement age must be between %d and %d, got %d",
			tables.Scheme.MinRetirementAge, tables.Scheme.MaxRetirementAge, in.RetirementAge)
	}
	if in.TotalWeeks < 0 {
		return nil, domain.NewValidationError("total_weeks", "total weeks cannot be negative")
	}

	days := tables.Scheme.DaysPerMonth
	indexValue := tables.IndexValue(in.RetirementYear)
	averageDaily := in.AverageMonthlyWage.Daily(days)
	multiple := averageDaily.Multiple(indexValue)

	result := &domain.BenefitResult{
		MonthsContributed:   in.MonthsContributed,
		TotalInvestment:     in.TotalInvestment,
		TotalWeeks:          in.TotalWeeks,
		AverageDailyWage:    averageDaily,
		AverageMonthlyWage:  in.AverageMonthlyWage,
		AverageWageMultiple: multiple,
		AgeFactor:           ageFactor,
		RetirementYear:      in.RetirementYear,
		RetirementAge:       in.RetirementAge,
	}

	if in.TotalWeeks < tables.Scheme.MinimumWeeks {
		result.Failure = &domain.Failure{
			Kind:   domain.FailureEligibility,
			Reason: fmt.Sprintf("%d contributed weeks is below the minimum of %d", in.TotalWeeks, tables.Scheme.MinimumWeeks),
		}
		return result, nil
	}

	bracket, ok := tables.BracketFor(multiple)
	if !ok {
		result.Failure = &domain.Failure{Kind: domain.FailureComputation, Reason: "pension bracket table is empty"}
		return result, nil
	}

	extraBlocks := 0
	if tables.Scheme.WeeksPerIncrement > 0 {
		extraBlocks = (in.TotalWeeks - tables.Scheme.MinimumWeeks) / tables.Scheme.WeeksPerIncrement
	}
	percentage := bracket.BasePercentage.Add(bracket.Increment.Mul(decimal.NewFromInt(int64(extraBlocks))))
	result.BenefitPercentage = percentage

	pension := percentage.Div(decimal.NewFromInt(100)).Mul(in.AverageMonthlyWage.Decimal)
	pension = pension.Mul(ageFactor)
	pension = pension.Mul(tables.Benefit.LegalMultiplier)
	if in.Dependent {
		pension = pension.Mul(decimal.NewFromInt(1).Add(tables.Benefit.DependentBonus))
	}

	if !pension.IsPositive() {
		result.Failure = &domain.Failure{
			Kind:   domain.FailureComputation,
			Reason: fmt.Sprintf("pension of %s is not positive (average monthly wage %s, percentage %s)", pension, in.AverageMonthlyWage.StringFixed(2), percentage),
		}
		return result, nil
	}

	result.MonthlyPension = &pension
	result.PensionWithYearEndBonus = pension.Mul(tables.Benefit.YearEndBonusMonths).Div(decimal.NewFromInt(12))
	if in.TotalInvestment.IsPositive() {
		result.BreakEvenMonths = in.TotalInvestment.Div(pension)
		horizonMonths := decimal.NewFromInt(int64(12 * tables.Benefit.ReturnHorizonYears))
		result.ReturnRatio = pension.Mul(horizonMonths).Div(in.TotalInvestment)
	}

	return result, nil
}
