package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ym(year int, month time.Month) domain.YearMonth {
	return domain.NewYearMonth(year, month)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildSchedule_FixedWageIndexAcrossYearBoundary(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	strategy := domain.Strategy{
		Kind:         domain.FixedWageIndex,
		WageMultiple: decimal.NewFromInt(10),
		Range:        domain.Range{Start: ym(2025, time.November), End: ym(2026, time.February)},
	}

	schedule, err := BuildSchedule(tables, strategy)
	require.NoError(t, err)
	require.Len(t, schedule, 4)

	nov := schedule[0]
	assert.Equal(t, ym(2025, time.November), nov.Period)
	assert.True(t, nov.DailyWage.Equal(dec("1131.4")), "got %s", nov.DailyWage)
	assert.True(t, nov.MonthlyWage.Equal(dec("34394.56")), "got %s", nov.MonthlyWage)
	assert.True(t, nov.Contribution.Equal(dec("4590.6419232")), "got %s", nov.Contribution)
	assert.True(t, nov.WageMultiple.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, domain.OriginGenerated, nov.Origin)

	jan := schedule[2]
	assert.Equal(t, ym(2026, time.January), jan.Period)
	assert.True(t, jan.WageIndexValue.Equal(dec("118.8")))
	assert.True(t, jan.ContributionRate.Equal(dec("0.14438")))
	assert.True(t, jan.MonthlyWage.Equal(dec("36115.2")), "got %s", jan.MonthlyWage)
	assert.True(t, jan.Contribution.Equal(dec("5214.312576")), "got %s", jan.Contribution)

	for _, m := range schedule {
		assert.True(t, m.Contribution.Equal(m.MonthlyWage.Mul(m.ContributionRate)), "contribution invariant for %s", m.Period)
		assert.True(t, m.MonthlyWage.Equal(m.WageMultiple.Mul(m.WageIndexValue).Mul(tables.Scheme.DaysPerMonth)), "wage invariant for %s", m.Period)
	}
}

func TestBuildSchedule_FixedContributionRisesOnlyWithRate(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	strategy := domain.Strategy{
		Kind:                domain.FixedContribution,
		InitialContribution: dec("4590.6419232"),
		Range:               domain.Range{Start: ym(2025, time.December), End: ym(2026, time.January)},
	}

	schedule, err := BuildSchedule(tables, strategy)
	require.NoError(t, err)
	require.Len(t, schedule, 2)

	dec2025 := schedule[0]
	assert.True(t, dec2025.Contribution.Equal(dec("4590.6419232")), "first month pays the initial amount")
	assert.True(t, dec2025.MonthlyWage.Equal(dec("34394.56")), "got %s", dec2025.MonthlyWage)

	jan2026 := schedule[1]
	expected := dec("4590.6419232").Mul(dec("0.14438")).Div(dec("0.13347"))
	assert.True(t, jan2026.Contribution.Equal(expected), "expected %s, got %s", expected, jan2026.Contribution)
	assert.Equal(t, "34394.56", jan2026.MonthlyWage.StringFixed(2), "the registered wage does not follow the index")
	assert.True(t, jan2026.WageMultiple.LessThan(decimal.NewFromInt(10)), "multiple drifts down as the index grows")

	diff := jan2026.Contribution.Sub(jan2026.MonthlyWage.Mul(jan2026.ContributionRate)).Abs()
	assert.True(t, diff.LessThan(dec("0.000001")), "contribution invariant, diff %s", diff)
}

func TestBuildSchedule_FixedAndProgressiveShareFirstMonth(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	rng := domain.Range{Start: ym(2026, time.February), End: ym(2026, time.September)}

	for level := 1; level <= 25; level += 6 {
		multiple := decimal.NewFromInt(int64(level))
		fixed, err := BuildSchedule(tables, StrategyForType(tables, domain.StrategyFixed, multiple, rng))
		require.NoError(t, err)
		progressive, err := BuildSchedule(tables, StrategyForType(tables, domain.StrategyProgressive, multiple, rng))
		require.NoError(t, err)

		assert.True(t, fixed[0].Contribution.Equal(progressive[0].Contribution), "level %d contribution", level)
		assert.True(t, fixed[0].MonthlyWage.Equal(progressive[0].MonthlyWage.Decimal), "level %d wage", level)
		assert.True(t, fixed[0].DailyWage.Equal(progressive[0].DailyWage.Decimal), "level %d daily wage", level)
	}
}

func TestBuildSchedule_ValidationErrors(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	valid := domain.Range{Start: ym(2025, time.January), End: ym(2025, time.June)}

	tests := []struct {
		name     string
		strategy domain.Strategy
	}{
		{
			name:     "Non-chronological range",
			strategy: domain.Strategy{Kind: domain.FixedWageIndex, WageMultiple: decimal.NewFromInt(5), Range: domain.Range{Start: valid.End, End: valid.Start}},
		},
		{
			name:     "Multiple above ceiling",
			strategy: domain.Strategy{Kind: domain.FixedWageIndex, WageMultiple: decimal.NewFromInt(26), Range: valid},
		},
		{
			name:     "Multiple below one",
			strategy: domain.Strategy{Kind: domain.FixedWageIndex, WageMultiple: dec("0.5"), Range: valid},
		},
		{
			name:     "Zero initial contribution",
			strategy: domain.Strategy{Kind: domain.FixedContribution, Range: valid},
		},
		{
			name:     "Initial contribution implies multiple above ceiling",
			strategy: domain.Strategy{Kind: domain.FixedContribution, InitialContribution: dec("20000"), Range: valid},
		},
		{
			name:     "Unknown kind",
			strategy: domain.Strategy{Kind: "lump_sum", Range: valid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := BuildSchedule(tables, tt.strategy)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, schedule)
		})
	}
}

func TestContributionFromPayment_InvertsSchedule(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	m, err := ContributionFromPayment(tables, ym(2025, time.November), dec("4590.6419232"), domain.OriginPaid)
	require.NoError(t, err)

	assert.True(t, m.WageMultiple.Equal(decimal.NewFromInt(10)), "got %s", m.WageMultiple)
	assert.True(t, m.MonthlyWage.Equal(dec("34394.56")), "got %s", m.MonthlyWage)
	assert.True(t, m.DailyWage.Equal(dec("1131.4")), "got %s", m.DailyWage)
	assert.Equal(t, domain.OriginPaid, m.Origin)
}

func TestContributionFromPayment_Rejects(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	_, err := ContributionFromPayment(tables, ym(2025, time.March), decimal.Zero, domain.OriginPaid)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ContributionFromPayment(tables, ym(2025, time.March), dec("50000"), domain.OriginPaid)
	assert.ErrorIs(t, err, domain.ErrValidation, "above the 25x ceiling")

	_, err = ContributionFromPayment(tables, domain.YearMonth{Year: 2025, Month: 0}, dec("100"), domain.OriginPaid)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFirstMonthContribution(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	got := FirstMonthContribution(tables, 2025, decimal.NewFromInt(10))
	assert.True(t, got.Equal(dec("4590.6419232")), "got %s", got)
}
