package reconstruct

import (
	"testing"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() domain.WorkerProfile {
	return domain.WorkerProfile{
		BirthDate:           time.Date(1966, time.August, 2, 0, 0, 0, 0, time.UTC),
		RetirementAge:       65,
		PriorWeeks:          600,
		HistoricalDailyWage: domain.NewDailyWage(decimal.NewFromInt(420)),
	}
}

// paymentsFor turns a generated schedule into payment records, newest first
func paymentsFor(t *testing.T, engine *calculation.CalculationEngine, strategy domain.Strategy) []PaymentRecord {
	t.Helper()
	schedule, err := engine.BuildContributionSchedule(strategy)
	require.NoError(t, err)
	payments := make([]PaymentRecord, len(schedule))
	for i, m := range schedule {
		payments[len(schedule)-1-i] = PaymentRecord{Period: m.Period, Amount: m.Contribution}
	}
	return payments
}

func progressive(level int64, start domain.YearMonth, months int) domain.Strategy {
	return domain.Strategy{
		Kind:         domain.FixedWageIndex,
		WageMultiple: decimal.NewFromInt(level),
		Range:        domain.NewRange(start, months),
	}
}

func TestReconstruct_RoundTripMatchesProjection(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)

	strategies := []domain.Strategy{
		progressive(10, ym(2025, time.March), 24),
		calculation.StrategyForType(engine.Tables, domain.StrategyFixed, decimal.NewFromInt(1), domain.NewRange(ym(2024, time.June), 58)),
		calculation.StrategyForType(engine.Tables, domain.StrategyFixed, decimal.NewFromInt(17), domain.NewRange(ym(2025, time.October), 9)),
	}

	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			projected, err := engine.ComputeSingleStrategy(calculation.ProjectionParams{Profile: sampleProfile(), Strategy: strategy})
			require.NoError(t, err)
			require.True(t, projected.Eligible())

			fromStrategy, err := r.Reconstruct(Request{Profile: sampleProfile(), Strategy: &strategy})
			require.NoError(t, err)
			assert.True(t, fromStrategy.Result.MonthlyPension.Equal(*projected.MonthlyPension), "strategy mode is exact")

			fromPayments, err := r.Reconstruct(Request{Profile: sampleProfile(), Payments: paymentsFor(t, engine, strategy)})
			require.NoError(t, err)
			require.True(t, fromPayments.Result.Eligible())

			want, _ := projected.MonthlyPension.Float64()
			got, _ := fromPayments.Result.MonthlyPension.Float64()
			assert.InDelta(t, want, got, 0.01)
			assert.Equal(t, projected.TotalWeeks, fromPayments.Result.TotalWeeks)
			assert.True(t, fromPayments.Result.TotalInvestment.Equal(projected.TotalInvestment))
			assert.Equal(t, strategy.Range.Months(), fromPayments.Original)
			assert.Equal(t, StateActive, fromPayments.State)

			for i := 1; i < len(fromPayments.Schedule); i++ {
				assert.True(t, fromPayments.Schedule[i-1].Period.Before(fromPayments.Schedule[i].Period), "schedule is chronological")
			}
		})
	}
}

func TestReconstruct_SixtyMonthsExceedLimit(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)
	resume := ym(2027, time.July)

	_, err := r.Reconstruct(Request{
		Profile:  sampleProfile(),
		Payments: paymentsFor(t, engine, progressive(4, ym(2024, time.January), 40)),
		Resume:   &resume,
		Planned:  &PlannedContinuation{Months: 18, Type: domain.StrategyProgressive},
	})

	require.ErrorIs(t, err, domain.ErrLimitExceeded)
	var limitErr *domain.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 40, limitErr.Original)
	assert.Equal(t, 2, limitErr.Retroactive)
	assert.Equal(t, 18, limitErr.Planned)
	assert.Equal(t, 60, limitErr.Total())
	assert.Equal(t, 58, limitErr.Limit)
}

func TestReconstruct_RetroactiveAndPlanned(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)
	resume := ym(2026, time.April)

	rec, err := r.Reconstruct(Request{
		Profile:  sampleProfile(),
		Payments: paymentsFor(t, engine, progressive(5, ym(2025, time.January), 12)),
		Resume:   &resume,
		Planned:  &PlannedContinuation{Months: 6, Type: domain.StrategyFixed},
	})
	require.NoError(t, err)

	assert.Equal(t, 12, rec.Original)
	assert.Equal(t, 3, rec.Retroactive)
	assert.Equal(t, 6, rec.Planned)
	require.Len(t, rec.Schedule, 21)
	assert.Equal(t, StateActive, rec.State)

	retro := rec.Schedule[12:15]
	for i, m := range retro {
		assert.Equal(t, ym(2026, time.January).AddMonths(i), m.Period)
		assert.Equal(t, domain.OriginRetroactive, m.Origin)
		assert.True(t, m.WageMultiple.Equal(decimal.NewFromInt(5)), "back-filled at the last paid multiple")
		assert.True(t, m.Contribution.Equal(calculation.FirstMonthContribution(engine.Tables, 2026, decimal.NewFromInt(5))))
	}
	assert.True(t, rec.RetroactiveCost.Equal(domain.TotalContributions(retro)))

	planned := rec.Schedule[15:]
	assert.Equal(t, resume, planned[0].Period)
	for _, m := range planned {
		assert.Equal(t, domain.OriginPlanned, m.Origin)
	}
	assert.True(t, rec.PlannedCost.Equal(domain.TotalContributions(planned)))
	assert.True(t, rec.Result.TotalInvestment.Equal(rec.PaidCost.Add(rec.RetroactiveCost).Add(rec.PlannedCost)))
	assert.Equal(t, 21, rec.Result.MonthsContributed)
	assert.Equal(t, 600+90, rec.Result.TotalWeeks)

	require.Len(t, rec.Transitions, 3)
	assert.Equal(t, StateActive, rec.Transitions[0].To)
	assert.Equal(t, StateLapsedWithinGrace, rec.Transitions[1].To)
	assert.Equal(t, ym(2026, time.January), rec.Transitions[1].Event.Period)
	assert.Equal(t, EventResume, rec.Transitions[2].Event.Kind)
}

func TestReconstruct_RetroactiveMultipleOverride(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)
	resume := ym(2025, time.September)
	multiple := decimal.NewFromInt(2)

	rec, err := r.Reconstruct(Request{
		Profile:             sampleProfile(),
		Payments:            paymentsFor(t, engine, progressive(8, ym(2025, time.January), 6)),
		Resume:              &resume,
		RetroactiveMultiple: &multiple,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Retroactive)
	assert.Equal(t, 0, rec.Planned)
	for _, m := range rec.Schedule[6:] {
		assert.True(t, m.WageMultiple.Equal(multiple))
	}
}

func TestReconstruct_ReentryExpired(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)
	resume := ym(2025, time.August)

	_, err := r.Reconstruct(Request{
		Profile:  sampleProfile(),
		Payments: paymentsFor(t, engine, progressive(6, ym(2024, time.January), 6)),
		Resume:   &resume,
	})

	assert.ErrorIs(t, err, domain.ErrReentryExpired)
	var re *domain.ReentryError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ym(2024, time.June), re.LastPaid)
	assert.Equal(t, 14, re.Elapsed)
}

func TestReconstruct_PlannedWithoutResume(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)

	rec, err := r.Reconstruct(Request{
		Profile:  sampleProfile(),
		Payments: paymentsFor(t, engine, progressive(7, ym(2025, time.January), 3)),
		Planned:  &PlannedContinuation{Months: 3},
	})
	require.NoError(t, err)

	require.Len(t, rec.Schedule, 6)
	assert.Equal(t, ym(2025, time.April), rec.Schedule[3].Period)
	assert.True(t, rec.Schedule[3].WageMultiple.Equal(decimal.NewFromInt(7)))
	assert.Len(t, rec.Transitions, 1)
}

func TestReconstruct_NonContiguousHistory(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)

	early := paymentsFor(t, engine, progressive(3, ym(2023, time.January), 2))
	late := paymentsFor(t, engine, progressive(12, ym(2024, time.June), 2))
	payments := append(late, early...)

	rec, err := r.Reconstruct(Request{Profile: sampleProfile(), Payments: payments})
	require.NoError(t, err)

	require.Len(t, rec.Schedule, 4)
	assert.Equal(t, ym(2023, time.January), rec.Schedule[0].Period)
	assert.Equal(t, ym(2024, time.July), rec.Schedule[3].Period)
	assert.Equal(t, StateActive, rec.State)

	var states []EnrollmentState
	for _, tr := range rec.Transitions {
		states = append(states, tr.To)
	}
	assert.Equal(t, []EnrollmentState{StateActive, StateLapsedWithinGrace, StateLapsedExpired, StateActive}, states)
}

func TestReconstruct_ValidationErrors(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	r := NewReconstructor(engine)
	strategy := progressive(5, ym(2025, time.January), 3)
	payments := paymentsFor(t, engine, strategy)
	early := ym(2024, time.December)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "No input", req: Request{Profile: sampleProfile()}},
		{name: "Strategy and payments", req: Request{Profile: sampleProfile(), Strategy: &strategy, Payments: payments}},
		{name: "Duplicate period", req: Request{Profile: sampleProfile(), Payments: append([]PaymentRecord{payments[0]}, payments...)}},
		{name: "Non-positive amount", req: Request{Profile: sampleProfile(), Payments: []PaymentRecord{{Period: ym(2025, time.January), Amount: decimal.NewFromInt(-5)}}}},
		{name: "Resume before last payment", req: Request{Profile: sampleProfile(), Payments: payments, Resume: &early}},
		{name: "Empty plan", req: Request{Profile: sampleProfile(), Payments: payments, Planned: &PlannedContinuation{}}},
		{name: "Unknown planned type", req: Request{Profile: sampleProfile(), Payments: payments, Planned: &PlannedContinuation{Months: 6, Type: "bogus"}}},
		{name: "Invalid profile", req: Request{Profile: domain.WorkerProfile{RetirementAge: 65}, Payments: payments}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := r.Reconstruct(tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, rec)
		})
	}
}

func TestNewReconstructor_DefaultEngine(t *testing.T) {
	r := NewReconstructor(nil)
	require.NotNil(t, r.Engine)
	assert.NotNil(t, r.Engine.Tables)
}
