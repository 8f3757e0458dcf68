package calculation

import (
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// yearValues caches the per-year index value and rate while a schedule is built
type yearValues struct {
	tables *domain.StatutoryTables
	index  map[int]decimal.Decimal
	rate   map[int]decimal.Decimal
}

func newYearValues(tables *domain.StatutoryTables) *yearValues {
	return &yearValues{
		tables: tables,
		index:  make(map[int]decimal.Decimal),
		rate:   make(map[int]decimal.Decimal),
	}
}

func (yv *yearValues) indexValue(year int) decimal.Decimal {
	v, ok := yv.index[year]
	if !ok {
		v = yv.tables.IndexValue(year)
		yv.index[year] = v
	}
	return v
}

func (yv *yearValues) contributionRate(year int) decimal.Decimal {
	v, ok := yv.rate[year]
	if !ok {
		v = yv.tables.ContributionRate(year)
		yv.rate[year] = v
	}
	return v
}

// BuildSchedule produces one MonthlyContribution per calendar month of the
// strategy's range, inclusive.
func BuildSchedule(tables *domain.StatutoryTables, strategy domain.Strategy) ([]domain.MonthlyContribution, error) {
	if err := strategy.Range.Validate(); err != nil {
		return nil, err
	}

	yv := newYearValues(tables)
	days := tables.Scheme.DaysPerMonth
	periods := strategy.Range.Periods()
	schedule := make([]domain.MonthlyContribution, 0, len(periods))

	switch strategy.Kind {
	case domain.FixedWageIndex:
		if !tables.ValidWageMultiple(strategy.WageMultiple) {
			return nil, domain.NewValidationError("wage_multiple", "wage multiple must be between %s and %s, got %s",
				tables.Scheme.MinWageMultiple, tables.Scheme.MaxWageMultiple, strategy.WageMultiple)
		}
		multiple := domain.NewWageMultiple(strategy.WageMultiple)
		for _, p := range periods {
			index := yv.indexValue(p.Year)
			rate := yv.contributionRate(p.Year)
			daily := multiple.Daily(index)
			monthly := daily.Monthly(days)
			schedule = append(schedule, domain.MonthlyContribution{
				Period:           p,
				Contribution:     monthly.Mul(rate),
				DailyWage:        daily,
				MonthlyWage:      monthly,
				WageMultiple:     multiple,
				ContributionRate: rate,
				WageIndexValue:   index,
				Origin:           domain.OriginGenerated,
			})
		}

	case domain.FixedContribution:
		if !strategy.InitialContribution.IsPositive() {
			return nil, domain.NewValidationError("initial_contribution", "initial contribution must be positive, got %s",
				strategy.InitialContribution)
		}
		startYear := strategy.Range.Start.Year
		startRate := yv.contributionRate(startYear)
		if !startRate.IsPositive() {
			return nil, domain.NewValidationError("contribution_rates", "no contribution rate for %d", startYear)
		}
		// The registered wage is fixed by the first month's payment.
		firstWage := domain.NewMonthlyWage(strategy.InitialContribution.Div(startRate))
		firstMultiple := firstWage.Daily(days).Multiple(yv.indexValue(startYear))
		if !tables.ValidWageMultiple(firstMultiple.Round(2)) {
			return nil, domain.NewValidationError("initial_contribution",
				"initial contribution %s implies a wage multiple of %s, outside %s to %s",
				strategy.InitialContribution.StringFixed(2), firstMultiple.StringFixed(2),
				tables.Scheme.MinWageMultiple, tables.Scheme.MaxWageMultiple)
		}
		for _, p := range periods {
			index := yv.indexValue(p.Year)
			rate := yv.contributionRate(p.Year)
			contribution := strategy.InitialContribution
			monthly := firstWage
			if p.Year != startYear {
				contribution = strategy.InitialContribution.Mul(rate).Div(startRate)
				monthly = domain.NewMonthlyWage(contribution.Div(rate))
			}
			daily := monthly.Daily(days)
			schedule = append(schedule, domain.MonthlyContribution{
				Period:           p,
				Contribution:     contribution,
				DailyWage:        daily,
				MonthlyWage:      monthly,
				WageMultiple:     daily.Multiple(index),
				ContributionRate: rate,
				WageIndexValue:   index,
				Origin:           domain.OriginGenerated,
			})
		}

	default:
		return nil, domain.NewValidationError("kind", "unknown strategy kind %q", strategy.Kind)
	}

	return schedule, nil
}

// FirstMonthContribution is the contribution for a wage multiple in the
// given year; it seeds fixed-contribution strategies at a wage level.
func FirstMonthContribution(tables *domain.StatutoryTables, year int, multiple decimal.Decimal) decimal.Decimal {
	daily := domain.NewWageMultiple(multiple).Daily(tables.IndexValue(year))
	return daily.Monthly(tables.Scheme.DaysPerMonth).Mul(tables.ContributionRate(year))
}

// StrategyForType builds the strategy behind a ranked strategy type at a
// wage level. Both types start with the same first-month contribution.
func StrategyForType(tables *domain.StatutoryTables, typ domain.StrategyType, multiple decimal.Decimal, rng domain.Range) domain.Strategy {
	if typ == domain.StrategyFixed {
		return domain.Strategy{
			Kind:                domain.FixedContribution,
			InitialContribution: FirstMonthContribution(tables, rng.Start.Year, multiple),
			WageMultiple:        multiple,
			Range:               rng,
		}
	}
	return domain.Strategy{
		Kind:         domain.FixedWageIndex,
		WageMultiple: multiple,
		Range:        rng,
	}
}

// ContributionFromPayment derives a schedule month from an actual payment,
// inverting the schedule formulas for the payment's calendar year.
func ContributionFromPayment(tables *domain.StatutoryTables, period domain.YearMonth, amount decimal.Decimal, origin domain.ContributionOrigin) (domain.MonthlyContribution, error) {
	if err := period.Validate(); err != nil {
		return domain.MonthlyContribution{}, domain.NewValidationError("period", "%v", err)
	}
	if !amount.IsPositive() {
		return domain.MonthlyContribution{}, domain.NewValidationError("amount", "payment for %s must be positive, got %s", period, amount)
	}
	rate := tables.ContributionRate(period.Year)
	if !rate.IsPositive() {
		return domain.MonthlyContribution{}, domain.NewValidationError("contribution_rates", "no contribution rate for %d", period.Year)
	}
	index := tables.IndexValue(period.Year)
	monthly := domain.NewMonthlyWage(amount.Div(rate))
	daily := monthly.Daily(tables.Scheme.DaysPerMonth)
	multiple := daily.Multiple(index)
	if multiple.Round(2).GreaterThan(tables.Scheme.MaxWageMultiple) {
		return domain.MonthlyContribution{}, domain.NewValidationError("amount",
			"payment %s for %s implies a wage multiple of %s, above the ceiling of %s",
			amount.StringFixed(2), period, multiple.StringFixed(2), tables.Scheme.MaxWageMultiple)
	}
	return domain.MonthlyContribution{
		Period:           period,
		Contribution:     amount,
		DailyWage:        daily,
		MonthlyWage:      monthly,
		WageMultiple:     multiple,
		ContributionRate: rate,
		WageIndexValue:   index,
		Origin:           origin,
	}, nil
}
