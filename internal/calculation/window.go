package calculation

import (
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// WindowAverage is the wage fed to the benefit formula, with the split of
// window units between scheme months and the historical wage.
type WindowAverage struct {
	Daily           domain.DailyWage   `yaml:"daily" json:"daily"`
	Monthly         domain.MonthlyWage `yaml:"monthly" json:"monthly"`
	Months          int                `yaml:"months" json:"months"`
	SchemeUnits     int                `yaml:"scheme_units" json:"schemeUnits"`
	HistoricalUnits int                `yaml:"historical_units" json:"historicalUnits"`
}

// AverageWage computes the rolling-window average daily wage.
//
// The window starts filled with the historical daily wage. Scheme months are
// placed newest first, each overwriting the next whole weeks at the end of
// the window; after every BlendEveryMonths months one more week is written
// with the month's wage, or with the mean of those months when they differ,
// so a month counts as roughly 4.33 weeks. A schedule long enough to cover
// the whole window is averaged month by month with no historical blending.
// months must be in chronological order.
func AverageWage(tables *domain.StatutoryTables, historical domain.DailyWage, months []domain.MonthlyContribution) (WindowAverage, error) {
	rules := tables.Scheme
	if len(months) > rules.MaxMonths {
		return WindowAverage{}, &domain.LimitExceededError{Original: len(months), Limit: rules.MaxMonths}
	}
	if len(months) > 0 && windowUnits(rules, len(months)) >= rules.WindowWeeks {
		return fullWindowAverage(tables, months), nil
	}

	size := rules.WindowWeeks
	window := make([]decimal.Decimal, size)
	for i := range window {
		window[i] = historical.Decimal
	}

	// next is the highest window slot still holding the historical wage
	next := size - 1
	place := func(v decimal.Decimal) bool {
		if next < 0 {
			return false
		}
		window[next] = v
		next--
		return true
	}

	processed := 0
	full := false
	for i := len(months) - 1; i >= 0 && !full; i-- {
		wage := months[i].DailyWage.Decimal
		for w := 0; w < rules.WholeWeeksPerMonth; w++ {
			if !place(wage) {
				full = true
				break
			}
		}
		processed++
		if full || rules.BlendEveryMonths <= 0 || processed%rules.BlendEveryMonths != 0 {
			continue
		}
		if !place(blendedWage(months[i : i+rules.BlendEveryMonths])) {
			full = true
		}
	}

	daily := domain.NewDailyWage(decimal.Sum(window[0], window[1:]...).Div(decimal.NewFromInt(int64(size))))
	schemeUnits := size - 1 - next
	return WindowAverage{
		Daily:           daily,
		Monthly:         daily.Monthly(rules.DaysPerMonth),
		Months:          len(months),
		SchemeUnits:     schemeUnits,
		HistoricalUnits: size - schemeUnits,
	}, nil
}

// windowUnits is the number of weeks n months would place in the window
func windowUnits(rules domain.SchemeRules, n int) int {
	units := n * rules.WholeWeeksPerMonth
	if rules.BlendEveryMonths > 0 {
		units += n / rules.BlendEveryMonths
	}
	return units
}

// blendedWage returns the common wage of the months, or their mean when they differ.
func blendedWage(months []domain.MonthlyContribution) decimal.Decimal {
	first := months[0].DailyWage.Decimal
	varies := false
	total := decimal.Zero
	for _, m := range months {
		if !m.DailyWage.Equal(first) {
			varies = true
		}
		total = total.Add(m.DailyWage.Decimal)
	}
	if !varies {
		return first
	}
	return total.Div(decimal.NewFromInt(int64(len(months))))
}

func fullWindowAverage(tables *domain.StatutoryTables, months []domain.MonthlyContribution) WindowAverage {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.DailyWage.Decimal)
	}
	daily := domain.NewDailyWage(total.Div(decimal.NewFromInt(int64(len(months)))))
	return WindowAverage{
		Daily:       daily,
		Monthly:     daily.Monthly(tables.Scheme.DaysPerMonth),
		Months:      len(months),
		SchemeUnits: tables.Scheme.WindowWeeks,
	}
}
