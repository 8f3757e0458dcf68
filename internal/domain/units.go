package domain

import (
	"github.com/shopspring/decimal"
)

// DailyWage is an integrated daily wage in currency units per day.
type DailyWage struct{ decimal.Decimal }

// MonthlyWage is a wage in currency units per month.
type MonthlyWage struct{ decimal.Decimal }

// WageMultiple is a wage expressed as a multiple of the daily wage index value.
type WageMultiple struct{ decimal.Decimal }

// NewDailyWage wraps a decimal as a daily wage
func NewDailyWage(d decimal.Decimal) DailyWage { return DailyWage{d} }

// NewMonthlyWage wraps a decimal as a monthly wage
func NewMonthlyWage(d decimal.Decimal) MonthlyWage { return MonthlyWage{d} }

// NewWageMultiple wraps a decimal as a wage-index multiple
func NewWageMultiple(d decimal.Decimal) WageMultiple { return WageMultiple{d} }

// Monthly converts a daily wage to its monthly equivalent.
func (w DailyWage) Monthly(daysPerMonth decimal.Decimal) MonthlyWage {
	return MonthlyWage{w.Mul(daysPerMonth)}
}

// Multiple expresses the daily wage as a multiple of the given index value.
func (w DailyWage) Multiple(indexValue decimal.Decimal) WageMultiple {
	if indexValue.IsZero() {
		return WageMultiple{decimal.Zero}
	}
	return WageMultiple{w.Div(indexValue)}
}

// Daily converts a monthly wage to its daily equivalent.
func (w MonthlyWage) Daily(daysPerMonth decimal.Decimal) DailyWage {
	if daysPerMonth.IsZero() {
		return DailyWage{decimal.Zero}
	}
	return DailyWage{w.Div(daysPerMonth)}
}

// Daily converts a multiple back into a daily wage for the given index value.
func (m WageMultiple) Daily(indexValue decimal.Decimal) DailyWage {
	return DailyWage{m.Mul(indexValue)}
}
