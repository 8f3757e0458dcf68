package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/vcpgo/internal/domain"
)

// CSVFormatter writes the report's main listing as CSV: ranked search
// results, age sensitivity, a single projection, or a schedule. Statutory
// tables have no flat form and are rejected.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var resultHeader = []string{
	"rank", "strategy_type", "wage_level", "months", "first_period", "last_period",
	"total_investment", "total_weeks", "average_daily_wage", "benefit_percentage", "retirement_age",
	"monthly_pension", "pension_with_bonus", "return_ratio", "break_even_months", "failure",
}

var scheduleHeader = []string{
	"period", "origin", "wage_multiple", "daily_wage", "monthly_wage", "contribution_rate", "contribution",
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var err error
	switch {
	case report.Search != nil:
		err = writeResults(w, report.Search.Results)
	case len(report.AgeSensitivity) > 0:
		err = writeResults(w, report.AgeSensitivity)
	case report.Projection != nil:
		err = writeResults(w, []*domain.BenefitResult{report.Projection})
	case report.Reconstruction != nil:
		err = writeSchedule(w, report.Reconstruction.Schedule)
	case len(report.Schedule) > 0:
		err = writeSchedule(w, report.Schedule)
	default:
		return nil, fmt.Errorf("csv output is not available for this report")
	}
	if err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResults(w *csv.Writer, results []*domain.BenefitResult) error {
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	for i, r := range results {
		pension, bonus, failure := "", "", ""
		if r.Eligible() {
			pension = r.MonthlyPension.StringFixed(2)
			bonus = r.PensionWithYearEndBonus.StringFixed(2)
		}
		if r.Failure != nil {
			failure = string(r.Failure.Kind)
		}
		row := []string{
			strconv.Itoa(i + 1),
			string(r.StrategyType),
			strconv.Itoa(r.WageLevel),
			strconv.Itoa(r.MonthsContributed),
			r.FirstPeriod.String(),
			r.LastPeriod.String(),
			r.TotalInvestment.StringFixed(2),
			strconv.Itoa(r.TotalWeeks),
			r.AverageDailyWage.StringFixed(2),
			r.BenefitPercentage.StringFixed(3),
			strconv.Itoa(r.RetirementAge),
			pension,
			bonus,
			r.ReturnRatio.StringFixed(2),
			r.BreakEvenMonths.StringFixed(2),
			failure,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSchedule(w *csv.Writer, months []domain.MonthlyContribution) error {
	if err := w.Write(scheduleHeader); err != nil {
		return err
	}
	for _, m := range months {
		row := []string{
			m.Period.String(),
			string(m.Origin),
			m.WageMultiple.StringFixed(4),
			m.DailyWage.StringFixed(2),
			m.MonthlyWage.StringFixed(2),
			m.ContributionRate.String(),
			m.Contribution.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
