package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

var csvHeader = []string{
	"Plan",
	"Role",
	"Type",
	"Wage Level",
	"Start",
	"Months",
	"Retirement Age",
	"Eligible",
	"Monthly Pension",
	"Total Investment",
	"Return Ratio",
	"Break-even Months",
	"Total Weeks",
	"Pension Diff from Base",
	"Pension % Change",
	"Investment Diff from Base",
	"Weeks Diff from Base",
}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(csvHeader); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, role string) []string {
	row := []string{result.Name, role, "", "", "", "", ""}
	if p := result.Plan; p != nil {
		row[2] = string(p.Type)
		row[3] = p.WageLevel.String()
		row[4] = p.Start.String()
		row[5] = strconv.Itoa(p.Months)
		row[6] = strconv.Itoa(p.Profile.RetirementAge)
	}

	pension := ""
	if result.Eligible {
		pension = result.MonthlyPension.StringFixed(2)
	}

	return append(row,
		strconv.FormatBool(result.Eligible),
		pension,
		result.TotalInvestment.StringFixed(2),
		result.ReturnRatio.StringFixed(4),
		result.BreakEvenMonths.StringFixed(1),
		strconv.Itoa(result.TotalWeeks),
		result.PensionDiffFromBase.StringFixed(2),
		result.PensionPctFromBase.StringFixed(2),
		result.InvestmentDiffFromBase.StringFixed(2),
		strconv.Itoa(result.WeeksDiffFromBase),
	)
}
