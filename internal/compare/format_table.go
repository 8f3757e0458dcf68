package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseName))
	if compSet.BaseResult != nil && compSet.BaseResult.Description != "" {
		sb.WriteString(fmt.Sprintf("           %s\n", compSet.BaseResult.Description))
	}
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile:   %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		numWidth, "Pension",
		numWidth+2, "Investment",
		numWidth-4, "Ratio",
		numWidth, "Break-even",
		numWidth-4, "Weeks"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth))
		}
	}

	sb.WriteString(strings.Repeat("=", 92) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.Name, alt.Description))
			if !alt.Eligible {
				sb.WriteString(fmt.Sprintf("  No pension (%s)\n", alt.Result.Failure.Kind))
			} else {
				sb.WriteString(fmt.Sprintf("  Monthly Pension:  %s$%s (%s%%)\n",
					tf.deltaSymbol(alt.PensionDiffFromBase),
					alt.PensionDiffFromBase.Abs().StringFixed(2),
					alt.PensionPctFromBase.StringFixed(1)))
			}
			sb.WriteString(fmt.Sprintf("  Investment:       %s$%s\n",
				tf.deltaSymbol(alt.InvestmentDiffFromBase),
				alt.InvestmentDiffFromBase.Abs().StringFixed(2)))
			if alt.WeeksDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Weeks:            %+d\n", alt.WeeksDiffFromBase))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	return sb.String(), nil
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int) string {
	name := result.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	pension := "n/a"
	breakEven := "n/a"
	if result.Eligible {
		pension = "$" + result.MonthlyPension.StringFixed(2)
		breakEven = result.BreakEvenMonths.StringFixed(1)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*d\n",
		nameWidth, name,
		numWidth, pension,
		numWidth+2, "$"+result.TotalInvestment.StringFixed(2),
		numWidth-4, result.ReturnRatio.StringFixed(2),
		numWidth, breakEven,
		numWidth-4, result.TotalWeeks)
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return "+"
}
