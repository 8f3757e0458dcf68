package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
)

const lineWidth = 80

// TableFormatter renders a report as console text
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

func (tf TableFormatter) Format(report *Report) ([]byte, error) {
	var sb strings.Builder

	title := report.Title
	if title == "" {
		title = "PENSION PROJECTION"
	}
	sb.WriteString(strings.ToUpper(title) + "\n")
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	if report.TablesVersion != "" {
		sb.WriteString(fmt.Sprintf("Law version: %s\n", report.TablesVersion))
	}
	if p := report.Profile; p != nil {
		sb.WriteString(fmt.Sprintf("Born %s, retiring at %d in %s, %d prior weeks, historical daily wage %s\n",
			p.BirthDate.Format("2006-01-02"), p.RetirementAge, p.RetirementPeriod(), p.PriorWeeks,
			FormatCurrency(p.HistoricalDailyWage.Decimal)))
	}
	sb.WriteString("\n")

	if report.Projection != nil {
		tf.writeResult(&sb, report.Projection)
	}
	if len(report.AgeSensitivity) > 0 {
		tf.writeAgeSensitivity(&sb, report.AgeSensitivity)
	}
	if report.Search != nil {
		tf.writeSearch(&sb, report.Search)
	}
	if report.Reconstruction != nil {
		tf.writeReconstruction(&sb, report.Reconstruction)
	}
	if len(report.Schedule) > 0 {
		tf.writeSchedule(&sb, report.Schedule)
	}
	if report.Tables != nil {
		tf.writeTables(&sb, report.Tables)
	}

	return []byte(sb.String()), nil
}

func (tf TableFormatter) writeResult(sb *strings.Builder, r *domain.BenefitResult) {
	sb.WriteString("PROJECTED BENEFIT\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	if r.StrategyType != "" {
		sb.WriteString(fmt.Sprintf("  Strategy:             %s\n", optimize.DescribeCandidate(r)))
	} else if r.StrategyKind != "" {
		sb.WriteString(fmt.Sprintf("  Strategy:             %s\n", r.StrategyKind))
	}
	if r.MonthsContributed > 0 {
		sb.WriteString(fmt.Sprintf("  Contribution months:  %d (%s to %s)\n", r.MonthsContributed, r.FirstPeriod, r.LastPeriod))
	}
	sb.WriteString(fmt.Sprintf("  Total investment:     %s\n", FormatCurrency(r.TotalInvestment)))
	sb.WriteString(fmt.Sprintf("  Total weeks:          %d\n", r.TotalWeeks))
	sb.WriteString(fmt.Sprintf("  Average daily wage:   %s (%sx index)\n",
		FormatCurrency(r.AverageDailyWage.Decimal), r.AverageWageMultiple.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("  Benefit percentage:   %s\n", FormatPercentage(r.BenefitPercentage)))
	sb.WriteString(fmt.Sprintf("  Retirement:           age %d in %d (factor %s)\n", r.RetirementAge, r.RetirementYear, r.AgeFactor.StringFixed(2)))

	if !r.Eligible() {
		if r.Failure != nil {
			sb.WriteString(fmt.Sprintf("  No pension:           %s (%s)\n", r.Failure.Reason, r.Failure.Kind))
		}
		sb.WriteString("\n")
		return
	}
	sb.WriteString(fmt.Sprintf("  Monthly pension:      %s\n", FormatCurrency(*r.MonthlyPension)))
	sb.WriteString(fmt.Sprintf("  With year-end bonus:  %s\n", FormatCurrency(r.PensionWithYearEndBonus)))
	if r.TotalInvestment.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Return ratio:         %s\n", r.ReturnRatio.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Break-even:           %s months\n", r.BreakEvenMonths.StringFixed(1)))
	}
	sb.WriteString("\n")
}

func (tf TableFormatter) writeAgeSensitivity(sb *strings.Builder, results []*domain.BenefitResult) {
	sb.WriteString("RETIREMENT AGE SENSITIVITY\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %8s %18s %18s %12s\n", "Age", "Factor", "Monthly Pension", "With Bonus", "Ratio"))
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%-6d %8s %18s %18s %12s\n",
			r.RetirementAge, r.AgeFactor.StringFixed(2), FormatPension(r),
			FormatCurrency(r.PensionWithYearEndBonus), r.ReturnRatio.StringFixed(2)))
	}
	sb.WriteString("\n")
}

func (tf TableFormatter) writeSearch(sb *strings.Builder, res *optimize.SearchResult) {
	m := res.Metadata
	sb.WriteString("STRATEGY SEARCH\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Start %s (age %d), retirement %s, %d months available",
		m.Start, m.AgeAtStart, m.RetirementPeriod, m.AvailableMonths))
	if m.Capped {
		sb.WriteString(fmt.Sprintf(", capped at %d", m.MaxMonths))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Levels %d-%d: %d evaluated, %d kept, %d ineligible, %d failed\n\n",
		m.MinWageLevel, m.MaxWageLevel, m.Evaluated, m.Kept, m.Ineligible, m.Failed))

	if len(res.Results) == 0 {
		sb.WriteString("No eligible strategy found.\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("%-5s %-34s %14s %12s %8s %10s\n", "Rank", "Strategy", "Investment", "Pension", "Ratio", "Break-even"))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	for i, r := range res.Results {
		sb.WriteString(fmt.Sprintf("%-5d %-34s %14s %12s %8s %10s\n",
			i+1, truncate(optimize.DescribeCandidate(r), 34),
			FormatCurrency(r.TotalInvestment), FormatPension(r),
			r.ReturnRatio.StringFixed(2), r.BreakEvenMonths.StringFixed(1)))
	}
	sb.WriteString("\n")
}

func (tf TableFormatter) writeReconstruction(sb *strings.Builder, rec *reconstruct.Reconstruction) {
	sb.WriteString("RECONSTRUCTED HISTORY\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("  Paid months:          %d (%s)\n", rec.Original, FormatCurrency(rec.PaidCost)))
	sb.WriteString(fmt.Sprintf("  Retroactive months:   %d (%s)\n", rec.Retroactive, FormatCurrency(rec.RetroactiveCost)))
	sb.WriteString(fmt.Sprintf("  Planned months:       %d (%s)\n", rec.Planned, FormatCurrency(rec.PlannedCost)))
	sb.WriteString(fmt.Sprintf("  Enrollment state:     %s\n", rec.State))
	for _, t := range rec.Transitions {
		sb.WriteString(fmt.Sprintf("    %s  %-7s %s -> %s\n", t.Event.Period, t.Event.Kind, t.From, t.To))
	}
	sb.WriteString("\n")
	if rec.Result != nil {
		tf.writeResult(sb, rec.Result)
	}
	tf.writeSchedule(sb, rec.Schedule)
}

func (tf TableFormatter) writeSchedule(sb *strings.Builder, months []domain.MonthlyContribution) {
	sb.WriteString("CONTRIBUTION SCHEDULE\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("%-8s %-12s %9s %12s %14s %9s %12s\n",
		"Period", "Origin", "Multiple", "Daily Wage", "Monthly Wage", "Rate", "Contribution"))
	for _, m := range months {
		sb.WriteString(fmt.Sprintf("%-8s %-12s %9s %12s %14s %9s %12s\n",
			m.Period, m.Origin, m.WageMultiple.StringFixed(2),
			m.DailyWage.StringFixed(2), m.MonthlyWage.StringFixed(2),
			m.ContributionRate.Mul(hundred).StringFixed(3)+"%", m.Contribution.StringFixed(2)))
	}
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("%-8s %-12s %72s\n\n", "Total", fmt.Sprintf("%d months", len(months)),
		FormatCurrency(domain.TotalContributions(months))))
}

func (tf TableFormatter) writeTables(sb *strings.Builder, t *domain.StatutoryTables) {
	sb.WriteString(fmt.Sprintf("STATUTORY TABLES %s\n", t.Metadata.Version))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	if t.Metadata.Description != "" {
		sb.WriteString(t.Metadata.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("Wage index: %s in %d, growing %s per year\n",
		FormatCurrency(t.WageIndex.BaseDailyValue), t.WageIndex.BaseYear, FormatPercentage(t.WageIndex.AnnualGrowth.Mul(hundred))))

	sb.WriteString("\nContribution rates:\n")
	for _, r := range t.ContributionRates {
		sb.WriteString(fmt.Sprintf("  %d  %s\n", r.Year, r.Rate.Mul(hundred).StringFixed(3)+"%"))
	}

	sb.WriteString("\nPension brackets (multiple up to / base % / increment):\n")
	for _, b := range t.PensionBrackets {
		sb.WriteString(fmt.Sprintf("  %6s  %7s  %6s\n", b.Ceiling.StringFixed(2), b.BasePercentage.StringFixed(2), b.Increment.StringFixed(3)))
	}

	sb.WriteString("\nAge factors:\n")
	for _, af := range t.AgeFactors {
		sb.WriteString(fmt.Sprintf("  %d  %s\n", af.Age, af.Factor.StringFixed(2)))
	}

	s := t.Scheme
	sb.WriteString("\nScheme rules:\n")
	sb.WriteString(fmt.Sprintf("  Minimum weeks %d, max continuation months %d, window %d weeks\n", s.MinimumWeeks, s.MaxMonths, s.WindowWeeks))
	sb.WriteString(fmt.Sprintf("  Wage multiples %s-%s, entry age %d, re-entry grace %d months\n",
		s.MinWageMultiple, s.MaxWageMultiple, s.EntryAge, s.ReentryGraceMonths))
	sb.WriteString(fmt.Sprintf("  Legal multiplier %s, dependent bonus %s, year-end bonus %s months\n\n",
		t.Benefit.LegalMultiplier, t.Benefit.DependentBonus, t.Benefit.YearEndBonusMonths))
}

// truncate truncates a string to maxLen
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
