package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/tui/components"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneResults:
		content = m.renderResults()
	case SceneDetail:
		content = m.renderDetail()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("VCPGO - Voluntary Continuation Planner")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneResults {
		breadcrumb += " / " + m.filter.String()
	}
	if sel := m.Selected(); sel != nil && m.currentScene == SceneDetail {
		breadcrumb += " / " + optimize.DescribeCandidate(sel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("↑/↓", "move"),
		formatShortcut("enter", "detail"),
		formatShortcut("tab", "filter"),
		formatShortcut("r", "rerun"),
		formatShortcut("esc", "back"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), message)))
}

func (m Model) renderError() string {
	return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress r to retry or q to quit.", m.err)))
}

func (m Model) renderSummary() string {
	if m.search == nil {
		return ""
	}
	md := m.search.Metadata
	line := fmt.Sprintf("Start %s (age %d) • retirement %s • %d months available • levels %d-%d",
		md.Start, md.AgeAtStart, md.RetirementPeriod, md.AvailableMonths, md.MinWageLevel, md.MaxWageLevel)
	counts := fmt.Sprintf("%d evaluated • %d kept • %d ineligible • %d failed • showing %d",
		md.Evaluated, md.Kept, md.Ineligible, md.Failed, len(m.visible))
	return InfoStyle.Render(line) + "\n" + SubtitleStyle.Render(counts)
}

func (m Model) renderResults() string {
	if len(m.visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderSummary(),
			BorderStyle.Render(fmt.Sprintf("No eligible %s strategy found.", m.filter)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		ActiveBorderStyle.Render(m.table.View()))
}

// renderDetail shows the headline cards, the eligibility gauge and the
// contribution schedule of the selected strategy.
func (m Model) renderDetail() string {
	r := m.Selected()
	if r == nil {
		return BorderStyle.Render("No strategy selected.")
	}

	columns := 4
	if m.width < 110 {
		columns = 2
	}
	cards := components.MetricGrid(components.ResultCards(r, m.best()), columns)

	minimum := m.engine.Tables.Scheme.MinimumWeeks
	gauge := components.NewProgressBar(r.TotalWeeks, minimum).WithLabel("Weeks toward eligibility").Render()

	var schedule string
	if len(r.Schedule) > 0 {
		schedule = BorderStyle.Render(m.renderSchedule(r.Schedule))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, gauge, schedule)
}

func (m Model) renderSchedule(months []domain.MonthlyContribution) string {
	rows := max(3, m.height-16)
	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %9s %12s %8s %12s", "Period", "Multiple", "Monthly Wage", "Rate", "Contribution")))
	sb.WriteString("\n")
	for i, c := range months {
		if i == rows {
			sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("... %d more months", len(months)-rows)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(fmt.Sprintf("%-8s %9s %12s %8s %12s\n",
			c.Period, c.WageMultiple.StringFixed(2), c.MonthlyWage.StringFixed(2),
			c.ContributionRate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%", c.Contribution.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("Total %s", FormatCurrency(domain.TotalContributions(months))))
	return sb.String()
}

func (m Model) renderHelp() string {
	helpText := `
VCPGO - Voluntary Continuation Planner

Every (months, type, wage level) strategy the profile allows is
projected and ranked by return ratio, highest first.

KEYBOARD SHORTCUTS:
  ↑/↓ k/j  Move through strategies
  enter    Show the selected strategy
  tab/f    Cycle filter: all, fixed, progressive
  r        Run the search again
  ?        Show this help
  esc      Go back
  q/Ctrl+C Quit
`
	return BorderStyle.Render(helpText)
}
