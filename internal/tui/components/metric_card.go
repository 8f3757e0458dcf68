package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend compares a metric against a reference candidate
type Trend struct {
	IsPositive bool
	Change     string // e.g. "+$1,234.00 vs best"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label)
	value := tuistyles.MetricValueStyle.Render(m.Value)

	var trend string
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		trend = "\n" + tuistyles.MetricTrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}

	var desc string
	if m.Description != "" {
		desc = "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(label + "\n" + value + trend + desc)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		out += " " + tuistyles.MetricTrendStyle(m.Trend.IsPositive).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}
	return out
}

// ResultCards builds the headline cards of a projection. When best is a
// different candidate, pension and ratio carry a trend against it.
func ResultCards(r, best *domain.BenefitResult) []*MetricCard {
	if r == nil {
		return nil
	}

	pension := NewMetricCard("Monthly pension", "n/a")
	if r.Eligible() {
		pension.Value = tuistyles.FormatCurrency(r.Pension())
		pension.WithDescription(fmt.Sprintf("%s with year-end bonus", tuistyles.FormatCurrency(r.PensionWithYearEndBonus)))
	} else if r.Failure != nil {
		pension.WithDescription(string(r.Failure.Kind))
	}

	investment := NewMetricCard("Total investment", tuistyles.FormatCurrency(r.TotalInvestment)).
		WithDescription(fmt.Sprintf("%d months, %s to %s", r.MonthsContributed, r.FirstPeriod, r.LastPeriod))
	ratio := NewMetricCard("Return ratio", r.ReturnRatio.StringFixed(2)).
		WithDescription(fmt.Sprintf("break-even in %s months", r.BreakEvenMonths.StringFixed(1)))
	weeks := NewMetricCard("Total weeks", fmt.Sprintf("%d", r.TotalWeeks)).
		WithDescription(fmt.Sprintf("age factor %s", r.AgeFactor.StringFixed(2)))

	if best != nil && best != r && r.Eligible() && best.Eligible() {
		diff := r.Pension().Sub(best.Pension())
		pension.WithTrend(!diff.IsNegative(), signed(diff)+" vs best")
		ratioDiff := r.ReturnRatio.Sub(best.ReturnRatio)
		ratio.WithTrend(!ratioDiff.IsNegative(), ratioDiff.StringFixed(2)+" vs best")
	}
	return []*MetricCard{pension, investment, ratio, weeks}
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return tuistyles.FormatCurrency(d)
	}
	return "+" + tuistyles.FormatCurrency(d)
}

// MetricGrid renders cards in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
