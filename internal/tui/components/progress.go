package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/vcpgo/internal/tui/tuistyles"
)

// ProgressBar renders a count against a target, e.g. contributed weeks
// against the eligibility minimum.
type ProgressBar struct {
	Current     int
	Total       int
	Width       int
	Label       string
	ShowPercent bool
	ShowCount   bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       30,
		ShowPercent: true,
		ShowCount:   true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the completion percentage, capped at 100
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsComplete returns true once the target is reached
func (p *ProgressBar) IsComplete() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var sb strings.Builder

	if p.Label != "" {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		sb.WriteString(" ")
	}

	filled := int(float64(p.Width) * p.Percentage() / 100)
	empty := p.Width - filled

	barColor := tuistyles.ColorDanger
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}

	sb.WriteString("[")
	if filled > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", empty)))
	}
	sb.WriteString("]")

	var stats []string
	if p.ShowPercent {
		stats = append(stats, fmt.Sprintf("%.1f%%", p.Percentage()))
	}
	if p.ShowCount {
		stats = append(stats, fmt.Sprintf("%d/%d", p.Current, p.Total))
	}
	if len(stats) > 0 {
		sb.WriteString(" ")
		sb.WriteString(tuistyles.MetricLabelStyle.Render(strings.Join(stats, " • ")))
	}
	return sb.String()
}
