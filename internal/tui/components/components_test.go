package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pension(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Monthly pension", "$10575.30").
		WithTrend(true, "+$12.00 vs best").
		WithDescription("with bonus").
		WithWidth(30)

	out := card.Render()
	assert.Contains(t, out, "Monthly pension")
	assert.Contains(t, out, "$10575.30")
	assert.Contains(t, out, "▲ +$12.00 vs best")
	assert.Contains(t, out, "with bonus")

	compact := NewMetricCard("Ratio", "4.10").WithTrend(false, "-0.20").RenderCompact()
	assert.Contains(t, compact, "Ratio:")
	assert.Contains(t, compact, "▼ -0.20")
}

func TestResultCards(t *testing.T) {
	best := &domain.BenefitResult{MonthlyPension: pension("1000"), ReturnRatio: decimal.RequireFromString("4.5")}
	other := &domain.BenefitResult{
		MonthlyPension:    pension("900.5"),
		ReturnRatio:       decimal.RequireFromString("4.2"),
		TotalInvestment:   decimal.RequireFromString("50000"),
		MonthsContributed: 24,
		TotalWeeks:        704,
	}

	cards := ResultCards(other, best)
	require.Len(t, cards, 4)
	assert.Equal(t, "$900.50", cards[0].Value)
	require.NotNil(t, cards[0].Trend)
	assert.False(t, cards[0].Trend.IsPositive)
	assert.Equal(t, "-$99.50 vs best", cards[0].Trend.Change)
	assert.Equal(t, "$50000.00", cards[1].Value)
	assert.Equal(t, "-0.30 vs best", cards[2].Trend.Change)
	assert.Equal(t, "704", cards[3].Value)

	self := ResultCards(best, best)
	assert.Nil(t, self[0].Trend, "no trend against itself")

	ineligible := ResultCards(&domain.BenefitResult{Failure: &domain.Failure{Kind: domain.FailureEligibility}}, best)
	assert.Equal(t, "n/a", ineligible[0].Value)
	assert.Equal(t, "eligibility", ineligible[0].Description)
	assert.Nil(t, ineligible[0].Trend)

	assert.Nil(t, ResultCards(nil, best))
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}
	out := MetricGrid(cards, 2)
	for _, s := range []string{"A", "B", "C"} {
		assert.Contains(t, out, s)
	}
	assert.Greater(t, strings.Count(out, "\n"), strings.Count(cards[0].Render(), "\n"), "three cards wrap onto two rows")
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(250, 500).WithWidth(10).WithLabel("Weeks")
	assert.InDelta(t, 50.0, p.Percentage(), 0.001)
	assert.False(t, p.IsComplete())

	out := p.Render()
	assert.Contains(t, out, "Weeks")
	assert.Contains(t, out, "█████░░░░░")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "250/500")

	over := NewProgressBar(851, 500)
	assert.InDelta(t, 100.0, over.Percentage(), 0.001)
	assert.True(t, over.IsComplete())

	assert.Zero(t, NewProgressBar(10, 0).Percentage())
}
