package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthsWithDailyWages builds a chronological schedule from daily wages, oldest first
func monthsWithDailyWages(start domain.YearMonth, wages ...string) []domain.MonthlyContribution {
	months := make([]domain.MonthlyContribution, len(wages))
	for i, w := range wages {
		months[i] = domain.MonthlyContribution{
			Period:    start.AddMonths(i),
			DailyWage: domain.NewDailyWage(dec(w)),
		}
	}
	return months
}

func TestAverageWage_NoSchemeMonthsReturnsHistorical(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	historical := domain.NewDailyWage(dec("487.35"))

	avg, err := AverageWage(tables, historical, nil)
	require.NoError(t, err)

	assert.True(t, avg.Daily.Equal(historical.Decimal), "got %s", avg.Daily)
	assert.True(t, avg.Monthly.Equal(dec("14815.44")), "got %s", avg.Monthly)
	assert.Equal(t, 0, avg.SchemeUnits)
	assert.Equal(t, 250, avg.HistoricalUnits)
}

func TestAverageWage_FullWindowIsUnweightedMean(t *testing.T) {
	tables := domain.DefaultStatutoryTables()

	wages := make([]string, 58)
	total := decimal.Zero
	for i := range wages {
		w := decimal.NewFromInt(int64(900 + 37*i)).Add(dec("0.25"))
		wages[i] = w.String()
		total = total.Add(w)
	}
	months := monthsWithDailyWages(ym(2025, time.January), wages...)

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("150")), months)
	require.NoError(t, err)

	expected := total.Div(decimal.NewFromInt(58))
	assert.True(t, avg.Daily.Equal(expected), "expected %s, got %s", expected, avg.Daily)
	assert.Equal(t, 0, avg.HistoricalUnits)
}

func TestAverageWage_ThreeEqualMonthsPlaceThirteenWeeks(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	months := monthsWithDailyWages(ym(2025, time.January), "200", "200", "200")

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("100")), months)
	require.NoError(t, err)

	// (13 × 200 + 237 × 100) / 250
	assert.True(t, avg.Daily.Equal(dec("105.2")), "got %s", avg.Daily)
	assert.Equal(t, 13, avg.SchemeUnits)
	assert.Equal(t, 237, avg.HistoricalUnits)
}

func TestAverageWage_VaryingMonthsBlendTheExtraWeek(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	months := monthsWithDailyWages(ym(2025, time.January), "100", "200", "300")

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("50")), months)
	require.NoError(t, err)

	// 4×300 + 4×200 + 4×100 + mean(300,200,100) + 237×50 = 14450
	assert.True(t, avg.Daily.Equal(dec("57.8")), "got %s", avg.Daily)
}

func TestAverageWage_SingleMonth(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	months := monthsWithDailyWages(ym(2025, time.January), "350")

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("100")), months)
	require.NoError(t, err)

	// (4 × 350 + 246 × 100) / 250
	assert.True(t, avg.Daily.Equal(dec("104")), "got %s", avg.Daily)
	assert.Equal(t, 4, avg.SchemeUnits)
}

func TestAverageWage_NearlyFullWindowKeepsHistoricalTail(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	wages := make([]string, 57)
	for i := range wages {
		wages[i] = "400"
	}

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("150")), monthsWithDailyWages(ym(2025, time.January), wages...))
	require.NoError(t, err)

	assert.Equal(t, 247, avg.SchemeUnits)
	assert.Equal(t, 3, avg.HistoricalUnits)
	assert.True(t, avg.Daily.Equal(dec("397")), "(247×400 + 3×150)/250, got %s", avg.Daily)
}

func TestAverageWage_RejectsMoreThanCeiling(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	wages := make([]string, 59)
	for i := range wages {
		wages[i] = "300"
	}

	_, err := AverageWage(tables, domain.NewDailyWage(dec("100")), monthsWithDailyWages(ym(2025, time.January), wages...))
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestAverageWage_ShorterCeilingStillBlendsHistorical(t *testing.T) {
	tables := domain.DefaultStatutoryTables()
	tables.Scheme.MaxMonths = 50

	wages := make([]string, 50)
	for i := range wages {
		wages[i] = "1000"
	}

	avg, err := AverageWage(tables, domain.NewDailyWage(dec("100")), monthsWithDailyWages(ym(2025, time.January), wages...))
	require.NoError(t, err)

	assert.Equal(t, 216, avg.SchemeUnits, "50×4 whole weeks + 16 blended weeks")
	assert.Equal(t, 34, avg.HistoricalUnits)
	assert.True(t, avg.Daily.Equal(dec("877.6")), "(216×1000 + 34×100)/250, got %s", avg.Daily)
}
