package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe_Empty(t *testing.T) {
	stats := Describe(nil)
	assert.Equal(t, Descriptive{}, stats, "empty input is a valid zero state")
}

func TestDescribe_SingleValue(t *testing.T) {
	stats := Describe([]float64{42.0})

	assert.Equal(t, 42.0, stats.Mean)
	assert.Equal(t, 42.0, stats.Median)
	assert.Equal(t, 0.0, stats.Std)
	assert.Equal(t, 42.0, stats.P25)
	assert.Equal(t, 42.0, stats.P50)
	assert.Equal(t, 42.0, stats.P75)
	assert.Equal(t, 42.0, stats.P90)
}

func TestDescribe_KnownValues(t *testing.T) {
	stats := Describe([]float64{4, 1, 3, 2}) // unsorted on purpose

	assert.InDelta(t, 2.5, stats.Mean, 1e-9)
	assert.InDelta(t, 2.5, stats.Median, 1e-9)
	assert.InDelta(t, 1.1180339887, stats.Std, 1e-9, "population std, ddof=0")
	assert.InDelta(t, 1.75, stats.P25, 1e-9)
	assert.InDelta(t, 3.25, stats.P75, 1e-9)
	assert.InDelta(t, 3.7, stats.P90, 1e-9)
}

func TestWeightedRatio(t *testing.T) {
	assert.Equal(t, 25.0, WeightedRatio(50, 200))
	assert.Equal(t, 0.0, WeightedRatio(50, 0), "zero denominator yields 0, not NaN")
	assert.Equal(t, 0.0, WeightedRatio(50, -10))
}

func TestWeightedRatio_MatchesSummedTotals(t *testing.T) {
	stores := fixtureStores(t)

	var profit, revenue float64
	for _, s := range stores {
		profit += s.TotalProfit
		revenue += s.TotalRevenue
	}

	assert.InDelta(t, profit/revenue*100, WeightedRatio(profit, revenue), 1e-9,
		"weighted margin must come from summed totals, not averaged per-store ratios")
}
