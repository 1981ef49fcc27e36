package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain"
)

func mustDelta(t *testing.T, name string, curRevenue, curProfit, prevRevenue, prevProfit float64) domain.StoreMetricsDelta {
	t.Helper()
	cur := mustStore(t, name, 10, curRevenue, curProfit, 5, 5)
	prev := mustStore(t, name, 10, prevRevenue, prevProfit, 5, 5)
	d, err := domain.NewStoreMetricsDelta(cur, prev)
	require.NoError(t, err)
	return d
}

func TestAnalyzeTrend_RevenueSignDecides(t *testing.T) {
	deltas := []domain.StoreMetricsDelta{
		mustDelta(t, "up", 1200, 100, 1000, 200),    // revenue +20%, profit -50%: revenue wins
		mustDelta(t, "down", 800, 300, 1000, 200),   // revenue -20%, profit +50%: revenue wins
		mustDelta(t, "steady", 1000, 300, 1000, 200), // revenue 0, profit +50%: profit breaks the tie
	}
	report := analyzeTrend(deltas)

	assert.Equal(t, 2, report.GrowingCount)
	assert.Equal(t, 1, report.DecliningCount)
	assert.Equal(t, []string{"down"}, report.DecliningStores)
}

func TestAnalyzeTrend_TopThreeByAbsoluteChange(t *testing.T) {
	deltas := []domain.StoreMetricsDelta{
		mustDelta(t, "g1", 1100, 100, 1000, 100), // +10%
		mustDelta(t, "g2", 1500, 100, 1000, 100), // +50%
		mustDelta(t, "g3", 1200, 100, 1000, 100), // +20%
		mustDelta(t, "g4", 1300, 100, 1000, 100), // +30%
		mustDelta(t, "d1", 500, 100, 1000, 100),  // -50%
	}
	report := analyzeTrend(deltas)

	require.Len(t, report.TopGrowing, 3)
	assert.Equal(t, "g2", report.TopGrowing[0].StoreName)
	assert.Equal(t, "g4", report.TopGrowing[1].StoreName)
	assert.Equal(t, "g3", report.TopGrowing[2].StoreName)

	require.Len(t, report.TopDeclining, 1)
	assert.Equal(t, "d1", report.TopDeclining[0].StoreName)
	assert.InDelta(t, -50.0, report.TopDeclining[0].RevenueChange, 1e-9)
}

func TestAnalyzeTrend_TieBreakByName(t *testing.T) {
	deltas := []domain.StoreMetricsDelta{
		mustDelta(t, "zoo", 1200, 100, 1000, 100), // +20%
		mustDelta(t, "ant", 1200, 100, 1000, 100), // +20%
	}
	report := analyzeTrend(deltas)

	require.Len(t, report.TopGrowing, 2)
	assert.Equal(t, "ant", report.TopGrowing[0].StoreName)
	assert.Equal(t, "zoo", report.TopGrowing[1].StoreName)
}

func TestAnalyzeTrend_Empty(t *testing.T) {
	report := analyzeTrend([]domain.StoreMetricsDelta{})

	assert.Equal(t, 0, report.GrowingCount)
	assert.Equal(t, 0, report.DecliningCount)
	assert.Empty(t, report.TopGrowing)
	assert.Empty(t, report.TopDeclining)
}
