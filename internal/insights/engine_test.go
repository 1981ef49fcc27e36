package insights

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain"
)

func TestGenerateInsights_EmptyInput(t *testing.T) {
	engine := NewEngine(nil)

	report, err := engine.GenerateInsights(nil, nil)
	require.NoError(t, err, "empty input is a valid state, not an error")

	assert.Equal(t, 0, report.Overview.StoreCount)
	assert.Equal(t, 0.0, report.Overview.TotalRevenue)
	assert.Equal(t, 0.0, report.Overview.WeightedMargin)
	assert.Equal(t, Descriptive{}, report.Overview.MarginStats)
	assert.Equal(t, 0, report.Clusters.High.Count+report.Clusters.Medium.Count+report.Clusters.Low.Count)
	assert.Equal(t, 0, report.Anomalies.TotalAnomalyStores)
	assert.Empty(t, report.HeadTail.TopStores)
	assert.Empty(t, report.Health.Scores)
	assert.Nil(t, report.Trend)
	assert.Empty(t, report.Recommendations)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestGenerateInsights_RejectsInvalidRecords(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.GenerateInsights([]domain.StoreMetrics{
		{StoreName: "bad", OrderCount: -5, TotalRevenue: 1000},
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMetrics)

	_, err = engine.GenerateInsights([]domain.StoreMetrics{
		{StoreName: "ghost", OrderCount: 10, TotalRevenue: 0, TotalProfit: 500},
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMetrics)
}

func TestGenerateInsights_IdempotentExceptTimestamp(t *testing.T) {
	engine := NewEngine(nil)
	stores := fixtureStores(t)
	deltas := []domain.StoreMetricsDelta{
		mustDelta(t, "downtown", 50000, 15000, 45000, 13000),
		mustDelta(t, "outskirts", 6000, 200, 8000, 900),
	}

	first, err := engine.GenerateInsights(stores, deltas)
	require.NoError(t, err)
	second, err := engine.GenerateInsights(stores, deltas)
	require.NoError(t, err)

	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "same input must yield bit-identical output modulo generated_at")
}

func TestGenerateInsights_NilDeltasDisableTrend(t *testing.T) {
	engine := NewEngine(nil)

	report, err := engine.GenerateInsights(fixtureStores(t), nil)
	require.NoError(t, err)
	assert.Nil(t, report.Trend)

	report, err = engine.GenerateInsights(fixtureStores(t), []domain.StoreMetricsDelta{})
	require.NoError(t, err)
	require.NotNil(t, report.Trend, "an empty comparison set still yields an empty trend section")
	assert.Equal(t, 0, report.Trend.GrowingCount+report.Trend.DecliningCount)
}

func TestGenerateInsights_ScenarioReport(t *testing.T) {
	engine := NewEngine(nil)

	report, err := engine.GenerateInsights(scenarioStores(t), nil)
	require.NoError(t, err)

	// Overview from summed totals: (300+50)/(1000+1000)*100.
	assert.InDelta(t, 17.5, report.Overview.WeightedMargin, 1e-9)

	// B breaches both fixed cost-rate thresholds.
	require.Len(t, report.Anomalies.HighMarketing, 1)
	assert.Equal(t, "B", report.Anomalies.HighMarketing[0].StoreName)
	require.Len(t, report.Anomalies.HighDelivery, 1)
	assert.Equal(t, "B", report.Anomalies.HighDelivery[0].StoreName)

	// Margin boundaries put A high and B low.
	assert.Equal(t, []string{"A"}, report.Clusters.High.Members)
	assert.Equal(t, []string{"B"}, report.Clusters.Low.Members)

	assert.NotEmpty(t, report.Overview.Summary)
	assert.NotEmpty(t, report.CostStructure.Summary)
}

func TestGenerateInsights_SingleStore(t *testing.T) {
	engine := NewEngine(nil)

	report, err := engine.GenerateInsights([]domain.StoreMetrics{
		mustStore(t, "solo", 100, 10000, 2500, 8, 10),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Clusters.High.Count, "boundary tie favors the high tier")
	assert.Empty(t, report.Anomalies.ProfitMargin, "std=0 yields z=0 for the only store")
	require.Len(t, report.Health.Scores, 1)
	assert.Equal(t, 50.0, report.Health.Scores[0].HealthScore)
}
