package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain"
)

func TestDetectAnomalies_ScenarioRateBreaches(t *testing.T) {
	report := detectAnomalies(DefaultConfig(), scenarioStores(t))

	// With two stores every |z| is 1, so no margin outliers.
	assert.Empty(t, report.ProfitMargin)

	require.Len(t, report.HighMarketing, 1)
	assert.Equal(t, "B", report.HighMarketing[0].StoreName)
	assert.Equal(t, 20.0, report.HighMarketing[0].Value)
	assert.Equal(t, SeverityMedium, report.HighMarketing[0].Severity)

	require.Len(t, report.HighDelivery, 1)
	assert.Equal(t, "B", report.HighDelivery[0].StoreName)
	assert.Equal(t, SeverityMedium, report.HighDelivery[0].Severity)

	assert.Equal(t, 1, report.TotalAnomalyStores, "B counts once across categories")
}

func TestDetectAnomalies_ZeroStdYieldsNoMarginFlags(t *testing.T) {
	stores := []domain.StoreMetrics{
		mustStore(t, "a", 10, 1000, 200, 5, 5),
		mustStore(t, "b", 10, 2000, 400, 5, 5),
		mustStore(t, "c", 10, 3000, 600, 5, 5),
	}
	report := detectAnomalies(DefaultConfig(), stores)
	assert.Empty(t, report.ProfitMargin, "std=0 pins every z to 0")
}

func TestDetectAnomalies_MarginZScoreSeverity(t *testing.T) {
	// Nineteen stores at margin 20 plus one extreme outlier at 120:
	// mean 25, std ~21.8, z(spike) ~4.36.
	stores := []domain.StoreMetrics{}
	for i := 0; i < 19; i++ {
		stores = append(stores, mustStore(t, fmt.Sprintf("s%02d", i), 10, 1000, 200, 5, 5))
	}
	stores = append(stores, mustStore(t, "spike", 10, 1000, 1200, 5, 5))

	report := detectAnomalies(DefaultConfig(), stores)

	require.Len(t, report.ProfitMargin, 1)
	assert.Equal(t, "spike", report.ProfitMargin[0].StoreName)
	assert.Equal(t, SeverityHigh, report.ProfitMargin[0].Severity)
	assert.Contains(t, report.ProfitMargin[0].Message, "spike")
}

func TestDetectAnomalies_OrderCountIQR(t *testing.T) {
	stores := []domain.StoreMetrics{
		mustStore(t, "a", 100, 1000, 100, 5, 5),
		mustStore(t, "b", 105, 1000, 100, 5, 5),
		mustStore(t, "c", 95, 1000, 100, 5, 5),
		mustStore(t, "d", 110, 1000, 100, 5, 5),
		mustStore(t, "e", 2000, 1000, 100, 5, 5), // far above the upper fence
	}
	report := detectAnomalies(DefaultConfig(), stores)

	require.Len(t, report.OrderCount, 1)
	assert.Equal(t, "e", report.OrderCount[0].StoreName)
	assert.Equal(t, SeverityMedium, report.OrderCount[0].Severity)
	assert.Contains(t, report.OrderCount[0].Message, "above")
}

func TestDetectAnomalies_HighSeverityRateBreach(t *testing.T) {
	stores := []domain.StoreMetrics{
		mustStore(t, "burner", 10, 1000, 50, 28, 33),
	}
	report := detectAnomalies(DefaultConfig(), stores)

	require.Len(t, report.HighMarketing, 1)
	assert.Equal(t, SeverityHigh, report.HighMarketing[0].Severity, "rate 28 > 25 escalates")
	require.Len(t, report.HighDelivery, 1)
	assert.Equal(t, SeverityHigh, report.HighDelivery[0].Severity, "rate 33 > 30 escalates")
}

func TestDetectAnomalies_AlternateThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarketingRateWarn = 4.0

	report := detectAnomalies(cfg, scenarioStores(t))

	assert.Len(t, report.HighMarketing, 2, "both stores breach the lowered threshold")
	assert.Equal(t, 2, report.TotalAnomalyStores)
}

func TestDetectAnomalies_Empty(t *testing.T) {
	report := detectAnomalies(DefaultConfig(), nil)

	assert.Empty(t, report.ProfitMargin)
	assert.Empty(t, report.OrderCount)
	assert.Empty(t, report.HighMarketing)
	assert.Empty(t, report.HighDelivery)
	assert.Equal(t, 0, report.TotalAnomalyStores)
}
