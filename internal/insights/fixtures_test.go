package insights

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain"
)

// mustStore builds a validated record or fails the test.
func mustStore(t *testing.T, name string, orders int, revenue, profit, marketingRate, deliveryRate float64) domain.StoreMetrics {
	t.Helper()
	m, err := domain.NewStoreMetrics(name, orders, revenue, profit, marketingRate, deliveryRate)
	require.NoError(t, err)
	return m
}

// fixtureStores is a small fleet with a clear spread: two strong stores,
// one mid-pack, one weak with heavy cost rates.
func fixtureStores(t *testing.T) []domain.StoreMetrics {
	t.Helper()
	return []domain.StoreMetrics{
		mustStore(t, "downtown", 500, 50000, 15000, 6, 9),
		mustStore(t, "harbor", 420, 42000, 11000, 8, 10),
		mustStore(t, "midtown", 300, 24000, 4000, 12, 14),
		mustStore(t, "outskirts", 80, 6000, 200, 22, 27),
	}
}

// scenarioStores is the two-store dataset from the acceptance scenarios:
// A margin 30 with low cost rates, B margin 5 breaching both rate
// thresholds.
func scenarioStores(t *testing.T) []domain.StoreMetrics {
	t.Helper()
	return []domain.StoreMetrics{
		mustStore(t, "A", 100, 1000, 300, 5, 8),
		mustStore(t, "B", 10, 1000, 50, 20, 25),
	}
}
