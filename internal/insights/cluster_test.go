package insights

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storepulse/storepulse/internal/domain"
)

func TestClusterStores_PartitionIsExact(t *testing.T) {
	stores := fixtureStores(t)
	clusters := clusterStores(stores)

	assert.Equal(t, len(stores), clusters.High.Count+clusters.Medium.Count+clusters.Low.Count)

	seen := map[string]int{}
	for _, g := range []ClusterGroup{clusters.High, clusters.Medium, clusters.Low} {
		for _, name := range g.Members {
			seen[name]++
		}
	}
	for _, s := range stores {
		assert.Equal(t, 1, seen[s.StoreName], "store %s must appear in exactly one tier", s.StoreName)
	}
}

func TestClusterStores_BoundariesFavorHigherTier(t *testing.T) {
	// margins 10/20/30/40: p25=17.5, p75=32.5
	stores := []domain.StoreMetrics{
		mustStore(t, "w", 10, 1000, 100, 5, 5),
		mustStore(t, "x", 10, 1000, 200, 5, 5),
		mustStore(t, "y", 10, 1000, 300, 5, 5),
		mustStore(t, "z", 10, 1000, 400, 5, 5),
	}
	clusters := clusterStores(stores)

	assert.Equal(t, []string{"z"}, clusters.High.Members)
	assert.ElementsMatch(t, []string{"x", "y"}, clusters.Medium.Members)
	assert.Equal(t, []string{"w"}, clusters.Low.Members)
}

func TestClusterStores_SingleStoreGoesHigh(t *testing.T) {
	clusters := clusterStores([]domain.StoreMetrics{mustStore(t, "solo", 10, 1000, 150, 5, 5)})

	assert.Equal(t, 1, clusters.High.Count)
	assert.Equal(t, 0, clusters.Medium.Count)
	assert.Equal(t, 0, clusters.Low.Count)
	assert.Equal(t, 100.0, clusters.High.Percentage)
}

func TestClusterStores_Empty(t *testing.T) {
	clusters := clusterStores(nil)

	assert.Equal(t, 0, clusters.High.Count)
	assert.Equal(t, 0, clusters.Medium.Count)
	assert.Equal(t, 0, clusters.Low.Count)
	assert.Empty(t, clusters.High.TopStores)
}

func TestClusterStores_TopStoresByRevenueThenName(t *testing.T) {
	// identical margins so everything lands in one tier
	stores := []domain.StoreMetrics{
		mustStore(t, "beta", 10, 5000, 1000, 5, 5),
		mustStore(t, "alpha", 10, 5000, 1000, 5, 5),
		mustStore(t, "gamma", 10, 9000, 1800, 5, 5),
		mustStore(t, "delta", 10, 1000, 200, 5, 5),
	}
	clusters := clusterStores(stores)

	assert.Equal(t, []string{"gamma", "alpha", "beta"}, clusters.High.TopStores)
}

func TestClusterStores_WeightedTierMargin(t *testing.T) {
	stores := fixtureStores(t)
	clusters := clusterStores(stores)

	for _, g := range []ClusterGroup{clusters.High, clusters.Medium, clusters.Low} {
		if g.Count == 0 {
			continue
		}
		var profit, revenue float64
		index := map[string]domain.StoreMetrics{}
		for _, s := range stores {
			index[s.StoreName] = s
		}
		members := append([]string{}, g.Members...)
		sort.Strings(members)
		for _, name := range members {
			profit += index[name].TotalProfit
			revenue += index[name].TotalRevenue
		}
		assert.InDelta(t, profit/revenue*100, g.AvgMetrics.ProfitMargin, 1e-9)
	}
}
