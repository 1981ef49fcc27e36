package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverviewSummary_Bands(t *testing.T) {
	tests := []struct {
		name   string
		margin float64
		want   string
	}{
		{"healthy", 27.5, "healthy"},
		{"boundary healthy", 25.0, "healthy"},
		{"average", 18.0, "average"},
		{"boundary average", 15.0, "average"},
		{"needs attention", 9.0, "needs attention"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Overview{StoreCount: 5, TotalRevenue: 100000, WeightedMargin: tt.margin}
			assert.Contains(t, overviewSummary(o), tt.want)
		})
	}
}

func TestSummaries_EmptyStates(t *testing.T) {
	assert.Contains(t, overviewSummary(Overview{}), "No store data")
	assert.Contains(t, clusterSummary(Clusters{}), "No stores")
	assert.Contains(t, anomalySummary(AnomalyReport{}), "No anomalous")
	assert.Contains(t, headTailSummary(HeadTailReport{}), "Too few")
	assert.Contains(t, trendSummary(&TrendReport{}), "No comparison")
	assert.Contains(t, healthSummary(HealthReport{}), "No stores")
	assert.Contains(t, costSummary(CostReport{}), "No cost data")
}

func TestSummaries_ArePure(t *testing.T) {
	report := HeadTailReport{
		TopStores:    []string{"a"},
		BottomStores: []string{"b"},
		Gaps:         FieldGaps{ProfitMargin: 12.5, AOV: 40},
	}
	assert.Equal(t, headTailSummary(report), headTailSummary(report))
}
