package insights

import "time"

// Severity grades how far an anomalous store is past its threshold.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Priority orders recommendations by urgency.
type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PriorityGeneral   Priority = "general"
)

// AnomalyRecord flags one store under one detector. Records are never
// mutated after creation.
type AnomalyRecord struct {
	StoreName string   `json:"store_name"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// AnomalyReport unions the three sub-detectors by category. A store can
// appear in more than one category.
type AnomalyReport struct {
	ProfitMargin       []AnomalyRecord `json:"profit_margin"`
	OrderCount         []AnomalyRecord `json:"order_count"`
	HighMarketing      []AnomalyRecord `json:"high_marketing"`
	HighDelivery       []AnomalyRecord `json:"high_delivery"`
	TotalAnomalyStores int             `json:"total_anomaly_stores"`
	Summary            string          `json:"summary"`
}

// TierAverages aggregates the metrics of a cluster's members. ProfitMargin
// is revenue-weighted; the rest are plain means.
type TierAverages struct {
	OrderCount        float64 `json:"order_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	ProfitMargin      float64 `json:"profit_margin"`
	AOV               float64 `json:"aov"`
	MarketingCostRate float64 `json:"marketing_cost_rate"`
	DeliveryCostRate  float64 `json:"delivery_cost_rate"`
}

// ClusterGroup describes one performance tier. Members lists every store in
// the tier for downstream consumers; it is not serialized.
type ClusterGroup struct {
	Count           int          `json:"count"`
	Percentage      float64      `json:"percentage"`
	AvgMetrics      TierAverages `json:"avg_metrics"`
	TopStores       []string     `json:"top_stores"`
	Characteristics string       `json:"characteristics"`
	Members         []string     `json:"-"`
}

// Clusters holds the three performance tiers. All three are always present,
// possibly empty.
type Clusters struct {
	High    ClusterGroup `json:"high_performance"`
	Medium  ClusterGroup `json:"medium_performance"`
	Low     ClusterGroup `json:"low_performance"`
	Summary string       `json:"summary"`
}

// FieldGaps holds average(top) - average(bottom) per compared field.
type FieldGaps struct {
	ProfitMargin      float64 `json:"profit_margin"`
	AOV               float64 `json:"aov"`
	MarketingCostRate float64 `json:"marketing_cost_rate"`
	DeliveryCostRate  float64 `json:"delivery_cost_rate"`
}

// HeadTailReport contrasts the best and worst performers by profit margin.
// Top and Bottom are always disjoint; Bottom is empty when there are three
// stores or fewer.
type HeadTailReport struct {
	TopStores    []string  `json:"top_stores"`
	BottomStores []string  `json:"bottom_stores"`
	Gaps         FieldGaps `json:"gaps"`
	Summary      string    `json:"summary"`
}

// FactorCorrelation is one candidate profitability driver. LowConfidence is
// set when either vector had zero variance and r was pinned to 0.
type FactorCorrelation struct {
	Factor        string  `json:"factor"`
	Correlation   float64 `json:"correlation"`
	LowConfidence bool    `json:"low_confidence"`
}

// AttributionReport correlates profit margin against candidate drivers.
type AttributionReport struct {
	Factors       []FactorCorrelation `json:"factors"`
	PrimaryFactor string              `json:"primary_factor"`
	Summary       string              `json:"summary"`
}

// StoreTrend is one store's period-over-period movement.
type StoreTrend struct {
	StoreName     string  `json:"store_name"`
	RevenueChange float64 `json:"revenue_change"`
	ProfitChange  float64 `json:"profit_change"`
}

// TrendReport buckets stores into growing and declining. DecliningStores
// carries the full declining membership for the recommendation rules.
type TrendReport struct {
	GrowingCount    int          `json:"growing_count"`
	DecliningCount  int          `json:"declining_count"`
	TopGrowing      []StoreTrend `json:"top_growing"`
	TopDeclining    []StoreTrend `json:"top_declining"`
	Summary         string       `json:"summary"`
	DecliningStores []string     `json:"-"`
}

// HealthScore is one store's composite 0-100 score with its sub-scores.
type HealthScore struct {
	StoreName   string  `json:"store_name"`
	HealthScore float64 `json:"health_score"`
	PMScore     float64 `json:"pm_score"`
	OCScore     float64 `json:"oc_score"`
	MCScore     float64 `json:"mc_score"`
	DCScore     float64 `json:"dc_score"`
}

// HealthDistribution counts stores per score band.
type HealthDistribution struct {
	Excellent int `json:"excellent"` // >= 80
	Good      int `json:"good"`      // [60, 80)
	Average   int `json:"average"`   // [40, 60)
	Poor      int `json:"poor"`      // < 40
}

// HealthReport scores every store and summarizes the distribution.
type HealthReport struct {
	Scores       []HealthScore      `json:"scores"`
	Distribution HealthDistribution `json:"distribution"`
	AverageScore float64            `json:"average_score"`
	Summary      string             `json:"summary"`
}

// TierRateComparison contrasts cost rates between the high and low
// performance clusters.
type TierRateComparison struct {
	HighMarketingRate float64 `json:"high_marketing_rate"`
	HighDeliveryRate  float64 `json:"high_delivery_rate"`
	LowMarketingRate  float64 `json:"low_marketing_rate"`
	LowDeliveryRate   float64 `json:"low_delivery_rate"`
}

// CostReport aggregates fleet-wide cost composition.
type CostReport struct {
	TotalMarketingCost float64            `json:"total_marketing_cost"`
	TotalDeliveryCost  float64            `json:"total_delivery_cost"`
	MarketingRatio     float64            `json:"marketing_ratio"` // % of total revenue
	DeliveryRatio      float64            `json:"delivery_ratio"`  // % of total revenue
	MarketingRateStats Descriptive        `json:"marketing_rate_stats"`
	DeliveryRateStats  Descriptive        `json:"delivery_rate_stats"`
	HighMarketing      []string           `json:"high_marketing_stores"`
	HighDelivery       []string           `json:"high_delivery_stores"`
	Comparison         TierRateComparison `json:"comparison"`
	Summary            string             `json:"summary"`
}

// Recommendation is one prioritized, actionable suggestion.
type Recommendation struct {
	Priority       Priority `json:"priority"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ActionItems    []string `json:"action_items"`
	AffectedStores []string `json:"affected_stores"`
}

// Overview summarizes the whole fleet.
type Overview struct {
	StoreCount     int         `json:"store_count"`
	TotalOrders    int         `json:"total_orders"`
	TotalRevenue   float64     `json:"total_revenue"`
	TotalProfit    float64     `json:"total_profit"`
	WeightedMargin float64     `json:"weighted_margin"` // % from summed totals
	MarginStats    Descriptive `json:"margin_stats"`
	Summary        string      `json:"summary"`
}

// Report is the aggregate analysis result for one call. Trend is nil when
// no comparison dataset was supplied. Constructed fresh per call; never
// persisted.
type Report struct {
	Overview        Overview         `json:"overview"`
	Clusters        Clusters         `json:"clusters"`
	Anomalies       AnomalyReport    `json:"anomalies"`
	HeadTail        HeadTailReport   `json:"head_tail"`
	Attribution     AttributionReport `json:"attribution"`
	Trend           *TrendReport     `json:"trend,omitempty"`
	Health          HealthReport     `json:"health"`
	CostStructure   CostReport       `json:"cost_structure"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
