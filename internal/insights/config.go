package insights

// Config contains the thresholds and weights driving the analysis engine.
// A Config is immutable once handed to an Engine; tests run with alternate
// thresholds by building their own instead of mutating package state.
type Config struct {
	// Anomaly detection
	ZScoreFlag        float64 `yaml:"z_score_flag"`        // 2.0 - |z| above this flags a margin outlier
	ZScoreHigh        float64 `yaml:"z_score_high"`        // 3.0 - |z| above this is high severity
	IQRMultiplier     float64 `yaml:"iqr_multiplier"`      // 1.5 - outlier fence multiplier on order count
	MarketingRateWarn float64 `yaml:"marketing_rate_warn"` // 15.0 - marketing cost rate % flag threshold
	MarketingRateHigh float64 `yaml:"marketing_rate_high"` // 25.0 - high severity threshold
	DeliveryRateWarn  float64 `yaml:"delivery_rate_warn"`  // 20.0 - delivery cost rate % flag threshold
	DeliveryRateHigh  float64 `yaml:"delivery_rate_high"`  // 30.0 - high severity threshold

	// Health score weights (must sum to 1.0)
	MarginWeight    float64 `yaml:"margin_weight"`    // 0.4
	OrderWeight     float64 `yaml:"order_weight"`     // 0.2
	MarketingWeight float64 `yaml:"marketing_weight"` // 0.2
	DeliveryWeight  float64 `yaml:"delivery_weight"`  // 0.2

	// Recommendation rules
	StrongCorrelation float64 `yaml:"strong_correlation"` // 0.5 - |r| for a factor recommendation
	DecliningShare    float64 `yaml:"declining_share"`    // 0.5 - declining store share for a trend recommendation
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() *Config {
	return &Config{
		ZScoreFlag:        2.0,
		ZScoreHigh:        3.0,
		IQRMultiplier:     1.5,
		MarketingRateWarn: 15.0,
		MarketingRateHigh: 25.0,
		DeliveryRateWarn:  20.0,
		DeliveryRateHigh:  30.0,

		MarginWeight:    0.4,
		OrderWeight:     0.2,
		MarketingWeight: 0.2,
		DeliveryWeight:  0.2,

		StrongCorrelation: 0.5,
		DecliningShare:    0.5,
	}
}
