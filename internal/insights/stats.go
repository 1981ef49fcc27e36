package insights

import (
	"math"
	"sort"
)

// Descriptive holds the standard descriptive statistics over one metric
// across all stores. An empty input yields the zero value: "no data" is a
// valid state, not an error.
type Descriptive struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"` // population standard deviation
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// Describe computes descriptive statistics over values. A single value
// yields all percentiles equal to it and std 0.
func Describe(values []float64) Descriptive {
	if len(values) == 0 {
		return Descriptive{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	variance := 0.0
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	return Descriptive{
		Mean:   mean,
		Median: percentile(sorted, 0.50),
		Std:    math.Sqrt(variance),
		P25:    percentile(sorted, 0.25),
		P50:    percentile(sorted, 0.50),
		P75:    percentile(sorted, 0.75),
		P90:    percentile(sorted, 0.90),
	}
}

// WeightedRatio computes a ratio from summed numerators and denominators
// across a group, expressed as a percentage. Never an average of per-member
// ratios.
func WeightedRatio(numeratorSum, denominatorSum float64) float64 {
	if denominatorSum <= 0 {
		return 0
	}
	return numeratorSum / denominatorSum * 100
}

// percentile computes the p-th quantile of a sorted slice using linear
// interpolation between adjacent ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))

	if lower == upper {
		return sorted[lower]
	}

	weight := pos - float64(lower)
	return sorted[lower]*(1.0-weight) + sorted[upper]*weight
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
