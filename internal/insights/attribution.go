package insights

import (
	"math"

	"github.com/storepulse/storepulse/internal/domain"
)

// factorNames in declaration order; the order breaks primary-factor ties.
var factorNames = []string{"aov", "marketing_cost_rate", "delivery_cost_rate"}

// attributeProfitability correlates profit margin against each candidate
// driver. Zero variance in either vector pins the correlation to 0 and
// flags the result low-confidence instead of propagating NaN.
func attributeProfitability(stores []domain.StoreMetrics) AttributionReport {
	margins := make([]float64, len(stores))
	factors := map[string][]float64{
		"aov":                 make([]float64, len(stores)),
		"marketing_cost_rate": make([]float64, len(stores)),
		"delivery_cost_rate":  make([]float64, len(stores)),
	}
	for i, s := range stores {
		margins[i] = s.ProfitMargin
		factors["aov"][i] = s.AOV
		factors["marketing_cost_rate"][i] = s.MarketingCostRate
		factors["delivery_cost_rate"][i] = s.DeliveryCostRate
	}

	report := AttributionReport{Factors: make([]FactorCorrelation, 0, len(factorNames))}
	best := -1.0
	for _, name := range factorNames {
		r, ok := pearson(margins, factors[name])
		fc := FactorCorrelation{Factor: name, Correlation: r, LowConfidence: !ok}
		report.Factors = append(report.Factors, fc)
		if math.Abs(r) > best {
			best = math.Abs(r)
			report.PrimaryFactor = name
		}
	}
	report.Summary = attributionSummary(report)
	return report
}

// pearson returns the Pearson correlation coefficient of x and y. The
// second return is false when either vector has zero variance, in which
// case r is 0 by definition here.
func pearson(x, y []float64) (float64, bool) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, false
	}
	mx := mean(x)
	my := mean(y)

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
