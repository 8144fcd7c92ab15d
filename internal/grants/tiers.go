package grants

import "sort"

// Size tiers bucketed by within-foundation amount percentile.
const (
	TierMajor       = "major"       // top 20% by amount
	TierSignificant = "significant" // next 30%
	TierModerate    = "moderate"    // next 30%
	TierSmall       = "small"       // bottom 20%
)

// SizeTiers lists tiers from largest to smallest.
var SizeTiers = []string{TierMajor, TierSignificant, TierModerate, TierSmall}

// AssignSizeTier returns the tier for one amount given the foundation's
// full amount distribution. Centralized here so batch discovery, single
// lookups, and offline calibration all bucket identically.
func AssignSizeTier(amount float64, amounts []float64) string {
	if len(amounts) == 0 {
		return TierModerate
	}
	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)

	// Fraction of grants at or below this amount.
	below := sort.SearchFloat64s(sorted, amount)
	// Count ties as below so equal amounts land in the same tier.
	for below < len(sorted) && sorted[below] <= amount {
		below++
	}
	pct := float64(below) / float64(len(sorted))

	switch {
	case pct > 0.8:
		return TierMajor
	case pct > 0.5:
		return TierSignificant
	case pct > 0.2:
		return TierModerate
	default:
		return TierSmall
	}
}

// tierStats holds the distribution statistics for one foundation's grants.
type tierStats struct {
	total   float64
	average float64
	median  float64
	min     float64
	max     float64
	p25     float64
	p75     float64
}

// computeTierStats summarizes an amount distribution. Grant amounts are
// heavily right-skewed, so the median rather than the mean describes the
// foundation's typical grant.
func computeTierStats(amounts []float64) tierStats {
	if len(amounts) == 0 {
		return tierStats{}
	}
	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)

	stats := tierStats{
		min:    sorted[0],
		max:    sorted[len(sorted)-1],
		median: quantile(sorted, 0.5),
		p25:    quantile(sorted, 0.25),
		p75:    quantile(sorted, 0.75),
	}
	for _, a := range sorted {
		stats.total += a
	}
	stats.average = stats.total / float64(len(sorted))
	return stats
}

// quantile returns the linearly interpolated q-quantile of a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower]*(1-frac) + sorted[lower+1]*frac
}
