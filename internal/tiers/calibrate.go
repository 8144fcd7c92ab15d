package tiers

import (
	"fmt"
	"math"
	"sort"
)

// Percentiles selects where in a reference score distribution each cut-point
// sits. Values are in (0,100) and must be strictly descending.
type Percentiles struct {
	AutoQualified float64 `json:"auto_qualified"`
	Review        float64 `json:"review"`
	Consider      float64 `json:"consider"`
	MinScore      float64 `json:"min_score"`
}

// DefaultPercentiles returns the percentile positions used to derive the
// default thresholds from a scored sample.
func DefaultPercentiles() Percentiles {
	return Percentiles{
		AutoQualified: 90,
		Review:        75,
		Consider:      55,
		MinScore:      35,
	}
}

// Calibrate recomputes tier cut-points from a fresh scored sample so that
// thresholds track the live score distribution instead of assuming any
// numeric literal stays meaningful. At least 10 scores are required for the
// percentiles to be stable enough to act on.
func Calibrate(scores []float64, p Percentiles) (Thresholds, error) {
	if len(scores) < 10 {
		return Thresholds{}, &ConfigError{Message: fmt.Sprintf("calibration needs at least 10 scores, got %d", len(scores))}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	for _, s := range sorted {
		if s < 0 || s > 1 {
			return Thresholds{}, &ConfigError{Message: fmt.Sprintf("calibration sample contains out-of-range score %v", s)}
		}
	}

	t := Thresholds{
		AutoQualified: percentile(sorted, p.AutoQualified),
		Review:        percentile(sorted, p.Review),
		Consider:      percentile(sorted, p.Consider),
		MinScore:      percentile(sorted, p.MinScore),
	}

	// Heavily tied samples can collapse adjacent cut-points; nudge them
	// apart so the ladder stays strictly descending.
	const sep = 1e-6
	if t.Review >= t.AutoQualified {
		t.Review = t.AutoQualified - sep
	}
	if t.Consider >= t.Review {
		t.Consider = t.Review - sep
	}
	if t.MinScore >= t.Consider {
		t.MinScore = t.Consider - sep
	}
	if t.MinScore < 0 {
		return Thresholds{}, &ConfigError{Message: "calibration sample too degenerate to separate cut-points"}
	}

	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// percentile returns the linearly interpolated p-th percentile of a sorted
// sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
