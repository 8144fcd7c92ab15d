// Package tiers classifies composite scores into discrete opportunity tiers
// and recalibrates tier cut-points from scored reference samples.
package tiers

import "fmt"

// Tier names, ordered from best to worst.
const (
	TierAutoQualified = "auto_qualified"
	TierReview        = "review"
	TierConsider      = "consider"
	TierLowPriority   = "low_priority"
	TierNoMatch       = "no_match"
)

// Order lists tiers from best to worst.
var Order = []string{TierAutoQualified, TierReview, TierConsider, TierLowPriority, TierNoMatch}

// Rank returns the tier's position in Order (0 is best), or len(Order) for
// an unknown tier name.
func Rank(tier string) int {
	for i, name := range Order {
		if name == tier {
			return i
		}
	}
	return len(Order)
}

// Thresholds holds the four tier cut-points. Cut-points must be strictly
// descending and within [0,1]; they are ideally derived as percentiles of a
// reference score distribution via Calibrate rather than fixed literals.
type Thresholds struct {
	AutoQualified float64 `json:"auto_qualified"`
	Review        float64 `json:"review"`
	Consider      float64 `json:"consider"`
	MinScore      float64 `json:"min_score"`
}

// DefaultThresholds returns the production-tuned default cut-points. Treat
// these as a starting point to be re-derived from local validation data.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoQualified: 0.85,
		Review:        0.70,
		Consider:      0.55,
		MinScore:      0.40,
	}
}

// Validate checks that the cut-points are within [0,1] and strictly
// descending. A violation is a configuration error and must abort a run
// before any candidate is scored.
func (t Thresholds) Validate() error {
	cuts := []struct {
		name  string
		value float64
	}{
		{"auto_qualified", t.AutoQualified},
		{"review", t.Review},
		{"consider", t.Consider},
		{"min_score", t.MinScore},
	}
	for _, cut := range cuts {
		if cut.value < 0 || cut.value > 1 {
			return &ConfigError{Message: fmt.Sprintf("threshold %q must be in [0,1], got %v", cut.name, cut.value)}
		}
	}
	for i := 1; i < len(cuts); i++ {
		if cuts[i].value >= cuts[i-1].value {
			return &ConfigError{Message: fmt.Sprintf(
				"thresholds must be strictly descending: %q (%v) >= %q (%v)",
				cuts[i].name, cuts[i].value, cuts[i-1].name, cuts[i-1].value)}
		}
	}
	return nil
}

// Classify maps a composite score to a tier by evaluating cut-points from
// highest to lowest and returning the first one the score meets or exceeds.
// Boundaries are inclusive.
func Classify(score float64, t Thresholds) string {
	switch {
	case score >= t.AutoQualified:
		return TierAutoQualified
	case score >= t.Review:
		return TierReview
	case score >= t.Consider:
		return TierConsider
	case score >= t.MinScore:
		return TierLowPriority
	default:
		return TierNoMatch
	}
}
