package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/grant-scout/internal/types"
)

// weightSumTolerance is the allowed deviation of the weight vector from 1.0.
const weightSumTolerance = 1e-9

// Config is the immutable scoring configuration passed into every call.
// It is never mutated after validation, so a single value can be shared
// across concurrent workers and reproduced exactly for A/B parameter search.
type Config struct {
	// Weights maps each canonical dimension to its share of the composite
	// score. The vector must cover all six dimensions and sum to 1.0.
	Weights map[string]float64 `json:"weights"`

	// BoostFactor multiplies the weighted contribution of each dimension
	// substantiated by an available enrichment flag. Must be >= 1.0; boosts
	// never reduce a score.
	BoostFactor float64 `json:"boost_factor"`

	// ConfidenceStep is added to the stage base confidence once per
	// available enrichment flag.
	ConfidenceStep float64 `json:"confidence_step"`

	// ProceedScore is the minimum composite score for a positive
	// proceed recommendation.
	ProceedScore float64 `json:"proceed_score"`

	// OutOfScopeCap limits the composite score of a candidate whose
	// geographic fit is zero while geography carries weight. Out-of-scope
	// geography must never auto-qualify a candidate.
	OutOfScopeCap float64 `json:"out_of_scope_cap"`
}

// DefaultConfig returns the production-tuned scoring configuration. The
// weights and boost magnitude came out of offline calibration against
// labeled outcomes; re-derive them from your own validation data rather
// than treating them as fixed.
func DefaultConfig() Config {
	return Config{
		Weights: map[string]float64{
			types.DimGrantMakingCapacity: 0.35,
			types.DimMissionAlignment:    0.23,
			types.DimFinancialMatch:      0.16,
			types.DimGeographicFit:       0.11,
			types.DimTiming:              0.08,
			types.DimEligibility:         0.07,
		},
		BoostFactor:    1.15,
		ConfidenceStep: 0.08,
		ProceedScore:   0.55,
		OutOfScopeCap:  0.80,
	}
}

// Validate checks the configuration before any scoring starts. A weight
// vector that does not cover the six dimensions or does not sum to 1.0 is a
// fatal configuration error, as is a boost factor below 1.0.
func (c Config) Validate() error {
	if len(c.Weights) == 0 {
		return &ConfigError{Message: "weights are required"}
	}
	sum := 0.0
	for _, dim := range types.Dimensions {
		w, ok := c.Weights[dim]
		if !ok {
			return &ConfigError{Message: fmt.Sprintf("missing weight for dimension %q", dim)}
		}
		if w < 0 {
			return &ConfigError{Message: fmt.Sprintf("weight for %q must be non-negative, got %v", dim, w)}
		}
		sum += w
	}
	if len(c.Weights) != len(types.Dimensions) {
		return &ConfigError{Message: fmt.Sprintf("weights contain unknown dimensions (%d entries for %d dimensions)", len(c.Weights), len(types.Dimensions))}
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigError{Message: fmt.Sprintf("weights must sum to 1.0, got %.12f", sum)}
	}
	if c.BoostFactor < 1.0 {
		return &ConfigError{Message: fmt.Sprintf("boost factor must be >= 1.0, got %v", c.BoostFactor)}
	}
	if c.ConfidenceStep < 0 || c.ConfidenceStep > 0.25 {
		return &ConfigError{Message: fmt.Sprintf("confidence step must be in [0, 0.25], got %v", c.ConfidenceStep)}
	}
	if c.ProceedScore < 0 || c.ProceedScore > 1 {
		return &ConfigError{Message: fmt.Sprintf("proceed score must be in [0,1], got %v", c.ProceedScore)}
	}
	if c.OutOfScopeCap <= 0 || c.OutOfScopeCap > 1 {
		return &ConfigError{Message: fmt.Sprintf("out-of-scope cap must be in (0,1], got %v", c.OutOfScopeCap)}
	}
	return nil
}

// stageBaseConfidence is the confidence floor for each workflow stage.
// Deeper stages start from more accumulated evidence.
var stageBaseConfidence = map[types.Stage]float64{
	types.StageDiscover: 0.35,
	types.StagePlan:     0.45,
	types.StageAnalyze:  0.55,
	types.StageExamine:  0.65,
	types.StageApproach: 0.75,
}

// flagStageGate maps each enrichment flag to the earliest stage rank at
// which its boost applies. Discovery scores raw; each deeper stage opens
// one more boost slot.
var flagStageGate = map[string]int{
	"financial_data":  types.StagePlan.Rank(),
	"historical_data": types.StageAnalyze.Rank(),
	"network_data":    types.StageExamine.Rank(),
	"risk_assessment": types.StageApproach.Rank(),
}

// flagDimensions maps each enrichment flag to the dimensions it
// substantiates.
var flagDimensions = map[string][]string{
	"financial_data":  {types.DimFinancialMatch, types.DimGrantMakingCapacity},
	"historical_data": {types.DimGrantMakingCapacity, types.DimTiming},
	"network_data":    {types.DimMissionAlignment, types.DimEligibility},
	"risk_assessment": {types.DimEligibility},
}
