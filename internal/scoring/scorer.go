package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/grant-scout/internal/types"
)

// Inputs carries the pre-resolved enrichment facts consumed by one scoring
// invocation. Everything the scorer needs arrives here; the scorer itself
// performs no I/O, reads no clock, and uses no randomness, so identical
// inputs always produce identical output.
type Inputs struct {
	// Flags records which enrichment bundles were available.
	Flags types.EnrichmentFlags
	// TypicalGrantSize is the foundation's historical median grant amount,
	// zero when no grant pattern was resolved.
	TypicalGrantSize float64
	// GrantCount is the number of documented historical grants.
	GrantCount int
	// DataYear is the filing year of the candidate's bulk-file record.
	DataYear int
	// AsOfYear anchors the timing dimension; callers pass the current year.
	AsOfYear int
}

// dimensionLabels provides human-readable names for strength/concern text.
var dimensionLabels = map[string]string{
	types.DimMissionAlignment:    "Mission alignment",
	types.DimGeographicFit:       "Geographic fit",
	types.DimFinancialMatch:      "Financial match",
	types.DimGrantMakingCapacity: "Grant-making capacity",
	types.DimEligibility:         "Eligibility",
	types.DimTiming:              "Timing",
}

const (
	strengthFloor = 0.8
	concernCeil   = 0.4
)

// Score computes one scoring snapshot for a candidate against a profile at
// the given workflow stage. The returned snapshot carries no ID or
// timestamp; the snapshot store stamps those on append so the score content
// stays a pure function of its inputs.
func Score(candidate *types.Candidate, profile *types.Profile, stage types.Stage, in Inputs, cfg Config) (*types.ScoreSnapshot, error) {
	if candidate == nil || profile == nil {
		return nil, &ConfigError{Message: "candidate and profile are required"}
	}
	if !stage.Valid() {
		return nil, &ConfigError{Message: fmt.Sprintf("unknown workflow stage %q", stage)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw := map[string]float64{
		types.DimMissionAlignment:    computeMissionAlignment(candidate, profile),
		types.DimGeographicFit:       computeGeographicFit(candidate, profile),
		types.DimFinancialMatch:      computeFinancialMatch(profile, in.TypicalGrantSize),
		types.DimGrantMakingCapacity: computeGrantMakingCapacity(candidate, in.GrantCount),
		types.DimEligibility:         computeEligibility(candidate, profile),
		types.DimTiming:              computeTiming(in.DataYear, in.AsOfYear),
	}

	boosts := activeBoosts(stage, in.Flags, cfg)

	composite := 0.0
	dims := make([]types.DimensionScore, 0, len(types.Dimensions))
	for _, name := range types.Dimensions {
		weight := cfg.Weights[name]
		boost := boosts[name]
		if boost < 1.0 {
			boost = 1.0
		}
		contribution := raw[name] * weight * boost
		composite += contribution
		dims = append(dims, types.DimensionScore{
			Dimension:    name,
			Raw:          raw[name],
			Weight:       weight,
			Boost:        boost,
			Contribution: contribution,
		})
	}
	composite = clamp01(composite)

	// Out-of-scope geography never auto-qualifies, however strong the
	// other dimensions are.
	if raw[types.DimGeographicFit] == 0 && cfg.Weights[types.DimGeographicFit] > 0 && composite > cfg.OutOfScopeCap {
		composite = cfg.OutOfScopeCap
	}

	snapshot := &types.ScoreSnapshot{
		CandidateEIN: candidate.EIN,
		ProfileID:    profile.ID,
		Stage:        stage,
		Composite:    composite,
		Confidence:   computeConfidence(stage, in.Flags, cfg),
		Dimensions:   dims,
		Proceed:      composite >= cfg.ProceedScore,
	}
	snapshot.Strengths, snapshot.Concerns = deriveFindings(raw)
	return snapshot, nil
}

// activeBoosts returns the boost multiplier per dimension for the given
// stage and enrichment availability. A flag only boosts once its stage gate
// is open; multiple corroborating flags on the same dimension compound.
func activeBoosts(stage types.Stage, flags types.EnrichmentFlags, cfg Config) map[string]float64 {
	enabled := map[string]bool{
		"financial_data":  flags.FinancialData,
		"historical_data": flags.HistoricalData,
		"network_data":    flags.NetworkData,
		"risk_assessment": flags.RiskAssessment,
	}

	boosts := make(map[string]float64, len(types.Dimensions))
	for flag, on := range enabled {
		if !on || stage.Rank() < flagStageGate[flag] {
			continue
		}
		for _, dim := range flagDimensions[flag] {
			if boosts[dim] == 0 {
				boosts[dim] = 1.0
			}
			boosts[dim] *= cfg.BoostFactor
		}
	}
	return boosts
}

// computeConfidence starts from the stage's base confidence and increases
// monotonically with each available enrichment flag. More corroborating
// data never lowers confidence.
func computeConfidence(stage types.Stage, flags types.EnrichmentFlags, cfg Config) float64 {
	base := stageBaseConfidence[stage]
	return clamp01(base + cfg.ConfidenceStep*float64(flags.Count()))
}

// deriveFindings converts raw dimension scores into strength and concern
// text: >= 0.8 is a strength, < 0.4 a concern.
func deriveFindings(raw map[string]float64) (strengths, concerns []string) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		label := dimensionLabels[name]
		switch {
		case raw[name] >= strengthFloor:
			strengths = append(strengths, fmt.Sprintf("%s is strong (%.2f)", label, raw[name]))
		case raw[name] < concernCeil:
			concerns = append(concerns, fmt.Sprintf("%s is weak (%.2f)", label, raw[name]))
		}
	}
	return strengths, concerns
}

// Summary renders a one-line description of a snapshot for logs and verbose
// output.
func Summary(s *types.ScoreSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "composite %.3f confidence %.2f stage %s", s.Composite, s.Confidence, s.Stage)
	if s.Tier != "" {
		fmt.Fprintf(&sb, " tier %s", s.Tier)
	}
	return sb.String()
}
