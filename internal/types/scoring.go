package types

import (
	"time"

	"github.com/google/uuid"
)

// Dimension names for the six canonical scoring dimensions.
const (
	DimMissionAlignment    = "mission_alignment"
	DimGeographicFit       = "geographic_fit"
	DimFinancialMatch      = "financial_match"
	DimGrantMakingCapacity = "grant_making_capacity"
	DimEligibility         = "eligibility"
	DimTiming              = "timing"
)

// Dimensions lists the canonical dimensions in stable order.
var Dimensions = []string{
	DimMissionAlignment,
	DimGeographicFit,
	DimFinancialMatch,
	DimGrantMakingCapacity,
	DimEligibility,
	DimTiming,
}

// Stage represents the workflow depth at which a candidate is scored.
// Later stages progressively enable more enrichment boosts.
type Stage string

const (
	StageDiscover Stage = "discover"
	StagePlan     Stage = "plan"
	StageAnalyze  Stage = "analyze"
	StageExamine  Stage = "examine"
	StageApproach Stage = "approach"
)

// Stages lists workflow stages in progression order.
var Stages = []Stage{StageDiscover, StagePlan, StageAnalyze, StageExamine, StageApproach}

// Rank returns the stage's position in the workflow progression, or -1 for
// an unknown stage.
func (s Stage) Rank() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the stage is one of the five workflow stages.
func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

// EnrichmentFlags records which enrichment bundles arrived pre-resolved for
// a scoring invocation. Each true flag substantiates one or more dimensions.
type EnrichmentFlags struct {
	FinancialData  bool `json:"financial_data"`
	NetworkData    bool `json:"network_data"`
	HistoricalData bool `json:"historical_data"`
	RiskAssessment bool `json:"risk_assessment"`
}

// Count returns the number of enrichment flags that are set.
func (f EnrichmentFlags) Count() int {
	n := 0
	for _, b := range []bool{f.FinancialData, f.NetworkData, f.HistoricalData, f.RiskAssessment} {
		if b {
			n++
		}
	}
	return n
}

// DimensionScore is one dimension's contribution to a scoring snapshot.
// Raw is in [0,1]; Boost is >= 1.0 and never reduces the contribution.
type DimensionScore struct {
	Dimension    string  `json:"dimension"`
	Raw          float64 `json:"raw"`
	Weight       float64 `json:"weight"`
	Boost        float64 `json:"boost"`
	Contribution float64 `json:"contribution"`
}

// ScoreSnapshot is one append-only scoring result for a (candidate, profile)
// pair at a workflow stage. A later stage never overwrites an earlier
// snapshot; ID and CreatedAt are stamped by the snapshot store, not the
// scorer, so identical inputs produce identical score content.
type ScoreSnapshot struct {
	ID           uuid.UUID        `json:"id,omitempty"`
	CandidateEIN string           `json:"candidate_ein"`
	ProfileID    string           `json:"profile_id"`
	Stage        Stage            `json:"stage"`
	Composite    float64          `json:"composite"`
	Confidence   float64          `json:"confidence"`
	Dimensions   []DimensionScore `json:"dimensions"`
	Strengths    []string         `json:"strengths,omitempty"`
	Concerns     []string         `json:"concerns,omitempty"`
	Proceed      bool             `json:"proceed"`
	Tier         string           `json:"tier,omitempty"`
	CreatedAt    time.Time        `json:"created_at,omitempty"`
}

// Dimension returns the named dimension score, or nil when absent.
func (s *ScoreSnapshot) Dimension(name string) *DimensionScore {
	for i := range s.Dimensions {
		if s.Dimensions[i].Dimension == name {
			return &s.Dimensions[i]
		}
	}
	return nil
}
