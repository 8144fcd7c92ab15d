package scoring

import (
	"testing"

	"github.com/jonathan/grant-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidate() *types.Candidate {
	return &types.Candidate{
		EIN:            "541234567",
		Name:           "Blue Ridge Community Foundation",
		City:           "Richmond",
		State:          "VA",
		NTEECode:       "P20",
		FoundationCode: "03",
		Revenue:        floatPtr(500000),
	}
}

func testProfile() *types.Profile {
	return &types.Profile{
		ID:         "profile-001",
		Name:       "Valley Youth Services",
		Mission:    "Supporting family and community services for rural youth.",
		FocusAreas: []string{"human services", "youth development"},
		NTEECodes:  []string{"P20", "O"},
		States:     []string{"VA"},
		MinAmount:  10000,
		MaxAmount:  100000,
	}
}

func testInputs() Inputs {
	return Inputs{
		TypicalGrantSize: 25000,
		GrantCount:       10,
		DataYear:         2024,
		AsOfYear:         2025,
	}
}

func TestScore_CompositeInRange(t *testing.T) {
	snap, err := Score(testCandidate(), testProfile(), types.StageDiscover, testInputs(), DefaultConfig())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, snap.Composite, 0.0)
	assert.LessOrEqual(t, snap.Composite, 1.0)
	assert.GreaterOrEqual(t, snap.Confidence, 0.0)
	assert.LessOrEqual(t, snap.Confidence, 1.0)
	assert.Len(t, snap.Dimensions, 6)
}

func TestScore_Deterministic(t *testing.T) {
	a, err := Score(testCandidate(), testProfile(), types.StageAnalyze, testInputs(), DefaultConfig())
	require.NoError(t, err)
	b, err := Score(testCandidate(), testProfile(), types.StageAnalyze, testInputs(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestScore_BoostNeverDecreases(t *testing.T) {
	in := testInputs()

	unboosted, err := Score(testCandidate(), testProfile(), types.StageApproach, in, DefaultConfig())
	require.NoError(t, err)

	in.Flags = types.EnrichmentFlags{
		FinancialData:  true,
		HistoricalData: true,
		NetworkData:    true,
		RiskAssessment: true,
	}
	boosted, err := Score(testCandidate(), testProfile(), types.StageApproach, in, DefaultConfig())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, boosted.Composite, unboosted.Composite)
	assert.GreaterOrEqual(t, boosted.Confidence, unboosted.Confidence)
	for _, dim := range boosted.Dimensions {
		assert.GreaterOrEqual(t, dim.Boost, 1.0, "boost for %s must never reduce a score", dim.Dimension)
	}
}

func TestScore_StageGatesBoosts(t *testing.T) {
	in := testInputs()
	in.Flags = types.EnrichmentFlags{NetworkData: true}

	// Network data only boosts from the examine stage on.
	early, err := Score(testCandidate(), testProfile(), types.StagePlan, in, DefaultConfig())
	require.NoError(t, err)
	for _, dim := range early.Dimensions {
		assert.Equal(t, 1.0, dim.Boost, "no boost expected at plan stage for %s", dim.Dimension)
	}

	late, err := Score(testCandidate(), testProfile(), types.StageExamine, in, DefaultConfig())
	require.NoError(t, err)
	assert.Greater(t, late.Dimension(types.DimMissionAlignment).Boost, 1.0)
}

func TestScore_ConfidenceMonotonicInFlags(t *testing.T) {
	in := testInputs()
	prev := -1.0
	flagSets := []types.EnrichmentFlags{
		{},
		{FinancialData: true},
		{FinancialData: true, HistoricalData: true},
		{FinancialData: true, HistoricalData: true, NetworkData: true},
		{FinancialData: true, HistoricalData: true, NetworkData: true, RiskAssessment: true},
	}
	for _, flags := range flagSets {
		in.Flags = flags
		snap, err := Score(testCandidate(), testProfile(), types.StagePlan, in, DefaultConfig())
		require.NoError(t, err)
		assert.Greater(t, snap.Confidence, prev)
		prev = snap.Confidence
	}
}

func TestScore_OutOfScopeGeographyCapped(t *testing.T) {
	candidate := testCandidate()
	candidate.State = "CA" // outside scope, outside region

	profile := testProfile()
	in := testInputs()
	in.Flags = types.EnrichmentFlags{FinancialData: true, HistoricalData: true}

	snap, err := Score(candidate, profile, types.StageApproach, in, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.Dimension(types.DimGeographicFit).Raw)
	assert.LessOrEqual(t, snap.Composite, DefaultConfig().OutOfScopeCap)
}

func TestScore_NoGrantHistoryRanksLower(t *testing.T) {
	in := testInputs()
	withHistory, err := Score(testCandidate(), testProfile(), types.StageDiscover, in, DefaultConfig())
	require.NoError(t, err)

	in.GrantCount = 0
	in.TypicalGrantSize = 0
	withoutHistory, err := Score(testCandidate(), testProfile(), types.StageDiscover, in, DefaultConfig())
	require.NoError(t, err)

	assert.LessOrEqual(t, withoutHistory.Dimension(types.DimGrantMakingCapacity).Raw, 0.2)
	assert.Less(t, withoutHistory.Composite, withHistory.Composite)
}

func TestScore_StrengthsAndConcerns(t *testing.T) {
	snap, err := Score(testCandidate(), testProfile(), types.StageDiscover, testInputs(), DefaultConfig())
	require.NoError(t, err)

	for _, dim := range snap.Dimensions {
		if dim.Raw >= strengthFloor {
			assert.NotEmpty(t, snap.Strengths)
		}
		if dim.Raw < concernCeil {
			assert.NotEmpty(t, snap.Concerns)
		}
	}
}

func TestScore_InvalidStage(t *testing.T) {
	_, err := Score(testCandidate(), testProfile(), types.Stage("triage"), testInputs(), DefaultConfig())
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestScore_InvalidWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights[types.DimTiming] = 0.5 // breaks the sum

	_, err := Score(testCandidate(), testProfile(), types.StageDiscover, testInputs(), cfg)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.BoostFactor = 0.9
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	delete(cfg.Weights, types.DimTiming)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Weights["unknown_dimension"] = 0.0
	assert.Error(t, cfg.Validate())
}

func TestDefaultConfig_WeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range DefaultConfig().Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
