package discovery

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/grant-scout/internal/bmf"
	"github.com/jonathan/grant-scout/internal/scoring"
	"github.com/jonathan/grant-scout/internal/tiers"
	"github.com/jonathan/grant-scout/internal/types"
)

const discoveryCSV = `EIN,NAME,CITY,STATE,NTEE_CD,FOUNDATION,REVENUE_AMT,ASSET_AMT
541111111,Blue Ridge Community Foundation,Richmond,VA,P20,03,500000,2000000
541111112,Valley Education Trust,Roanoke,VA,B82,03,1200000,5000000
541111113,Chesapeake Health Fund,Baltimore,MD,E20,03,750000,3000000
541111114,Pacific Arts Council,Portland,OR,A54,15,300000,900000
541111115,Golden State Youth Services,Fresno,CA,O20,15,400000,1200000
`

func testDataset(t *testing.T) *bmf.Dataset {
	t.Helper()
	ds, err := bmf.ReadDataset(strings.NewReader(discoveryCSV), "test")
	require.NoError(t, err)
	return ds
}

func testOptions() Options {
	return Options{
		Criteria: &bmf.FilterCriteria{},
		Profile: &types.Profile{
			ID:         "profile-001",
			Name:       "Valley Youth Services",
			Mission:    "Supporting family and community services for rural youth.",
			FocusAreas: []string{"human services", "youth development"},
			NTEECodes:  []string{"P20", "O"},
			States:     []string{"VA"},
			MinAmount:  10000,
			MaxAmount:  100000,
		},
		Stage:      types.StageDiscover,
		Scoring:    scoring.DefaultConfig(),
		Thresholds: tiers.DefaultThresholds(),
		AsOfYear:   2025,
	}
}

func tenGrants() []types.GrantRecord {
	grants := make([]types.GrantRecord, 0, 10)
	purposes := []string{
		"youth community programs", "family services", "food bank support",
		"community housing", "youth mentoring", "family counseling",
		"community center", "homeless shelter", "youth recreation",
		"community outreach",
	}
	for i, purpose := range purposes {
		grants = append(grants, types.GrantRecord{
			RecipientName: purpose,
			RecipientEIN:  "900000000",
			Amount:        20000 + float64(i)*2000,
			Purpose:       purpose,
			State:         "VA",
		})
	}
	return grants
}

func TestRun_RanksAndTiers(t *testing.T) {
	opts := testOptions()
	opts.Enrichment = map[string]*types.Enrichment{
		"541111111": {Grants: tenGrants(), TaxYear: 2023, DataYear: 2024},
	}

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	require.Len(t, result.Opportunities, 5)
	assert.Equal(t, 5, result.Summary.Scored)
	assert.Equal(t, 0, result.Summary.Failed)
	assert.Equal(t, 0, result.Summary.Unprocessed)

	// Ranked by composite, descending.
	for i := 1; i < len(result.Opportunities); i++ {
		assert.GreaterOrEqual(t,
			result.Opportunities[i-1].Snapshot.Composite,
			result.Opportunities[i].Snapshot.Composite)
	}

	// Every snapshot carries a tier consistent with its composite.
	for _, op := range result.Opportunities {
		assert.Equal(t, tiers.Classify(op.Snapshot.Composite, opts.Thresholds), op.Snapshot.Tier)
	}
}

func TestRun_ScenarioInStateWithHistory(t *testing.T) {
	// A VA candidate with NTEE P20 on the interest list, revenue in band,
	// and ten documented grants lands at review or better.
	opts := testOptions()
	opts.Enrichment = map[string]*types.Enrichment{
		"541111111": {Grants: tenGrants(), TaxYear: 2023, DataYear: 2024},
	}

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	var blueRidge *Opportunity
	for i := range result.Opportunities {
		if result.Opportunities[i].Candidate.EIN == "541111111" {
			blueRidge = &result.Opportunities[i]
		}
	}
	require.NotNil(t, blueRidge)
	assert.LessOrEqual(t, tiers.Rank(blueRidge.Snapshot.Tier), tiers.Rank(tiers.TierReview),
		"expected review or better, got %s (composite %.3f)", blueRidge.Snapshot.Tier, blueRidge.Snapshot.Composite)
}

func TestRun_NoGrantHistoryRanksBelowDocumentedFunder(t *testing.T) {
	opts := testOptions()
	opts.Enrichment = map[string]*types.Enrichment{
		"541111111": {Grants: tenGrants(), TaxYear: 2023, DataYear: 2024},
	}

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	composites := make(map[string]float64)
	for _, op := range result.Opportunities {
		composites[op.Candidate.EIN] = op.Snapshot.Composite
	}
	// Valley Education Trust is an otherwise-similar VA foundation with no
	// documented grants.
	assert.Greater(t, composites["541111111"], composites["541111112"])
}

func TestRun_ConfigErrorAbortsBeforeScoring(t *testing.T) {
	opts := testOptions()
	opts.Scoring.Weights[types.DimTiming] = 0.9

	_, err := Run(context.Background(), testDataset(t), opts)
	require.Error(t, err)
	var cfgErr *scoring.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRun_InvalidThresholdsAbort(t *testing.T) {
	opts := testOptions()
	opts.Thresholds.Review = 0.9 // above auto_qualified

	_, err := Run(context.Background(), testDataset(t), opts)
	require.Error(t, err)
	var cfgErr *tiers.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRun_EmptyMatchSet(t *testing.T) {
	opts := testOptions()
	opts.Criteria = &bmf.FilterCriteria{States: []string{"HI"}}

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)
	assert.Empty(t, result.Opportunities)
	assert.Equal(t, 0, result.Summary.Scored)
}

func TestRun_CancellationReturnsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions()
	result, err := Run(ctx, testDataset(t), opts)
	require.NoError(t, err)

	total := result.Summary.Scored + result.Summary.Failed + result.Summary.Unprocessed
	assert.Equal(t, result.FilterStats.Matches, total,
		"every candidate must be accounted for")
	assert.Equal(t, 0, result.Summary.Scored)
	assert.False(t, result.Summary.TimedOut,
		"caller cancellation is not a timeout")
}

func TestRun_EveryCandidateAccountedFor(t *testing.T) {
	opts := testOptions()
	opts.Workers = 2

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	total := result.Summary.Scored + result.Summary.Failed + result.Summary.Unprocessed
	assert.Equal(t, result.FilterStats.Matches, total)
}

func TestRun_SnapshotsAppended(t *testing.T) {
	store := &memoryStore{}
	opts := testOptions()
	opts.Snapshots = store

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	assert.Len(t, store.snapshots, result.Summary.Scored)
	for _, snap := range store.snapshots {
		assert.NotEqual(t, "", snap.ID.String())
		assert.False(t, snap.CreatedAt.IsZero())
		assert.Equal(t, "profile-001", snap.ProfileID)
	}
}

func TestRun_AppendOnlyAcrossStages(t *testing.T) {
	store := &memoryStore{}

	opts := testOptions()
	opts.Snapshots = store
	_, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)
	firstCount := len(store.snapshots)

	opts.Stage = types.StageAnalyze
	_, err = Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	// A later stage appends new snapshots; earlier ones are retained.
	assert.Equal(t, 2*firstCount, len(store.snapshots))
}

// memoryStore is an append-only in-memory snapshot store for tests.
type memoryStore struct {
	mu        sync.Mutex
	snapshots []*types.ScoreSnapshot
}

func (s *memoryStore) AppendSnapshot(_ context.Context, snapshot *types.ScoreSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func TestRun_TimeoutReturnsPartialResults(t *testing.T) {
	opts := testOptions()
	opts.Timeout = time.Nanosecond

	result, err := Run(context.Background(), testDataset(t), opts)
	require.NoError(t, err)

	total := result.Summary.Scored + result.Summary.Failed + result.Summary.Unprocessed
	assert.Equal(t, result.FilterStats.Matches, total)
	assert.True(t, result.Summary.TimedOut)
}
