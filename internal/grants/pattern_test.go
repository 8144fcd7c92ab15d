package grants

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonathan/grant-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrants() []types.GrantRecord {
	return []types.GrantRecord{
		{RecipientName: "City Schools Fund", RecipientEIN: "111", Amount: 50000, Purpose: "scholarship support for public schools", State: "VA"},
		{RecipientName: "Regional Hospital", RecipientEIN: "222", Amount: 100000, Purpose: "hospital equipment", State: "VA"},
		{RecipientName: "Valley Food Bank", RecipientEIN: "333", Amount: 15000, Purpose: "hunger relief for families", State: "VA"},
		{RecipientName: "River Conservancy", RecipientEIN: "444", Amount: 20000, Purpose: "watershed conservation", State: "MD"},
		{RecipientName: "Youth Mentoring Alliance", RecipientEIN: "555", Amount: 10000, Purpose: "youth community programs", State: "VA"},
		{RecipientName: "Arts Collective", RecipientEIN: "666", Amount: 5000, Purpose: "museum exhibition", State: "NC"},
		{RecipientName: "Literacy Project", RecipientEIN: "777", Amount: 25000, Purpose: "adult literacy education", State: "VA"},
		{RecipientName: "Free Clinic", RecipientEIN: "888", Amount: 30000, Purpose: "clinic operating support", State: "WV"},
	}
}

func testKey() types.FoundationKey {
	return types.FoundationKey{EIN: "541000000", TaxYear: 2023}
}

func TestAnalyze_CountsAreConsistent(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), nil)
	require.NoError(t, err)

	categoryTotal := 0
	for _, count := range pattern.Categories {
		categoryTotal += count
	}
	assert.Equal(t, pattern.TotalGrants, categoryTotal, "per-category counts must sum to total")

	tierTotal := 0
	for _, count := range pattern.SizeTierCounts {
		tierTotal += count
	}
	assert.Equal(t, pattern.TotalGrants, tierTotal, "per-tier counts must sum to total")
}

func TestAnalyze_Statistics(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), nil)
	require.NoError(t, err)

	assert.Equal(t, 8, pattern.TotalGrants)
	assert.Equal(t, 255000.0, pattern.TotalAmount)
	assert.Equal(t, 5000.0, pattern.MinAmount)
	assert.Equal(t, 100000.0, pattern.MaxAmount)
	assert.InDelta(t, 31875.0, pattern.AverageAmount, 1e-9)
	assert.InDelta(t, 22500.0, pattern.MedianAmount, 1e-9)
	assert.False(t, pattern.LowConfidence)
}

func TestAnalyze_GeographicFocus(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), nil)
	require.NoError(t, err)

	require.NotEmpty(t, pattern.GeographicFocus)
	assert.Equal(t, "VA", pattern.GeographicFocus[0], "most funded state leads the focus list")
	assert.LessOrEqual(t, len(pattern.GeographicFocus), 5)
}

func TestAnalyze_StyleDiverse(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), nil)
	require.NoError(t, err)

	assert.Equal(t, StyleDiverse, pattern.Style)
}

func TestAnalyze_StyleFocused(t *testing.T) {
	records := make([]types.GrantRecord, 0, 10)
	for i := 0; i < 8; i++ {
		records = append(records, types.GrantRecord{
			RecipientName: fmt.Sprintf("School %d", i),
			Amount:        10000 + float64(i)*1000,
			Purpose:       "school scholarship program",
			State:         "VA",
		})
	}
	records = append(records,
		types.GrantRecord{RecipientName: "Clinic", Amount: 5000, Purpose: "medical clinic", State: "VA"},
		types.GrantRecord{RecipientName: "Museum", Amount: 5000, Purpose: "museum program", State: "VA"},
	)

	a := NewAnalyzer(time.Minute)
	pattern, err := a.Analyze(testKey(), "Focused Foundation", records, nil)
	require.NoError(t, err)

	assert.Equal(t, StyleFocused, pattern.Style)
	assert.Equal(t, CategoryEducation, pattern.TopCategory)
}

func TestAnalyze_LowConfidenceWithFewRecords(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Sparse Foundation", sampleGrants()[:3], nil)
	require.NoError(t, err)

	// Conclusions are flagged provisional, never suppressed.
	assert.True(t, pattern.LowConfidence)
	assert.Equal(t, 3, pattern.TotalGrants)
	assert.NotEmpty(t, pattern.Categories)
}

func TestAnalyze_EmptyGrantList(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	pattern, err := a.Analyze(testKey(), "Empty Foundation", nil, nil)
	require.NoError(t, err)

	assert.True(t, pattern.LowConfidence)
	assert.Equal(t, 0, pattern.TotalGrants)
	assert.Equal(t, StyleDiverse, pattern.Style)
}

func TestAnalyze_RequiresEIN(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	_, err := a.Analyze(types.FoundationKey{TaxYear: 2023}, "No EIN", sampleGrants(), nil)
	require.Error(t, err)
	var analysisErr *AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
}

func TestAnalyze_Memoized(t *testing.T) {
	a := NewAnalyzer(time.Minute)

	first, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), nil)
	require.NoError(t, err)

	// Second call with different records returns the memoized pattern.
	second, err := a.Analyze(testKey(), "Test Foundation", nil, nil)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestAnalyze_MatchNotMemoized(t *testing.T) {
	a := NewAnalyzer(time.Minute)
	profile := &types.Profile{
		ID:         "p1",
		FocusAreas: []string{"education"},
		States:     []string{"VA"},
		MinAmount:  10000,
		MaxAmount:  50000,
	}

	withMatch, err := a.Analyze(testKey(), "Test Foundation", sampleGrants(), profile)
	require.NoError(t, err)
	require.NotNil(t, withMatch.Match)

	// The cached pattern itself stays profile-independent.
	plain, err := a.Analyze(testKey(), "Test Foundation", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, plain.Match)
}

func TestCategorizePurpose(t *testing.T) {
	assert.Equal(t, CategoryEducation, CategorizePurpose("Scholarship fund for students"))
	assert.Equal(t, CategoryHealth, CategorizePurpose("hospital expansion"))
	assert.Equal(t, CategoryArtsCulture, CategorizePurpose("Museum renovation"))
	assert.Equal(t, CategoryEnvironment, CategorizePurpose("wildlife habitat protection"))
	assert.Equal(t, CategoryHumanServices, CategorizePurpose("emergency food assistance"))
	assert.Equal(t, CategoryInternational, CategorizePurpose("global refugee support"))
	assert.Equal(t, CategoryResearch, CategorizePurpose("cancer research fellowship"))
	assert.Equal(t, CategoryOther, CategorizePurpose("general operating support"))
	assert.Equal(t, CategoryOther, CategorizePurpose(""))
}

func TestAssignSizeTier(t *testing.T) {
	amounts := []float64{1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000}

	assert.Equal(t, TierMajor, AssignSizeTier(10000, amounts))
	assert.Equal(t, TierMajor, AssignSizeTier(9000, amounts))
	assert.Equal(t, TierSignificant, AssignSizeTier(7000, amounts))
	assert.Equal(t, TierModerate, AssignSizeTier(4000, amounts))
	assert.Equal(t, TierSmall, AssignSizeTier(1000, amounts))
	assert.Equal(t, TierModerate, AssignSizeTier(100, nil))
}
