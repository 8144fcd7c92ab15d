package bmf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `EIN,NAME,CITY,STATE,NTEE_CD,FOUNDATION,REVENUE_AMT,ASSET_AMT
541111111,Blue Ridge Community Foundation,Richmond,VA,P20,03,500000,2000000
541111112,Valley Education Trust,Roanoke,VA,B82,03,1200000,5000000
541111113,Chesapeake Health Fund,Baltimore,MD,E20,03,750000,3000000
541111114,Pacific Arts Council,Portland,OR,A54,15,300000,900000
541111115,Golden State Youth Services,Fresno,CA,O20,15,,1200000
bad row with no ein,,
541111117,Tri-State Human Services,Bristol,VA,P20,03,not-a-number,800000
`

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ReadDataset(strings.NewReader(sampleCSV), "sample")
	require.NoError(t, err)
	return ds
}

func floatPtr(v float64) *float64 { return &v }

func TestReadDataset_SkipsMalformedRows(t *testing.T) {
	ds := loadSample(t)

	// The row without an EIN is skipped and counted, never fatal.
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, 1, ds.SkippedRows())
}

func TestReadDataset_MissingColumnsFatal(t *testing.T) {
	_, err := ReadDataset(strings.NewReader("FOO,BAR\n1,2\n"), "sample")
	require.Error(t, err)
	var unavailable *DataUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestLoadDataset_MissingFileFatal(t *testing.T) {
	_, err := LoadDataset("/nonexistent/bmf.csv")
	require.Error(t, err)
	var unavailable *DataUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestFilter_ByState(t *testing.T) {
	ds := loadSample(t)

	matches, stats, err := ds.Filter(&FilterCriteria{States: []string{"VA"}})
	require.NoError(t, err)

	assert.Len(t, matches, 3)
	assert.Equal(t, 6, stats.RowsScanned)
	assert.Equal(t, 3, stats.Matches)
	for _, c := range matches {
		assert.Equal(t, "VA", c.State)
	}
}

func TestFilter_RepeatedCriteriaHitCache(t *testing.T) {
	ds := loadSample(t)

	first, firstStats, err := ds.Filter(&FilterCriteria{States: []string{"VA"}})
	require.NoError(t, err)
	assert.False(t, firstStats.CacheHit)

	// An equal criteria value is served from the memo; the counts and the
	// match set must be identical to a fresh scan.
	second, secondStats, err := ds.Filter(&FilterCriteria{States: []string{"VA"}})
	require.NoError(t, err)
	assert.True(t, secondStats.CacheHit)
	assert.Equal(t, first, second)
	assert.Equal(t, firstStats.Matches, secondStats.Matches)
	assert.Equal(t, firstStats.RowsScanned, secondStats.RowsScanned)

	_, otherStats, err := ds.Filter(&FilterCriteria{States: []string{"MD"}})
	require.NoError(t, err)
	assert.False(t, otherStats.CacheHit, "different criteria must rescan")
}

func TestFilter_NTEEFullCodeOrMajorGroup(t *testing.T) {
	ds := loadSample(t)

	// Full code and major group are OR'd: P20 picks up the human-services
	// orgs, E picks up the health fund.
	matches, _, err := ds.Filter(&FilterCriteria{
		NTEECodes:       []string{"P20"},
		NTEEMajorGroups: []string{"E"},
	})
	require.NoError(t, err)

	names := make([]string, 0, len(matches))
	for _, c := range matches {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{
		"Blue Ridge Community Foundation",
		"Chesapeake Health Fund",
		"Tri-State Human Services",
	}, names)
}

func TestFilter_RevenueBandInclusive(t *testing.T) {
	ds := loadSample(t)

	matches, _, err := ds.Filter(&FilterCriteria{
		MinRevenue: floatPtr(500000),
		MaxRevenue: floatPtr(750000),
	})
	require.NoError(t, err)

	// Inclusive on both bounds; rows with unknown revenue are excluded
	// because a revenue bound was requested.
	names := make([]string, 0, len(matches))
	for _, c := range matches {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{
		"Blue Ridge Community Foundation",
		"Chesapeake Health Fund",
	}, names)
}

func TestFilter_MissingFinancialFieldWithoutBound(t *testing.T) {
	ds := loadSample(t)

	// No revenue bound requested: candidates with unknown revenue stay in.
	matches, _, err := ds.Filter(&FilterCriteria{States: []string{"CA"}})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Nil(t, matches[0].Revenue)
}

func TestFilter_NameSubstring(t *testing.T) {
	ds := loadSample(t)

	matches, _, err := ds.Filter(&FilterCriteria{NameContains: "foundation"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Blue Ridge Community Foundation", matches[0].Name)
}

func TestFilter_FoundationCode(t *testing.T) {
	ds := loadSample(t)

	matches, _, err := ds.Filter(&FilterCriteria{FoundationCode: "15"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestFilter_SortAndLimit(t *testing.T) {
	ds := loadSample(t)

	matches, stats, err := ds.Filter(&FilterCriteria{
		SortBy: SortByRevenue,
		Limit:  2,
	})
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.True(t, stats.Truncated)
	assert.Equal(t, "Valley Education Trust", matches[0].Name)
	assert.Equal(t, "Chesapeake Health Fund", matches[1].Name)
	// Stats count matches before truncation.
	assert.Equal(t, 6, stats.Matches)
}

func TestFilter_EmptyResultIsNotAnError(t *testing.T) {
	ds := loadSample(t)

	matches, stats, err := ds.Filter(&FilterCriteria{States: []string{"HI"}})
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 0, stats.Matches)
}

func TestFilter_ConjunctivePredicates(t *testing.T) {
	ds := loadSample(t)

	criteria := &FilterCriteria{
		States:          []string{"VA"},
		NTEEMajorGroups: []string{"P"},
		MinRevenue:      floatPtr(100000),
	}
	matches, _, err := ds.Filter(criteria)
	require.NoError(t, err)

	// Every returned candidate satisfies every supplied predicate.
	for _, c := range matches {
		assert.Equal(t, "VA", c.State)
		assert.Equal(t, "P", c.NTEEMajorGroup())
		require.NotNil(t, c.Revenue)
		assert.GreaterOrEqual(t, *c.Revenue, 100000.0)
	}
}

func TestFilter_InvalidCriteria(t *testing.T) {
	ds := loadSample(t)

	_, _, err := ds.Filter(&FilterCriteria{
		MinRevenue: floatPtr(100),
		MaxRevenue: floatPtr(50),
	})
	require.Error(t, err)
	var criteriaErr *CriteriaError
	assert.ErrorAs(t, err, &criteriaErr)
}

func TestInBand(t *testing.T) {
	assert.True(t, inBand(nil, nil, nil))
	assert.False(t, inBand(nil, floatPtr(1), nil))
	assert.True(t, inBand(floatPtr(5), floatPtr(5), floatPtr(5)))
	assert.False(t, inBand(floatPtr(4), floatPtr(5), nil))
	assert.False(t, inBand(floatPtr(6), nil, floatPtr(5)))
}
