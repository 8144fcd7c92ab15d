package bmf

import (
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonathan/grant-scout/internal/types"
)

// FilterStats reports how a scan went alongside its results, so candidates
// are never silently dropped without being accounted for.
type FilterStats struct {
	RowsScanned int           `json:"rows_scanned"`
	RowsSkipped int           `json:"rows_skipped"`
	Matches     int           `json:"matches"`
	Truncated   bool          `json:"truncated"`
	CacheHit    bool          `json:"cache_hit"`
	Elapsed     time.Duration `json:"elapsed"`
}

// cachedScan is one memoized filter result. The match slice is shared
// with callers, which treat candidates as read-only.
type cachedScan struct {
	matches []types.Candidate
	stats   FilterStats
}

// Filter scans the dataset against the criteria's conjunctive predicates
// and returns matching candidates plus execution stats. Results are sorted
// before truncation to the requested limit. A repeated scan with identical
// criteria is served from the memo cache and reported via stats.CacheHit.
func (d *Dataset) Filter(criteria *FilterCriteria) ([]types.Candidate, FilterStats, error) {
	if err := criteria.Validate(); err != nil {
		return nil, FilterStats{}, err
	}

	start := time.Now()
	key := criteria.cacheKey()
	if d.results != nil && key != "" {
		if hit, ok := d.results.Get(key); ok {
			entry := hit.(cachedScan)
			stats := entry.stats
			stats.CacheHit = true
			stats.Elapsed = time.Since(start)
			return entry.matches, stats, nil
		}
	}

	states, codes, groups := criteria.normalized()
	nameNeedle := strings.ToLower(strings.TrimSpace(criteria.NameContains))

	var matches []types.Candidate
	for i := range d.candidates {
		c := &d.candidates[i]
		if !matchesState(c, states) {
			continue
		}
		if !matchesNTEE(c, codes, groups) {
			continue
		}
		if criteria.FoundationCode != "" && c.FoundationCode != criteria.FoundationCode {
			continue
		}
		if nameNeedle != "" && !strings.Contains(strings.ToLower(c.Name), nameNeedle) {
			continue
		}
		if !inBand(c.Revenue, criteria.MinRevenue, criteria.MaxRevenue) {
			continue
		}
		if !inBand(c.Assets, criteria.MinAssets, criteria.MaxAssets) {
			continue
		}
		matches = append(matches, *c)
	}

	sortCandidates(matches, criteria.SortBy)

	stats := FilterStats{
		RowsScanned: len(d.candidates),
		RowsSkipped: d.skipped,
		Matches:     len(matches),
	}
	if criteria.Limit > 0 && len(matches) > criteria.Limit {
		matches = matches[:criteria.Limit]
		stats.Truncated = true
	}
	if d.results != nil && key != "" {
		d.results.Set(key, cachedScan{matches: matches, stats: stats}, gocache.DefaultExpiration)
	}
	stats.Elapsed = time.Since(start)
	return matches, stats, nil
}

// matchesState applies the state predicate; an empty list matches all.
func matchesState(c *types.Candidate, states []string) bool {
	if len(states) == 0 {
		return true
	}
	for _, s := range states {
		if c.State == s {
			return true
		}
	}
	return false
}

// matchesNTEE includes a candidate when its code equals or starts with any
// requested full code, OR its leading letter matches any requested major
// group. With neither list supplied, every candidate matches.
func matchesNTEE(c *types.Candidate, codes, groups []string) bool {
	if len(codes) == 0 && len(groups) == 0 {
		return true
	}
	for _, code := range codes {
		if code != "" && strings.HasPrefix(c.NTEECode, code) {
			return true
		}
	}
	major := c.NTEEMajorGroup()
	for _, g := range groups {
		if g != "" && major == g {
			return true
		}
	}
	return false
}

// inBand applies an inclusive financial range. A record with an unknown
// value is excluded only when a bound on that field was actually requested.
func inBand(value, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if value == nil {
		return false
	}
	if min != nil && *value < *min {
		return false
	}
	if max != nil && *value > *max {
		return false
	}
	return true
}

// sortCandidates orders matches by the requested sort option. Financial
// sorts are descending with unknown values last; the default is name order.
func sortCandidates(matches []types.Candidate, sortBy string) {
	switch sortBy {
	case SortByRevenue:
		sort.SliceStable(matches, func(i, j int) bool {
			return amountOrZero(matches[i].Revenue) > amountOrZero(matches[j].Revenue)
		})
	case SortByAssets:
		sort.SliceStable(matches, func(i, j int) bool {
			return amountOrZero(matches[i].Assets) > amountOrZero(matches[j].Assets)
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Name < matches[j].Name
		})
	}
}

func amountOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
