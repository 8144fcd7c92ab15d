package grants

import (
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonathan/grant-scout/internal/types"
)

// minGrantsForConfidence is the record count below which every pattern
// conclusion is flagged provisional rather than suppressed.
const minGrantsForConfidence = 5

// geographicFocusSize is how many top states form the geographic focus.
const geographicFocusSize = 5

// focusedStyleShare is the single-category share above which a foundation's
// granting style is classified as Focused.
const focusedStyleShare = 0.6

// Granting styles.
const (
	StyleFocused = "Focused"
	StyleDiverse = "Diverse"
)

// Pattern is the reusable profile derived from one foundation's grants for
// one tax year.
type Pattern struct {
	FoundationEIN   string              `json:"foundation_ein"`
	FoundationName  string              `json:"foundation_name"`
	TaxYear         int                 `json:"tax_year"`
	TotalGrants     int                 `json:"total_grants"`
	TotalAmount     float64             `json:"total_amount"`
	AverageAmount   float64             `json:"average_amount"`
	MedianAmount    float64             `json:"median_amount"`
	MinAmount       float64             `json:"min_amount"`
	MaxAmount       float64             `json:"max_amount"`
	TypicalLow      float64             `json:"typical_low"`
	TypicalHigh     float64             `json:"typical_high"`
	Categories      map[string]int      `json:"categories"`
	SizeTierCounts  map[string]int      `json:"size_tier_counts"`
	StateCounts     map[string]int      `json:"state_counts"`
	GeographicFocus []string            `json:"geographic_focus"`
	Style           string              `json:"style"`
	TopCategory     string              `json:"top_category"`
	Grants          []types.GrantRecord `json:"grants,omitempty"`
	LowConfidence   bool                `json:"low_confidence"`
	Match           *Match              `json:"match,omitempty"`
}

// Analyzer computes grant patterns with per-(EIN, tax year) memoization so
// repeated candidate-to-foundation comparisons within one run reuse the
// profile instead of recomputing it.
type Analyzer struct {
	cache *gocache.Cache
}

// NewAnalyzer returns an analyzer whose memoized patterns live for the
// given TTL. A discovery run typically holds one analyzer for its lifetime.
func NewAnalyzer(ttl time.Duration) *Analyzer {
	return &Analyzer{cache: gocache.New(ttl, 2*ttl)}
}

func cacheKey(key types.FoundationKey) string {
	return fmt.Sprintf("%s:%d", key.EIN, key.TaxYear)
}

// Analyze produces the pattern profile for one foundation's tax year,
// memoized by (EIN, tax year). The optional analyzing profile adds a match
// block; match blocks are not memoized because they depend on the profile.
func (a *Analyzer) Analyze(key types.FoundationKey, name string, records []types.GrantRecord, profile *types.Profile) (*Pattern, error) {
	if key.EIN == "" {
		return nil, &AnalysisError{Message: "foundation EIN is required"}
	}

	var pattern *Pattern
	if cached, found := a.cache.Get(cacheKey(key)); found {
		pattern = cached.(*Pattern)
	} else {
		pattern = buildPattern(key, name, records)
		a.cache.Set(cacheKey(key), pattern, gocache.DefaultExpiration)
	}

	if profile == nil {
		return pattern, nil
	}

	// Copy before attaching the profile-specific match so the memoized
	// pattern stays profile-independent.
	withMatch := *pattern
	withMatch.Match = matchProfile(pattern, profile)
	return &withMatch, nil
}

// buildPattern derives the full pattern profile from raw grant records.
func buildPattern(key types.FoundationKey, name string, records []types.GrantRecord) *Pattern {
	pattern := &Pattern{
		FoundationEIN:  key.EIN,
		FoundationName: name,
		TaxYear:        key.TaxYear,
		TotalGrants:    len(records),
		Categories:     make(map[string]int),
		SizeTierCounts: make(map[string]int),
		StateCounts:    make(map[string]int),
		LowConfidence:  len(records) < minGrantsForConfidence,
	}
	if len(records) == 0 {
		pattern.Style = StyleDiverse
		return pattern
	}

	amounts := make([]float64, 0, len(records))
	for _, rec := range records {
		amounts = append(amounts, rec.Amount)
	}
	stats := computeTierStats(amounts)
	pattern.TotalAmount = stats.total
	pattern.AverageAmount = stats.average
	pattern.MedianAmount = stats.median
	pattern.MinAmount = stats.min
	pattern.MaxAmount = stats.max
	pattern.TypicalLow = stats.p25
	pattern.TypicalHigh = stats.p75

	pattern.Grants = make([]types.GrantRecord, len(records))
	for i, rec := range records {
		rec.Category = CategorizePurpose(rec.Purpose)
		rec.SizeTier = AssignSizeTier(rec.Amount, amounts)
		pattern.Categories[rec.Category]++
		pattern.SizeTierCounts[rec.SizeTier]++
		if rec.State != "" {
			pattern.StateCounts[rec.State]++
		}
		pattern.Grants[i] = rec
	}

	pattern.GeographicFocus = topStates(pattern.StateCounts, geographicFocusSize)
	pattern.TopCategory, pattern.Style = classifyStyle(pattern.Categories, len(records))
	return pattern
}

// topStates returns the n most frequent states, ties broken alphabetically
// for deterministic output.
func topStates(counts map[string]int, n int) []string {
	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		if counts[states[i]] != counts[states[j]] {
			return counts[states[i]] > counts[states[j]]
		}
		return states[i] < states[j]
	})
	if len(states) > n {
		states = states[:n]
	}
	return states
}

// classifyStyle finds the dominant category and labels the granting style
// Focused when it exceeds the focused-share threshold of grant count.
func classifyStyle(categories map[string]int, total int) (top string, style string) {
	best := 0
	for _, category := range Categories {
		if categories[category] > best {
			best = categories[category]
			top = category
		}
	}
	if total > 0 && float64(best)/float64(total) > focusedStyleShare {
		return top, StyleFocused
	}
	return top, StyleDiverse
}
