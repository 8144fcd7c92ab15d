// Package history summarizes an organization's past awards into temporal
// and geographic funding trends.
package history

import (
	"sort"

	"github.com/jonathan/grant-scout/internal/types"
)

// Trend directions for year-over-year funding.
const (
	TrendGrowing   = "growing"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// minAwardsForConfidence is the record count below which trend conclusions
// are flagged provisional.
const minAwardsForConfidence = 5

// YearSummary aggregates one year's awards.
type YearSummary struct {
	Year   int     `json:"year"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Median float64 `json:"median"`
}

// Summary is the trend profile derived from an organization's past awards.
type Summary struct {
	TotalAwards      int           `json:"total_awards"`
	TotalAmount      float64       `json:"total_amount"`
	AverageAward     float64       `json:"average_award"`
	Years            []YearSummary `json:"years"`
	Trend            string        `json:"trend"`
	TopFunderStates  []string      `json:"top_funder_states,omitempty"`
	RepeatFunderRate float64       `json:"repeat_funder_rate"`
	LowConfidence    bool          `json:"low_confidence"`
}

// Analyze summarizes past awards. Sparse histories are analyzed anyway and
// flagged low-confidence.
func Analyze(awards []types.Award) *Summary {
	summary := &Summary{
		TotalAwards:   len(awards),
		LowConfidence: len(awards) < minAwardsForConfidence,
		Trend:         TrendStable,
	}
	if len(awards) == 0 {
		return summary
	}

	byYear := make(map[int][]float64)
	stateCounts := make(map[string]int)
	funderCounts := make(map[string]int)
	for _, award := range awards {
		summary.TotalAmount += award.Amount
		byYear[award.Year] = append(byYear[award.Year], award.Amount)
		if award.FunderState != "" {
			stateCounts[award.FunderState]++
		}
		key := award.FunderEIN
		if key == "" {
			key = award.Funder
		}
		if key != "" {
			funderCounts[key]++
		}
	}
	summary.AverageAward = summary.TotalAmount / float64(len(awards))

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		amounts := byYear[year]
		sort.Float64s(amounts)
		total := 0.0
		for _, a := range amounts {
			total += a
		}
		summary.Years = append(summary.Years, YearSummary{
			Year:   year,
			Count:  len(amounts),
			Total:  total,
			Median: median(amounts),
		})
	}

	summary.Trend = classifyTrend(summary.Years)
	summary.TopFunderStates = topStates(stateCounts, 3)
	summary.RepeatFunderRate = repeatRate(funderCounts, len(awards))
	return summary
}

// classifyTrend compares total funding between the first and second half of
// the covered years. A swing beyond 15% either way leaves the stable band.
func classifyTrend(years []YearSummary) string {
	if len(years) < 2 {
		return TrendStable
	}
	mid := len(years) / 2
	firstHalf, secondHalf := 0.0, 0.0
	for i, y := range years {
		if i < mid {
			firstHalf += y.Total
		} else {
			secondHalf += y.Total
		}
	}
	firstHalf /= float64(mid)
	secondHalf /= float64(len(years) - mid)
	if firstHalf == 0 {
		if secondHalf > 0 {
			return TrendGrowing
		}
		return TrendStable
	}
	ratio := secondHalf / firstHalf
	switch {
	case ratio > 1.15:
		return TrendGrowing
	case ratio < 0.85:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// repeatRate is the share of awards that came from a funder seen more than
// once in the history.
func repeatRate(funderCounts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	repeat := 0
	for _, count := range funderCounts {
		if count > 1 {
			repeat += count
		}
	}
	return float64(repeat) / float64(total)
}

// median of a sorted sample.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// topStates returns the n most frequent states, ties alphabetical.
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
