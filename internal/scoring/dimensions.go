package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/grant-scout/internal/types"
)

// regionalAdjacencyCredit is the geographic score for a candidate outside
// the profile's state list but inside the same census region.
const regionalAdjacencyCredit = 0.4

// nteeMajorGroupTerms maps NTEE major-group letters to descriptive terms
// used for lexical matching against profile focus areas.
var nteeMajorGroupTerms = map[string]string{
	"A": "arts culture humanities museum",
	"B": "education school university literacy",
	"C": "environment conservation pollution",
	"D": "animal wildlife veterinary",
	"E": "health hospital clinic medical",
	"F": "mental health counseling crisis",
	"G": "disease disorder medical research",
	"H": "medical research science",
	"I": "crime legal justice court",
	"J": "employment job workforce",
	"K": "food agriculture nutrition hunger",
	"L": "housing shelter homeless",
	"M": "disaster relief safety preparedness",
	"N": "recreation sports athletics",
	"O": "youth development mentoring",
	"P": "human services family community",
	"Q": "international foreign relief",
	"R": "civil rights advocacy",
	"S": "community improvement development",
	"T": "philanthropy grantmaking foundation",
	"U": "science technology research",
	"V": "social science research",
	"W": "public policy government",
	"X": "religion faith church ministry",
	"Y": "mutual benefit insurance",
	"Z": "unknown",
}

// computeMissionAlignment scores the lexical overlap between the profile's
// focus terms and the candidate's name and NTEE classification. An NTEE code
// on the profile's interest list anchors a strong score; term overlap fills
// in the rest.
func computeMissionAlignment(candidate *types.Candidate, profile *types.Profile) float64 {
	base := 0.0
	if nteeCodeMatches(candidate.NTEECode, profile.NTEECodes) {
		base = 0.6
	}

	terms := profile.FocusTerms()
	if len(terms) == 0 {
		return base
	}

	candidateText := strings.ToLower(candidate.Name)
	if group := nteeMajorGroupTerms[candidate.NTEEMajorGroup()]; group != "" {
		candidateText += " " + group
	}

	matches := 0
	for _, term := range terms {
		if strings.Contains(candidateText, term) {
			matches++
		}
	}
	overlap := float64(matches) / float64(len(terms))

	score := base + (1.0-base)*overlap
	return clamp01(score)
}

// nteeCodeMatches reports whether a candidate code equals or starts with any
// of the requested full codes.
func nteeCodeMatches(code string, wanted []string) bool {
	if code == "" {
		return false
	}
	code = strings.ToUpper(code)
	for _, w := range wanted {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" && strings.HasPrefix(code, w) {
			return true
		}
	}
	return false
}

// computeGeographicFit returns 1.0 when the candidate's state is inside the
// profile's scope or the profile is nationwide, partial credit for regional
// adjacency, otherwise 0.
func computeGeographicFit(candidate *types.Candidate, profile *types.Profile) float64 {
	if profile.Nationwide {
		return 1.0
	}
	if candidate.State == "" {
		return 0.0
	}
	if profile.ServesState(candidate.State) {
		return 1.0
	}
	for _, s := range profile.States {
		if sameRegion(candidate.State, s) {
			return regionalAdjacencyCredit
		}
	}
	return 0.0
}

// computeFinancialMatch scores the inverse-normalized distance between the
// profile's requested amount band and the candidate's typical grant size.
// Without a typical grant size (no historical pattern resolved) the score is
// a neutral 0.5.
func computeFinancialMatch(profile *types.Profile, typicalGrant float64) float64 {
	if typicalGrant <= 0 {
		return 0.5
	}
	min, max := profile.MinAmount, profile.MaxAmount
	if min <= 0 && max <= 0 {
		return 0.5
	}
	if max <= 0 {
		max = math.Inf(1)
	}
	if typicalGrant >= min && typicalGrant <= max {
		return 1.0
	}
	if typicalGrant < min {
		return clamp01(typicalGrant / min)
	}
	return clamp01(max / typicalGrant)
}

// computeGrantMakingCapacity scores the evidence that a candidate actually
// distributes grants. Foundation classification sets the floor; documented
// grant volume raises it on a log scale that saturates near 50 grants.
// A foundation with no documented grants never scores above 0.2; this is
// the strongest rejector of public charities that never grant externally.
func computeGrantMakingCapacity(candidate *types.Candidate, grantCount int) float64 {
	base := 0.1
	if candidate.IsPrivateFoundation() {
		base = 0.2
	} else if candidate.IsPublicCharity() {
		base = 0.05
	}
	if grantCount <= 0 {
		return base
	}

	evidence := math.Log1p(float64(grantCount)) / math.Log1p(50)
	if evidence > 1 {
		evidence = 1
	}
	return clamp01(base + (1.0-base)*evidence)
}

// computeEligibility scores legal-status and policy fit. Private foundations
// are the natural funders of public charities; a public-charity candidate
// rarely regrants and an unclassified record is uncertain.
func computeEligibility(candidate *types.Candidate, profile *types.Profile) float64 {
	score := 0.5
	switch {
	case candidate.IsPrivateFoundation():
		score = 0.9
	case candidate.IsPublicCharity():
		score = 0.35
	}

	// A profile exclusion naming the candidate's major group zeroes fit.
	group := candidate.NTEEMajorGroup()
	for _, excl := range profile.Exclusions {
		excl = strings.ToUpper(strings.TrimSpace(excl))
		if excl != "" && excl == group {
			return 0.0
		}
	}
	return score
}

// computeTiming scores data recency: a filing from the as-of year scores
// 1.0, decaying per year of staleness. Unknown filing year is a neutral 0.5.
func computeTiming(dataYear, asOfYear int) float64 {
	if dataYear <= 0 || asOfYear <= 0 {
		return 0.5
	}
	age := asOfYear - dataYear
	if age <= 0 {
		return 1.0
	}
	score := 1.0 - 0.15*float64(age)
	if score < 0.1 {
		score = 0.1
	}
	return score
}

// clamp01 bounds a score to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
