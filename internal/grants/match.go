package grants

import (
	"strings"

	"github.com/jonathan/grant-scout/internal/types"
)

// Match scores how well a foundation's grant pattern fits the analyzing
// organization, one 0-1 score per dimension plus a suggested ask bounded to
// the foundation's typical tier range.
type Match struct {
	MissionScore       float64  `json:"mission_score"`
	GeographyScore     float64  `json:"geography_score"`
	SizeScore          float64  `json:"size_score"`
	RecipientTypeScore float64  `json:"recipient_type_score"`
	Overall            float64  `json:"overall"`
	SuggestedAsk       float64  `json:"suggested_ask"`
	Notes              []string `json:"notes,omitempty"`
}

// profileCategories maps the analyzing organization's focus areas onto the
// canonical grant categories.
func profileCategories(profile *types.Profile) map[string]bool {
	matched := make(map[string]bool)
	for _, area := range profile.FocusAreas {
		if category := CategorizePurpose(area); category != CategoryOther {
			matched[category] = true
		}
	}
	if category := CategorizePurpose(profile.Mission); category != CategoryOther {
		matched[category] = true
	}
	return matched
}

// matchProfile computes the per-dimension match block for a pattern.
func matchProfile(pattern *Pattern, profile *types.Profile) *Match {
	match := &Match{
		MissionScore:       missionScore(pattern, profile),
		GeographyScore:     geographyScore(pattern, profile),
		SizeScore:          sizeScore(pattern, profile),
		RecipientTypeScore: recipientTypeScore(pattern, profile),
	}
	match.Overall = 0.35*match.MissionScore +
		0.25*match.GeographyScore +
		0.25*match.SizeScore +
		0.15*match.RecipientTypeScore
	match.SuggestedAsk = suggestAsk(pattern, profile)

	if pattern.LowConfidence {
		match.Notes = append(match.Notes,
			"Based on fewer than 5 grant records; treat all conclusions as provisional.")
	}
	if match.MissionScore >= 0.5 && pattern.Style == StyleFocused {
		match.Notes = append(match.Notes,
			"Foundation is focused on "+pattern.TopCategory+", which overlaps your mission.")
	}
	return match
}

// missionScore is the share of the foundation's grants in categories that
// overlap the analyzing organization's focus.
func missionScore(pattern *Pattern, profile *types.Profile) float64 {
	if pattern.TotalGrants == 0 {
		return 0
	}
	wanted := profileCategories(profile)
	if len(wanted) == 0 {
		return 0.5
	}
	overlap := 0
	for category, count := range pattern.Categories {
		if wanted[category] {
			overlap += count
		}
	}
	return float64(overlap) / float64(pattern.TotalGrants)
}

// geographyScore is 1.0 when a profile state is inside the foundation's
// top-5 geographic focus, partial credit when the foundation funded the
// state at all, and a neutral score for nationwide profiles.
func geographyScore(pattern *Pattern, profile *types.Profile) float64 {
	if profile.Nationwide {
		return 0.7
	}
	for _, state := range profile.States {
		state = strings.ToUpper(strings.TrimSpace(state))
		for _, focus := range pattern.GeographicFocus {
			if focus == state {
				return 1.0
			}
		}
		if pattern.StateCounts[state] > 0 {
			return 0.6
		}
	}
	return 0.0
}

// sizeScore measures the distance between the profile's requested amount
// band and the foundation's typical grant size.
func sizeScore(pattern *Pattern, profile *types.Profile) float64 {
	median := pattern.MedianAmount
	if median <= 0 {
		return 0.5
	}
	if profile.MinAmount <= 0 && profile.MaxAmount <= 0 {
		return 0.5
	}
	low, high := profile.MinAmount, profile.MaxAmount
	if high <= 0 {
		high = median
	}
	if median >= low && median <= high {
		return 1.0
	}
	if median < low {
		return median / low
	}
	return high / median
}

// recipientTypeScore checks whether the foundation's documented recipients
// look like the analyzing organization's stated type. Grants carrying
// recipient EINs went to registered organizations rather than individuals.
func recipientTypeScore(pattern *Pattern, profile *types.Profile) float64 {
	if pattern.TotalGrants == 0 {
		return 0.5
	}
	withEIN := 0
	for _, grant := range pattern.Grants {
		if grant.RecipientEIN != "" {
			withEIN++
		}
	}
	orgShare := float64(withEIN) / float64(pattern.TotalGrants)
	if strings.EqualFold(profile.RecipientType, "individual") {
		return 1.0 - orgShare
	}
	return orgShare
}

// suggestAsk recommends an ask amount bounded to the foundation's typical
// tier range: start from the historical median and clamp to where the
// profile's preferences overlap the interquartile range.
func suggestAsk(pattern *Pattern, profile *types.Profile) float64 {
	ask := pattern.MedianAmount
	if ask <= 0 {
		return 0
	}
	if profile.MinAmount > 0 && ask < profile.MinAmount && pattern.TypicalHigh >= profile.MinAmount {
		ask = profile.MinAmount
	}
	if profile.MaxAmount > 0 && ask > profile.MaxAmount {
		ask = profile.MaxAmount
	}
	if ask < pattern.TypicalLow {
		ask = pattern.TypicalLow
	}
	if ask > pattern.TypicalHigh {
		ask = pattern.TypicalHigh
	}
	return ask
}
