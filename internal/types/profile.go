package types

import "strings"

// Profile represents the client organization seeking funding. It is owned
// by the external profile subsystem and read-only to the scoring core.
type Profile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Mission       string   `json:"mission"`
	FocusAreas    []string `json:"focus_areas,omitempty"`
	NTEECodes     []string `json:"ntee_codes,omitempty"`
	States        []string `json:"states,omitempty"`
	Nationwide    bool     `json:"nationwide,omitempty"`
	MinAmount     float64  `json:"min_amount,omitempty"`
	MaxAmount     float64  `json:"max_amount,omitempty"`
	Revenue       float64  `json:"revenue,omitempty"`
	Exclusions    []string `json:"exclusions,omitempty"`
	RecipientType string   `json:"recipient_type,omitempty"`
}

// ServesState reports whether the profile's geographic scope covers the
// given state. A nationwide profile covers every state.
func (p *Profile) ServesState(state string) bool {
	if p.Nationwide {
		return true
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	for _, s := range p.States {
		if strings.ToUpper(strings.TrimSpace(s)) == state {
			return true
		}
	}
	return false
}

// FocusTerms returns the lowercased focus-area and mission terms used for
// lexical matching against candidate text.
func (p *Profile) FocusTerms() []string {
	terms := make([]string, 0, len(p.FocusAreas))
	seen := make(map[string]bool)
	for _, area := range p.FocusAreas {
		area = strings.ToLower(strings.TrimSpace(area))
		if area != "" && !seen[area] {
			seen[area] = true
			terms = append(terms, area)
		}
	}
	for _, word := range strings.Fields(strings.ToLower(p.Mission)) {
		word = strings.Trim(word, ".,;:()\"'")
		if len(word) >= 5 && !seen[word] {
			seen[word] = true
			terms = append(terms, word)
		}
	}
	return terms
}
