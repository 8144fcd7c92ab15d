package bmf

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sort options for filter results.
const (
	SortByName    = "name"
	SortByRevenue = "revenue"
	SortByAssets  = "assets"
)

// FilterCriteria describes one discovery request's conjunctive predicates.
// All predicates are optional; an empty criteria set matches every record.
type FilterCriteria struct {
	// States limits candidates to these two-letter state codes.
	States []string `json:"states,omitempty" validate:"dive,len=2"`
	// NTEECodes matches candidates whose code equals or starts with any
	// entry (full codes such as "P20").
	NTEECodes []string `json:"ntee_codes,omitempty" validate:"dive,min=2,max=4"`
	// NTEEMajorGroups matches candidates whose leading NTEE letter is any
	// entry. A candidate matching either NTEECodes or NTEEMajorGroups is
	// included; both lists may be supplied together.
	NTEEMajorGroups []string `json:"ntee_major_groups,omitempty" validate:"dive,len=1,alpha"`
	// FoundationCode limits by bulk-file foundation classification code.
	FoundationCode string `json:"foundation_code,omitempty" validate:"omitempty,max=2"`
	// NameContains filters by case-insensitive name substring.
	NameContains string `json:"name_contains,omitempty"`

	// Financial bands are inclusive. Nil means no bound; a record missing
	// the field is excluded only when a bound on that field is set.
	MinRevenue *float64 `json:"min_revenue,omitempty" validate:"omitempty,gte=0"`
	MaxRevenue *float64 `json:"max_revenue,omitempty" validate:"omitempty,gte=0"`
	MinAssets  *float64 `json:"min_assets,omitempty" validate:"omitempty,gte=0"`
	MaxAssets  *float64 `json:"max_assets,omitempty" validate:"omitempty,gte=0"`

	// Limit truncates results after sorting; 0 means no limit.
	Limit int `json:"limit,omitempty" validate:"gte=0"`
	// SortBy orders results before truncation.
	SortBy string `json:"sort_by,omitempty" validate:"omitempty,oneof=name revenue assets"`
}

var validate = validator.New()

// Validate rejects malformed criteria before any rows are scanned.
func (c *FilterCriteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &CriteriaError{Message: "field validation failed", Cause: err}
	}
	if c.MinRevenue != nil && c.MaxRevenue != nil && *c.MinRevenue > *c.MaxRevenue {
		return &CriteriaError{Message: "min_revenue exceeds max_revenue"}
	}
	if c.MinAssets != nil && c.MaxAssets != nil && *c.MinAssets > *c.MaxAssets {
		return &CriteriaError{Message: "min_assets exceeds max_assets"}
	}
	return nil
}

// cacheKey derives a stable identity for a criteria value so equal
// criteria hit the same memoized scan. An empty key disables memoization
// for that call.
func (c *FilterCriteria) cacheKey() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

// normalized returns uppercased copies of the criteria's code lists for
// case-insensitive matching during the scan.
func (c *FilterCriteria) normalized() (states, codes, groups []string) {
	for _, s := range c.States {
		states = append(states, strings.ToUpper(strings.TrimSpace(s)))
	}
	for _, code := range c.NTEECodes {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
	}
	for _, g := range c.NTEEMajorGroups {
		groups = append(groups, strings.ToUpper(strings.TrimSpace(g)))
	}
	return states, codes, groups
}
