// Package types provides type definitions for structured data used throughout the grant-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Candidate represents one organization from the bulk exempt-organization
// dataset, validated into a typed record at the ingestion boundary.
// Candidates are immutable once ingested for a given run.
type Candidate struct {
	EIN            string   `json:"ein"`
	Name           string   `json:"name"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	NTEECode       string   `json:"ntee_code,omitempty"`
	FoundationCode string   `json:"foundation_code,omitempty"`
	Revenue        *float64 `json:"revenue,omitempty"`
	Assets         *float64 `json:"assets,omitempty"`
}

// NTEEMajorGroup returns the leading letter of the candidate's NTEE code,
// or empty string when no code is present.
func (c *Candidate) NTEEMajorGroup() string {
	if c.NTEECode == "" {
		return ""
	}
	return strings.ToUpper(c.NTEECode[:1])
}

// IsPrivateFoundation reports whether the candidate's foundation code marks
// it as a private foundation (codes 02-04 in the bulk file).
func (c *Candidate) IsPrivateFoundation() bool {
	switch c.FoundationCode {
	case "02", "03", "04":
		return true
	}
	return false
}

// IsPublicCharity reports whether the candidate is classified as a public
// charity rather than a private foundation.
func (c *Candidate) IsPublicCharity() bool {
	switch c.FoundationCode {
	case "15", "16", "17":
		return true
	}
	return false
}
