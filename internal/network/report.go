package network

import "fmt"

// minBoardForConfidence is the roster size below which network conclusions
// are flagged provisional.
const minBoardForConfidence = 3

// Report is the full network intelligence output for one organization,
// keyed by its EIN.
type Report struct {
	OrgEIN        string           `json:"org_ein"`
	OrgName       string           `json:"org_name"`
	NodeCount     int              `json:"node_count"`
	EdgeCount     int              `json:"edge_count"`
	Centrality    []NodeCentrality `json:"centrality"`
	Clusters      []Cluster        `json:"clusters"`
	Funder        *FunderAnalysis  `json:"funder,omitempty"`
	LowConfidence bool             `json:"low_confidence"`
}

// AnalysisError represents an unusable network analysis request.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network analysis error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("network analysis error: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
