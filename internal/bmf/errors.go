// Package bmf filters the bulk exempt-organization master file into
// candidate sets matching a discovery request's criteria.
package bmf

import "fmt"

// DataUnavailableError means the bulk dataset itself could not be read.
// It is fatal and surfaced immediately; a missing dataset is never
// silently treated as an empty one.
type DataUnavailableError struct {
	Path  string
	Cause error
}

func (e *DataUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bulk dataset unavailable: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("bulk dataset unavailable: %s", e.Path)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Cause
}

// CriteriaError represents invalid filter criteria, rejected before any
// rows are scanned.
type CriteriaError struct {
	Message string
	Cause   error
}

func (e *CriteriaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid filter criteria: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid filter criteria: %s", e.Message)
}

func (e *CriteriaError) Unwrap() error {
	return e.Cause
}
