package grants

import "fmt"

// AnalysisError represents an unusable analysis request. Sparse data is
// never an error here; analyses proceed flagged low-confidence instead.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("grant pattern analysis error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("grant pattern analysis error: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
