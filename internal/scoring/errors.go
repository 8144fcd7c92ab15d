// Package scoring computes multi-dimensional fit scores for candidate
// funding opportunities against a client organization profile.
package scoring

import "fmt"

// ConfigError represents an invalid scoring configuration. It is fatal at
// validation time, before any candidate is scored.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scoring config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("scoring config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
