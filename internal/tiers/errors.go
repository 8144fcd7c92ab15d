package tiers

import "fmt"

// ConfigError represents an invalid threshold configuration. It is fatal at
// validation time, before any scoring starts.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("threshold config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("threshold config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
