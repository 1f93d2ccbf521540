package config

import (
	"fmt"
	"time"
)

// EngineConfig configures the external engine adapter.
type EngineConfig struct {
	// Path to the engine binary; empty disables engine moves.
	Path string
	Args []string

	// Search depth sent with "go depth N".
	Depth int

	// Timeout bounds a whole request, handshake included.
	Timeout time.Duration
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Depth:   12,
		Timeout: 10 * time.Second,
	}
}

// Enabled reports whether an engine binary is configured.
func (e *EngineConfig) Enabled() bool {
	return e != nil && e.Path != ""
}

// Validate checks the engine settings.
func (e *EngineConfig) Validate() error {
	if !e.Enabled() {
		return nil
	}
	if e.Depth < 1 {
		return fmt.Errorf("engine depth (%d) must be positive: %w", e.Depth, errInvalid)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("engine timeout (%v) must be positive: %w", e.Timeout, errInvalid)
	}
	return nil
}
