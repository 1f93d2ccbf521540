package config

import "fmt"

// OutputFormat represents the notation used for written moves.
type OutputFormat int

const (
	SAN OutputFormat = iota // Standard Algebraic Notation
	UCI                     // Engine move codes (e2e4, e7e8q)
)

func (f OutputFormat) String() string {
	switch f {
	case SAN:
		return "san"
	case UCI:
		return "uci"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat maps a flag value onto an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "san", "SAN":
		return SAN, nil
	case "uci", "UCI", "lalg":
		return UCI, nil
	}
	return SAN, fmt.Errorf("unknown output format %q: %w", s, errInvalid)
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies the move notation (SAN or UCI)
	Format OutputFormat

	// MaxLineLength is the maximum line length for text output
	MaxLineLength uint

	// JSONFormat enables JSON output instead of text
	JSONFormat bool

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether the game result is written after the moves
	KeepResults bool

	// KeepChecks controls whether check symbols (+, #) are included
	KeepChecks bool

	// ShowDiagnostics prints skipped tokens after each game
	ShowDiagnostics bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		KeepChecks:      true,
		ShowDiagnostics: true,
	}
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.Format != SAN && o.Format != UCI {
		return fmt.Errorf("output format %v: %w", o.Format, errInvalid)
	}
	if o.MaxLineLength != 0 && o.MaxLineLength < 10 {
		return fmt.Errorf("line length %d is too short: %w", o.MaxLineLength, errInvalid)
	}
	return nil
}
