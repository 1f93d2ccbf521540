// Package config provides configuration for the chessrules binaries.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

var errInvalid = errors.ErrInvalidConfig

// Config holds program configuration. Each binary builds one from its
// flags and passes it down; there is no package-level instance.
type Config struct {
	Verbosity int // 0=nothing, 1=summaries, 2=running commentary

	// Start position for new sessions.
	StartFEN    string
	StartToMove chess.Colour

	// Number of worker goroutines for batch imports (0 = one per CPU).
	Workers int

	// Batch imports drop games whose final position repeats an earlier
	// game's. ExactDuplicates also requires the same number of plies.
	SuppressDuplicates bool
	ExactDuplicates    bool

	Output *OutputConfig
	Engine *EngineConfig
	Server *ServerConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:   1,
		StartFEN:    chess.InitialFEN,
		StartToMove: chess.White,
		Output:      NewOutputConfig(),
		Engine:      NewEngineConfig(),
		Server:      NewServerConfig(),
		OutputFile:  os.Stdout,
		LogFile:     os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the diagnostics writer.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// Validate checks the configuration and every sub-config.
func (c *Config) Validate() error {
	if _, err := chess.NewBoardFromFEN(c.StartFEN); err != nil {
		return fmt.Errorf("start position %q: %v: %w", c.StartFEN, err, errInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", c.Workers, errInvalid)
	}
	for _, v := range []interface{ Validate() error }{c.Output, c.Engine, c.Server} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
