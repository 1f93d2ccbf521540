// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	outputFormat = flag.String("W", "", "Move format: san (default) or uci")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")

	// Content options
	noResults     = flag.Bool("noresults", false, "Don't output results")
	noNumbers     = flag.Bool("nonumbers", false, "Don't output move numbers")
	noChecks      = flag.Bool("nochecks", false, "Drop check and mate marks from moves")
	noDiagnostics = flag.Bool("nodiag", false, "Don't list skipped tokens")

	// Duplicates
	dropDuplicates  = flag.Bool("D", false, "Drop games whose final position repeats an earlier game")
	exactDuplicates = flag.Bool("exact", false, "With -D, also require the same number of plies")

	// Start position
	startFEN  = flag.String("fen", "", "Start placement as FEN ranks (default: standard array)")
	startSide = flag.String("side", "w", "Side to move first: w or b")

	// Engine
	enginePath    = flag.String("engine", "", "UCI engine binary; its best move is appended to each game")
	engineArgs    = flag.String("engine-args", "", "Space-separated arguments for the engine")
	engineDepth   = flag.Int("depth", 12, "Engine search depth")
	engineTimeout = flag.Duration("engine-timeout", 10*time.Second, "Time limit for each engine request")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Log every move and engine exchange")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")

	// File input options
	fileListFile = flag.String("f", "", "File containing list of movetext files to process (one per line)")
	// Note: -A flag is handled manually before flag.Parse() in loadArgsFromFileIfSpecified
	_ = flag.String("A", "", "File containing command-line arguments (one per line, # for comments)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	applyContentFlags(cfg)
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	if err := applyStartFlags(cfg); err != nil {
		return err
	}
	applyEngineFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	cfg.Workers = *workers
	cfg.SuppressDuplicates = *dropDuplicates
	cfg.ExactDuplicates = *exactDuplicates
	return cfg.Validate()
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.KeepResults = !*noResults
	cfg.Output.KeepMoveNumbers = !*noNumbers
	cfg.Output.KeepChecks = !*noChecks
	cfg.Output.ShowDiagnostics = !*noDiagnostics
	cfg.Output.JSONFormat = *jsonOutput
	if *lineLength >= 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
}

// applyOutputFormatFlags configures the move format.
func applyOutputFormatFlags(cfg *config.Config) error {
	if *outputFormat == "" {
		cfg.Output.Format = config.SAN
		return nil
	}
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	return nil
}

// applyStartFlags configures the start position.
func applyStartFlags(cfg *config.Config) error {
	if *startFEN != "" {
		cfg.StartFEN = *startFEN
	}
	side, err := chess.ParseColour(*startSide)
	if err != nil {
		return fmt.Errorf("-side: %w", err)
	}
	cfg.StartToMove = side
	return nil
}

// applyEngineFlags configures the external engine.
func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Path = *enginePath
	cfg.Engine.Args = strings.Fields(*engineArgs)
	cfg.Engine.Depth = *engineDepth
	cfg.Engine.Timeout = *engineTimeout
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-notation [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays free-form movetext, one game per file (or stdin), and prints\n")
	fmt.Fprintf(os.Stderr, "numbered algebraic notation, the final position and its status.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMove formats (-W):\n")
	fmt.Fprintf(os.Stderr, "  san    Standard Algebraic Notation (default)\n")
	fmt.Fprintf(os.Stderr, "  uci    Engine codes (e2e4, e7e8q)\n")
}
