// chess-tui plays chess in the terminal, optionally against a UCI engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/tui"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

var (
	startFEN      = flag.String("fen", "", "Start placement as FEN ranks (default: standard array)")
	startSide     = flag.String("side", "w", "Side to move first: w or b")
	importFile    = flag.String("import", "", "Movetext file to replay before play starts")
	enginePath    = flag.String("engine", "", "UCI engine binary to play against")
	engineArgs    = flag.String("engine-args", "", "Space-separated arguments for the engine")
	engineDepth   = flag.Int("depth", 12, "Engine search depth")
	engineTimeout = flag.Duration("engine-timeout", 10*time.Second, "Time limit for each engine request")
	logFile       = flag.String("l", "", "Write diagnostics to log file (the screen belongs to the board)")
	verbose       = flag.Bool("v", false, "Log every move and engine exchange")
)

func main() {
	flag.Parse()

	cfg := config.NewConfigBuilder().WithLogFile(io.Discard).Build()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		cfg.SetLogFile(file)
	}

	s, err := newSession(cfg, *importFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var supplier game.MoveSupplier
	if cfg.Engine.Enabled() {
		engine, err := uci.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error configuring engine: %v\n", err)
			os.Exit(2)
		}
		defer engine.Close()
		supplier = engine
	}

	if err := tui.Run(s, supplier); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if *startFEN != "" {
		cfg.StartFEN = *startFEN
	}
	side, err := chess.ParseColour(*startSide)
	if err != nil {
		return fmt.Errorf("-side: %w", err)
	}
	cfg.StartToMove = side

	cfg.Engine.Path = *enginePath
	cfg.Engine.Args = strings.Fields(*engineArgs)
	cfg.Engine.Depth = *engineDepth
	cfg.Engine.Timeout = *engineTimeout
	if *verbose {
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// newSession starts a session from cfg and replays the movetext in path,
// if any. Skipped tokens are logged.
func newSession(cfg *config.Config, path string) (*game.Session, error) {
	s, err := game.NewSessionFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	res := s.ImportNamed(path, string(data))
	cfg.Logf(1, "%s: %d move(s) played, %d token(s) skipped", path, res.Played, len(res.Diagnostics))
	return s, nil
}
