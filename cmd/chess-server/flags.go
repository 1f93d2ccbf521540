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
	// Service
	addr        = flag.String("addr", ":8080", "Listen address")
	origins     = flag.String("origins", "*", "Comma-separated origins allowed by CORS")
	maxSessions = flag.Int("max-sessions", 0, "Maximum number of live games (0 = unlimited)")

	// Default start position for new games
	startFEN  = flag.String("fen", "", "Start placement as FEN ranks (default: standard array)")
	startSide = flag.String("side", "w", "Side to move first: w or b")

	// Engine
	enginePath    = flag.String("engine", "", "UCI engine binary used by the engine endpoint")
	engineArgs    = flag.String("engine-args", "", "Space-separated arguments for the engine")
	engineDepth   = flag.Int("depth", 12, "Engine search depth")
	engineTimeout = flag.Duration("engine-timeout", 10*time.Second, "Time limit for each engine request")

	// Logging
	logFile = flag.String("l", "", "Append log output to file (default: stderr)")
	verbose = flag.Bool("v", false, "Log requests, moves and engine exchanges")
	quiet   = flag.Bool("s", false, "Log nothing")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *origins
	cfg.Server.MaxSessions = *maxSessions

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

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games over HTTP under /api/games and pushes their\n")
	fmt.Fprintf(os.Stderr, "events to websocket clients on /ws/games/{id}.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
