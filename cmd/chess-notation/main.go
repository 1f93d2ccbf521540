// chess-notation replays chess movetext and prints it as numbered algebraic
// notation with the final position and its status.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/uci"
)

const programVersion = "0.1.0"

func main() {
	args, err := loadArgsFromFileIfSpecified(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading argument file: %v\n", err)
		os.Exit(1)
	}

	flag.Usage = usage
	_ = flag.CommandLine.Parse(args)

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-notation version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	files := inputFiles()
	supplier, closeEngine := setupEngine(cfg)
	stats, err := run(context.Background(), cfg, files, os.Stdin, supplier)
	closeEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	reportStatistics(cfg, stats)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// inputFiles returns the files named on the command line and in the -f
// list.
func inputFiles() []string {
	files := flag.Args()
	if *fileListFile != "" {
		listed, err := loadFileList(*fileListFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file list %s: %v\n", *fileListFile, err)
			os.Exit(1)
		}
		files = append(files, listed...)
	}
	return files
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLogFile(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLogFile(file)
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// setupEngine starts the engine adapter when one is configured. The
// returned function shuts it down.
func setupEngine(cfg *config.Config) (game.MoveSupplier, func()) {
	if !cfg.Engine.Enabled() {
		return nil, func() {}
	}
	engine, err := uci.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring engine: %v\n", err)
		os.Exit(2)
	}
	return engine, func() { _ = engine.Close() }
}
