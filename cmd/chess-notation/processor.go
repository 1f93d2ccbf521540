package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Stats summarises a run.
type Stats struct {
	Games      int
	Plies      int
	Skipped    int
	Failed     int
	Duplicates int
}

// readInputs loads one work item per file, or a single item from stdin when
// no files are given. Unreadable files are reported and skipped.
func readInputs(files []string, stdin io.Reader, cfg *config.Config) []worker.WorkItem {
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			cfg.Logf(0, "Error reading stdin: %v", err)
			return nil
		}
		return []worker.WorkItem{{Index: 0, Movetext: string(data)}}
	}

	items := make([]worker.WorkItem, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			cfg.Logf(0, "Error opening file %s: %v", name, err)
			continue
		}
		items = append(items, worker.WorkItem{Index: len(items), Source: name, Movetext: string(data)})
	}
	return items
}

// importFunc replays each item in its own session and, when an engine is
// available, asks it for the next move.
func importFunc(cfg *config.Config, supplier game.MoveSupplier) worker.ProcessFunc {
	return func(ctx context.Context, item worker.WorkItem) worker.ProcessResult {
		res := worker.ProcessResult{Index: item.Index, Source: item.Source}

		s, err := game.NewSessionFromConfig(cfg)
		if err != nil {
			res.Error = err
			return res
		}
		imported := s.ImportNamed(item.Source, item.Movetext)
		rec := output.NewRecord(item.Source, s, imported.Diagnostics)

		if supplier != nil && s.Phase() == game.WaitingForMove {
			m, err := s.EngineMove(ctx, supplier)
			if err != nil {
				rec.EngineErr = err
				cfg.Logf(1, "%s: %v", labelOf(item), err)
			} else {
				rec.Engine = fmt.Sprintf("%s (%s)", m.Notation, m.UCI())
			}
		}
		res.Record = rec
		return res
	}
}

func labelOf(item worker.WorkItem) string {
	if item.Source == "" {
		return "stdin"
	}
	return item.Source
}

// processItems imports every item on cfg.Workers goroutines and returns the
// results in input order.
func processItems(ctx context.Context, cfg *config.Config, items []worker.WorkItem, supplier game.MoveSupplier) []worker.ProcessResult {
	n := cfg.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return worker.Run(ctx, items, importFunc(cfg, supplier), worker.WithWorkers(n), worker.WithBufferSize(2*n))
}

// writeResults writes every record in order and tallies the run. With
// duplicate suppression on, the first of a set of duplicates is kept.
func writeResults(cfg *config.Config, results []worker.ProcessResult) (Stats, error) {
	var stats Stats
	var detector *hashing.DuplicateDetector
	if cfg.SuppressDuplicates {
		detector = hashing.NewDuplicateDetector(cfg.ExactDuplicates, 0)
	}

	w := output.NewWriter(cfg.OutputFile, cfg.Output)
	for _, r := range results {
		if r.Error != nil {
			cfg.Logf(0, "%s: %v", r.Source, r.Error)
			stats.Failed++
			continue
		}
		if detector != nil && isDuplicate(detector, r.Record) {
			cfg.Logf(1, "%s: duplicate dropped", r.Source)
			stats.Duplicates++
			continue
		}
		if err := w.WriteRecord(r.Record); err != nil {
			return stats, err
		}
		stats.Games++
		stats.Plies += len(r.Record.Moves)
		stats.Skipped += len(r.Record.Diagnostics)
	}
	return stats, w.Close()
}

func isDuplicate(d *hashing.DuplicateDetector, r *output.Record) bool {
	board, err := chess.NewBoardFromFEN(r.FinalFEN)
	if err != nil {
		return false
	}
	board.ToMove = r.ToMove
	return d.CheckAndAdd(board, len(r.Moves))
}

// run replays the inputs and writes the records.
func run(ctx context.Context, cfg *config.Config, files []string, stdin io.Reader, supplier game.MoveSupplier) (Stats, error) {
	items := readInputs(files, stdin, cfg)
	results := processItems(ctx, cfg, items, supplier)
	stats, err := writeResults(cfg, results)
	stats.Failed += len(files) - len(items)
	if len(files) == 0 && len(items) == 0 {
		stats.Failed++
	}
	return stats, err
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(cfg *config.Config, stats Stats) {
	cfg.Logf(1, "%d game(s) replayed, %d ply(s), %d token(s) skipped.", stats.Games, stats.Plies, stats.Skipped)
	if stats.Duplicates > 0 {
		cfg.Logf(1, "%d duplicate game(s) dropped.", stats.Duplicates)
	}
}
