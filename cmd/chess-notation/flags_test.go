package main

import (
	"errors"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
)

// saveRestoreBool sets a flag pointer and returns a function restoring it.
// Usage: defer saveRestoreBool(noResults, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

// ---------------------------------------------------------------------------
// applyContentFlags
// ---------------------------------------------------------------------------

func TestApplyContentFlags(t *testing.T) {
	tests := []struct {
		name        string
		noRes       bool
		noNum       bool
		noChk       bool
		noDiag      bool
		json        bool
		width       int
		wantResults bool
		wantNumbers bool
		wantChecks  bool
		wantDiag    bool
		wantJSON    bool
		wantWidth   uint
	}{
		{"defaults", false, false, false, false, false, 80, true, true, true, true, false, 80},
		{"no results", true, false, false, false, false, 80, false, true, true, true, false, 80},
		{"no numbers", false, true, false, false, false, 80, true, false, true, true, false, 80},
		{"no checks", false, false, true, false, false, 80, true, true, false, true, false, 80},
		{"no diagnostics", false, false, false, true, false, 80, true, true, true, false, false, 80},
		{"json", false, false, false, false, true, 80, true, true, true, true, true, 80},
		{"unwrapped", false, false, false, false, false, 0, true, true, true, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(noResults, tt.noRes)()
			defer saveRestoreBool(noNumbers, tt.noNum)()
			defer saveRestoreBool(noChecks, tt.noChk)()
			defer saveRestoreBool(noDiagnostics, tt.noDiag)()
			defer saveRestoreBool(jsonOutput, tt.json)()
			defer saveRestoreInt(lineLength, tt.width)()

			cfg := config.NewConfig()
			applyContentFlags(cfg)

			if cfg.Output.KeepResults != tt.wantResults {
				t.Errorf("KeepResults = %v; want %v", cfg.Output.KeepResults, tt.wantResults)
			}
			if cfg.Output.KeepMoveNumbers != tt.wantNumbers {
				t.Errorf("KeepMoveNumbers = %v; want %v", cfg.Output.KeepMoveNumbers, tt.wantNumbers)
			}
			if cfg.Output.KeepChecks != tt.wantChecks {
				t.Errorf("KeepChecks = %v; want %v", cfg.Output.KeepChecks, tt.wantChecks)
			}
			if cfg.Output.ShowDiagnostics != tt.wantDiag {
				t.Errorf("ShowDiagnostics = %v; want %v", cfg.Output.ShowDiagnostics, tt.wantDiag)
			}
			if cfg.Output.JSONFormat != tt.wantJSON {
				t.Errorf("JSONFormat = %v; want %v", cfg.Output.JSONFormat, tt.wantJSON)
			}
			if cfg.Output.MaxLineLength != tt.wantWidth {
				t.Errorf("MaxLineLength = %d; want %d", cfg.Output.MaxLineLength, tt.wantWidth)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyOutputFormatFlags
// ---------------------------------------------------------------------------

func TestApplyOutputFormatFlags(t *testing.T) {
	tests := []struct {
		format  string
		want    config.OutputFormat
		wantErr bool
	}{
		{"", config.SAN, false},
		{"san", config.SAN, false},
		{"uci", config.UCI, false},
		{"lalg", config.UCI, false},
		{"xml", config.SAN, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			defer saveRestoreString(outputFormat, tt.format)()
			cfg := config.NewConfig()
			err := applyOutputFormatFlags(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyOutputFormatFlags() error = %v; wantErr %v", err, tt.wantErr)
			}
			if cfg.Output.Format != tt.want {
				t.Errorf("Format = %v; want %v", cfg.Output.Format, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyStartFlags
// ---------------------------------------------------------------------------

func TestApplyStartFlags(t *testing.T) {
	t.Run("defaults to the standard array", func(t *testing.T) {
		defer saveRestoreString(startFEN, "")()
		defer saveRestoreString(startSide, "w")()
		cfg := config.NewConfig()
		if err := applyStartFlags(cfg); err != nil {
			t.Fatalf("applyStartFlags() error = %v", err)
		}
		if cfg.StartFEN != chess.InitialFEN || cfg.StartToMove != chess.White {
			t.Errorf("start = %q %v; want the standard array with White", cfg.StartFEN, cfg.StartToMove)
		}
	})

	t.Run("custom placement with Black to move", func(t *testing.T) {
		defer saveRestoreString(startFEN, "4k3/8/8/8/8/8/8/4K3")()
		defer saveRestoreString(startSide, "black")()
		cfg := config.NewConfig()
		if err := applyStartFlags(cfg); err != nil {
			t.Fatalf("applyStartFlags() error = %v", err)
		}
		if cfg.StartFEN != "4k3/8/8/8/8/8/8/4K3" || cfg.StartToMove != chess.Black {
			t.Errorf("start = %q %v; want 4k3/8/8/8/8/8/8/4K3 with Black", cfg.StartFEN, cfg.StartToMove)
		}
	})

	t.Run("bad side", func(t *testing.T) {
		defer saveRestoreString(startSide, "red")()
		if err := applyStartFlags(config.NewConfig()); err == nil {
			t.Error("applyStartFlags() expected error for side \"red\"")
		}
	})
}

func TestApplyEngineFlags(t *testing.T) {
	defer saveRestoreString(enginePath, "/usr/bin/stockfish")()
	defer saveRestoreString(engineArgs, "--threads 2")()
	defer saveRestoreInt(engineDepth, 7)()
	oldTimeout := *engineTimeout
	*engineTimeout = 3 * time.Second
	defer func() { *engineTimeout = oldTimeout }()

	cfg := config.NewConfig()
	applyEngineFlags(cfg)

	if !cfg.Engine.Enabled() {
		t.Fatal("engine should be enabled")
	}
	if len(cfg.Engine.Args) != 2 || cfg.Engine.Args[0] != "--threads" || cfg.Engine.Args[1] != "2" {
		t.Errorf("Args = %v; want [--threads 2]", cfg.Engine.Args)
	}
	if cfg.Engine.Depth != 7 || cfg.Engine.Timeout != 3*time.Second {
		t.Errorf("Depth, Timeout = %d, %v; want 7, 3s", cfg.Engine.Depth, cfg.Engine.Timeout)
	}
}

// ---------------------------------------------------------------------------
// applyFlags
// ---------------------------------------------------------------------------

func TestApplyFlags(t *testing.T) {
	t.Run("verbosity", func(t *testing.T) {
		tests := []struct {
			name    string
			quiet   bool
			verbose bool
			want    int
		}{
			{"default", false, false, 1},
			{"quiet", true, false, 0},
			{"verbose", false, true, 2},
			{"quiet wins", true, true, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				defer saveRestoreBool(quiet, tt.quiet)()
				defer saveRestoreBool(verbose, tt.verbose)()
				cfg := config.NewConfig()
				if err := applyFlags(cfg); err != nil {
					t.Fatalf("applyFlags() error = %v", err)
				}
				if cfg.Verbosity != tt.want {
					t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, tt.want)
				}
			})
		}
	})

	t.Run("workers", func(t *testing.T) {
		defer saveRestoreInt(workers, 3)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags() error = %v", err)
		}
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d; want 3", cfg.Workers)
		}
	})

	t.Run("invalid settings", func(t *testing.T) {
		tests := []struct {
			name  string
			setup func() func()
		}{
			{"negative workers", func() func() { return saveRestoreInt(workers, -1) }},
			{"malformed placement", func() func() { return saveRestoreString(startFEN, "8/8/8") }},
			{"engine without depth", func() func() {
				r1 := saveRestoreString(enginePath, "stockfish")
				r2 := saveRestoreInt(engineDepth, 0)
				return func() { r2(); r1() }
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				defer tt.setup()()
				err := applyFlags(config.NewConfig())
				if !errors.Is(err, chesserrors.ErrInvalidConfig) {
					t.Errorf("applyFlags() error = %v; want ErrInvalidConfig", err)
				}
			})
		}
	})
}
