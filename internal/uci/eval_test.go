package uci

import (
	"testing"
)

func TestFormatEvaluation(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{"positive centipawns", &Evaluation{Score: 123}, "+1.23"},
		{"negative centipawns", &Evaluation{Score: -45}, "-0.45"},
		{"zero", &Evaluation{Score: 0}, "+0.00"},
		{"large", &Evaluation{Score: 1250}, "+12.50"},
		{"small positive", &Evaluation{Score: 15}, "+0.15"},
		{"small negative", &Evaluation{Score: -8}, "-0.08"},
		{"exactly one pawn", &Evaluation{Score: 100}, "+1.00"},
		{"exactly minus one pawn", &Evaluation{Score: -100}, "-1.00"},
		{"very large positive", &Evaluation{Score: 9999}, "+99.99"},
		{"very large negative", &Evaluation{Score: -9999}, "-99.99"},
		{"mate in one", &Evaluation{IsMate: true, MateIn: 1}, "+M1"},
		{"mate in three", &Evaluation{IsMate: true, MateIn: 3}, "+M3"},
		{"getting mated", &Evaluation{IsMate: true, MateIn: -5}, "-M5"},
		{"mate in many", &Evaluation{IsMate: true, MateIn: 15}, "+M15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEvaluation(tt.eval); got != tt.want {
				t.Errorf("FormatEvaluation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		start Evaluation
		line  string
		want  Evaluation
	}{
		{
			name: "depth",
			line: "info depth 20 seldepth 25 multipv 1 score cp 125 nodes 123456",
			want: Evaluation{Depth: 20, Score: 125},
		},
		{
			name: "centipawn score",
			line: "info depth 15 score cp 125 nodes 100000",
			want: Evaluation{Depth: 15, Score: 125},
		},
		{
			name: "negative centipawn score",
			line: "info depth 18 score cp -50 nodes 200000",
			want: Evaluation{Depth: 18, Score: -50},
		},
		{
			name: "mate score",
			line: "info depth 15 score mate 3 nodes 100000",
			want: Evaluation{Depth: 15, IsMate: true, MateIn: 3},
		},
		{
			name: "being mated",
			line: "info depth 20 score mate -3 nodes 300000",
			want: Evaluation{Depth: 20, IsMate: true, MateIn: -3},
		},
		{
			name:  "missing score keeps the old one",
			start: Evaluation{Depth: 10, Score: 50},
			line:  "info nodes 100000 time 500",
			want:  Evaluation{Depth: 10, Score: 50},
		},
		{
			name:  "empty line",
			start: Evaluation{Depth: 10, Score: 25},
			line:  "",
			want:  Evaluation{Depth: 10, Score: 25},
		},
		{
			name: "score without a value",
			line: "info depth 10 score",
			want: Evaluation{Depth: 10},
		},
		{
			name: "depth without a value",
			line: "info nodes 100000 depth",
			want: Evaluation{},
		},
		{
			name: "realistic line",
			line: "info depth 22 seldepth 31 multipv 1 score cp 35 nodes 2145678 nps 2500000 hashfull 456 tbhits 0 time 858 pv e2e4 e7e5 g1f3",
			want: Evaluation{Depth: 22, Score: 35},
		},
		{
			name:  "only the given fields change",
			start: Evaluation{Depth: 5, Score: 100, BestMove: "e2e4"},
			line:  "info depth 10",
			want:  Evaluation{Depth: 10, Score: 100, BestMove: "e2e4"},
		},
		{
			name:  "centipawns after a mate score",
			start: Evaluation{IsMate: true, MateIn: 4},
			line:  "info depth 9 score cp 210",
			want:  Evaluation{Depth: 9, Score: 210},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &UCIEngine{}
			eval := tt.start
			e.parseInfo(tt.line, &eval)
			if eval != tt.want {
				t.Errorf("parseInfo(%q) = %+v, want %+v", tt.line, eval, tt.want)
			}
		})
	}
}
