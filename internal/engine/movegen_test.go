package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestMoves_LonePiece(t *testing.T) {
	tests := []struct {
		name      string
		pieceType chess.PieceType
		square    string
		want      int
	}{
		{"knight in corner", chess.Knight, "a1", 2},
		{"knight in centre", chess.Knight, "d4", 8},
		{"bishop in centre", chess.Bishop, "d4", 13},
		{"rook in centre", chess.Rook, "d4", 14},
		{"rook in corner", chess.Rook, "h8", 14},
		{"queen in centre", chess.Queen, "d4", 27},
		{"king in centre", chess.King, "d4", 8},
		{"king in corner", chess.King, "a1", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := chess.NewBoard()
			id := board.Place(tt.pieceType, chess.White, chess.MustSquare(tt.square))

			got := Moves(board, id, false)
			if len(got) != tt.want {
				t.Errorf("Moves(%s on %s) = %d moves, want %d", tt.pieceType, tt.square, len(got), tt.want)
			}
		})
	}
}

func TestMoves_Blocking(t *testing.T) {
	board := chess.NewBoard()
	rook := board.Place(chess.Rook, chess.White, chess.MustSquare("a1"))
	board.Place(chess.Pawn, chess.White, chess.MustSquare("a3"))
	victim := board.Place(chess.Pawn, chess.Black, chess.MustSquare("c1"))

	moves := Moves(board, rook, false)

	var targets []string
	captures := 0
	for _, m := range moves {
		targets = append(targets, m.To.Code())
		if m.IsCapture() {
			captures++
			testutil.AssertEqual(t, m.Captured, victim)
		}
	}
	testutil.AssertEqual(t, targets, []string{"b1", "c1", "a2"})
	if got := captures; got != 1 {
		t.Errorf("captures = %d; want 1", got)
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		toMove chess.Colour
		from   string
		want   []string
	}{
		{
			name: "unmoved pawn pushes one or two",
			fen:  chess.InitialFEN,
			from: "e2",
			want: []string{"e2e3", "e2e4"},
		},
		{
			name:   "black unmoved pawn",
			fen:    chess.InitialFEN,
			toMove: chess.Black,
			from:   "d7",
			want:   []string{"d7d6", "d7d5"},
		},
		{
			name: "pawn off its start square pushes once",
			fen:  "4k3/8/8/8/8/4P3/8/4K3",
			from: "e3",
			want: []string{"e3e4"},
		},
		{
			name: "double push blocked on the far square",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3",
			from: "e2",
			want: []string{"e2e3"},
		},
		{
			name: "push blocked on the near square",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3",
			from: "e2",
			want: nil,
		},
		{
			name: "diagonal captures only onto enemy pieces",
			fen:  "4k3/8/8/8/8/3n1N2/4P3/4K3",
			from: "e2",
			want: []string{"e2e3", "e2e4", "e2d3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen, tt.toMove)

			var got []string
			for _, m := range Moves(board, board.At(chess.MustSquare(tt.from)), false) {
				got = append(got, m.UCI())
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestPawnMoves_PromotionFlag(t *testing.T) {
	board := mustBoard(t, "r3k3/1P6/8/8/8/8/8/4K3", chess.White)
	pawn := board.At(chess.MustSquare("b7"))

	moves := Moves(board, pawn, false)
	if got := len(moves); got != 2 {
		t.Errorf("len(moves) = %d; want 2", got)
	}
	for _, m := range moves {
		if !m.Promotion {
			t.Errorf("move %s should carry the promotion flag", m.UCI())
		}
		if got := m.PromoteTo; got != chess.NoPieceType {
			t.Errorf("m.PromoteTo = %v; want %v", got, chess.NoPieceType)
		}
		if !m.NeedsPromotionChoice() {
			t.Error("m.NeedsPromotionChoice() = false; want true")
		}
	}
}

func TestMoves_CastlingOnlyWhenGenerated(t *testing.T) {
	board := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R", chess.White)
	king := board.King(chess.White)

	castles := 0
	for _, m := range Moves(board, king, false) {
		if m.IsCastle() {
			castles++
		}
	}
	if got := castles; got != 2 {
		t.Errorf("castles = %d; want 2", got)
	}

	// Check detection never considers castling as a way to reach a square.
	for _, m := range pseudoLegalMoves(board, king, false) {
		if m.IsCastle() {
			t.Errorf("unexpected castle %s", m.UCI())
		}
	}
}

func TestAttackedSquares(t *testing.T) {
	t.Run("pawn attacks both diagonals", func(t *testing.T) {
		board := chess.NewInitialBoard()
		got := AttackedSquares(board, board.At(chess.MustSquare("e2")))
		testutil.AssertEqual(t, got, []chess.Square{chess.MustSquare("d3"), chess.MustSquare("f3")})
	})

	t.Run("rook includes its defended piece", func(t *testing.T) {
		board := chess.NewBoard()
		rook := board.Place(chess.Rook, chess.White, chess.MustSquare("a1"))
		board.Place(chess.Pawn, chess.White, chess.MustSquare("a3"))

		got := AttackedSquares(board, rook)
		if got := len(got); got != 9 {
			t.Errorf("len(got) = %d; want 9", got)
		}
	})

	t.Run("attack map of the initial position", func(t *testing.T) {
		board := chess.NewInitialBoard()
		attacked := AttackMap(board, chess.White)
		for _, code := range []string{"a3", "e3", "h3", "d2", "f1"} {
			if !attacked[chess.MustSquare(code)] {
				t.Errorf("%s should be attacked", code)
			}
		}
		for _, code := range []string{"e4", "a1", "d5"} {
			if attacked[chess.MustSquare(code)] {
				t.Errorf("%s should not be attacked", code)
			}
		}
	})
}
