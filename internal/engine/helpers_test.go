package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// mustBoard loads a placement string and sets the side to move.
func mustBoard(t *testing.T, fen string, toMove chess.Colour) *chess.Board {
	t.Helper()
	return testutil.MustBoard(t, fen, toMove)
}

// findMove returns the legal move of the side to move with the given
// origin+destination code.
func findMove(t *testing.T, board *chess.Board, code string) chess.Move {
	t.Helper()
	for _, m := range LegalMoves(board, board.ToMove) {
		if m.UCI() == code {
			return m
		}
	}
	t.Fatalf("no legal move %s in %s", code, board.Serialize())
	return chess.Move{}
}

// hasMove reports whether the side to move has a legal move with this code.
func hasMove(board *chess.Board, code string) bool {
	for _, m := range LegalMoves(board, board.ToMove) {
		if m.UCI() == code {
			return true
		}
	}
	return false
}

// play applies a sequence of codes. Promotions default to a queen.
func play(t *testing.T, board *chess.Board, codes ...string) {
	t.Helper()
	for _, code := range codes {
		m := findMove(t, board, code)
		if m.Promotion {
			m.PromoteTo = chess.Queen
		}
		if err := Apply(board, &m); err != nil {
			t.Fatalf("Apply(%s) failed: %v", code, err)
		}
	}
}

// legalCodes returns the sorted codes of every legal move for the side to move.
func legalCodes(board *chess.Board) []string {
	moves := LegalMoves(board, board.ToMove)
	codes := make([]string, 0, len(moves))
	for _, m := range moves {
		codes = append(codes, m.UCI())
	}
	sort.Strings(codes)
	return codes
}
