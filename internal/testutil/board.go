package testutil

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Movetext fixtures shared across packages.
const (
	// ScholarsMate ends with Black checkmated.
	ScholarsMate = "1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7#"

	// FoolsMate ends with White checkmated.
	FoolsMate = "1. f3 e5 2. g4 Qh4#"

	// KnightShuffle returns to the start position twice, giving a threefold
	// repetition on its last ply.
	KnightShuffle = "1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8"
)

// MustBoard loads a FEN-ranks placement and sets the side to move.
// It calls t.Fatal if the placement is malformed.
func MustBoard(t *testing.T, fen string, toMove chess.Colour) *chess.Board {
	t.Helper()
	board, err := chess.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
	}
	board.ToMove = toMove
	return board
}
