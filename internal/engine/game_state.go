package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Evaluate classifies the position for the side to move. Check is tested
// first so that an empty legal-move set can be told apart as mate or
// stalemate.
func Evaluate(board *chess.Board) chess.Status {
	colour := board.ToMove
	inCheck := IsInCheck(board, colour)
	hasMoves := HasLegalMoves(board, colour)

	switch {
	case inCheck && !hasMoves:
		return chess.Checkmate
	case !hasMoves:
		return chess.Stalemate
	case inCheck:
		return chess.Check
	default:
		return chess.Normal
	}
}

