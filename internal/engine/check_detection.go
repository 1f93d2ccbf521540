package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check: some
// opposing piece's freshly generated pseudo-legal moves reach the king's
// square. A side without a king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king == chess.NoPiece {
		return false
	}
	return isSquareReached(board, board.Piece(king).Square, colour.Opposite())
}

// isSquareReached returns true if any active piece of byColour has a
// pseudo-legal move ending on sq.
func isSquareReached(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, id := range board.Pieces(byColour) {
		for _, m := range pseudoLegalMoves(board, id, false) {
			if m.To == sq {
				return true
			}
		}
	}
	return false
}

// Checkers returns the enemy pieces currently giving check to colour's king.
func Checkers(board *chess.Board, colour chess.Colour) []chess.PieceID {
	king := board.King(colour)
	if king == chess.NoPiece {
		return nil
	}
	kingSq := board.Piece(king).Square

	var checkers []chess.PieceID
	for _, id := range board.Pieces(colour.Opposite()) {
		for _, m := range pseudoLegalMoves(board, id, false) {
			if m.To == kingSq {
				checkers = append(checkers, id)
				break
			}
		}
	}
	return checkers
}
