package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Apply commits a move to the board. It trusts that m came from the move
// generator for this position; it only rejects moves whose piece is no longer
// where the move says, and promotions without a valid target type.
//
// Afterwards the en passant flag is cleared on every pawn of the side about
// to move, so only a pawn double-pushed on the ply just played stays
// capturable.
func Apply(board *chess.Board, m *chess.Move) error {
	p := board.Piece(m.Piece)
	if p == nil || !p.Active || p.Square != m.From {
		return errors.Wrapf(errors.ErrMoveNotFound, "apply %s", m.UCI())
	}
	if m.Promotion && !m.PromoteTo.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegitimatePromotion, "promote to %s", m.PromoteTo)
	}

	captured := m.Captured
	if captured == chess.NoPiece {
		captured = board.At(m.To)
	}
	if captured != chess.NoPiece && captured != m.Piece {
		board.Remove(captured)
	}

	board.Relocate(m.Piece, m.To)
	p.NeverMoved = false
	p.EnPassantCapturable = m.DoublePush

	if m.Second != chess.NoPiece {
		board.Relocate(m.Second, m.SecondTo)
		board.Piece(m.Second).NeverMoved = false
	}

	if m.Promotion {
		board.Remove(m.Piece)
		id := board.Place(m.PromoteTo, m.Colour, m.To)
		promoted := board.Piece(id)
		promoted.Promoted = true
		promoted.NeverMoved = false
	}

	clearEnPassant(board, m.Colour.Opposite())
	board.ToMove = m.Colour.Opposite()
	return nil
}

// clearEnPassant resets the en passant flag on every pawn of colour.
func clearEnPassant(board *chess.Board, colour chess.Colour) {
	for _, id := range board.Pieces(colour) {
		if p := board.Piece(id); p.Type == chess.Pawn {
			p.EnPassantCapturable = false
		}
	}
}

// ResetsClock reports whether m restarts the fifty-move count: any pawn move
// or any capture.
func ResetsClock(m *chess.Move) bool {
	return m.Type == chess.Pawn || m.IsCapture()
}
