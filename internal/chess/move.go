package chess

import "strings"

// Move represents a single resolved move. A Move is only meaningful against
// the board state it was generated from.
type Move struct {
	// The moving piece, its type and colour at the time of the move.
	Piece  PieceID
	Type   PieceType
	Colour Colour

	// Start and end squares of the moving piece.
	From Square
	To   Square

	// Second piece for castling (the rook) with its own start and end.
	Second     PieceID
	SecondFrom Square
	SecondTo   Square
	Castle     CastleSide

	// Captured is the piece removed by this move. It differs from the
	// occupant of To for en passant.
	Captured PieceID

	// EnPassant marks a pawn capture onto an empty square.
	EnPassant bool

	// Promotion is set when a pawn reaches the last rank. PromoteTo is
	// NoPieceType until the target has been chosen.
	Promotion bool
	PromoteTo PieceType

	// DoublePush marks a two-square pawn advance, which exposes the pawn to
	// en passant for one ply.
	DoublePush bool

	// Ply index (0-based) once the move has been recorded in a history.
	Ply int

	// Notation is the SAN text, filled in when the move is executed.
	Notation string
}

// NewMove creates a move of piece id between two squares with no capture.
func NewMove(id PieceID, t PieceType, c Colour, from, to Square) Move {
	return Move{
		Piece:      id,
		Type:       t,
		Colour:     c,
		From:       from,
		To:         to,
		Second:     NoPiece,
		SecondFrom: NoSquare,
		SecondTo:   NoSquare,
		Captured:   NoPiece,
	}
}

// IsCapture returns true if this move removes an enemy piece.
func (m *Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	return m.Castle != NoCastle
}

// NeedsPromotionChoice returns true for a promotion whose target is unset.
func (m *Move) NeedsPromotionChoice() bool {
	return m.Promotion && m.PromoteTo == NoPieceType
}

// UCI returns the engine code for the move: origin and destination squares
// plus a lowercase promotion letter, e.g. "e7e8q".
func (m *Move) UCI() string {
	var sb strings.Builder
	sb.WriteString(m.From.Code())
	sb.WriteString(m.To.Code())
	if m.Promotion && m.PromoteTo != NoPieceType {
		sb.WriteByte(m.PromoteTo.Letter() + ('a' - 'A'))
	}
	return sb.String()
}

// SameAs reports whether two moves describe the same piece travelling between
// the same squares, ignoring notation and ply bookkeeping.
func (m *Move) SameAs(o *Move) bool {
	return m.Piece == o.Piece && m.From == o.From && m.To == o.To
}
