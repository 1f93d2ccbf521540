package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// pawnMoves generates pushes, double pushes, diagonal captures and en
// passant captures for the pawn id. Moves onto the last rank carry the
// promotion flag; the target type is chosen later.
func pawnMoves(board *chess.Board, id chess.PieceID) []chess.Move {
	p := board.Piece(id)
	from := p.Square
	dir := p.Colour.Forward()
	lastRank := p.Colour.Opposite().HomeRank()
	moves := make([]chess.Move, 0, 4)

	add := func(m chess.Move) {
		m.Promotion = m.To.Rank() == lastRank
		moves = append(moves, m)
	}

	// Pushes.
	if one, ok := from.Offset(0, dir); ok && board.IsEmpty(one) {
		add(chess.NewMove(id, chess.Pawn, p.Colour, from, one))

		if p.NeverMoved {
			if two, ok := from.Offset(0, 2*dir); ok && board.IsEmpty(two) {
				m := chess.NewMove(id, chess.Pawn, p.Colour, from, two)
				m.DoublePush = true
				add(m)
			}
		}
	}

	// Captures, including en passant.
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}

		if occupant := board.At(to); occupant != chess.NoPiece {
			if board.Piece(occupant).Colour != p.Colour {
				m := chess.NewMove(id, chess.Pawn, p.Colour, from, to)
				m.Captured = occupant
				add(m)
			}
			continue
		}

		if victim := enPassantVictim(board, p, df); victim != chess.NoPiece {
			m := chess.NewMove(id, chess.Pawn, p.Colour, from, to)
			m.Captured = victim
			m.EnPassant = true
			add(m)
		}
	}

	return moves
}

// enPassantVictim returns the enemy pawn beside p (df files away) that may
// be captured en passant, or NoPiece. The capturing pawn must stand on its
// fifth rank and the victim must have double-pushed on the previous ply.
func enPassantVictim(board *chess.Board, p *chess.Piece, df int) chess.PieceID {
	fifthRank := p.Colour.HomeRank() + 4*p.Colour.Forward()
	if p.Square.Rank() != fifthRank {
		return chess.NoPiece
	}

	beside, ok := p.Square.Offset(df, 0)
	if !ok {
		return chess.NoPiece
	}
	id := board.At(beside)
	victim := board.Piece(id)
	if victim == nil || victim.Type != chess.Pawn || victim.Colour == p.Colour || !victim.EnPassantCapturable {
		return chess.NoPiece
	}
	return id
}
