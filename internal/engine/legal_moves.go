package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// undoToken records what a provisional move changed, so that reverting is a
// pure data operation rather than something re-derived from the board.
type undoToken struct {
	mover      chess.PieceID
	from       chess.Square
	second     chess.PieceID
	secondFrom chess.Square
	captured   chess.PieceID
}

// provisionalApply relocates the mover (and castling rook) and lifts any
// captured piece. Piece flags are left alone; only occupancy matters for
// the check test. The returned token must be reverted before the board is
// read by anything else.
func provisionalApply(board *chess.Board, m *chess.Move) undoToken {
	u := undoToken{
		mover:      m.Piece,
		from:       m.From,
		second:     m.Second,
		secondFrom: m.SecondFrom,
		captured:   chess.NoPiece,
	}

	victim := m.Captured
	if victim == chess.NoPiece {
		victim = board.At(m.To)
	}
	if victim != chess.NoPiece && victim != m.Piece {
		board.Remove(victim)
		u.captured = victim
	}

	board.Relocate(m.Piece, m.To)
	if m.Second != chess.NoPiece {
		board.Relocate(m.Second, m.SecondTo)
	}
	return u
}

// revert undoes a provisional move.
func (u undoToken) revert(board *chess.Board) {
	if u.second != chess.NoPiece {
		board.Relocate(u.second, u.secondFrom)
	}
	board.Relocate(u.mover, u.from)
	if u.captured != chess.NoPiece {
		board.Restore(u.captured)
	}
}

// leavesKingSafe plays m provisionally and reports whether the mover's king
// is out of reach of every enemy piece afterwards.
func leavesKingSafe(board *chess.Board, m *chess.Move) bool {
	u := provisionalApply(board, m)
	safe := !IsInCheck(board, m.Colour)
	u.revert(board)
	return safe
}

// IsLegal reports whether the pseudo-legal move m leaves the mover's own king
// unreachable. Castling additionally requires the king's start and transit
// squares to be safe.
func IsLegal(board *chess.Board, m *chess.Move) bool {
	if m.IsCastle() && !castlingIsSafe(board, m) {
		return false
	}
	return leavesKingSafe(board, m)
}

// filterLegalMoves keeps only the moves that pass IsLegal.
func filterLegalMoves(board *chess.Board, moves []chess.Move) []chess.Move {
	legal := moves[:0]
	for i := range moves {
		if IsLegal(board, &moves[i]) {
			legal = append(legal, moves[i])
		}
	}
	return legal
}

// LegalMoves returns the union of legal moves for every piece of colour c.
func LegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	for _, id := range board.Pieces(colour) {
		moves = append(moves, Moves(board, id, true)...)
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, id := range board.Pieces(colour) {
		moves := pseudoLegalMoves(board, id, true)
		for i := range moves {
			if IsLegal(board, &moves[i]) {
				return true
			}
		}
	}
	return false
}

// LegalMovesFrom returns the legal moves of whatever piece of the side to
// move stands on sq. An empty or enemy-held square yields nothing.
func LegalMovesFrom(board *chess.Board, sq chess.Square) []chess.Move {
	p := board.PieceOn(sq)
	if p == nil || p.Colour != board.ToMove {
		return nil
	}
	return Moves(board, board.At(sq), true)
}
