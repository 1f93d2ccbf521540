package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Castling geometry for the standard start: the king travels two files
// toward the rook and the rook lands on the square the king skipped.
var castleRookFiles = map[chess.CastleSide]int{
	chess.KingSide:  7,
	chess.QueenSide: 0,
}

// castlingMoves returns the structurally possible castling moves for king
// id: king unmoved, designated rook present, same colour and unmoved, and
// every square between them empty. Whether the king passes through or lands
// on an attacked square is left to the legality filter.
func castlingMoves(board *chess.Board, id chess.PieceID) []chess.Move {
	king := board.Piece(id)
	if !king.NeverMoved {
		return nil
	}

	var moves []chess.Move
	rank := king.Square.Rank()
	kingFile := king.Square.File()

	for _, side := range []chess.CastleSide{chess.KingSide, chess.QueenSide} {
		rookFile := castleRookFiles[side]
		rookID := board.Get(rookFile, rank)
		rook := board.Piece(rookID)
		if rook == nil || rook.Type != chess.Rook || rook.Colour != king.Colour || !rook.NeverMoved {
			continue
		}

		step := 1
		if rookFile < kingFile {
			step = -1
		}
		if !pathClear(board, rank, kingFile+step, rookFile, step) {
			continue
		}

		kingTo, ok := chess.NewSquare(kingFile+2*step, rank)
		if !ok {
			continue
		}
		rookTo, _ := chess.NewSquare(kingFile+step, rank)

		m := chess.NewMove(id, chess.King, king.Colour, king.Square, kingTo)
		m.Second = rookID
		m.SecondFrom = rook.Square
		m.SecondTo = rookTo
		m.Castle = side
		moves = append(moves, m)
	}
	return moves
}

// pathClear reports whether every square on rank from file start up to (but
// not including) file end is empty.
func pathClear(board *chess.Board, rank, start, end, step int) bool {
	for file := start; file != end; file += step {
		if board.Get(file, rank) != chess.NoPiece {
			return false
		}
	}
	return true
}

// castlingIsSafe checks the squares the king occupies during castling: it
// may not castle out of check, and the single step onto the skipped square
// must itself be legal. The landing square is covered by the ordinary
// filter applied to the whole castling move.
func castlingIsSafe(board *chess.Board, m *chess.Move) bool {
	if IsInCheck(board, m.Colour) {
		return false
	}
	transit := chess.NewMove(m.Piece, chess.King, m.Colour, m.From, m.SecondTo)
	return leavesKingSafe(board, &transit)
}
