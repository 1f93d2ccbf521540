// Package engine provides chess move generation, legality filtering, move
// execution and game-state evaluation over a chess.Board.
package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// template describes how a non-pawn piece moves: a set of step vectors,
// either taken once (knight, king) or repeated until blocked (sliders).
type template struct {
	steps  [][2]int
	slides bool
}

var (
	diagonalSteps = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straightSteps = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	knightSteps   = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps     = append(append([][2]int{}, diagonalSteps...), straightSteps...)
)

// templates is indexed by piece type. Pawns have their own generator.
var templates = [...]template{
	chess.Knight: {steps: knightSteps},
	chess.Bishop: {steps: diagonalSteps, slides: true},
	chess.Rook:   {steps: straightSteps, slides: true},
	chess.Queen:  {steps: kingSteps, slides: true},
	chess.King:   {steps: kingSteps},
}

// Moves returns the moves of piece id. With filterLegal set, moves that
// would leave the mover's own king in check are removed.
func Moves(board *chess.Board, id chess.PieceID, filterLegal bool) []chess.Move {
	moves := pseudoLegalMoves(board, id, true)
	if !filterLegal {
		return moves
	}
	return filterLegalMoves(board, moves)
}

// pseudoLegalMoves dispatches on the piece type. Castling is left out when
// the caller only needs capture reach, as in check detection.
func pseudoLegalMoves(board *chess.Board, id chess.PieceID, withCastling bool) []chess.Move {
	p := board.Piece(id)
	if p == nil || !p.Active {
		return nil
	}

	switch p.Type {
	case chess.Pawn:
		return pawnMoves(board, id)
	case chess.King:
		moves := templateMoves(board, id, templates[chess.King])
		if withCastling {
			moves = append(moves, castlingMoves(board, id)...)
		}
		return moves
	default:
		return templateMoves(board, id, templates[p.Type])
	}
}

// templateMoves walks each step vector from the piece's square. A friendly
// piece blocks its square; an enemy piece is a capture and ends the ray.
func templateMoves(board *chess.Board, id chess.PieceID, tmpl template) []chess.Move {
	p := board.Piece(id)
	from := p.Square
	moves := make([]chess.Move, 0, 8)

	for _, step := range tmpl.steps {
		sq := from
		for {
			next, ok := sq.Offset(step[0], step[1])
			if !ok {
				break
			}
			m := chess.NewMove(id, p.Type, p.Colour, from, next)
			if occupant := board.At(next); occupant != chess.NoPiece {
				if board.Piece(occupant).Colour != p.Colour {
					m.Captured = occupant
					moves = append(moves, m)
				}
				break
			}
			moves = append(moves, m)
			if !tmpl.slides {
				break
			}
			sq = next
		}
	}
	return moves
}

// AttackedSquares returns the squares piece id controls: every square it
// could capture on, including squares held by its own side. Pawns attack
// their two forward diagonals whether or not anything stands there.
func AttackedSquares(board *chess.Board, id chess.PieceID) []chess.Square {
	p := board.Piece(id)
	if p == nil || !p.Active {
		return nil
	}

	var squares []chess.Square
	if p.Type == chess.Pawn {
		for _, df := range []int{-1, 1} {
			if sq, ok := p.Square.Offset(df, p.Colour.Forward()); ok {
				squares = append(squares, sq)
			}
		}
		return squares
	}

	tmpl := templates[p.Type]
	for _, step := range tmpl.steps {
		sq := p.Square
		for {
			next, ok := sq.Offset(step[0], step[1])
			if !ok {
				break
			}
			squares = append(squares, next)
			if !tmpl.slides || board.At(next) != chess.NoPiece {
				break
			}
			sq = next
		}
	}
	return squares
}

// AttackMap marks every square attacked by any piece of colour c.
func AttackMap(board *chess.Board, c chess.Colour) [chess.NumSquares]bool {
	var attacked [chess.NumSquares]bool
	for _, id := range board.Pieces(c) {
		for _, sq := range AttackedSquares(board, id) {
			attacked[sq] = true
		}
	}
	return attacked
}
