package uci

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// PositionCommand builds the "position" command for pos. Custom starts are
// sent as a full FEN whose castling field is derived from which kings and
// rooks still stand on their home squares.
func PositionCommand(pos game.Position) string {
	var sb strings.Builder
	if pos.IsStandardStart() {
		sb.WriteString("position startpos")
	} else {
		side := "w"
		if pos.ToMove == chess.Black {
			side = "b"
		}
		fmt.Fprintf(&sb, "position fen %s %s %s - 0 1", pos.StartFEN, side, castlingField(pos.StartFEN))
	}
	if pos.Moves != "" {
		sb.WriteString(" moves ")
		sb.WriteString(pos.Moves)
	}
	return sb.String()
}

func castlingField(ranks string) string {
	board, err := chess.NewBoardFromFEN(ranks)
	if err != nil {
		return "-"
	}

	var sb strings.Builder
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		rank := c.HomeRank()
		if !isHome(board, chess.King, c, 4, rank) {
			continue
		}
		for _, side := range []struct {
			file   int
			letter byte
		}{{7, 'K'}, {0, 'Q'}} {
			if isHome(board, chess.Rook, c, side.file, rank) {
				letter := side.letter
				if c == chess.Black {
					letter += 'a' - 'A'
				}
				sb.WriteByte(letter)
			}
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func isHome(board *chess.Board, t chess.PieceType, c chess.Colour, file, rank int) bool {
	sq, ok := chess.NewSquare(file, rank)
	if !ok {
		return false
	}
	p := board.PieceOn(sq)
	return p != nil && p.Type == t && p.Colour == c && p.NeverMoved
}
