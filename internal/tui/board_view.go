package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

var markedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

// RenderBoard draws the position with White at the bottom. Marked squares
// are bracketed.
func RenderBoard(board *chess.Board, marked []chess.Square) string {
	isMarked := make(map[chess.Square]bool, len(marked))
	for _, sq := range marked {
		isMarked[sq] = true
	}

	var b strings.Builder
	b.WriteString("    a  b  c  d  e  f  g  h\n")
	b.WriteString("  +------------------------+\n")
	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(' ')
		b.WriteByte(byte('1' + rank))
		b.WriteByte('|')
		for file := 0; file < 8; file++ {
			sq, _ := chess.NewSquare(file, rank)
			b.WriteString(cell(board.PieceOn(sq), isMarked[sq]))
		}
		b.WriteString("|\n")
	}
	b.WriteString("  +------------------------+\n")
	return b.String()
}

// cell returns a fixed-width 3-char cell: white pieces upper case, black
// pieces lower case.
func cell(p *chess.Piece, marked bool) string {
	letter := "."
	if p != nil {
		letter = string(p.Type.Letter())
		if p.Colour == chess.Black {
			letter = strings.ToLower(letter)
		}
	}
	if marked {
		return markedStyle.Render("[" + letter + "]")
	}
	return " " + letter + " "
}
