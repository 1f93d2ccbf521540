package notation

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Castling notation.
const (
	KingSideCastle  = "0-0"
	QueenSideCastle = "0-0-0"
)

// SAN returns the algebraic notation of m as played on board, including the
// check or mate suffix. The board is not modified. A promotion whose target
// has not been chosen yet is described without the target or suffix.
func SAN(board *chess.Board, m chess.Move) string {
	text := Describe(board, &m)
	if m.NeedsPromotionChoice() {
		return text
	}

	after := board.Copy()
	if err := engine.Apply(after, &m); err != nil {
		return text
	}
	return Annotate(text, engine.Evaluate(after))
}

// Describe returns the notation of m without a check suffix. board must be
// the position before the move.
func Describe(board *chess.Board, m *chess.Move) string {
	switch m.Castle {
	case chess.KingSide:
		return KingSideCastle
	case chess.QueenSide:
		return QueenSideCastle
	}

	var sb strings.Builder
	if m.Type == chess.Pawn {
		if m.IsCapture() {
			sb.WriteByte(m.From.FileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.Code())
		if m.Promotion && m.PromoteTo != chess.NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte(m.PromoteTo.Letter())
		}
		return sb.String()
	}

	sb.WriteByte(m.Type.Letter())
	sb.WriteString(disambiguation(board, m))
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.Code())
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other pieces of the same type and colour that can legally
// reach the same square. File is preferred, then rank, then both.
func disambiguation(board *chess.Board, m *chess.Move) string {
	var rivals []chess.Square
	for _, id := range board.Pieces(m.Colour) {
		p := board.Piece(id)
		if id == m.Piece || p.Type != m.Type {
			continue
		}
		for _, other := range engine.Moves(board, id, true) {
			if other.To == m.To {
				rivals = append(rivals, p.Square)
				break
			}
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sharesFile, sharesRank := false, false
	for _, sq := range rivals {
		if sq.File() == m.From.File() {
			sharesFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sharesRank = true
		}
	}

	switch {
	case !sharesFile:
		return string(m.From.FileLetter())
	case !sharesRank:
		return string(m.From.RankDigit())
	default:
		return m.From.Code()
	}
}

// Annotate appends the check or mate suffix for the status reached.
func Annotate(text string, status chess.Status) string {
	switch status {
	case chess.Checkmate:
		return text + "#"
	case chess.Check:
		return text + "+"
	default:
		return text
	}
}

// MoveList renders moves as numbered movetext, e.g. "1. e4 e5 2. Nf3". A
// list starting with a Black move opens with "1...".
func MoveList(moves []chess.Move) string {
	var sb strings.Builder
	number := 1
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case m.Colour == chess.White:
			sb.WriteString(strconv.Itoa(number))
			sb.WriteString(". ")
		case i == 0:
			sb.WriteString(strconv.Itoa(number))
			sb.WriteString("... ")
		}
		sb.WriteString(m.Notation)
		if m.Colour == chess.Black {
			number++
		}
	}
	return sb.String()
}
