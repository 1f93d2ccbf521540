// Package notation converts between moves and their written forms: standard
// algebraic notation (SAN), free-form movetext and engine move codes.
package notation

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// isFile returns true if c is a file letter.
func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a rank digit.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// isCapture returns true if c marks a capture.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// isCastlingChar returns true if c is one of the castling marks.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// pieceLetter returns the piece type for an uppercase piece letter at the
// start of a move. Lowercase letters are files, so "b" is never a bishop.
func pieceLetter(c byte) chess.PieceType {
	switch c {
	case 'N', 'B', 'R', 'Q', 'K':
		return chess.PieceTypeFromLetter(c)
	}
	return chess.NoPieceType
}

// decodedMove is what can be read from a move's text without a board.
type decodedMove struct {
	text      string
	pieceType chess.PieceType
	castle    chess.CastleSide

	// Origin hints; -1 when not given.
	fromFile int
	fromRank int

	to        chess.Square
	capture   bool
	promoteTo chess.PieceType
}

// decodeMove parses a SAN-like token. It accepts the usual variants: "e4",
// "exd5", "Nbd7", "R1e1", "Qh4xe1", "e2e4", "e8=Q", "e8Q", "0-0", "O-O-O",
// with trailing check marks, annotations and "e.p.".
func decodeMove(text string) (decodedMove, error) {
	d := decodedMove{
		text:     text,
		fromFile: -1,
		fromRank: -1,
		to:       chess.NoSquare,
	}
	notFound := func() (decodedMove, error) {
		return d, errors.Wrapf(errors.ErrMoveNotFound, "%q", text)
	}

	// Suffixes carry no information the board cannot recompute.
	body := strings.TrimRight(text, "+#!?")
	body = strings.TrimSuffix(body, "e.p.")
	body = strings.TrimSuffix(body, "ep")

	pos := 0
	currentChar := func() byte {
		if pos >= len(body) {
			return 0
		}
		return body[pos]
	}

	if body == "" {
		return notFound()
	}

	if isCastlingChar(currentChar()) {
		marks := 0
		for isCastlingChar(currentChar()) || currentChar() == '-' {
			if currentChar() != '-' {
				marks++
			}
			pos++
		}
		switch marks {
		case 2:
			d.castle = chess.KingSide
		case 3:
			d.castle = chess.QueenSide
		default:
			return notFound()
		}
		d.pieceType = chess.King
		if pos != len(body) {
			return notFound()
		}
		return d, nil
	}

	d.pieceType = chess.Pawn
	if t := pieceLetter(currentChar()); t != chess.NoPieceType {
		d.pieceType = t
		pos++
	}

	// Gather coordinates and capture marks; the last file+rank pair is the
	// destination and anything before it narrows down the origin.
	var coords []byte
gather:
	for {
		c := currentChar()
		switch {
		case isFile(c) || isRank(c):
			coords = append(coords, c)
		case isCapture(c):
			d.capture = true
		case c == '-':
		default:
			break gather
		}
		pos++
	}

	n := len(coords)
	if n < 2 || !isFile(coords[n-2]) || !isRank(coords[n-1]) {
		return notFound()
	}
	d.to, _ = chess.NewSquare(int(coords[n-2]-'a'), int(coords[n-1]-'1'))

	switch hints := coords[:n-2]; {
	case len(hints) == 0:
	case len(hints) == 1 && isFile(hints[0]):
		d.fromFile = int(hints[0] - 'a')
	case len(hints) == 1 && isRank(hints[0]):
		d.fromRank = int(hints[0] - '1')
	case len(hints) == 2 && isFile(hints[0]) && isRank(hints[1]):
		d.fromFile = int(hints[0] - 'a')
		d.fromRank = int(hints[1] - '1')
	default:
		return notFound()
	}

	// Promotion: "=Q", "=q" or a bare uppercase letter.
	if currentChar() == '=' {
		pos++
		d.promoteTo = chess.PieceTypeFromLetter(currentChar())
		if !d.promoteTo.IsPromotionTarget() {
			return d, errors.Wrapf(errors.ErrIllegitimatePromotion, "%q", text)
		}
		pos++
	} else if c := currentChar(); c >= 'A' && c <= 'Z' {
		d.promoteTo = chess.PieceTypeFromLetter(c)
		if !d.promoteTo.IsPromotionTarget() {
			return d, errors.Wrapf(errors.ErrIllegitimatePromotion, "%q", text)
		}
		pos++
	}
	if d.promoteTo != chess.NoPieceType && d.pieceType != chess.Pawn {
		return notFound()
	}

	if pos != len(body) {
		return notFound()
	}
	return d, nil
}

// matches reports whether a generated move fits the decoded text.
func (d *decodedMove) matches(m *chess.Move) bool {
	if d.castle != chess.NoCastle {
		return m.Castle == d.castle
	}
	if m.IsCastle() || m.Type != d.pieceType || m.To != d.to {
		return false
	}
	if d.fromFile >= 0 && m.From.File() != d.fromFile {
		return false
	}
	if d.fromRank >= 0 && m.From.Rank() != d.fromRank {
		return false
	}
	if d.capture && !m.IsCapture() {
		return false
	}
	// A pawn written without a capture mark or origin file is a push.
	if d.pieceType == chess.Pawn && !d.capture && d.fromFile < 0 && m.IsCapture() {
		return false
	}
	if d.promoteTo != chess.NoPieceType && !m.Promotion {
		return false
	}
	return true
}
