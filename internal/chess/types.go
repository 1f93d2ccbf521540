// Package chess provides core chess types: squares, pieces, the board with
// its piece table, and moves.
package chess

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// MarshalText encodes the colour as "white" or "black".
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText accepts "white"/"black" or the FEN letters "w"/"b".
func (c *Colour) UnmarshalText(text []byte) error {
	parsed, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColour reads a side to move in any of the forms UnmarshalText accepts.
func ParseColour(s string) (Colour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return White, errors.Wrapf(errors.ErrMalformedPosition, "side to move %q", s)
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (pawn direction in ranks).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index (0-7) for the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PieceType represents a chess piece type.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter for a piece type.
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// ParsePromotionTarget reads a promotion piece given as a letter ("q",
// "N") or a name ("rook").
func ParsePromotionTarget(text string) (PieceType, error) {
	t := NoPieceType
	if len(text) == 1 {
		t = PieceTypeFromLetter(text[0])
	} else {
		for _, candidate := range []PieceType{Knight, Bishop, Rook, Queen} {
			if strings.EqualFold(text, candidate.String()) {
				t = candidate
			}
		}
	}
	if !t.IsPromotionTarget() {
		return NoPieceType, errors.Wrapf(errors.ErrIllegitimatePromotion, "piece %q", text)
	}
	return t, nil
}

// IsPromotionTarget reports whether a pawn may promote to p.
func (p PieceType) IsPromotionTarget() bool {
	switch p {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// PieceTypeFromLetter converts a piece letter (either case) to a piece type.
// It returns NoPieceType for anything else.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoPieceType
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'a'
)

// Square is a board square index: file + 8*rank, both 0-based.
type Square int8

// NoSquare marks "no such square".
const NoSquare Square = -1

// NewSquare returns the square at (file, rank). The second result is false
// for coordinates off the board.
func NewSquare(file, rank int) (Square, bool) {
	if !OnBoard(file, rank) {
		return NoSquare, false
	}
	return Square(rank*BoardSize + file), true
}

// OnBoard reports whether (file, rank) lies on the board.
func OnBoard(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// File returns the 0-based file (a=0).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank (1=0).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s >= 0 && int(s) < NumSquares
}

// FileLetter returns the file as 'a'-'h'.
func (s Square) FileLetter() byte {
	return byte(FileBase + s.File())
}

// RankDigit returns the rank as '1'-'8'.
func (s Square) RankDigit() byte {
	return byte(RankBase + s.Rank())
}

// Code returns the algebraic code, e.g. "e4".
func (s Square) Code() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.FileLetter(), s.RankDigit()})
}

// String implements fmt.Stringer.
func (s Square) String() string {
	return s.Code()
}

// Offset returns the square df files and dr ranks away, or false when that
// leaves the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// SquareFromCode converts an algebraic code such as "e4" or "E4" to a square.
func SquareFromCode(code string) (Square, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) != 2 {
		return NoSquare, errors.Wrapf(errors.ErrSquareCodeNotFound, "%q", code)
	}
	sq, ok := NewSquare(int(code[0])-FileBase, int(code[1])-RankBase)
	if !ok {
		return NoSquare, errors.Wrapf(errors.ErrSquareCodeNotFound, "%q", code)
	}
	return sq, nil
}

// MustSquare is SquareFromCode for constant codes; it panics on a bad code.
func MustSquare(code string) Square {
	sq, err := SquareFromCode(code)
	if err != nil {
		panic(err)
	}
	return sq
}

// CastleSide identifies a castling move.
type CastleSide int

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

// Status classifies the position for the side to move.
type Status int

const (
	Normal Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "normal"
	}
}

// MarshalText encodes the status by name for JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{Normal, Check, Checkmate, Stalemate} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return errors.Wrapf(errors.ErrMalformedPosition, "status %q", text)
}
