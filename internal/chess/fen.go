package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN-ranks string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Serialize returns the FEN-ranks (piece placement) field for the board.
func (b *Board) Serialize() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < BoardSize; file++ {
			id := b.Get(file, rank)
			if id == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(b.pieces[id].Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Load replaces the position with the one described by a FEN-ranks string.
// A full FEN is accepted; only its first field is used. The side to move is
// left unchanged. On error the board is left as it was.
func (b *Board) Load(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return &errors.ParseError{Err: errors.ErrMalformedPosition, Input: fen, Expected: "piece placement", Got: "empty string"}
	}
	placement := fields[0]

	ranks := strings.Split(placement, "/")
	if len(ranks) != BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrMalformedPosition,
			Input:    placement,
			Expected: "8 ranks",
			Got:      fmt.Sprintf("%d", len(ranks)),
		}
	}

	loaded := NewBoard()
	loaded.ToMove = b.ToMove
	column := 0
	for i, rankText := range ranks {
		rank := BoardSize - 1 - i
		file := 0
		for _, c := range rankText {
			column++
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				t := PieceTypeFromLetter(byte(c))
				if c > unicode.MaxASCII || t == NoPieceType {
					return &errors.ParseError{
						Err:    errors.ErrMalformedPosition,
						Input:  placement,
						Column: column,
						Got:    fmt.Sprintf("character %q", c),
					}
				}
				if file >= BoardSize {
					return rankWidthError(placement, column, rankText)
				}
				colour := White
				if unicode.IsLower(c) {
					colour = Black
				}
				sq, _ := NewSquare(file, rank)
				id := loaded.Place(t, colour, sq)
				loaded.pieces[id].NeverMoved = IsHomeSquare(t, colour, sq)
				file++
			}
			if file > BoardSize {
				return rankWidthError(placement, column, rankText)
			}
		}
		column++ // the '/' separator
		if file != BoardSize {
			return rankWidthError(placement, column-1, rankText)
		}
	}

	*b = *loaded
	return nil
}

func rankWidthError(placement string, column int, rankText string) error {
	return &errors.ParseError{
		Err:      errors.ErrMalformedPosition,
		Input:    placement,
		Column:   column,
		Expected: "8 files",
		Got:      fmt.Sprintf("rank %q", rankText),
	}
}

// NewBoardFromFEN creates a board from a FEN-ranks string with White to move.
func NewBoardFromFEN(fen string) (*Board, error) {
	b := NewBoard()
	if err := b.Load(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// IsHomeSquare reports whether sq is one of the starting squares of a piece
// of type t and colour c. Pieces loaded on their home squares are treated as
// never having moved, which is where castling rights and pawn double pushes
// come from.
func IsHomeSquare(t PieceType, c Colour, sq Square) bool {
	rank := sq.Rank()
	file := sq.File()
	home := c.HomeRank()
	switch t {
	case Pawn:
		return rank == home+c.Forward()
	case Rook:
		return rank == home && (file == 0 || file == 7)
	case Knight:
		return rank == home && (file == 1 || file == 6)
	case Bishop:
		return rank == home && (file == 2 || file == 5)
	case Queen:
		return rank == home && file == 3
	case King:
		return rank == home && file == 4
	default:
		return false
	}
}
