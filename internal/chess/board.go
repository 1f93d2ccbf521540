package chess

import "strings"

// PieceID is a handle into a board's piece table.
type PieceID int

// NoPiece marks an empty square or an absent piece.
const NoPiece PieceID = -1

// Piece is one record of the piece table.
type Piece struct {
	Type   PieceType
	Colour Colour

	// Square is where the piece stands (or stood, once captured).
	Square Square

	// NeverMoved is cleared the first time the piece moves.
	NeverMoved bool

	// EnPassantCapturable is set on a pawn for the ply after its double push.
	EnPassantCapturable bool

	// Promoted marks a piece created by promotion.
	Promoted bool

	// Active is false once the piece has been captured or promoted away.
	Active bool
}

// Board represents the position: an occupancy grid of piece handles and a
// piece table indexed by those handles. The two containers are updated
// together by the mutators below and never point at each other directly.
type Board struct {
	occupancy [NumSquares]PieceID
	pieces    []Piece

	// Who has the next move.
	ToMove Colour
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	b := &Board{ToMove: White}
	b.clear()
	return b
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.clear()

	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.placeAtHome(backRank[file], White, file, 0)
		b.placeAtHome(Pawn, White, file, 1)
	}
	for file := 0; file < BoardSize; file++ {
		b.placeAtHome(Pawn, Black, file, 6)
		b.placeAtHome(backRank[file], Black, file, 7)
	}
	b.ToMove = White
}

func (b *Board) placeAtHome(t PieceType, c Colour, file, rank int) {
	sq, _ := NewSquare(file, rank)
	id := b.Place(t, c, sq)
	b.pieces[id].NeverMoved = true
}

// clear empties the grid and the piece table.
func (b *Board) clear() {
	for i := range b.occupancy {
		b.occupancy[i] = NoPiece
	}
	b.pieces = b.pieces[:0]
}

// Get returns the handle of the piece on (file, rank). Off-board
// coordinates report NoPiece rather than failing.
func (b *Board) Get(file, rank int) PieceID {
	if !OnBoard(file, rank) {
		return NoPiece
	}
	return b.occupancy[rank*BoardSize+file]
}

// At returns the handle of the piece on sq.
func (b *Board) At(sq Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	return b.occupancy[sq]
}

// Piece returns the piece record for id. It returns nil for NoPiece.
func (b *Board) Piece(id PieceID) *Piece {
	if id < 0 || int(id) >= len(b.pieces) {
		return nil
	}
	return &b.pieces[id]
}

// PieceOn returns the piece record on sq, or nil if the square is empty.
func (b *Board) PieceOn(sq Square) *Piece {
	return b.Piece(b.At(sq))
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == NoPiece
}

// Place creates a piece on sq and returns its handle. Any occupant of sq is
// deactivated first.
func (b *Board) Place(t PieceType, c Colour, sq Square) PieceID {
	if old := b.At(sq); old != NoPiece {
		b.Remove(old)
	}
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{Type: t, Colour: c, Square: sq, Active: true})
	b.occupancy[sq] = id
	return id
}

// Relocate moves piece id to sq. The destination is expected to be empty;
// captures remove the victim first.
func (b *Board) Relocate(id PieceID, sq Square) {
	p := &b.pieces[id]
	if b.occupancy[p.Square] == id {
		b.occupancy[p.Square] = NoPiece
	}
	p.Square = sq
	b.occupancy[sq] = id
}

// Remove takes piece id off the board. Its last square is kept so the
// removal can be reverted with Restore.
func (b *Board) Remove(id PieceID) {
	p := &b.pieces[id]
	if b.occupancy[p.Square] == id {
		b.occupancy[p.Square] = NoPiece
	}
	p.Active = false
}

// Restore puts a removed piece back on its last square.
func (b *Board) Restore(id PieceID) {
	p := &b.pieces[id]
	p.Active = true
	b.occupancy[p.Square] = id
}

// NumPieces returns the size of the piece table, including inactive pieces.
func (b *Board) NumPieces() int {
	return len(b.pieces)
}

// Pieces returns the handles of the active pieces of colour c, in table order.
func (b *Board) Pieces(c Colour) []PieceID {
	ids := make([]PieceID, 0, 16)
	for i := range b.pieces {
		if b.pieces[i].Active && b.pieces[i].Colour == c {
			ids = append(ids, PieceID(i))
		}
	}
	return ids
}

// King returns the handle of c's king, or NoPiece if there is none.
func (b *Board) King(c Colour) PieceID {
	for i := range b.pieces {
		p := &b.pieces[i]
		if p.Active && p.Colour == c && p.Type == King {
			return PieceID(i)
		}
	}
	return NoPiece
}

// Copy creates a deep copy of the board. Piece handles stay valid in the copy.
func (b *Board) Copy() *Board {
	nb := &Board{
		occupancy: b.occupancy,
		pieces:    make([]Piece, len(b.pieces)),
		ToMove:    b.ToMove,
	}
	copy(nb.pieces, b.pieces)
	return nb
}

// Equal reports whether two boards hold the same grid, piece table and side
// to move, piece for piece and flag for flag.
func (b *Board) Equal(o *Board) bool {
	if b.ToMove != o.ToMove || b.occupancy != o.occupancy || len(b.pieces) != len(o.pieces) {
		return false
	}
	for i := range b.pieces {
		if b.pieces[i] != o.pieces[i] {
			return false
		}
	}
	return true
}

// String renders an ASCII diagram with rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte(RankBase + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			if id := b.Get(file, rank); id != NoPiece {
				sb.WriteByte(b.pieces[id].Letter())
			} else {
				sb.WriteByte('.')
			}
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Letter returns the FEN letter for the piece: uppercase for White.
func (p *Piece) Letter() byte {
	letter := p.Type.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}
