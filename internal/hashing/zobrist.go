package hashing

import "github.com/lgbarn/chessrules-go/internal/chess"

// kindsPerColour covers every piece type up to King.
const (
	kindsPerColour = int(chess.King) + 1
	numPieceKinds  = 2 * kindsPerColour
)

var (
	pieceKeys   [numPieceKinds][chess.NumSquares]uint64
	blackToMove uint64
)

func init() {
	// splitmix64 with a fixed seed, so hashes are stable between runs.
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
	for k := range pieceKeys {
		for sq := range pieceKeys[k] {
			pieceKeys[k][sq] = next()
		}
	}
	blackToMove = next()
}

func pieceKind(p *chess.Piece) int {
	return int(p.Colour)*kindsPerColour + int(p.Type)
}

// GenerateZobristHash hashes the placement and the side to move.
func GenerateZobristHash(b *chess.Board) uint64 {
	var h uint64
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if p := b.PieceOn(sq); p != nil {
			h ^= pieceKeys[pieceKind(p)][sq]
		}
	}
	if b.ToMove == chess.Black {
		h ^= blackToMove
	}
	return h
}

// WeakHash is a cheap additive hash used to double-check Zobrist matches.
func WeakHash(b *chess.Board) uint32 {
	var h uint32
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if p := b.PieceOn(sq); p != nil {
			h += uint32(pieceKind(p)+1) * uint32(sq+1) * 2654435761
		}
	}
	return h
}
