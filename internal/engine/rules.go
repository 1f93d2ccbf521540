package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

const (
	// RepetitionLimit is the number of occurrences of a piece placement that
	// makes the game drawn.
	RepetitionLimit = 3

	// FiftyMovePlies is the number of consecutive plies without a pawn move
	// or capture that makes the game drawn.
	FiftyMovePlies = 100
)

// DrawRuleResult contains the results of draw rule detection.
type DrawRuleResult struct {
	// HasThreefoldRepetition is true once any piece placement has occurred
	// RepetitionLimit times. It stays set for the rest of the game.
	HasThreefoldRepetition bool `json:"threefoldRepetition"`

	// HasFiftyMoveRule is true when FiftyMovePlies plies have passed without
	// a pawn move or capture.
	HasFiftyMoveRule bool `json:"fiftyMoveRule"`

	// HasInsufficientMaterial is true if the current position has
	// insufficient mating material for either side.
	HasInsufficientMaterial bool `json:"insufficientMaterial"`
}

// Any reports whether any draw condition holds.
func (r DrawRuleResult) Any() bool {
	return r.HasThreefoldRepetition || r.HasFiftyMoveRule || r.HasInsufficientMaterial
}

// DrawTracker counts piece placements and quiet plies as moves are played.
// Positions are keyed by the placement field of FEN only, so side to move,
// castling and en passant rights do not distinguish them.
type DrawTracker struct {
	counts     map[string]int
	quietPlies int
	repetition bool
}

// NewDrawTracker creates a tracker whose first recorded position is start.
func NewDrawTracker(start string) *DrawTracker {
	d := &DrawTracker{}
	d.Reset(start)
	return d
}

// Reset forgets all history and counts start once.
func (d *DrawTracker) Reset(start string) {
	d.counts = map[string]int{start: 1}
	d.quietPlies = 0
	d.repetition = false
}

// Record notes the placement reached after a move. resetsClock is true for
// pawn moves and captures.
func (d *DrawTracker) Record(placement string, resetsClock bool) {
	if resetsClock {
		d.quietPlies = 0
	} else {
		d.quietPlies++
	}

	d.counts[placement]++
	if d.counts[placement] >= RepetitionLimit {
		d.repetition = true
	}
}

// Occurrences returns how many times placement has been recorded.
func (d *DrawTracker) Occurrences(placement string) int {
	return d.counts[placement]
}

// QuietPlies returns the plies since the last pawn move or capture.
func (d *DrawTracker) QuietPlies() int {
	return d.quietPlies
}

// Repetition reports whether a threefold repetition has occurred.
func (d *DrawTracker) Repetition() bool {
	return d.repetition
}

// FiftyMoves reports whether the fifty-move rule applies.
func (d *DrawTracker) FiftyMoves() bool {
	return d.quietPlies >= FiftyMovePlies
}

// Result combines the tracked counters with a material check of board.
func (d *DrawTracker) Result(board *chess.Board) DrawRuleResult {
	return DrawRuleResult{
		HasThreefoldRepetition:  d.Repetition(),
		HasFiftyMoveRule:        d.FiftyMoves(),
		HasInsufficientMaterial: HasInsufficientMaterial(board),
	}
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whiteMinors, blackMinors []chess.PieceType
	var whiteBishopOnLight, blackBishopOnLight bool

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, id := range board.Pieces(colour) {
			p := board.Piece(id)
			switch p.Type {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			}

			if colour == chess.White {
				whiteMinors = append(whiteMinors, p.Type)
				if p.Type == chess.Bishop {
					whiteBishopOnLight = isLightSquare(p.Square)
				}
			} else {
				blackMinors = append(blackMinors, p.Type)
				if p.Type == chess.Bishop {
					blackBishopOnLight = isLightSquare(p.Square)
				}
			}
		}
	}

	switch {
	case len(whiteMinors) == 0 && len(blackMinors) == 0:
		return true
	case len(whiteMinors) == 0 && len(blackMinors) == 1:
		return true
	case len(blackMinors) == 0 && len(whiteMinors) == 1:
		return true
	case len(whiteMinors) == 1 && len(blackMinors) == 1:
		return whiteMinors[0] == chess.Bishop && blackMinors[0] == chess.Bishop &&
			whiteBishopOnLight == blackBishopOnLight
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}
