// Package output writes finished sessions as text or JSON.
package output

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// MoveRecord is a played move with what it captured and the placement it
// produced.
type MoveRecord struct {
	chess.Move
	CapturedType chess.PieceType
	FEN          string
}

// Record is a snapshot of a session for output.
type Record struct {
	Source      string
	StartFEN    string
	StartToMove chess.Colour
	Moves       []MoveRecord
	FinalFEN    string
	ToMove      chess.Colour
	Status      chess.Status
	Draw        engine.DrawRuleResult
	Diagnostics []*errors.MoveError

	// Engine holds the SAN of a move appended by an engine, or EngineErr
	// the reason there is none.
	Engine    string
	EngineErr error
}

// NewRecord snapshots the moves leading to the session's current ply.
func NewRecord(source string, s *game.Session, diagnostics []*errors.MoveError) *Record {
	r := &Record{
		Source:      source,
		StartFEN:    s.StartFEN(),
		StartToMove: s.StartToMove(),
		FinalFEN:    s.FEN(),
		ToMove:      s.ToMove(),
		Status:      s.Status(),
		Draw:        s.Draw(),
		Diagnostics: diagnostics,
	}

	board, err := chess.NewBoardFromFEN(r.StartFEN)
	if err != nil {
		return r
	}
	board.ToMove = r.StartToMove
	for _, m := range s.Played() {
		mr := MoveRecord{Move: m}
		if p := board.Piece(m.Captured); p != nil {
			mr.CapturedType = p.Type
		}
		if err := engine.Apply(board, &m); err != nil {
			break
		}
		mr.FEN = board.Serialize()
		r.Moves = append(r.Moves, mr)
	}
	return r
}

// Result returns the PGN result token for the final position. Mate wins
// over any draw condition recorded earlier in the game.
func (r *Record) Result() string {
	switch {
	case r.Status == chess.Checkmate:
		if r.ToMove == chess.White {
			return "0-1"
		}
		return "1-0"
	case r.Status == chess.Stalemate, r.Draw.Any():
		return "1/2-1/2"
	default:
		return "*"
	}
}
