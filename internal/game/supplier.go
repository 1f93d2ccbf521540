package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// Position is what an engine needs to search: the start placement, the side
// that moved first and the moves played since, as space-separated engine
// codes.
type Position struct {
	StartFEN string
	ToMove   chess.Colour
	Moves    string
}

// IsStandardStart reports whether the position begins from the usual array
// with White to move.
func (p Position) IsStandardStart() bool {
	return p.StartFEN == chess.InitialFEN && p.ToMove == chess.White
}

// MoveSupplier proposes a move for a position as an engine code.
type MoveSupplier interface {
	BestMove(ctx context.Context, pos Position) (string, error)
}

// Position returns the session's start and the moves leading to the current
// ply.
func (s *Session) Position() Position {
	return Position{
		StartFEN: s.start.Serialize(),
		ToMove:   s.start.ToMove,
		Moves:    notation.EncodeHistory(s.history[:s.cursor]),
	}
}

// EngineMove asks supplier for a move and plays it. Every failure, including
// a reply that is not a legal move, wraps errors.ErrEngineMove.
func (s *Session) EngineMove(ctx context.Context, supplier MoveSupplier) (chess.Move, error) {
	if s.pending != nil {
		return chess.Move{}, fmt.Errorf("%w: %w", errors.ErrEngineMove, errors.ErrPromotionPending)
	}

	code, err := supplier.BestMove(ctx, s.Position())
	if err != nil {
		s.cfg.Logf(1, "engine: %v", err)
		return chess.Move{}, fmt.Errorf("%w: %w", errors.ErrEngineMove, err)
	}

	m, err := notation.ParseUCI(s.board, code)
	if err == nil && m.NeedsPromotionChoice() {
		m.PromoteTo = chess.Queen
	}
	if err == nil {
		err = s.Play(m)
	}
	if err != nil {
		s.cfg.Logf(1, "engine reply %q: %v", code, err)
		return chess.Move{}, fmt.Errorf("%w: reply %q: %w", errors.ErrEngineMove, code, err)
	}
	return s.history[s.cursor-1], nil
}
