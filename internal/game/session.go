// Package game holds a playable chess session: the board, the move history
// with a rewind cursor, draw tracking and the promotion choice gate.
package game

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// Phase is what a session is waiting for.
type Phase int

const (
	WaitingForMove Phase = iota
	WaitingForPromotion
	GameOver
)

func (p Phase) String() string {
	switch p {
	case WaitingForPromotion:
		return "promotion"
	case GameOver:
		return "over"
	default:
		return "move"
	}
}

// Session is one game. It is not safe for concurrent use.
type Session struct {
	cfg *config.Config

	start   *chess.Board
	board   *chess.Board
	history []chess.Move
	cursor  int // plies of history applied to board
	status  chess.Status
	draws   *engine.DrawTracker
	pending *chess.Move

	observers    []subscription
	nextObserver int
}

// Option configures a Session.
type Option func(*Session)

// WithConfig routes the session's diagnostics through cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithObserver subscribes o from the start.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.Subscribe(o)
	}
}

// NewSession starts a game from the standard position with White to move.
func NewSession(opts ...Option) *Session {
	return newSession(chess.NewInitialBoard(), opts)
}

// NewSessionFromFEN starts a game from a FEN-ranks placement.
func NewSessionFromFEN(ranks string, toMove chess.Colour, opts ...Option) (*Session, error) {
	board, err := chess.NewBoardFromFEN(ranks)
	if err != nil {
		return nil, err
	}
	board.ToMove = toMove
	return newSession(board, opts), nil
}

// NewSessionFromConfig starts a game from cfg's start position and logs
// through cfg.
func NewSessionFromConfig(cfg *config.Config, opts ...Option) (*Session, error) {
	return NewSessionFromFEN(cfg.StartFEN, cfg.StartToMove, append([]Option{WithConfig(cfg)}, opts...)...)
}

func newSession(start *chess.Board, opts []Option) *Session {
	s := &Session{
		start: start,
		board: start.Copy(),
		draws: engine.NewDrawTracker(start.Serialize()),
	}
	s.status = engine.Evaluate(s.board)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns a copy of the current position.
func (s *Session) Board() *chess.Board { return s.board.Copy() }

// FEN returns the FEN-ranks of the current position.
func (s *Session) FEN() string { return s.board.Serialize() }

// StartFEN returns the FEN-ranks the session started from.
func (s *Session) StartFEN() string { return s.start.Serialize() }

// StartToMove returns the side that moved first.
func (s *Session) StartToMove() chess.Colour { return s.start.ToMove }

// ToMove returns the side to move.
func (s *Session) ToMove() chess.Colour { return s.board.ToMove }

// Status classifies the current position for the side to move.
func (s *Session) Status() chess.Status { return s.status }

// Draw reports the draw conditions reached at the current ply.
func (s *Session) Draw() engine.DrawRuleResult { return s.draws.Result(s.board) }

// Ply returns the number of moves applied to the current position.
func (s *Session) Ply() int { return s.cursor }

// Len returns the number of recorded moves, including any ahead of the
// rewind cursor.
func (s *Session) Len() int { return len(s.history) }

// History returns every recorded move.
func (s *Session) History() []chess.Move {
	return append([]chess.Move(nil), s.history...)
}

// Played returns the moves leading to the current position.
func (s *Session) Played() []chess.Move {
	return append([]chess.Move(nil), s.history[:s.cursor]...)
}

// Phase reports what the session is waiting for. Draw conditions do not end
// the game.
func (s *Session) Phase() Phase {
	switch {
	case s.pending != nil:
		return WaitingForPromotion
	case s.status == chess.Checkmate || s.status == chess.Stalemate:
		return GameOver
	default:
		return WaitingForMove
	}
}

// PendingPromotion returns the promotion move awaiting a target, if any.
func (s *Session) PendingPromotion() (chess.Move, bool) {
	if s.pending == nil {
		return chess.Move{}, false
	}
	return *s.pending, true
}

// LegalMoves returns the legal moves of the side to move, or nil while a
// promotion choice is outstanding.
func (s *Session) LegalMoves() []chess.Move {
	if s.pending != nil {
		return nil
	}
	return engine.LegalMoves(s.board, s.board.ToMove)
}

// LegalMovesFrom returns the legal moves of the piece on sq.
func (s *Session) LegalMovesFrom(sq chess.Square) []chess.Move {
	if s.pending != nil {
		return nil
	}
	return engine.LegalMovesFrom(s.board, sq)
}

// Attacks returns the squares controlled by the piece on sq.
func (s *Session) Attacks(sq chess.Square) []chess.Square {
	id := s.board.At(sq)
	if id == chess.NoPiece {
		return nil
	}
	return engine.AttackedSquares(s.board, id)
}

// Controlled returns every square attacked by colour c, in square order.
func (s *Session) Controlled(c chess.Colour) []chess.Square {
	attacked := engine.AttackMap(s.board, c)
	var squares []chess.Square
	for sq := range attacked {
		if attacked[sq] {
			squares = append(squares, chess.Square(sq))
		}
	}
	return squares
}

// Checkers returns the squares of the pieces giving check to the side to
// move.
func (s *Session) Checkers() []chess.Square {
	ids := engine.Checkers(s.board, s.board.ToMove)
	squares := make([]chess.Square, 0, len(ids))
	for _, id := range ids {
		squares = append(squares, s.board.Piece(id).Square)
	}
	return squares
}

// SAN returns the notation m would have if played now.
func (s *Session) SAN(m chess.Move) string {
	return notation.SAN(s.board, m)
}

// Play executes m if it is legal in the current position. A promotion
// without a target is held until Promote is called.
func (s *Session) Play(m chess.Move) error {
	if s.pending != nil {
		return errors.ErrPromotionPending
	}

	legal, ok := s.findLegal(&m)
	if !ok {
		return errors.Wrapf(errors.ErrMoveNotFound, "%s for %s", m.UCI(), s.board.ToMove)
	}
	if !legal.Promotion {
		return s.commit(legal)
	}

	if m.PromoteTo == chess.NoPieceType {
		legal.Notation = notation.Describe(s.board, &legal)
		s.pending = &legal
		s.cfg.Logf(2, "ply %d: %s waits for a promotion choice", s.cursor, legal.UCI())
		s.notify(EventPromotion, &legal)
		return nil
	}
	if !m.PromoteTo.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegitimatePromotion, "promote to %s", m.PromoteTo)
	}
	legal.PromoteTo = m.PromoteTo
	return s.commit(legal)
}

// PlaySAN resolves an algebraic token and plays it.
func (s *Session) PlaySAN(text string) error {
	if s.pending != nil {
		return errors.ErrPromotionPending
	}
	m, err := notation.Resolve(s.board, text)
	if err != nil {
		return err
	}
	return s.Play(m)
}

// PlayUCI resolves an engine move code and plays it.
func (s *Session) PlayUCI(code string) error {
	if s.pending != nil {
		return errors.ErrPromotionPending
	}
	m, err := notation.ParseUCI(s.board, code)
	if err != nil {
		return err
	}
	return s.Play(m)
}

// Promote completes the pending promotion with t.
func (s *Session) Promote(t chess.PieceType) error {
	if s.pending == nil {
		return errors.ErrNoPromotionPending
	}
	if !t.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegitimatePromotion, "promote to %s", t)
	}
	m := *s.pending
	m.PromoteTo = t
	s.pending = nil
	return s.commit(m)
}

// CancelPromotion drops the pending promotion, leaving the position as it was.
func (s *Session) CancelPromotion() {
	s.pending = nil
}

func (s *Session) findLegal(m *chess.Move) (chess.Move, bool) {
	for _, legal := range engine.LegalMovesFrom(s.board, m.From) {
		if legal.SameAs(m) {
			return legal, true
		}
	}
	return chess.Move{}, false
}

// commit records m at the cursor, discarding any moves ahead of it.
func (s *Session) commit(m chess.Move) error {
	text := notation.Describe(s.board, &m)
	if err := engine.Apply(s.board, &m); err != nil {
		return err
	}
	s.status = engine.Evaluate(s.board)
	m.Notation = notation.Annotate(text, s.status)
	m.Ply = s.cursor
	s.draws.Record(s.board.Serialize(), engine.ResetsClock(&m))

	s.history = append(s.history[:s.cursor], m)
	s.cursor++

	s.cfg.Logf(2, "ply %d: %s (%s)", m.Ply, m.Notation, s.status)
	s.notify(EventMove, &m)
	return nil
}

// Rewind resets the board to the start and replays the first ply recorded
// moves. Moves after ply are kept until a new move is played.
func (s *Session) Rewind(ply int) error {
	if ply < 0 || ply > len(s.history) {
		return errors.Wrapf(errors.ErrPlyOutOfRange, "rewind to %d of %d", ply, len(s.history))
	}
	s.replay(ply)
	s.notify(EventRewind, nil)
	return nil
}

// Back steps one ply towards the start.
func (s *Session) Back() error { return s.Rewind(s.cursor - 1) }

// Forward steps one ply towards the end of the recorded history.
func (s *Session) Forward() error { return s.Rewind(s.cursor + 1) }

// Reset discards the history and returns to the start position.
func (s *Session) Reset() {
	s.history = nil
	s.replay(0)
	s.notify(EventReset, nil)
}

func (s *Session) replay(ply int) {
	s.pending = nil
	s.board = s.start.Copy()
	s.draws.Reset(s.board.Serialize())
	for i := 0; i < ply; i++ {
		m := s.history[i]
		if err := engine.Apply(s.board, &m); err != nil {
			// Recorded moves were legal when played from this start.
			panic(err)
		}
		s.draws.Record(s.board.Serialize(), engine.ResetsClock(&m))
	}
	s.cursor = ply
	s.status = engine.Evaluate(s.board)
}
