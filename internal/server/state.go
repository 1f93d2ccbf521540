package server

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
)

// GameState is the JSON view of a game.
type GameState struct {
	ID               string                  `json:"id"`
	StartFEN         string                  `json:"startFEN"`
	FEN              string                  `json:"fen"`
	ToMove           chess.Colour            `json:"toMove"`
	Status           chess.Status            `json:"status"`
	Checkers         []string                `json:"checkers,omitempty"`
	Phase            string                  `json:"phase"`
	Result           string                  `json:"result"`
	Draw             engine.DrawRuleResult   `json:"draw"`
	Moves            []output.JSONMove       `json:"moves"`
	Ply              int                     `json:"ply"`
	Length           int                     `json:"length"`
	PendingPromotion *PendingPromotion       `json:"pendingPromotion,omitempty"`
	Diagnostics      []output.JSONDiagnostic `json:"diagnostics,omitempty"`
}

// PendingPromotion is a pawn move waiting for its promotion piece.
type PendingPromotion struct {
	From string `json:"from"`
	To   string `json:"to"`
	SAN  string `json:"san"`
}

// LegalMove is one entry of a legal move listing.
type LegalMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	SAN       string `json:"san"`
	UCI       string `json:"uci"`
	Promotion bool   `json:"promotion,omitempty"`
}

func newGameState(id string, s *game.Session, cfg *config.OutputConfig, diagnostics []*chesserrors.MoveError) *GameState {
	jr := output.RecordToJSON(output.NewRecord("", s, diagnostics), cfg)
	st := &GameState{
		ID:          id,
		StartFEN:    jr.InitialFEN,
		FEN:         jr.FinalFEN,
		ToMove:      jr.ToMove,
		Status:      jr.Status,
		Phase:       s.Phase().String(),
		Result:      jr.Result,
		Draw:        jr.Draw,
		Moves:       jr.Moves,
		Ply:         s.Ply(),
		Length:      s.Len(),
		Diagnostics: jr.Diagnostics,
	}
	for _, sq := range s.Checkers() {
		st.Checkers = append(st.Checkers, sq.Code())
	}
	if m, ok := s.PendingPromotion(); ok {
		st.PendingPromotion = &PendingPromotion{From: m.From.Code(), To: m.To.Code(), SAN: m.Notation}
	}
	return st
}

func newLegalMoves(s *game.Session, moves []chess.Move) []LegalMove {
	out := make([]LegalMove, 0, len(moves))
	for i := range moves {
		out = append(out, LegalMove{
			From:      moves[i].From.Code(),
			To:        moves[i].To.Code(),
			SAN:       s.SAN(moves[i]),
			UCI:       moves[i].UCI(),
			Promotion: moves[i].Promotion,
		})
	}
	return out
}
