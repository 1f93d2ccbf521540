package output

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// JSONRecord represents a session in JSON format.
type JSONRecord struct {
	Source      string                `json:"source,omitempty"`
	InitialFEN  string                `json:"initialFEN"`
	Moves       []JSONMove            `json:"moves"`
	PlyCount    int                   `json:"plyCount"`
	Result      string                `json:"result"`
	FinalFEN    string                `json:"finalFEN"`
	ToMove      chess.Colour          `json:"toMove"`
	Status      chess.Status          `json:"status"`
	Draw        engine.DrawRuleResult `json:"draw"`
	Engine      string                `json:"engine,omitempty"`
	EngineError string                `json:"engineError,omitempty"`
	Diagnostics []JSONDiagnostic      `json:"diagnostics,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONDiagnostic is a skipped movetext token.
type JSONDiagnostic struct {
	Ply        int    `json:"ply"`
	MoveNumber int    `json:"moveNumber,omitempty"`
	Token      string `json:"token"`
	Error      string `json:"error"`
}

// JSONOutput holds multiple records for array output.
type JSONOutput struct {
	Games []*JSONRecord `json:"games"`
}

// RecordToJSON converts a record to JSON format.
func RecordToJSON(r *Record, cfg *config.OutputConfig) *JSONRecord {
	jr := &JSONRecord{
		Source:     r.Source,
		InitialFEN: r.StartFEN,
		Moves:      make([]JSONMove, 0, len(r.Moves)),
		PlyCount:   len(r.Moves),
		Result:     r.Result(),
		FinalFEN:   r.FinalFEN,
		ToMove:     r.ToMove,
		Status:     r.Status,
		Draw:       r.Draw,
		Engine:     r.Engine,
	}
	if r.EngineErr != nil {
		jr.EngineError = r.EngineErr.Error()
	}

	number := 1
	for i := range r.Moves {
		jm := MoveToJSON(&r.Moves[i], cfg)
		if r.Moves[i].Colour == chess.White || i == 0 {
			jm.MoveNumber = number
		}
		if r.Moves[i].Colour == chess.Black {
			number++
		}
		jr.Moves = append(jr.Moves, jm)
	}

	for _, d := range r.Diagnostics {
		jd := JSONDiagnostic{Ply: d.Ply, MoveNumber: d.MoveNumber, Token: d.MoveText}
		if d.Err != nil {
			jd.Error = d.Err.Error()
		}
		jr.Diagnostics = append(jr.Diagnostics, jd)
	}
	return jr
}

// MoveToJSON converts one recorded move. The move number is left for the
// caller, which knows the move's place in the game.
func MoveToJSON(m *MoveRecord, cfg *config.OutputConfig) JSONMove {
	jm := JSONMove{
		Color:    colorName(m.Colour),
		SAN:      formatMove(&m.Move, &config.OutputConfig{Format: config.SAN, KeepChecks: cfg.KeepChecks}),
		UCI:      m.UCI(),
		From:     m.From.Code(),
		To:       m.To.Code(),
		Piece:    pieceTypeName(m.Type),
		Captured: pieceTypeName(m.CapturedType),
		FEN:      m.FEN,
	}
	if m.Promotion {
		jm.Promotion = pieceTypeName(m.PromoteTo)
	}
	return jm
}

// colorName returns "white" or "black".
func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
