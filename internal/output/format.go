package output

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
)

// formatMove renders a recorded move in the configured notation.
func formatMove(m *chess.Move, cfg *config.OutputConfig) string {
	if cfg.Format == config.UCI {
		return m.UCI()
	}
	if !cfg.KeepChecks {
		return strings.TrimRight(m.Notation, "+#")
	}
	return m.Notation
}

// pieceTypeName returns the piece type as a lowercase word.
func pieceTypeName(t chess.PieceType) string {
	if t == chess.NoPieceType {
		return ""
	}
	return strings.ToLower(t.String())
}
