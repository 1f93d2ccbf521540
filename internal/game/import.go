package game

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/notation"
)

// ImportResult reports what an import did.
type ImportResult struct {
	Played      int
	Diagnostics []*errors.MoveError
}

// Import plays free-form movetext from the current position. Commentary,
// variations, glyphs and results are ignored. A token that does not resolve
// is recorded as a diagnostic and skipped; the next token is tried against
// the same position. A promotion written without a target becomes a queen.
func (s *Session) Import(text string) ImportResult {
	return s.ImportNamed("", text)
}

// ImportNamed is Import with a source name attached to the diagnostics.
func (s *Session) ImportNamed(source, text string) ImportResult {
	var res ImportResult
	for _, tok := range notation.Tokenize(text) {
		ply := s.cursor
		err := s.PlaySAN(tok.Text)
		if err == nil && s.pending != nil {
			err = s.Promote(chess.Queen)
		}
		if err != nil {
			diag := &errors.MoveError{
				Err:        err,
				Ply:        ply,
				MoveNumber: tok.MoveNumber,
				MoveText:   tok.Text,
				Source:     source,
			}
			s.cfg.Logf(1, "skipped %v", diag)
			res.Diagnostics = append(res.Diagnostics, diag)
			continue
		}
		res.Played++
	}
	return res
}
