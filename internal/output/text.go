package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteText writes a record as numbered movetext followed by the final
// position, its classification and any skipped tokens.
func WriteText(w io.Writer, r *Record, cfg *config.OutputConfig) {
	if r.Source != "" {
		fmt.Fprintf(w, "[%s]\n", r.Source)
	}

	WriteMovetext(w, r, cfg)
	fmt.Fprintf(w, "fen: %s %s\n", r.FinalFEN, sideLetter(r))
	fmt.Fprintf(w, "status: %s\n", describeStatus(r))
	if r.Engine != "" {
		fmt.Fprintf(w, "engine: %s\n", r.Engine)
	} else if r.EngineErr != nil {
		fmt.Fprintf(w, "engine: %v\n", r.EngineErr)
	}
	if cfg.ShowDiagnostics {
		for _, d := range r.Diagnostics {
			fmt.Fprintf(w, "skipped: %v\n", d)
		}
	}
	fmt.Fprintln(w)
}

// WriteMovetext writes the numbered moves and, if configured, the result,
// wrapped at cfg.MaxLineLength.
func WriteMovetext(w io.Writer, r *Record, cfg *config.OutputConfig) {
	ow := NewOutputWriter(w, int(cfg.MaxLineLength))
	writeMoves(ow, r, cfg)
	if cfg.KeepResults {
		ow.Write(r.Result())
	}
	ow.NewLine()
}

func writeMoves(ow *OutputWriter, r *Record, cfg *config.OutputConfig) {
	number := 1
	for i := range r.Moves {
		m := &r.Moves[i].Move
		if cfg.KeepMoveNumbers {
			if m.Colour == chess.White {
				ow.Write(fmt.Sprintf("%d.", number))
			} else if i == 0 {
				ow.Write(fmt.Sprintf("%d...", number))
			}
		}
		ow.Write(formatMove(m, cfg))
		if m.Colour == chess.Black {
			number++
		}
	}
}

func sideLetter(r *Record) string {
	return strings.ToLower(r.ToMove.String()[:1])
}

func describeStatus(r *Record) string {
	return DescribeStatus(r.Status, r.Draw)
}

// DescribeStatus names the status followed by any draw conditions that hold,
// e.g. "check, threefold repetition".
func DescribeStatus(status chess.Status, draw engine.DrawRuleResult) string {
	parts := []string{status.String()}
	if draw.HasThreefoldRepetition {
		parts = append(parts, "threefold repetition")
	}
	if draw.HasFiftyMoveRule {
		parts = append(parts, "fifty-move rule")
	}
	if draw.HasInsufficientMaterial {
		parts = append(parts, "insufficient material")
	}
	return strings.Join(parts, ", ")
}
