package uci

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluation is the engine's verdict on a position.
type Evaluation struct {
	Score    int // centipawns, from the side to move
	IsMate   bool
	MateIn   int // moves to mate; negative when being mated
	Depth    int
	BestMove string
}

// parseInfo folds an "info" line into eval. Fields the line does not carry
// are left unchanged.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = n
				}
				i++
			}
		case "score":
			if i+2 >= len(fields) {
				return
			}
			n, err := strconv.Atoi(fields[i+2])
			if err != nil {
				continue
			}
			switch fields[i+1] {
			case "cp":
				eval.Score = n
				eval.IsMate = false
				eval.MateIn = 0
			case "mate":
				eval.IsMate = true
				eval.MateIn = n
			}
			i += 2
		case "pv":
			// The principal variation runs to the end of the line.
			return
		}
	}
}

// FormatEvaluation renders a score the way annotated games show it:
// "+1.23" in pawns, or "+M3"/"-M5" for forced mates.
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	return fmt.Sprintf("%+.2f", float64(eval.Score)/100)
}
