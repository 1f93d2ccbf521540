package notation

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Resolve finds the legal move of the side to move that text describes.
// A promotion written without a target comes back with PromoteTo unset so
// the caller can ask for one. Text matching no legal move, or more than one,
// returns errors.ErrMoveNotFound.
func Resolve(board *chess.Board, text string) (chess.Move, error) {
	text = strings.TrimSpace(text)
	d, err := decodeMove(text)
	if err != nil {
		return chess.Move{}, err
	}

	var found []chess.Move
	for _, m := range engine.LegalMoves(board, board.ToMove) {
		if d.matches(&m) {
			found = append(found, m)
		}
	}

	switch len(found) {
	case 0:
		return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "%q for %s", text, board.ToMove)
	case 1:
		m := found[0]
		if m.Promotion {
			m.PromoteTo = d.promoteTo
		}
		return m, nil
	default:
		return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "%q is ambiguous (%d candidates)", text, len(found))
	}
}
