package notation

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// ParseUCI resolves an engine move code ("e2e4", "e7e8q") against the side
// to move. The origin square identifies the piece, so no disambiguation is
// needed. Castling is written as the king's two-square move.
func ParseUCI(board *chess.Board, code string) (chess.Move, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) != 4 && len(code) != 5 {
		return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "engine code %q", code)
	}

	from, err := chess.SquareFromCode(code[0:2])
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "engine code %q: %v", code, err)
	}
	to, err := chess.SquareFromCode(code[2:4])
	if err != nil {
		return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "engine code %q: %v", code, err)
	}

	promoteTo := chess.NoPieceType
	if len(code) == 5 {
		promoteTo = chess.PieceTypeFromLetter(code[4])
		if !promoteTo.IsPromotionTarget() {
			return chess.Move{}, errors.Wrapf(errors.ErrIllegitimatePromotion, "engine code %q", code)
		}
	}

	for _, m := range engine.LegalMovesFrom(board, from) {
		if m.To != to {
			continue
		}
		if promoteTo != chess.NoPieceType {
			if !m.Promotion {
				break
			}
			m.PromoteTo = promoteTo
		}
		return m, nil
	}
	return chess.Move{}, errors.Wrapf(errors.ErrMoveNotFound, "engine code %q for %s", code, board.ToMove)
}

// EncodeHistory serialises moves as space-separated engine codes.
func EncodeHistory(moves []chess.Move) string {
	codes := make([]string, len(moves))
	for i := range moves {
		codes[i] = moves[i].UCI()
	}
	return strings.Join(codes, " ")
}
