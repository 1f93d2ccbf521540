package server

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
)

// CreateRequest starts a game. Both fields are optional; an empty FEN uses
// the configured start position.
type CreateRequest struct {
	FEN    string `json:"fen"`
	ToMove string `json:"toMove"`
}

// MoveRequest names a move by notation, by engine code or by squares.
type MoveRequest struct {
	SAN       string `json:"san"`
	UCI       string `json:"uci"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

// PromotionRequest completes a pending promotion.
type PromotionRequest struct {
	Piece string `json:"piece"`
}

// ImportRequest plays movetext from the current ply.
type ImportRequest struct {
	Movetext string `json:"movetext"`
	Source   string `json:"source"`
}

// RewindRequest moves the cursor to Ply.
type RewindRequest struct {
	Ply *int `json:"ply"`
}

// EngineResponse is the engine's move and the game after it.
type EngineResponse struct {
	SAN   string     `json:"san"`
	UCI   string     `json:"uci"`
	State *GameState `json:"state"`
}

var errEmptyMove = fiber.NewError(fiber.StatusBadRequest, "move needs san, uci or from and to")

func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req CreateRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}

	ranks, toMove := s.cfg.StartFEN, s.cfg.StartToMove
	if req.FEN != "" {
		ranks, toMove = req.FEN, chess.White
	}
	if req.ToMove != "" {
		var err error
		if toMove, err = chess.ParseColour(req.ToMove); err != nil {
			return sendError(c, err)
		}
	}

	t, err := s.games.Create(ranks, toMove)
	if err != nil {
		return sendError(c, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(s.state(t))
}

// withGame runs fn with the game named in the path locked.
func (s *Server) withGame(c *fiber.Ctx, fn func(t *table) error) error {
	t, err := s.games.Get(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t)
}

func (s *Server) state(t *table) *GameState {
	return newGameState(t.id, t.session, s.cfg.Output, nil)
}

func (s *Server) getGame(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		return c.JSON(s.state(t))
	})
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.Remove(c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) legalMoves(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		code := c.Query("square")
		if code == "" {
			return c.JSON(newLegalMoves(t.session, t.session.LegalMoves()))
		}
		sq, err := chess.SquareFromCode(code)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(newLegalMoves(t.session, t.session.LegalMovesFrom(sq)))
	})
}

// attacks lists the squares reached by the piece on ?square=, or by every
// piece of ?side= when no square is given.
func (s *Server) attacks(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		var squares []chess.Square
		if side := c.Query("side"); side != "" && c.Query("square") == "" {
			colour, err := chess.ParseColour(side)
			if err != nil {
				return sendError(c, err)
			}
			squares = t.session.Controlled(colour)
		} else {
			sq, err := chess.SquareFromCode(c.Query("square"))
			if err != nil {
				return sendError(c, err)
			}
			squares = t.session.Attacks(sq)
		}
		codes := []string{}
		for _, a := range squares {
			codes = append(codes, a.Code())
		}
		return c.JSON(codes)
	})
}

func (s *Server) text(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		var buf bytes.Buffer
		output.WriteText(&buf, output.NewRecord(t.id, t.session, nil), s.cfg.Output)
		c.Type("txt")
		return c.Send(buf.Bytes())
	})
}

func (s *Server) playMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}
	return s.withGame(c, func(t *table) error {
		if err := applyMove(t.session, &req); err != nil {
			return sendError(c, err)
		}
		return c.JSON(s.state(t))
	})
}

// applyMove plays whichever form of move req carries.
func applyMove(s *game.Session, req *MoveRequest) error {
	switch {
	case req.SAN != "":
		return s.PlaySAN(req.SAN)
	case req.UCI != "":
		return s.PlayUCI(req.UCI)
	case req.From != "" && req.To != "":
		from, err := chess.SquareFromCode(req.From)
		if err != nil {
			return err
		}
		to, err := chess.SquareFromCode(req.To)
		if err != nil {
			return err
		}
		m := chess.Move{Piece: s.Board().At(from), From: from, To: to}
		if req.Promotion != "" {
			if m.PromoteTo, err = chess.ParsePromotionTarget(req.Promotion); err != nil {
				return err
			}
		}
		return s.Play(m)
	default:
		return errEmptyMove
	}
}

func (s *Server) promote(c *fiber.Ctx) error {
	var req PromotionRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}
	piece, err := chess.ParsePromotionTarget(req.Piece)
	if err != nil {
		return sendError(c, err)
	}
	return s.withGame(c, func(t *table) error {
		if err := t.session.Promote(piece); err != nil {
			return sendError(c, err)
		}
		return c.JSON(s.state(t))
	})
}

func (s *Server) cancelPromotion(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		t.session.CancelPromotion()
		return c.JSON(s.state(t))
	})
}

func (s *Server) importMoves(c *fiber.Ctx) error {
	var req ImportRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}
	return s.withGame(c, func(t *table) error {
		res := t.session.ImportNamed(req.Source, req.Movetext)
		return c.JSON(newGameState(t.id, t.session, s.cfg.Output, res.Diagnostics))
	})
}

func (s *Server) rewind(c *fiber.Ctx) error {
	var req RewindRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}
	if req.Ply == nil {
		return sendError(c, fiber.NewError(fiber.StatusBadRequest, "rewind needs a ply"))
	}
	return s.withGame(c, func(t *table) error {
		if err := t.session.Rewind(*req.Ply); err != nil {
			return sendError(c, err)
		}
		return c.JSON(s.state(t))
	})
}

func (s *Server) reset(c *fiber.Ctx) error {
	return s.withGame(c, func(t *table) error {
		t.session.Reset()
		return c.JSON(s.state(t))
	})
}

func (s *Server) engineMove(c *fiber.Ctx) error {
	if s.supplier == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no engine configured"})
	}
	return s.withGame(c, func(t *table) error {
		m, err := t.session.EngineMove(c.UserContext(), s.supplier)
		if err != nil {
			s.cfg.Logf(1, "game %s: %v", t.id, err)
			return sendError(c, err)
		}
		return c.JSON(EngineResponse{SAN: m.Notation, UCI: m.UCI(), State: s.state(t)})
	})
}
