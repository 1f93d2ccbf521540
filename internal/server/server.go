// Package server exposes game sessions over HTTP and pushes their changes to
// websocket watchers.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/config"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// Server routes requests to the live games.
type Server struct {
	cfg      *config.Config
	app      *fiber.App
	games    *Manager
	supplier game.MoveSupplier
}

// New builds the application. supplier may be nil, in which case engine
// moves are refused.
func New(cfg *config.Config, supplier game.MoveSupplier) *Server {
	s := &Server{
		cfg:      cfg,
		games:    NewManager(cfg),
		supplier: supplier,
		app: fiber.New(fiber.Config{
			AppName:               "chess-server",
			DisableStartupMessage: true,
		}),
	}

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if cfg.LogFile != nil && cfg.Verbosity >= 1 {
		s.app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	games := s.app.Group("/api/games")
	games.Post("/", s.createGame)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Get("/:id/moves", s.legalMoves)
	games.Get("/:id/attacks", s.attacks)
	games.Get("/:id/text", s.text)
	games.Post("/:id/moves", s.playMove)
	games.Post("/:id/promotion", s.promote)
	games.Delete("/:id/promotion", s.cancelPromotion)
	games.Post("/:id/import", s.importMoves)
	games.Post("/:id/rewind", s.rewind)
	games.Post("/:id/reset", s.reset)
	games.Post("/:id/engine", s.engineMove)

	s.app.Use("/ws", requireUpgrade)
	s.app.Get("/ws/games/:id", s.requireGame, websocket.New(s.handleSocket))
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Games returns the live game table.
func (s *Server) Games() *Manager { return s.games }

// Listen serves on the configured address until Shutdown is called.
func (s *Server) Listen() error {
	s.cfg.Logf(1, "listening on %s", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTooManyGames):
		return fiber.StatusTooManyRequests
	case errors.Is(err, chesserrors.ErrPromotionPending),
		errors.Is(err, chesserrors.ErrNoPromotionPending):
		return fiber.StatusConflict
	case errors.Is(err, chesserrors.ErrPlyOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, chesserrors.ErrEngineMove):
		return fiber.StatusBadGateway
	case errors.Is(err, chesserrors.ErrMoveNotFound),
		errors.Is(err, chesserrors.ErrIllegitimatePromotion),
		errors.Is(err, chesserrors.ErrMalformedPosition),
		errors.Is(err, chesserrors.ErrSquareCodeNotFound),
		errors.Is(err, chesserrors.ErrCoordinateOutOfRange):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
