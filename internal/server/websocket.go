package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// MessageType tags websocket messages.
type MessageType string

// Session events are pushed with their event type ("move", "promotion",
// "rewind", "reset").
const (
	MessageTypeMove      MessageType = "move"
	MessageTypePromotion MessageType = "promotion"
	MessageTypeState     MessageType = "state"
	MessageTypeError     MessageType = "error"
)

// Message is one websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, payload interface{}) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw, _ = json.Marshal(fiber.Map{"error": err.Error()})
		t = MessageTypeError
	}
	return Message{Type: t, Payload: raw}
}

// client serialises writes to one connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// hub fans session events out to a game's watchers.
type hub struct {
	cfg     *config.Config
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub(cfg *config.Config) *hub {
	return &hub{cfg: cfg, clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// OnEvent implements game.Observer.
func (h *hub) OnEvent(e game.Event) {
	msg := newMessage(MessageType(e.Type), e)
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.send(msg); err != nil {
			h.cfg.Logf(1, "websocket: %v", err)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (s *Server) requireGame(c *fiber.Ctx) error {
	if _, err := s.games.Get(c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.Next()
}

// handleSocket sends the current state, then plays moves sent by the
// client until it disconnects.
func (s *Server) handleSocket(conn *websocket.Conn) {
	t, err := s.games.Get(conn.Params("id"))
	if err != nil {
		_ = conn.Close()
		return
	}

	// The snapshot goes out before the client joins the hub, both under the
	// table lock, so no event can overtake it.
	c := &client{conn: conn}
	t.mu.Lock()
	if err := c.send(newMessage(MessageTypeState, s.state(t))); err != nil {
		t.mu.Unlock()
		return
	}
	t.hub.add(c)
	t.mu.Unlock()
	defer t.hub.remove(c)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			s.cfg.Logf(2, "game %s: websocket closed: %v", t.id, err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = c.send(newMessage(MessageTypeError, fiber.Map{"error": err.Error()}))
			continue
		}
		if err := s.handleMessage(t, c, msg); err != nil {
			_ = c.send(newMessage(MessageTypeError, fiber.Map{"error": err.Error()}))
		}
	}
}

func (s *Server) handleMessage(t *table, c *client, msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return applyMove(t.session, &req)
	case MessageTypePromotion:
		var req PromotionRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		piece, err := chess.ParsePromotionTarget(req.Piece)
		if err != nil {
			return err
		}
		return t.session.Promote(piece)
	case MessageTypeState:
		return c.send(newMessage(MessageTypeState, s.state(t)))
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}
