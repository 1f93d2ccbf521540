package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/game"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many games")
)

// table is one live game. The session is not safe for concurrent use, so
// every access goes through mu.
type table struct {
	id      string
	mu      sync.Mutex
	session *game.Session
	hub     *hub
}

// Manager keeps the live games by id.
type Manager struct {
	cfg   *config.Config
	mu    sync.RWMutex
	games map[string]*table
}

// NewManager creates an empty manager.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg, games: make(map[string]*table)}
}

// Create starts a game from ranks with toMove to play.
func (m *Manager) Create(ranks string, toMove chess.Colour) (*table, error) {
	h := newHub(m.cfg)
	s, err := game.NewSessionFromFEN(ranks, toMove, game.WithConfig(m.cfg), game.WithObserver(h))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if max := m.cfg.Server.MaxSessions; max > 0 && len(m.games) >= max {
		return nil, ErrTooManyGames
	}
	t := &table{id: uuid.New().String(), session: s, hub: h}
	m.games[t.id] = t
	m.cfg.Logf(1, "game %s: created from %s", t.id, ranks)
	return t, nil
}

// Get returns the game with the given id.
func (m *Manager) Get(id string) (*table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return t, nil
}

// Remove ends a game and disconnects its watchers.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	t, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	t.hub.closeAll()
	m.cfg.Logf(1, "game %s: removed", id)
	return nil
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
