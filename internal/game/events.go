package game

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// EventType names what changed in a session.
type EventType string

const (
	EventMove      EventType = "move"
	EventPromotion EventType = "promotion" // a promotion move is waiting for its target
	EventRewind    EventType = "rewind"
	EventReset     EventType = "reset"
)

// Event describes the session right after a change. Observers receive it
// synchronously, in subscription order.
type Event struct {
	Type EventType `json:"type"`

	// Move is the move just played, or the pending promotion move.
	Move chess.Move `json:"-"`
	SAN  string     `json:"san,omitempty"`
	UCI  string     `json:"uci,omitempty"`

	FEN              string                `json:"fen"`
	ToMove           chess.Colour          `json:"toMove"`
	Status           chess.Status          `json:"status"`
	Draw             engine.DrawRuleResult `json:"draw"`
	PromotionPending bool                  `json:"promotionPending"`
	Ply              int                   `json:"ply"`
}

// Observer is notified of every session change.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Subscribe registers o and returns a function that removes it again.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	id := s.nextObserver
	s.nextObserver++
	s.observers = append(s.observers, subscription{id: id, o: o})
	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

type subscription struct {
	id int
	o  Observer
}

func (s *Session) notify(t EventType, m *chess.Move) {
	if len(s.observers) == 0 {
		return
	}
	e := Event{
		Type:             t,
		FEN:              s.board.Serialize(),
		ToMove:           s.board.ToMove,
		Status:           s.status,
		Draw:             s.Draw(),
		PromotionPending: s.pending != nil,
		Ply:              s.cursor,
	}
	if m != nil {
		e.Move = *m
		e.SAN = m.Notation
		e.UCI = m.UCI()
	}
	// Observers may unsubscribe while being notified.
	subs := append([]subscription(nil), s.observers...)
	for _, sub := range subs {
		sub.o.OnEvent(e)
	}
}
