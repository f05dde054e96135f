package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"loanerdesk/internal/usecase/queries"
)

// Hub owns the set of connected viewers and fans broadcast frames out to
// them. One hub per process; handed to the lifecycle commands as a Publisher.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]struct{}),
	}
}

// Run loops until ctx is done. Start it once from the application lifecycle.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			slog.Info("viewer connected", "viewers", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				slog.Info("viewer disconnected", "viewers", len(h.clients))
			}
		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// No backpressure: a viewer that cannot keep up is dropped.
					delete(h.clients, c)
					close(c.send)
					slog.Warn("dropping slow viewer")
				}
			}
		}
	}
}

// Publish broadcasts a lifecycle event to every connected viewer. Failures
// are logged and swallowed; the originating operation already committed and
// must not be affected.
func (h *Hub) Publish(action Action, view *queries.ReservationView) {
	frame, err := json.Marshal(Message{
		Event:  EventReservationUpdate,
		Action: action,
		Data:   view,
	})
	if err != nil {
		slog.Error("failed to encode reservation update", "action", string(action), "error", err.Error())
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		slog.Warn("broadcast queue full, dropping reservation update", "action", string(action))
	}
}

var _ Publisher = (*Hub)(nil)
