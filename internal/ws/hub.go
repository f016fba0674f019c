package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tradewire/bookfeed/internal/domain/book"
	"github.com/tradewire/bookfeed/internal/domain/broadcast"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// Envelope is the wire frame for every hub-to-client message.
type Envelope struct {
	Event  string `json:"event"`
	Symbol string `json:"symbol,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Hub tracks the per-symbol interest groups and fans broadcast payloads out
// to their members. It implements broadcast.Publisher; Emit never blocks on
// a slow consumer, the member's send buffer absorbs bursts and the member is
// dropped when it overflows.
type Hub struct {
	bookUsecase book.Usecase
	symbols     map[string]struct{}
	logger      logger.Interface

	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[*Client]bool
}

// NewHub creates a hub for the supported symbol set.
func NewHub(bookUsecase book.Usecase, symbols map[string]struct{}, logger logger.Interface) *Hub {
	return &Hub{
		bookUsecase: bookUsecase,
		symbols:     symbols,
		logger:      logger,
		rooms:       make(map[string]map[*Client]bool, len(symbols)),
		clients:     make(map[*Client]bool),
	}
}

// Emit fans the payload out to every member of the symbol's interest group.
// Delivery happens under the read lock: Remove closes a send channel only
// while holding the write lock, so a close can never race an in-flight send.
func (h *Hub) Emit(symbol string, event string, payload any) {
	frame, err := h.marshal(event, symbol, payload)
	if err != nil {
		return
	}

	var dropped []*Client
	h.mu.RLock()
	for client := range h.rooms[symbol] {
		select {
		case client.send <- frame:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.drop(client)
	}
}

// EmitTo sends one payload to a single connection, outside any room.
func (h *Hub) EmitTo(client *Client, event string, symbol string, payload any) {
	frame, err := h.marshal(event, symbol, payload)
	if err != nil {
		return
	}

	overflowed := false
	h.mu.RLock()
	if h.clients[client] {
		select {
		case client.send <- frame:
		default:
			overflowed = true
		}
	}
	h.mu.RUnlock()

	if overflowed {
		h.drop(client)
	}
}

func (h *Hub) marshal(event, symbol string, payload any) ([]byte, error) {
	frame, err := json.Marshal(Envelope{Event: event, Symbol: symbol, Data: payload})
	if err != nil {
		h.logger.Error(err, logger.Field{Key: "event", Value: event})
		return nil, err
	}
	return frame, nil
}

// drop evicts a connection whose send buffer overflowed.
func (h *Hub) drop(client *Client) {
	h.logger.Warn("dropping slow client", logger.Field{Key: "client", Value: client.id})
	h.Remove(client)
}

// Add registers a connection with the hub.
func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("client connected",
		logger.Field{Key: "client", Value: client.id},
		logger.Field{Key: "total", Value: total},
	)
}

// Remove drops a connection from the hub and from every room it joined.
// Safe to call more than once for the same client. The channel close happens
// under the write lock, which excludes every sender holding the read lock.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for _, room := range h.rooms {
		delete(room, client)
	}
	close(client.send)
	h.mu.Unlock()

	h.logger.Debug("client disconnected", logger.Field{Key: "client", Value: client.id})
}

// Join adds the client to a symbol's interest group and replies with a full
// snapshot. The client enters the room before the snapshot is built, so any
// delta emitted while the snapshot query runs still reaches it. A join for
// an unsupported symbol is silently ignored.
func (h *Hub) Join(ctx context.Context, client *Client, symbol string) {
	if _, ok := h.symbols[symbol]; !ok {
		return
	}

	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	room, ok := h.rooms[symbol]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[symbol] = room
	}
	room[client] = true
	h.mu.Unlock()

	snapshot, err := h.bookUsecase.BuildSnapshot(ctx, symbol)
	if err != nil {
		h.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: symbol})
		return
	}
	h.EmitTo(client, broadcast.EventOrderBook, symbol, snapshot)
}

// Leave removes the client from a symbol's interest group.
func (h *Hub) Leave(client *Client, symbol string) {
	h.mu.Lock()
	delete(h.rooms[symbol], client)
	h.mu.Unlock()
}

// Correction reconciles the client's stale entries and replies directly.
func (h *Hub) Correction(ctx context.Context, client *Client, symbol string, ask, bid *book.Candidate) {
	correction, err := h.bookUsecase.Reconcile(ctx, ask, bid)
	if err != nil {
		h.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: symbol})
		return
	}
	h.EmitTo(client, broadcast.EventCorrection, symbol, correction)
}

// Members reports the size of one symbol's interest group.
func (h *Hub) Members(symbol string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[symbol])
}
