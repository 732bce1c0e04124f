package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
	ErrHubClosed      = errors.New("hub is closed")
)

// ConnectionHub хранит все активные WebSocket соединения, сгруппированные по сессии
type ConnectionHub struct {
	sessions map[uuid.UUID]map[uuid.UUID]*Conn
	l        logger.Logger
	mu       sync.Mutex
	closed   bool
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		sessions: make(map[uuid.UUID]map[uuid.UUID]*Conn),
		l:        l,
	}
}

// Add registers a subscriber for its session.
func (h *ConnectionHub) Add(c *Conn) error {
	if c == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	subs, ok := h.sessions[c.sessionID]
	if !ok {
		subs = make(map[uuid.UUID]*Conn)
		h.sessions[c.sessionID] = subs
	}
	subs[c.id] = c

	return nil
}

// Delete removes and closes one subscriber.
func (h *ConnectionHub) Delete(c *Conn) error {
	if c == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	subs, ok := h.sessions[c.sessionID]
	if ok {
		_, ok = subs[c.id]
		delete(subs, c.id)
		if len(subs) == 0 {
			delete(h.sessions, c.sessionID)
		}
	}
	h.mu.Unlock()

	if !ok {
		return ErrConnIsNotFound
	}

	if err := c.Close(); err != nil {
		h.l.Debug(wrap.WithAction(context.Background(), "ws_connection_delete"),
			"failed to close conn",
			"conn_id", c.id,
			"err", err.Error(),
		)
	}
	return nil
}

// Broadcast enqueues msg for every subscriber of the session and returns how
// many accepted it. Subscribers with a full buffer are skipped.
func (h *ConnectionHub) Broadcast(sessionID uuid.UUID, msg any) (sent, dropped int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.sessions[sessionID] {
		if err := c.Send(msg); err != nil {
			dropped++
			continue
		}
		sent++
	}
	return sent, dropped
}

// CloseSession closes all subscribers of the session.
func (h *ConnectionHub) CloseSession(sessionID uuid.UUID) {
	h.mu.Lock()
	subs := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	for _, c := range subs {
		_ = c.Close()
	}
}

// Count returns the number of open subscribers.
func (h *ConnectionHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, subs := range h.sessions {
		n += len(subs)
	}
	return n
}

// Subscribers returns the number of subscribers of one session.
func (h *ConnectionHub) Subscribers(sessionID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// Close закрывает каждое websocket соединение
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	// копируем клиентов под локом
	h.mu.Lock()
	h.closed = true
	var conns []*Conn
	for _, subs := range h.sessions {
		for _, c := range subs {
			conns = append(conns, c)
		}
	}
	h.sessions = make(map[uuid.UUID]map[uuid.UUID]*Conn)
	h.mu.Unlock()

	// закрываем вне локов
	for _, c := range conns {
		_ = c.Close()
	}

	h.l.Info(ctx, "all websocket connections closed gracefully", "count", len(conns))
}
