package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	ErrConnClosed   = errors.New("connection closed")
	ErrSlowConsumer = errors.New("send buffer is full")
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// Conn is one subscriber of a session stream. Writes go through a buffered
// queue drained by WritePump, so Send never blocks the caller.
type Conn struct {
	id        uuid.UUID
	sessionID uuid.UUID
	conn      *websocket.Conn
	send      chan any

	doneCtx   context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewConn(ctx context.Context, sessionID uuid.UUID, conn *websocket.Conn, bufSize int) *Conn {
	ctx, cancel := context.WithCancel(ctx)
	if bufSize <= 0 {
		bufSize = 1
	}

	return &Conn{
		id:        uuid.New(),
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan any, bufSize),
		doneCtx:   ctx,
		cancel:    cancel,
	}
}

func (c *Conn) ID() uuid.UUID {
	return c.id
}

func (c *Conn) SessionID() uuid.UUID {
	return c.sessionID
}

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.doneCtx.Done()
}

// Send enqueues msg for writing.
func (c *Conn) Send(msg any) error {
	select {
	case <-c.doneCtx.Done():
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// WritePump writes queued messages and periodic pings until the connection closes.
func (c *Conn) WritePump() error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.doneCtx.Done():
			return nil
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("write failed: %w", err)
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

// Listen reads client frames until the peer goes away. Handler may be nil.
func (c *Conn) Listen(handler func(msg map[string]any) error) error {
	for {
		var msg map[string]any
		if err := c.conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.doneCtx.Done():
				return nil
			default:
			}
			return fmt.Errorf("read failed: %w", err)
		}
		if handler == nil {
			continue
		}
		if err := handler(msg); err != nil {
			return fmt.Errorf("handler failed: %w", err)
		}
	}
}

// Close sends a close frame and closes the socket. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		// WriteControl и Close можно вызывать параллельно с WritePump
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}
