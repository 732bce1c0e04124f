package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/metrics"
	ws "github.com/Temutjin2k/fitness-connect/pkg/wsHub"
	"github.com/gorilla/websocket"
)

const frameTypeSnapshot = "snapshot"

type BookingWs struct {
	service    string
	sessions   SessionStore
	hub        *ws.ConnectionHub
	upgrader   websocket.Upgrader
	sendBuffer int
	l          logger.Logger
}

func NewBookingWs(service string, sessions SessionStore, hub *ws.ConnectionHub, sendBuffer int, l logger.Logger) *BookingWs {
	return &BookingWs{
		service:  service,
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		l:          l,
	}
}

// Subscribe godoc
// @Summary      Subscribe to session updates
// @Description  Upgrades to a websocket. The first frame is the current snapshot, then every session event follows in order. Send {"type":"snapshot"} to get the snapshot again.
// @Tags         Sessions
// @Param        session_id  path  string  true  "Session ID"
// @Success      101
// @Failure      404  {object}  map[string]string
// @Router       /ws/sessions/{session_id} [get]
func (h *BookingWs) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_subscribe")

	id, err := sessionIDFromPath(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}
	ctx = wrap.WithSessionID(ctx, id.String())

	// проверяем сессию до апгрейда, чтобы вернуть нормальный HTTP ответ
	c, err := h.sessions.Get(ctx, id)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(ctx, "failed to upgrade connection", err)
		return
	}

	conn := ws.NewConn(context.Background(), id, wsConn, h.sendBuffer)
	if err := h.hub.Add(conn); err != nil {
		h.l.Warn(ctx, "failed to register subscriber", "error", err.Error())
		conn.Close()
		return
	}
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Inc()
	h.l.Info(ctx, "subscriber connected", "conn_id", conn.ID())

	defer func() {
		if err := h.hub.Delete(conn); err != nil {
			h.l.Debug(ctx, "subscriber already removed", "error", err.Error())
		}
		metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Dec()
		h.l.Info(ctx, "subscriber disconnected", "conn_id", conn.ID())
	}()

	if err := conn.Send(snapshotFrame(c.Snapshot())); err != nil {
		h.l.Warn(ctx, "failed to send initial snapshot", "error", err.Error())
		return
	}

	go func() {
		if err := conn.WritePump(); err != nil {
			h.l.Debug(ctx, "write pump stopped", "error", err.Error())
		}
		conn.Close()
	}()

	err = conn.Listen(func(msg map[string]any) error {
		if msg["type"] != frameTypeSnapshot {
			return conn.Send(map[string]any{"error": "unsupported frame type"})
		}
		return conn.Send(snapshotFrame(c.Snapshot()))
	})
	var closeErr *websocket.CloseError
	if err != nil && !errors.As(err, &closeErr) {
		h.l.Debug(ctx, "subscriber read loop stopped", "error", err.Error())
	}
}

func snapshotFrame(snap models.Snapshot) models.StatusUpdateWebSocketMessage {
	return models.StatusUpdateWebSocketMessage{
		EventType: types.EventSnapshot,
		Data:      snap,
	}
}
