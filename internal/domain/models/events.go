package models

import (
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/google/uuid"
)

// BookingEvent describes one state change of a booking session
type BookingEvent struct {
	ID         uuid.UUID          `json:"event_id"`
	Type       types.BookingEvent `json:"event_type"`
	SessionID  uuid.UUID          `json:"session_id"`
	Generation uint64             `json:"generation"`
	Snapshot   Snapshot           `json:"snapshot"`
	Message    *ChatMessage       `json:"message,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// StatusUpdateWebSocketMessage is the frame pushed to websocket subscribers
type StatusUpdateWebSocketMessage struct {
	EventType types.BookingEvent `json:"event_type"`
	Data      any                `json:"data"`
}
