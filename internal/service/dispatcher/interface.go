//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../../mocks/mock_dispatcher.go -package=mocks
package dispatcher

import (
	"context"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/google/uuid"
)

// Publisher forwards booking events to the message broker.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, evt models.BookingEvent) error
}

// Broadcaster pushes frames to the websocket subscribers of a session without blocking.
type Broadcaster interface {
	Broadcast(sessionID uuid.UUID, msg any) (sent, dropped int)
}
