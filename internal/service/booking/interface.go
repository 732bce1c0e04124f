package booking

import "github.com/Temutjin2k/fitness-connect/internal/domain/models"

// Listener receives every state change of a session, in order.
// OnEvent is called while the session is locked and must not block.
type Listener interface {
	OnEvent(evt models.BookingEvent)
}

// TrainerPool is the candidate pool the matching simulator draws from.
type TrainerPool interface {
	Trainers() []models.Trainer
}

// Rand is the random source used for trainer and reply selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type nopListener struct{}

func (nopListener) OnEvent(models.BookingEvent) {}

// NopListener discards events.
func NopListener() Listener {
	return nopListener{}
}
