package microservices

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
)

// eventQueue is a non-blocking booking.Listener backed by a buffered channel.
type eventQueue struct {
	ch      chan models.BookingEvent
	dropped atomic.Int64
}

func newEventQueue(size int) *eventQueue {
	return &eventQueue{ch: make(chan models.BookingEvent, size)}
}

func (q *eventQueue) OnEvent(evt models.BookingEvent) {
	select {
	case q.ch <- evt:
	default:
		q.dropped.Add(1)
	}
}

func (q *eventQueue) Dropped() int64 {
	return q.dropped.Load()
}

func newRand() booking.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
