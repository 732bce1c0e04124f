package dispatcher

import (
	"context"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/metrics"
)

const drainTimeout = 2 * time.Second

/*
Dispatcher fans booking events out to websocket subscribers, the broker and
metrics. OnEvent runs under the session lock, so it only does non-blocking
work: the websocket frame is enqueued right away and the broker publish is
handed to the Run worker through a bounded queue. Events that do not fit are
dropped and counted.
*/
type Dispatcher struct {
	service string
	hub     Broadcaster
	pub     Publisher
	queue   chan models.BookingEvent
	l       logger.Logger
}

// New returns a dispatcher. hub and pub may be nil.
func New(service string, hub Broadcaster, pub Publisher, bufSize int, l logger.Logger) *Dispatcher {
	if bufSize <= 0 {
		bufSize = 256
	}

	return &Dispatcher{
		service: service,
		hub:     hub,
		pub:     pub,
		queue:   make(chan models.BookingEvent, bufSize),
		l:       l,
	}
}

func (d *Dispatcher) OnEvent(evt models.BookingEvent) {
	metrics.RecordBookingEvent(d.service, string(evt.Type))

	if d.hub != nil {
		if _, dropped := d.hub.Broadcast(evt.SessionID, StatusMessage(evt)); dropped > 0 {
			metrics.RecordDropped(d.service, "websocket")
		}
	}

	if d.pub == nil {
		return
	}
	select {
	case d.queue <- evt:
	default:
		metrics.RecordDropped(d.service, "broker")
		d.l.Warn(d.eventCtx(context.Background(), evt), "broker queue is full, event dropped", "event_type", evt.Type)
	}
}

// Run publishes queued events until ctx is done, then drains what is left.
func (d *Dispatcher) Run(ctx context.Context) {
	if d.pub == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx))
			return
		case evt := <-d.queue:
			d.publish(ctx, evt)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			d.l.Warn(ctx, "drain timed out", "left", len(d.queue))
			return
		case evt := <-d.queue:
			d.publish(ctx, evt)
		default:
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, evt models.BookingEvent) {
	ctx = d.eventCtx(ctx, evt)

	if err := d.pub.PublishBookingEvent(ctx, evt); err != nil {
		d.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish booking event", err, "event_type", evt.Type)
	}
}

func (d *Dispatcher) eventCtx(ctx context.Context, evt models.BookingEvent) context.Context {
	return wrap.WithAction(wrap.WithSessionID(ctx, evt.SessionID.String()), types.ActionDispatchEvent)
}

// StatusMessage is the websocket frame for evt.
func StatusMessage(evt models.BookingEvent) models.StatusUpdateWebSocketMessage {
	return models.StatusUpdateWebSocketMessage{
		EventType: evt.Type,
		Data:      evt,
	}
}
