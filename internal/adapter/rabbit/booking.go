//go:generate go run go.uber.org/mock/mockgen -source=booking.go -destination=../../mocks/mock_rabbit_client.go -package=mocks
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/rabbit"
)

const BookingExchange = "booking_topic"

// Client is the part of the rabbit client the producer needs.
type Client interface {
	EnsureConnection(ctx context.Context) error
	Publish(ctx context.Context, exchange, key string, msg amqp091.Publishing) error
}

var _ Client = (*rabbit.RabbitMQ)(nil)

type BookingProducer struct {
	client   Client
	exchange string

	retries    int
	retryDelay time.Duration

	l logger.Logger
}

func NewBookingProducer(client Client, exchange string, log logger.Logger) *BookingProducer {
	if exchange == "" {
		exchange = BookingExchange
	}

	return &BookingProducer{
		client:     client,
		exchange:   exchange,
		retries:    3,
		retryDelay: 500 * time.Millisecond,
		l:          log,
	}
}

// RoutingKey returns 'booking.{event}' with the event name lowercased,
// example, "booking.trainer_matched".
func RoutingKey(evt models.BookingEvent) string {
	return "booking." + strings.ToLower(string(evt.Type))
}

// PublishBookingEvent публикует событие сессии в exchange 'booking_topic'
func (p *BookingProducer) PublishBookingEvent(ctx context.Context, evt models.BookingEvent) error {
	const op = "BookingProducer.PublishBookingEvent"
	ctx = wrap.WithAction(wrap.WithSessionID(ctx, evt.SessionID.String()), "rabbitmq_publish_booking_event")

	// Проверяем и восстанавливаем соединение
	if err := p.client.EnsureConnection(ctx); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: ensure connection failed: %w", op, err))
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	key := RoutingKey(evt)
	if err := retry(ctx, p.retries, p.retryDelay, func() error {
		return p.client.Publish(ctx, p.exchange, key, amqp091.Publishing{
			ContentType:   "application/json",
			MessageId:     evt.ID.String(),
			CorrelationId: evt.SessionID.String(), // для трассировки
			Type:          string(evt.Type),
			Body:          body,
			Timestamp:     evt.OccurredAt,
		})
	}); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	p.l.Debug(ctx, "booking event published", "routing_key", key)
	return nil
}
