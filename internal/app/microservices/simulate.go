package microservices

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Temutjin2k/fitness-connect/config"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/memory"
	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/postgres"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	"github.com/google/uuid"
)

const (
	simulateTimeout = time.Minute
	simulateBuffer  = 1024
)

var ErrEventsDropped = errors.New("simulation fell behind, events were dropped")

// SimulateService plays one scripted booking episode against a real-time
// controller and logs every event it emits.
type SimulateService struct {
	postgresDB *postgres.PostgreDB
	catalog    *memory.Catalog
	sched      scheduler.Scheduler
	events     *eventQueue

	cfg config.Config
	log logger.Logger
}

func NewSimulate(ctx context.Context, cfg config.Config, log logger.Logger) (*SimulateService, error) {
	catalog, db, err := loadCatalog(ctx, string(cfg.Mode), cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to setup trainer catalog", err)
		return nil, err
	}

	return &SimulateService{
		postgresDB: db,
		catalog:    catalog,
		sched:      scheduler.NewReal(),
		events:     newEventQueue(simulateBuffer),
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *SimulateService) Start(ctx context.Context) error {
	defer func() {
		if s.postgresDB != nil {
			s.postgresDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, simulateTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := booking.NewController(uuid.New(), newSettings(s.cfg.Booking), s.catalog, s.sched, newRand(), s.events, s.log)
	defer c.Close()

	ctx = wrap.WithAction(wrap.WithSessionID(ctx, c.ID().String()), "simulate")
	s.log.Info(ctx, "simulation started", "exercise", s.cfg.Simulate.Exercise, "duration_minutes", s.cfg.Simulate.Duration)

	snap, err := s.run(ctx, c)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	s.log.Info(ctx, "simulation completed",
		"phase", snap.Phase,
		"trainer", snap.Trainer.Name,
		"price", snap.EstimatedPrice,
		"progress", snap.ProgressText,
		"chat_messages", len(snap.ChatHistory),
	)
	return nil
}

func (s *SimulateService) run(ctx context.Context, c *booking.Controller) (models.Snapshot, error) {
	steps := []func(ctx context.Context) (models.Snapshot, error){
		c.RequestSession,
		func(ctx context.Context) (models.Snapshot, error) {
			return c.ChooseExercise(ctx, types.Exercise(s.cfg.Simulate.Exercise))
		},
		func(ctx context.Context) (models.Snapshot, error) {
			return c.SetDuration(ctx, s.cfg.Simulate.Duration)
		},
		c.ConfirmSearch,
	}
	for _, step := range steps {
		if _, err := step(ctx); err != nil {
			return models.Snapshot{}, err
		}
	}

	var (
		found   bool
		greeted bool
		sent    bool
		replied bool
		arrived bool
	)
	observe := func(evt models.BookingEvent) {
		switch evt.Type {
		case types.EventTrainerMatched:
			found = true
		case types.EventTrainerArrived:
			arrived = true
		case types.EventChatMessage:
			if evt.Message == nil || evt.Message.Sender != types.SenderTrainer {
				return
			}
			greeted = true
			replied = replied || sent
		}
	}

	if err := s.until(ctx, observe, func() bool { return found }); err != nil {
		return models.Snapshot{}, err
	}
	if _, err := c.Accept(ctx); err != nil {
		return models.Snapshot{}, err
	}

	if err := s.until(ctx, observe, func() bool { return greeted }); err != nil {
		return models.Snapshot{}, err
	}
	if s.cfg.Simulate.Message != "" {
		if _, err := c.SendMessage(ctx, s.cfg.Simulate.Message); err != nil {
			return models.Snapshot{}, err
		}
		sent = true
	} else {
		replied = true
	}

	if err := s.until(ctx, observe, func() bool { return arrived && replied }); err != nil {
		return models.Snapshot{}, err
	}
	return c.Snapshot(), nil
}

// until logs events as they come until done reports true.
func (s *SimulateService) until(ctx context.Context, observe func(models.BookingEvent), done func() bool) error {
	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-s.events.ch:
			s.logEvent(ctx, evt)
			observe(evt)
		}
		if s.events.Dropped() > 0 {
			return ErrEventsDropped
		}
	}
	return nil
}

func (s *SimulateService) logEvent(ctx context.Context, evt models.BookingEvent) {
	snap := evt.Snapshot
	args := []any{
		"event_type", evt.Type,
		"phase", snap.Phase,
		"generation", evt.Generation,
	}
	switch evt.Type {
	case types.EventArrivalProgress:
		// тики слишком частые для info
		s.log.Debug(ctx, "booking event", append(args, "progress", snap.ProgressText, "eta_minutes", snap.DisplayedMinutes)...)
		return
	case types.EventTrainerMatched:
		args = append(args, "trainer", snap.Trainer.Name, "price", snap.EstimatedPrice)
	case types.EventChatMessage:
		args = append(args, "sender", evt.Message.Sender, "text", evt.Message.Text)
	}
	s.log.Info(ctx, "booking event", args...)
}
