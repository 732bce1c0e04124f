package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Temutjin2k/fitness-connect/config"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/handler"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/server"
	rabbitadapter "github.com/Temutjin2k/fitness-connect/internal/adapter/rabbit"
	"github.com/Temutjin2k/fitness-connect/internal/service/dispatcher"
	"github.com/Temutjin2k/fitness-connect/internal/service/sessions"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	"github.com/Temutjin2k/fitness-connect/pkg/postgres"
	"github.com/Temutjin2k/fitness-connect/pkg/rabbit"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	ws "github.com/Temutjin2k/fitness-connect/pkg/wsHub"
	"github.com/google/uuid"
)

const closeTimeout = 5 * time.Second

type BookingService struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	hub        *ws.ConnectionHub
	dispatcher *dispatcher.Dispatcher
	sessions   *sessions.Manager
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewBooking(ctx context.Context, cfg config.Config, log logger.Logger) (*BookingService, error) {
	service := string(cfg.Mode)
	s := &BookingService{
		cfg: cfg,
		log: log,
	}

	catalog, db, err := loadCatalog(ctx, service, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to setup trainer catalog", err)
		return nil, err
	}
	s.postgresDB = db

	// broker is optional, without it events only go to websocket subscribers
	var publisher dispatcher.Publisher
	if cfg.RabbitMQ.Enabled {
		s.rabbitMQ, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			log.Error(ctx, "Failed to setup RabbitMQ", err)
			s.close(ctx)
			return nil, err
		}
		if err := s.rabbitMQ.DeclareTopicExchange(cfg.RabbitMQ.Exchange); err != nil {
			log.Error(ctx, "Failed to declare booking exchange", err)
			s.close(ctx)
			return nil, err
		}
		publisher = rabbitadapter.NewBookingProducer(s.rabbitMQ, cfg.RabbitMQ.Exchange, log)
	}

	s.hub = ws.NewConnHub(log)
	s.dispatcher = dispatcher.New(service, s.hub, publisher, cfg.Dispatcher.QueueSize, log)

	settings := newSettings(cfg.Booking)
	s.sessions = sessions.NewManager(sessions.Config{
		Service:       service,
		IdleTTL:       cfg.Sessions.IdleTTL,
		SweepInterval: cfg.Sessions.SweepInterval,
		MaxSessions:   cfg.Sessions.MaxSessions,
	}, settings, catalog, scheduler.NewReal(), s.dispatcher, log)
	s.sessions.OnRemove(func(id uuid.UUID) {
		s.hub.CloseSession(id)
	})

	s.httpServer, err = server.New(service, cfg.HTTP, &server.Handlers{
		Health:    handler.NewHealth(service, s.sessions, log),
		Booking:   handler.NewBooking(s.sessions, log),
		BookingWs: handler.NewBookingWs(service, s.sessions, s.hub, cfg.WebSocket.SendBuffer, log),
		Catalog:   handler.NewCatalog(catalog, settings, log),
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	return s, nil
}

func (s *BookingService) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)

	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		s.dispatcher.Run(ctx)
	}()
	go s.sessions.Run(ctx)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		// сначала останавливаем HTTP, потом ждем пока dispatcher допубликует события
		s.stopServer(ctx)
		s.sessions.Close()
		cancel()
		<-dispatcherDone
		s.close(ctx)
		s.log.Info(ctx, "booking service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	s.log.Info(ctx, "Booking service has been started", "address", s.httpServer.Addr())

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (s *BookingService) stopServer(ctx context.Context) {
	if err := s.httpServer.Stop(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
	}
}

func (s *BookingService) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()

	if s.hub != nil {
		s.hub.Close()
	}

	if s.rabbitMQ != nil {
		if err := s.rabbitMQ.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close RabbitMQ", "error", err.Error())
		}
	}

	if s.postgresDB != nil {
		s.postgresDB.Close()
	}
}
