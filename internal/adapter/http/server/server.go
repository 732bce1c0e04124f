package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Temutjin2k/fitness-connect/config"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/handler"
	"github.com/Temutjin2k/fitness-connect/internal/adapter/http/middleware"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
)

const (
	serverIPAddress        = "%s:%s"
	defaultShutdownTimeout = 5 * time.Second
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *Handlers
	m      *middleware.Middleware

	addr string
	cfg  config.HTTPConfig
	log  logger.Logger
}

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Health    *handler.Health
	Booking   *handler.Booking
	BookingWs *handler.BookingWs
	Catalog   *handler.Catalog
}

func New(service string, cfg config.HTTPConfig, routes *Handlers, logger logger.Logger) (*API, error) {
	switch {
	case routes == nil:
		return nil, errors.New("handlers are required")
	case routes.Health == nil, routes.Booking == nil, routes.BookingWs == nil, routes.Catalog == nil:
		return nil, errors.New("all handlers must be set")
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(service, logger),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Port),
		cfg:    cfg,
		log:    logger,
	}

	setupRoutes(api.mux, api.routes)

	api.server = &http.Server{
		Addr:         api.addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return api, nil
}

// Handler returns the mux with all middlewares applied
func (a *API) Handler() http.Handler {
	return middleware.Chain(a.mux,
		a.m.Recover,
		a.m.RequestID,
		a.m.Logging,
		a.m.Metrics,
	)
}

func (a *API) Addr() string {
	return a.addr
}

func (a *API) Stop(ctx context.Context) error {
	timeout := a.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

// Run starts serving in the background. A listen failure is sent to errCh.
func (a *API) Run(ctx context.Context, errCh chan<- error) {
	a.server.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		ctx := wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}
