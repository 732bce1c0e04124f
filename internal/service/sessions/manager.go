package sessions

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/metrics"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Config struct {
	Service       string // metrics label
	IdleTTL       time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

// Manager keeps the live booking sessions. Each session gets its own
// controller and random source; all share the scheduler, pool and listener.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*booking.Controller

	cfg      Config
	settings booking.Settings
	pool     booking.TrainerPool
	sched    scheduler.Scheduler
	listener booking.Listener
	l        logger.Logger

	newRand  func() booking.Rand
	onRemove []func(id uuid.UUID)
}

func NewManager(cfg Config, settings booking.Settings, pool booking.TrainerPool, sched scheduler.Scheduler, listener booking.Listener, l logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*booking.Controller),
		cfg:      cfg,
		settings: settings,
		pool:     pool,
		sched:    sched,
		listener: listener,
		l:        l,
		newRand: func() booking.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// Create registers a new idle session.
func (m *Manager) Create(ctx context.Context) (*booking.Controller, error) {
	ctx = wrap.WithAction(ctx, "create_session")

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		return nil, wrap.Error(ctx, types.ErrTooManySessions)
	}

	id := uuid.New()
	c := booking.NewController(id, m.settings, m.pool, m.sched, m.newRand(), m.listener, m.l)
	m.sessions[id] = c
	metrics.SetActiveSessions(m.cfg.Service, len(m.sessions))

	m.l.Info(wrap.WithSessionID(ctx, id.String()), "session created", "active_sessions", len(m.sessions))
	return c, nil
}

func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*booking.Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.sessions[id]
	if !ok {
		return nil, wrap.Error(wrap.WithSessionID(ctx, id.String()), types.ErrSessionNotFound)
	}
	return c, nil
}

// Remove drops the session and stops its timers.
func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	ctx = wrap.WithAction(wrap.WithSessionID(ctx, id.String()), "remove_session")

	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return wrap.Error(ctx, types.ErrSessionNotFound)
	}

	c.Close()
	m.removed(id, n)
	m.l.Info(ctx, "session removed")
	return nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the IDs of all live sessions.
func (m *Manager) IDs() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.Keys(m.sessions)
}

// Sweep removes sessions idle for longer than IdleTTL and returns how many were removed.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	ctx = wrap.WithAction(ctx, types.ActionSessionExpired)
	now := m.sched.Now()

	m.mu.Lock()
	expired := lo.PickBy(m.sessions, func(_ uuid.UUID, c *booking.Controller) bool {
		return now.Sub(c.LastActivity()) > m.cfg.IdleTTL
	})
	for id := range expired {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for id, c := range expired {
		c.Close()
		m.removed(id, n)
		m.l.Info(wrap.WithSessionID(ctx, id.String()), "idle session expired")
	}
	return len(expired)
}

// Run sweeps idle sessions every SweepInterval until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.cfg.IdleTTL <= 0 || m.cfg.SweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				m.l.Debug(ctx, "sweep finished", "expired", n, "active_sessions", m.Count())
			}
		}
	}
}

// OnRemove registers fn to run after a session is removed or expired.
// Must be called before the manager is used.
func (m *Manager) OnRemove(fn func(id uuid.UUID)) {
	m.onRemove = append(m.onRemove, fn)
}

func (m *Manager) removed(id uuid.UUID, active int) {
	metrics.SetActiveSessions(m.cfg.Service, active)
	for _, fn := range m.onRemove {
		fn(id)
	}
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, c := range m.sessions {
		c.Close()
		delete(m.sessions, id)
	}
	metrics.SetActiveSessions(m.cfg.Service, 0)
}
