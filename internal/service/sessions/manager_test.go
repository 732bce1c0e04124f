package sessions

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/adapter/memory"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/internal/service/booking"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestManager(cfg Config) (*Manager, *scheduler.Manual) {
	clock := scheduler.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	l := logger.New(io.Discard, "test", logger.LevelDebug)
	m := NewManager(cfg, booking.DefaultSettings(), memory.NewDefaultCatalog(), clock, booking.NopListener(), l)
	return m, clock
}

func TestManager_CreateGetRemove(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, _ := newTestManager(Config{})

	c, err := m.Create(ctx)
	req.NoError(err)
	req.Equal(types.PhaseIdle, c.Snapshot().Phase)
	req.Equal(1, m.Count())

	got, err := m.Get(ctx, c.ID())
	req.NoError(err)
	req.Same(c, got)
	req.ElementsMatch([]uuid.UUID{c.ID()}, m.IDs())

	req.NoError(m.Remove(ctx, c.ID()))
	req.Zero(m.Count())

	_, err = m.Get(ctx, c.ID())
	req.ErrorIs(err, types.ErrSessionNotFound)
	req.ErrorIs(m.Remove(ctx, c.ID()), types.ErrSessionNotFound)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, clock := newTestManager(Config{})

	a, err := m.Create(ctx)
	req.NoError(err)
	b, err := m.Create(ctx)
	req.NoError(err)
	req.NotEqual(a.ID(), b.ID())

	_, err = a.RequestSession(ctx)
	req.NoError(err)
	_, err = a.ChooseExercise(ctx, types.ExerciseYoga)
	req.NoError(err)
	_, err = a.ConfirmSearch(ctx)
	req.NoError(err)

	clock.Advance(3 * time.Second)
	req.Equal(types.PhaseFound, a.Snapshot().Phase)
	req.Equal(types.PhaseIdle, b.Snapshot().Phase)
}

func TestManager_MaxSessions(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(Config{MaxSessions: 2})

	first, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.Create(ctx)
	require.NoError(t, err)

	_, err = m.Create(ctx)
	require.ErrorIs(t, err, types.ErrTooManySessions)

	require.NoError(t, m.Remove(ctx, first.ID()))
	_, err = m.Create(ctx)
	require.NoError(t, err)
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, clock := newTestManager(Config{IdleTTL: time.Minute, SweepInterval: time.Second})

	stale, err := m.Create(ctx)
	req.NoError(err)
	_, err = stale.RequestSession(ctx)
	req.NoError(err)
	_, err = stale.ChooseExercise(ctx, types.ExerciseCardio)
	req.NoError(err)
	_, err = stale.ConfirmSearch(ctx)
	req.NoError(err)

	clock.Advance(2 * time.Second) // still searching
	req.Equal(types.PhaseSearching, stale.Snapshot().Phase)

	clock.Advance(40 * time.Second)
	fresh, err := m.Create(ctx)
	req.NoError(err)

	clock.Advance(30 * time.Second)
	req.Equal(1, m.Sweep(ctx))
	req.Equal(1, m.Count())

	_, err = m.Get(ctx, stale.ID())
	req.ErrorIs(err, types.ErrSessionNotFound)
	_, err = m.Get(ctx, fresh.ID())
	req.NoError(err)
}

func TestManager_SweepStopsTimers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, clock := newTestManager(Config{IdleTTL: time.Second})

	c, err := m.Create(ctx)
	req.NoError(err)
	_, err = c.RequestSession(ctx)
	req.NoError(err)
	_, err = c.ChooseExercise(ctx, types.ExerciseHIIT)
	req.NoError(err)
	_, err = c.ConfirmSearch(ctx)
	req.NoError(err)
	req.Equal(1, clock.Pending())

	clock.Advance(2 * time.Second)
	req.Equal(1, m.Sweep(ctx))
	req.Zero(clock.Pending())

	clock.Advance(time.Minute)
	req.Equal(types.PhaseSearching, c.Snapshot().Phase)
}

func TestManager_SweepDisabledWithoutTTL(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(Config{})

	_, err := m.Create(ctx)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	require.Zero(t, m.Sweep(ctx))
	require.Equal(t, 1, m.Count())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m, _ := newTestManager(Config{IdleTTL: time.Minute, SweepInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManager_Close(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(Config{})

	c, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = c.RequestSession(ctx)
	require.NoError(t, err)
	_, err = c.ChooseExercise(ctx, types.ExerciseYoga)
	require.NoError(t, err)
	_, err = c.ConfirmSearch(ctx)
	require.NoError(t, err)

	m.Close()
	require.Zero(t, m.Count())
	require.Zero(t, clock.Pending())
}

func TestManager_OnRemoveHooks(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	m, clock := newTestManager(Config{IdleTTL: time.Minute})

	var removed []uuid.UUID
	m.OnRemove(func(id uuid.UUID) {
		removed = append(removed, id)
	})

	a, err := m.Create(ctx)
	req.NoError(err)
	b, err := m.Create(ctx)
	req.NoError(err)

	req.NoError(m.Remove(ctx, a.ID()))
	req.Equal([]uuid.UUID{a.ID()}, removed)

	clock.Advance(2 * time.Minute)
	req.Equal(1, m.Sweep(ctx))
	req.Equal([]uuid.UUID{a.ID(), b.ID()}, removed)

	// unknown session does not trigger hooks
	req.Error(m.Remove(ctx, a.ID()))
	req.Len(removed, 2)
}
