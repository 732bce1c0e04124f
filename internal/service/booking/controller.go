package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

/*
Controller owns the state of one booking session and drives its state machine.
User operations and timer callbacks are serialized by mu. Every phase entry
bumps gen; a timer callback whose captured generation differs from the
current one is discarded.
*/
type Controller struct {
	mu sync.Mutex

	id       uuid.UUID
	cfg      Settings
	pool     TrainerPool
	sched    scheduler.Scheduler
	rnd      Rand
	listener Listener
	l        logger.Logger
	baseCtx  context.Context

	state        models.State
	chat         models.Chat
	gen          uint64
	timerSeq     uint64
	timers       map[uint64]scheduler.Timer
	lastActivity time.Time
	closed       bool
}

// NewController returns a controller in the idle phase.
func NewController(id uuid.UUID, cfg Settings, pool TrainerPool, sched scheduler.Scheduler, rnd Rand, listener Listener, l logger.Logger) *Controller {
	if listener == nil {
		listener = NopListener()
	}

	return &Controller{
		id:           id,
		cfg:          cfg,
		pool:         pool,
		sched:        sched,
		rnd:          rnd,
		listener:     listener,
		l:            l,
		baseCtx:      wrap.WithSessionID(context.Background(), id.String()),
		state:        models.Idle{},
		timers:       make(map[uint64]scheduler.Timer),
		lastActivity: sched.Now(),
	}
}

func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Snapshot returns the current read model.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Generation returns the current phase generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// LastActivity returns the time of the last user operation.
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// RequestSession moves idle to selecting.
func (c *Controller) RequestSession(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "request_session")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if _, ok := c.state.(models.Idle); !ok {
		return c.snapshot(), c.phaseError(ctx)
	}

	c.enter(models.Selecting{DurationMinutes: c.cfg.DefaultDuration})
	c.emit(types.EventSessionRequested, nil)
	c.l.Debug(ctx, "session requested")

	return c.snapshot(), nil
}

// ChooseExercise sets the exercise while selecting.
func (c *Controller) ChooseExercise(ctx context.Context, exercise types.Exercise) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "choose_exercise")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	sel, ok := c.state.(models.Selecting)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}
	if !lo.Contains(types.Exercises, exercise) {
		return c.snapshot(), wrap.Error(ctx, fmt.Errorf("%w: %q", types.ErrUnknownExercise, exercise))
	}

	sel.Exercise = exercise
	c.state = sel
	c.emit(types.EventSelectionChanged, nil)

	return c.snapshot(), nil
}

// SetDuration sets the duration from the continuous control. The value is
// clamped to [MinDuration, MaxDuration] and snapped to DurationStep.
func (c *Controller) SetDuration(ctx context.Context, minutes int) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "set_duration")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	sel, ok := c.state.(models.Selecting)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}

	sel.DurationMinutes = c.normalizeDuration(minutes)
	c.state = sel
	c.emit(types.EventSelectionChanged, nil)

	return c.snapshot(), nil
}

// QuickPickDuration sets the duration from one of the quick-pick buttons.
func (c *Controller) QuickPickDuration(ctx context.Context, minutes int) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "quick_pick_duration")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	sel, ok := c.state.(models.Selecting)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}
	if !lo.Contains(c.cfg.QuickPicks, minutes) {
		return c.snapshot(), wrap.Error(ctx, fmt.Errorf("%w: %d is not a quick pick", types.ErrInvalidDuration, minutes))
	}

	sel.DurationMinutes = minutes
	c.state = sel
	c.emit(types.EventSelectionChanged, nil)

	return c.snapshot(), nil
}

// ConfirmSearch moves selecting to searching and schedules the trainer match.
func (c *Controller) ConfirmSearch(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "confirm_search")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	sel, ok := c.state.(models.Selecting)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}
	if !sel.Complete() {
		return c.snapshot(), wrap.Error(ctx, types.ErrSelectionIncomplete)
	}
	if len(c.pool.Trainers()) == 0 {
		return c.snapshot(), wrap.Error(ctx, types.ErrEmptyCatalog)
	}

	c.enter(models.Searching{Request: models.Request{
		Exercise:        sel.Exercise,
		DurationMinutes: sel.DurationMinutes,
	}})
	c.scheduleMatch()
	c.emit(types.EventSearchStarted, nil)
	c.l.Info(ctx, "trainer search started", "exercise", sel.Exercise, "duration_minutes", sel.DurationMinutes)

	return c.snapshot(), nil
}

// Accept moves found to arriving and starts the arrival and chat simulators.
func (c *Controller) Accept(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "accept_trainer")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	found, ok := c.state.(models.Found)
	if !ok {
		return c.snapshot(), c.phaseError(ctx)
	}

	c.enter(models.Arriving{
		Request:          found.Request,
		Trainer:          found.Trainer,
		EstimatedMinutes: c.cfg.InitialEstimate,
	})
	c.startArrival()
	c.scheduleGreeting()
	c.emit(types.EventTrainerAccepted, nil)
	c.l.Info(wrap.WithTrainerID(ctx, found.Trainer.ID), "trainer accepted")

	return c.snapshot(), nil
}

// Decline rejects the found trainer and fully resets the session.
func (c *Controller) Decline(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "decline_trainer")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if _, ok := c.state.(models.Found); !ok {
		return c.snapshot(), c.phaseError(ctx)
	}

	c.reset()
	c.l.Info(ctx, "trainer declined")

	return c.snapshot(), nil
}

// Cancel returns to idle from any phase. All session data is discarded and
// every outstanding timer is invalidated.
func (c *Controller) Cancel(ctx context.Context) (models.Snapshot, error) {
	ctx = c.opCtx(ctx, "cancel_session")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	from := c.state.Phase()
	c.reset()
	c.l.Info(ctx, "session cancelled", "from_phase", from)

	return c.snapshot(), nil
}

// Close stops every timer. A closed controller ignores pending callbacks.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimers()
	c.gen++
	c.closed = true
}

// enter switches to a new phase. Timers owned by the previous phase are stopped
// and the generation is bumped so any callback already in flight is discarded.
func (c *Controller) enter(st models.State) {
	c.stopTimers()
	c.gen++
	c.state = st
}

func (c *Controller) reset() {
	c.enter(models.Idle{})
	c.chat = models.Chat{}
	c.emit(types.EventSessionCancelled, nil)
}

func (c *Controller) stopTimers() {
	for _, t := range c.timers {
		t.Stop()
	}
	clear(c.timers)
}

// schedule runs fn after d unless the phase changed or the controller closed in between.
// A fired timer releases its handle.
func (c *Controller) schedule(d time.Duration, action string, fn func(ctx context.Context)) {
	gen := c.gen
	c.timerSeq++
	seq := c.timerSeq

	t := c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.timers, seq)

		ctx := wrap.WithAction(c.baseCtx, action)
		if c.closed || gen != c.gen {
			c.l.Debug(ctx, "stale timer discarded", "timer_generation", gen, "generation", c.gen)
			return
		}
		fn(ctx)
	})
	c.timers[seq] = t
}

func (c *Controller) emit(evtType types.BookingEvent, msg *models.ChatMessage) {
	c.listener.OnEvent(models.BookingEvent{
		ID:         uuid.New(),
		Type:       evtType,
		SessionID:  c.id,
		Generation: c.gen,
		Snapshot:   c.snapshot(),
		Message:    msg,
		OccurredAt: c.sched.Now(),
	})
}

func (c *Controller) normalizeDuration(minutes int) int {
	minutes = lo.Clamp(minutes, c.cfg.MinDuration, c.cfg.MaxDuration)
	if step := c.cfg.DurationStep; step > 0 {
		offset := minutes - c.cfg.MinDuration
		minutes = c.cfg.MinDuration + (offset+step/2)/step*step
		minutes = lo.Clamp(minutes, c.cfg.MinDuration, c.cfg.MaxDuration)
	}
	return minutes
}

func (c *Controller) touch() {
	c.lastActivity = c.sched.Now()
}

func (c *Controller) opCtx(ctx context.Context, action string) context.Context {
	return wrap.WithAction(wrap.WithSessionID(ctx, c.id.String()), action)
}

func (c *Controller) phaseError(ctx context.Context) error {
	return wrap.Error(ctx, fmt.Errorf("%w: %s", types.ErrInvalidPhase, c.state.Phase()))
}
