package booking

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/models"
	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	"github.com/Temutjin2k/fitness-connect/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubPool struct {
	trainers []models.Trainer
}

func (p stubPool) Trainers() []models.Trainer {
	return p.trainers
}

// fixedRand always returns the same index modulo n
type fixedRand int

func (f fixedRand) IntN(n int) int {
	return int(f) % n
}

type recorder struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (r *recorder) OnEvent(evt models.BookingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) all() []models.BookingEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BookingEvent, len(r.events))
	copy(out, r.events)
	return out
}

var testPool = stubPool{trainers: []models.Trainer{
	{ID: "t-1", Name: "Carlos", PricePerHour: 80},
	{ID: "t-2", Name: "Ana", PricePerHour: 70},
	{ID: "t-3", Name: "Rafael", PricePerHour: 75},
}}

type fixture struct {
	c     *Controller
	clock *scheduler.Manual
	rec   *recorder
	ctx   context.Context
}

func newFixture(t *testing.T, pool TrainerPool, rnd Rand) *fixture {
	t.Helper()

	clock := scheduler.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	rec := &recorder{}
	l := logger.New(io.Discard, "test", logger.LevelDebug)

	return &fixture{
		c:     NewController(uuid.New(), DefaultSettings(), pool, clock, rnd, rec, l),
		clock: clock,
		rec:   rec,
		ctx:   context.Background(),
	}
}

// toSearching drives a fresh controller to searching with the given selection
func (f *fixture) toSearching(t *testing.T, exercise types.Exercise, minutes int) models.Snapshot {
	t.Helper()

	_, err := f.c.RequestSession(f.ctx)
	require.NoError(t, err)
	_, err = f.c.ChooseExercise(f.ctx, exercise)
	require.NoError(t, err)
	_, err = f.c.SetDuration(f.ctx, minutes)
	require.NoError(t, err)
	snap, err := f.c.ConfirmSearch(f.ctx)
	require.NoError(t, err)
	return snap
}

func (f *fixture) toArriving(t *testing.T) models.Snapshot {
	t.Helper()

	f.toSearching(t, types.ExerciseYoga, 45)
	f.clock.Advance(DefaultSettings().MatchDelay)
	snap, err := f.c.Accept(f.ctx)
	require.NoError(t, err)
	return snap
}

// toChatting drives to arriving and runs the first arrival tick, after which the chat opens
func (f *fixture) toChatting(t *testing.T) {
	t.Helper()

	f.toArriving(t)
	f.clock.Advance(DefaultSettings().TickInterval)
}

func TestController_FullEpisode(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(1))

	snap := f.c.Snapshot()
	req.Equal(types.PhaseIdle, snap.Phase)
	req.Nil(snap.Trainer)

	snap, err := f.c.RequestSession(f.ctx)
	req.NoError(err)
	req.Equal(types.PhaseSelecting, snap.Phase)
	req.Equal(60, snap.DurationMinutes)

	snap = f.toSearchingFromSelecting(t, types.ExerciseYoga, 45)
	req.Equal(types.PhaseSearching, snap.Phase)
	req.Zero(snap.ArrivalProgress)
	req.Equal(5.0, snap.EstimatedMinutes)
	req.Nil(snap.Trainer)

	f.clock.Advance(2999 * time.Millisecond)
	req.Equal(types.PhaseSearching, f.c.Snapshot().Phase)

	f.clock.Advance(time.Millisecond)
	snap = f.c.Snapshot()
	req.Equal(types.PhaseFound, snap.Phase)
	req.NotNil(snap.Trainer)
	req.Equal("t-2", snap.Trainer.ID)
	req.Equal(53, snap.EstimatedPrice) // 45/60 * 70 = 52.5

	snap, err = f.c.Accept(f.ctx)
	req.NoError(err)
	req.Equal(types.PhaseArriving, snap.Phase)
	req.Zero(snap.ArrivalProgress)
	req.Equal(5.0, snap.EstimatedMinutes)
	req.Empty(snap.ChatHistory)

	f.clock.Advance(time.Second)
	snap = f.c.Snapshot()
	req.Len(snap.ChatHistory, 1)
	req.Equal(types.SenderTrainer, snap.ChatHistory[0].Sender)
	req.Equal(TrainerGreeting, snap.ChatHistory[0].Text)
	req.InDelta(20, snap.ArrivalProgress, 1e-9)
	req.InDelta(4, snap.EstimatedMinutes, 1e-9)

	f.clock.Advance(10 * time.Second)
	snap = f.c.Snapshot()
	req.Equal(100.0, snap.ArrivalProgress)
	req.Zero(snap.EstimatedMinutes)
	req.True(snap.Arrived)
	req.Equal("100%", snap.ProgressText)
	req.Zero(snap.DisplayedMinutes)
	req.Zero(f.clock.Pending())

	f.clock.Advance(10 * time.Second)
	snap = f.c.Snapshot()
	req.Equal(100.0, snap.ArrivalProgress)
	req.Zero(snap.EstimatedMinutes)
	req.Len(snap.ChatHistory, 1)
}

func (f *fixture) toSearchingFromSelecting(t *testing.T, exercise types.Exercise, minutes int) models.Snapshot {
	t.Helper()

	_, err := f.c.ChooseExercise(f.ctx, exercise)
	require.NoError(t, err)
	_, err = f.c.SetDuration(f.ctx, minutes)
	require.NoError(t, err)
	snap, err := f.c.ConfirmSearch(f.ctx)
	require.NoError(t, err)
	return snap
}

func TestController_CancelDuringSearchDiscardsMatch(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toSearching(t, types.ExerciseCardio, 30)
	f.clock.Advance(time.Second)

	snap, err := f.c.Cancel(f.ctx)
	req.NoError(err)
	req.Equal(types.PhaseIdle, snap.Phase)

	f.clock.Advance(5 * time.Second)
	snap = f.c.Snapshot()
	req.Equal(types.PhaseIdle, snap.Phase)
	req.Nil(snap.Trainer)
}

func TestController_StaleMatchNeverAppliesToNewSearch(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toSearching(t, types.ExerciseCardio, 30)
	f.clock.Advance(time.Second)
	_, err := f.c.Cancel(f.ctx)
	req.NoError(err)

	// second search starts at t=1s, the first one would have fired at t=3s
	f.toSearching(t, types.ExerciseHIIT, 60)
	f.clock.Advance(2500 * time.Millisecond)
	snap := f.c.Snapshot()
	req.Equal(types.PhaseSearching, snap.Phase)
	req.Nil(snap.Trainer)

	f.clock.Advance(500 * time.Millisecond)
	snap = f.c.Snapshot()
	req.Equal(types.PhaseFound, snap.Phase)
	req.Equal(types.ExerciseHIIT, *snap.Exercise)
}

func TestController_StaleCallbackIgnoredByGeneration(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toSearching(t, types.ExercisePilates, 60)
	genAtSearch := f.c.Generation()

	// run a callback captured under an old generation directly, bypassing Stop
	fired := false
	f.c.mu.Lock()
	f.c.schedule(0, "stale_check", func(context.Context) { fired = true })
	f.c.gen++
	f.c.mu.Unlock()

	f.clock.Advance(0)
	req.False(fired)
	req.Greater(f.c.Generation(), genAtSearch)
}

func TestController_CancelFullResetFromEveryPhase(t *testing.T) {
	drive := map[types.Phase]func(t *testing.T, f *fixture){
		types.PhaseIdle: func(t *testing.T, f *fixture) {},
		types.PhaseSelecting: func(t *testing.T, f *fixture) {
			_, err := f.c.RequestSession(f.ctx)
			require.NoError(t, err)
			_, err = f.c.ChooseExercise(f.ctx, types.ExerciseYoga)
			require.NoError(t, err)
			_, err = f.c.SetDuration(f.ctx, 90)
			require.NoError(t, err)
		},
		types.PhaseSearching: func(t *testing.T, f *fixture) {
			f.toSearching(t, types.ExerciseStrength, 120)
		},
		types.PhaseFound: func(t *testing.T, f *fixture) {
			f.toSearching(t, types.ExerciseCrossFit, 15)
			f.clock.Advance(3 * time.Second)
			_, err := f.c.ToggleChat(f.ctx)
			require.NoError(t, err)
		},
		types.PhaseArriving: func(t *testing.T, f *fixture) {
			f.toChatting(t)
			_, err := f.c.ToggleChat(f.ctx)
			require.NoError(t, err)
			_, err = f.c.SendMessage(f.ctx, "Oi")
			require.NoError(t, err)
			_, err = f.c.UpdateDraft(f.ctx, "half typed")
			require.NoError(t, err)
			f.clock.Advance(2 * time.Second)
		},
	}

	for phase, setup := range drive {
		t.Run(phase.String(), func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t, testPool, fixedRand(2))
			setup(t, f)
			req.Equal(phase, f.c.Snapshot().Phase)

			snap, err := f.c.Cancel(f.ctx)
			req.NoError(err)

			req.Equal(types.PhaseIdle, snap.Phase)
			req.Nil(snap.Trainer)
			req.Nil(snap.Exercise)
			req.Equal(60, snap.DurationMinutes)
			req.Zero(snap.ArrivalProgress)
			req.False(snap.ChatVisible)
			req.Empty(snap.ChatDraft)
			req.Empty(snap.ChatHistory)
			req.Zero(f.clock.Pending())

			f.clock.Advance(time.Minute)
			req.Equal(snap.Phase, f.c.Snapshot().Phase)
			req.Empty(f.c.Snapshot().ChatHistory)
		})
	}
}

func TestController_TrainerIffFoundOrArriving(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))

	f.toChatting(t)
	_, err := f.c.SendMessage(f.ctx, "Oi")
	require.NoError(t, err)
	f.clock.Advance(6 * time.Second)
	_, err = f.c.Cancel(f.ctx)
	require.NoError(t, err)
	f.toSearching(t, types.ExerciseYoga, 30)
	f.clock.Advance(3 * time.Second)
	_, err = f.c.Decline(f.ctx)
	require.NoError(t, err)

	events := f.rec.all()
	require.NotEmpty(t, events)
	for _, evt := range events {
		hasTrainer := evt.Snapshot.Trainer != nil
		wantTrainer := evt.Snapshot.Phase == types.PhaseFound || evt.Snapshot.Phase == types.PhaseArriving
		require.Equal(t, wantTrainer, hasTrainer, "event %s in phase %s", evt.Type, evt.Snapshot.Phase)

		if evt.Snapshot.Phase != types.PhaseArriving {
			require.Empty(t, evt.Snapshot.ChatHistory, "event %s", evt.Type)
		}
	}
}

func TestController_ProgressMonotonicAndBounded(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toArriving(t)
	for range 80 {
		f.clock.Advance(100 * time.Millisecond)
	}

	lastProgress, lastEstimate := 0.0, 5.0
	ticks := 0
	for _, evt := range f.rec.all() {
		if evt.Type != types.EventArrivalProgress && evt.Type != types.EventTrainerArrived {
			continue
		}
		ticks++
		s := evt.Snapshot
		req.GreaterOrEqual(s.ArrivalProgress, lastProgress)
		req.LessOrEqual(s.ArrivalProgress, 100.0)
		req.LessOrEqual(s.EstimatedMinutes, lastEstimate)
		req.GreaterOrEqual(s.EstimatedMinutes, 0.0)
		if s.EstimatedMinutes > 0 {
			req.Positive(s.DisplayedMinutes)
		}
		lastProgress, lastEstimate = s.ArrivalProgress, s.EstimatedMinutes
	}
	req.Equal(50, ticks)
	req.Equal(types.EventTrainerArrived, f.rec.all()[len(f.rec.all())-1].Type)
}

func TestController_NewEpisodeResetsProgress(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toArriving(t)
	f.clock.Advance(2 * time.Second)
	req.Positive(f.c.Snapshot().ArrivalProgress)

	_, err := f.c.Cancel(f.ctx)
	req.NoError(err)

	snap := f.toArriving(t)
	req.Zero(snap.ArrivalProgress)
	req.Equal(5.0, snap.EstimatedMinutes)

	f.clock.Advance(100 * time.Millisecond)
	req.InDelta(2, f.c.Snapshot().ArrivalProgress, 1e-9)
}

func TestController_SendMessage(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(3))
	f.toChatting(t)

	snap, err := f.c.SendMessage(f.ctx, "Oi")
	req.NoError(err)
	req.Len(snap.ChatHistory, 1)
	req.Equal(types.SenderUser, snap.ChatHistory[0].Sender)
	req.Equal("Oi", snap.ChatHistory[0].Text)

	f.clock.Advance(1499 * time.Millisecond)
	req.Len(f.c.Snapshot().ChatHistory, 1)

	f.clock.Advance(time.Millisecond)
	history := f.c.Snapshot().ChatHistory
	req.Len(history, 2)
	req.Equal(types.SenderTrainer, history[1].Sender)
	req.Contains(CannedReplies, history[1].Text)
	req.Equal(CannedReplies[3], history[1].Text)

	// the greeting is skipped because the chat already started
	f.clock.Advance(5 * time.Second)
	req.Len(f.c.Snapshot().ChatHistory, 2)
}

func TestController_ChatOpensAfterFirstTick(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toArriving(t)

	_, err := f.c.UpdateDraft(f.ctx, "Oi")
	req.NoError(err)

	snap, err := f.c.SendMessage(f.ctx, "Oi")
	req.ErrorIs(err, types.ErrInvalidPhase)
	req.Equal(types.PhaseArriving, snap.Phase)
	req.Empty(snap.ChatHistory)
	req.Zero(snap.ArrivalProgress)
	req.Equal("Oi", snap.ChatDraft)

	_, err = f.c.SendDraft(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)

	f.clock.Advance(DefaultSettings().TickInterval)
	snap, err = f.c.SendDraft(f.ctx)
	req.NoError(err)
	req.Len(snap.ChatHistory, 1)
	req.Positive(snap.ArrivalProgress)
}

func TestController_GreetingNotBeforeFirstTick(t *testing.T) {
	req := require.New(t)

	cfg := DefaultSettings()
	cfg.GreetingDelay = 0
	clock := scheduler.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	c := NewController(uuid.New(), cfg, testPool, clock, fixedRand(0), nil, logger.New(io.Discard, "test", logger.LevelDebug))
	f := &fixture{c: c, clock: clock, rec: &recorder{}, ctx: context.Background()}

	f.toSearching(t, types.ExerciseYoga, 45)
	clock.Advance(cfg.MatchDelay)
	_, err := c.Accept(f.ctx)
	req.NoError(err)

	clock.Advance(0)
	req.Empty(c.Snapshot().ChatHistory)

	clock.Advance(cfg.TickInterval)
	snap := c.Snapshot()
	req.Len(snap.ChatHistory, 1)
	req.Positive(snap.ArrivalProgress)
}

func TestController_FiredTimersReleased(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toArriving(t)
	f.clock.Advance(10 * time.Second)
	req.Equal(types.PhaseArriving, f.c.Snapshot().Phase)

	for range 1000 {
		_, err := f.c.SendMessage(f.ctx, "x")
		req.NoError(err)
	}
	f.c.mu.Lock()
	req.Len(f.c.timers, 1000)
	f.c.mu.Unlock()

	f.clock.Advance(DefaultSettings().ReplyDelay)
	req.Zero(f.clock.Pending())
	req.Len(f.c.Snapshot().ChatHistory, 2001)

	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	req.Empty(f.c.timers)
}

func TestController_EmptyMessageRejected(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toChatting(t)

	_, err := f.c.UpdateDraft(f.ctx, "   ")
	req.NoError(err)

	for _, text := range []string{"", "   ", "\t\n"} {
		snap, err := f.c.SendMessage(f.ctx, text)
		req.ErrorIs(err, types.ErrEmptyMessage)
		req.Empty(snap.ChatHistory)
		req.Equal("   ", snap.ChatDraft)
	}

	_, err = f.c.SendDraft(f.ctx)
	req.ErrorIs(err, types.ErrEmptyMessage)
	req.Equal(2, f.clock.Pending()) // arrival tick and greeting
}

func TestController_SendDraftClearsInput(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toChatting(t)

	_, err := f.c.UpdateDraft(f.ctx, "Estou no portão")
	req.NoError(err)

	snap, err := f.c.SendDraft(f.ctx)
	req.NoError(err)
	req.Empty(snap.ChatDraft)
	req.Equal("Estou no portão", snap.ChatHistory[0].Text)
}

func TestController_PendingReplyDiscardedOnCancel(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toChatting(t)

	_, err := f.c.SendMessage(f.ctx, "Oi")
	req.NoError(err)
	_, err = f.c.Cancel(f.ctx)
	req.NoError(err)

	f.toArriving(t)
	f.clock.Advance(900 * time.Millisecond)
	req.Empty(f.c.Snapshot().ChatHistory)

	f.clock.Advance(100 * time.Millisecond)
	history := f.c.Snapshot().ChatHistory
	req.Len(history, 1)
	req.Equal(TrainerGreeting, history[0].Text)
}

func TestController_ConfirmRequiresExercise(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	_, err := f.c.RequestSession(f.ctx)
	req.NoError(err)

	snap, err := f.c.ConfirmSearch(f.ctx)
	req.ErrorIs(err, types.ErrSelectionIncomplete)
	req.Equal(types.PhaseSelecting, snap.Phase)
	req.Zero(f.clock.Pending())
}

func TestController_ConfirmRequiresTrainers(t *testing.T) {
	f := newFixture(t, stubPool{}, fixedRand(0))

	_, err := f.c.RequestSession(f.ctx)
	require.NoError(t, err)
	_, err = f.c.ChooseExercise(f.ctx, types.ExerciseYoga)
	require.NoError(t, err)

	snap, err := f.c.ConfirmSearch(f.ctx)
	require.ErrorIs(t, err, types.ErrEmptyCatalog)
	require.Equal(t, types.PhaseSelecting, snap.Phase)
}

func TestController_ChooseExerciseValidation(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))

	_, err := f.c.ChooseExercise(f.ctx, types.ExerciseYoga)
	require.ErrorIs(t, err, types.ErrInvalidPhase)

	_, err = f.c.RequestSession(f.ctx)
	require.NoError(t, err)

	snap, err := f.c.ChooseExercise(f.ctx, "Zumba")
	require.ErrorIs(t, err, types.ErrUnknownExercise)
	require.Nil(t, snap.Exercise)
}

func TestController_SetDurationClampsAndSnaps(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))
	_, err := f.c.RequestSession(f.ctx)
	require.NoError(t, err)

	cases := map[int]int{
		0:   15,
		-30: 15,
		15:  15,
		50:  45,
		53:  60,
		120: 120,
		500: 120,
	}
	for in, want := range cases {
		snap, err := f.c.SetDuration(f.ctx, in)
		require.NoError(t, err)
		require.Equal(t, want, snap.DurationMinutes, "input %d", in)
	}
}

func TestController_QuickPickDuration(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))
	_, err := f.c.RequestSession(f.ctx)
	require.NoError(t, err)

	snap, err := f.c.QuickPickDuration(f.ctx, 90)
	require.NoError(t, err)
	require.Equal(t, 90, snap.DurationMinutes)

	snap, err = f.c.QuickPickDuration(f.ctx, 120)
	require.ErrorIs(t, err, types.ErrInvalidDuration)
	require.Equal(t, 90, snap.DurationMinutes)
}

func TestController_PriceEstimate(t *testing.T) {
	req := require.New(t)
	pool := stubPool{trainers: []models.Trainer{{ID: "t-70", PricePerHour: 70}}}
	f := newFixture(t, pool, fixedRand(0))

	_, err := f.c.RequestSession(f.ctx)
	req.NoError(err)
	snap, err := f.c.SetDuration(f.ctx, 30)
	req.NoError(err)
	req.Equal(35, snap.EstimatedPrice) // reference rate before a match

	f.toSearchingFromSelecting(t, types.ExerciseCardio, 60)
	f.clock.Advance(3 * time.Second)
	req.Equal(70, f.c.Snapshot().EstimatedPrice)

	req.Equal(70, EstimatePrice(60, 70))
	req.Equal(35, EstimatePrice(30, 70))
	req.Equal(160, EstimatePrice(120, 80))
}

func TestController_InvalidTransitions(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	_, err := f.c.Accept(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)
	_, err = f.c.Decline(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)
	_, err = f.c.ConfirmSearch(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)
	_, err = f.c.SendMessage(f.ctx, "Oi")
	req.ErrorIs(err, types.ErrInvalidPhase)
	_, err = f.c.ToggleChat(f.ctx)
	req.ErrorIs(err, types.ErrNoTrainer)

	f.toSearching(t, types.ExerciseYoga, 30)
	_, err = f.c.RequestSession(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)
	_, err = f.c.Accept(f.ctx)
	req.ErrorIs(err, types.ErrInvalidPhase)
	req.Equal(types.PhaseSearching, f.c.Snapshot().Phase)
}

func TestController_ToggleChatDoesNotAffectMessages(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))
	f.toArriving(t)

	snap, err := f.c.ToggleChat(f.ctx)
	req.NoError(err)
	req.True(snap.ChatVisible)
	snap, err = f.c.ToggleChat(f.ctx)
	req.NoError(err)
	req.False(snap.ChatVisible)

	f.clock.Advance(time.Second)
	req.Len(f.c.Snapshot().ChatHistory, 1)
}

func TestController_DeclineResets(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, testPool, fixedRand(0))

	f.toSearching(t, types.ExerciseYoga, 30)
	f.clock.Advance(3 * time.Second)

	snap, err := f.c.Decline(f.ctx)
	req.NoError(err)
	req.Equal(types.PhaseIdle, snap.Phase)
	req.Nil(snap.Trainer)
	req.Equal(60, snap.DurationMinutes)
}

func TestController_CloseDiscardsTimers(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))
	f.toSearching(t, types.ExerciseYoga, 30)

	f.c.Close()
	f.clock.Advance(time.Minute)
	require.Equal(t, types.PhaseSearching, f.c.Snapshot().Phase)
	require.Zero(t, f.clock.Pending())
}

func TestController_EventsCarrySessionAndOrder(t *testing.T) {
	f := newFixture(t, testPool, fixedRand(0))
	f.toArriving(t)

	events := f.rec.all()
	got := make([]types.BookingEvent, 0, len(events))
	for _, evt := range events {
		require.Equal(t, f.c.ID(), evt.SessionID)
		got = append(got, evt.Type)
	}
	require.Equal(t, []types.BookingEvent{
		types.EventSessionRequested,
		types.EventSelectionChanged,
		types.EventSelectionChanged,
		types.EventSearchStarted,
		types.EventTrainerMatched,
		types.EventTrainerAccepted,
	}, got)
}

func TestDisplayHelpers(t *testing.T) {
	require.Equal(t, "43%", ProgressText(42.6))
	require.Equal(t, "0%", ProgressText(0))
	require.Equal(t, 1, DisplayedMinutes(0.09))
	require.Equal(t, 5, DisplayedMinutes(5))
	require.Equal(t, 0, DisplayedMinutes(0))
}
