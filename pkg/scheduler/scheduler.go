// Package scheduler provides cancelable one-shot timers behind an interface,
// with a wall-clock implementation and a manual one that is advanced explicitly.
package scheduler

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped the timer.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Real schedules callbacks with time.AfterFunc.
type Real struct{}

func NewReal() Real {
	return Real{}
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (Real) Now() time.Time {
	return time.Now()
}

// Manual is a deterministic scheduler. Time only moves when Advance is called,
// and due callbacks run synchronously on the caller's goroutine in due-time order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	m    *Manual
	at   time.Time
	seq  uint64
	f    func()
	done bool
}

// NewManual returns a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of timers that are neither fired nor stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves the clock forward by d, running every callback that becomes due,
// including callbacks scheduled by other callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		idx := m.nextDue(target)
		if idx < 0 {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := m.pending[idx]
		m.remove(idx)
		t.done = true
		m.now = t.at
		m.mu.Unlock()

		t.f()
	}
}

// nextDue returns the index of the earliest timer due at or before target, or -1.
func (m *Manual) nextDue(target time.Time) int {
	idx := -1
	for i, t := range m.pending {
		if t.at.After(target) {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		best := m.pending[idx]
		if t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			idx = i
		}
	}
	return idx
}

func (m *Manual) remove(idx int) {
	m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	for i, p := range t.m.pending {
		if p == t {
			t.m.remove(i)
			break
		}
	}
	return true
}
