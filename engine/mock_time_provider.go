package engine

import (
	"sort"
	"sync"
	"time"
)

// ManualClock provides a controllable time source for testing
// Due callbacks run synchronously inside Advance, in deadline order
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
	armed   int
}

type manualTimer struct {
	clock *ManualClock
	when  time.Time
	seq   uint64
	f     func()
	done  bool
}

// NewManualClock creates a new manual clock at the given start time
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has advanced by d
func (m *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.armed++
	t := &manualTimer{clock: m, when: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves time forward by d, firing every callback that comes due
// Callbacks armed while advancing fire too if they fall inside the window
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)

	for {
		next := m.nextDueLocked(target)
		if next == nil {
			break
		}
		next.done = true
		m.removeLocked(next)
		if next.when.After(m.now) {
			m.now = next.when
		}

		m.mu.Unlock()
		next.f()
		m.mu.Lock()
	}

	if target.After(m.now) {
		m.now = target
	}
	m.mu.Unlock()
}

// Pending returns the number of armed timers not yet fired or stopped
func (m *ManualClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Armed returns the total number of timers ever armed
func (m *ManualClock) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.armed
}

// NextDeadline returns the earliest pending deadline
func (m *ManualClock) NextDeadline() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return time.Time{}, false
	}
	m.sortLocked()
	return m.pending[0].when, true
}

func (m *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	m.sortLocked()
	if first := m.pending[0]; !first.when.After(target) {
		return first
	}
	return nil
}

func (m *ManualClock) sortLocked() {
	sort.Slice(m.pending, func(a, b int) bool {
		pa, pb := m.pending[a], m.pending[b]
		if !pa.when.Equal(pb.when) {
			return pa.when.Before(pb.when)
		}
		return pa.seq < pb.seq
	})
}

func (m *ManualClock) removeLocked(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	m.removeLocked(t)
	return true
}
