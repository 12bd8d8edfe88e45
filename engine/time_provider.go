package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock is the timer source shared by every animation component
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer cancels a pending AfterFunc callback
type Timer interface {
	// Stop reports whether the call prevented the callback from running
	Stop() bool
}

// LoopClock provides real time whose timer callbacks run on the host loop goroutine
// AfterFunc never runs f on its own goroutine: the expiry posts f to Tasks and the
// loop executes it between frames, so callbacks never race frame ticks or input
type LoopClock struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoopClock creates a loop clock with a buffered task queue
func NewLoopClock(buffer int) *LoopClock {
	return &LoopClock{
		tasks: make(chan func(), max(buffer, 1)),
		done:  make(chan struct{}),
	}
}

// Now returns the current time with monotonic clock reading
func (c *LoopClock) Now() time.Time {
	return time.Now()
}

// Tasks is drained by the host loop; each received func must be called there
func (c *LoopClock) Tasks() <-chan func() {
	return c.tasks
}

// AfterFunc arms a real timer that posts f to the task queue on expiry
func (c *LoopClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{f: f}
	t.timer = time.AfterFunc(d, func() {
		select {
		case c.tasks <- t.run:
		case <-c.done:
		}
	})
	return t
}

// Close releases expired timers still waiting to post; queued tasks are abandoned
func (c *LoopClock) Close() {
	c.once.Do(func() { close(c.done) })
}

// Drain runs every queued task without blocking, returns the count run
func (c *LoopClock) Drain() int {
	n := 0
	for {
		select {
		case task := <-c.tasks:
			task()
			n++
		default:
			return n
		}
	}
}

type loopTimer struct {
	timer *time.Timer
	f     func()
	// done is set by Stop or by the callback itself, whichever comes first
	done atomic.Bool
}

// run executes on the loop goroutine; a Stop issued after the post still wins
func (t *loopTimer) run() {
	if t.done.Swap(true) {
		return
	}
	t.f()
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return !t.done.Swap(true)
}
