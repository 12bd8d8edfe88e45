package systems

import (
	"time"

	"github.com/lixenwraith/camo/engine"
)

// ResizeCoordinator collapses bursts of viewport changes into one rebuild
// after a quiet window
type ResizeCoordinator struct {
	clock   engine.Clock
	quiet   time.Duration
	rebuild func(w, h int)

	timer    engine.Timer
	gen      uint64
	w, h     int
	disposed bool
}

func NewResizeCoordinator(clock engine.Clock, quiet time.Duration, rebuild func(w, h int)) *ResizeCoordinator {
	return &ResizeCoordinator{clock: clock, quiet: quiet, rebuild: rebuild}
}

// Notify records the latest size and restarts the quiet window
func (c *ResizeCoordinator) Notify(w, h int) {
	if c.disposed {
		return
	}
	c.w, c.h = w, h
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.quiet, func() {
		if gen != c.gen || c.disposed {
			return
		}
		c.timer = nil
		c.rebuild(c.w, c.h)
	})
}

// Pending reports whether a rebuild is waiting on the quiet window
func (c *ResizeCoordinator) Pending() bool {
	return c.timer != nil
}

// Dispose cancels the pending debounce timer
func (c *ResizeCoordinator) Dispose() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.disposed = true
}
