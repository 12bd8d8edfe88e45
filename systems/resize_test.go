package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/camo/engine"
)

func TestResizeDebounceCollapsesBurst(t *testing.T) {
	clock := engine.NewManualClock(t0)
	var got [][2]int
	c := NewResizeCoordinator(clock, 300*time.Millisecond, func(w, h int) {
		got = append(got, [2]int{w, h})
	})

	for i := 0; i < 10; i++ {
		c.Notify(100+i, 40)
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, got)
	assert.True(t, c.Pending())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(199 * time.Millisecond)
	assert.Empty(t, got)
	clock.Advance(time.Millisecond)
	assert.Equal(t, [][2]int{{109, 40}}, got)
	assert.False(t, c.Pending())
	assert.Zero(t, clock.Pending())
}

func TestResizeSeparateWindows(t *testing.T) {
	clock := engine.NewManualClock(t0)
	calls := 0
	c := NewResizeCoordinator(clock, 300*time.Millisecond, func(w, h int) { calls++ })

	c.Notify(80, 24)
	clock.Advance(time.Second)
	c.Notify(120, 40)
	clock.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestResizeDisposeCancels(t *testing.T) {
	clock := engine.NewManualClock(t0)
	c := NewResizeCoordinator(clock, 300*time.Millisecond, func(w, h int) {
		t.Error("rebuild after dispose")
	})

	c.Notify(80, 24)
	c.Dispose()
	assert.Zero(t, clock.Pending())
	c.Notify(90, 24)
	clock.Advance(time.Second)
	assert.False(t, c.Pending())
}
