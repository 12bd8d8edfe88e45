package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/palette"
)

func TestGlitchLifecycle(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, quietConfig())
	s := f.sched

	assert.Equal(t, GlitchIdle, s.State())
	s.Start()
	assert.Equal(t, GlitchWaiting, s.State())
	assert.Equal(t, 1, s.Pending())

	f.advanceToNext(t)
	require.Len(t, f.events, 1)
	assert.Equal(t, GlitchFlashing, s.State())
	ev := f.events[0]
	fired := f.clock.Now()

	// First step of the first cell is the highlight
	s.Tick(fired)
	first := ev.Indices[0]
	assert.Equal(t, palette.Sage, f.layer.CellColor(first))

	// Second step restores the snapshot
	s.Tick(fired.Add(80 * time.Millisecond))
	assert.Equal(t, f.grid.Cells[first].Color, f.layer.CellColor(first))

	// Third step highlights again unless the pattern flashes once
	s.Tick(fired.Add(160 * time.Millisecond))
	if ev.Cycles > 1 {
		assert.Equal(t, palette.Sage, f.layer.CellColor(first))
	} else {
		assert.Equal(t, f.grid.Cells[first].Color, f.layer.CellColor(first))
	}

	f.clock.Advance(ev.FlashDuration(80 * time.Millisecond))
	assert.Equal(t, GlitchRestoring, s.State())

	s.Tick(f.clock.Now().Add(150 * time.Millisecond))
	f.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, GlitchWaiting, s.State())
	assert.Zero(t, s.Active())
	assert.Equal(t, 1, s.Pending(), "only the next arrival remains")

	for _, idx := range ev.Indices {
		assert.Equal(t, f.grid.Cells[idx].Color, f.layer.CellColor(idx), "cell %d restored exactly", idx)
	}
}

func TestGlitchStaggerLeavesLaterCellsUntouched(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, quietConfig())
	g := f.grid
	f.clock.Advance(time.Second)
	now := f.clock.Now()

	f.sched.begin(g, GlitchEvent{Pattern: PatternCascade, Indices: []int{0, 1, 2}, Stagger: 70 * time.Millisecond, Cycles: 3}, false)
	f.sched.Tick(now.Add(85 * time.Millisecond))

	assert.Equal(t, g.Cells[0].Color, f.layer.CellColor(0), "cell 0 in its restore step")
	assert.Equal(t, palette.Sage, f.layer.CellColor(1), "cell 1 started 70ms in")
	assert.Equal(t, g.Cells[2].Color, f.layer.CellColor(2), "cell 2 not yet started")
}

func TestGlitchRestoreFades(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, quietConfig())
	g := f.grid
	idx := 7
	orig := g.Cells[idx].Color

	f.sched.begin(g, GlitchEvent{Pattern: PatternScatter, Indices: []int{idx}, Stagger: 40 * time.Millisecond, Cycles: 3}, false)
	start := f.clock.Now()

	// Hold the highlight into the restore phase by ticking only the first step
	f.sched.Tick(start)
	f.clock.Advance(480 * time.Millisecond)
	require.Equal(t, GlitchRestoring, f.sched.State())

	mid := f.clock.Now().Add(150 * time.Millisecond)
	f.sched.Tick(mid)
	assert.Equal(t, palette.Sage.Lerp(orig, 0.5), f.layer.CellColor(idx))

	f.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, orig, f.layer.CellColor(idx))
	assert.Zero(t, f.sched.Active())
}

func TestGlitchOverlappingEventsKeepOriginalSnapshot(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, quietConfig())
	g := f.grid
	idx := 5
	orig := g.Cells[idx].Color
	ev := GlitchEvent{Pattern: PatternScatter, Indices: []int{idx}, Stagger: 40 * time.Millisecond, Cycles: 3}

	f.sched.begin(g, ev, false)
	f.sched.Tick(f.clock.Now())
	require.Equal(t, palette.Sage, f.layer.CellColor(idx))

	f.sched.begin(g, ev, false)
	second := f.sched.active[1]
	assert.Equal(t, orig, second.snapshot[0], "second event must not snapshot the highlight")

	f.clock.Advance(5 * time.Second)
	assert.Zero(t, f.sched.Active())
	assert.Equal(t, orig, f.layer.CellColor(idx))
	assert.Empty(t, f.sched.origins)
}

func TestGlitchTinyGridRearmsWithoutFiring(t *testing.T) {
	f := newGlitchFixture(t, 3, 3, DefaultGlitchConfig())
	f.sched.Start()

	for i := 0; i < 5; i++ {
		f.advanceToNext(t)
		assert.Equal(t, 1, f.sched.Pending())
		assert.Equal(t, GlitchWaiting, f.sched.State())
	}
	assert.Empty(t, f.events)
	assert.Equal(t, 6, f.clock.Armed())
	for i, c := range f.grid.Cells {
		assert.Equal(t, c.Color, f.layer.CellColor(i))
	}
}

func TestGlitchMicroBurst(t *testing.T) {
	cfg := quietConfig()
	cfg.MicroBurstProbability = 1
	f := newGlitchFixture(t, 30, 20, cfg)
	f.sched.Start()

	f.advanceToNext(t)
	require.Len(t, f.events, 1)
	primaryAt := f.clock.Now()

	f.clock.Advance(199 * time.Millisecond)
	require.Len(t, f.events, 1, "burst waits at least 200ms")
	f.clock.Advance(401 * time.Millisecond)
	require.Len(t, f.events, 2, "burst fires within 600ms")
	require.Equal(t, primaryAt.Add(600*time.Millisecond), f.clock.Now())

	// A burst never spawns another burst
	f.clock.Advance(5 * time.Second)
	assert.Len(t, f.events, 2)
	assert.Zero(t, f.sched.Active())
	assert.Equal(t, 1, f.sched.Pending(), "only the primary re-arm remains")
}

func TestGlitchResetTargetsNewGrid(t *testing.T) {
	f := newGlitchFixture(t, 40, 40, quietConfig())
	f.sched.Start()
	f.advanceToNext(t)
	require.Len(t, f.events, 1)

	// Rebuild mid-flash
	old := f.grid
	held := f.events[0].Indices
	fresh := f.remount(10, 2, 77)
	f.sched.Reset()

	assert.Zero(t, f.sched.Active())
	assert.Equal(t, 1, f.sched.Pending())
	assert.Equal(t, GlitchWaiting, f.sched.State())
	assert.NotSame(t, old, fresh)
	for _, idx := range held {
		if idx < fresh.Len() {
			assert.Equal(t, fresh.Cells[idx].Color, f.layer.CellColor(idx))
		}
	}

	for i := 0; i < 20; i++ {
		f.advanceToNext(t)
	}
	require.Greater(t, len(f.events), 1)
	for _, ev := range f.events[1:] {
		for _, idx := range ev.Indices {
			assert.Less(t, idx, fresh.Len())
		}
	}
}

// stubbornClock ignores Stop so stale callbacks still run
type stubbornClock struct {
	*engine.ManualClock
}

type stubbornTimer struct{}

func (stubbornTimer) Stop() bool { return false }

func (c stubbornClock) AfterFunc(d time.Duration, f func()) engine.Timer {
	c.ManualClock.AfterFunc(d, f)
	return stubbornTimer{}
}

func TestGlitchEpochDropsStaleCallbacks(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, DefaultGlitchConfig())
	colors, err := engine.NewLayer().ClaimCellColor()
	require.NoError(t, err)
	clock := stubbornClock{f.clock}

	fired := 0
	s := NewGlitchScheduler(clock, seeded(3), f.ref, colors, DefaultGlitchConfig(), nil)
	s.OnFire(func(GlitchEvent) { fired++ })
	s.Start()
	s.Dispose()

	f.clock.Advance(24 * time.Hour)
	assert.Zero(t, fired)
	assert.Equal(t, GlitchDisposed, s.State())
	assert.Zero(t, s.Pending())
}

func TestGlitchDispose(t *testing.T) {
	f := newGlitchFixture(t, 20, 12, DefaultGlitchConfig())
	f.sched.Start()
	f.advanceToNext(t)
	require.Len(t, f.events, 1)

	f.sched.Dispose()
	assert.Equal(t, GlitchDisposed, f.sched.State())
	assert.Zero(t, f.sched.Pending())
	assert.Zero(t, f.clock.Pending())
	for i, c := range f.grid.Cells {
		assert.Equal(t, c.Color, f.layer.CellColor(i))
	}

	f.sched.Start()
	f.sched.Reset()
	f.sched.Dispose()
	assert.Zero(t, f.clock.Pending())
}

func TestGlitchManyEventsStayInRange(t *testing.T) {
	cfg := DefaultGlitchConfig()
	f := newGlitchFixture(t, 17, 9, cfg)
	f.sched.Start()

	for len(f.events) < 1000 {
		f.advanceToNext(t)
	}
	for _, ev := range f.events {
		for _, idx := range ev.Indices {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 17*9)
		}
	}
}
