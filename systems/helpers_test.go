package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// glitchFixture wires a scheduler to a mounted layer on a manual clock
type glitchFixture struct {
	clock  *engine.ManualClock
	layer  *engine.Layer
	ref    *engine.GridRef
	grid   *grid.Grid
	sched  *GlitchScheduler
	events []GlitchEvent
}

func newGlitchFixture(t *testing.T, cols, rows int, cfg GlitchConfig) *glitchFixture {
	t.Helper()

	g := grid.NewBuilder(seeded(1), palette.Default()).Build(cols, rows)
	layer := engine.NewLayer()
	layer.Mount(g)
	colors, err := layer.ClaimCellColor()
	require.NoError(t, err)

	f := &glitchFixture{
		clock: engine.NewManualClock(t0),
		layer: layer,
		ref:   engine.NewGridRef(g),
		grid:  g,
	}
	f.sched = NewGlitchScheduler(f.clock, seeded(2), f.ref, colors, cfg, zaptest.NewLogger(t))
	f.sched.OnFire(func(ev GlitchEvent) { f.events = append(f.events, ev) })
	return f
}

// advanceToNext moves the clock to the earliest pending deadline
func (f *glitchFixture) advanceToNext(t *testing.T) {
	t.Helper()
	next, ok := f.clock.NextDeadline()
	require.True(t, ok, "no timer pending")
	f.clock.Advance(next.Sub(f.clock.Now()))
}

// remount swaps in a fresh grid the way a rebuild does
func (f *glitchFixture) remount(cols, rows int, seed uint64) *grid.Grid {
	g := grid.NewBuilder(seeded(seed), palette.Default()).Build(cols, rows)
	f.ref.Swap(g)
	f.layer.Mount(g)
	f.grid = g
	return g
}

// quietConfig never micro-bursts and re-arms far in the future
func quietConfig() GlitchConfig {
	cfg := DefaultGlitchConfig()
	cfg.MeanInterval = time.Hour
	cfg.MicroBurstProbability = 0
	return cfg
}
