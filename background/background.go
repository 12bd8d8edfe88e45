// Package background composes the camouflage layer: pattern generation,
// the two animation drivers, the glitch scheduler and resize handling.
package background

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
	"github.com/lixenwraith/camo/systems"
)

// Background is the fire-and-forget visual layer
// All methods must be called from the host loop goroutine
type Background struct {
	settings
	opts Options
	env  Environment
	gate engine.AccessibilityGate

	builder   *grid.Builder
	layer     *engine.Layer
	ref       *engine.GridRef
	container *engine.ContainerWriter

	// nil in static mode
	reveal *systems.RevealDriver
	pulse  *systems.PulseDriver
	glitch *systems.GlitchScheduler
	resize *systems.ResizeCoordinator

	narrow   bool
	rebuilds int
	closed   bool
}

// Stats is a snapshot for the HUD and logs
type Stats struct {
	Cols, Rows  int
	Narrow      bool
	Static      bool
	Opacity     float64
	OffsetY     float64
	GlitchState systems.GlitchState
	Pending     int
	Active      int
	Rebuilds    int
}

// New builds the first grid immediately and, when animated, starts the drivers
func New(opts Options, env Environment, fns ...Option) *Background {
	s := defaultSettings()
	for _, fn := range fns {
		fn(&s)
	}
	if s.rand == nil {
		s.rand = NewRand(uint64(time.Now().UnixNano()))
	}
	if s.clock == nil {
		s.clock = engine.NewLoopClock(64)
	}
	if !(opts.TargetOpacity > 0) {
		opts.TargetOpacity = constants.DefaultTargetOpacity
	}
	if env.Planner.PitchX <= 0 || env.Planner.PitchY <= 0 {
		env.Planner = grid.TerminalPlanner()
	}

	b := &Background{
		settings: s,
		opts:     opts,
		env:      env,
		gate:     engine.NewAccessibilityGate(env.ReducedMotion, opts.StaticOnly),
		builder:  grid.NewBuilder(s.rand, s.palette),
		layer:    engine.NewLayer(),
		ref:      engine.NewGridRef(nil),
	}
	b.container = must(b.layer.ClaimContainer())
	b.install(env.Width, env.Height)

	if !b.gate.Animated() {
		// Static path owns the container directly; no driver, timer or debounce exists
		b.container.SetOpacity(b.gate.StaticOpacity(opts.TargetOpacity))
		b.container.SetOffset(0)
		b.logger.Info("camo static",
			zap.Bool("reduced_motion", b.gate.ReducedMotion()),
			zap.Float64("opacity", b.layer.Container().Opacity),
		)
		return b
	}

	now := b.clock.Now()
	b.reveal = systems.NewRevealDriver(b.container, systems.DefaultRevealConfig(opts.TargetOpacity))
	b.reveal.SetParallax(!b.narrow)
	b.reveal.Start(now)

	b.pulse = systems.NewPulseDriver(must(b.layer.ClaimCellOpacity()), b.ref)
	b.pulse.Bind(now)

	cfg := systems.DefaultGlitchConfig()
	cfg.Highlight = b.palette.Highlight()
	if b.glitchCfg != nil {
		cfg = *b.glitchCfg
	}
	b.glitch = systems.NewGlitchScheduler(b.clock, b.rand, b.ref, must(b.layer.ClaimCellColor()), cfg, b.logger.Named("glitch"))
	for _, fn := range b.observers {
		b.glitch.OnFire(fn)
	}
	b.glitch.Start()

	b.resize = systems.NewResizeCoordinator(b.clock, b.quiet, b.rebuild)
	return b
}

// install plans, builds and mounts a grid for the given viewport
func (b *Background) install(w, h int) {
	b.narrow = b.env.Planner.IsNarrow(w)
	size := b.env.Planner.Plan(w, h, b.narrow)
	g := b.builder.Build(size.Cols, size.Rows)
	b.ref.Swap(g)
	b.layer.Mount(g)

	b.logger.Debug("grid built",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("cols", g.Cols),
		zap.Int("rows", g.Rows),
		zap.Int("cells", g.Len()),
		zap.Bool("narrow", b.narrow),
	)
}

// rebuild is the only path that replaces the grid after construction
func (b *Background) rebuild(w, h int) {
	if b.closed {
		return
	}
	b.install(w, h)
	b.pulse.Bind(b.clock.Now())
	b.reveal.SetParallax(!b.narrow)
	b.glitch.Reset()
	b.rebuilds++
}

// Resize reports a viewport change; animated layers rebuild after the quiet window,
// static layers keep their grid and are stretched by the compositor
func (b *Background) Resize(w, h int) {
	if b.closed {
		return
	}
	b.env.Width, b.env.Height = w, h
	if b.resize == nil {
		return
	}
	b.resize.Notify(w, h)
}

// Rebuild regenerates the pattern now, skipping the debounce
func (b *Background) Rebuild() {
	if b.closed || !b.gate.Animated() {
		return
	}
	b.rebuild(b.env.Width, b.env.Height)
}

// Reconfigure swaps the palette and regenerates the pattern
func (b *Background) Reconfigure(p *palette.Palette) {
	if b.closed || p == nil {
		return
	}
	b.palette = p
	b.builder.Palette = p
	if !b.gate.Animated() {
		return
	}
	b.glitch.SetHighlight(p.Highlight())
	b.rebuild(b.env.Width, b.env.Height)
}

// Scroll reports page scroll progress in [0,1]
func (b *Background) Scroll(progress float64) {
	if b.reveal != nil {
		b.reveal.SetScroll(progress)
	}
}

// Tick advances every driver to now; a no-op in static mode
func (b *Background) Tick(now time.Time) {
	if b.closed || b.reveal == nil {
		return
	}
	b.reveal.Tick(now)
	b.pulse.Tick(now)
	b.glitch.Tick(now)
}

// Layer exposes the read side of the rendered node tree
func (b *Background) Layer() *engine.Layer {
	return b.layer
}

// Clock returns the timer source; a default LoopClock must be drained by the host
func (b *Background) Clock() engine.Clock {
	return b.clock
}

func (b *Background) Static() bool {
	return !b.gate.Animated()
}

// Base is the page color under the layer
func (b *Background) Base() core.RGB {
	return b.palette.Base()
}

func (b *Background) Stats() Stats {
	st := Stats{
		Narrow:   b.narrow,
		Static:   b.Static(),
		Opacity:  b.layer.Container().Opacity,
		OffsetY:  b.layer.Container().OffsetY,
		Rebuilds: b.rebuilds,
	}
	if g := b.ref.Load(); g != nil {
		st.Cols, st.Rows = g.Cols, g.Rows
	}
	if b.glitch != nil {
		st.GlitchState = b.glitch.State()
		st.Pending = b.glitch.Pending()
		st.Active = b.glitch.Active()
	}
	return st
}

// Close cancels the resize debounce, every glitch timer and in-flight event
func (b *Background) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.resize != nil {
		b.resize.Dispose()
	}
	if b.glitch != nil {
		b.glitch.Dispose()
	}
	b.logger.Debug("camo closed", zap.Int("rebuilds", b.rebuilds))
}

// must unwraps claims on a layer this package just created
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
