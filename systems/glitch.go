package systems

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
)

// GlitchState is the scheduler lifecycle phase
type GlitchState int

const (
	GlitchIdle GlitchState = iota
	GlitchWaiting
	GlitchFlashing
	GlitchRestoring
	GlitchDisposed
)

func (s GlitchState) String() string {
	switch s {
	case GlitchIdle:
		return "idle"
	case GlitchWaiting:
		return "waiting"
	case GlitchFlashing:
		return "flashing"
	case GlitchRestoring:
		return "restoring"
	case GlitchDisposed:
		return "disposed"
	}
	return "unknown"
}

// GlitchConfig holds the scheduler timing
type GlitchConfig struct {
	MeanInterval          time.Duration
	FlashStep             time.Duration
	RestoreDuration       time.Duration
	MicroBurstMin         time.Duration
	MicroBurstMax         time.Duration
	MicroBurstProbability float64
	MinCells              int
	Highlight             core.RGB
}

// DefaultGlitchConfig returns the stock timing with the sage highlight
func DefaultGlitchConfig() GlitchConfig {
	return GlitchConfig{
		MeanInterval:          constants.GlitchMeanInterval,
		FlashStep:             constants.GlitchFlashStep,
		RestoreDuration:       constants.GlitchRestoreDuration,
		MicroBurstMin:         constants.MicroBurstMinDelay,
		MicroBurstMax:         constants.MicroBurstMaxDelay,
		MicroBurstProbability: constants.MicroBurstProbability,
		MinCells:              constants.GlitchMinCells,
		Highlight:             palette.Sage,
	}
}

type eventPhase int

const (
	phaseFlashing eventPhase = iota
	phaseRestoring
)

// activeEvent is an in-flight glitch bound to the grid it was selected against
type activeEvent struct {
	GlitchEvent
	grid    *grid.Grid
	primary bool
	phase   eventPhase
	start   time.Time

	snapshot     []core.RGB // pre-flash colors, per index
	restoreStart time.Time
	restoreFrom  []core.RGB
}

// GlitchScheduler flashes small cell groups at Poisson-distributed times
// It is the sole writer of rendered cell colors. Timers drive phase
// transitions; Tick writes the colors of in-flight events every frame.
// All methods run on the loop goroutine.
type GlitchScheduler struct {
	clock  engine.Clock
	rand   *rand.Rand
	ref    *engine.GridRef
	colors *engine.CellColorWriter
	cfg    GlitchConfig
	logger *zap.Logger

	started  bool
	disposed bool
	epoch    uint64

	timers    map[uint64]engine.Timer
	nextTimer uint64
	arrival   uint64 // id of the pending arrival timer, 0 if none

	active  []*activeEvent
	origins map[int]core.RGB // original color of cells held by in-flight events
	holds   map[int]int

	observers []func(GlitchEvent)
}

// NewGlitchScheduler creates an idle scheduler; call Start to arm the first arrival
func NewGlitchScheduler(clock engine.Clock, r *rand.Rand, ref *engine.GridRef, colors *engine.CellColorWriter, cfg GlitchConfig, logger *zap.Logger) *GlitchScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GlitchScheduler{
		clock:   clock,
		rand:    r,
		ref:     ref,
		colors:  colors,
		cfg:     cfg,
		logger:  logger,
		timers:  make(map[uint64]engine.Timer),
		origins: make(map[int]core.RGB),
		holds:   make(map[int]int),
	}
}

// OnFire registers an observer called for every event that flashes
func (s *GlitchScheduler) OnFire(fn func(GlitchEvent)) {
	s.observers = append(s.observers, fn)
}

// SetHighlight changes the flash color for events that start after the call
func (s *GlitchScheduler) SetHighlight(c core.RGB) {
	s.cfg.Highlight = c
}

// Start arms the first arrival
func (s *GlitchScheduler) Start() {
	if s.disposed || s.started {
		return
	}
	s.started = true
	s.rearm()
}

// State reports the aggregate phase across the arrival timer and in-flight events
func (s *GlitchScheduler) State() GlitchState {
	if s.disposed {
		return GlitchDisposed
	}
	restoring := false
	for _, ev := range s.active {
		if ev.phase == phaseFlashing {
			return GlitchFlashing
		}
		restoring = true
	}
	if restoring {
		return GlitchRestoring
	}
	if s.arrival != 0 || len(s.timers) > 0 {
		return GlitchWaiting
	}
	return GlitchIdle
}

// Pending returns the number of armed timers
func (s *GlitchScheduler) Pending() int {
	return len(s.timers)
}

// Active returns the number of in-flight events
func (s *GlitchScheduler) Active() int {
	return len(s.active)
}

// Reset drops in-flight work and re-arms against the live grid
// Called after every rebuild
func (s *GlitchScheduler) Reset() {
	if s.disposed {
		return
	}
	s.cancel()
	if s.started {
		s.rearm()
	}
}

// Dispose cancels everything; the scheduler never fires again
func (s *GlitchScheduler) Dispose() {
	if s.disposed {
		return
	}
	s.cancel()
	s.disposed = true
	s.observers = nil
}

// Tick writes the current flash or fade color of every in-flight cell
func (s *GlitchScheduler) Tick(now time.Time) {
	for _, ev := range s.active {
		switch ev.phase {
		case phaseFlashing:
			s.tickFlash(ev, now)
		case phaseRestoring:
			t := float64(now.Sub(ev.restoreStart)) / float64(s.cfg.RestoreDuration)
			for k, idx := range ev.Indices {
				s.colors.Set(ev.grid, idx, ev.restoreFrom[k].Lerp(ev.snapshot[k], t))
			}
		}
	}
}

func (s *GlitchScheduler) tickFlash(ev *activeEvent, now time.Time) {
	steps := 2 * ev.Cycles
	for k, idx := range ev.Indices {
		elapsed := now.Sub(ev.start) - time.Duration(k)*ev.Stagger
		if elapsed < 0 {
			continue
		}
		c := ev.snapshot[k]
		if step := int(elapsed / s.cfg.FlashStep); step < steps && step%2 == 0 {
			c = s.cfg.Highlight
		}
		s.colors.Set(ev.grid, idx, c)
	}
}

// rearm is the only transition that arms the next arrival
func (s *GlitchScheduler) rearm() {
	if s.disposed {
		return
	}
	if s.arrival != 0 {
		s.stop(s.arrival)
	}
	delay := ExpDelay(s.rand.Float64(), s.cfg.MeanInterval)
	s.arrival = s.after(delay, func() {
		s.arrival = 0
		s.fire(true)
	})
	s.logger.Debug("glitch armed", zap.Duration("delay", delay))
}

func (s *GlitchScheduler) fire(primary bool) {
	g := s.ref.Load()
	if g == nil || g.Len() < s.cfg.MinCells {
		if primary {
			s.rearm()
		}
		return
	}

	ev := SelectPattern(s.rand, g.Cols, g.Rows)
	s.begin(g, ev, primary)

	if primary && s.rand.Float64() < s.cfg.MicroBurstProbability {
		span := s.cfg.MicroBurstMax - s.cfg.MicroBurstMin
		delay := s.cfg.MicroBurstMin + time.Duration(s.rand.Float64()*float64(span))
		s.after(delay, func() { s.fire(false) })
	}
}

func (s *GlitchScheduler) begin(g *grid.Grid, ev GlitchEvent, primary bool) {
	a := &activeEvent{
		GlitchEvent: ev,
		grid:        g,
		primary:     primary,
		phase:       phaseFlashing,
		start:       s.clock.Now(),
		snapshot:    make([]core.RGB, len(ev.Indices)),
	}
	for k, idx := range ev.Indices {
		a.snapshot[k] = s.hold(g, idx)
	}
	s.active = append(s.active, a)

	s.logger.Debug("glitch fired",
		zap.Stringer("pattern", ev.Pattern),
		zap.Int("cells", len(ev.Indices)),
		zap.Bool("primary", primary),
	)
	for _, fn := range s.observers {
		fn(ev)
	}

	s.after(ev.FlashDuration(s.cfg.FlashStep), func() {
		s.beginRestore(a)
		if a.primary {
			s.rearm()
		}
	})
}

func (s *GlitchScheduler) beginRestore(a *activeEvent) {
	a.phase = phaseRestoring
	a.restoreStart = s.clock.Now()
	a.restoreFrom = make([]core.RGB, len(a.Indices))
	for k, idx := range a.Indices {
		c, ok := s.colors.Get(a.grid, idx)
		if !ok {
			c = a.snapshot[k]
		}
		a.restoreFrom[k] = c
	}
	s.after(s.cfg.RestoreDuration, func() { s.finish(a) })
}

func (s *GlitchScheduler) finish(a *activeEvent) {
	for k, idx := range a.Indices {
		s.colors.Set(a.grid, idx, a.snapshot[k])
		s.release(idx)
	}
	for i, ev := range s.active {
		if ev == a {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
}

// hold returns the cell's pre-glitch color; a cell already held by another
// in-flight event keeps its original snapshot instead of the highlight
func (s *GlitchScheduler) hold(g *grid.Grid, idx int) core.RGB {
	s.holds[idx]++
	if c, ok := s.origins[idx]; ok {
		return c
	}
	c, ok := s.colors.Get(g, idx)
	if !ok {
		c = g.Cells[idx].Color
	}
	s.origins[idx] = c
	return c
}

func (s *GlitchScheduler) release(idx int) {
	s.holds[idx]--
	if s.holds[idx] <= 0 {
		delete(s.holds, idx)
		delete(s.origins, idx)
	}
}

// cancel stops every timer, restores held cells and invalidates queued callbacks
func (s *GlitchScheduler) cancel() {
	s.epoch++
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.arrival = 0

	for _, a := range s.active {
		for k, idx := range a.Indices {
			s.colors.Set(a.grid, idx, a.snapshot[k])
		}
	}
	s.active = nil
	clear(s.origins)
	clear(s.holds)
}

// after arms a tracked timer whose callback is dropped if the epoch moved on
func (s *GlitchScheduler) after(d time.Duration, fn func()) uint64 {
	s.nextTimer++
	id := s.nextTimer
	epoch := s.epoch
	s.timers[id] = s.clock.AfterFunc(d, func() {
		if epoch != s.epoch || s.disposed {
			return
		}
		delete(s.timers, id)
		fn()
	})
	return id
}

func (s *GlitchScheduler) stop(id uint64) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}
