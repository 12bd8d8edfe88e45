package background

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
	"github.com/lixenwraith/camo/systems"
)

// Options are the two public knobs of the layer
type Options struct {
	TargetOpacity float64 // container opacity after the reveal, 0 means 0.72
	StaticOnly    bool    // never animate
}

// Environment is what the host knows about its viewport
type Environment struct {
	Width, Height int
	ReducedMotion bool
	Planner       grid.Planner
}

// Option configures optional collaborators
type Option func(*settings)

type settings struct {
	clock     engine.Clock
	rand      *rand.Rand
	logger    *zap.Logger
	palette   *palette.Palette
	glitchCfg *systems.GlitchConfig
	observers []func(systems.GlitchEvent)
	quiet     time.Duration
}

func defaultSettings() settings {
	return settings{
		logger:  zap.NewNop(),
		palette: palette.Default(),
		quiet:   constants.ResizeQuietWindow,
	}
}

// WithClock injects the timer source; hosts pass their loop clock
func WithClock(c engine.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithRand injects the random source used for patterns and glitches
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rand = r }
}

// WithSeed seeds a PCG source
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.rand = NewRand(seed) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPalette(p *palette.Palette) Option {
	return func(s *settings) {
		if p != nil {
			s.palette = p
		}
	}
}

// WithGlitchConfig overrides the glitch timing; the highlight comes from the config as given
func WithGlitchConfig(cfg systems.GlitchConfig) Option {
	return func(s *settings) { s.glitchCfg = &cfg }
}

// WithGlitchObserver is called for every glitch event that flashes
func WithGlitchObserver(fn func(systems.GlitchEvent)) Option {
	return func(s *settings) { s.observers = append(s.observers, fn) }
}

// WithResizeQuiet overrides the resize debounce window
func WithResizeQuiet(d time.Duration) Option {
	return func(s *settings) { s.quiet = d }
}

// NewRand returns the PCG source used across the engine
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
