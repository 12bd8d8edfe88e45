package systems

import (
	"time"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/engine"
	"github.com/lixenwraith/camo/grid"
)

// PulseDriver owns per-cell opacity: a looping 1 -> 0.6 -> 1 breath per cell
type PulseDriver struct {
	w     *engine.CellOpacityWriter
	ref   *engine.GridRef
	bound *grid.Grid
	start time.Time
}

func NewPulseDriver(w *engine.CellOpacityWriter, ref *engine.GridRef) *PulseDriver {
	return &PulseDriver{w: w, ref: ref}
}

// Bind restarts the phase origin for the current grid
func (d *PulseDriver) Bind(now time.Time) {
	d.bound = d.ref.Load()
	d.start = now
}

// Tick writes every cell's opacity; a grid swapped without Bind is bound here
func (d *PulseDriver) Tick(now time.Time) {
	g := d.ref.Load()
	if g == nil {
		return
	}
	if g != d.bound {
		d.Bind(now)
	}
	elapsed := now.Sub(d.start)
	for i, c := range g.Cells {
		d.w.Set(i, PulseOpacity(c, elapsed))
	}
}

// PulseOpacity evaluates the keyframes 1 / low / 1 at times 0 / 0.5 / 1 of the
// cell's period, sine-eased per segment. Opacity stays 1 until the delay elapses.
func PulseOpacity(c grid.Cell, elapsed time.Duration) float64 {
	e := elapsed - c.PulseDelay
	if e < 0 || c.PulseDuration <= 0 {
		return 1
	}
	phase := float64(e%c.PulseDuration) / float64(c.PulseDuration)
	depth := 1 - constants.PulseLowOpacity
	if phase < 0.5 {
		return 1 - depth*SineInOut(phase*2)
	}
	return constants.PulseLowOpacity + depth*SineInOut((phase-0.5)*2)
}
