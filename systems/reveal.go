package systems

import (
	"math"
	"time"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/engine"
)

// RevealConfig controls the container fade-in and scroll parallax
type RevealConfig struct {
	Target   float64       // final container opacity
	Duration time.Duration // fade-in length
	Travel   float64       // offset at full scroll, fraction of canvas height
	Scrub    time.Duration // lag time constant of the offset
}

// DefaultRevealConfig fades to target over 2.4s with a 15% parallax travel
func DefaultRevealConfig(target float64) RevealConfig {
	return RevealConfig{
		Target:   target,
		Duration: constants.RevealDuration,
		Travel:   constants.ParallaxTravel,
		Scrub:    constants.ParallaxScrub,
	}
}

// RevealDriver owns container opacity and offset, nothing else
type RevealDriver struct {
	w   *engine.ContainerWriter
	cfg RevealConfig

	started  bool
	start    time.Time
	lastTick time.Time

	parallax bool
	scroll   float64
	offset   float64
}

func NewRevealDriver(w *engine.ContainerWriter, cfg RevealConfig) *RevealDriver {
	return &RevealDriver{w: w, cfg: cfg, parallax: true}
}

// Start begins the fade at now; the container stays transparent until then
func (d *RevealDriver) Start(now time.Time) {
	d.started = true
	d.start = now
	d.lastTick = now
	d.w.SetOpacity(0)
	d.w.SetOffset(d.offset)
}

// SetScroll records the page scroll progress, clamped to [0,1]
func (d *RevealDriver) SetScroll(progress float64) {
	d.scroll = clampUnit(progress)
}

// SetParallax enables the scroll offset; disabling snaps it to zero
func (d *RevealDriver) SetParallax(on bool) {
	d.parallax = on
	if !on {
		d.offset = 0
		d.w.SetOffset(0)
	}
}

func (d *RevealDriver) Parallax() bool {
	return d.parallax
}

// Opacity is the eased container opacity at now
func (d *RevealDriver) Opacity(now time.Time) float64 {
	if !d.started {
		return 0
	}
	if d.cfg.Duration <= 0 {
		return d.cfg.Target
	}
	t := float64(now.Sub(d.start)) / float64(d.cfg.Duration)
	return d.cfg.Target * Power2InOut(t)
}

// Offset returns the smoothed parallax offset
func (d *RevealDriver) Offset() float64 {
	return d.offset
}

// Done reports whether the fade has reached its target
func (d *RevealDriver) Done(now time.Time) bool {
	return d.started && now.Sub(d.start) >= d.cfg.Duration
}

// Tick writes container opacity and offset
func (d *RevealDriver) Tick(now time.Time) {
	if !d.started {
		return
	}
	d.w.SetOpacity(d.Opacity(now))

	if d.parallax {
		goal := -d.cfg.Travel * d.scroll
		dt := now.Sub(d.lastTick)
		if dt > 0 {
			if d.cfg.Scrub <= 0 {
				d.offset = goal
			} else {
				alpha := 1 - math.Exp(-float64(dt)/float64(d.cfg.Scrub))
				d.offset += (goal - d.offset) * alpha
			}
		}
	} else {
		d.offset = 0
	}
	d.w.SetOffset(d.offset)
	d.lastTick = now
}
