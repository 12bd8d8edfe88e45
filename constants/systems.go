package constants

import "time"

// Glitch Scheduler Timing
const (
	// GlitchMeanInterval is the mean of the exponential inter-arrival delay (rate 1/15s)
	GlitchMeanInterval = 15 * time.Second

	// GlitchFlashStep is the hold time of each discrete highlight/restore step
	GlitchFlashStep = 80 * time.Millisecond

	// GlitchStagger is the per-cell start offset within one event
	GlitchStagger = 40 * time.Millisecond

	// GlitchCascadeStagger is the wider per-cell offset of the cascade sweep
	GlitchCascadeStagger = 70 * time.Millisecond

	// GlitchRestoreDuration is the fade back to the snapshot color
	GlitchRestoreDuration = 300 * time.Millisecond

	// MicroBurstMinDelay and MicroBurstMaxDelay bound the secondary event delay
	MicroBurstMinDelay = 200 * time.Millisecond
	MicroBurstMaxDelay = 600 * time.Millisecond
)

// Glitch Scheduler Shape
const (
	// GlitchMinCells is the smallest live grid a glitch fires against
	GlitchMinCells = 10

	// GlitchCycles is the highlight/restore repeat count for non-cascade patterns
	GlitchCycles = 3

	// GlitchCascadeCycles is the repeat count for each cascade cell
	GlitchCascadeCycles = 1

	// MicroBurstProbability is the chance of a clustered double pulse
	MicroBurstProbability = 0.2
)

// Glitch Pattern Extents
const (
	ScatterMin = 2
	ScatterMax = 3

	HStreakMin = 4
	HStreakMax = 9

	VColumnMin = 3
	VColumnMax = 6

	CascadeMin = 6
	CascadeMax = 14
)
