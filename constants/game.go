package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond
)

// Reveal Driver
const (
	// DefaultTargetOpacity is the container opacity reached after the reveal
	DefaultTargetOpacity = 0.72

	// DimTargetOpacity is the dashboard variant opacity
	DimTargetOpacity = 0.30

	// ReducedMotionOpacity is the fixed container opacity when reduced motion is requested
	ReducedMotionOpacity = 0.55

	// RevealDuration is the container fade-in time
	RevealDuration = 2400 * time.Millisecond

	// ParallaxTravel is the container offset at full scroll, as a fraction of canvas height
	ParallaxTravel = 0.15

	// ParallaxScrub is the lag time constant of the offset following scroll
	ParallaxScrub = 1500 * time.Millisecond
)

// Pulse Driver
const (
	// PulseMinDuration is the shortest per-cell pulse period
	PulseMinDuration = 3 * time.Second

	// PulseDurationSpread is added to PulseMinDuration scaled by a uniform draw
	PulseDurationSpread = 4 * time.Second

	// PulseMaxDelay bounds the per-cell start delay, exclusive
	PulseMaxDelay = 8 * time.Second

	// PulseLowOpacity is the trough of the 1 -> low -> 1 cycle
	PulseLowOpacity = 0.6
)

// Resize Coordinator
const (
	// ResizeQuietWindow is the debounce window before a rebuild
	ResizeQuietWindow = 300 * time.Millisecond
)
