package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Glitch Sound Timing
const (
	GlitchSoundDuration = 60 * time.Millisecond
	GlitchSoundAttack   = 3 * time.Millisecond
	GlitchSoundRelease  = 40 * time.Millisecond

	// GlitchSoundVolume is the linear gain of the static burst
	GlitchSoundVolume = 0.25
)
