package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/systems"
)

// SoundManager plays a crackle for every glitch event
// Audio is optional: every method is safe before Initialize or after a failed one
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	muted       bool
	initialized bool
	played      int
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(constants.AudioSampleRate),
		volume: constants.GlitchSoundVolume,
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted toggles output without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// PlayGlitch queues a crackle sized to the event
func (sm *SoundManager) PlayGlitch(ev systems.GlitchEvent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer := CreateGlitchSound(sm.rate, len(ev.Indices), sm.volume)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played++
}

// Played returns the number of crackles queued
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// Give the device a buffer length to drain silence before closing
	time.Sleep(constants.AudioBufferDuration)
	speaker.Close()
	sm.initialized = false
}
