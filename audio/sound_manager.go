package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays cues through one mixer on the speaker
// Every method is a no-op until Initialize succeeds, so the game runs without an audio device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	played      [cueCount]int
}

// NewSoundManager creates a manager with the given master volume in [0,1]
func NewSoundManager(volume float64, muted bool) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		muted:  muted,
	}
}

// Initialize opens the speaker; a second call is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every playing cue
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output; muting drops cues instead of queueing them
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play mixes c into the output
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := BuildCue(c, sm.volume, sampleRate)
	if s == nil {
		return
	}
	sm.played[c]++
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times c reached the mixer
func (sm *SoundManager) Played(c Cue) int {
	if c < 0 || c >= cueCount {
		return 0
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}
