package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is one short sound effect
type Cue int

const (
	CueChomp   Cue = iota // Player ate a food tile
	CueHatch              // NPCs hatched
	CueLevelUp            // Anthill upgraded
	CueWin                // Final level reached
	CueDenied             // Upgrade rejected
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueChomp:
		return "chomp"
	case CueHatch:
		return "hatch"
	case CueLevelUp:
		return "levelup"
	case CueWin:
		return "win"
	case CueDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// note is one envelope-shaped tone of a cue
type note struct {
	from, to float64
	dur      time.Duration
	wave     WaveType
	gain     float64
}

// cueNotes lists the notes of each cue, played in sequence
var cueNotes = [cueCount][]note{
	CueChomp:   {{from: 320, to: 180, dur: 60 * time.Millisecond, wave: WaveTriangle, gain: 0.8}},
	CueHatch:   {{from: 600, to: 900, dur: 80 * time.Millisecond, wave: WaveSine, gain: 0.5}},
	CueLevelUp: {{from: 523.25, to: 523.25, dur: 90 * time.Millisecond, wave: WaveSquare, gain: 0.4}, {from: 659.25, to: 659.25, dur: 90 * time.Millisecond, wave: WaveSquare, gain: 0.4}, {from: 783.99, to: 783.99, dur: 160 * time.Millisecond, wave: WaveSquare, gain: 0.4}},
	CueWin:     {{from: 523.25, to: 1046.5, dur: 600 * time.Millisecond, wave: WaveSine, gain: 0.7}},
	CueDenied:  {{from: 110, to: 90, dur: 120 * time.Millisecond, wave: WaveNoise, gain: 0.3}},
}

// Duration returns the total length of the cue
func (c Cue) Duration() time.Duration {
	if c < 0 || c >= cueCount {
		return 0
	}
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// BuildCue returns a finite streamer for c at the given master volume, nil for unknown cues
func BuildCue(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	if c < 0 || c >= cueCount {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(cueNotes[c]))
	for _, n := range cueNotes[c] {
		osc := NewGlide(n.from, n.to, n.dur, n.wave, rate)
		shaped := NewEnvelope(osc, n.dur, 5*time.Millisecond, n.dur/3, rate)
		parts = append(parts, newVolume(shaped, n.gain))
	}
	return newVolume(beep.Seq(parts...), volume)
}
