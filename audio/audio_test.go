package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/cants/events"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

// TestOscillatorLength tests that an oscillator yields exactly its duration in samples
func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveTriangle, WaveNoise} {
		n, peak := drain(t, NewOscillator(440, 100*time.Millisecond, w, rate))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d produced %d samples, want %d", w, n, rate.N(100*time.Millisecond))
		}
		if peak > 1 {
			t.Errorf("wave %d peak %v exceeds 1", w, peak)
		}
	}
}

// TestEnvelopeBounds tests that the envelope starts silent and never amplifies
func TestEnvelopeBounds(t *testing.T) {
	rate := beep.SampleRate(8000)
	env := NewEnvelope(NewOscillator(0, time.Second, WaveSquare, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)
	buf := make([][2]float64, rate.N(time.Second))
	n, _ := env.Stream(buf)
	if n == 0 || buf[0][0] != 0 {
		t.Fatalf("first sample %v, want 0", buf[0][0])
	}
	for i := 0; i < n; i++ {
		if math.Abs(buf[i][0]) > 1 {
			t.Fatalf("sample %d = %v", i, buf[i][0])
		}
	}
	mid := buf[n/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %v, want full scale", mid)
	}
}

// TestBuildCue tests every cue is finite with the advertised duration
func TestBuildCue(t *testing.T) {
	rate := beep.SampleRate(8000)
	for c := Cue(0); c < cueCount; c++ {
		n, peak := drain(t, BuildCue(c, 1, rate))
		want := 0
		for _, nt := range cueNotes[c] {
			want += rate.N(nt.dur)
		}
		if n != want {
			t.Errorf("%v: %d samples, want %d", c, n, want)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%v: peak %v", c, peak)
		}
		if c.Duration() <= 0 {
			t.Errorf("%v: duration %v", c, c.Duration())
		}
	}
	if BuildCue(cueCount, 1, rate) != nil {
		t.Error("unknown cue built a streamer")
	}
}

// TestSoundManagerGracefulDegradation verifies cues are dropped without an initialized speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(0.5, false)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	sm.Play(CueChomp)
	sm.Play(CueWin)
	sm.Cleanup()
	if sm.Played(CueChomp) != 0 {
		t.Error("cue counted without a speaker")
	}
}

// TestSoundManagerMutedSkipsInit verifies a muted manager never touches the audio device
func TestSoundManagerMutedSkipsInit(t *testing.T) {
	sm := NewSoundManager(0.5, true)
	if err := sm.Initialize(); err != nil {
		t.Errorf("muted Initialize = %v, want nil", err)
	}
	if !sm.Muted() {
		t.Error("mute flag lost")
	}
	sm.Play(CueLevelUp)
	if sm.Played(CueLevelUp) != 0 {
		t.Error("muted manager played a cue")
	}
}

// TestHandlerCues tests the event to cue mapping
func TestHandlerCues(t *testing.T) {
	var got []Cue
	h := &Handler{play: func(c Cue) { got = append(got, c) }}

	h.HandleEvent(nil, events.GameEvent{Type: events.EventFoodConsumed, Payload: &events.FoodConsumedPayload{Actor: events.ActorNpc}})
	h.HandleEvent(nil, events.GameEvent{Type: events.EventFoodConsumed, Payload: &events.FoodConsumedPayload{Actor: events.ActorPlayer}})
	h.HandleEvent(nil, events.GameEvent{Type: events.EventAnthillUpgraded, Payload: &events.AnthillUpgradedPayload{Level: 1, Spawned: 5}})
	h.HandleEvent(nil, events.GameEvent{Type: events.EventGameWon})

	want := []Cue{CueChomp, CueLevelUp, CueHatch, CueWin}
	if len(got) != len(want) {
		t.Fatalf("cues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, got[i], want[i])
		}
	}
}
