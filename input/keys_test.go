package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/ant"
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
)

type recordingController struct {
	presses, releases []ant.Control
}

func (r *recordingController) Press(c ant.Control) bool {
	r.presses = append(r.presses, c)
	return true
}

func (r *recordingController) Release(c ant.Control) bool {
	r.releases = append(r.releases, c)
	return true
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestKeys_RepeatsPressOnce tests that auto-repeat does not stack the same delta
func TestKeys_RepeatsPressOnce(t *testing.T) {
	clock := core.NewMockClock(time.Unix(0, 0))
	k := NewKeys(clock, false)
	ctl := &recordingController{}

	for i := 0; i < 5; i++ {
		k.HandleKey(runeKey('w'), ctl)
		clock.Advance(30 * time.Millisecond)
	}
	k.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ctl)

	if len(ctl.presses) != 1 || ctl.presses[0] != ant.ControlForward {
		t.Errorf("presses = %v, want one forward", ctl.presses)
	}
}

// TestKeys_SynthesizedRelease tests release timing before and after the first repeat
func TestKeys_SynthesizedRelease(t *testing.T) {
	clock := core.NewMockClock(time.Unix(0, 0))
	k := NewKeys(clock, false)
	ctl := &recordingController{}

	k.HandleKey(runeKey('a'), ctl)
	clock.Advance(constants.KeyInitialRepeat - time.Millisecond)
	k.Expire(ctl)
	if len(ctl.releases) != 0 {
		t.Fatal("released during the initial repeat delay")
	}

	k.HandleKey(runeKey('a'), ctl) // First repeat
	clock.Advance(constants.KeyRepeatGap)
	k.Expire(ctl)
	if len(ctl.releases) != 0 {
		t.Fatal("released within the repeat gap")
	}

	clock.Advance(time.Millisecond)
	k.Expire(ctl)
	if len(ctl.releases) != 1 || ctl.releases[0] != ant.ControlLeft || k.Held(ant.ControlLeft) {
		t.Errorf("releases = %v, want one left", ctl.releases)
	}

	// A later press starts a new hold
	k.HandleKey(runeKey('a'), ctl)
	if len(ctl.presses) != 2 {
		t.Errorf("presses = %v, want two", ctl.presses)
	}
}

// TestKeys_Actions tests the command bindings, debug keys included
func TestKeys_Actions(t *testing.T) {
	clock := core.NewMockClock(time.Unix(0, 0))
	tests := []struct {
		ev    *tcell.EventKey
		debug bool
		want  Action
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, ActionMenu},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false, ActionQuit},
		{runeKey('q'), false, ActionQuit},
		{runeKey(' '), false, ActionUpgrade},
		{runeKey('m'), false, ActionToggleMute},
		{runeKey('n'), false, ActionNone},
		{runeKey('n'), true, ActionSpawnNpc},
		{runeKey('f'), false, ActionNone},
		{runeKey('f'), true, ActionAddFood},
		{runeKey('x'), true, ActionNone},
		{runeKey('d'), true, ActionNone},
	}
	for _, tt := range tests {
		k := NewKeys(clock, tt.debug)
		if got := k.HandleKey(tt.ev, &recordingController{}); got != tt.want {
			t.Errorf("key %v debug=%v: action %v, want %v", tt.ev.Name(), tt.debug, got, tt.want)
		}
	}
}

// TestKeys_Reset tests that forgotten keys are pressed again on the next event
func TestKeys_Reset(t *testing.T) {
	clock := core.NewMockClock(time.Unix(0, 0))
	k := NewKeys(clock, false)
	ctl := &recordingController{}

	k.HandleKey(runeKey('d'), ctl)
	k.Reset()
	k.Expire(ctl)
	if len(ctl.releases) != 0 {
		t.Error("Reset notified the controller")
	}
	k.HandleKey(runeKey('d'), ctl)
	if len(ctl.presses) != 2 {
		t.Errorf("presses = %v, want two", ctl.presses)
	}
}
