package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/ant"
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
)

// Action is a non-steering command produced by a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionMenu
	ActionUpgrade
	ActionToggleMute
	ActionSpawnNpc // Debug only
	ActionAddFood  // Debug only
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionMenu:
		return "menu"
	case ActionUpgrade:
		return "upgrade"
	case ActionToggleMute:
		return "mute"
	case ActionSpawnNpc:
		return "spawn-npc"
	case ActionAddFood:
		return "add-food"
	default:
		return "unknown"
	}
}

// Controller receives steering presses and releases
type Controller interface {
	Press(c ant.Control) bool
	Release(c ant.Control) bool
}

type heldKey struct {
	lastSeen time.Time
	repeated bool
}

// Keys translates terminal key events into player controls and actions
//
// Terminals report presses and auto-repeats but no releases. A held key is considered
// released once no repeat arrived within KeyInitialRepeat after the press, or within
// KeyRepeatGap after the latest repeat; Expire synthesizes that release
type Keys struct {
	clock core.Clock
	debug bool
	held  map[ant.Control]*heldKey
}

// NewKeys creates an adapter; debug enables the cheat keys
func NewKeys(clock core.Clock, debug bool) *Keys {
	return &Keys{
		clock: clock,
		debug: debug,
		held:  make(map[ant.Control]*heldKey),
	}
}

// HandleKey applies a steering key to ctl or returns the action bound to the key
func (k *Keys) HandleKey(ev *tcell.EventKey, ctl Controller) Action {
	if c, ok := steering(ev); ok {
		k.press(c, ctl)
		return ActionNone
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return ActionMenu
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'c', 'C':
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				return ActionQuit
			}
		case ' ':
			return ActionUpgrade
		case 'm', 'M':
			return ActionToggleMute
		case 'n', 'N':
			if k.debug {
				return ActionSpawnNpc
			}
		case 'f', 'F':
			if k.debug {
				return ActionAddFood
			}
		}
	}
	return ActionNone
}

func steering(ev *tcell.EventKey) (ant.Control, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ant.ControlForward, true
	case tcell.KeyDown:
		return ant.ControlBackward, true
	case tcell.KeyLeft:
		return ant.ControlLeft, true
	case tcell.KeyRight:
		return ant.ControlRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ant.ControlForward, true
		case 's', 'S':
			return ant.ControlBackward, true
		case 'a', 'A':
			return ant.ControlLeft, true
		case 'd', 'D':
			return ant.ControlRight, true
		}
	}
	return 0, false
}

func (k *Keys) press(c ant.Control, ctl Controller) {
	now := k.clock.Now()
	if h, ok := k.held[c]; ok {
		h.lastSeen = now
		h.repeated = true
		return
	}
	k.held[c] = &heldKey{lastSeen: now}
	ctl.Press(c)
}

// Expire releases every key whose repeats stopped; call once per frame
func (k *Keys) Expire(ctl Controller) {
	now := k.clock.Now()
	for c, h := range k.held {
		timeout := constants.KeyInitialRepeat
		if h.repeated {
			timeout = constants.KeyRepeatGap
		}
		if now.Sub(h.lastSeen) > timeout {
			delete(k.held, c)
			ctl.Release(c)
		}
	}
}

// Reset forgets every held key without notifying a controller
// Used when the player is re-spawned or input is frozen
func (k *Keys) Reset() {
	clear(k.held)
}

// Held reports whether c is tracked as held
func (k *Keys) Held(c ant.Control) bool {
	_, ok := k.held[c]
	return ok
}
