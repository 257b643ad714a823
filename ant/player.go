package ant

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
	"github.com/lixenwraith/cants/events"
)

// Control is one steering input of the player
type Control int

const (
	ControlForward Control = iota
	ControlBackward
	ControlLeft
	ControlRight
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlForward:
		return "forward"
	case ControlBackward:
		return "backward"
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	default:
		return "unknown"
	}
}

// PlayerState is a consistent snapshot of the player for renderers and tests
type PlayerState struct {
	Pose         Pose
	Velocity     float64
	TurnVelocity int
	InAnthill    bool
}

// Player is the user-steered ant
//
// Pose, controls and the in_anthill flag are guarded by mu; the periodic task and the
// input adapter race on them. The food count belongs to the main loop and is not locked
type Player struct {
	mu           sync.Mutex
	pose         Pose
	held         [controlCount]bool
	velocity     float64
	turnVelocity int
	inAnthill    bool
	clock        core.Clock

	foodCount int
}

// NewPlayer places the player at (x, y) facing north
func NewPlayer(x, y float64, clock core.Clock) *Player {
	return &Player{
		pose: Pose{
			X:        x,
			Y:        y,
			Scale:    constants.PlayerScale,
			AnimTime: clock.Now(),
		},
		clock: clock,
	}
}

// Press applies the delta of c once; repeated presses while held are ignored
// Returns false for a duplicate notification
func (p *Player) Press(c Control) bool {
	if c < 0 || c >= controlCount {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.held[c] {
		return false
	}
	p.held[c] = true
	p.applyLocked(c, 1)
	return true
}

// Release reverts the delta of c if it is held
func (p *Player) Release(c Control) bool {
	if c < 0 || c >= controlCount {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.held[c] {
		return false
	}
	p.held[c] = false
	p.applyLocked(c, -1)
	return true
}

// ReleaseAll drops every held control and zeroes both velocities
func (p *Player) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held = [controlCount]bool{}
	p.velocity = 0
	p.turnVelocity = 0
}

// Held reports whether c is currently pressed
func (p *Player) Held(c Control) bool {
	if c < 0 || c >= controlCount {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held[c]
}

func (p *Player) applyLocked(c Control, sign int) {
	switch c {
	case ControlForward:
		p.velocity += float64(sign) * constants.PlayerVelMax
	case ControlBackward:
		p.velocity -= float64(sign) * constants.PlayerVelMax / 2
	case ControlLeft:
		p.turnVelocity -= sign * constants.PlayerTurnDegrees
	case ControlRight:
		p.turnVelocity += sign * constants.PlayerTurnDegrees
	}
}

// Tick advances the player by one period and resolves the destination tile
// Steering is inverted while reversing; a stopped player neither moves nor turns
func (p *Player) Tick(res *Resolver) Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.velocity == 0 {
		return Resolution{}
	}

	if p.velocity > 0 {
		p.pose.Angle = NormalizeAngle(p.pose.Angle + p.turnVelocity)
	} else {
		p.pose.Angle = NormalizeAngle(p.pose.Angle - p.turnVelocity)
	}

	dx, dy := p.pose.Direction()
	prevX, prevY := p.pose.X, p.pose.Y
	p.pose.X += p.velocity * dx
	p.pose.Y += p.velocity * dy

	r := res.Resolve(p.pose.Cell(), events.ActorPlayer, uuid.Nil)
	if r.Outcome.Reverts() {
		p.pose.X, p.pose.Y = prevX, prevY
	}
	switch r.Anthill {
	case FlagSet:
		p.inAnthill = true
	case FlagClear:
		p.inAnthill = false
	}

	p.pose.animate(p.clock.Now())
	return r
}

// Respawn moves the player to (x, y) facing north with all controls released
func (p *Player) Respawn(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pose.X, p.pose.Y = x, y
	p.pose.Angle = 0
	p.pose.Frame = 0
	p.inAnthill = false
	p.held = [controlCount]bool{}
	p.velocity = 0
	p.turnVelocity = 0
}

// Snapshot returns a consistent copy of the mutable state
func (p *Player) Snapshot() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlayerState{
		Pose:         p.pose,
		Velocity:     p.velocity,
		TurnVelocity: p.turnVelocity,
		InAnthill:    p.inAnthill,
	}
}

// InAnthill reports whether the player last bumped into the anthill without leaving it
func (p *Player) InAnthill() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inAnthill
}

// FoodCount returns the food carried by the player, main loop only
func (p *Player) FoodCount() int {
	return p.foodCount
}

// AddFood increases the carried food, main loop only
func (p *Player) AddFood(n int) {
	p.foodCount += n
}

// SpendFood deducts n; the caller checked the balance, main loop only
func (p *Player) SpendFood(n int) {
	p.foodCount -= n
}
