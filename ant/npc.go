package ant

import (
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/world"
)

// NpcState is the phase of the NPC behaviour cycle
type NpcState int

const (
	StatePrepare NpcState = iota
	StateTurn
	StateStep
)

func (s NpcState) String() string {
	switch s {
	case StatePrepare:
		return "prepare"
	case StateTurn:
		return "turn"
	case StateStep:
		return "step"
	default:
		return "unknown"
	}
}

// moveTable lists the 8 neighbours clockwise from north; index*45 is the heading towards it
var moveTable = [8]world.Cell{
	{Row: -1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 0, Col: 1},
	{Row: 1, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: -1},
	{Row: 0, Col: -1},
	{Row: -1, Col: -1},
}

// NpcSnapshot is a consistent copy of an NPC for renderers and tests
type NpcSnapshot struct {
	ID          uuid.UUID
	Pose        Pose
	State       NpcState
	TargetAngle int
	Clockwise   bool
	StepsDone   int
	Cell        world.Cell
	Target      world.Cell
}

// Npc is an autonomous forager cycling PREPARE, TURN and STEP
type Npc struct {
	id uuid.UUID

	mu          sync.Mutex
	pose        Pose
	state       NpcState
	targetAngle int
	clockwise   bool
	stepsDone   int
	cell        world.Cell
	target      world.Cell

	rng   *rand.Rand // Owned by the NPC task
	clock core.Clock
}

// NewNpc spawns an NPC at the centre of cell, facing north, in PREPARE
func NewNpc(cell world.Cell, rng *rand.Rand, clock core.Clock) *Npc {
	x, y := world.Center(cell)
	return &Npc{
		id: uuid.New(),
		pose: Pose{
			X:        x,
			Y:        y,
			Scale:    constants.NpcScaleMin + rng.Float64()*constants.NpcScaleSpan,
			AnimTime: clock.Now(),
		},
		state:  StatePrepare,
		cell:   cell,
		target: cell,
		rng:    rng,
		clock:  clock,
	}
}

// ID returns the stable identity of the NPC
func (n *Npc) ID() uuid.UUID {
	return n.id
}

// Tick runs one step of the behaviour cycle
func (n *Npc) Tick(res *Resolver) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StatePrepare:
		n.prepareLocked(res.Grid())
	case StateTurn:
		n.turnLocked()
	case StateStep:
		n.stepLocked(res)
	}
	n.pose.animate(n.clock.Now())
}

// prepareLocked picks the next target: the last Food neighbour in table order, or a random passable one
// With no passable neighbour the NPC stays in PREPARE and retries next tick
func (n *Npc) prepareLocked(g *world.Grid) {
	var passable [8]bool
	anyPassable := false
	food := -1
	for i, off := range moveTable {
		t, err := g.Get(n.cell.Add(off))
		if err != nil {
			continue
		}
		if t == world.TileFood {
			food = i
		}
		if t.Passable() {
			passable[i] = true
			anyPassable = true
		}
	}

	dir := food
	if dir < 0 {
		if !anyPassable {
			return
		}
		for {
			dir = n.rng.Intn(len(moveTable))
			if passable[dir] {
				break
			}
		}
	}

	n.target = n.cell.Add(moveTable[dir])
	n.targetAngle = dir * 45
	n.stepsDone = 0
	n.clockwise = RotateClockwise(n.pose.Angle, n.targetAngle)
	n.state = StateTurn
}

func (n *Npc) turnLocked() {
	if n.pose.Angle == n.targetAngle {
		n.state = StateStep
		return
	}
	step := constants.NpcTurnStep
	if !n.clockwise {
		step = -step
	}
	n.pose.Angle = NormalizeAngle(n.pose.Angle + step)
}

func (n *Npc) stepLocked(res *Resolver) {
	n.stepsDone++
	if n.stepsDone < constants.CellSize {
		dx, dy := n.pose.Direction()
		if n.pose.Angle%90 != 0 {
			dx *= math.Sqrt2
			dy *= math.Sqrt2
		}
		n.pose.X += dx
		n.pose.Y += dy
		return
	}

	n.pose.X, n.pose.Y = world.Center(n.target)
	n.cell = n.target
	res.Resolve(n.cell, events.ActorNpc, n.id)
	n.state = StatePrepare
}

// Snapshot returns a consistent copy of the NPC state
func (n *Npc) Snapshot() NpcSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NpcSnapshot{
		ID:          n.id,
		Pose:        n.pose,
		State:       n.state,
		TargetAngle: n.targetAngle,
		Clockwise:   n.clockwise,
		StepsDone:   n.stepsDone,
		Cell:        n.cell,
		Target:      n.target,
	}
}

// RotateClockwise reports whether turning from angle to target is shorter clockwise
// A half turn goes clockwise
func RotateClockwise(angle, target int) bool {
	return NormalizeAngle(target-angle) <= 180
}
