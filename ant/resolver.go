package ant

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/world"
)

// Outcome tells a mover whether its tentative motion stands
type Outcome int

const (
	OutcomeCommit Outcome = iota
	OutcomeRevert
	OutcomeOutOfBounds // Treated as revert
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommit:
		return "commit"
	case OutcomeRevert:
		return "revert"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// Reverts reports whether the mover must return to its pre-tick position
func (o Outcome) Reverts() bool {
	return o != OutcomeCommit
}

// AnthillFlag is the effect of a tile on the player's in_anthill flag
type AnthillFlag int

const (
	FlagKeep AnthillFlag = iota
	FlagSet
	FlagClear
)

// Resolution is the result of moving onto one cell
type Resolution struct {
	Outcome  Outcome
	Tile     world.Tile // Tile found before any effect was applied
	Anthill  AnthillFlag
	Consumed bool
}

// Resolver applies tile effects for movers on one grid
//
// The read of the destination tile and the Food to Free write happen under a single
// grid write lock, so two actors entering the same Food cell consume it exactly once
type Resolver struct {
	grid  *world.Grid
	queue *events.EventQueue
}

// NewResolver creates a resolver publishing consumption events to queue
func NewResolver(grid *world.Grid, queue *events.EventQueue) *Resolver {
	return &Resolver{grid: grid, queue: queue}
}

// Grid returns the grid the resolver acts on
func (r *Resolver) Grid() *world.Grid {
	return r.grid
}

// Resolve applies the effect of the tile at c for the given actor
func (r *Resolver) Resolve(c world.Cell, actor events.ActorKind, id uuid.UUID) Resolution {
	old, err := r.grid.Update(c, func(t world.Tile) world.Tile {
		if t == world.TileFood {
			return world.TileFree
		}
		return t
	})
	if err != nil {
		return Resolution{Outcome: OutcomeOutOfBounds, Tile: world.TileWall}
	}

	res := Resolution{Tile: old}
	switch old {
	case world.TileFree:
		res.Anthill = FlagClear
	case world.TileAnthill:
		res.Outcome = OutcomeRevert
		res.Anthill = FlagSet
	case world.TileWall:
		res.Outcome = OutcomeRevert
	case world.TileFood:
		res.Consumed = true
		r.queue.Push(events.GameEvent{
			Type:      events.EventFoodConsumed,
			Payload:   &events.FoodConsumedPayload{Cell: c, Actor: actor, ID: id},
			Timestamp: time.Now(),
		})
	case world.TileEnclosed:
		// Passable, leaves the flag alone
	}
	return res
}
