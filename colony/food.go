package colony

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/status"
	"github.com/lixenwraith/cants/world"
)

// placeAttempts bounds the retries when a chosen cell changed before the write
const placeAttempts = 8

// Food seeds area/tilesPerFood Food tiles on top of the map's own and replaces each one eaten
// All methods run on the main loop; only the viewport is shared with the renderer
type Food struct {
	grid         *world.Grid
	rng          *rand.Rand
	tilesPerFood int
	target       int
	level        int // target plus the food the map file already held

	mu       sync.Mutex
	viewport world.Rect

	placed *atomic.Int64
}

// NewFood creates an empty food system; Reset attaches it to a grid
func NewFood(tilesPerFood int, rng *rand.Rand, reg *status.Registry) *Food {
	return &Food{
		tilesPerFood: tilesPerFood,
		rng:          rng,
		placed:       reg.Ints.Get(status.KeyFoodPlaced),
	}
}

// Reset attaches g and seeds target Food tiles in addition to any already in the map
func (f *Food) Reset(g *world.Grid) error {
	f.grid = g
	f.target = g.Area() / f.tilesPerFood
	f.level = g.Count(world.TileFood) + f.target
	_, err := f.Reconcile()
	return err
}

// Target returns the number of Food tiles seeded at Reset
func (f *Food) Target() int {
	return f.target
}

// Level returns the number of Food tiles Reconcile restores
func (f *Food) Level() int {
	return f.level
}

// Active returns the number of Food tiles on the grid
func (f *Food) Active() int {
	if f.grid == nil {
		return 0
	}
	return f.grid.Count(world.TileFood)
}

// SetViewport records the cells currently on screen
func (f *Food) SetViewport(r world.Rect) {
	f.mu.Lock()
	f.viewport = r
	f.mu.Unlock()
}

func (f *Food) currentViewport() world.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewport
}

// Replenish places one Food tile regardless of how many are active
// Cells outside the viewport are preferred; when none is free any Free cell is used
func (f *Food) Replenish() error {
	if f.grid == nil {
		return nil
	}

	view := f.currentViewport()
	offscreen := func(c world.Cell) bool { return !view.Contains(c) }

	for i := 0; i < placeAttempts; i++ {
		c, err := f.grid.FindRandomFreeCellChecked(f.rng, offscreen)
		if errors.Is(err, world.ErrNoFreeCell) {
			c, err = f.grid.FindRandomFreeCellChecked(f.rng, nil)
		}
		if err != nil {
			return err
		}
		ok, err := f.grid.CompareAndSwap(c, world.TileFree, world.TileFood)
		if err != nil {
			return err
		}
		if ok {
			f.placed.Add(1)
			return nil
		}
	}
	return world.ErrNoFreeCell
}

// Reconcile tops the grid back up to Level and returns the number of tiles placed
// Covers consumption events lost to queue overflow
func (f *Food) Reconcile() (int, error) {
	if f.grid == nil {
		return 0, nil
	}
	n := 0
	for f.Active() < f.level {
		if err := f.Replenish(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// HandleEvent places one Food tile for every one consumed
func (f *Food) HandleEvent(_ Context, ev events.GameEvent) {
	if ev.Type != events.EventFoodConsumed {
		return
	}
	if err := f.Replenish(); err != nil {
		log.Printf("food: replenish failed: %v", err)
	}
}

// EventTypes implements events.Handler
func (f *Food) EventTypes() []events.EventType {
	return []events.EventType{events.EventFoodConsumed}
}
