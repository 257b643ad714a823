package colony

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/cants/ant"
	"github.com/lixenwraith/cants/events"
	"github.com/lixenwraith/cants/status"
	"github.com/lixenwraith/cants/world"
)

var (
	ErrNotInAnthill  = errors.New("player is not in the anthill")
	ErrNotEnoughFood = errors.New("not enough food")
	ErrMaxLevel      = errors.New("anthill is at maximum level")
)

// Context is what colony handlers need from the running simulation
type Context interface {
	Player() *ant.Player
}

// SpawnFunc creates one NPC at cell
type SpawnFunc func(cell world.Cell) error

// UpgradeResult describes a successful upgrade
type UpgradeResult struct {
	Level   int // Level after the upgrade
	Spent   int
	Spawned int
	Won     bool
}

// Progression converts collected food into anthill levels
type Progression struct {
	table    []int
	consumed *atomic.Int64
	level    *atomic.Int64
}

// NewProgression creates a controller over the given threshold table
// table[i] is the food needed to go from level i to i+1; its length is the maximum level
func NewProgression(table []int, reg *status.Registry) *Progression {
	return &Progression{
		table:    append([]int(nil), table...),
		consumed: reg.Ints.Get(status.KeyFoodConsumed),
		level:    reg.Ints.Get(status.KeyLevel),
	}
}

// MaxLevel returns the winning level
func (p *Progression) MaxLevel() int {
	return len(p.table)
}

// Threshold returns the food needed to upgrade from level, 0 at or past the maximum
func (p *Progression) Threshold(level int) int {
	if level < 0 || level >= len(p.table) {
		return 0
	}
	return p.table[level]
}

// Upgrade spends the threshold of the current level and hatches half as many NPCs at the entrance
// Spawn failures are logged and skipped; the upgrade itself still happens
func (p *Progression) Upgrade(player *ant.Player, hill *Anthill, spawn SpawnFunc) (UpgradeResult, error) {
	if hill.Level >= p.MaxLevel() {
		return UpgradeResult{}, ErrMaxLevel
	}
	if !player.InAnthill() {
		return UpgradeResult{}, ErrNotInAnthill
	}
	cost := p.table[hill.Level]
	if player.FoodCount() < cost {
		return UpgradeResult{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughFood, player.FoodCount(), cost)
	}

	player.SpendFood(cost)
	res := UpgradeResult{Spent: cost}
	for i := 0; i < cost/2; i++ {
		if err := spawn(hill.Entrance); err != nil {
			log.Printf("progression: spawn npc %d/%d: %v", i+1, cost/2, err)
			continue
		}
		res.Spawned++
	}

	hill.Level++
	p.level.Store(int64(hill.Level))
	res.Level = hill.Level
	res.Won = hill.Level == p.MaxLevel()
	return res, nil
}

// Reset records a fresh anthill level after a map load
func (p *Progression) Reset(hill *Anthill) {
	p.level.Store(int64(hill.Level))
}

// HandleEvent credits the player for food eaten by any ant
func (p *Progression) HandleEvent(ctx Context, ev events.GameEvent) {
	if ev.Type != events.EventFoodConsumed {
		return
	}
	ctx.Player().AddFood(1)
	p.consumed.Add(1)
}

// EventTypes implements events.Handler
func (p *Progression) EventTypes() []events.EventType {
	return []events.EventType{events.EventFoodConsumed}
}
