package events

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/cants/world"
)

// ActorKind tells which kind of ant produced an event
type ActorKind int

const (
	ActorPlayer ActorKind = iota
	ActorNpc
)

func (k ActorKind) String() string {
	if k == ActorPlayer {
		return "player"
	}
	return "npc"
}

// FoodConsumedPayload identifies the consumed tile and the consumer
type FoodConsumedPayload struct {
	Cell  world.Cell
	Actor ActorKind
	ID    uuid.UUID // uuid.Nil for the player
}

// NpcSpawnedPayload carries the new NPC identity and spawn cell
type NpcSpawnedPayload struct {
	ID   uuid.UUID
	Cell world.Cell
}

// AnthillUpgradedPayload describes a completed upgrade
type AnthillUpgradedPayload struct {
	Level   int // Level after the upgrade
	Spent   int
	Spawned int
}

// MapLoadedPayload describes the freshly loaded map
type MapLoadedPayload struct {
	Name       string
	Width      int
	Height     int
	FoodTarget int
}
