package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventFoodConsumed signals a Food tile turned Free under an actor
	// Trigger: player or NPC tick through the tile-effect resolver
	// Consumer: Progression (food count), Food (replenish), audio | Payload: *FoodConsumedPayload
	EventFoodConsumed EventType = iota + 1

	// EventNpcSpawned signals a new NPC joined the registry
	// Trigger: anthill upgrade, debug spawn | Payload: *NpcSpawnedPayload
	EventNpcSpawned

	// EventAnthillUpgraded signals a successful upgrade
	// Trigger: Progression.Upgrade | Payload: *AnthillUpgradedPayload
	EventAnthillUpgraded

	// EventGameWon signals the anthill reached its maximum level
	// Trigger: Progression.Upgrade | Payload: nil
	EventGameWon

	// EventMapLoaded signals a completed map swap
	// Trigger: Simulation.LoadMap | Payload: *MapLoadedPayload
	EventMapLoaded
)

func (t EventType) String() string {
	switch t {
	case EventFoodConsumed:
		return "FoodConsumed"
	case EventNpcSpawned:
		return "NpcSpawned"
	case EventAnthillUpgraded:
		return "AnthillUpgraded"
	case EventGameWon:
		return "GameWon"
	case EventMapLoaded:
		return "MapLoaded"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64 // Frame number of the main loop when pushed, 0 from actor tasks
	Timestamp time.Time
}
