package constants

// Player Motion
const (
	// PlayerVelMax is the forward speed in pixels per tick, reverse runs at half of it
	PlayerVelMax = 2

	// PlayerTurnDegrees is the heading change per tick while a turn key is held
	PlayerTurnDegrees = 1

	// PlayerScale is the render scale of the player ant
	PlayerScale = 1.59
)

// NPC Motion
const (
	// NpcTurnStep is the heading change per tick in the TURN state
	NpcTurnStep = 5

	// NpcScaleMin and NpcScaleSpan bound the random NPC render scale [min, min+span)
	NpcScaleMin  = 0.75
	NpcScaleSpan = 1.0
)
