package constants

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the render/input loop frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ActorTickInterval is the period of every actor task (player and each NPC)
	ActorTickInterval = 10 * time.Millisecond

	// AnimFrameInterval is how long one ant animation frame is shown
	AnimFrameInterval = 100 * time.Millisecond

	// AnimFrames is the number of frames in the ant walk cycle
	AnimFrames = 4
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 4096

	// EventBufferMask is the bitmask for fast modulo operations (4096 - 1)
	EventBufferMask = 4095
)
