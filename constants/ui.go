package constants

import "time"

// Terminal Input
const (
	// KeyInitialRepeat is the grace period before the terminal starts auto-repeating a held key
	KeyInitialRepeat = 600 * time.Millisecond

	// KeyRepeatGap is the longest gap between auto-repeats before a key counts as released
	KeyRepeatGap = 150 * time.Millisecond
)

// HUD
const (
	// HUDHeight is the number of terminal rows reserved for the status bar
	HUDHeight = 1
)
