package world

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any access outside [0,width)x[0,height)
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrNoFreeCell is returned by the checked free-cell search when the grid has no Free tile
	ErrNoFreeCell = errors.New("no free cell")

	// ErrNoAnthill is returned when a loaded map holds no Anthill tile
	ErrNoAnthill = errors.New("map has no anthill")
)

// FormatError describes a malformed map source
// Line is 1-based; zero when the error concerns the whole source
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("map format: %s", e.Msg)
	}
	return fmt.Sprintf("map format: line %d: %s", e.Line, e.Msg)
}
