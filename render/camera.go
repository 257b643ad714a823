package render

import (
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/world"
)

// Viewport returns the grid cells visible on a cols x rows terminal, centred on focus
// One terminal cell shows one grid cell; the HUD rows are reserved at the bottom
// The window is clamped so it never scrolls past the grid edges
func Viewport(focus world.Cell, gridW, gridH, cols, rows int) world.Rect {
	w := min(max(cols, 0), gridW)
	h := min(max(rows-constants.HUDHeight, 0), gridH)

	col := clampInt(focus.Col-w/2, 0, gridW-w)
	row := clampInt(focus.Row-h/2, 0, gridH-h)
	return world.Rect{
		Min: world.Cell{Row: row, Col: col},
		Max: world.Cell{Row: row + h, Col: col + w},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
