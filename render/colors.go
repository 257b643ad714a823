package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/world"
)

// Palette
var (
	RgbMeadow      = RGB{34, 68, 28}    // Free ground
	RgbMeadowLight = RGB{58, 102, 44}   // Alternate ground shade
	RgbWall        = RGB{112, 112, 112} // Rock
	RgbEnclosed    = RGB{46, 46, 52}    // Enclosed, unreachable ground
	RgbFood        = RGB{255, 196, 64}  // Grain
	RgbAnthill     = RGB{139, 90, 43}   // Mound
	RgbPlayer      = RGB{255, 80, 80}
	RgbNpc         = RGB{20, 20, 20}
	RgbHUDBg       = RGB{26, 27, 38}
	RgbHUDText     = RGB{230, 230, 230}
	RgbPrompt      = RGB{144, 238, 144}
	RgbBanner      = RGB{255, 255, 0}
	RgbDebug       = RGB{135, 206, 250}
)

// TileStyle returns the glyph and style of a tile; alt selects the checkered ground shade
func TileStyle(t world.Tile, alt bool) (rune, tcell.Style) {
	ground := RgbMeadow
	if alt {
		ground = RgbMeadowLight
	}
	base := tcell.StyleDefault.Background(ground.Color())

	switch t {
	case world.TileWall:
		return '█', base.Foreground(RgbWall.Color())
	case world.TileEnclosed:
		return '░', tcell.StyleDefault.Background(RgbEnclosed.Color()).Foreground(RgbWall.Color())
	case world.TileFood:
		return '•', base.Foreground(RgbFood.Color())
	case world.TileAnthill:
		return '▲', base.Foreground(RgbAnthill.Color())
	default:
		return ' ', base
	}
}

// ProgressColor returns the HUD meter color for progress in [0, 1]
// Red when empty, through yellow, to green when the upgrade is affordable
func ProgressColor(progress float64) tcell.Color {
	if progress <= 0 {
		return RgbHUDText.Color()
	}
	if progress > 1 {
		progress = 1
	}
	red := RGB{200, 50, 50}
	yellow := RGB{255, 215, 0}
	green := RGB{50, 220, 50}
	if progress < 0.5 {
		return red.Blend(yellow, progress/0.5).Color()
	}
	return yellow.Blend(green, (progress-0.5)/0.5).Color()
}

// headingGlyphs indexed by octant, 0 = north, clockwise
var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// HeadingGlyph returns the arrow closest to a heading in degrees (0 = north, clockwise)
func HeadingGlyph(angle int) rune {
	a := ((angle % 360) + 360) % 360
	return headingGlyphs[((a+22)/45)%8]
}
