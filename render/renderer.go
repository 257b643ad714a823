package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cants/engine"
	"github.com/lixenwraith/cants/status"
	"github.com/lixenwraith/cants/world"
)

// Source provides what one frame draws
type Source interface {
	View() (engine.View, bool)
	Grid() *world.Grid
}

// Renderer draws the simulation onto a tcell screen
// Only the main loop calls Draw
type Renderer struct {
	screen  tcell.Screen
	metrics *status.Registry // nil disables the debug line
}

// NewRenderer creates a renderer; pass metrics to show the debug line in the HUD
func NewRenderer(screen tcell.Screen, metrics *status.Registry) *Renderer {
	return &Renderer{screen: screen, metrics: metrics}
}

// Draw renders one frame and returns the visible cell window
// The window is empty when no map is loaded
func (r *Renderer) Draw(src Source) world.Rect {
	r.screen.Clear()
	cols, rows := r.screen.Size()

	v, ok := src.View()
	if !ok {
		r.text(0, 0, "no map loaded", tcell.StyleDefault)
		r.screen.Show()
		return world.Rect{}
	}

	vp := Viewport(v.Player.Pose.Cell(), v.Width, v.Height, cols, rows)
	r.drawTiles(src.Grid(), vp)
	r.drawAnts(v, vp)
	r.drawHUD(v, cols, rows)
	if v.Won {
		r.drawBanner(cols, rows)
	}
	r.screen.Show()
	return vp
}

func (r *Renderer) drawTiles(g *world.Grid, vp world.Rect) {
	region := g.Region(vp)
	for y, row := range region {
		for x, t := range row {
			c := world.Cell{Row: vp.Min.Row + y, Col: vp.Min.Col + x}
			glyph, style := TileStyle(t, (c.Row+c.Col)%2 == 1)
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// drawAnts draws NPCs first so the player stays visible on a shared cell
func (r *Renderer) drawAnts(v engine.View, vp world.Rect) {
	for _, n := range v.Npcs {
		c := n.Pose.Cell()
		if !vp.Contains(c) {
			continue
		}
		style := r.antStyle(c, RgbNpc)
		if n.Pose.Frame%2 == 1 {
			style = style.Bold(true)
		}
		r.screen.SetContent(c.Col-vp.Min.Col, c.Row-vp.Min.Row, HeadingGlyph(n.Pose.Angle), nil, style)
	}

	p := v.Player.Pose
	c := p.Cell()
	if vp.Contains(c) {
		style := r.antStyle(c, RgbPlayer).Bold(true)
		r.screen.SetContent(c.Col-vp.Min.Col, c.Row-vp.Min.Row, HeadingGlyph(p.Angle), nil, style)
	}
}

func (r *Renderer) antStyle(c world.Cell, fg RGB) tcell.Style {
	_, ground := TileStyle(world.TileFree, (c.Row+c.Col)%2 == 1)
	return ground.Foreground(fg.Color())
}

func (r *Renderer) drawHUD(v engine.View, cols, rows int) {
	y := rows - 1
	bg := tcell.StyleDefault.Background(RgbHUDBg.Color())
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, bg)
	}

	text := bg.Foreground(RgbHUDText.Color())
	x := r.text(0, y, " "+v.MapName+" ", text.Bold(true))

	food := fmt.Sprintf("food %d", v.FoodCount)
	progress := 1.0
	if v.Level < v.MaxLevel {
		food = fmt.Sprintf("food %d/%d", v.FoodCount, v.Threshold)
		progress = float64(v.FoodCount) / float64(max(v.Threshold, 1))
	}
	x = r.text(x+1, y, food, bg.Foreground(ProgressColor(progress)))
	x = r.text(x+2, y, fmt.Sprintf("level %d/%d", v.Level, v.MaxLevel), text)
	x = r.text(x+2, y, fmt.Sprintf("ants %d", len(v.Npcs)), text)

	if v.CanUpgrade() {
		x = r.text(x+2, y, "[space] upgrade", bg.Foreground(RgbPrompt.Color()).Bold(true))
	} else if v.Player.InAnthill && !v.Won && v.Level < v.MaxLevel {
		x = r.text(x+2, y, fmt.Sprintf("need %d more", v.Threshold-v.FoodCount), text)
	}

	if r.metrics != nil {
		r.text(x+2, y, r.metrics.Summary(debugKeys...), bg.Foreground(RgbDebug.Color()))
	}
}

var debugKeys = []string{
	status.KeyFrameMs,
	status.KeyPlayerTicks,
	status.KeyNpcTicks,
	status.KeyFoodActive,
	status.KeyFoodPlaced,
	status.KeyEventsDrops,
}

// WinMessage is shown once the anthill reaches its last level
const WinMessage = "Congratulations! You won!"

func (r *Renderer) drawBanner(cols, rows int) {
	style := tcell.StyleDefault.Background(RgbHUDBg.Color()).Foreground(RgbBanner.Color()).Bold(true)
	msg := " " + WinMessage + " "
	r.text(max((cols-len([]rune(msg)))/2, 0), max((rows-1)/2, 0), msg, style)
}

// text writes s at (x, y) clipped to the screen and returns the column after it
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	cols, _ := r.screen.Size()
	for _, ch := range s {
		if x >= cols {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
