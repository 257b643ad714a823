package ant

import (
	"math"
	"time"

	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/world"
)

// Pose is the continuous position, heading and animation state of one ant
type Pose struct {
	X, Y     float64 // World pixels
	Angle    int     // Degrees in [0,360), 0 points north, clockwise
	Frame    int     // Animation frame in [0,AnimFrames)
	AnimTime time.Time
	Scale    float64
}

// Cell returns the grid cell under the pose, possibly out of bounds
func (p Pose) Cell() world.Cell {
	return world.CellAt(p.X, p.Y)
}

// Heading unit vectors per whole degree, screen coordinates (y grows down)
var headingX, headingY [360]float64

func init() {
	for a := range 360 {
		rad := float64(a-90) * math.Pi / 180
		headingX[a] = math.Cos(rad)
		headingY[a] = math.Sin(rad)
	}
}

// Direction returns the unit vector of the heading
func (p Pose) Direction() (dx, dy float64) {
	a := NormalizeAngle(p.Angle)
	return headingX[a], headingY[a]
}

// animate advances the walk cycle once per AnimFrameInterval
func (p *Pose) animate(now time.Time) {
	if now.Sub(p.AnimTime) >= constants.AnimFrameInterval {
		p.Frame = (p.Frame + 1) % constants.AnimFrames
		p.AnimTime = now
	}
}

// NormalizeAngle maps any integer angle into [0,360)
func NormalizeAngle(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}
