package constants

// World Geometry
const (
	// CellSize is the edge of one grid cell in world pixels
	CellSize = 50

	// TilesPerFood is the grid area that sustains one active food tile
	TilesPerFood = 90
)

// Progression
var (
	// DefaultLevelTable holds the food needed to upgrade the anthill from each level
	// Its length is the maximum anthill level
	DefaultLevelTable = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
)
