package colony

import (
	"fmt"

	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/world"
)

// Anthill is the player's nest: NPCs hatch at its entrance, upgrades raise its level
type Anthill struct {
	Tile     world.Cell // First anthill tile in row-major order
	Entrance world.Cell
	X, Y     float64 // Sprite origin in world pixels
	Level    int     // Main loop only
}

// FindAnthill locates the anthill of g
// The entrance is the cell right of the first anthill tile, or the tile itself on the right edge
func FindAnthill(g *world.Grid) (*Anthill, error) {
	tile, ok := g.FindFirst(world.TileAnthill)
	if !ok {
		return nil, fmt.Errorf("find anthill: %w", world.ErrNoAnthill)
	}

	entrance := world.Cell{Row: tile.Row, Col: tile.Col + 1}
	if !g.InBounds(entrance) {
		entrance = tile
	}
	return &Anthill{
		Tile:     tile,
		Entrance: entrance,
		X:        float64((entrance.Col - 1) * constants.CellSize),
		Y:        float64(entrance.Row * constants.CellSize),
	}, nil
}

// PlayerSpawn returns the pixel position where the player starts
func (a *Anthill) PlayerSpawn() (x, y float64) {
	return (float64(a.Entrance.Col) + 0.5) * constants.CellSize, float64(a.Entrance.Row * constants.CellSize)
}
