package mapgen

import (
	"math/rand"

	"github.com/lixenwraith/cants/world"
)

// meadow is open ground ringed by rock, with single rocks scattered at density
func meadow(width, height int, density float64, rng *rand.Rand) [][]world.Tile {
	tiles := filled(width, height, world.TileFree)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			border := r == 0 || c == 0 || r == height-1 || c == width-1
			if border || rng.Float64() < density {
				tiles[r][c] = world.TileWall
			}
		}
	}
	return tiles
}
