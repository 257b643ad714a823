package mapgen

import (
	"math/rand"

	"github.com/lixenwraith/cants/world"
)

type point struct {
	X, Y int
}

var (
	jumps = []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	ortho = []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// warren carves a braided maze of one-cell tunnels
// The maze spans the largest odd sub-rectangle; a leftover even row or column stays rock
func warren(width, height int, braiding float64, rng *rand.Rand) [][]world.Tile {
	tiles := filled(width, height, world.TileWall)
	rows, cols := ensureOdd(height), ensureOdd(width)

	start := point{(cols / 2) | 1, (rows / 2) | 1}
	if start.X >= cols-1 {
		start.X = cols - 2
	}
	if start.Y >= rows-1 {
		start.Y = rows - 2
	}
	carve(tiles, rows, cols, start, rng)
	if braiding > 0 {
		braid(tiles, rows, cols, braiding, rng)
	}
	return tiles
}

// carve runs the recursive backtracker, producing a uniform spanning tree over odd cells
func carve(tiles [][]world.Tile, rows, cols int, start point, rng *rand.Rand) {
	stack := []point{start}
	tiles[start.Y][start.X] = world.TileFree

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]point, 0, 4)
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && tiles[ny][nx] == world.TileWall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		tiles[curr.Y+d.Y/2][curr.X+d.X/2] = world.TileFree
		next := point{curr.X + d.X, curr.Y + d.Y}
		tiles[next.Y][next.X] = world.TileFree
		stack = append(stack, next)
	}
}

// braid opens dead ends into loops with the given probability, never creating plazas or pillars
func braid(tiles [][]world.Tile, rows, cols int, probability float64, rng *rand.Rand) {
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if tiles[y][x] == world.TileWall {
				continue
			}
			exits := 0
			for _, d := range ortho {
				if tiles[y+d.Y][x+d.X] == world.TileFree {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]point, 0, 4)
			for _, jd := range jumps {
				nx, ny := x+jd.X, y+jd.Y
				wx, wy := x+jd.X/2, y+jd.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if tiles[ny][nx] == world.TileFree && tiles[wy][wx] == world.TileWall && canRemoveWall(tiles, rows, cols, wx, wy) {
					candidates = append(candidates, point{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				tiles[c.Y][c.X] = world.TileFree
			}
		}
	}
}

// canRemoveWall rejects openings that would create a 2x2 plaza or leave an isolated pillar
func canRemoveWall(tiles [][]world.Tile, rows, cols, x, y int) bool {
	open := func(tx, ty int) bool {
		return tx >= 0 && tx < cols && ty >= 0 && ty < rows && tiles[ty][tx] == world.TileFree
	}

	for _, q := range []point{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}} {
		// Each 2x2 square containing (x, y), anchored at its top-left corner
		ax, ay := x+q.X, y+q.Y
		n := 0
		for _, o := range []point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			px, py := ax+o.X, ay+o.Y
			if (px == x && py == y) || open(px, py) {
				n++
			}
		}
		if n == 4 {
			return false
		}
	}

	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || tiles[ny][nx] != world.TileWall {
			continue
		}
		walls := 0
		for _, d2 := range ortho {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue
			}
			if mx >= 0 && mx < cols && my >= 0 && my < rows && tiles[my][mx] == world.TileWall {
				walls++
			}
		}
		if walls == 0 {
			return false
		}
	}
	return true
}

// ensureOdd rounds down to the nearest odd number, at least 3
func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
