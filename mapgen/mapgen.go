// Package mapgen generates playable maps in the map file format
package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/cants/world"
)

// Kind selects the terrain generator
type Kind string

const (
	KindMeadow Kind = "meadow" // Open ground with scattered rocks
	KindWarren Kind = "warren" // Braided maze of tunnels
)

// MinSize is the smallest edge that fits the anthill, its clearing and a border
const MinSize = 7

var ErrTooSmall = fmt.Errorf("map must be at least %dx%d", MinSize, MinSize)

var ErrUnknownKind = errors.New("unknown map kind")

// Config controls one generation run
type Config struct {
	Width, Height int
	Kind          Kind
	Seed          int64 // 0 = random

	// RockDensity is the chance of a meadow cell becoming rock
	RockDensity float64

	// Braiding is the chance of a warren dead end being opened into a loop
	// 0.0 gives a perfect maze, 1.0 removes every dead end the topology allows
	Braiding float64

	// Food is the number of Food tiles scattered over reachable ground
	Food int
}

// DefaultConfig returns a meadow of the given size
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		Kind:        KindMeadow,
		RockDensity: 0.06,
		Braiding:    0.5,
	}
}

// Generate builds a map with a 3x3 anthill at the centre
// Free cells the ants cannot reach from the anthill are marked Enclosed so food never lands there
func Generate(cfg Config) (*world.Grid, error) {
	if cfg.Width < MinSize || cfg.Height < MinSize {
		return nil, fmt.Errorf("generate %dx%d: %w", cfg.Width, cfg.Height, ErrTooSmall)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var tiles [][]world.Tile
	switch cfg.Kind {
	case KindMeadow, "":
		tiles = meadow(cfg.Width, cfg.Height, cfg.RockDensity, rng)
	case KindWarren:
		tiles = warren(cfg.Width, cfg.Height, cfg.Braiding, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}

	door := placeAnthill(tiles)
	encloseUnreachable(tiles, door)

	g := world.NewGrid(cfg.Width, cfg.Height)
	for r, row := range tiles {
		for c, t := range row {
			if t != world.TileFree {
				g.Set(world.Cell{Row: r, Col: c}, t)
			}
		}
	}

	// Every remaining Free cell is reachable, so sampling terminates while any is left
	for range min(cfg.Food, g.Count(world.TileFree)) {
		g.Set(g.FindRandomFreeCell(rng), world.TileFood)
	}
	return g, nil
}

func filled(width, height int, t world.Tile) [][]world.Tile {
	tiles := make([][]world.Tile, height)
	for r := range tiles {
		tiles[r] = make([]world.Tile, width)
		for c := range tiles[r] {
			tiles[r][c] = t
		}
	}
	return tiles
}

// placeAnthill clears a 5x5 square at the centre and stamps the 3x3 anthill inside it
// Returns the Free cell right above the anthill entrance
func placeAnthill(tiles [][]world.Tile) world.Cell {
	h, w := len(tiles), len(tiles[0])
	cr, cc := h/2, w/2
	for r := cr - 2; r <= cr+2; r++ {
		for c := cc - 2; c <= cc+2; c++ {
			tiles[r][c] = world.TileFree
		}
	}
	for r := cr - 1; r <= cr+1; r++ {
		for c := cc - 1; c <= cc+1; c++ {
			tiles[r][c] = world.TileAnthill
		}
	}
	connectClearing(tiles, cr, cc)
	return world.Cell{Row: cr - 2, Col: cc}
}

// connectClearing opens the clearing edge midpoints outward until they meet open ground
// A warren may otherwise wall the clearing off from every tunnel
func connectClearing(tiles [][]world.Tile, cr, cc int) {
	h, w := len(tiles), len(tiles[0])
	for _, d := range []world.Cell{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}} {
		r, c := cr+3*d.Row, cc+3*d.Col
		for r > 0 && r < h-1 && c > 0 && c < w-1 && tiles[r][c] == world.TileWall {
			tiles[r][c] = world.TileFree
			r += d.Row
			c += d.Col
		}
	}
}

// encloseUnreachable flood-fills from start over passable tiles, 8-connected like NPC steps
func encloseUnreachable(tiles [][]world.Tile, start world.Cell) {
	h, w := len(tiles), len(tiles[0])
	seen := make([][]bool, h)
	for r := range seen {
		seen[r] = make([]bool, w)
	}

	queue := []world.Cell{start}
	seen[start.Row][start.Col] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := world.Cell{Row: cur.Row + dr, Col: cur.Col + dc}
				if n.Row < 0 || n.Row >= h || n.Col < 0 || n.Col >= w || seen[n.Row][n.Col] {
					continue
				}
				if !tiles[n.Row][n.Col].Passable() {
					continue
				}
				seen[n.Row][n.Col] = true
				queue = append(queue, n)
			}
		}
	}

	for r := range tiles {
		for c, t := range tiles[r] {
			if t == world.TileFree && !seen[r][c] {
				tiles[r][c] = world.TileEnclosed
			}
		}
	}
}
