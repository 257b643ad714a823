package world

import (
	"math/rand"
	"sync"
)

// Grid is the tile matrix of one loaded map
// Dimensions are fixed after construction; every tile access goes through the lock
// Per-tile counts are maintained on each write so Count is exact at all times
type Grid struct {
	mu     sync.RWMutex
	width  int
	height int
	tiles  []Tile // row-major: index = row*width + col
	counts [TileCount]int
}

// NewGrid creates a width x height grid filled with Free tiles
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
	g.counts[TileFree] = width * height
	return g
}

// newGridFromRows builds a grid from validated rows of equal length
func newGridFromRows(rows [][]Tile) *Grid {
	g := &Grid{
		width:  len(rows[0]),
		height: len(rows),
		tiles:  make([]Tile, 0, len(rows)*len(rows[0])),
	}
	for _, row := range rows {
		for _, t := range row {
			g.tiles = append(g.tiles, t)
			g.counts[t]++
		}
	}
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Area returns width*height
func (g *Grid) Area() int { return g.width * g.height }

// InBounds reports whether c addresses a tile of the grid
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// Get returns the tile at c
func (g *Grid) Get(c Cell) (Tile, error) {
	if !g.InBounds(c) {
		return TileWall, ErrOutOfBounds
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tiles[c.Row*g.width+c.Col], nil
}

// Set writes t at c
func (g *Grid) Set(c Cell, t Tile) error {
	if !g.InBounds(c) {
		return ErrOutOfBounds
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setLocked(c.Row*g.width+c.Col, t)
	return nil
}

// Update atomically replaces the tile at c with fn(old) and returns old
// fn runs under the write lock and must not touch the grid
func (g *Grid) Update(c Cell, fn func(Tile) Tile) (Tile, error) {
	if !g.InBounds(c) {
		return TileWall, ErrOutOfBounds
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := c.Row*g.width + c.Col
	old := g.tiles[idx]
	g.setLocked(idx, fn(old))
	return old, nil
}

// CompareAndSwap writes next at c only if the tile currently equals old
func (g *Grid) CompareAndSwap(c Cell, old, next Tile) (bool, error) {
	if !g.InBounds(c) {
		return false, ErrOutOfBounds
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := c.Row*g.width + c.Col
	if g.tiles[idx] != old {
		return false, nil
	}
	g.setLocked(idx, next)
	return true, nil
}

func (g *Grid) setLocked(idx int, t Tile) {
	g.counts[g.tiles[idx]]--
	g.tiles[idx] = t
	g.counts[t]++
}

// Count returns the number of cells holding t
func (g *Grid) Count(t Tile) int {
	if !t.Valid() {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.counts[t]
}

// Counts returns the per-tile histogram
func (g *Grid) Counts() [TileCount]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.counts
}

// FindFirst returns the first cell holding t in row-major order
func (g *Grid) FindFirst(t Tile) (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for i, tile := range g.tiles {
		if tile == t {
			return Cell{Row: i / g.width, Col: i % g.width}, true
		}
	}
	return Cell{}, false
}

// FindRandomFreeCell samples uniformly random cells until one is Free
// Never returns if the grid has no Free tile; use FindRandomFreeCellChecked where that matters
func (g *Grid) FindRandomFreeCell(rng *rand.Rand) Cell {
	for {
		c := Cell{Row: rng.Intn(g.height), Col: rng.Intn(g.width)}
		if t, _ := g.Get(c); t == TileFree {
			return c
		}
	}
}

// FindRandomFreeCellChecked picks uniformly among Free cells accepted by filter (nil accepts all)
// Returns ErrNoFreeCell when no cell qualifies
func (g *Grid) FindRandomFreeCellChecked(rng *rand.Rand, filter func(Cell) bool) (Cell, error) {
	g.mu.RLock()
	free := make([]Cell, 0, g.counts[TileFree])
	for i, t := range g.tiles {
		if t != TileFree {
			continue
		}
		c := Cell{Row: i / g.width, Col: i % g.width}
		if filter == nil || filter(c) {
			free = append(free, c)
		}
	}
	g.mu.RUnlock()

	if len(free) == 0 {
		return Cell{}, ErrNoFreeCell
	}
	return free[rng.Intn(len(free))], nil
}

// Rows returns a copy of the whole matrix
func (g *Grid) Rows() [][]Tile {
	return g.Region(Rect{Max: Cell{Row: g.height, Col: g.width}})
}

// Region copies the tiles inside r, clamped to the grid
// The result is indexed [row-r.Min.Row][col-r.Min.Col]
func (g *Grid) Region(r Rect) [][]Tile {
	r.Min.Row = max(r.Min.Row, 0)
	r.Min.Col = max(r.Min.Col, 0)
	r.Max.Row = min(r.Max.Row, g.height)
	r.Max.Col = min(r.Max.Col, g.width)
	if r.Empty() {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([][]Tile, r.Max.Row-r.Min.Row)
	for i := range out {
		start := (r.Min.Row+i)*g.width + r.Min.Col
		out[i] = append([]Tile(nil), g.tiles[start:start+r.Max.Col-r.Min.Col]...)
	}
	return out
}
