package world

import "fmt"

// Tile is the content of one grid cell, values match the map file codes
type Tile int8

const (
	TileFree Tile = iota
	TileWall
	TileEnclosed
	TileFood
	TileAnthill

	// TileCount is the number of valid tile codes
	TileCount
)

func (t Tile) String() string {
	switch t {
	case TileFree:
		return "Free"
	case TileWall:
		return "Wall"
	case TileEnclosed:
		return "Enclosed"
	case TileFood:
		return "Food"
	case TileAnthill:
		return "Anthill"
	default:
		return fmt.Sprintf("Tile(%d)", int(t))
	}
}

// Valid reports whether t is a known tile code
func (t Tile) Valid() bool {
	return t >= TileFree && t < TileCount
}

// Passable reports whether an NPC may choose a cell holding t as its next step
func (t Tile) Passable() bool {
	return t != TileWall && t != TileAnthill
}
