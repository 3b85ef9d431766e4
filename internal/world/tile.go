// Package world provides dungeon generation and map management.
package world

// TileSize is the edge length of one tile in pixels. Renderers convert tiles to
// pixels and movement code converts pixels to tiles with this same value.
const TileSize = 16

// Tile represents a single map tile.
type Tile rune

const (
	// TileEmpty represents a passable floor tile.
	TileEmpty Tile = '.'
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileEmpty
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
