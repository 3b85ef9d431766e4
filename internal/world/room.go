package world

// Room represents a rectangular room in the dungeon.
type Room struct {
	X, Y          int  // Top-left corner position in tiles
	Width, Height int  // Dimensions of the room in tiles
	GridX, GridY  int  // Super-grid cell the room was placed in
	Valid         bool // False for super-grid cells that hold no room
}

// Center returns the center tile of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// PixelCenter returns the center of the room's center tile in pixels.
func (r Room) PixelCenter() Point {
	cx, cy := r.Center()
	return TileToPixel(cx, cy)
}

// Contains returns true if the given tile is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// PixelBounds returns the room's rectangle in pixels.
func (r Room) PixelBounds() (left, top, right, bottom float64) {
	return float64(r.X * TileSize), float64(r.Y * TileSize),
		float64((r.X + r.Width) * TileSize), float64((r.Y + r.Height) * TileSize)
}

// ContainsPixel returns true if the pixel position lies within the room's
// pixel rectangle, edges included.
func (r Room) ContainsPixel(px, py float64) bool {
	left, top, right, bottom := r.PixelBounds()
	return px >= left && px <= right && py >= top && py <= bottom
}

// OnEdge returns true if the room sits in an outer super-grid cell.
func (r Room) OnEdge() bool {
	last := superGridSide - 1
	return r.GridX == 0 || r.GridX == last || r.GridY == 0 || r.GridY == last
}
