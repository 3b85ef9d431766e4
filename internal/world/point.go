package world

// Point is an integer position, in tiles or pixels depending on context.
type Point struct {
	X, Y int
}

// Add returns the point translated by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// TileToPixel returns the pixel center of the tile at x, y.
func TileToPixel(x, y int) Point {
	return Point{X: x*TileSize + TileSize/2, Y: y*TileSize + TileSize/2}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
