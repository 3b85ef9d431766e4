package world

const maxPrunePasses = 50

// pruneDeadEnds walls off corridor tiles with at most one passable neighbor,
// repeating until a pass changes nothing or maxPrunePasses is reached. Room
// tiles are never touched. It returns the number of tiles removed and the
// number of passes run.
func (d *Dungeon) pruneDeadEnds() (removed, passes int) {
	inRoom := d.roomMask()

	changed := true
	for changed && passes < maxPrunePasses {
		changed = false
		passes++

		for y := 1; y < d.Height-1; y++ {
			for x := 1; x < d.Width-1; x++ {
				if d.Tiles[y][x] != TileEmpty || inRoom[y][x] {
					continue
				}
				if d.passableNeighbors(x, y) <= 1 {
					d.Tiles[y][x] = TileWall
					removed++
					changed = true
				}
			}
		}
	}
	return removed, passes
}

// passableNeighbors counts the 4-connected floor tiles around x, y.
func (d *Dungeon) passableNeighbors(x, y int) int {
	count := 0
	for _, dir := range cardinals {
		if d.IsPassable(x+dir.X, y+dir.Y) {
			count++
		}
	}
	return count
}

// roomMask marks every in-bounds tile covered by a room.
func (d *Dungeon) roomMask() [][]bool {
	mask := make([][]bool, d.Height)
	for y := range mask {
		mask[y] = make([]bool, d.Width)
	}
	for _, room := range d.Rooms {
		for y := max(room.Y, 0); y < min(room.Y+room.Height, d.Height); y++ {
			for x := max(room.X, 0); x < min(room.X+room.Width, d.Width); x++ {
				mask[y][x] = true
			}
		}
	}
	return mask
}

var cardinals = [...]Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
