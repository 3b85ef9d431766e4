package world

// CorridorWidth is the width of every corridor in tiles.
const CorridorWidth = 3

// corridorLink is one corridor carved from an already-connected center to a
// new one.
type corridorLink struct {
	from, to Point
}

// connectRooms joins every room into one component. Centers are shuffled, then
// linked greedily by linkCenters.
func (d *Dungeon) connectRooms() {
	centers := d.roomCenterTiles()
	if len(centers) == 0 {
		return
	}
	d.rng.Shuffle(len(centers), func(i, j int) {
		centers[i], centers[j] = centers[j], centers[i]
	})
	d.linkCenters(centers)
}

// linkCenters walks centers in order and carves a corridor from each one's
// nearest already-connected center. The result is a greedy walk, not a
// minimum spanning tree.
func (d *Dungeon) linkCenters(centers []Point) []corridorLink {
	if len(centers) == 0 {
		return nil
	}
	connected := []Point{centers[0]}
	links := make([]corridorLink, 0, len(centers)-1)
	for _, target := range centers[1:] {
		nearest := nearestPoint(connected, target)
		d.carveCorridor(nearest, target)
		links = append(links, corridorLink{from: nearest, to: target})
		connected = append(connected, target)
	}
	return links
}

// nearestPoint returns the point of candidates closest to target by Euclidean
// distance. Ties go to the earliest candidate.
func nearestPoint(candidates []Point, target Point) Point {
	best := candidates[0]
	bestDist := squaredDistance(best, target)
	for _, c := range candidates[1:] {
		if dist := squaredDistance(c, target); dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func squaredDistance(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// carveCorridor creates an L-shaped corridor between two tiles, turning at a
// random elbow.
func (d *Dungeon) carveCorridor(from, to Point) {
	d.carveLCorridor(from, to, d.rng.Intn(2) == 0)
}

// carveLCorridor carves from -> to along one axis then the other. The elbow is
// (to.X, from.Y) when horizontalFirst, else (from.X, to.Y).
func (d *Dungeon) carveLCorridor(from, to Point, horizontalFirst bool) {
	half := CorridorWidth / 2
	if horizontalFirst {
		d.carveHorizontalTunnel(from.X, to.X, from.Y, half)
		d.carveVerticalTunnel(from.Y, to.Y, to.X, half)
		d.carveSquare(to.X, from.Y, half)
	} else {
		d.carveVerticalTunnel(from.Y, to.Y, from.X, half)
		d.carveHorizontalTunnel(from.X, to.X, to.Y, half)
		d.carveSquare(from.X, to.Y, half)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel centered on row y.
func (d *Dungeon) carveHorizontalTunnel(x1, x2, y, half int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		for dy := -half; dy <= half; dy++ {
			d.setEmpty(x, y+dy)
		}
	}
}

// carveVerticalTunnel carves a vertical tunnel centered on column x.
func (d *Dungeon) carveVerticalTunnel(y1, y2, x, half int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for dx := -half; dx <= half; dx++ {
			d.setEmpty(x+dx, y)
		}
	}
}

// carveSquare fills the elbow of a corridor so the turn has no notch.
func (d *Dungeon) carveSquare(cx, cy, half int) {
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			d.setEmpty(cx+dx, cy+dy)
		}
	}
}
