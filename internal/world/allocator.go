package world

const (
	superGridSide     = 4   // super-grid is superGridSide x superGridSide cells
	superCellSize     = 32  // tiles per super-grid cell side
	roomChance        = 0.7 // probability that a cell gets a room on the first pass
	maxRepairAttempts = 100

	minRoomCount = 4
	maxRoomCount = superGridSide * superGridSide

	emergencyRoomSize = 20
)

// sizeClass is an inclusive range of room side lengths.
type sizeClass struct {
	min, max int
}

// roomSizeClasses are the small, medium and large room sizes. Each side of a
// room is drawn independently from its class.
var roomSizeClasses = [...]sizeClass{
	{9, 12},
	{13, 18},
	{19, 24},
}

// clampRoomRange forces roomsMin into [4,16] and roomsMax into [roomsMin,16].
func clampRoomRange(roomsMin, roomsMax int) (int, int) {
	roomsMin = max(minRoomCount, min(roomsMin, maxRoomCount))
	roomsMax = max(roomsMin, min(roomsMax, maxRoomCount))
	return roomsMin, roomsMax
}

// allocateRooms places non-overlapping rooms on the super-grid and returns
// them in row-major cell order. It never returns an empty slice.
func (d *Dungeon) allocateRooms(roomsMin, roomsMax int) []Room {
	roomsMin, roomsMax = clampRoomRange(roomsMin, roomsMax)

	var cells [superGridSide][superGridSide]Room
	for y := 0; y < superGridSide; y++ {
		for x := 0; x < superGridSide; x++ {
			cells[y][x] = Room{GridX: x, GridY: y}
		}
	}
	count := 0

	// First pass: each cell gets a room with probability roomChance, up to
	// roomsMax rooms. Later passes only run below roomsMin, so the cap holds.
	for y := 0; y < superGridSide; y++ {
		for x := 0; x < superGridSide; x++ {
			if d.rng.Float64() >= roomChance {
				continue
			}
			room := d.randomRoom(x, y)
			if count >= roomsMax || !d.fits(room) {
				continue
			}
			cells[y][x] = room
			count++
		}
	}

	// Repair pass: retry random empty cells
	for attempts := 0; count < roomsMin && attempts < maxRepairAttempts; attempts++ {
		rx := d.rng.Intn(superGridSide)
		ry := d.rng.Intn(superGridSide)
		if cells[ry][rx].Valid {
			continue
		}
		room := d.randomRoom(rx, ry)
		if d.fits(room) {
			cells[ry][rx] = room
			count++
		}
	}

	// Forced fill: smallest rooms in the remaining cells, row-major
	side := roomSizeClasses[0].min
	for y := 0; y < superGridSide && count < roomsMin; y++ {
		for x := 0; x < superGridSide && count < roomsMin; x++ {
			if cells[y][x].Valid {
				continue
			}
			room := centeredRoom(x, y, side, side)
			if d.fits(room) {
				cells[y][x] = room
				count++
			}
		}
	}

	rooms := make([]Room, 0, count)
	for y := 0; y < superGridSide; y++ {
		for x := 0; x < superGridSide; x++ {
			if cells[y][x].Valid {
				rooms = append(rooms, cells[y][x])
			}
		}
	}

	if len(rooms) == 0 {
		rooms = append(rooms, Room{
			X:      d.Width/2 - emergencyRoomSize/2,
			Y:      d.Height/2 - emergencyRoomSize/2,
			Width:  emergencyRoomSize,
			Height: emergencyRoomSize,
			GridX:  1,
			GridY:  1,
			Valid:  true,
		})
	}
	return rooms
}

// randomRoom draws a size class and an independent width and height, and
// centers the room in the given super-grid cell.
func (d *Dungeon) randomRoom(gridX, gridY int) Room {
	class := roomSizeClasses[d.rng.Intn(len(roomSizeClasses))]
	w := class.min + d.rng.Intn(class.max-class.min+1)
	h := class.min + d.rng.Intn(class.max-class.min+1)
	return centeredRoom(gridX, gridY, w, h)
}

func centeredRoom(gridX, gridY, w, h int) Room {
	return Room{
		X:      gridX*superCellSize + (superCellSize-w)/2,
		Y:      gridY*superCellSize + (superCellSize-h)/2,
		Width:  w,
		Height: h,
		GridX:  gridX,
		GridY:  gridY,
		Valid:  true,
	}
}

// fits reports whether the room lies inside the map. The far edge must stay
// strictly inside so rooms never touch the last row or column.
func (d *Dungeon) fits(room Room) bool {
	return room.X >= 0 && room.Y >= 0 &&
		room.X+room.Width < d.Width && room.Y+room.Height < d.Height
}
