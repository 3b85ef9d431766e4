package world

import (
	"context"
	"math/rand"
	"testing"
)

func generate(seed int64, width, height, roomsMin, roomsMax int) *Dungeon {
	d := NewDungeon(width, height, rand.New(rand.NewSource(seed)))
	d.Generate(context.Background(), roomsMin, roomsMax)
	return d
}

func TestDungeonReproducibility(t *testing.T) {
	// Generate two dungeons with the same seed
	seed := int64(12345)

	d1 := generate(seed, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)
	d2 := generate(seed, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)

	// Verify same number of rooms
	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}

	// Verify rooms are in same positions
	for i := range d1.Rooms {
		if d1.Rooms[i] != d2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, d1.Rooms[i], d2.Rooms[i])
		}
	}

	// Verify tiles are identical
	for y := 0; y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.Tiles[y][x] != d2.Tiles[y][x] {
				t.Errorf("Tile mismatch at (%d,%d): %v != %v", x, y, d1.Tiles[y][x], d2.Tiles[y][x])
			}
		}
	}

	// Verify graphs and centers are identical
	for i := range d1.Rooms {
		n1, n2 := d1.Graph.Neighbors(i), d2.Graph.Neighbors(i)
		if len(n1) != len(n2) {
			t.Fatalf("Room %d neighbor count mismatch: %v != %v", i, n1, n2)
		}
		for k := range n1 {
			if n1[k] != n2[k] {
				t.Errorf("Room %d neighbors mismatch: %v != %v", i, n1, n2)
			}
		}
	}
	c1, c2 := d1.RoomCenters(), d2.RoomCenters()
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Errorf("Center %d mismatch: %v != %v", i, c1[i], c2[i])
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	// Generate two dungeons with different seeds - they should be different
	d1 := generate(12345, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)
	d2 := generate(54321, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)

	identical := len(d1.Rooms) == len(d2.Rooms)
	for y := 0; identical && y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.Tiles[y][x] != d2.Tiles[y][x] {
				identical = false
				break
			}
		}
	}

	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestGenerateDefaultScenario(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d := generate(seed, 120, 80, 6, 16)

		centers := d.RoomCenters()
		if len(centers) < 6 {
			t.Fatalf("seed=%d: got %d room centers, want >= 6", seed, len(centers))
		}
		if !d.Graph.IsConnected() {
			t.Errorf("seed=%d: room graph has %d components, want 1", seed, d.Graph.Components())
		}
		for i := range centers {
			for j := range centers {
				if i != j && !d.Graph.Connected(i, j) {
					t.Errorf("seed=%d: rooms %d and %d not connected", seed, i, j)
				}
			}
		}
		for i, c := range centers {
			if !d.IsPassablePixel(float64(c.X), float64(c.Y)) {
				t.Errorf("seed=%d: center %d at %v is not passable", seed, i, c)
			}
		}
	}
}

func TestGenerateTinyMapFallsBackToSingleRoom(t *testing.T) {
	d := generate(7, 20, 20, 6, 16)

	if len(d.Rooms) != 1 {
		t.Fatalf("got %d rooms, want the single emergency room", len(d.Rooms))
	}
	room := d.Rooms[0]
	if room.Width != emergencyRoomSize || room.Height != emergencyRoomSize {
		t.Errorf("emergency room size = %dx%d, want %dx%d",
			room.Width, room.Height, emergencyRoomSize, emergencyRoomSize)
	}
	cx, cy := room.Center()
	if !d.IsPassable(cx, cy) {
		t.Errorf("emergency room center (%d,%d) is not passable", cx, cy)
	}
	if d.Graph.Len() != 1 || d.Graph.EdgeCount() != 0 {
		t.Errorf("graph = %d rooms / %d edges, want 1 / 0", d.Graph.Len(), d.Graph.EdgeCount())
	}
}

func TestGenerateMinimumRoomCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxMin        int
	}{
		// Only the top two super-grid rows fit in an 80-tile-high map.
		{"120x80", 120, 80, 8},
		{"128x128", 128, 128, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for roomsMin := minRoomCount; roomsMin <= tt.maxMin; roomsMin++ {
				for seed := int64(0); seed < 5; seed++ {
					d := generate(seed, tt.width, tt.height, roomsMin, 16)
					if len(d.Rooms) < roomsMin {
						t.Errorf("roomsMin=%d seed=%d: got %d rooms", roomsMin, seed, len(d.Rooms))
					}
				}
			}
		})
	}
}

func TestGenerateBoundsSafety(t *testing.T) {
	d := generate(99, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)

	if len(d.Tiles) != d.Height {
		t.Fatalf("got %d rows, want %d", len(d.Tiles), d.Height)
	}
	for y, row := range d.Tiles {
		if len(row) != d.Width {
			t.Fatalf("row %d has %d tiles, want %d", y, len(row), d.Width)
		}
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {d.Width, 0}, {0, d.Height}, {-100, -100}, {d.Width + 5, d.Height + 5}}
	for _, p := range outside {
		if d.IsPassable(p[0], p[1]) {
			t.Errorf("IsPassable(%d,%d) = true outside the map", p[0], p[1])
		}
		if got := d.GetTile(p[0], p[1]); got != TileWall {
			t.Errorf("GetTile(%d,%d) = %q, want wall", p[0], p[1], got.Rune())
		}
	}

	pixels := [][2]float64{{-0.5, 10}, {10, -0.01}, {float64(d.Width * TileSize), 10}, {10, float64(d.Height * TileSize)}}
	for _, p := range pixels {
		if d.IsPassablePixel(p[0], p[1]) {
			t.Errorf("IsPassablePixel(%v,%v) = true outside the map", p[0], p[1])
		}
	}
}

func TestRoomTilesStayEmpty(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		d := generate(seed, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)
		for i, room := range d.Rooms {
			for y := room.Y; y < room.Y+room.Height; y++ {
				for x := room.X; x < room.X+room.Width; x++ {
					if !d.IsPassable(x, y) {
						t.Fatalf("seed=%d: room %d tile (%d,%d) is a wall", seed, i, x, y)
					}
				}
			}
		}
	}
}

func TestMonotoneCarving(t *testing.T) {
	d := NewDungeon(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(2024)))

	d.Rooms = d.allocateRooms(DefaultRoomsMin, DefaultRoomsMax)
	for _, room := range d.Rooms {
		d.carveRoom(room)
	}
	afterRooms := snapshot(d)

	d.connectRooms()
	afterCorridors := snapshot(d)
	for y := range afterRooms {
		for x := range afterRooms[y] {
			if afterRooms[y][x] == TileEmpty && afterCorridors[y][x] != TileEmpty {
				t.Fatalf("corridor carving walled (%d,%d)", x, y)
			}
		}
	}

	d.pruneDeadEnds()
	for y := range afterCorridors {
		for x := range afterCorridors[y] {
			before, after := afterCorridors[y][x], d.Tiles[y][x]
			if before == TileWall && after == TileEmpty {
				t.Fatalf("pruning opened (%d,%d)", x, y)
			}
			if before == TileEmpty && after == TileWall && d.RoomIndexAt(x, y) >= 0 {
				t.Fatalf("pruning walled room tile (%d,%d)", x, y)
			}
		}
	}
}

func TestStartRoomOnEdge(t *testing.T) {
	d := generate(5, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)

	for i := 0; i < 20; i++ {
		idx := d.StartRoom()
		if idx < 0 || idx >= len(d.Rooms) {
			t.Fatalf("StartRoom() = %d, out of range", idx)
		}
		if !d.Rooms[idx].OnEdge() {
			t.Errorf("StartRoom() = %d at grid (%d,%d), want an edge room",
				idx, d.Rooms[idx].GridX, d.Rooms[idx].GridY)
		}
	}
}

func TestRandomPointInRoom(t *testing.T) {
	d := generate(8, DefaultWidth, DefaultHeight, DefaultRoomsMin, DefaultRoomsMax)

	for i, room := range d.Rooms {
		x, y := d.RandomPointInRoom(i)
		if !room.Contains(x, y) || !d.IsPassable(x, y) {
			t.Errorf("RandomPointInRoom(%d) = (%d,%d), not a floor tile of the room", i, x, y)
		}
	}
	if x, y := d.RandomPointInRoom(len(d.Rooms)); x != -1 || y != -1 {
		t.Errorf("RandomPointInRoom(out of range) = (%d,%d), want (-1,-1)", x, y)
	}
}

func snapshot(d *Dungeon) [][]Tile {
	out := make([][]Tile, len(d.Tiles))
	for y := range d.Tiles {
		out[y] = append([]Tile(nil), d.Tiles[y]...)
	}
	return out
}
