package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonadventure/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 120
	DefaultHeight = 80

	// Default room count range
	DefaultRoomsMin = 6
	DefaultRoomsMax = 16
)

// Dungeon represents the game map. A Dungeon is owned by the level that
// generated it; the tiles are only mutated during Generate.
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	Graph  *RoomGraph
	rng    *rand.Rand
}

// NewDungeon creates a new dungeon filled with walls. A nil rng is replaced by
// a time-seeded source.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make([]Room, 0),
		Graph:  NewRoomGraph(0),
		rng:    rng,
	}
}

// Generate creates the dungeon layout: rooms on a coarse super-grid, greedy
// nearest-neighbor corridors, dead-end pruning and the room connectivity graph.
// It never fails; impossible bounds degrade to a single emergency room.
func (d *Dungeon) Generate(ctx context.Context, roomsMin, roomsMax int) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	// Place rooms
	d.Rooms = d.allocateRooms(roomsMin, roomsMax)
	for _, room := range d.Rooms {
		d.carveRoom(room)
	}

	// Connect rooms with corridors
	d.connectRooms()

	// Erode corridor stubs
	pruned, passes := d.pruneDeadEnds()

	d.Graph = d.buildRoomGraph()

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.rooms_min", roomsMin),
		attribute.Int("dungeon.rooms_max", roomsMax),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.graph_edges", d.Graph.EdgeCount()),
		attribute.Int("dungeon.pruned_tiles", pruned),
		attribute.Int("dungeon.prune_passes", passes),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// IsPassable returns true if the given tile can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	return d.Tiles[y][x].IsPassable()
}

// IsPassablePixel returns true if the tile under the pixel position can be
// walked on.
func (d *Dungeon) IsPassablePixel(px, py float64) bool {
	tx := int(math.Floor(px / TileSize))
	ty := int(math.Floor(py / TileSize))
	return d.IsPassable(tx, ty)
}

// GetTile returns the tile at the given position.
func (d *Dungeon) GetTile(x, y int) Tile {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return TileWall
	}
	return d.Tiles[y][x]
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RoomCenters returns the pixel center of every room, indexed like Rooms.
func (d *Dungeon) RoomCenters() []Point {
	centers := make([]Point, len(d.Rooms))
	for i, room := range d.Rooms {
		centers[i] = room.PixelCenter()
	}
	return centers
}

// roomCenterTiles returns the center tile of every room, indexed like Rooms.
func (d *Dungeon) roomCenterTiles() []Point {
	centers := make([]Point, len(d.Rooms))
	for i, room := range d.Rooms {
		x, y := room.Center()
		centers[i] = Point{X: x, Y: y}
	}
	return centers
}

// StartRoom picks the room the player starts in: a random room on the outer
// ring of the super-grid, or the first room when none is on the edge.
func (d *Dungeon) StartRoom() int {
	if len(d.Rooms) == 0 {
		return -1
	}
	var edge []int
	for i, room := range d.Rooms {
		if room.OnEdge() {
			edge = append(edge, i)
		}
	}
	if len(edge) == 0 {
		return 0
	}
	return edge[d.rng.Intn(len(edge))]
}

// RandomPointInRoom returns a random passable tile within the specified room.
func (d *Dungeon) RandomPointInRoom(roomIndex int) (int, int) {
	if roomIndex < 0 || roomIndex >= len(d.Rooms) {
		return -1, -1
	}
	room := d.Rooms[roomIndex]

	// Try random points until we find a passable one (max 100 attempts)
	for i := 0; i < 100; i++ {
		x := room.X + d.rng.Intn(room.Width)
		y := room.Y + d.rng.Intn(room.Height)
		if d.IsPassable(x, y) {
			return x, y
		}
	}

	// Fallback to room center
	return room.Center()
}

// carveRoom sets all in-bounds tiles within the room to floor.
func (d *Dungeon) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.setEmpty(x, y)
		}
	}
}

// setEmpty turns the tile into floor, ignoring positions outside the map.
func (d *Dungeon) setEmpty(x, y int) {
	if x >= 0 && x < d.Width && y >= 0 && y < d.Height {
		d.Tiles[y][x] = TileEmpty
	}
}
