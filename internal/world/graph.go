package world

import (
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"
)

// RoomGraph is an undirected adjacency structure over room indices. Two rooms
// are adjacent when their center tiles are joined by floor.
type RoomGraph struct {
	adj []mapset.Set[int]
}

// NewRoomGraph creates a graph of n rooms with no edges.
func NewRoomGraph(n int) *RoomGraph {
	adj := make([]mapset.Set[int], n)
	for i := range adj {
		adj[i] = mapset.New[int]()
	}
	return &RoomGraph{adj: adj}
}

// Len returns the number of rooms in the graph.
func (g *RoomGraph) Len() int {
	return len(g.adj)
}

// Connect adds an undirected edge between rooms i and j.
func (g *RoomGraph) Connect(i, j int) {
	if i == j || !g.valid(i) || !g.valid(j) {
		return
	}
	g.adj[i].Put(j)
	g.adj[j].Put(i)
}

// Connected returns true if rooms i and j share an edge.
func (g *RoomGraph) Connected(i, j int) bool {
	if !g.valid(i) || !g.valid(j) {
		return false
	}
	return g.adj[i].Has(j)
}

// Neighbors returns the rooms adjacent to room i in ascending order.
func (g *RoomGraph) Neighbors(i int) []int {
	if !g.valid(i) {
		return nil
	}
	nbs := make([]int, 0, g.adj[i].Size())
	g.adj[i].Each(func(j int) {
		nbs = append(nbs, j)
	})
	slices.Sort(nbs)
	return nbs
}

// EdgeCount returns the number of undirected edges.
func (g *RoomGraph) EdgeCount() int {
	total := 0
	for _, set := range g.adj {
		total += set.Size()
	}
	return total / 2
}

// Components returns the number of connected components.
func (g *RoomGraph) Components() int {
	seen := make([]bool, len(g.adj))
	components := 0
	for root := range g.adj {
		if seen[root] {
			continue
		}
		components++
		seen[root] = true
		queue := []int{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range g.Neighbors(cur) {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return components
}

// IsConnected returns true if every room can reach every other room.
func (g *RoomGraph) IsConnected() bool {
	return g.Components() <= 1
}

func (g *RoomGraph) valid(i int) bool {
	return g != nil && i >= 0 && i < len(g.adj)
}

// floorPath implements the paths.Pather interface over the dungeon floor.
type floorPath struct {
	dungeon *Dungeon
	nbs     paths.Neighbors
}

func (fp *floorPath) passable(p gruid.Point) bool {
	return fp.dungeon.IsPassable(p.X, p.Y)
}

func (fp *floorPath) Neighbors(p gruid.Point) []gruid.Point {
	if !fp.passable(p) {
		return nil
	}
	return fp.nbs.Cardinal(p, fp.passable)
}

// buildRoomGraph records an edge for every pair of rooms whose center tiles
// are floor and lie in the same 4-connected floor component. One component
// flood per room gives the same edges as a breadth-first search per pair.
func (d *Dungeon) buildRoomGraph() *RoomGraph {
	centers := d.roomCenterTiles()
	graph := NewRoomGraph(len(centers))

	pr := paths.NewPathRange(gruid.NewRange(0, 0, d.Width, d.Height))
	fp := &floorPath{dungeon: d}

	for i := 0; i < len(centers); i++ {
		from := centers[i]
		if !d.IsPassable(from.X, from.Y) {
			continue
		}
		pr.CCMap(fp, gruid.Point{X: from.X, Y: from.Y})
		for j := i + 1; j < len(centers); j++ {
			to := centers[j]
			if !d.IsPassable(to.X, to.Y) {
				continue
			}
			if pr.CCMapAt(gruid.Point{X: to.X, Y: to.Y}) != -1 {
				graph.Connect(i, j)
			}
		}
	}
	return graph
}
