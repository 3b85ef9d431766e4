package world

// GoalSource records how a level goal was chosen.
type GoalSource int

const (
	// GoalByPath means the goal is the farthest room along the room graph.
	GoalByPath GoalSource = iota
	// GoalBySpatialDistance means the graph gave no distinct room and the
	// goal is the room center farthest from the start in Manhattan distance.
	GoalBySpatialDistance
	// GoalSynthesized means there were fewer than two rooms and the goal is a
	// fixed offset from the start.
	GoalSynthesized
)

// String returns a human-readable source name.
func (s GoalSource) String() string {
	switch s {
	case GoalByPath:
		return "path"
	case GoalBySpatialDistance:
		return "spatial"
	case GoalSynthesized:
		return "synthesized"
	default:
		return "unknown"
	}
}

// synthesizedGoalOffset is added to both axes of the start when no second room exists.
const synthesizedGoalOffset = 300

// Goal is the start/end pair of a level, in pixels.
type Goal struct {
	Start     Point
	End       Point
	StartRoom int // -1 when synthesized
	EndRoom   int // -1 when synthesized
	Distance  int // path distance for GoalByPath, Manhattan distance otherwise
	Source    GoalSource
}

// ClosestRoom returns the index of the center closest to p by Manhattan
// distance, or -1 if there are no centers. Ties go to the lowest index.
func ClosestRoom(centers []Point, p Point) int {
	best, bestDist := -1, 0
	for i, c := range centers {
		if dist := Manhattan(c, p); best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// FarthestRoomByPath walks the room graph from startRoom and returns the room
// with the largest accumulated distance, each edge weighted by the Manhattan
// distance between centers.
//
// Rooms are processed in FIFO discovery order and keep the distance of the
// first path that reaches them, so the result is not a shortest-path distance.
func FarthestRoomByPath(centers []Point, graph *RoomGraph, startRoom int) (room, distance int) {
	if startRoom < 0 || startRoom >= len(centers) {
		return -1, 0
	}

	type entry struct {
		room, dist int
	}
	visited := map[int]int{startRoom: 0}
	queue := []entry{{startRoom, 0}}
	farthest, maxDist := startRoom, 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for cand := range centers {
			if _, seen := visited[cand]; seen {
				continue
			}
			if !graph.Connected(cur.room, cand) {
				continue
			}
			dist := cur.dist + Manhattan(centers[cur.room], centers[cand])
			visited[cand] = dist
			queue = append(queue, entry{cand, dist})

			if dist > maxDist {
				maxDist = dist
				farthest = cand
			}
		}
	}
	return farthest, maxDist
}

// FarthestRoomBySpace returns the center farthest from startRoom by Manhattan
// distance, ignoring connectivity. It returns startRoom when it is alone.
func FarthestRoomBySpace(centers []Point, startRoom int) (room, distance int) {
	room, distance = startRoom, -1
	for i, c := range centers {
		if i == startRoom {
			continue
		}
		if dist := Manhattan(centers[startRoom], c); dist > distance {
			room, distance = i, dist
		}
	}
	if distance < 0 {
		distance = 0
	}
	return room, distance
}

// SelectGoal picks the level's start room (closest to start) and goal room
// (farthest along the graph), falling back to spatial distance when the
// graph offers no distinct room and to a fixed offset with fewer than two rooms.
func SelectGoal(centers []Point, graph *RoomGraph, start Point) Goal {
	if len(centers) < 2 {
		return Goal{
			Start:     start,
			End:       start.Add(synthesizedGoalOffset, synthesizedGoalOffset),
			StartRoom: -1,
			EndRoom:   -1,
			Distance:  2 * synthesizedGoalOffset,
			Source:    GoalSynthesized,
		}
	}

	startRoom := ClosestRoom(centers, start)
	goal := Goal{Start: centers[startRoom], StartRoom: startRoom}

	if room, dist := FarthestRoomByPath(centers, graph, startRoom); room != startRoom {
		goal.End, goal.EndRoom, goal.Distance, goal.Source = centers[room], room, dist, GoalByPath
		return goal
	}

	room, dist := FarthestRoomBySpace(centers, startRoom)
	goal.End, goal.EndRoom, goal.Distance, goal.Source = centers[room], room, dist, GoalBySpatialDistance
	return goal
}

// SelectGoal picks the goal for a player starting at the given pixel position.
func (d *Dungeon) SelectGoal(start Point) Goal {
	return SelectGoal(d.RoomCenters(), d.Graph, start)
}
