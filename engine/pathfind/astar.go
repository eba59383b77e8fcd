package pathfind

import (
	"container/heap"
	"math"
)

const (
	// DefaultMaxDistance caps returned paths at this many waypoints
	DefaultMaxDistance = 20
	// DefaultWallClearance scales the wall penalty's weight in edge costs
	DefaultWallClearance = 1.5
	// maxExpansions bounds one search; exhausting it is ordinary failure
	maxExpansions = 500
)

type config struct {
	maxDistance   int
	wallClearance float64
}

// Option adjusts a single FindPath call
type Option func(*config)

// WithMaxDistance limits the returned path to n waypoints
func WithMaxDistance(n int) Option {
	return func(c *config) { c.maxDistance = n }
}

// WithWallClearance sets how strongly the search is pushed away from walls
func WithWallClearance(clearance float64) Option {
	return func(c *config) { c.wallClearance = clearance }
}

// node is one visited tile within a single search call
type node struct {
	x, y    int
	parent  *node
	g, h, f float64
	penalty float64 // wall penalty, computed once per tile per search
	doorway bool
	index   int // heap position, -1 when not queued
}

type tileKey struct{ x, y int }

type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	item.index = -1
	*h = old[:n-1]
	return item
}

// FindPath computes a path of pixel waypoints from start to target over
// 8-directional weighted A*. A trapped start tile short-circuits into
// FindEscapePath, but only when its blocked neighbors genuinely pinch
// movement; standing flush against a wall or the map border searches
// normally. A blocked target tile silently retargets to its first
// walkable neighbor. nil means no usable path this call: unreachable
// target, genuine disconnection, or expansion budget exhausted. Callers
// treat nil as "no improvement available" and keep moving directly.
func FindPath(m Walkable, start, target Waypoint, opts ...Option) []Waypoint {
	cfg := config{
		maxDistance:   DefaultMaxDistance,
		wallClearance: DefaultWallClearance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sx, sy := start.Tile()
	tx, ty := target.Tile()

	if IsStuck(m, sx, sy, DefaultStuckThreshold) && confined(m, sx, sy) {
		if esc := FindEscapePath(m, sx, sy, DefaultEscapeRadius); esc != nil {
			return esc
		}
	}

	if !m.IsWalkable(tx, ty) {
		found := false
		for dx := -1; dx <= 1 && !found; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if m.IsWalkable(tx+dx, ty+dy) {
					tx, ty = tx+dx, ty+dy
					found = true
					break
				}
			}
		}
		if !found {
			return nil
		}
	}

	if sx == tx && sy == ty {
		return []Waypoint{start}
	}

	nodes := make(map[tileKey]*node, 64)
	closed := make(map[tileKey]bool, 64)

	startNode := &node{
		x: sx, y: sy,
		penalty: WallPenalty(m, sx, sy),
		doorway: IsDoorway(m, sx, sy),
		h:       tileDistance(sx, sy, tx, ty),
	}
	startNode.f = startNode.h
	nodes[tileKey{sx, sy}] = startNode

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, startNode)

	for steps := 0; open.Len() > 0 && steps < maxExpansions; steps++ {
		current := heap.Pop(open).(*node)
		key := tileKey{current.x, current.y}
		if closed[key] {
			continue
		}
		closed[key] = true

		if current.x == tx && current.y == ty {
			path := reconstruct(current)
			path = OptimizePath(m, path, cfg.wallClearance)
			if len(path) > cfg.maxDistance {
				path = path[:cfg.maxDistance]
			}
			return path
		}

		for _, d := range dirs {
			nx, ny := current.x+d[0], current.y+d[1]
			if closed[tileKey{nx, ny}] {
				continue
			}
			if !m.IsWalkable(nx, ny) {
				continue
			}
			moveCost := 1.0
			if d[0] != 0 && d[1] != 0 {
				// No cutting corners through walls
				if !m.IsWalkable(current.x+d[0], current.y) || !m.IsWalkable(current.x, current.y+d[1]) {
					continue
				}
				moveCost = math.Sqrt2
			}

			neighbor, seen := nodes[tileKey{nx, ny}]
			if !seen {
				neighbor = &node{
					x: nx, y: ny,
					penalty: WallPenalty(m, nx, ny),
					doorway: IsDoorway(m, nx, ny),
					h:       tileDistance(nx, ny, tx, ty),
					index:   -1,
				}
				nodes[tileKey{nx, ny}] = neighbor
			}

			clearance := cfg.wallClearance
			if current.doorway || neighbor.doorway {
				clearance = 0.5
			}
			tentativeG := current.g + moveCost + neighbor.penalty*clearance
			if seen && tentativeG >= neighbor.g {
				continue
			}

			neighbor.parent = current
			neighbor.g = tentativeG
			neighbor.f = tentativeG + neighbor.h
			if neighbor.index >= 0 {
				heap.Fix(open, neighbor.index)
			} else {
				heap.Push(open, neighbor)
			}
		}
	}

	return nil
}

// tileDistance is the Euclidean heuristic in tile units. It is admissible
// for plain movement costs but deliberately weak against the wall-penalty
// inflated edges, making the search weighted rather than optimal. Narrow
// corridor path shapes depend on that, so it stays.
func tileDistance(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}

func reconstruct(end *node) []Waypoint {
	var path []Waypoint
	for n := end; n != nil; n = n.parent {
		path = append(path, TileWaypoint(n.x, n.y))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
