package pathfind

import (
	"reflect"
	"testing"
)

func rawPath(tiles ...[2]int) []Waypoint {
	path := make([]Waypoint, len(tiles))
	for i, t := range tiles {
		path[i] = TileWaypoint(t[0], t[1])
	}
	return path
}

func TestOptimizePathCollapsesOpenGround(t *testing.T) {
	m := openMap{w: 20, h: 20}
	raw := rawPath([2]int{3, 3}, [2]int{4, 3}, [2]int{5, 3}, [2]int{6, 3}, [2]int{7, 3}, [2]int{8, 3})

	got := OptimizePath(m, raw, DefaultWallClearance)
	if len(got) != 2 {
		t.Fatalf("straight open-ground path should collapse to endpoints, got %d waypoints", len(got))
	}
	if got[0] != raw[0] || got[1] != raw[len(raw)-1] {
		t.Errorf("endpoints must survive: got %v", got)
	}
}

func TestOptimizePathKeepsWallClearance(t *testing.T) {
	// A straight shot from (1,3) to (7,3) passes right under the wall
	// block; with clearance demanded, the pruning may not collapse the
	// detour the search took above it.
	m := grid(
		".........",
		".........",
		".........",
		"...###...",
		".........",
	)
	raw := rawPath(
		[2]int{1, 3}, [2]int{1, 2}, [2]int{2, 1}, [2]int{3, 1}, [2]int{4, 1},
		[2]int{5, 1}, [2]int{6, 2}, [2]int{7, 3},
	)
	got := OptimizePath(m, raw, DefaultWallClearance)
	pathWalkable(t, m, got)
	if got[0] != raw[0] || got[len(got)-1] != raw[len(raw)-1] {
		t.Fatalf("endpoints must survive: %v", got)
	}
	if len(got) > len(raw) {
		t.Errorf("pruning must never grow the path: %d -> %d", len(raw), len(got))
	}
	// The straight shot from start to end grazes the wall block, so the
	// clearance check must keep at least one intermediate turn point
	if len(got) == 2 {
		t.Errorf("wall-hugging shortcut should have been rejected: %v", got)
	}
}

func TestOptimizePathIdempotent(t *testing.T) {
	m := grid(
		"..........",
		"..........",
		"....#.....",
		"....#.....",
		"....#.....",
		"..........",
		"..........",
	)
	raw := rawPath(
		[2]int{2, 3}, [2]int{2, 4}, [2]int{3, 5}, [2]int{4, 6}, [2]int{5, 6},
		[2]int{6, 5}, [2]int{7, 4}, [2]int{7, 3},
	)
	once := OptimizePath(m, raw, DefaultWallClearance)
	twice := OptimizePath(m, once, DefaultWallClearance)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("OptimizePath is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestOptimizePathShortInputs(t *testing.T) {
	m := openMap{w: 5, h: 5}
	if got := OptimizePath(m, nil, DefaultWallClearance); got != nil {
		t.Errorf("nil path should stay nil, got %v", got)
	}
	two := rawPath([2]int{1, 1}, [2]int{2, 2})
	if got := OptimizePath(m, two, DefaultWallClearance); !reflect.DeepEqual(got, two) {
		t.Errorf("two-point path should pass through unchanged, got %v", got)
	}
}

func TestSimplifyPathCollinear(t *testing.T) {
	raw := rawPath([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0})
	got := SimplifyPath(raw, DefaultSimplifyTolerance)
	if len(got) != 2 {
		t.Fatalf("collinear path should reduce to endpoints, got %d waypoints", len(got))
	}
	if got[0] != raw[0] || got[1] != raw[len(raw)-1] {
		t.Errorf("endpoints must survive: %v", got)
	}
}

func TestSimplifyPathIdempotent(t *testing.T) {
	raw := rawPath(
		[2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 2}, [2]int{4, 2},
		[2]int{5, 3}, [2]int{6, 4},
	)
	once := SimplifyPath(raw, DefaultSimplifyTolerance)
	twice := SimplifyPath(once, DefaultSimplifyTolerance)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("SimplifyPath is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestSimplifyPathIgnoresMap(t *testing.T) {
	// SimplifyPath never consults walkability: a path drawn over walls
	// still reduces, because clearance is the caller's problem here
	raw := rawPath([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
	got := SimplifyPath(raw, DefaultSimplifyTolerance)
	if len(got) != 2 {
		t.Errorf("expected endpoint reduction without map queries, got %v", got)
	}
}
