package pathfind

import (
	"math"
	"testing"
)

func TestDistanceFieldPointsTowardGoal(t *testing.T) {
	m := openMap{w: 10, h: 10}
	df := NewDistanceField(m, 10, 10, 5, 5)

	if got := df.Cost[5*10+5]; got != 0 {
		t.Fatalf("goal cost = %v, want 0", got)
	}
	dx, dy := df.Direction(5, 8)
	if dy >= 0 {
		t.Errorf("tile south of goal should descend north, got direction (%v,%v)", dx, dy)
	}
	dx, dy = df.Direction(1, 5)
	if dx <= 0 {
		t.Errorf("tile west of goal should descend east, got direction (%v,%v)", dx, dy)
	}
	if n := math.Hypot(dx, dy); math.Abs(n-1) > 1e-9 {
		t.Errorf("direction should be unit length, got %v", n)
	}
}

func TestDistanceFieldRespectsWalls(t *testing.T) {
	m := grid(
		".....",
		"#####",
		".....",
	)
	df := NewDistanceField(m, 5, 3, 2, 0)

	if df.Reachable(2, 2) {
		t.Errorf("tile behind a solid wall must be unreachable")
	}
	if !df.Reachable(0, 0) {
		t.Errorf("tile on the goal side should be reachable")
	}
	if dx, dy := df.Direction(2, 2); dx != 0 || dy != 0 {
		t.Errorf("unreachable tile should have zero direction, got (%v,%v)", dx, dy)
	}
}

func TestDistanceFieldBlockedGoal(t *testing.T) {
	m := grid(
		"...",
		".#.",
		"...",
	)
	df := NewDistanceField(m, 3, 3, 1, 1)
	if df.Reachable(0, 0) {
		t.Errorf("field seeded on a wall should mark everything unreachable")
	}
}

func TestSteerSeeksWaypoint(t *testing.T) {
	path := []Waypoint{{X: 100, Y: 48}}
	res := Steer(36, 48, 50, path, 0, nil)
	if res.VX <= 0 {
		t.Errorf("agent west of waypoint should steer east, got VX=%v", res.VX)
	}
	if math.Abs(res.VY) > 1e-9 {
		t.Errorf("level with waypoint, VY should be 0, got %v", res.VY)
	}
	if v := math.Hypot(res.VX, res.VY); v > 50+1e-9 {
		t.Errorf("speed clamp exceeded: %v", v)
	}
}

func TestSteerSeparation(t *testing.T) {
	path := []Waypoint{{X: 200, Y: 48}}
	// Another agent directly in front, slightly north
	others := [][3]float64{{60, 40, 10}}
	res := Steer(48, 48, 50, path, 0, others)
	if res.VY <= 0 {
		t.Errorf("separation should push south away from the neighbor, got VY=%v", res.VY)
	}
}

func TestSteerExhaustedPath(t *testing.T) {
	path := []Waypoint{{X: 100, Y: 100}}
	if res := Steer(0, 0, 50, path, 1, nil); res.VX != 0 || res.VY != 0 {
		t.Errorf("past the last waypoint Steer should go idle, got %+v", res)
	}
}
