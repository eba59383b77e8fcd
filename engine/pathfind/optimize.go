package pathfind

import "github.com/hollowmere/dungeon-engine/engine/maplib"

// DefaultSimplifyTolerance is the distance slack used by SimplifyPath
const DefaultSimplifyTolerance = 1.0

// OptimizePath collapses a raw tile-by-tile path into few turn points by
// greedily jumping to the furthest waypoint whose connecting segment stays
// clear of walls. Clearance is re-validated against the live map, so the
// result never trades wall safety for fewer points. The first and last
// waypoints survive, and running the pass again changes nothing.
func OptimizePath(m Walkable, path []Waypoint, wallClearance float64) []Waypoint {
	if len(path) <= 2 {
		return path
	}

	optimized := []Waypoint{path[0]}
	current := 0
	for current < len(path)-1 {
		furthest := current + 1
		for i := len(path) - 1; i > current+1; i-- {
			if segmentClear(m, path[current], path[i], wallClearance) {
				furthest = i
				break
			}
		}
		optimized = append(optimized, path[furthest])
		current = furthest
	}
	return optimized
}

// segmentClear walks the segment in half-tile steps and validates every
// sample. The sampled tile must be walkable; unless the sample sits on a
// doorway (clearance drops to 0.5 there), any wall in the sample's 3x3
// neighborhood fails the segment when the requested clearance demands
// open surroundings.
func segmentClear(m Walkable, a, b Waypoint, wallClearance float64) bool {
	dist := a.DistanceTo(b)
	steps := int(dist / (maplib.TileSize / 2))
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		tx, ty := maplib.PixelToTile(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
		if !m.IsWalkable(tx, ty) {
			return false
		}
		clearance := wallClearance
		if IsDoorway(m, tx, ty) {
			clearance = 0.5
		}
		if clearance < 1 {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if !m.IsWalkable(tx+dx, ty+dy) {
					return false
				}
			}
		}
	}
	return true
}

// SimplifyPath reduces an already-validated path without touching the map:
// from each anchor it keeps the furthest waypoint more than tolerance
// beyond the current pick, dropping the intermediate points. Cheap, map
// free, and intentionally separate from OptimizePath, which callers use
// when wall clearance still needs proving.
func SimplifyPath(path []Waypoint, tolerance float64) []Waypoint {
	if len(path) <= 2 {
		return path
	}

	simplified := []Waypoint{path[0]}
	current := 0
	for current < len(path)-1 {
		furthest := current + 1
		for i := current + 2; i < len(path); i++ {
			d1 := path[current].DistanceTo(path[i])
			d2 := path[current].DistanceTo(path[furthest])
			if d1 > d2+tolerance {
				furthest = i
			}
		}
		simplified = append(simplified, path[furthest])
		current = furthest
	}
	return simplified
}
