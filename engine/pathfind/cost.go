package pathfind

import "math"

// penaltyRadius is how far the wall penalty scan reaches around a tile
const penaltyRadius = 2

// IsDoorway reports whether the tile at (x, y) is a doorway: walkable but
// flanked by non-walkable tiles on both sides along one axis. The property
// is purely structural and recomputed from the live map on every call, so
// map mutation can never leave a stale doorway cached anywhere.
func IsDoorway(m Walkable, x, y int) bool {
	if !m.IsWalkable(x, y) {
		return false
	}
	ew := !m.IsWalkable(x-1, y) && !m.IsWalkable(x+1, y)
	ns := !m.IsWalkable(x, y-1) && !m.IsWalkable(x, y+1)
	return ew || ns
}

// WallPenalty returns a traversal surcharge for the tile at (x, y) that
// grows with wall density nearby. Each non-walkable tile within the scan
// radius contributes 1/distance; the four orthogonally adjacent tiles
// instead contribute a flat 2.0, cut to 0.5 when (x, y) is itself a
// doorway. Doorways are wall-flanked by definition, so without that cut
// every corridor mouth would price itself out of use.
func WallPenalty(m Walkable, x, y int) float64 {
	door := IsDoorway(m, x, y)
	penalty := 0.0
	for dy := -penaltyRadius; dy <= penaltyRadius; dy++ {
		for dx := -penaltyRadius; dx <= penaltyRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.IsWalkable(x+dx, y+dy) {
				continue
			}
			if dx*dx+dy*dy == 1 {
				if door {
					penalty += 0.5
				} else {
					penalty += 2.0
				}
				continue
			}
			penalty += 1.0 / math.Sqrt(float64(dx*dx+dy*dy))
		}
	}
	return penalty
}
