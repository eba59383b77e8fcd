package pathfind

// DefaultStuckThreshold is the blocked-neighbor count that marks a tile
// as trapped.
const DefaultStuckThreshold = 3

// DefaultEscapeRadius is how many rings FindEscapePath scans outward.
const DefaultEscapeRadius = 8

// IsStuck reports whether the tile at (x, y) is likely to produce
// degenerate search behavior: at least threshold of its 8 neighbors are
// blocked, or it sits in a two-wall corner. The corner test catches
// dead-end pockets whose blocked count stays under the threshold.
func IsStuck(m Walkable, x, y, threshold int) bool {
	blocked := 0
	for _, d := range dirs {
		if !m.IsWalkable(x+d[0], y+d[1]) {
			blocked++
		}
	}
	if blocked >= threshold {
		return true
	}
	for _, sx := range [2]int{-1, 1} {
		for _, sy := range [2]int{-1, 1} {
			if !m.IsWalkable(x+sx, y) && !m.IsWalkable(x, y+sy) {
				return true
			}
		}
	}
	return false
}

// ring lists the 8 neighbors in cyclic order, so adjacency in the array
// means adjacency around the tile.
var ring = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0},
	{1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

// confined reports whether the blocked neighbors of (x, y) actually pinch
// movement: they form more than one run around the neighbor ring, or a
// single run large enough to leave under three open tiles. A tile flush
// against a straight wall, a solid corner, or the map border has one short
// blocked run and is not confined.
func confined(m Walkable, x, y int) bool {
	blocked, runs := 0, 0
	for i, d := range ring {
		if m.IsWalkable(x+d[0], y+d[1]) {
			continue
		}
		blocked++
		prev := ring[(i+7)%8]
		if m.IsWalkable(x+prev[0], y+prev[1]) {
			runs++
		}
	}
	if blocked == 8 {
		return true
	}
	return runs > 1 || blocked >= 6
}

// neighborCounts tallies blocked and walkable tiles in the 8-neighborhood
func neighborCounts(m Walkable, x, y int) (walls, open int) {
	for _, d := range dirs {
		if m.IsWalkable(x+d[0], y+d[1]) {
			open++
		} else {
			walls++
		}
	}
	return
}

// FindEscapePath searches outward from a trapped tile for the nearest tile
// worth standing on and returns a minimal two-waypoint path to it: the
// current tile center followed by the chosen tile center. Candidates are
// scanned ring by ring (|dx|+|dy| == r) and scored by ring distance plus
// wall crowding minus openness, lower being better. A candidate with at
// least 5 walkable neighbors counts as an open space, and the nearest open
// space beats any score. With no candidate at all, the first walkable
// non-stuck immediate neighbor serves as an emergency hop; failing even
// that, the result is nil.
func FindEscapePath(m Walkable, x, y, maxDistance int) []Waypoint {
	var (
		bestX, bestY int
		bestScore    float64
		haveBest     bool
		openX, openY int
		haveOpen     bool
	)

	for r := 1; r <= maxDistance && !haveOpen; r++ {
		for dx := -r; dx <= r; dx++ {
			dy := r - abs(dx)
			for _, cy := range [2]int{y + dy, y - dy} {
				if dy == 0 && cy == y-dy {
					continue // same tile twice
				}
				cx := x + dx
				if !m.IsWalkable(cx, cy) {
					continue
				}
				walls, open := neighborCounts(m, cx, cy)
				if open >= 5 && !haveOpen {
					openX, openY = cx, cy
					haveOpen = true
				}
				if IsStuck(m, cx, cy, DefaultStuckThreshold) {
					continue
				}
				score := float64(r) + 0.5*float64(walls) - 0.3*float64(open)
				if !haveBest || score < bestScore {
					bestX, bestY, bestScore = cx, cy, score
					haveBest = true
				}
			}
		}
	}

	switch {
	case haveOpen:
		bestX, bestY = openX, openY
	case haveBest:
		// keep best-scored candidate
	default:
		// Emergency hop: any adjacent tile beats staying trapped
		found := false
		for _, d := range dirs {
			nx, ny := x+d[0], y+d[1]
			if m.IsWalkable(nx, ny) && !IsStuck(m, nx, ny, DefaultStuckThreshold) {
				bestX, bestY = nx, ny
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	return []Waypoint{TileWaypoint(x, y), TileWaypoint(bestX, bestY)}
}
