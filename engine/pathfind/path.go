// Package pathfind computes collision-aware movement paths for agents on
// a tile grid: weighted A* with wall-proximity cost shaping, detection and
// escape of geometrically trapped tiles, and waypoint simplification.
//
// Every search call is synchronous and self-contained. Failure to find a
// path is an ordinary outcome reported as a nil path, never an error.
package pathfind

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

// Walkable answers whether a tile can be occupied. Implementations must be
// defined for arbitrary integer coordinates and answer false out of range.
type Walkable interface {
	IsWalkable(tileX, tileY int) bool
}

// Waypoint is one pixel-space point of a path, at a tile's center
type Waypoint struct {
	X, Y float64
}

// DistanceTo returns the Euclidean pixel distance to another waypoint
func (w Waypoint) DistanceTo(o Waypoint) float64 {
	return math.Hypot(o.X-w.X, o.Y-w.Y)
}

// Tile returns the tile coordinate containing this waypoint
func (w Waypoint) Tile() (int, int) {
	return maplib.PixelToTile(w.X, w.Y)
}

// TileWaypoint returns the waypoint at the center of a tile
func TileWaypoint(tx, ty int) Waypoint {
	x, y := maplib.TileCenter(tx, ty)
	return Waypoint{X: x, Y: y}
}

// 8-directional neighborhood, orthogonals first
var dirs = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
