package pathfind

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

// SteerResult contains the computed steering velocity in pixels per second
type SteerResult struct {
	VX, VY float64
}

// Steer computes a velocity for an agent following a waypoint path while
// nudging away from nearby agents.
// x, y: agent position in pixels; speed: max speed; pathIdx: index of the
// waypoint currently being approached; others: (x, y, radius) of agents
// to separate from.
func Steer(x, y, speed float64, path []Waypoint, pathIdx int, others [][3]float64) SteerResult {
	if pathIdx >= len(path) {
		return SteerResult{}
	}

	target := path[pathIdx]
	dx, dy := target.X-x, target.Y-y
	dist := math.Hypot(dx, dy)
	if dist < 0.5 {
		return SteerResult{}
	}

	seekX, seekY := dx/dist*speed, dy/dist*speed

	sepX, sepY := 0.0, 0.0
	for _, o := range others {
		ox, oy, radius := o[0], o[1], o[2]
		sx, sy := x-ox, y-oy
		d := math.Hypot(sx, sy)
		minDist := radius + maplib.TileSize/2
		if d < minDist && d > 0.01 {
			force := (minDist - d) / minDist
			sepX += sx / d * force * speed * 0.5
			sepY += sy / d * force * speed * 0.5
		}
	}

	vx := seekX + sepX
	vy := seekY + sepY

	if v := math.Hypot(vx, vy); v > speed {
		vx = vx / v * speed
		vy = vy / v * speed
	}

	return SteerResult{VX: vx, VY: vy}
}
