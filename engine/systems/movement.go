// Package systems holds the gameplay simulation systems that run inside
// the world tick: movement, combat, and monster spawning.
package systems

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
	"github.com/hollowmere/dungeon-engine/engine/pathfind"
)

// waypointRadius is how close (in pixels) an agent must get to a
// waypoint before advancing to the next one.
const waypointRadius = 4.0

// MovementSystem advances every Movable entity along its waypoint path,
// steering around nearby agents and never stepping onto blocked tiles.
type MovementSystem struct {
	Map      *maplib.TileMap
	EventBus *core.EventBus
}

func NewMovementSystem(tm *maplib.TileMap, bus *core.EventBus) *MovementSystem {
	return &MovementSystem{Map: tm, EventBus: bus}
}

func (s *MovementSystem) Priority() int { return 50 }

// SetMap swaps the active map, e.g. after a hot reload
func (s *MovementSystem) SetMap(tm *maplib.TileMap) { s.Map = tm }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	ids := w.Query(core.CompPosition, core.CompMovable)
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		if len(mov.Path) == 0 || mov.PathIdx >= len(mov.Path) {
			continue
		}

		// Advance past any waypoints we are already standing on
		for mov.PathIdx < len(mov.Path) {
			wp := mov.Path[mov.PathIdx]
			if pos.DistanceTo(&core.Position{X: wp.X, Y: wp.Y}) > waypointRadius {
				break
			}
			mov.PathIdx++
		}
		if mov.PathIdx >= len(mov.Path) {
			mov.Path = nil
			mov.PathIdx = 0
			continue
		}

		path := toWaypoints(mov.Path)
		others := s.neighbors(w, ids, id, pos)
		steer := pathfind.Steer(pos.X, pos.Y, mov.Speed, path, mov.PathIdx, others)

		nx := pos.X + steer.VX*dt
		ny := pos.Y + steer.VY*dt

		// Axis-separated collision: sliding along walls beats stopping dead
		if tx, ty := maplib.PixelToTile(nx, pos.Y); s.Map.IsWalkable(tx, ty) {
			pos.X = nx
		}
		if tx, ty := maplib.PixelToTile(pos.X, ny); s.Map.IsWalkable(tx, ty) {
			pos.Y = ny
		}

		if steer.VX != 0 || steer.VY != 0 {
			pos.Facing = math.Atan2(steer.VY, steer.VX)
		}
	}
}

// neighbors gathers positions of other moving entities close enough to
// matter for separation. A coarse distance cut keeps this cheap.
func (s *MovementSystem) neighbors(w *core.World, ids []core.EntityID, self core.EntityID, pos *core.Position) [][3]float64 {
	var out [][3]float64
	for _, other := range ids {
		if other == self {
			continue
		}
		op := w.Get(other, core.CompPosition).(*core.Position)
		if pos.DistanceTo(op) > maplib.TileSize*2 {
			continue
		}
		out = append(out, [3]float64{op.X, op.Y, maplib.TileSize / 4})
	}
	return out
}

func toWaypoints(path []core.Vec2) []pathfind.Waypoint {
	out := make([]pathfind.Waypoint, len(path))
	for i, p := range path {
		out[i] = pathfind.Waypoint{X: p.X, Y: p.Y}
	}
	return out
}
