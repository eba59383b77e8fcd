// Package ai drives monster behavior: wandering when idle, pursuing the
// player through the pathfinder once aggroed, and breaking off past the
// leash range.
package ai

import (
	"math/rand"

	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
	"github.com/hollowmere/dungeon-engine/engine/pathfind"
)

// State is a monster's current behavior mode
type State uint8

const (
	StateIdle State = iota
	StateWander
	StateChase
)

// DefaultRepathInterval is how often a chasing monster recomputes its
// path. Pathfinding runs on this cadence rather than every tick; the
// expansion cap inside the search bounds the cost of each call, and
// between calls the agent keeps following its last path or falls back
// to direct movement.
const DefaultRepathInterval = 1.0

type agentState struct {
	state       State
	repathTimer float64
	wanderTimer float64
	direct      bool // last search failed; move by distance field
}

// PursuitSystem runs the monster behavior state machine
type PursuitSystem struct {
	Map            *maplib.TileMap
	EventBus       *core.EventBus
	RepathInterval float64
	Rand           *rand.Rand

	agents     map[core.EntityID]*agentState
	field      *pathfind.DistanceField
	fieldTimer float64
}

func NewPursuitSystem(tm *maplib.TileMap, bus *core.EventBus, rng *rand.Rand) *PursuitSystem {
	return &PursuitSystem{
		Map:            tm,
		EventBus:       bus,
		RepathInterval: DefaultRepathInterval,
		Rand:           rng,
		agents:         make(map[core.EntityID]*agentState),
	}
}

func (s *PursuitSystem) Priority() int { return 40 }

// SetMap swaps the active map, e.g. after a hot reload
func (s *PursuitSystem) SetMap(tm *maplib.TileMap) {
	s.Map = tm
	s.field = nil
	s.fieldTimer = 0
}

func (s *PursuitSystem) Update(w *core.World, dt float64) {
	player, playerPos := findPlayer(w)
	if player == 0 {
		return
	}

	// One shared distance field serves every monster that lost its path,
	// refreshed on the repath cadence
	s.fieldTimer -= dt
	if s.fieldTimer <= 0 {
		s.fieldTimer = s.RepathInterval
		px, py := maplib.PixelToTile(playerPos.X, playerPos.Y)
		s.field = pathfind.NewDistanceField(s.Map, s.Map.Width, s.Map.Height, px, py)
	}

	ids := w.Query(core.CompPosition, core.CompMovable, core.CompVision, core.CompFaction)
	for _, id := range ids {
		if w.Get(id, core.CompFaction).(*core.Faction).ID != core.FactionMonster {
			continue
		}
		ag := s.agents[id]
		if ag == nil {
			ag = &agentState{state: StateWander}
			s.agents[id] = ag
		}

		pos := w.Get(id, core.CompPosition).(*core.Position)
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		vis := w.Get(id, core.CompVision).(*core.Vision)

		dist := pos.DistanceTo(playerPos)
		switch ag.state {
		case StateChase:
			if dist > vis.LeashRange {
				ag.state = StateWander
				ag.direct = false
				ag.wanderTimer = 1.5 // settle before roaming again
				mov.Path = nil
			}
		default:
			if dist <= vis.AggroRange {
				ag.state = StateChase
				ag.repathTimer = 0
			}
		}

		switch ag.state {
		case StateChase:
			s.chase(id, ag, pos, mov, playerPos, dt)
		case StateWander:
			s.wander(ag, pos, mov, dt)
		}
	}

	// Forget despawned monsters
	for id := range s.agents {
		if !w.Alive(id) {
			delete(s.agents, id)
		}
	}
}

func (s *PursuitSystem) chase(id core.EntityID, ag *agentState, pos *core.Position, mov *core.Movable, playerPos *core.Position, dt float64) {
	ag.repathTimer -= dt
	if ag.repathTimer <= 0 {
		ag.repathTimer = s.RepathInterval
		path := pathfind.FindPath(s.Map,
			pathfind.Waypoint{X: pos.X, Y: pos.Y},
			pathfind.Waypoint{X: playerPos.X, Y: playerPos.Y})
		if path != nil {
			mov.Path = toVec2(path)
			mov.PathIdx = 0
			ag.direct = false
		} else {
			// No improvement this interval: keep closing in directly
			mov.Path = nil
			ag.direct = true
			if s.EventBus != nil {
				s.EventBus.Emit(core.Event{Type: core.EvtPathFailed, Payload: id})
			}
		}
	}

	if ag.direct {
		mov.Path = []core.Vec2{s.directStep(pos, playerPos)}
		mov.PathIdx = 0
	}
}

// directStep yields a one-waypoint path toward the player: downhill on
// the distance field when the monster's tile is reachable, straight at
// the player otherwise.
func (s *PursuitSystem) directStep(pos, playerPos *core.Position) core.Vec2 {
	tx, ty := maplib.PixelToTile(pos.X, pos.Y)
	if s.field != nil && s.field.Reachable(tx, ty) {
		if dx, dy := s.field.Direction(tx, ty); dx != 0 || dy != 0 {
			return core.Vec2{X: pos.X + dx*maplib.TileSize, Y: pos.Y + dy*maplib.TileSize}
		}
	}
	return core.Vec2{X: playerPos.X, Y: playerPos.Y}
}

func (s *PursuitSystem) wander(ag *agentState, pos *core.Position, mov *core.Movable, dt float64) {
	ag.wanderTimer -= dt
	if ag.wanderTimer > 0 {
		return
	}
	ag.wanderTimer = 2.0 + s.Rand.Float64()*3.0

	tx, ty := maplib.PixelToTile(pos.X, pos.Y)
	// A few tries at a random nearby tile; staying put is fine too
	for try := 0; try < 4; try++ {
		nx := tx + s.Rand.Intn(7) - 3
		ny := ty + s.Rand.Intn(7) - 3
		if !s.Map.IsWalkable(nx, ny) {
			continue
		}
		path := pathfind.FindPath(s.Map,
			pathfind.Waypoint{X: pos.X, Y: pos.Y},
			pathfind.TileWaypoint(nx, ny),
			pathfind.WithMaxDistance(8))
		if path != nil {
			mov.Path = toVec2(path)
			mov.PathIdx = 0
			return
		}
	}
}

func findPlayer(w *core.World) (core.EntityID, *core.Position) {
	ids := w.Query(core.CompPlayerTag, core.CompPosition)
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], w.Get(ids[0], core.CompPosition).(*core.Position)
}

func toVec2(path []pathfind.Waypoint) []core.Vec2 {
	out := make([]core.Vec2, len(path))
	for i, wp := range path {
		out[i] = core.Vec2{X: wp.X, Y: wp.Y}
	}
	return out
}
