package systems

import (
	"math/rand"

	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

const (
	// minSpawnDist keeps new monsters from appearing on top of the player
	minSpawnDist = maplib.TileSize * 6
	spawnTries   = 16
)

// SpawnSystem periodically places monsters on walkable tiles away from
// the player, up to a population cap.
type SpawnSystem struct {
	Map      *maplib.TileMap
	EventBus *core.EventBus
	Interval float64
	MaxAlive int
	Rand     *rand.Rand

	timer float64
}

func NewSpawnSystem(tm *maplib.TileMap, bus *core.EventBus, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		Map:      tm,
		EventBus: bus,
		Interval: 5.0,
		MaxAlive: 12,
		Rand:     rng,
	}
}

func (s *SpawnSystem) Priority() int { return 10 }

// SetMap swaps the active map, e.g. after a hot reload
func (s *SpawnSystem) SetMap(tm *maplib.TileMap) { s.Map = tm }

func (s *SpawnSystem) Update(w *core.World, dt float64) {
	s.timer -= dt
	if s.timer > 0 {
		return
	}
	s.timer = s.Interval

	var playerPos *core.Position
	if ids := w.Query(core.CompPlayerTag, core.CompPosition); len(ids) > 0 {
		playerPos = w.Get(ids[0], core.CompPosition).(*core.Position)
	}

	alive := 0
	for _, id := range w.Query(core.CompFaction) {
		if w.Get(id, core.CompFaction).(*core.Faction).ID == core.FactionMonster {
			alive++
		}
	}
	if alive >= s.MaxAlive {
		return
	}

	for try := 0; try < spawnTries; try++ {
		tx := s.Rand.Intn(s.Map.Width)
		ty := s.Rand.Intn(s.Map.Height)
		if !s.Map.IsWalkable(tx, ty) {
			continue
		}
		px, py := maplib.TileCenter(tx, ty)
		if playerPos != nil && playerPos.DistanceTo(&core.Position{X: px, Y: py}) < minSpawnDist {
			continue
		}
		SpawnMonster(w, s.EventBus, px, py)
		return
	}
}

// SpawnMonster creates a monster entity at the given pixel position
func SpawnMonster(w *core.World, bus *core.EventBus, x, y float64) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Movable{Speed: 60})
	w.Attach(id, &core.Health{Current: 30, Max: 30})
	w.Attach(id, &core.Combat{Damage: 5, Range: maplib.TileSize * 1.2, Cooldown: 1.0})
	w.Attach(id, &core.Faction{ID: core.FactionMonster})
	w.Attach(id, &core.Vision{AggroRange: maplib.TileSize * 8, LeashRange: maplib.TileSize * 14})
	w.Attach(id, &core.Sprite{Width: maplib.TileSize, Height: maplib.TileSize, Color: 0xc03030ff, Visible: true, ZOrder: 1})
	w.Attach(id, &core.AnimState{CurrentAnim: "walk", Frames: 4, Speed: 6, Loop: true})
	if bus != nil {
		bus.Emit(core.Event{Type: core.EvtEntitySpawned, Tick: w.TickCount, Payload: id})
	}
	return id
}

// SpawnPlayer creates the player entity at the given pixel position
func SpawnPlayer(w *core.World, bus *core.EventBus, x, y float64) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Movable{Speed: 120})
	w.Attach(id, &core.Health{Current: 100, Max: 100})
	w.Attach(id, &core.Combat{Damage: 10, Range: maplib.TileSize * 1.4, Cooldown: 0.5})
	w.Attach(id, &core.Faction{ID: core.FactionPlayer})
	w.Attach(id, &core.PlayerTag{})
	w.Attach(id, &core.Sprite{Width: maplib.TileSize, Height: maplib.TileSize, Color: 0x40a0ffff, Visible: true, ZOrder: 2})
	w.Attach(id, &core.AnimState{CurrentAnim: "walk", Frames: 4, Speed: 8, Loop: true})
	if bus != nil {
		bus.Emit(core.Event{Type: core.EvtEntitySpawned, Tick: w.TickCount, Payload: id})
	}
	return id
}
