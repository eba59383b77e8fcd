package ai

import (
	"math/rand"
	"testing"

	"github.com/hollowmere/dungeon-engine/engine/core"
	"github.com/hollowmere/dungeon-engine/engine/maplib"
)

func openMap(w, h int) *maplib.TileMap {
	tm := &maplib.TileMap{Name: "test", Width: w, Height: h, Tiles: make([]maplib.TileKind, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tm.Set(x, y, maplib.TileWall)
			}
		}
	}
	return tm
}

func spawnPlayer(w *core.World, tx, ty int) core.EntityID {
	x, y := maplib.TileCenter(tx, ty)
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.PlayerTag{})
	return id
}

func spawnMonster(w *core.World, tx, ty int) core.EntityID {
	x, y := maplib.TileCenter(tx, ty)
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Movable{Speed: 60})
	w.Attach(id, &core.Faction{ID: core.FactionMonster})
	w.Attach(id, &core.Vision{
		AggroRange: maplib.TileSize * 6,
		LeashRange: maplib.TileSize * 10,
	})
	return id
}

func TestMonsterChasesPlayerInAggroRange(t *testing.T) {
	tm := openMap(20, 20)
	w := core.NewWorld(30)
	sys := NewPursuitSystem(tm, nil, rand.New(rand.NewSource(1)))
	w.AddSystem(sys)

	spawnPlayer(w, 10, 10)
	monster := spawnMonster(w, 6, 10)

	w.Tick(1.0 / 30)

	mov := w.Get(monster, core.CompMovable).(*core.Movable)
	if len(mov.Path) == 0 {
		t.Fatal("aggroed monster should have a path toward the player")
	}
	last := mov.Path[len(mov.Path)-1]
	px, py := maplib.TileCenter(10, 10)
	if got := (&core.Position{X: last.X, Y: last.Y}).DistanceTo(&core.Position{X: px, Y: py}); got > maplib.TileSize*2 {
		t.Errorf("path ends %.0f px from player, want close", got)
	}
}

func TestMonsterIgnoresDistantPlayer(t *testing.T) {
	tm := openMap(30, 30)
	w := core.NewWorld(30)
	sys := NewPursuitSystem(tm, nil, rand.New(rand.NewSource(1)))
	w.AddSystem(sys)

	spawnPlayer(w, 25, 25)
	monster := spawnMonster(w, 2, 2)

	w.Tick(1.0 / 30)

	if st := sys.agents[monster]; st != nil && st.state == StateChase {
		t.Error("monster outside aggro range should not chase")
	}
}

func TestMonsterLeashesWhenPlayerEscapes(t *testing.T) {
	tm := openMap(40, 40)
	w := core.NewWorld(30)
	sys := NewPursuitSystem(tm, nil, rand.New(rand.NewSource(1)))
	w.AddSystem(sys)

	player := spawnPlayer(w, 10, 10)
	monster := spawnMonster(w, 8, 10)

	w.Tick(1.0 / 30)
	if sys.agents[monster].state != StateChase {
		t.Fatal("monster should start chasing")
	}

	// Teleport the player beyond the leash range
	pos := w.Get(player, core.CompPosition).(*core.Position)
	pos.X, pos.Y = maplib.TileCenter(35, 35)

	w.Tick(1.0 / 30)

	if sys.agents[monster].state == StateChase {
		t.Error("monster should break off beyond leash range")
	}
	mov := w.Get(monster, core.CompMovable).(*core.Movable)
	if mov.Path != nil {
		t.Error("leashing should drop the chase path")
	}
}

func TestBlockedChaseFallsBackToDirectStep(t *testing.T) {
	// Player sealed inside a vault: no path can reach them, so the
	// monster keeps advancing by one synthesized waypoint per tick
	tm := openMap(20, 20)
	for x := 9; x <= 11; x++ {
		tm.Set(x, 9, maplib.TileWall)
		tm.Set(x, 11, maplib.TileWall)
	}
	tm.Set(9, 10, maplib.TileWall)
	tm.Set(11, 10, maplib.TileWall)

	w := core.NewWorld(30)
	bus := core.NewEventBus()
	failed := false
	bus.On(core.EvtPathFailed, func(e core.Event) { failed = true })

	sys := NewPursuitSystem(tm, bus, rand.New(rand.NewSource(1)))
	w.AddSystem(sys)

	spawnPlayer(w, 10, 10)
	monster := spawnMonster(w, 5, 10)

	w.Tick(1.0 / 30)
	bus.Dispatch()

	mov := w.Get(monster, core.CompMovable).(*core.Movable)
	if len(mov.Path) != 1 {
		t.Fatalf("direct fallback should yield a single waypoint, got %d", len(mov.Path))
	}
	if !failed {
		t.Error("path failure event not emitted")
	}
}
