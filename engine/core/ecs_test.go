package core

import "testing"

func TestSpawnAttachGet(t *testing.T) {
	w := NewWorld(30)
	id := w.Spawn()

	w.Attach(id, &Position{X: 10, Y: 20})
	w.Attach(id, &Health{Current: 50, Max: 100})

	if !w.Has(id, CompPosition) {
		t.Fatal("entity should have a position")
	}
	pos := w.Get(id, CompPosition).(*Position)
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("position = (%v, %v), want (10, 20)", pos.X, pos.Y)
	}
	if w.Get(id, CompCombat) != nil {
		t.Error("unattached component should be nil")
	}

	w.Detach(id, CompHealth)
	if w.Has(id, CompHealth) {
		t.Error("detached component should be gone")
	}
}

func TestDestroyDeferredToTickEnd(t *testing.T) {
	w := NewWorld(30)
	id := w.Spawn()
	w.Attach(id, &Position{})

	w.Destroy(id)
	if !w.Alive(id) {
		t.Fatal("destroy should not take effect before the tick ends")
	}

	w.Tick(1.0 / 30)
	if w.Alive(id) {
		t.Error("entity should be removed after the tick")
	}
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", w.EntityCount())
	}
}

func TestQueryRequiresAllComponents(t *testing.T) {
	w := NewWorld(30)

	both := w.Spawn()
	w.Attach(both, &Position{})
	w.Attach(both, &Movable{Speed: 1})

	posOnly := w.Spawn()
	w.Attach(posOnly, &Position{})

	ids := w.Query(CompPosition, CompMovable)
	if len(ids) != 1 || ids[0] != both {
		t.Errorf("Query = %v, want [%v]", ids, both)
	}
	if got := len(w.Query(CompPosition)); got != 2 {
		t.Errorf("single-component query matched %d entities, want 2", got)
	}
}

type orderSystem struct {
	priority int
	log      *[]int
}

func (s *orderSystem) Priority() int { return s.priority }
func (s *orderSystem) Update(w *World, dt float64) {
	*s.log = append(*s.log, s.priority)
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld(30)
	var log []int
	w.AddSystem(&orderSystem{priority: 50, log: &log})
	w.AddSystem(&orderSystem{priority: 10, log: &log})
	w.AddSystem(&orderSystem{priority: 30, log: &log})

	w.Tick(1.0 / 30)

	want := []int{10, 30, 50}
	if len(log) != len(want) {
		t.Fatalf("ran %d systems, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("run order = %v, want %v", log, want)
		}
	}
	if w.TickCount != 1 {
		t.Errorf("TickCount = %d, want 1", w.TickCount)
	}
}

func TestEventBusDispatch(t *testing.T) {
	bus := NewEventBus()

	var got []EventType
	bus.On(EvtEntityDied, func(e Event) { got = append(got, e.Type) })
	bus.On(EvtEntitySpawned, func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: EvtEntitySpawned})
	bus.Emit(Event{Type: EvtEntityDied})
	bus.Emit(Event{Type: EvtEntityAttack}) // no listener, silently dropped

	if len(got) != 0 {
		t.Fatal("handlers must not run before Dispatch")
	}
	bus.Dispatch()

	if len(got) != 2 || got[0] != EvtEntitySpawned || got[1] != EvtEntityDied {
		t.Errorf("dispatched = %v, want [spawned died]", got)
	}

	// Queue is drained; a second dispatch is a no-op
	bus.Dispatch()
	if len(got) != 2 {
		t.Error("dispatch re-ran drained events")
	}
}

func TestFactionHostility(t *testing.T) {
	player := &Faction{ID: FactionPlayer}
	monster := &Faction{ID: FactionMonster}
	neutral := &Faction{ID: FactionNeutral}

	if !player.Hostile(monster) || !monster.Hostile(player) {
		t.Error("players and monsters should be hostile")
	}
	if player.Hostile(player) || monster.Hostile(monster) {
		t.Error("same faction should not be hostile")
	}
	if player.Hostile(neutral) || neutral.Hostile(monster) {
		t.Error("neutral faction should never fight")
	}
}
