package systems

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/core"
)

// CombatSystem processes melee cooldowns and auto-attacks between
// hostile factions
type CombatSystem struct {
	EventBus *core.EventBus
}

func (s *CombatSystem) Priority() int { return 20 }

func (s *CombatSystem) Update(w *core.World, dt float64) {
	attackers := w.Query(core.CompPosition, core.CompCombat, core.CompFaction)
	targets := w.Query(core.CompPosition, core.CompHealth, core.CompFaction)

	for _, aid := range attackers {
		cmb := w.Get(aid, core.CompCombat).(*core.Combat)
		if cmb.CooldownNow > 0 {
			cmb.CooldownNow -= dt
			continue
		}

		apos := w.Get(aid, core.CompPosition).(*core.Position)
		afac := w.Get(aid, core.CompFaction).(*core.Faction)

		// Nearest hostile in reach
		var bestID core.EntityID
		bestDist := math.MaxFloat64
		for _, tid := range targets {
			if tid == aid {
				continue
			}
			tfac := w.Get(tid, core.CompFaction).(*core.Faction)
			if !afac.Hostile(tfac) {
				continue
			}
			tpos := w.Get(tid, core.CompPosition).(*core.Position)
			d := apos.DistanceTo(tpos)
			if d <= cmb.Range && d < bestDist {
				bestDist = d
				bestID = tid
			}
		}
		if bestID == 0 {
			continue
		}

		cmb.CooldownNow = cmb.Cooldown
		tpos := w.Get(bestID, core.CompPosition).(*core.Position)
		apos.Facing = math.Atan2(tpos.Y-apos.Y, tpos.X-apos.X)

		ApplyDamage(w, bestID, cmb.Damage, s.EventBus)

		if s.EventBus != nil {
			s.EventBus.Emit(core.Event{Type: core.EvtEntityAttack, Tick: w.TickCount, Payload: aid})
		}
	}
}

// ApplyDamage subtracts health from an entity and destroys it at zero
func ApplyDamage(w *core.World, id core.EntityID, damage int, bus *core.EventBus) {
	hp := w.Get(id, core.CompHealth)
	if hp == nil {
		return
	}
	h := hp.(*core.Health)

	if damage < 1 {
		damage = 1
	}
	h.Current -= damage

	if bus != nil {
		bus.Emit(core.Event{Type: core.EvtEntityDamaged, Tick: w.TickCount, Payload: id})
	}

	if h.Current <= 0 {
		h.Current = 0
		w.Destroy(id)
		if bus != nil {
			bus.Emit(core.Event{Type: core.EvtEntityDied, Tick: w.TickCount, Payload: id})
		}
	}
}
