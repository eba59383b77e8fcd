package systems

import (
	"math"

	"github.com/hollowmere/dungeon-engine/engine/core"
)

// AnimationSystem advances sprite animation frames and picks the sprite
// sheet row from the entity's facing direction
type AnimationSystem struct{}

func (s *AnimationSystem) Priority() int { return 60 }

func (s *AnimationSystem) Update(w *core.World, dt float64) {
	ids := w.Query(core.CompAnim, core.CompSprite)
	for _, id := range ids {
		anim := w.Get(id, core.CompAnim).(*core.AnimState)
		sprite := w.Get(id, core.CompSprite).(*core.Sprite)

		if pos := w.Get(id, core.CompPosition); pos != nil {
			sprite.FrameY = facingRow(pos.(*core.Position).Facing)
		}

		if anim.Finished || anim.Speed <= 0 {
			continue
		}

		anim.Timer += dt
		frameDur := 1.0 / anim.Speed
		for anim.Timer >= frameDur {
			anim.Timer -= frameDur
			anim.Frame++
		}

		frames := anim.Frames
		if frames <= 0 {
			frames = 4
		}
		if anim.Frame >= frames {
			if anim.Loop {
				anim.Frame %= frames
			} else {
				anim.Finished = true
				anim.Frame = frames - 1
			}
		}
		sprite.FrameX = anim.Frame
	}
}

// facingRow maps a facing angle to a 4-direction sheet row:
// 0=down, 1=left, 2=right, 3=up
func facingRow(facing float64) int {
	a := math.Mod(facing+2*math.Pi, 2*math.Pi)
	switch {
	case a < math.Pi/4 || a >= 7*math.Pi/4:
		return 2 // east
	case a < 3*math.Pi/4:
		return 0 // south (screen-down)
	case a < 5*math.Pi/4:
		return 1 // west
	default:
		return 3 // north
	}
}
