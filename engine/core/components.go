package core

import "math"

// ---- Position ----

// Position represents a pixel-space world position
type Position struct {
	X, Y   float64
	Facing float64 // direction in radians (0 = east)
}

func (p *Position) Type() ComponentType { return CompPosition }

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// AngleTo returns the angle from this position to another
func (p *Position) AngleTo(other *Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// ---- Sprite & Animation ----

// Sprite represents rendering info
type Sprite struct {
	SheetID string // sprite sheet identifier
	FrameX  int    // current frame column
	FrameY  int    // current frame row (direction)
	Width   int    // frame width in pixels
	Height  int    // frame height in pixels
	Color   uint32 // RGBA tint for untextured placeholder rendering
	Visible bool
	ZOrder  int
}

func (s *Sprite) Type() ComponentType { return CompSprite }

// AnimState represents animation state
type AnimState struct {
	CurrentAnim string
	Frame       int
	Frames      int // frames in the current animation
	Timer       float64
	Speed       float64 // frames per second
	Loop        bool
	Finished    bool
}

func (a *AnimState) Type() ComponentType { return CompAnim }

// ---- Health & Combat ----

// Health represents hit points
type Health struct {
	Current int
	Max     int
}

func (h *Health) Type() ComponentType { return CompHealth }

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// Combat represents melee attack capability
type Combat struct {
	Damage      int
	Range       float64 // attack reach in pixels
	Cooldown    float64 // seconds between swings
	CooldownNow float64
}

func (c *Combat) Type() ComponentType { return CompCombat }

// ---- Movement ----

// Vec2 is a pixel-space point
type Vec2 struct {
	X, Y float64
}

// Movable represents movement along a waypoint path
type Movable struct {
	Speed   float64 // pixels per second
	Path    []Vec2  // current waypoint path, pixel space
	PathIdx int     // index of the waypoint being approached
}

func (m *Movable) Type() ComponentType { return CompMovable }

// ---- Allegiance ----

// FactionID distinguishes sides in combat
type FactionID uint8

const (
	FactionPlayer FactionID = iota
	FactionMonster
	FactionNeutral
)

// Faction identifies which side an entity fights for
type Faction struct {
	ID FactionID
}

func (f *Faction) Type() ComponentType { return CompFaction }

// Hostile reports whether two factions attack each other
func (f *Faction) Hostile(other *Faction) bool {
	if f.ID == FactionNeutral || other.ID == FactionNeutral {
		return false
	}
	return f.ID != other.ID
}

// ---- Perception ----

// Vision bounds how far an agent notices and chases targets
type Vision struct {
	AggroRange float64 // pixels; targets closer than this get chased
	LeashRange float64 // pixels; chases further than this break off
}

func (v *Vision) Type() ComponentType { return CompVision }

// ---- Player ----

// PlayerTag marks the player-controlled entity
type PlayerTag struct{}

func (p *PlayerTag) Type() ComponentType { return CompPlayerTag }
