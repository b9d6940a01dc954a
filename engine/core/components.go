package core

import (
	"math"

	"github.com/hollowdeep/crawler-engine/engine/geom"
)

// ---- Position ----

// Position represents a world position in tile coordinates (fractional)
type Position struct {
	X, Y   float64
	Facing float64 // direction in radians (0 = east)
}

func (p *Position) Type() ComponentType { return CompPosition }

// SqDistTo returns squared euclidean distance to another position
func (p *Position) SqDistTo(other *Position) float64 {
	return geom.SqDist(p.X, p.Y, other.X, other.Y)
}

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	return geom.Dist(p.X, p.Y, other.X, other.Y)
}

// AngleTo returns the angle from this position to another
func (p *Position) AngleTo(other *Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// ---- Sprite ----

// BodyShape selects the procedural shape drawn for an entity
type BodyShape uint8

const (
	ShapeCircle BodyShape = iota
	ShapeDiamond
	ShapeCross
)

// Sprite represents rendering info for the procedural renderer
type Sprite struct {
	Shape   BodyShape
	Radius  float64 // body radius in tile units
	Color   uint32  // RGBA
	Visible bool
	ZOrder  int
}

func (s *Sprite) Type() ComponentType { return CompSprite }

// ---- Health ----

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

// Alive reports whether the entity still has hit points
func (h *Health) Alive() bool { return h.Current > 0 }

// ---- Damage & armor ----

type DamageKind uint8

const (
	DmgSlash DamageKind = iota
	DmgPierce
	DmgBlunt
	DmgArcane
)

type ArmorKind uint8

const (
	ArmorNone ArmorKind = iota
	ArmorHide
	ArmorBone
	ArmorPlate
	ArmorEthereal
)

// ---- Movement ----

type MoveKind uint8

const (
	MoveWalk MoveKind = iota
	MoveFly
)

// Movable represents movement capability
type Movable struct {
	Speed    float64 // tiles per second
	MoveKind MoveKind
	VX, VY   float64 // velocity set by AI/steering, applied by movement
}

func (m *Movable) Type() ComponentType { return CompMovable }

// ---- Hostile ----

// Hostile marks an entity as an enemy of the hero and carries its combat
// stats. Anything with Hostile + Position + Health is a valid target
// candidate while its health holds.
type Hostile struct {
	Kind        string // bestiary key ("rat", "skeleton", ...)
	Armor       ArmorKind
	AggroRange  float64 // tiles; hero inside this wakes the enemy
	MeleeRange  float64 // tiles; enemy strikes inside this
	MeleeDamage int
	MeleeKind   DamageKind
	Cooldown    float64 // seconds between strikes
	CooldownNow float64
}

func (h *Hostile) Type() ComponentType { return CompHostile }

// ---- Projectile ----

// Projectile represents a hero shot homing toward its target
type Projectile struct {
	SourceID EntityID
	TargetID EntityID
	TargetX  float64 // last known target position, used after target death
	TargetY  float64
	Speed    float64
	Damage   int
	DmgKind  DamageKind
	Splash   float64 // AoE radius (0 = single target)
}

func (p *Projectile) Type() ComponentType { return CompProjectile }

// ---- Flash ----

// Flash briefly overrides an entity's sprite color after it takes a hit.
// The flash system restores Original when the timer runs out.
type Flash struct {
	Timer    float64
	Original uint32
}

func (f *Flash) Type() ComponentType { return CompFlash }

// ---- Corpse ----

// Corpse keeps a dead enemy's body on screen briefly before removal.
// Corpses never carry Hostile, so they are invisible to targeting.
type Corpse struct {
	Timer float64 // seconds until removal
}

func (c *Corpse) Type() ComponentType { return CompCorpse }
