package core

// HeroWeapon describes the hero's equipped attack
type HeroWeapon struct {
	Name       string
	Damage     int
	DmgKind    DamageKind
	Cooldown   float64 // seconds between swings/shots
	Ranged     bool    // true spawns a projectile, false is an instant hit
	ShotSpeed  float64 // projectile speed in tiles/second (ranged only)
	ShotSplash float64 // AoE radius on impact (0 = single target)
}

// Hero is the player avatar. The engine reads its position every frame and
// mutates it only from the per-tick update, never from render code.
type Hero struct {
	X, Y     float64 // top-left anchor in tile coords
	HalfSize float64 // offset from anchor to center
	Facing   float64
	Speed    float64 // tiles per second
	HP       int
	MaxHP    int

	Weapon        HeroWeapon
	AttackRangeSq float64 // squared attack range in tile units
	CooldownNow   float64

	// Movement intent for the current tick, set by the input adapter
	MoveX, MoveY float64
}

// NewHero creates a hero at a spawn position with default kit
func NewHero(x, y float64) *Hero {
	return &Hero{
		X:        x,
		Y:        y,
		HalfSize: 0.4,
		Speed:    4.0,
		HP:       100,
		MaxHP:    100,
		Weapon: HeroWeapon{
			Name:     "shortsword",
			Damage:   12,
			DmgKind:  DmgSlash,
			Cooldown: 0.5,
		},
		AttackRangeSq: 2.25, // range 1.5 tiles
	}
}

// Center returns the point all distance math uses. Every selector, range
// check and pick measures from here, never from the raw anchor.
func (h *Hero) Center() (float64, float64) {
	return h.X + h.HalfSize, h.Y + h.HalfSize
}

// Alive reports whether the hero still stands
func (h *Hero) Alive() bool { return h.HP > 0 }
