package systems

import (
	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/geom"
)

// DamageMultiplier table: [DamageKind][ArmorKind] -> multiplier
var DamageMultiplier = [4][5]float64{
	// None  Hide  Bone  Plate Ethereal
	{1.0, 0.9, 0.7, 0.5, 0.3}, // Slash
	{1.0, 1.1, 0.5, 0.8, 0.3}, // Pierce
	{1.0, 0.8, 1.5, 0.6, 0.3}, // Blunt
	{1.0, 1.0, 1.0, 1.0, 1.6}, // Arcane
}

// AttackVerdict says what happened to an attack request
type AttackVerdict uint8

const (
	AttackExecuted AttackVerdict = iota
	AttackBlockedNoTarget
	AttackBlockedOutOfRange
)

// AttackOutcome is the result of one attack request, surfaced to the HUD so
// the player learns why nothing happened
type AttackOutcome struct {
	Verdict  AttackVerdict
	Target   core.EntityID // valid for AttackExecuted
	Distance float64       // valid for AttackBlockedOutOfRange
}

// CombatSystem executes hero attacks against the current target and owns
// damage resolution. An attack lands only when a target is held, the target
// re-resolves to a living enemy, and the range check passes; anything else
// is blocked with a reason. The hero never hits an unintended enemy.
type CombatSystem struct {
	Hero      *core.Hero
	Targeting *TargetingSystem
	EventBus  *core.EventBus

	// Last outcome of the most recent attack request, for UI feedback
	LastOutcome AttackOutcome
	hasOutcome  bool
}

func (s *CombatSystem) Priority() int { return 20 }

func (s *CombatSystem) Update(w *core.World, dt float64) {
	if s.Hero == nil || s.Targeting == nil {
		return
	}
	if s.Hero.CooldownNow > 0 {
		s.Hero.CooldownNow -= dt
	}

	requests := s.Targeting.TakeAttackRequests()
	for i := 0; i < requests; i++ {
		if s.Hero.CooldownNow > 0 {
			break // swing still recovering; request is dropped, not blocked
		}
		outcome := s.Attack(w)
		s.LastOutcome = outcome
		s.hasOutcome = true

		switch outcome.Verdict {
		case AttackExecuted:
			s.Hero.CooldownNow = s.Hero.Weapon.Cooldown
			s.execute(w, outcome.Target)
			if s.EventBus != nil {
				s.EventBus.Emit(core.Event{
					Type:    core.EvtAttackExecuted,
					Tick:    w.TickCount,
					Payload: core.TargetPayload{ID: outcome.Target},
				})
			}
		default:
			if s.EventBus != nil {
				s.EventBus.Emit(core.Event{Type: core.EvtAttackBlocked, Tick: w.TickCount, Payload: outcome})
			}
		}
	}
}

// Attack is the gate between the target slot and the hero's weapon. It
// re-resolves the held id against the live world before trusting it.
func (s *CombatSystem) Attack(w *core.World) AttackOutcome {
	id, ok := s.Targeting.CurrentTarget()
	if !ok {
		return AttackOutcome{Verdict: AttackBlockedNoTarget}
	}

	pos := w.Get(id, core.CompPosition)
	hp := w.Get(id, core.CompHealth)
	if pos == nil || hp == nil || !hp.(*core.Health).Alive() || !w.Has(id, core.CompHostile) {
		// Stale reference; the targeting system will retarget next tick
		return AttackOutcome{Verdict: AttackBlockedNoTarget}
	}

	p := pos.(*core.Position)
	px, py := s.Hero.Center()
	rng := EvaluateRange(px, py, p.X, p.Y, s.Hero.AttackRangeSq)
	if !rng.InRange {
		return AttackOutcome{Verdict: AttackBlockedOutOfRange, Distance: rng.Distance}
	}
	return AttackOutcome{Verdict: AttackExecuted, Target: id}
}

// execute delivers the hit: hitscan for melee, a homing projectile for
// ranged weapons
func (s *CombatSystem) execute(w *core.World, target core.EntityID) {
	wep := s.Hero.Weapon
	if !wep.Ranged {
		ApplyDamage(w, target, wep.Damage, wep.DmgKind, s.EventBus)
		return
	}

	tpos := w.Get(target, core.CompPosition).(*core.Position)
	hx, hy := s.Hero.Center()
	pid := w.Spawn()
	w.Attach(pid, &core.Position{X: hx, Y: hy})
	w.Attach(pid, &core.Projectile{
		TargetID: target,
		TargetX:  tpos.X,
		TargetY:  tpos.Y,
		Speed:    wep.ShotSpeed,
		Damage:   wep.Damage,
		DmgKind:  wep.DmgKind,
		Splash:   wep.ShotSplash,
	})
	w.Attach(pid, &core.Sprite{Shape: core.ShapeCross, Radius: 0.12, Color: 0xFFE080FF, Visible: true, ZOrder: 5})
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtProjectileFired, Tick: w.TickCount})
	}
}

// HasOutcome reports whether any attack has been attempted yet
func (s *CombatSystem) HasOutcome() bool { return s.hasOutcome }

// ApplyDamage applies damage to an enemy considering its armor kind. A dead
// enemy loses its Hostile component immediately, so it can never be
// targeted again even within the same tick, and lingers briefly as a
// corpse before removal.
func ApplyDamage(w *core.World, id core.EntityID, baseDamage int, kind core.DamageKind, bus *core.EventBus) {
	hp := w.Get(id, core.CompHealth)
	if hp == nil {
		return
	}
	h := hp.(*core.Health)
	if !h.Alive() {
		return
	}

	mult := 1.0
	if hc := w.Get(id, core.CompHostile); hc != nil {
		armor := hc.(*core.Hostile).Armor
		if int(kind) < len(DamageMultiplier) && int(armor) < len(DamageMultiplier[0]) {
			mult = DamageMultiplier[kind][armor]
		}
	}

	finalDmg := int(float64(baseDamage) * mult)
	if finalDmg < 1 {
		finalDmg = 1
	}
	h.Current -= finalDmg
	if bus != nil {
		bus.Emit(core.Event{Type: core.EvtEntityDamaged, Tick: w.TickCount, Payload: core.DamagePayload{ID: id, Amount: finalDmg}})
	}

	if spr := w.Get(id, core.CompSprite); spr != nil && h.Current > 0 {
		// Survivors flash white for a few frames; the grey of death below
		// must not be overwritten, so fatal hits skip it
		if !w.Has(id, core.CompFlash) {
			w.Attach(id, &core.Flash{Timer: 0.12, Original: spr.(*core.Sprite).Color})
		}
	}

	if h.Current <= 0 {
		h.Current = 0
		w.Detach(id, core.CompFlash)
		w.Detach(id, core.CompHostile)
		w.Detach(id, core.CompMovable)
		w.Detach(id, core.CompBrain)
		w.Attach(id, &core.Corpse{Timer: 1.5})
		if spr := w.Get(id, core.CompSprite); spr != nil {
			spr.(*core.Sprite).Color = 0x55555580
		}
		if bus != nil {
			bus.Emit(core.Event{Type: core.EvtEnemyDied, Tick: w.TickCount, Payload: core.DamagePayload{ID: id, Amount: finalDmg}})
		}
	}
}

// ProjectileSystem moves hero shots and handles impact
type ProjectileSystem struct {
	EventBus *core.EventBus
}

func (s *ProjectileSystem) Priority() int { return 25 }

func (s *ProjectileSystem) Update(w *core.World, dt float64) {
	ids := w.Query(core.CompPosition, core.CompProjectile)
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		proj := w.Get(id, core.CompProjectile).(*core.Projectile)

		// Track the target while it lives; fly to the last known spot after
		if tpos := w.Get(proj.TargetID, core.CompPosition); tpos != nil && w.Has(proj.TargetID, core.CompHostile) {
			tp := tpos.(*core.Position)
			proj.TargetX = tp.X
			proj.TargetY = tp.Y
		}

		dx := proj.TargetX - pos.X
		dy := proj.TargetY - pos.Y
		dist := geom.Dist(pos.X, pos.Y, proj.TargetX, proj.TargetY)

		if dist < 0.3 {
			s.impact(w, pos, proj)
			w.Destroy(id)
			continue
		}

		speed := proj.Speed * dt
		pos.X += dx / dist * speed
		pos.Y += dy / dist * speed
	}
}

func (s *ProjectileSystem) impact(w *core.World, pos *core.Position, proj *core.Projectile) {
	if proj.Splash > 0 {
		for _, tid := range w.Query(core.CompPosition, core.CompHealth, core.CompHostile) {
			tp := w.Get(tid, core.CompPosition).(*core.Position)
			d := geom.Dist(tp.X, tp.Y, pos.X, pos.Y)
			if d <= proj.Splash {
				scale := 1.0 - d/proj.Splash
				dmg := int(float64(proj.Damage) * scale)
				if dmg < 1 {
					dmg = 1
				}
				ApplyDamage(w, tid, dmg, proj.DmgKind, s.EventBus)
			}
		}
	} else if w.Has(proj.TargetID, core.CompHostile) {
		ApplyDamage(w, proj.TargetID, proj.Damage, proj.DmgKind, s.EventBus)
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtProjectileHit, Tick: w.TickCount})
	}
}

// CorpseSystem fades out dead bodies
type CorpseSystem struct{}

func (s *CorpseSystem) Priority() int { return 30 }

func (s *CorpseSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompCorpse) {
		c := w.Get(id, core.CompCorpse).(*core.Corpse)
		c.Timer -= dt
		if c.Timer <= 0 {
			w.Destroy(id)
		}
	}
}
