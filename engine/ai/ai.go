package ai

import (
	"math"
	"math/rand"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/geom"
	"github.com/hollowdeep/crawler-engine/engine/pathfind"
)

// BrainState is what an enemy is currently doing
type BrainState uint8

const (
	StateIdle BrainState = iota
	StateWander
	StateChase
	StateAttack
)

// Brain is the per-enemy behavior component
type Brain struct {
	State      BrainState
	ThinkTimer float64 // seconds until the next idle/wander decision
	WanderX    float64 // current wander drift direction
	WanderY    float64
}

func (b *Brain) Type() core.ComponentType { return core.CompBrain }

// AISystem drives enemy behavior: doze until the hero comes close, chase
// along a shared flow field, strike when adjacent. Damage to the hero is
// applied here; enemy deaths belong to the combat layer.
//
// Wander directions draw from Rand, never the global source, so two runs
// seeded the same stay in lockstep and a recorded session plays back
// faithfully.
type AISystem struct {
	Hero     *core.Hero
	NavGrid  *pathfind.NavGrid
	EventBus *core.EventBus
	Rand     *rand.Rand

	flow      *pathfind.FlowField
	flowTileX int
	flowTileY int
}

func (s *AISystem) Priority() int { return 8 }

func (s *AISystem) Update(w *core.World, dt float64) {
	if s.Hero == nil {
		return
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(1))
	}
	hx, hy := s.Hero.Center()
	s.refreshFlow(hx, hy)

	ids := w.Query(core.CompPosition, core.CompMovable, core.CompHostile, core.CompBrain)

	// Snapshot positions for separation steering
	positions := make(map[core.EntityID][3]float64, len(ids))
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		positions[id] = [3]float64{pos.X, pos.Y, 0.4}
	}

	heroUp := s.Hero.Alive()

	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		host := w.Get(id, core.CompHostile).(*core.Hostile)
		brain := w.Get(id, core.CompBrain).(*Brain)

		if host.CooldownNow > 0 {
			host.CooldownNow -= dt
		}
		brain.ThinkTimer -= dt

		distSq := geom.SqDist(pos.X, pos.Y, hx, hy)

		// Aggro check: hero inside range and visible
		aggro := heroUp && distSq <= host.AggroRange*host.AggroRange && s.canSee(pos, hx, hy, mov)

		switch brain.State {
		case StateIdle:
			mov.VX, mov.VY = 0, 0
			if aggro {
				brain.State = StateChase
			} else if brain.ThinkTimer <= 0 {
				brain.State = StateWander
				brain.ThinkTimer = 1.5 + s.Rand.Float64()*2.0
				ang := s.Rand.Float64() * 2 * math.Pi
				brain.WanderX = math.Cos(ang)
				brain.WanderY = math.Sin(ang)
			}

		case StateWander:
			if aggro {
				brain.State = StateChase
			} else {
				mov.VX = brain.WanderX * mov.Speed * 0.3
				mov.VY = brain.WanderY * mov.Speed * 0.3
				if brain.ThinkTimer <= 0 {
					brain.State = StateIdle
					brain.ThinkTimer = 1.0 + s.Rand.Float64()*2.5
					mov.VX, mov.VY = 0, 0
				}
			}

		case StateChase:
			if !heroUp {
				brain.State = StateIdle
				mov.VX, mov.VY = 0, 0
				break
			}
			if distSq <= host.MeleeRange*host.MeleeRange {
				brain.State = StateAttack
				mov.VX, mov.VY = 0, 0
				break
			}
			others := s.neighbors(id, pos, positions)
			var steer pathfind.SteerResult
			if distSq <= 2.25 || mov.MoveKind == core.MoveFly || s.flow == nil {
				// Close in (or flying over obstacles): head straight
				steer = pathfind.SteerSeek(pos.X, pos.Y, hx, hy, mov.Speed, others)
			} else {
				steer = pathfind.SteerFlow(s.flow, pos.X, pos.Y, mov.Speed, others)
			}
			mov.VX, mov.VY = steer.VX, steer.VY

		case StateAttack:
			if !heroUp {
				brain.State = StateIdle
				break
			}
			// Let the hero slip slightly past melee range before re-chasing
			leash := host.MeleeRange * 1.2
			if distSq > leash*leash {
				brain.State = StateChase
				break
			}
			pos.Facing = math.Atan2(hy-pos.Y, hx-pos.X)
			if host.CooldownNow <= 0 {
				host.CooldownNow = host.Cooldown
				s.strike(w, host)
			}
		}
	}
}

// strike damages the hero directly; hero death flips the game over
func (s *AISystem) strike(w *core.World, host *core.Hostile) {
	if !s.Hero.Alive() {
		return
	}
	s.Hero.HP -= host.MeleeDamage
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtEntityDamaged, Tick: w.TickCount, Payload: core.DamagePayload{Amount: host.MeleeDamage}})
	}
	if s.Hero.HP <= 0 {
		s.Hero.HP = 0
		if s.EventBus != nil {
			s.EventBus.Emit(core.Event{Type: core.EvtHeroDied, Tick: w.TickCount})
		}
	}
}

func (s *AISystem) canSee(pos *core.Position, hx, hy float64, mov *core.Movable) bool {
	if s.NavGrid == nil {
		return true
	}
	m := pathfind.Walker
	if mov.MoveKind == core.MoveFly {
		m = pathfind.Flyer
	}
	a := pathfind.Point{X: int(math.Floor(pos.X)), Y: int(math.Floor(pos.Y))}
	b := pathfind.Point{X: int(math.Floor(hx)), Y: int(math.Floor(hy))}
	return pathfind.LineOfSight(s.NavGrid, a, b, m)
}

func (s *AISystem) neighbors(self core.EntityID, pos *core.Position, positions map[core.EntityID][3]float64) [][3]float64 {
	var others [][3]float64
	for oid, op := range positions {
		if oid == self {
			continue
		}
		dx := pos.X - op[0]
		dy := pos.Y - op[1]
		if dx*dx+dy*dy < 9 { // within 3 tiles
			others = append(others, op)
		}
	}
	return others
}

func (s *AISystem) refreshFlow(hx, hy float64) {
	if s.NavGrid == nil {
		return
	}
	tx, ty := int(math.Floor(hx)), int(math.Floor(hy))
	if s.flow == nil || tx != s.flowTileX || ty != s.flowTileY {
		s.flow = pathfind.NewFlowField(s.NavGrid, tx, ty, pathfind.Walker)
		s.flowTileX = tx
		s.flowTileY = ty
	}
}
