package systems

import (
	"sort"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/geom"
	"github.com/hollowdeep/crawler-engine/engine/input"
	"github.com/hollowdeep/crawler-engine/engine/render"
)

// Candidate is a per-tick snapshot row of one potential target. Selection
// and cycling operate on these snapshots, never on live components, so a
// mid-tick death can't slip a stale enemy past the alive filter.
type Candidate struct {
	ID    core.EntityID
	X, Y  float64
	Alive bool
}

// CollectCandidates builds the candidate snapshot from the world, in spawn
// order. Spawn order is the tie-break for equal distances, so it must be
// stable across calls.
func CollectCandidates(w *core.World) []Candidate {
	ids := w.Query(core.CompHostile, core.CompPosition, core.CompHealth)
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		hp := w.Get(id, core.CompHealth).(*core.Health)
		out = append(out, Candidate{ID: id, X: pos.X, Y: pos.Y, Alive: hp.Alive()})
	}
	return out
}

// SelectNearest returns the alive enemy with minimum squared distance to
// the point (px, py). Ties go to the first such enemy in input order.
func SelectNearest(px, py float64, enemies []Candidate) (core.EntityID, bool) {
	var bestID core.EntityID
	bestDist := 0.0
	found := false
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		d := geom.SqDist(px, py, e.X, e.Y)
		if !found || d < bestDist {
			found = true
			bestDist = d
			bestID = e.ID
		}
	}
	return bestID, found
}

// SelectAtPoint returns the alive enemy closest to a world point, if any
// lies within pickRadius of it. pickRadius is a tap tolerance, not the
// attack range.
func SelectAtPoint(wx, wy float64, enemies []Candidate, pickRadius float64) (core.EntityID, bool) {
	var bestID core.EntityID
	bestDist := 0.0
	found := false
	limit := pickRadius * pickRadius
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		d := geom.SqDist(wx, wy, e.X, e.Y)
		if d > limit {
			continue
		}
		if !found || d < bestDist {
			found = true
			bestDist = d
			bestID = e.ID
		}
	}
	return bestID, found
}

// CycleDir selects the cycling direction
type CycleDir int8

const (
	CycleForward  CycleDir = 1
	CycleBackward CycleDir = -1
)

// Cycle advances the target selection through the alive enemies ordered by
// ascending distance from (px, py), wrapping at both ends. When current is
// not in the ordered list (dead, removed, or no prior target), cycling
// degenerates to nearest selection regardless of direction, so it always
// converges on a valid target when one exists.
func Cycle(dir CycleDir, px, py float64, enemies []Candidate, current core.EntityID) (core.EntityID, bool) {
	type entry struct {
		id   core.EntityID
		dist float64
	}
	var ordered []entry
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		ordered = append(ordered, entry{id: e.ID, dist: geom.SqDist(px, py, e.X, e.Y)})
	}
	if len(ordered) == 0 {
		return 0, false
	}
	// Stable: equal distances keep input order
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].dist < ordered[j].dist
	})

	cur := -1
	for i, e := range ordered {
		if e.id == current {
			cur = i
			break
		}
	}
	if cur < 0 {
		return ordered[0].id, true
	}
	n := len(ordered)
	next := (cur + int(dir) + n) % n
	return ordered[next].id, true
}

// RangeStatus classifies the current target against the attack range
type RangeStatus struct {
	InRange  bool
	Distance float64 // real distance; only computed when out of range
}

// EvaluateRange compares squared distance against the pre-squared attack
// range. The boundary is inclusive: squared distance equal to the threshold
// counts as in range. Distance is computed only for the out-of-range case,
// where the HUD shows it.
func EvaluateRange(px, py, tx, ty, attackRangeSq float64) RangeStatus {
	d := geom.SqDist(px, py, tx, ty)
	if d <= attackRangeSq {
		return RangeStatus{InRange: true}
	}
	return RangeStatus{Distance: geom.Dist(px, py, tx, ty)}
}

// TargetState is the single owned slot for the current target. It stores
// only the entity id; holders must re-resolve against the live world before
// trusting it, since the enemy can die between validations.
type TargetState struct {
	id  core.EntityID
	has bool
}

// Set designates an enemy as the current target
func (t *TargetState) Set(id core.EntityID) {
	t.id = id
	t.has = true
}

// Clear drops the current target
func (t *TargetState) Clear() {
	t.id = 0
	t.has = false
}

// Current returns the held target id, if any
func (t *TargetState) Current() (core.EntityID, bool) {
	return t.id, t.has
}

// TargetingSystem owns the target slot. Each tick it drains the queued
// logical actions, then re-validates the held target against the live
// world: a target that died since last tick is dropped and the nearest
// remaining enemy is acquired within the same tick, so combat never stalls
// on a stale reference.
type TargetingSystem struct {
	Hero       *core.Hero
	Camera     *render.Camera
	Actions    *input.Queue
	EventBus   *core.EventBus
	PickRadius float64 // world-tile tap tolerance for pointer picks

	state          TargetState
	rangeNow       RangeStatus
	attackRequests int
	tick           uint64 // last simulated tick, stamps emitted events
}

func (s *TargetingSystem) Priority() int { return 5 }

func (s *TargetingSystem) Update(w *core.World, dt float64) {
	s.tick = w.TickCount
	cands := CollectCandidates(w)

	if s.Actions != nil {
		for _, a := range s.Actions.Drain() {
			s.apply(a, cands, w)
		}
	}

	s.validate(cands, w)

	// Range is recomputed every tick the target is held; both sides move
	s.rangeNow = RangeStatus{}
	if id, ok := s.state.Current(); ok && s.Hero != nil {
		if pos, k := resolvePosition(w, id); k {
			px, py := s.Hero.Center()
			s.rangeNow = EvaluateRange(px, py, pos.X, pos.Y, s.Hero.AttackRangeSq)
		}
	}
}

func (s *TargetingSystem) apply(a input.Action, cands []Candidate, w *core.World) {
	switch a.Kind {
	case input.ActAttack:
		// Consumed by the combat system, which runs later this tick
		s.attackRequests++
		return
	case input.ActResetTarget:
		s.Reset()
		return
	}

	if s.Hero == nil {
		return
	}
	px, py := s.Hero.Center()

	switch a.Kind {
	case input.ActSelectNearest:
		if id, ok := SelectNearest(px, py, cands); ok {
			s.setTarget(id)
		} else {
			s.dropTarget()
		}
	case input.ActCycleForward, input.ActCycleBackward:
		dir := CycleForward
		if a.Kind == input.ActCycleBackward {
			dir = CycleBackward
		}
		current, _ := s.state.Current()
		if id, ok := Cycle(dir, px, py, cands, current); ok {
			s.setTarget(id)
		} else {
			s.dropTarget()
		}
	case input.ActPointerPick:
		if s.Camera == nil {
			return
		}
		wx, wy, ok := s.Camera.ScreenToWorld(a.X, a.Y)
		if !ok {
			return // viewport unusable; decline the pick
		}
		if id, picked := SelectAtPoint(wx, wy, cands, s.PickRadius); picked {
			s.setTarget(id)
		}
		// A miss with enemies still alive keeps the current target
	}
}

// validate drops a dead or vanished target and immediately retargets the
// nearest remaining enemy, in the same tick
func (s *TargetingSystem) validate(cands []Candidate, w *core.World) {
	id, ok := s.state.Current()
	if !ok {
		return
	}
	for _, c := range cands {
		if c.ID == id && c.Alive {
			return
		}
	}
	s.dropTarget()
	if s.Hero == nil {
		return
	}
	px, py := s.Hero.Center()
	if next, found := SelectNearest(px, py, cands); found {
		s.setTarget(next)
	}
}

func (s *TargetingSystem) setTarget(id core.EntityID) {
	if cur, ok := s.state.Current(); ok && cur == id {
		return
	}
	s.state.Set(id)
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtTargetChanged, Tick: s.tick, Payload: core.TargetPayload{ID: id}})
	}
}

func (s *TargetingSystem) dropTarget() {
	if _, ok := s.state.Current(); !ok {
		return
	}
	s.state.Clear()
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtTargetLost, Tick: s.tick})
	}
}

// Reset forces NoTarget unconditionally, with no auto-retarget. Callers use
// it on room exit and entry.
func (s *TargetingSystem) Reset() {
	s.dropTarget()
	s.attackRequests = 0
}

// CurrentTarget returns the held target id, if any
func (s *TargetingSystem) CurrentTarget() (core.EntityID, bool) {
	return s.state.Current()
}

// Range returns the latest range evaluation for the held target. Zero value
// when no target is held.
func (s *TargetingSystem) Range() RangeStatus {
	return s.rangeNow
}

// TakeAttackRequests hands the tick's queued attack presses to the combat
// system and resets the counter
func (s *TargetingSystem) TakeAttackRequests() int {
	n := s.attackRequests
	s.attackRequests = 0
	return n
}

func resolvePosition(w *core.World, id core.EntityID) (*core.Position, bool) {
	if c := w.Get(id, core.CompPosition); c != nil {
		return c.(*core.Position), true
	}
	return nil, false
}
