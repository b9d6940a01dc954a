package systems

import (
	"testing"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/input"
	"github.com/hollowdeep/crawler-engine/engine/render"
)

func newCombatWorld(t *testing.T) (*core.World, *core.Hero, *TargetingSystem, *CombatSystem, *input.Queue) {
	t.Helper()
	w := core.NewWorld(30)
	hero := core.NewHero(-0.4, -0.4) // center at origin
	q := input.NewQueue()
	bus := core.NewEventBus()
	targ := &TargetingSystem{
		Hero:       hero,
		Camera:     render.NewCamera(800, 600),
		Actions:    q,
		EventBus:   bus,
		PickRadius: 1.0,
	}
	combat := &CombatSystem{Hero: hero, Targeting: targ, EventBus: bus}
	w.AddSystem(targ)
	w.AddSystem(combat)
	return w, hero, targ, combat, q
}

func TestAttackWithoutTargetIsBlocked(t *testing.T) {
	w, _, _, combat, q := newCombatWorld(t)
	// An enemy exists but was never selected. The slot only auto-acquires
	// after a held target dies; an empty slot stays empty.
	spawnHostile(w, 10, 0, 10)

	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	if !combat.HasOutcome() {
		t.Fatal("attack request must produce an outcome")
	}
	if combat.LastOutcome.Verdict != AttackBlockedNoTarget {
		t.Errorf("verdict = %d, want AttackBlockedNoTarget", combat.LastOutcome.Verdict)
	}
}

func TestAttackInRangeExecutesAndDamages(t *testing.T) {
	w, _, _, combat, q := newCombatWorld(t)
	e := spawnHostile(w, 1, 0, 50)

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	if combat.LastOutcome.Verdict != AttackExecuted {
		t.Fatalf("verdict = %d, want AttackExecuted", combat.LastOutcome.Verdict)
	}
	if combat.LastOutcome.Target != e {
		t.Errorf("outcome target = %d, want %d", combat.LastOutcome.Target, e)
	}
	hp := w.Get(e, core.CompHealth).(*core.Health)
	if hp.Current >= 50 {
		t.Errorf("target HP unchanged at %d, the swing must land", hp.Current)
	}
}

func TestAttackOutOfRangeReportsDistance(t *testing.T) {
	w, hero, _, combat, q := newCombatWorld(t)
	hero.AttackRangeSq = 64 // range 8
	e := spawnHostile(w, 6, 8, 40) // distance 10

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	if combat.LastOutcome.Verdict != AttackBlockedOutOfRange {
		t.Fatalf("verdict = %d, want AttackBlockedOutOfRange", combat.LastOutcome.Verdict)
	}
	if combat.LastOutcome.Distance != 10 {
		t.Errorf("blocked distance = %v, want 10", combat.LastOutcome.Distance)
	}
	hp := w.Get(e, core.CompHealth).(*core.Health)
	if hp.Current != 40 {
		t.Errorf("out-of-range attack must not damage, HP = %d", hp.Current)
	}
}

func TestAttackBoundaryDistanceLands(t *testing.T) {
	w, hero, _, combat, q := newCombatWorld(t)
	hero.AttackRangeSq = 25
	spawnHostile(w, 3, 4, 40) // squared distance exactly 25

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	if combat.LastOutcome.Verdict != AttackExecuted {
		t.Errorf("boundary distance must execute, verdict = %d", combat.LastOutcome.Verdict)
	}
}

func TestCooldownDropsExtraRequests(t *testing.T) {
	w, _, _, combat, q := newCombatWorld(t)
	e := spawnHostile(w, 1, 0, 1000)

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	q.Push(input.Action{Kind: input.ActAttack})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	hp := w.Get(e, core.CompHealth).(*core.Health)
	lost := 1000 - hp.Current
	if lost != 12 {
		t.Errorf("three mashed attacks in one tick cost %d HP, want one swing's 12", lost)
	}
	if combat.LastOutcome.Verdict != AttackExecuted {
		t.Errorf("dropped requests must not overwrite the executed outcome, got %d", combat.LastOutcome.Verdict)
	}
}

func TestApplyDamageArmorTable(t *testing.T) {
	cases := []struct {
		name  string
		kind  core.DamageKind
		armor core.ArmorKind
		base  int
		want  int
	}{
		{"slash vs none", core.DmgSlash, core.ArmorNone, 10, 10},
		{"slash vs plate", core.DmgSlash, core.ArmorPlate, 10, 5},
		{"blunt vs bone", core.DmgBlunt, core.ArmorBone, 10, 15},
		{"pierce vs bone", core.DmgPierce, core.ArmorBone, 10, 5},
		{"arcane vs ethereal", core.DmgArcane, core.ArmorEthereal, 10, 16},
		{"minimum one", core.DmgSlash, core.ArmorEthereal, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := core.NewWorld(30)
			id := w.Spawn()
			w.Attach(id, &core.Position{})
			w.Attach(id, &core.Health{Current: 100, Max: 100})
			w.Attach(id, &core.Hostile{Armor: tc.armor})

			ApplyDamage(w, id, tc.base, tc.kind, nil)
			hp := w.Get(id, core.CompHealth).(*core.Health)
			if got := 100 - hp.Current; got != tc.want {
				t.Errorf("dealt %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDeathDetachesHostileImmediately(t *testing.T) {
	w := core.NewWorld(30)
	id := w.Spawn()
	w.Attach(id, &core.Position{})
	w.Attach(id, &core.Health{Current: 5, Max: 5})
	w.Attach(id, &core.Hostile{})

	ApplyDamage(w, id, 50, core.DmgSlash, nil)

	if w.Has(id, core.CompHostile) {
		t.Error("a dead enemy must lose Hostile in the same call, not next tick")
	}
	if !w.Has(id, core.CompCorpse) {
		t.Error("a dead enemy must become a corpse")
	}
	if len(CollectCandidates(w)) != 0 {
		t.Error("a dead enemy must vanish from the candidate snapshot")
	}
}

func TestKillingTargetRetargetsNextTick(t *testing.T) {
	w, _, targ, _, q := newCombatWorld(t)
	victim := spawnHostile(w, 1, 0, 5) // dies to one 12-damage swing
	other := spawnHostile(w, 3, 0, 50)

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	hp := w.Get(victim, core.CompHealth).(*core.Health)
	if hp.Current != 0 {
		t.Fatalf("victim HP = %d, want 0", hp.Current)
	}

	w.Tick(1.0 / 30)
	if id, ok := targ.CurrentTarget(); !ok || id != other {
		t.Errorf("after the kill current = (%d, %v), want auto-retarget to %d", id, ok, other)
	}
}

func TestRangedAttackSpawnsProjectileThatHits(t *testing.T) {
	w, hero, _, _, q := newCombatWorld(t)
	w.AddSystem(&ProjectileSystem{})
	hero.Weapon = core.HeroWeapon{Name: "shortbow", Damage: 8, DmgKind: core.DmgPierce, Cooldown: 0.9, Ranged: true, ShotSpeed: 10}
	hero.AttackRangeSq = 36

	e := spawnHostile(w, 4, 0, 40)

	q.Push(input.Action{Kind: input.ActSelectNearest})
	q.Push(input.Action{Kind: input.ActAttack})
	w.Tick(1.0 / 30)

	if len(w.Query(core.CompProjectile)) != 1 {
		t.Fatal("ranged attack must spawn exactly one projectile")
	}

	// 10 tiles/s over 4 tiles needs ~0.4s; give it a second of ticks
	for i := 0; i < 30; i++ {
		w.Tick(1.0 / 30)
	}
	hp := w.Get(e, core.CompHealth).(*core.Health)
	if hp.Current != 32 {
		t.Errorf("target HP after arrow = %d, want 32", hp.Current)
	}
	if len(w.Query(core.CompProjectile)) != 0 {
		t.Error("projectile must be destroyed on impact")
	}
}
