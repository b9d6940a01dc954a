package core

import "testing"

func TestQueryReturnsSpawnOrder(t *testing.T) {
	w := NewWorld(30)
	var want []EntityID
	for i := 0; i < 8; i++ {
		id := w.Spawn()
		w.Attach(id, &Position{X: float64(i)})
		want = append(want, id)
	}

	// Repeated queries over an unchanged world must agree exactly
	for pass := 0; pass < 3; pass++ {
		got := w.Query(CompPosition)
		if len(got) != len(want) {
			t.Fatalf("pass %d: query returned %d ids, want %d", pass, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("pass %d: position %d holds %d, want spawn order %d", pass, i, got[i], want[i])
			}
		}
	}
}

func TestQueryRequiresAllComponents(t *testing.T) {
	w := NewWorld(30)
	both := w.Spawn()
	w.Attach(both, &Position{})
	w.Attach(both, &Health{Current: 1, Max: 1})
	posOnly := w.Spawn()
	w.Attach(posOnly, &Position{})

	got := w.Query(CompPosition, CompHealth)
	if len(got) != 1 || got[0] != both {
		t.Errorf("query = %v, want just %d", got, both)
	}
}

func TestDestroyIsDeferredUntilFlush(t *testing.T) {
	w := NewWorld(30)
	id := w.Spawn()
	w.Attach(id, &Position{})

	w.Destroy(id)
	if !w.Exists(id) {
		t.Fatal("destroy must not take effect before flush")
	}

	w.Flush()
	if w.Exists(id) {
		t.Error("entity still present after flush")
	}
	if got := w.Query(CompPosition); len(got) != 0 {
		t.Errorf("flushed entity still visible to queries: %v", got)
	}
}

func TestFlushPreservesSurvivorOrder(t *testing.T) {
	w := NewWorld(30)
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()
	for _, id := range []EntityID{a, b, c} {
		w.Attach(id, &Position{})
	}

	w.Destroy(b)
	w.Flush()

	got := w.Query(CompPosition)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("survivors = %v, want [%d %d] in spawn order", got, a, c)
	}
}

func TestDetachRemovesFromQueries(t *testing.T) {
	w := NewWorld(30)
	id := w.Spawn()
	w.Attach(id, &Position{})
	w.Attach(id, &Hostile{})

	w.Detach(id, CompHostile)
	if w.Has(id, CompHostile) {
		t.Error("component still attached after detach")
	}
	if got := w.Query(CompPosition, CompHostile); len(got) != 0 {
		t.Errorf("detached entity still matches: %v", got)
	}
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld(30)
	var ran []int
	w.AddSystem(probeSystem{p: 20, ran: &ran})
	w.AddSystem(probeSystem{p: 5, ran: &ran})
	w.AddSystem(probeSystem{p: 10, ran: &ran})

	w.Tick(1.0 / 30)
	if len(ran) != 3 || ran[0] != 5 || ran[1] != 10 || ran[2] != 20 {
		t.Errorf("systems ran as %v, want ascending priority", ran)
	}
}

type probeSystem struct {
	p   int
	ran *[]int
}

func (s probeSystem) Update(w *World, dt float64) { *s.ran = append(*s.ran, s.p) }
func (s probeSystem) Priority() int               { return s.p }
