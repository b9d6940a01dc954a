package input

import "testing"

func TestQueueDrainsInPushOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Action{Kind: ActSelectNearest})
	q.Push(Action{Kind: ActCycleForward})
	q.Push(Action{Kind: ActAttack})

	got := q.Drain()
	want := []ActionKind{ActSelectNearest, ActCycleForward, ActAttack}
	if len(got) != len(want) {
		t.Fatalf("drained %d actions, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.Kind != want[i] {
			t.Errorf("position %d: kind %d, want %d", i, a.Kind, want[i])
		}
	}
}

func TestDrainEmptiesTheQueue(t *testing.T) {
	q := NewQueue()
	q.Push(Action{Kind: ActAttack})
	q.Drain()

	if q.Len() != 0 {
		t.Errorf("queue holds %d actions after drain, want 0", q.Len())
	}
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("second drain returned %d actions, want none", len(got))
	}
}

func TestPickActionCarriesScreenPoint(t *testing.T) {
	q := NewQueue()
	q.Push(Action{Kind: ActPointerPick, X: 321, Y: 87})

	got := q.Drain()
	if len(got) != 1 || got[0].X != 321 || got[0].Y != 87 {
		t.Errorf("pick coordinates lost in the queue: %+v", got)
	}
}

func TestMoveActionCarriesAxes(t *testing.T) {
	q := NewQueue()
	q.Push(Action{Kind: ActMoveAxis, X: -1, Y: 1})

	got := q.Drain()
	if len(got) != 1 || got[0].X != -1 || got[0].Y != 1 {
		t.Errorf("movement axes lost in the queue: %+v", got)
	}
}
