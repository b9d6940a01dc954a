package geom

import "testing"

func TestSqDist(t *testing.T) {
	if d := SqDist(0, 0, 3, 4); d != 25 {
		t.Errorf("SqDist(0,0,3,4) = %v, want 25", d)
	}
	if d := SqDist(-1, -1, -1, -1); d != 0 {
		t.Errorf("coincident points give %v, want 0", d)
	}
	if SqDist(2, 7, 9, 1) != SqDist(9, 1, 2, 7) {
		t.Error("SqDist must be symmetric")
	}
}

func TestDist(t *testing.T) {
	if d := Dist(0, 0, 3, 4); d != 5 {
		t.Errorf("Dist(0,0,3,4) = %v, want 5", d)
	}
	if d := Dist(0, 0, -6, -8); d != 10 {
		t.Errorf("Dist handles negatives, got %v want 10", d)
	}
}
