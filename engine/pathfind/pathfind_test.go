package pathfind

import (
	"testing"

	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

// testRoom carves a 10x10 room with a wall splitting it, one door gap
// and a water channel only flyers may cross
func testRoom() *maplib.Room {
	r := maplib.NewRoom("test", 10, 10)
	r.Carve(1, 1, 8, 8)
	for y := 1; y <= 8; y++ {
		r.SetTile(5, y, maplib.TileWall)
	}
	r.SetTile(5, 4, maplib.TileFloor) // the gap
	return r
}

func TestNavGridCostLayers(t *testing.T) {
	r := maplib.NewRoom("layers", 4, 4)
	r.Carve(0, 0, 3, 3)
	r.SetTile(1, 1, maplib.TileWall)
	r.SetTile(2, 1, maplib.TileWater)
	r.SetTile(1, 2, maplib.TileRubble)

	ng := NewNavGrid(r)

	if ng.Passable(1, 1, Walker) || ng.Passable(1, 1, Flyer) {
		t.Error("wall must block both movers")
	}
	if ng.Passable(2, 1, Walker) {
		t.Error("water must block walkers")
	}
	if !ng.Passable(2, 1, Flyer) {
		t.Error("water must not block flyers")
	}
	if c := ng.Cost(1, 2, Walker); c != 1.6 {
		t.Errorf("rubble walk cost = %v, want 1.6", c)
	}
	if c := ng.Cost(1, 2, Flyer); c != 1.0 {
		t.Errorf("rubble fly cost = %v, want 1.0", c)
	}

	ng.SetBlocked(3, 3)
	if ng.Passable(3, 3, Walker) || ng.Passable(3, 3, Flyer) {
		t.Error("blocked cell must stop everyone")
	}
}

func TestFindPathThroughGap(t *testing.T) {
	ng := NewNavGrid(testRoom())
	path := FindPath(ng, 2, 2, 8, 2, Walker)
	if path == nil {
		t.Fatal("expected a path through the door gap")
	}
	if path[0] != (Point{2, 2}) || path[len(path)-1] != (Point{8, 2}) {
		t.Errorf("path endpoints %v -> %v, want (2,2) -> (8,2)", path[0], path[len(path)-1])
	}
	via := false
	for _, p := range path {
		if !ng.Passable(p.X, p.Y, Walker) {
			t.Errorf("path crosses impassable cell %v", p)
		}
		if p == (Point{5, 4}) {
			via = true
		}
	}
	if !via {
		t.Error("the only opening is (5,4); the path must pass through it")
	}
}

func TestFindPathUnreachable(t *testing.T) {
	r := maplib.NewRoom("sealed", 10, 10)
	r.Carve(1, 1, 3, 3)
	r.Carve(6, 6, 8, 8) // no connection
	ng := NewNavGrid(r)

	if p := FindPath(ng, 2, 2, 7, 7, Walker); p != nil {
		t.Errorf("sealed chambers produced a path: %v", p)
	}
	if p := FindPath(ng, 2, 2, 0, 0, Walker); p != nil {
		t.Errorf("wall goal produced a path: %v", p)
	}
}

func TestSmoothPathKeepsEndpoints(t *testing.T) {
	r := maplib.NewRoom("open", 10, 10)
	r.Carve(1, 1, 8, 8)
	ng := NewNavGrid(r)

	path := FindPath(ng, 1, 1, 8, 8, Walker)
	if path == nil {
		t.Fatal("no path in an open room")
	}
	smooth := SmoothPath(ng, path, Walker)
	if len(smooth) > len(path) {
		t.Error("smoothing must never add waypoints")
	}
	if smooth[0] != path[0] || smooth[len(smooth)-1] != path[len(path)-1] {
		t.Error("smoothing must keep both endpoints")
	}
}

func TestLineOfSightBlockedByWall(t *testing.T) {
	ng := NewNavGrid(testRoom())
	if LineOfSight(ng, Point{2, 2}, Point{8, 2}, Walker) {
		t.Error("the dividing wall must block sight")
	}
	if !LineOfSight(ng, Point{2, 2}, Point{2, 8}, Walker) {
		t.Error("open column must be visible")
	}
	if !LineOfSight(ng, Point{4, 4}, Point{6, 4}, Walker) {
		t.Error("sight through the gap at (5,4) must pass")
	}
}

func TestFlowFieldPointsTowardGoal(t *testing.T) {
	r := maplib.NewRoom("open", 10, 10)
	r.Carve(1, 1, 8, 8)
	ng := NewNavGrid(r)

	ff := NewFlowField(ng, 4, 4, Walker)
	if !ff.Reachable(1, 1) {
		t.Fatal("open room cell must reach the goal")
	}
	dx, dy := ff.Direction(1, 4)
	if dx <= 0 || dy != 0 {
		t.Errorf("cell west of the goal flows (%v, %v), want straight east", dx, dy)
	}
	if dx, dy := ff.Direction(4, 4); dx != 0 || dy != 0 {
		t.Errorf("goal cell must have zero direction, got (%v, %v)", dx, dy)
	}
}

func TestFlowFieldUnreachablePocket(t *testing.T) {
	r := maplib.NewRoom("pocket", 10, 10)
	r.Carve(1, 1, 3, 3)
	r.Carve(6, 6, 8, 8)
	ng := NewNavGrid(r)

	ff := NewFlowField(ng, 2, 2, Walker)
	if ff.Reachable(7, 7) {
		t.Error("sealed pocket must be unreachable")
	}
}

func TestSteerSeekHeadsToTarget(t *testing.T) {
	res := SteerSeek(0, 0, 10, 0, 4, nil)
	if res.VX != 4 || res.VY != 0 {
		t.Errorf("seek east at speed 4 = (%v, %v)", res.VX, res.VY)
	}

	// On top of the target there is nothing to do
	res = SteerSeek(5, 5, 5, 5, 4, nil)
	if res.VX != 0 || res.VY != 0 {
		t.Errorf("seek at zero distance = (%v, %v), want rest", res.VX, res.VY)
	}
}

func TestSteerSeparationPushesApart(t *testing.T) {
	// A neighbor directly ahead bends the velocity away
	others := [][3]float64{{1, 0, 0.4}}
	res := SteerSeek(0.8, 0, 10, 0, 4, others)

	v := res.VX*res.VX + res.VY*res.VY
	if v > 16.0001 {
		t.Errorf("steering exceeded max speed: |v|^2 = %v", v)
	}
	if res.VX >= 4 {
		t.Error("separation must reduce the straight-ahead component")
	}
}
