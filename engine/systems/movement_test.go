package systems

import (
	"testing"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

func openRoom() *maplib.Room {
	r := maplib.NewRoom("open", 12, 12)
	r.Carve(1, 1, 10, 10)
	return r
}

func TestHeroStopsAtWalls(t *testing.T) {
	w := core.NewWorld(30)
	room := openRoom()
	hero := core.NewHero(1.1, 5)
	sys := &MovementSystem{Hero: hero, Room: room}
	w.AddSystem(sys)

	// Push west into the boundary wall for a full second
	hero.MoveX, hero.MoveY = -1, 0
	for i := 0; i < 30; i++ {
		w.Tick(1.0 / 30)
	}

	if hero.X+hero.HalfSize < 1 {
		t.Errorf("hero center crossed into the wall, x = %v", hero.X+hero.HalfSize)
	}
}

func TestHeroSlidesAlongWall(t *testing.T) {
	w := core.NewWorld(30)
	hero := core.NewHero(1.1, 5)
	w.AddSystem(&MovementSystem{Hero: hero, Room: openRoom()})

	// Diagonal into the west wall: the X leg blocks, the Y leg slides
	startY := hero.Y
	hero.MoveX, hero.MoveY = -1, 1
	for i := 0; i < 10; i++ {
		w.Tick(1.0 / 30)
	}

	if hero.Y <= startY {
		t.Error("hero must keep sliding south along the wall")
	}
}

func TestDiagonalNotFaster(t *testing.T) {
	room := openRoom()

	run := func(mx, my float64) (float64, float64) {
		w := core.NewWorld(30)
		hero := core.NewHero(5, 5)
		w.AddSystem(&MovementSystem{Hero: hero, Room: room})
		hero.MoveX, hero.MoveY = mx, my
		for i := 0; i < 15; i++ {
			w.Tick(1.0 / 30)
		}
		return hero.X - 5, hero.Y - 5
	}

	dx, _ := run(1, 0)
	qx, qy := run(1, 1)
	diag := qx*qx + qy*qy
	straight := dx * dx
	if diag > straight*1.001 {
		t.Errorf("diagonal moved %v, straight %v; diagonal must not be faster", diag, straight)
	}
}

func TestFlyerCrossesWaterWalkerDoesNot(t *testing.T) {
	r := maplib.NewRoom("channel", 12, 12)
	r.Carve(1, 1, 10, 10)
	for y := 1; y <= 10; y++ {
		r.SetTile(5, y, maplib.TileWater)
	}

	run := func(kind core.MoveKind) float64 {
		w := core.NewWorld(30)
		w.AddSystem(&MovementSystem{Room: r})
		id := w.Spawn()
		w.Attach(id, &core.Position{X: 4.2, Y: 5})
		w.Attach(id, &core.Movable{Speed: 3, MoveKind: kind, VX: 3})
		for i := 0; i < 60; i++ {
			w.Tick(1.0 / 30)
		}
		return w.Get(id, core.CompPosition).(*core.Position).X
	}

	if x := run(core.MoveWalk); x >= 5 {
		t.Errorf("walker crossed water, x = %v", x)
	}
	if x := run(core.MoveFly); x <= 6 {
		t.Errorf("flyer failed to cross water, x = %v", x)
	}
}

func TestDeadHeroDoesNotMove(t *testing.T) {
	w := core.NewWorld(30)
	hero := core.NewHero(5, 5)
	hero.HP = 0
	w.AddSystem(&MovementSystem{Hero: hero, Room: openRoom()})

	hero.MoveX = 1
	w.Tick(1.0 / 30)
	if hero.X != 5 {
		t.Errorf("dead hero moved to %v", hero.X)
	}
}
