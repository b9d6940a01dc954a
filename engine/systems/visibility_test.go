package systems

import (
	"testing"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
	"github.com/hollowdeep/crawler-engine/engine/pathfind"
)

func TestVisionRevealsAroundHero(t *testing.T) {
	r := maplib.NewRoom("hall", 20, 20)
	r.Carve(1, 1, 18, 18)
	fog := maplib.NewFogGrid(20, 20)

	w := core.NewWorld(30)
	hero := core.NewHero(9.6, 9.6) // center on tile (10, 10)
	w.AddSystem(&VisionSystem{Hero: hero, NavGrid: pathfind.NewNavGrid(r), Fog: fog, Radius: 5})

	w.Tick(1.0 / 30)

	if !fog.Visible(10, 10) {
		t.Error("the hero's own tile must be visible")
	}
	if !fog.Visible(13, 10) {
		t.Error("open tile inside the radius must be visible")
	}
	if fog.At(17, 10) != maplib.FogShroud {
		t.Error("tile beyond the radius must stay shrouded")
	}
}

func TestVisionWallsBlockSight(t *testing.T) {
	r := maplib.NewRoom("split", 20, 20)
	r.Carve(1, 1, 18, 18)
	for y := 1; y <= 18; y++ {
		r.SetTile(12, y, maplib.TileWall)
	}
	fog := maplib.NewFogGrid(20, 20)

	w := core.NewWorld(30)
	hero := core.NewHero(9.6, 9.6)
	w.AddSystem(&VisionSystem{Hero: hero, NavGrid: pathfind.NewNavGrid(r), Fog: fog, Radius: 6})

	w.Tick(1.0 / 30)

	if !fog.Visible(12, 10) {
		t.Error("the wall face itself must be revealed")
	}
	if fog.Visible(14, 10) {
		t.Error("tiles behind the wall must stay dark")
	}
}

func TestVisionSweepDemotesToExplored(t *testing.T) {
	r := maplib.NewRoom("walkway", 30, 10)
	r.Carve(1, 1, 28, 8)
	fog := maplib.NewFogGrid(30, 10)

	w := core.NewWorld(30)
	hero := core.NewHero(4.6, 4.6)
	w.AddSystem(&VisionSystem{Hero: hero, NavGrid: pathfind.NewNavGrid(r), Fog: fog, Radius: 4})

	w.Tick(1.0 / 30)
	if !fog.Visible(5, 5) {
		t.Fatal("starting area must be lit")
	}

	// Walk far away; the old area dims to explored, never back to shroud
	hero.X = 24.6
	w.Tick(1.0 / 30)

	if got := fog.At(5, 5); got != maplib.FogExplored {
		t.Errorf("left-behind tile state = %d, want explored", got)
	}
	if !fog.Visible(25, 5) {
		t.Error("new position must be lit")
	}
}
