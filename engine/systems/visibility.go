package systems

import (
	"math"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
	"github.com/hollowdeep/crawler-engine/engine/pathfind"
)

// VisionSystem maintains the fog grid around the hero. Each tick it sweeps
// the previous reveal and re-lights every tile within the vision radius
// that has a clear sightline from the hero's tile. Walls at the edge of
// sight stay lit so chamber outlines read on screen.
type VisionSystem struct {
	Hero    *core.Hero
	NavGrid *pathfind.NavGrid
	Fog     *maplib.FogGrid
	Radius  int // vision radius in tiles
}

func (s *VisionSystem) Priority() int { return 2 }

func (s *VisionSystem) Update(w *core.World, dt float64) {
	if s.Hero == nil || s.Fog == nil {
		return
	}
	s.Fog.Sweep()

	hx, hy := s.Hero.Center()
	cx, cy := int(math.Floor(hx)), int(math.Floor(hy))
	r := s.Radius
	if r <= 0 {
		r = 8
	}

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			tx, ty := cx+dx, cy+dy
			if s.sees(cx, cy, tx, ty) {
				s.Fog.MarkVisible(tx, ty)
			}
		}
	}
}

// sees checks the sightline to a tile. A blocked tile is still revealed
// when the cell just before it on the line is clear; that keeps walls
// visible without letting sight pass through them.
func (s *VisionSystem) sees(cx, cy, tx, ty int) bool {
	if s.NavGrid == nil {
		return true
	}
	a := pathfind.Point{X: cx, Y: cy}
	b := pathfind.Point{X: tx, Y: ty}
	if pathfind.LineOfSight(s.NavGrid, a, b, pathfind.Flyer) {
		return true
	}
	// Step one cell back toward the viewer and retry; reveals the first
	// blocking wall face
	stepX, stepY := 0, 0
	if tx > cx {
		stepX = -1
	} else if tx < cx {
		stepX = 1
	}
	if ty > cy {
		stepY = -1
	} else if ty < cy {
		stepY = 1
	}
	if stepX == 0 && stepY == 0 {
		return true
	}
	prev := pathfind.Point{X: tx + stepX, Y: ty + stepY}
	return pathfind.LineOfSight(s.NavGrid, a, prev, pathfind.Flyer)
}
