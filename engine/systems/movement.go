package systems

import (
	"math"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

// MovementSystem applies hero movement intent and enemy steering
// velocities, with wall-sliding collision against the room
type MovementSystem struct {
	Hero *core.Hero
	Room *maplib.Room
}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	if s.Hero != nil && s.Hero.Alive() {
		s.moveHero(dt)
	}

	for _, id := range w.Query(core.CompPosition, core.CompMovable) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		mov := w.Get(id, core.CompMovable).(*core.Movable)
		if mov.VX == 0 && mov.VY == 0 {
			continue
		}
		nx := pos.X + mov.VX*dt
		ny := pos.Y + mov.VY*dt
		fly := mov.MoveKind == core.MoveFly
		// Slide along walls: try each axis independently
		if s.walkableAt(nx, pos.Y, fly) {
			pos.X = nx
		}
		if s.walkableAt(pos.X, ny, fly) {
			pos.Y = ny
		}
		pos.Facing = math.Atan2(mov.VY, mov.VX)
	}
}

func (s *MovementSystem) moveHero(dt float64) {
	h := s.Hero
	ax, ay := h.MoveX, h.MoveY
	if ax == 0 && ay == 0 {
		return
	}
	// Normalize so diagonals aren't faster
	l := math.Sqrt(ax*ax + ay*ay)
	ax, ay = ax/l, ay/l

	nx := h.X + ax*h.Speed*dt
	ny := h.Y + ay*h.Speed*dt
	if s.walkableAt(nx+h.HalfSize, h.Y+h.HalfSize, false) {
		h.X = nx
	}
	if s.walkableAt(h.X+h.HalfSize, ny+h.HalfSize, false) {
		h.Y = ny
	}
	h.Facing = math.Atan2(ay, ax)
}

func (s *MovementSystem) walkableAt(x, y float64, fly bool) bool {
	if s.Room == nil {
		return true
	}
	t := s.Room.At(int(math.Floor(x)), int(math.Floor(y)))
	if t == nil {
		return false
	}
	if fly {
		return t.Kind != maplib.TileWall
	}
	return t.Walkable()
}
