package pathfind

import "github.com/hollowdeep/crawler-engine/engine/maplib"

// Mover selects which cost layer applies to a unit
type Mover uint8

const (
	Walker Mover = iota
	Flyer
)

// NavGrid provides a navigation grid derived from a dungeon room
type NavGrid struct {
	Width, Height int
	walkCosts     []float64 // movement cost per cell (0 = impassable)
	flyCosts      []float64
}

// NewNavGrid builds a navigation grid from a room
func NewNavGrid(r *maplib.Room) *NavGrid {
	ng := &NavGrid{
		Width:     r.Width,
		Height:    r.Height,
		walkCosts: make([]float64, r.Width*r.Height),
		flyCosts:  make([]float64, r.Width*r.Height),
	}
	for i, t := range r.Tiles {
		switch t.Kind {
		case maplib.TileWall:
			// solid for everyone
		case maplib.TileWater:
			ng.flyCosts[i] = 1.0
		case maplib.TileRubble:
			ng.walkCosts[i] = 1.6
			ng.flyCosts[i] = 1.0
		case maplib.TileDoor:
			ng.walkCosts[i] = 1.2
			ng.flyCosts[i] = 1.2
		default:
			ng.walkCosts[i] = 1.0
			ng.flyCosts[i] = 1.0
		}
	}
	return ng
}

func (ng *NavGrid) layer(m Mover) []float64 {
	if m == Flyer {
		return ng.flyCosts
	}
	return ng.walkCosts
}

// Passable checks if a cell is passable for a given mover
func (ng *NavGrid) Passable(x, y int, m Mover) bool {
	if x < 0 || y < 0 || x >= ng.Width || y >= ng.Height {
		return false
	}
	return ng.layer(m)[y*ng.Width+x] > 0
}

// Cost returns the movement cost at (x,y) for a given mover
func (ng *NavGrid) Cost(x, y int, m Mover) float64 {
	if x < 0 || y < 0 || x >= ng.Width || y >= ng.Height {
		return 0
	}
	return ng.layer(m)[y*ng.Width+x]
}

// SetBlocked marks a cell as blocked for everyone (e.g. a dropped portcullis)
func (ng *NavGrid) SetBlocked(x, y int) {
	if x >= 0 && y >= 0 && x < ng.Width && y < ng.Height {
		ng.walkCosts[y*ng.Width+x] = 0
		ng.flyCosts[y*ng.Width+x] = 0
	}
}

// Refresh rebuilds the nav grid from a room
func (ng *NavGrid) Refresh(r *maplib.Room) {
	*ng = *NewNavGrid(r)
}
