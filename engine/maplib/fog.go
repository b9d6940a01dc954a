package maplib

// FogState is the visibility of one tile
type FogState uint8

const (
	FogShroud   FogState = iota // never seen
	FogExplored                 // seen before but not now
	FogVisible                  // currently visible
)

// FogGrid tracks per-tile visibility for the room. The vision system
// rewrites it every tick from the hero's position; the renderer shades
// explored tiles and skips shrouded ones.
type FogGrid struct {
	Width, Height int
	Cells         []FogState
}

func NewFogGrid(w, h int) *FogGrid {
	return &FogGrid{
		Width:  w,
		Height: h,
		Cells:  make([]FogState, w*h),
	}
}

// At returns the fog state at (x, y). Out of bounds reads as shroud.
func (f *FogGrid) At(x, y int) FogState {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return FogShroud
	}
	return f.Cells[y*f.Width+x]
}

// Visible reports whether the tile is currently in sight
func (f *FogGrid) Visible(x, y int) bool {
	return f.At(x, y) == FogVisible
}

// MarkVisible flags a tile as currently seen
func (f *FogGrid) MarkVisible(x, y int) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Cells[y*f.Width+x] = FogVisible
}

// Sweep demotes everything currently visible to explored, ahead of the
// next reveal pass
func (f *FogGrid) Sweep() {
	for i, c := range f.Cells {
		if c == FogVisible {
			f.Cells[i] = FogExplored
		}
	}
}

// RevealAll uncovers the whole grid (debug use)
func (f *FogGrid) RevealAll() {
	for i := range f.Cells {
		f.Cells[i] = FogVisible
	}
}
