package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/hollowdeep/crawler-engine/engine/core"
	"github.com/hollowdeep/crawler-engine/engine/maplib"
)

// Renderer draws the dungeon top-down with procedural shapes. It consumes
// targeting output (current target, range status) and never mutates it.
type Renderer struct {
	Camera *Camera
}

// NewRenderer creates a renderer with its own camera
func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{Camera: NewCamera(screenW, screenH)}
}

var tileColors = map[maplib.TileType]color.RGBA{
	maplib.TileFloor:      {54, 48, 42, 255},
	maplib.TileWall:       {22, 20, 26, 255},
	maplib.TileDoor:       {92, 64, 30, 255},
	maplib.TileWater:      {24, 42, 80, 255},
	maplib.TileRubble:     {64, 58, 50, 255},
	maplib.TileStairsDown: {80, 70, 90, 255},
	maplib.TileStairsUp:   {70, 80, 90, 255},
}

// DrawRoom draws the visible slice of the room's tiles. A nil fog grid
// renders everything; otherwise shrouded tiles are skipped and explored
// ones darkened.
func (r *Renderer) DrawRoom(screen *ebiten.Image, room *maplib.Room, fog *maplib.FogGrid) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(room.Width, room.Height)
	s := float32(r.Camera.scale())
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			t := room.At(x, y)
			if t == nil {
				continue
			}
			state := maplib.FogVisible
			if fog != nil {
				state = fog.At(x, y)
				if state == maplib.FogShroud {
					continue
				}
			}
			col, ok := tileColors[t.Kind]
			if !ok {
				col = tileColors[maplib.TileFloor]
			}
			// Checker shading so motion reads on uniform floors
			if t.Kind == maplib.TileFloor && (x+y)%2 == 0 {
				col.R += 4
				col.G += 4
				col.B += 4
			}
			if state == maplib.FogExplored {
				col.R /= 2
				col.G /= 2
				col.B /= 2
			}
			sx, sy := r.Camera.WorldToScreen(float64(x), float64(y))
			vector.DrawFilledRect(screen, float32(sx), float32(sy), s+1, s+1, col, false)
		}
	}
}

// DrawEntities draws all entities that carry a sprite, in ZOrder.
// With a fog grid only entities on currently visible tiles are drawn;
// enemies in the dark stay hidden even when explored.
func (r *Renderer) DrawEntities(screen *ebiten.Image, w *core.World, fog *maplib.FogGrid) {
	ids := w.Query(core.CompPosition, core.CompSprite)
	// Low ZOrder first (corpses under live enemies under projectiles)
	for z := 0; z <= 5; z++ {
		for _, id := range ids {
			spr := w.Get(id, core.CompSprite).(*core.Sprite)
			if !spr.Visible || spr.ZOrder != z {
				continue
			}
			pos := w.Get(id, core.CompPosition).(*core.Position)
			if fog != nil && !fog.Visible(int(math.Floor(pos.X)), int(math.Floor(pos.Y))) {
				continue
			}
			r.drawShape(screen, pos, spr)
		}
	}
}

func (r *Renderer) drawShape(screen *ebiten.Image, pos *core.Position, spr *core.Sprite) {
	sx, sy := r.Camera.WorldToScreen(pos.X, pos.Y)
	rad := float32(spr.Radius * r.Camera.scale())
	col := rgba(spr.Color)
	cx, cy := float32(sx), float32(sy)

	switch spr.Shape {
	case core.ShapeDiamond:
		vector.StrokeLine(screen, cx, cy-rad, cx+rad, cy, 2, col, false)
		vector.StrokeLine(screen, cx+rad, cy, cx, cy+rad, 2, col, false)
		vector.StrokeLine(screen, cx, cy+rad, cx-rad, cy, 2, col, false)
		vector.StrokeLine(screen, cx-rad, cy, cx, cy-rad, 2, col, false)
	case core.ShapeCross:
		vector.StrokeLine(screen, cx-rad, cy, cx+rad, cy, 2, col, false)
		vector.StrokeLine(screen, cx, cy-rad, cx, cy+rad, 2, col, false)
	default:
		vector.DrawFilledCircle(screen, cx, cy, rad, col, false)
		vector.StrokeCircle(screen, cx, cy, rad, 1, color.RGBA{255, 255, 255, 90}, false)
	}
}

// DrawHero draws the hero body and its attack-range circle
func (r *Renderer) DrawHero(screen *ebiten.Image, hero *core.Hero) {
	hx, hy := hero.Center()
	sx, sy := r.Camera.WorldToScreen(hx, hy)
	cx, cy := float32(sx), float32(sy)

	// Attack range, faint
	rangePx := float32(math.Sqrt(hero.AttackRangeSq) * r.Camera.scale())
	vector.StrokeCircle(screen, cx, cy, rangePx, 1, color.RGBA{120, 160, 220, 40}, false)

	body := float32(hero.HalfSize * r.Camera.scale())
	vector.DrawFilledCircle(screen, cx, cy, body, color.RGBA{70, 140, 255, 255}, false)
	vector.StrokeCircle(screen, cx, cy, body, 2, color.RGBA{220, 235, 255, 200}, false)

	// Facing tick
	fx := cx + float32(math.Cos(hero.Facing))*body
	fy := cy + float32(math.Sin(hero.Facing))*body
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, color.RGBA{220, 235, 255, 200}, false)
}

// DrawTargetMarker draws the ring around the current target, colored by
// range status, with the distance readout when the target is too far
func (r *Renderer) DrawTargetMarker(screen *ebiten.Image, tx, ty float64, inRange bool, distance float64) {
	sx, sy := r.Camera.WorldToScreen(tx, ty)
	cx, cy := float32(sx), float32(sy)
	rad := float32(0.55 * r.Camera.scale())

	col := color.RGBA{80, 220, 100, 230} // in range
	if !inRange {
		col = color.RGBA{230, 80, 70, 230}
	}
	vector.StrokeCircle(screen, cx, cy, rad, 2, col, false)

	// Chevron above the ring
	ch := rad * 0.5
	vector.StrokeLine(screen, cx-ch, cy-rad-ch*1.5, cx, cy-rad-ch*0.5, 2, col, false)
	vector.StrokeLine(screen, cx+ch, cy-rad-ch*1.5, cx, cy-rad-ch*0.5, 2, col, false)

	if !inRange {
		msg := fmt.Sprintf("%.1f", distance)
		text.Draw(screen, msg, basicfont.Face7x13, int(cx)+int(rad)+4, int(cy)+4, col)
	}
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}
