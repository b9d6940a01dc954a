package systems

import "github.com/hollowdeep/crawler-engine/engine/core"

// flashColor is the sprite override while a hit flash is active
const flashColor = 0xFFFFFFFF

// FlashSystem runs down hit flashes and restores the original sprite
// color. Flashes are attached by damage resolution.
type FlashSystem struct{}

func (s *FlashSystem) Priority() int { return 28 }

func (s *FlashSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompFlash, core.CompSprite) {
		f := w.Get(id, core.CompFlash).(*core.Flash)
		spr := w.Get(id, core.CompSprite).(*core.Sprite)

		f.Timer -= dt
		if f.Timer <= 0 {
			spr.Color = f.Original
			w.Detach(id, core.CompFlash)
			continue
		}
		spr.Color = flashColor
	}
}
