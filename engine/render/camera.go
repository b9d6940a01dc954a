package render

import "math"

// Camera is the viewport into the dungeon: a pan offset in world tiles, a
// zoom factor and the canvas rectangle on screen. The renderer draws world
// objects through WorldToScreen; ScreenToWorld is its exact algebraic
// inverse, which is what makes click picking line up with what the player
// sees.
//
// Forward transform: screen = (world + pan) * zoom * tileSize + rectOrigin.
type Camera struct {
	PanX, PanY float64 // pan offset in world tiles
	Zoom       float64 // zoom factor (1.0 = default)
	MinZoom    float64
	MaxZoom    float64
	TileSize   float64 // pixels per tile at zoom 1.0

	// Canvas bounds: origin of the drawable rectangle and its pixel size
	RectX, RectY     float64
	ScreenW, ScreenH int
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:     1.0,
		MinZoom:  0.5,
		MaxZoom:  3.0,
		TileSize: 32,
		ScreenW:  screenW,
		ScreenH:  screenH,
	}
}

// scale is the combined world-to-pixel factor
func (c *Camera) scale() float64 {
	return c.Zoom * c.TileSize
}

// usable reports whether the viewport can map coordinates at all
func (c *Camera) usable() bool {
	return c.Zoom > 0 && c.TileSize > 0 && c.ScreenW > 0 && c.ScreenH > 0
}

// WorldToScreen converts a world position to screen pixel coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	s := c.scale()
	return (wx+c.PanX)*s + c.RectX, (wy+c.PanY)*s + c.RectY
}

// ScreenToWorld converts a screen pixel position to world coordinates.
// Returns ok=false when the viewport is unusable (zero zoom, empty canvas);
// callers must decline the pick instead of trusting the coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64, bool) {
	if !c.usable() {
		return 0, 0, false
	}
	s := c.scale()
	return (sx-c.RectX)/s - c.PanX, (sy-c.RectY)/s - c.PanY, true
}

// Pan shifts the viewport by a screen-pixel delta
func (c *Camera) Pan(dx, dy float64) {
	if !c.usable() {
		return
	}
	s := c.scale()
	c.PanX -= dx / s
	c.PanY -= dy / s
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point, keeping the world position under the
// cursor stationary
func (c *Camera) ZoomAt(delta float64, sx, sy float64) {
	wx, wy, ok := c.ScreenToWorld(sx, sy)
	if !ok {
		return
	}
	c.SetZoom(c.Zoom + delta)
	wx2, wy2, ok := c.ScreenToWorld(sx, sy)
	if !ok {
		return
	}
	c.PanX += wx2 - wx
	c.PanY += wy2 - wy
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	if !c.usable() {
		return
	}
	s := c.scale()
	c.PanX = float64(c.ScreenW)/(2*s) - wx
	c.PanY = float64(c.ScreenH)/(2*s) - wy
}

// VisibleTileRange returns the range of tiles visible on screen
func (c *Camera) VisibleTileRange(roomW, roomH int) (minX, minY, maxX, maxY int) {
	wx0, wy0, ok := c.ScreenToWorld(c.RectX, c.RectY)
	if !ok {
		return 0, 0, -1, -1
	}
	wx1, wy1, _ := c.ScreenToWorld(c.RectX+float64(c.ScreenW), c.RectY+float64(c.ScreenH))

	pad := 1
	minX = int(math.Floor(wx0)) - pad
	minY = int(math.Floor(wy0)) - pad
	maxX = int(math.Ceil(wx1)) + pad
	maxY = int(math.Ceil(wy1)) + pad

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= roomW {
		maxX = roomW - 1
	}
	if maxY >= roomH {
		maxY = roomH - 1
	}
	return
}
