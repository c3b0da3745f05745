// Package camera provides a 2D camera system for viewport control.
package camera

// Camera maps arena coordinates onto the screen.
// The arena is bounded: the camera never pans past its edges.
type Camera struct {
	// Position is the camera center in arena coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Arena dimensions
	ArenaW, ArenaH float32

	// Zoom constraints. FitZoom shows the whole arena.
	FitZoom, MaxZoom float32
}

// New creates a camera centered on the arena, zoomed to fit it.
func New(viewportW, viewportH, arenaW, arenaH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		ArenaW:    arenaW,
		ArenaH:    arenaH,
		MaxZoom:   8.0,
	}
	c.FitZoom = fitZoom(viewportW, viewportH, arenaW, arenaH)
	c.Reset()
	return c
}

// fitZoom is the largest zoom at which the whole arena is visible.
func fitZoom(viewportW, viewportH, arenaW, arenaH float32) float32 {
	return min(viewportW/arenaW, viewportH/arenaH)
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts an arena length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.FitZoom = fitZoom(viewportW, viewportH, c.ArenaW, c.ArenaH)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays inside the arena.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.ArenaW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.ArenaH)
}

// SetZoom sets the zoom level, clamped to [FitZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.FitZoom, max(c.FitZoom, c.MaxZoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and fits the whole arena on screen.
func (c *Camera) Reset() {
	c.X = c.ArenaW / 2
	c.Y = c.ArenaH / 2
	c.Zoom = c.FitZoom
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
