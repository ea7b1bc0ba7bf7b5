package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/ecs/component"
)

// Camera maps world coordinates to the screen. PosX/PosY is the world point
// shown at the center of the screen.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
	minZoom float64
	maxZoom float64

	homeZoom float64
}

// NewCamera creates a camera centered on the world origin.
func NewCamera(screenW, screenH int, zoom, minZoom, maxZoom float64) *Camera {
	if minZoom <= 0 {
		minZoom = 0.01
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	c := &Camera{screenW: screenW, screenH: screenH, minZoom: minZoom, maxZoom: maxZoom}
	c.zoom = common.Clamp(zoom, minZoom, maxZoom)
	c.homeZoom = c.zoom
	return c
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) ScreenSize() (int, int) {
	return c.screenW, c.screenH
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom updates the camera zoom, clamped to the configured range.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 || math.IsNaN(z) {
		return
	}
	c.zoom = common.Clamp(z, c.minZoom, c.maxZoom)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// View returns the visible world rectangle.
func (c *Camera) View() cp.BB {
	l, t := c.ViewTopLeft()
	return cp.BB{L: l, B: t, R: l + float64(c.screenW)/c.zoom, T: t + float64(c.screenH)/c.zoom}
}

func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	l, t := c.ViewTopLeft()
	return (x - l) * c.zoom, (y - t) * c.zoom
}

func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	l, t := c.ViewTopLeft()
	return l + sx/c.zoom, t + sy/c.zoom
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.PosX += dx / c.zoom
	c.PosY += dy / c.zoom
}

// ZoomAt scales the zoom by factor while keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	if factor <= 0 {
		return
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.zoom * factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.PosX += wx - nx
	c.PosY += wy - ny
}

// Fit centers the view on all bodies and zooms so they fit with margin
// screen pixels to spare. It does nothing for an empty set.
func (c *Camera) Fit(bodies []component.Body, margin float64) {
	if len(bodies) == 0 {
		return
	}
	bb := cp.NewBBForCircle(bodies[0].Pos, bodies[0].Radius)
	for _, b := range bodies[1:] {
		bb = bb.Merge(cp.NewBBForCircle(b.Pos, b.Radius))
	}

	center := bb.Center()
	c.PosX, c.PosY = center.X, center.Y

	w := bb.R - bb.L
	h := bb.T - bb.B
	availW := math.Max(float64(c.screenW)-2*margin, 1)
	availH := math.Max(float64(c.screenH)-2*margin, 1)
	if w <= 0 || h <= 0 {
		return
	}
	c.SetZoom(math.Min(availW/w, availH/h))
}

// Reset returns to the origin at the initial zoom.
func (c *Camera) Reset() {
	c.PosX, c.PosY = 0, 0
	c.zoom = c.homeZoom
}
