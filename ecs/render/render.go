package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/text/message"

	"github.com/milk9111/gravwell/assets"
	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
	"github.com/milk9111/gravwell/ecs/system"
	"github.com/milk9111/gravwell/obj"
)

var (
	background = color.RGBA{R: 0x08, G: 0x0a, B: 0x12, A: 0xff}
	gridMinor  = common.Fade(color.RGBA(colornames.Slategray), 0.12)
	gridMajor  = common.Fade(color.RGBA(colornames.Slategray), 0.25)
	aimColor   = color.RGBA(colornames.Lightgray)
	hudColor   = color.RGBA(colornames.Whitesmoke)
)

// Minimum on-screen body radius in pixels.
const minScreenRadius = 1.0

// Frame is everything the renderer needs for one draw.
type Frame struct {
	World   *ecs.World
	Trails  *system.TrailSystem
	Pending *obj.Pending
	HUD     HUD
}

// Renderer draws the world through a camera. It only reads simulation state.
type Renderer struct {
	camera  *obj.Camera
	printer *message.Printer
	order   []int
}

func NewRenderer(camera *obj.Camera) *Renderer {
	return &Renderer{camera: camera, printer: NewPrinter()}
}

func (r *Renderer) Draw(screen *ebiten.Image, f Frame) {
	screen.Fill(background)
	r.drawGrid(screen)
	if f.World != nil {
		if f.Trails != nil {
			r.drawTrails(screen, f.World, f.Trails)
		}
		r.drawBodies(screen, f.World.Bodies())
	}
	if f.Pending != nil {
		r.drawPending(screen, *f.Pending)
	}
	r.drawHUD(screen, f.HUD)
}

// GridSpacing picks a world-space spacing that keeps grid lines roughly
// 40-160 screen pixels apart.
func GridSpacing(zoom float64) float64 {
	s := 100.0
	for s*zoom < 40 {
		s *= 2
	}
	for s*zoom > 160 {
		s /= 2
	}
	return s
}

func (r *Renderer) drawGrid(screen *ebiten.Image) {
	view := r.camera.View()
	spacing := GridSpacing(r.camera.Zoom())
	w, h := r.camera.ScreenSize()

	for x := math.Floor(view.L/spacing) * spacing; x <= view.R; x += spacing {
		sx, _ := r.camera.WorldToScreen(x, 0)
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(h), 1, gridColor(x, spacing), false)
	}
	for y := math.Floor(view.B/spacing) * spacing; y <= view.T; y += spacing {
		_, sy := r.camera.WorldToScreen(0, y)
		vector.StrokeLine(screen, 0, float32(sy), float32(w), float32(sy), 1, gridColor(y, spacing), false)
	}
}

func gridColor(v, spacing float64) color.RGBA {
	if math.Abs(math.Mod(v, spacing*5)) < spacing/2 {
		return gridMajor
	}
	return gridMinor
}

func (r *Renderer) drawTrails(screen *ebiten.Image, w *ecs.World, trails *system.TrailSystem) {
	bodies := w.Bodies()
	for i := range bodies {
		tr, ok := trails.Trail(w.Entity(i))
		if !ok || len(tr.Points) < 2 {
			continue
		}
		n := len(tr.Points)
		for k := 1; k < n; k++ {
			a, b := tr.Points[k-1], tr.Points[k]
			ax, ay := r.camera.WorldToScreen(a.X, a.Y)
			bx, by := r.camera.WorldToScreen(b.X, b.Y)
			c := common.Fade(bodies[i].Color, 0.6*float64(k)/float64(n))
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, true)
		}
	}
}

// DrawOrder returns body indices sorted by radius ascending so the largest
// bodies are drawn last.
func DrawOrder(bodies []component.Body, order []int) []int {
	order = order[:0]
	for i := range bodies {
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return bodies[order[a]].Radius < bodies[order[b]].Radius
	})
	return order
}

func (r *Renderer) drawBodies(screen *ebiten.Image, bodies []component.Body) {
	view := r.camera.View()
	zoom := r.camera.Zoom()
	r.order = DrawOrder(bodies, r.order)

	for _, i := range r.order {
		b := bodies[i]
		if !view.Intersects(cp.NewBBForCircle(b.Pos, b.Radius*3)) {
			continue
		}
		sx, sy := r.camera.WorldToScreen(b.Pos.X, b.Pos.Y)
		sr := math.Max(b.Radius*zoom, minScreenRadius)
		if sr >= 3 {
			r.drawGlow(screen, sx, sy, sr, b.Color)
		}
		vector.FillCircle(screen, float32(sx), float32(sy), float32(sr), b.Color, true)
	}
}

func (r *Renderer) drawGlow(screen *ebiten.Image, sx, sy, sr float64, c color.RGBA) {
	glow := glowImage()
	size := float64(glow.Bounds().Dx())
	scale := sr * 5 / size

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-size/2, -size/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(0.35)
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(glow, op)
}

func (r *Renderer) drawPending(screen *ebiten.Image, p obj.Pending) {
	zoom := r.camera.Zoom()
	ax, ay := r.camera.WorldToScreen(p.Anchor.X, p.Anchor.Y)
	rx, ry := r.camera.WorldToScreen(p.Release.X, p.Release.Y)
	sr := math.Max(p.Body.Radius*zoom, minScreenRadius)

	vector.StrokeLine(screen, float32(ax), float32(ay), float32(rx), float32(ry), 1, common.Fade(aimColor, 0.5), true)
	vector.StrokeCircle(screen, float32(ax), float32(ay), float32(sr), 1.5, p.Body.Color, true)

	// launch direction, mirrored from the drag
	tip := p.Anchor.Add(p.Anchor.Sub(p.Release))
	tx, ty := r.camera.WorldToScreen(tip.X, tip.Y)
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(tx), float32(ty), 2, p.Body.Color, true)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, h HUD) {
	face := assets.Face()
	lh := assets.LineHeight()
	for i, line := range h.Lines(r.printer) {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(8, 8+float64(i)*lh)
		op.ColorScale.ScaleWithColor(hudColor)
		ebtext.Draw(screen, line, face, op)
	}
}
