package obj

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/config"
	"github.com/milk9111/gravwell/ecs/component"
)

// radiusStep is the multiplicative radius change per wheel notch.
const radiusStep = 1.1

// Spawner turns a slingshot drag into a new body. The press point becomes
// the body's position and the drag vector, reversed, its velocity.
type Spawner struct {
	Density     float64
	LaunchScale float64
	MinRadius   float64
	MaxRadius   float64

	radius float64
	anchor cp.Vector
	aiming bool
}

// Pending is a preview of the body a release would spawn.
type Pending struct {
	Anchor  cp.Vector
	Release cp.Vector
	Body    component.Body
}

func NewSpawner(cfg config.SpawnConfig) *Spawner {
	s := &Spawner{
		Density:     cfg.Density,
		LaunchScale: cfg.LaunchScale,
		MinRadius:   cfg.MinRadius,
		MaxRadius:   cfg.MaxRadius,
	}
	s.radius = common.Clamp(cfg.Radius, cfg.MinRadius, cfg.MaxRadius)
	return s
}

func (s *Spawner) Radius() float64 {
	return s.radius
}

// AdjustRadius scales the pending radius by radiusStep per step, within
// [MinRadius, MaxRadius].
func (s *Spawner) AdjustRadius(steps float64) {
	if steps == 0 || math.IsNaN(steps) {
		return
	}
	s.radius = common.Clamp(s.radius*math.Pow(radiusStep, steps), s.MinRadius, s.MaxRadius)
}

func (s *Spawner) Aiming() bool {
	return s.aiming
}

// Begin starts a drag anchored at the world point (x, y).
func (s *Spawner) Begin(x, y float64) {
	s.anchor = cp.Vector{X: x, Y: y}
	s.aiming = true
}

func (s *Spawner) Cancel() {
	s.aiming = false
}

// Preview returns the body a release at (x, y) would produce.
func (s *Spawner) Preview(x, y float64) (Pending, bool) {
	if !s.aiming {
		return Pending{}, false
	}
	release := cp.Vector{X: x, Y: y}
	return Pending{Anchor: s.anchor, Release: release, Body: s.body(release)}, true
}

// Release ends the drag at (x, y) and returns the body to spawn.
func (s *Spawner) Release(x, y float64) (component.Body, bool) {
	p, ok := s.Preview(x, y)
	s.aiming = false
	if !ok {
		return component.Body{}, false
	}
	return p.Body, true
}

// Mass returns density * r³ for the given radius.
func (s *Spawner) Mass(radius float64) float64 {
	return s.Density * radius * radius * radius
}

func (s *Spawner) Color(mass float64) color.RGBA {
	return common.MassColor(mass)
}

func (s *Spawner) body(release cp.Vector) component.Body {
	mass := s.Mass(s.radius)
	return component.Body{
		Pos:    s.anchor,
		Vel:    s.anchor.Sub(release).Mult(s.LaunchScale),
		Mass:   mass,
		Radius: s.radius,
		Color:  s.Color(mass),
	}
}
