package prefabs

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

const DefaultDensity = 0.01

// BuildOptions carries the simulation settings a scene is built against.
type BuildOptions struct {
	G         float64
	Softening float64
	Density   float64
}

// BuildScene resolves a scene into concrete bodies. Missing masses come
// from density * r³ and missing colors from mass.
func BuildScene(spec SceneSpec, opts BuildOptions) ([]component.Body, error) {
	density := spec.Density
	if density <= 0 {
		density = opts.Density
	}
	if density <= 0 {
		density = DefaultDensity
	}

	specs := append([]BodySpec(nil), spec.Bodies...)
	for i, ring := range spec.Rings {
		rb, err := ring.scatter()
		if err != nil {
			return nil, fmt.Errorf("prefabs: scene %s: ring %d: %w", spec.Name, i, err)
		}
		specs = append(specs, rb...)
	}
	if spec.Script != "" {
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: scene %s: load script %s: %w", spec.Name, spec.Script, err)
		}
		out, err := RunScript(spec.Script, src, spec.Seed)
		if err != nil {
			return nil, fmt.Errorf("prefabs: scene %s: %w", spec.Name, err)
		}
		specs = append(specs, out...)
	}

	bodies := make([]component.Body, 0, len(specs))
	for i, bs := range specs {
		b, err := bs.body(density)
		if err != nil {
			return nil, fmt.Errorf("prefabs: scene %s: body %d: %w", spec.Name, i, err)
		}
		bodies = append(bodies, b)
	}

	if spec.AutoOrbit {
		g := opts.G
		if spec.G != nil {
			g = *spec.G
		}
		SetOrbitalVelocities(bodies, g, opts.Softening)
	}
	return bodies, nil
}

// Populate replaces the contents of w with bodies and returns how many the
// store's capacity refused.
func Populate(w *ecs.World, bodies []component.Body) int {
	w.Clear()
	refused := 0
	for _, b := range bodies {
		if _, ok := w.Spawn(b); !ok {
			refused++
		}
	}
	return refused
}

// RunScript dispatches on the script extension.
func RunScript(name string, src []byte, seed int64) ([]BodySpec, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tengo":
		return RunTengo(src, seed)
	case ".lua":
		return RunLua(src, seed)
	}
	return nil, fmt.Errorf("unsupported script %s", name)
}

// SetOrbitalVelocities gives every body at rest, other than the first, the
// circular orbit velocity around the first body under softened gravity.
func SetOrbitalVelocities(bodies []component.Body, g, softening float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	eps2 := softening * softening
	for i := 1; i < len(bodies); i++ {
		b := &bodies[i]
		if b.Vel.X != 0 || b.Vel.Y != 0 {
			continue
		}
		dx := b.Pos.X - central.Pos.X
		dy := b.Pos.Y - central.Pos.Y
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass * r * r / math.Pow(r*r+eps2, 1.5))
		b.Vel = cp.Vector{
			X: central.Vel.X - dy/r*v,
			Y: central.Vel.Y + dx/r*v,
		}
	}
}

func (bs BodySpec) body(density float64) (component.Body, error) {
	if bs.Radius <= 0 || math.IsNaN(bs.Radius) {
		return component.Body{}, fmt.Errorf("radius must be positive, got %v", bs.Radius)
	}
	mass := bs.Mass
	if mass == 0 {
		mass = density * bs.Radius * bs.Radius * bs.Radius
	}
	if mass <= 0 || math.IsNaN(mass) {
		return component.Body{}, fmt.Errorf("mass must be positive, got %v", mass)
	}
	c := common.MassColor(mass)
	if bs.Color.Set {
		c = bs.Color.RGBA
	}
	return component.Body{
		Pos:    cp.Vector{X: bs.Pos[0], Y: bs.Pos[1]},
		Vel:    cp.Vector{X: bs.Vel[0], Y: bs.Vel[1]},
		Mass:   mass,
		Radius: bs.Radius,
		Color:  c,
	}, nil
}

func (r RingSpec) scatter() ([]BodySpec, error) {
	switch {
	case r.Count < 0:
		return nil, fmt.Errorf("count must not be negative")
	case r.Inner < 0 || r.Outer < r.Inner:
		return nil, fmt.Errorf("bad annulus [%v, %v]", r.Inner, r.Outer)
	case r.MinRadius <= 0 || r.MaxRadius < r.MinRadius:
		return nil, fmt.Errorf("bad radius range [%v, %v]", r.MinRadius, r.MaxRadius)
	}

	rng := rand.New(rand.NewSource(r.Seed))
	in2, out2 := r.Inner*r.Inner, r.Outer*r.Outer
	out := make([]BodySpec, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := math.Sqrt(in2 + rng.Float64()*(out2-in2))
		out = append(out, BodySpec{
			Pos: [2]float64{
				r.Center[0] + math.Cos(angle)*dist,
				r.Center[1] + math.Sin(angle)*dist,
			},
			Radius: common.Lerp(r.MinRadius, r.MaxRadius, rng.Float64()),
		})
	}
	return out, nil
}
