package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/ecs/component"
)

// Stats are conserved and derived quantities of a body set.
type Stats struct {
	Count     int
	Mass      float64
	Momentum  cp.Vector
	Center    cp.Vector
	Kinetic   float64
	Potential float64
}

// Energy is kinetic plus softened potential energy.
func (s Stats) Energy() float64 {
	return s.Kinetic + s.Potential
}

// Measure computes Stats. The potential uses the same softening as the force
// pass so it matches the dynamics being integrated.
func Measure(bodies []component.Body, g, softening float64) Stats {
	var s Stats
	s.Count = len(bodies)
	eps2 := softening * softening
	var weighted cp.Vector
	for i, b := range bodies {
		s.Mass += b.Mass
		s.Momentum = s.Momentum.Add(b.Momentum())
		weighted = weighted.Add(b.Pos.Mult(b.Mass))
		s.Kinetic += 0.5 * b.Mass * b.Vel.LengthSq()

		for j := i + 1; j < len(bodies); j++ {
			o := bodies[j]
			r := math.Sqrt(b.Pos.DistanceSq(o.Pos) + eps2)
			s.Potential -= g * b.Mass * o.Mass / r
		}
	}
	if s.Mass > 0 {
		s.Center = weighted.Mult(1 / s.Mass)
	}
	return s
}
