package system

import (
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

// IntegrateSystem advances every body with semi-implicit Euler using the
// accelerations left by the force phase.
type IntegrateSystem struct{}

func NewIntegrateSystem() *IntegrateSystem {
	return &IntegrateSystem{}
}

func (s *IntegrateSystem) Phase() ecs.Phase {
	return ecs.PhaseIntegrate
}

func (s *IntegrateSystem) Update(w *ecs.World, st ecs.Step) {
	if w == nil {
		return
	}
	ax, ay := w.Accelerations()
	Integrate(w.Bodies(), ax, ay, st.Dt)
}

// Integrate updates velocity first and then moves each body with the new
// velocity. Bodies without a matching acceleration entry coast. Inputs are
// not sanitized; NaN and Inf propagate.
func Integrate(bodies []component.Body, ax, ay []float64, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		if i < len(ax) && i < len(ay) {
			b.Vel.X += ax[i] * dt
			b.Vel.Y += ay[i] * dt
		}
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
	}
}
