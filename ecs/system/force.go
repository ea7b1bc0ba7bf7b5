package system

import (
	"math"

	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

// ForceSystem fills the world's acceleration buffers with the softened
// pairwise gravity of the current positions. It never mutates bodies.
type ForceSystem struct{}

func NewForceSystem() *ForceSystem {
	return &ForceSystem{}
}

func (s *ForceSystem) Phase() ecs.Phase {
	return ecs.PhaseForce
}

func (s *ForceSystem) Update(w *ecs.World, st ecs.Step) {
	if w == nil {
		return
	}
	bodies := w.Bodies()
	ax, ay := w.ResetAccelerations(len(bodies))
	Accumulate(bodies, st.G, st.Softening, ax, ay)
}

// Accumulate overwrites ax and ay with the net acceleration of every body.
// Each unordered pair is visited once and both sides are updated, so the
// pass is O(n²). ax and ay must be at least len(bodies) long.
func Accumulate(bodies []component.Body, g, softening float64, ax, ay []float64) {
	n := len(bodies)
	clear(ax[:n])
	clear(ay[:n])

	eps2 := softening * softening
	for i := 0; i < n; i++ {
		bi := &bodies[i]
		for j := i + 1; j < n; j++ {
			bj := &bodies[j]

			dx := bj.Pos.X - bi.Pos.X
			dy := bj.Pos.Y - bi.Pos.Y
			r2 := dx*dx + dy*dy + eps2
			dist := math.Sqrt(r2)
			force := g * bi.Mass * bj.Mass / r2

			ax[i] += force * dx / (dist * bi.Mass)
			ay[i] += force * dy / (dist * bi.Mass)
			ax[j] -= force * dx / (dist * bj.Mass)
			ay[j] -= force * dy / (dist * bj.Mass)
		}
	}
}
