package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

// MergeSystem replaces every overlapping pair with a single body that
// conserves mass and momentum.
type MergeSystem struct{}

func NewMergeSystem() *MergeSystem {
	return &MergeSystem{}
}

func (s *MergeSystem) Phase() ecs.Phase {
	return ecs.PhaseCollide
}

func (s *MergeSystem) Update(w *ecs.World, st ecs.Step) {
	if w == nil || !st.MergeEnabled {
		return
	}
	MergeOverlaps(w)
}

// Overlaps reports whether two collision circles touch or intersect.
func Overlaps(a, b component.Body) bool {
	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	rs := a.Radius + b.Radius
	return dx*dx+dy*dy <= rs*rs
}

// Merge combines two bodies at their center of mass. The radius grows as
// sqrt(ra² + rb²) and the heavier body's color wins, a on ties.
func Merge(a, b component.Body) component.Body {
	m := a.Mass + b.Mass
	out := component.Body{
		Pos:    weighted(a.Pos, a.Mass, b.Pos, b.Mass, m),
		Vel:    weighted(a.Vel, a.Mass, b.Vel, b.Mass, m),
		Mass:   m,
		Radius: math.Sqrt(a.Radius*a.Radius + b.Radius*b.Radius),
		Color:  a.Color,
	}
	if b.Mass > a.Mass {
		out.Color = b.Color
	}
	return out
}

func weighted(a cp.Vector, ma float64, b cp.Vector, mb float64, m float64) cp.Vector {
	return cp.Vector{
		X: (a.X*ma + b.X*mb) / m,
		Y: (a.Y*ma + b.Y*mb) / m,
	}
}

// MergeOverlaps runs one left-to-right pass and returns the number of merges.
// When body i absorbs body j, the scan of i's partners restarts right after
// i, so a merged body is checked against every later live body and clusters
// collapse in a single pass. Bodies before i are not revisited: if a merged
// body grows into one of them, that pair merges on the next pass. Absorbed
// slots are tombstoned and the store is compacted once at the end.
func MergeOverlaps(w *ecs.World) int {
	if w == nil {
		return 0
	}
	bodies := w.Bodies()
	n := len(bodies)
	merges := 0
	for i := 0; i < n; i++ {
		if !w.Live(i) {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !w.Live(j) || !Overlaps(bodies[i], bodies[j]) {
				continue
			}
			a, b := bodies[i], bodies[j]
			w.Absorb(i, j, Merge(a, b), b.Mass > a.Mass)
			merges++
			j = i
		}
	}
	w.Compact()
	return merges
}
