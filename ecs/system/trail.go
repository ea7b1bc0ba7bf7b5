package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/ecs"
)

// Trail is a bounded history of positions, oldest first.
type Trail struct {
	Points []cp.Vector
}

// TrailSystem records body positions once per frame. It runs outside the
// sub-step pipeline and only reads the store.
type TrailSystem struct {
	trails    ecs.SparseSet[*Trail]
	maxPoints int
	minDistSq float64
}

// NewTrailSystem keeps up to maxPoints per body and skips samples closer
// than minDist to the previous one.
func NewTrailSystem(maxPoints int, minDist float64) *TrailSystem {
	if maxPoints < 2 {
		maxPoints = 2
	}
	return &TrailSystem{maxPoints: maxPoints, minDistSq: minDist * minDist}
}

// Update appends the current position of every body and drops the trails of
// bodies that no longer exist, such as ones absorbed by a merge.
func (s *TrailSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range append([]ecs.Entity(nil), s.trails.Entities()...) {
		if !w.IsAlive(e) {
			s.trails.Remove(e)
		}
	}

	bodies := w.Bodies()
	for i := range bodies {
		if !w.Live(i) {
			continue
		}
		e := w.Entity(i)
		tr, ok := s.trails.Get(e)
		if !ok {
			tr = &Trail{Points: make([]cp.Vector, 0, s.maxPoints)}
			s.trails.Set(e, tr)
		}
		s.record(tr, bodies[i].Pos)
	}
}

func (s *TrailSystem) record(tr *Trail, p cp.Vector) {
	if n := len(tr.Points); n > 0 && tr.Points[n-1].DistanceSq(p) < s.minDistSq {
		return
	}
	if len(tr.Points) == s.maxPoints {
		copy(tr.Points, tr.Points[1:])
		tr.Points = tr.Points[:len(tr.Points)-1]
	}
	tr.Points = append(tr.Points, p)
}

// Trail returns the history of a body.
func (s *TrailSystem) Trail(e ecs.Entity) (*Trail, bool) {
	if s == nil {
		return nil, false
	}
	return s.trails.Get(e)
}

// Len returns the number of tracked bodies.
func (s *TrailSystem) Len() int {
	if s == nil {
		return 0
	}
	return s.trails.Len()
}

// Reset forgets every trail.
func (s *TrailSystem) Reset() {
	if s == nil {
		return
	}
	s.trails.Reset()
}
