package system

import (
	"testing"

	"github.com/milk9111/gravwell/ecs"
)

func TestTrailSystemRecordsAndCaps(t *testing.T) {
	w := ecs.NewWorld(4)
	e, _ := w.Spawn(newBody(0, 0, 0, 0, 1, 1))
	s := NewTrailSystem(3, 0.5)

	for i := 0; i < 5; i++ {
		w.Bodies()[0].Pos.X = float64(i)
		s.Update(w)
	}
	// below the minimum sample distance
	w.Bodies()[0].Pos.X = 4.1
	s.Update(w)

	tr, ok := s.Trail(e)
	if !ok {
		t.Fatalf("expected a trail for %s", e)
	}
	want := []float64{2, 3, 4}
	if len(tr.Points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(tr.Points))
	}
	for i, x := range want {
		if tr.Points[i].X != x {
			t.Fatalf("point %d: expected x=%v, got %v", i, x, tr.Points[i].X)
		}
	}
}

func TestTrailSystemDropsAbsorbedBodies(t *testing.T) {
	w := ecs.NewWorld(4)
	light, _ := w.Spawn(newBody(0, 0, 0, 0, 1, 2))
	heavy, _ := w.Spawn(newBody(1, 0, 0, 0, 5, 2))
	s := NewTrailSystem(8, 0)
	s.Update(w)

	if s.Len() != 2 {
		t.Fatalf("expected 2 trails, got %d", s.Len())
	}

	MergeOverlaps(w)
	s.Update(w)

	if _, ok := s.Trail(light); ok {
		t.Fatalf("absorbed body should lose its trail")
	}
	tr, ok := s.Trail(heavy)
	if !ok || len(tr.Points) != 2 {
		t.Fatalf("survivor trail should continue, got %+v ok=%v", tr, ok)
	}

	w.Clear()
	s.Update(w)
	if s.Len() != 0 {
		t.Fatalf("clear should drop every trail, got %d", s.Len())
	}
}
