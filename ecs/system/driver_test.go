package system

import (
	"math"
	"testing"

	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

func TestSubSteps(t *testing.T) {
	cases := []struct {
		name      string
		timeScale float64
		want      int
	}{
		{"unit", 1, 2},
		{"clamped_max", 4, 8},
		{"clamped_min", 0.1, 2},
		{"zero", 0, 2},
		{"between", 1.6, 4},
		{"just_over", 2.01, 5},
		{"huge", 1e9, 8},
		{"nan", math.NaN(), 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SubSteps(c.timeScale); got != c.want {
				t.Fatalf("SubSteps(%v): expected %d, got %d", c.timeScale, c.want, got)
			}
		})
	}
}

func TestAdvanceEmptyStoreIsNoop(t *testing.T) {
	d := NewStepDriver(ecs.NewWorld(10))
	rep := d.Advance(1.0/60, DefaultParams())
	if rep != (StepReport{}) {
		t.Fatalf("expected empty report, got %+v", rep)
	}
}

func TestAdvanceSingleBodyHasNoSelfForce(t *testing.T) {
	w := worldWith(t, newBody(12, -7, 0, 0, 500, 10))
	d := NewStepDriver(w)

	rep := d.Advance(1.0/60, DefaultParams())

	if rep.SubSteps != 2 {
		t.Fatalf("expected 2 sub-steps, got %d", rep.SubSteps)
	}
	b := w.Snapshot()[0]
	if b.Pos.X != 12 || b.Pos.Y != -7 || b.Vel.X != 0 || b.Vel.Y != 0 {
		t.Fatalf("lone body moved: %+v", b)
	}
}

func TestAdvanceSymmetricPairAttracts(t *testing.T) {
	w := worldWith(t,
		newBody(-100, 0, 0, 0, 50, 5),
		newBody(100, 0, 0, 0, 50, 5),
	)
	d := NewStepDriver(w)

	for frame := 0; frame < 10; frame++ {
		d.Advance(1.0/60, DefaultParams())
		snap := w.Snapshot()
		a, b := snap[0], snap[1]
		if !approx(a.Pos.X, -b.Pos.X) || !approx(a.Vel.X, -b.Vel.X) {
			t.Fatalf("frame %d: pair lost symmetry: %+v %+v", frame, a, b)
		}
		if a.Vel.X <= 0 {
			t.Fatalf("frame %d: left body should move right, vx=%v", frame, a.Vel.X)
		}
		if a.Pos.Y != 0 || b.Pos.Y != 0 {
			t.Fatalf("frame %d: motion left the axis", frame)
		}
	}
}

func TestAdvanceMergesAndReports(t *testing.T) {
	w := worldWith(t,
		newBody(-10, 0, 0, 0, 100, 10),
		newBody(5, 0, 0, 0, 100, 10),
		newBody(500, 0, 0, 0, 1, 1),
	)
	d := NewStepDriver(w)

	p := DefaultParams()
	p.TimeScale = 4
	rep := d.Advance(1.0/60, p)

	if rep.SubSteps != 8 {
		t.Fatalf("expected 8 sub-steps, got %d", rep.SubSteps)
	}
	if rep.Merges != 1 || w.Len() != 2 {
		t.Fatalf("expected one merge leaving 2 bodies, got merges=%d len=%d", rep.Merges, w.Len())
	}
	if !approx(rep.Dt, 4.0/60) {
		t.Fatalf("expected scaled dt %v, got %v", 4.0/60, rep.Dt)
	}
}

func TestAdvanceMergeDisabled(t *testing.T) {
	w := worldWith(t,
		newBody(0, 0, 0, 0, 1, 10),
		newBody(1, 0, 0, 0, 1, 10),
	)
	p := DefaultParams()
	p.MergeEnabled = false

	rep := NewStepDriver(w).Advance(1.0/60, p)
	if rep.Merges != 0 || w.Len() != 2 {
		t.Fatalf("merging disabled but got merges=%d len=%d", rep.Merges, w.Len())
	}
}

func TestAdvanceConservesMomentum(t *testing.T) {
	w := worldWith(t,
		newBody(-40, 10, 2, 1, 30, 3),
		newBody(35, -5, -1, 3, 70, 4),
		newBody(0, 60, 0, -2, 10, 2),
		newBody(5, 55, 1, -2, 20, 2),
	)
	before := Measure(w.Snapshot(), 2, 5)

	d := NewStepDriver(w)
	for i := 0; i < 120; i++ {
		d.Advance(1.0/60, DefaultParams())
	}
	after := Measure(w.Snapshot(), 2, 5)

	if after.Count > before.Count {
		t.Fatalf("body count grew: %d -> %d", before.Count, after.Count)
	}
	if !approx(before.Mass, after.Mass) {
		t.Fatalf("mass drifted: %v -> %v", before.Mass, after.Mass)
	}
	if math.Abs(before.Momentum.X-after.Momentum.X) > 1e-6 || math.Abs(before.Momentum.Y-after.Momentum.Y) > 1e-6 {
		t.Fatalf("momentum drifted: %v -> %v", before.Momentum, after.Momentum)
	}
}

func TestAdvanceAppliesMaxBodiesHint(t *testing.T) {
	w := worldWith(t, newBody(0, 0, 0, 0, 1, 1))
	p := DefaultParams()
	p.MaxBodies = 1

	NewStepDriver(w).Advance(1.0/60, p)

	if w.MaxBodies() != 1 {
		t.Fatalf("expected cap 1, got %d", w.MaxBodies())
	}
	if _, ok := w.Spawn(component.Body{Mass: 1, Radius: 1}); ok {
		t.Fatalf("spawn above the hinted cap should be refused")
	}
}

