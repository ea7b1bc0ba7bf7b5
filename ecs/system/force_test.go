package system

import (
	"math"
	"testing"

	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
)

func TestAccumulateTrivialStores(t *testing.T) {
	cases := []struct {
		name   string
		bodies []component.Body
	}{
		{"empty", nil},
		{"single", []component.Body{newBody(3, 4, 1, 1, 50, 2)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ax := []float64{9, 9}
			ay := []float64{9, 9}
			Accumulate(c.bodies, 2, 5, ax, ay)
			for i := range c.bodies {
				if ax[i] != 0 || ay[i] != 0 {
					t.Fatalf("expected zero acceleration, got (%v, %v)", ax[i], ay[i])
				}
			}
		})
	}
}

func TestAccumulatePairIsSymmetric(t *testing.T) {
	tests := []struct {
		name   string
		a, b   component.Body
		g, eps float64
	}{
		{"equal_masses_about_origin", newBody(-50, 0, 0, 0, 100, 5), newBody(50, 0, 0, 0, 100, 5), 2, 5},
		{"unequal_masses_diagonal", newBody(-3, 7, 0, 0, 10, 1), newBody(20, -4, 0, 0, 250, 4), 1.5, 5},
		{"coincident_softened", newBody(1, 1, 0, 0, 5, 1), newBody(1, 1, 0, 0, 5, 1), 2, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax := make([]float64, 2)
			ay := make([]float64, 2)
			Accumulate([]component.Body{tc.a, tc.b}, tc.g, tc.eps, ax, ay)

			if !approx(tc.a.Mass*ax[0], -tc.b.Mass*ax[1]) || !approx(tc.a.Mass*ay[0], -tc.b.Mass*ay[1]) {
				t.Fatalf("third law broken: a=(%v,%v) b=(%v,%v)", ax[0], ay[0], ax[1], ay[1])
			}
			for i := range ax {
				if math.IsNaN(ax[i]) || math.IsInf(ax[i], 0) {
					t.Fatalf("acceleration must stay finite, got %v", ax[i])
				}
			}
		})
	}
}

func TestAccumulateMatchesSoftenedLaw(t *testing.T) {
	a := newBody(0, 0, 0, 0, 100, 5)
	b := newBody(30, 40, 0, 0, 200, 5)
	g, eps := 2.0, 5.0

	ax := make([]float64, 2)
	ay := make([]float64, 2)
	Accumulate([]component.Body{a, b}, g, eps, ax, ay)

	// |d| = 50; the direction factor divides by the softened distance.
	r2 := 30.0*30.0 + 40.0*40.0 + eps*eps
	want := g * b.Mass / r2 * 50 / math.Sqrt(r2)
	got := math.Hypot(ax[0], ay[0])
	if !approx(got, want) {
		t.Fatalf("expected |a|=%v, got %v", want, got)
	}
	if ax[0] <= 0 || ay[0] <= 0 || ax[1] >= 0 || ay[1] >= 0 {
		t.Fatalf("bodies must accelerate toward each other: %v %v", ax, ay)
	}
}

func TestForceSystemLeavesBodiesUntouched(t *testing.T) {
	w := worldWith(t,
		newBody(-10, 0, 1, 2, 10, 1),
		newBody(10, 0, 3, 4, 10, 1),
	)
	before := w.Snapshot()

	NewForceSystem().Update(w, ecs.Step{G: 2, Softening: 5, Dt: 1})

	after := w.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("force pass mutated body %d: %+v -> %+v", i, before[i], after[i])
		}
	}
	ax, _ := w.Accelerations()
	if len(ax) != 2 || ax[0] <= 0 {
		t.Fatalf("expected accelerations for both bodies, got %v", ax)
	}
}
