package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/ecs/component"
)

func body(x, y, mass, radius float64) component.Body {
	return component.Body{Pos: cp.Vector{X: x, Y: y}, Mass: mass, Radius: radius}
}

func TestWorldSpawnLifecycle(t *testing.T) {
	cases := []struct {
		name      string
		max       int
		spawn     int
		wantLen   int
		wantSpawn int
	}{
		{"under_cap", 5, 3, 3, 3},
		{"at_cap", 3, 3, 3, 3},
		{"over_cap_refused", 2, 5, 2, 2},
		{"default_cap", 0, 4, 4, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(c.max)
			spawned := 0
			for i := 0; i < c.spawn; i++ {
				if _, ok := w.Spawn(body(float64(i)*100, 0, 1, 1)); ok {
					spawned++
				}
			}
			if spawned != c.wantSpawn {
				t.Fatalf("expected %d accepted spawns, got %d", c.wantSpawn, spawned)
			}
			if w.Len() != c.wantLen {
				t.Fatalf("expected %d bodies, got %d", c.wantLen, w.Len())
			}
		})
	}
}

func TestWorldSpawnRejectsInvalidBody(t *testing.T) {
	w := NewWorld(10)
	for _, b := range []component.Body{body(0, 0, 0, 1), body(0, 0, 1, 0), body(0, 0, -1, 1)} {
		if _, ok := w.Spawn(b); ok {
			t.Fatalf("spawn of %+v should be refused", b)
		}
	}
	if w.Len() != 0 {
		t.Fatalf("expected empty store, got %d", w.Len())
	}
}

func TestWorldClear(t *testing.T) {
	w := NewWorld(10)
	a, _ := w.Spawn(body(0, 0, 1, 1))
	b, _ := w.Spawn(body(10, 0, 1, 1))
	w.Events().Push(MergeEvent{Survivor: a, Absorbed: b})

	w.Clear()

	if w.Len() != 0 || len(w.Snapshot()) != 0 {
		t.Fatalf("expected empty store after clear")
	}
	if w.IsAlive(a) || w.IsAlive(b) {
		t.Fatalf("handles should be stale after clear")
	}
	if w.Events().Len() != 0 {
		t.Fatalf("clear should drop pending events")
	}

	c, ok := w.Spawn(body(0, 0, 1, 1))
	if !ok {
		t.Fatalf("spawn after clear refused")
	}
	if c == a || c == b {
		t.Fatalf("reused slot must carry a new generation, got %s", c)
	}
}

func TestWorldAbsorbAndCompact(t *testing.T) {
	tests := []struct {
		name         string
		keepJ        bool
		wantSurvivor int
	}{
		{"keep_i", false, 0},
		{"keep_j", true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(10)
			var handles []Entity
			for i := 0; i < 4; i++ {
				e, _ := w.Spawn(body(float64(i), 0, float64(i+1), 1))
				handles = append(handles, e)
			}

			merged := body(42, 0, 4, 2)
			w.Absorb(0, 2, merged, tc.keepJ)

			if w.Len() != 3 {
				t.Fatalf("expected 3 live bodies, got %d", w.Len())
			}
			if w.Live(2) {
				t.Fatalf("slot 2 should be tombstoned")
			}
			if got := w.Entity(0); got != handles[tc.wantSurvivor] {
				t.Fatalf("expected survivor %s, got %s", handles[tc.wantSurvivor], got)
			}

			events := w.Events().Drain()
			if len(events) != 1 || events[0].Survivor != handles[tc.wantSurvivor] {
				t.Fatalf("unexpected merge events %+v", events)
			}
			if w.IsAlive(events[0].Absorbed) {
				t.Fatalf("absorbed handle should be released")
			}

			w.Compact()
			snap := w.Snapshot()
			if len(w.Bodies()) != 3 || len(snap) != 3 {
				t.Fatalf("expected 3 bodies after compact, got %d", len(w.Bodies()))
			}
			wantX := []float64{42, 1, 3}
			for i, x := range wantX {
				if snap[i].Pos.X != x {
					t.Fatalf("order not preserved: index %d has x=%v, want %v", i, snap[i].Pos.X, x)
				}
			}
			if w.Entity(0) != handles[tc.wantSurvivor] {
				t.Fatalf("survivor handle moved during compaction: %s", w.Entity(0))
			}
		})
	}
}

func TestWorldAccelerationBuffers(t *testing.T) {
	w := NewWorld(10)
	ax, ay := w.ResetAccelerations(3)
	ax[1], ay[2] = 5, 7

	gx, gy := w.Accelerations()
	if gx[1] != 5 || gy[2] != 7 {
		t.Fatalf("accelerations should expose last written buffers")
	}

	ax, ay = w.ResetAccelerations(2)
	if len(ax) != 2 || len(ay) != 2 || ax[1] != 0 || ay[1] != 0 {
		t.Fatalf("reset should resize and zero, got %v %v", ax, ay)
	}
}

func TestSparseSetStaleHandles(t *testing.T) {
	w := NewWorld(10)
	a, _ := w.Spawn(body(0, 0, 1, 1))
	b, _ := w.Spawn(body(5, 0, 1, 1))

	var set SparseSet[string]
	set.Set(a, "a")
	set.Set(b, "b")

	if v, ok := set.Get(a); !ok || v != "a" {
		t.Fatalf("expected a, got %q ok=%v", v, ok)
	}

	w.Clear()
	c, _ := w.Spawn(body(0, 0, 1, 1))
	if set.Has(c) {
		t.Fatalf("new generation must not see the old value")
	}
	set.Set(c, "c")
	if set.Len() != 2 {
		t.Fatalf("slot reuse should replace the stale entry, len=%d", set.Len())
	}

	set.Remove(a)
	set.Remove(b)
	if set.Has(a) || set.Has(b) || set.Len() != 1 {
		t.Fatalf("remove failed, len=%d", set.Len())
	}
	if v, _ := set.Get(c); v != "c" {
		t.Fatalf("remaining entry corrupted: %q", v)
	}
}
