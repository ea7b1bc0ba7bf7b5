package ecs

import "github.com/milk9111/gravwell/ecs/component"

// DefaultMaxBodies is the store capacity used when none is configured.
const DefaultMaxBodies = 300

// World owns the ordered body store, the handle of every body, and the
// per-sub-step scratch buffers.
type World struct {
	entities entityStore
	bodies   []component.Body
	handles  []Entity
	tomb     []bool
	dead     int

	ax, ay []float64

	maxBodies int
	events    EventQueue
}

// NewWorld creates an empty world holding at most maxBodies bodies.
func NewWorld(maxBodies int) *World {
	if maxBodies <= 0 {
		maxBodies = DefaultMaxBodies
	}
	return &World{maxBodies: maxBodies}
}

// MaxBodies returns the store capacity.
func (w *World) MaxBodies() int {
	if w == nil {
		return 0
	}
	return w.maxBodies
}

// SetMaxBodies changes the capacity. Bodies already above a lowered cap stay;
// only later spawns are refused.
func (w *World) SetMaxBodies(n int) {
	if w == nil || n <= 0 {
		return
	}
	w.maxBodies = n
}

// Spawn appends a body and returns its handle. It is a silent no-op at
// capacity or for a body with non-positive mass or radius.
func (w *World) Spawn(b component.Body) (Entity, bool) {
	if w == nil || !b.Valid() || w.Len() >= w.maxBodies {
		return 0, false
	}
	e := w.entities.create()
	w.bodies = append(w.bodies, b)
	w.handles = append(w.handles, e)
	w.tomb = append(w.tomb, false)
	return e, true
}

// Clear removes every body and drops pending events.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for i, e := range w.handles {
		if !w.tomb[i] {
			w.entities.destroy(e)
		}
	}
	w.bodies = w.bodies[:0]
	w.handles = w.handles[:0]
	w.tomb = w.tomb[:0]
	w.dead = 0
	w.events.flush()
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.bodies) - w.dead
}

// Bodies returns the store slice for in-place mutation by systems. Between
// a Tombstone and the following Compact it may contain dead slots; check Live.
func (w *World) Bodies() []component.Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

// Snapshot returns a copy of the live bodies in store order.
func (w *World) Snapshot() []component.Body {
	if w == nil {
		return nil
	}
	out := make([]component.Body, 0, w.Len())
	for i, b := range w.bodies {
		if !w.tomb[i] {
			out = append(out, b)
		}
	}
	return out
}

// Entity returns the handle of the body at index i.
func (w *World) Entity(i int) Entity {
	if w == nil || i < 0 || i >= len(w.handles) {
		return 0
	}
	return w.handles[i]
}

// Entities returns the handles of the live bodies in store order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.Len())
	for i, e := range w.handles {
		if !w.tomb[i] {
			out = append(out, e)
		}
	}
	return out
}

// IsAlive reports whether a handle still refers to a body in the store.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Live reports whether slot i holds a body that has not been tombstoned.
func (w *World) Live(i int) bool {
	if w == nil || i < 0 || i >= len(w.tomb) {
		return false
	}
	return !w.tomb[i]
}

// Absorb replaces slot i with merged and tombstones slot j. When keepJ is set
// the merged body inherits j's handle and i's handle is released instead.
func (w *World) Absorb(i, j int, merged component.Body, keepJ bool) {
	if !w.Live(i) || !w.Live(j) || i == j {
		return
	}
	survivor, absorbed := w.handles[i], w.handles[j]
	if keepJ {
		survivor, absorbed = absorbed, survivor
	}
	w.bodies[i] = merged
	w.handles[i] = survivor
	w.handles[j] = absorbed
	w.tomb[j] = true
	w.dead++
	w.entities.destroy(absorbed)
	w.events.Push(MergeEvent{Survivor: survivor, Absorbed: absorbed, Result: merged})
}

// Compact drops tombstoned slots, keeping the order of the survivors.
func (w *World) Compact() {
	if w == nil || w.dead == 0 {
		return
	}
	n := 0
	for i := range w.bodies {
		if w.tomb[i] {
			continue
		}
		w.bodies[n] = w.bodies[i]
		w.handles[n] = w.handles[i]
		w.tomb[n] = false
		n++
	}
	w.bodies = w.bodies[:n]
	w.handles = w.handles[:n]
	w.tomb = w.tomb[:n]
	w.dead = 0
}

// ResetAccelerations sizes the acceleration buffers to n and zeroes them.
func (w *World) ResetAccelerations(n int) (ax, ay []float64) {
	if w == nil {
		return nil, nil
	}
	if cap(w.ax) < n {
		w.ax = make([]float64, n)
		w.ay = make([]float64, n)
	}
	w.ax = w.ax[:n]
	w.ay = w.ay[:n]
	clear(w.ax)
	clear(w.ay)
	return w.ax, w.ay
}

// Accelerations returns the buffers filled by the last force pass.
func (w *World) Accelerations() (ax, ay []float64) {
	if w == nil {
		return nil, nil
	}
	return w.ax, w.ay
}

// Events returns the merge event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
