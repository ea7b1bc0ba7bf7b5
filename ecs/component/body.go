package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Body is a point mass with a collision circle. Color is carried through
// merges untouched; nothing in the simulation reads it.
type Body struct {
	Pos    cp.Vector
	Vel    cp.Vector
	Mass   float64
	Radius float64
	Color  color.RGBA
}

// Momentum returns mass times velocity.
func (b Body) Momentum() cp.Vector {
	return b.Vel.Mult(b.Mass)
}

// Valid reports whether the body satisfies the store invariants.
func (b Body) Valid() bool {
	return b.Mass > 0 && b.Radius > 0
}
