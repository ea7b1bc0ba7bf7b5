package common

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Mass range covered by the MassColor hue sweep.
const (
	LightMass = 0.1
	HeavyMass = 10000.0
)

// MassColor sweeps HCL hue from blue for light bodies to red for heavy ones.
func MassColor(mass float64) color.RGBA {
	t := LogT(mass, LightMass, HeavyMass)
	c := colorful.Hcl(Lerp(250, 20, t), Lerp(0.45, 0.85, t), Lerp(0.8, 0.6, t)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseHex parses "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats an RGBA color as "#rrggbb", dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Fade returns c with its alpha scaled by t in [0,1].
func Fade(c color.RGBA, t float64) color.RGBA {
	t = Clamp(t, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * t),
		G: uint8(float64(c.G) * t),
		B: uint8(float64(c.B) * t),
		A: uint8(float64(c.A) * t),
	}
}
