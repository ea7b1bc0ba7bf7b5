package common

import "math"

// Logical screen size used by layout when the window does not dictate one.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LogT maps v onto [0,1] logarithmically between lo and hi.
func LogT(v, lo, hi float64) float64 {
	if lo <= 0 || hi <= lo || v <= lo {
		return 0
	}
	if v >= hi {
		return 1
	}
	return math.Log(v/lo) / math.Log(hi/lo)
}
