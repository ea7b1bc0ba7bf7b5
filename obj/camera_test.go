package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravwell/ecs/component"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(800, 600, 2, 0.1, 10)
	c.PosX, c.PosY = 100, -50

	sx, sy := c.WorldToScreen(100, -50)
	if sx != 400 || sy != 300 {
		t.Fatalf("center should map to screen center, got (%v,%v)", sx, sy)
	}
	wx, wy := c.ScreenToWorld(10, 20)
	bx, by := c.WorldToScreen(wx, wy)
	if !near(bx, 10) || !near(by, 20) {
		t.Fatalf("round trip drifted: (%v,%v)", bx, by)
	}
}

func TestCameraZoomClamp(t *testing.T) {
	c := NewCamera(800, 600, 1, 0.5, 4)
	cases := []struct {
		name string
		set  float64
		want float64
	}{
		{"inside", 2, 2},
		{"below", 0.01, 0.5},
		{"above", 100, 4},
		{"ignored_zero", 0, 4},
		{"ignored_nan", math.NaN(), 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.SetZoom(tc.set)
			if c.Zoom() != tc.want {
				t.Fatalf("expected zoom %v, got %v", tc.want, c.Zoom())
			}
		})
	}
}

func TestCameraZoomAtKeepsCursorPoint(t *testing.T) {
	c := NewCamera(800, 600, 1, 0.1, 10)
	c.PosX, c.PosY = 30, 40

	wx, wy := c.ScreenToWorld(200, 100)
	c.ZoomAt(200, 100, 2.5)
	ax, ay := c.ScreenToWorld(200, 100)

	if c.Zoom() != 2.5 {
		t.Fatalf("expected zoom 2.5, got %v", c.Zoom())
	}
	if !near(ax, wx) || !near(ay, wy) {
		t.Fatalf("world point under cursor moved from (%v,%v) to (%v,%v)", wx, wy, ax, ay)
	}
}

func TestCameraPanScalesWithZoom(t *testing.T) {
	c := NewCamera(800, 600, 2, 0.1, 10)
	c.Pan(100, -40)
	if c.PosX != 50 || c.PosY != -20 {
		t.Fatalf("expected (50,-20), got (%v,%v)", c.PosX, c.PosY)
	}
}

func TestCameraFitAndReset(t *testing.T) {
	c := NewCamera(800, 600, 1, 0.01, 10)
	bodies := []component.Body{
		{Pos: cp.Vector{X: -100, Y: 0}, Mass: 1, Radius: 10},
		{Pos: cp.Vector{X: 300, Y: 50}, Mass: 1, Radius: 10},
	}
	c.Fit(bodies, 0)

	if !near(c.PosX, 100) || !near(c.PosY, 25) {
		t.Fatalf("expected center (100,25), got (%v,%v)", c.PosX, c.PosY)
	}
	// 420 wide, 70 tall: width limits the zoom
	if !near(c.Zoom(), 800.0/420) {
		t.Fatalf("unexpected fit zoom %v", c.Zoom())
	}
	view := c.View()
	for _, b := range bodies {
		if !view.ContainsVect(b.Pos) {
			t.Fatalf("body %v outside view %v", b.Pos, view)
		}
	}

	c.Fit(nil, 0)
	if !near(c.PosX, 100) {
		t.Fatalf("empty fit should be a no-op")
	}

	c.Reset()
	if c.PosX != 0 || c.PosY != 0 || c.Zoom() != 1 {
		t.Fatalf("reset should restore origin and zoom")
	}
}
