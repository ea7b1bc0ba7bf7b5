package render

import (
	"strings"
	"testing"

	"github.com/milk9111/gravwell/ecs/component"
	"github.com/milk9111/gravwell/ecs/system"
)

func TestDrawOrderByRadius(t *testing.T) {
	bodies := []component.Body{
		{Radius: 5}, {Radius: 1}, {Radius: 9}, {Radius: 1},
	}
	got := DrawOrder(bodies, nil)
	want := []int{1, 3, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestGridSpacingStaysReadable(t *testing.T) {
	for _, zoom := range []float64{0.01, 0.1, 0.5, 1, 3, 8} {
		s := GridSpacing(zoom)
		px := s * zoom
		if px < 40 || px > 160 {
			t.Fatalf("zoom %v: spacing %v gives %v px", zoom, s, px)
		}
	}
}

func TestHUDLines(t *testing.T) {
	h := HUD{
		Scene:     "disk",
		Bodies:    1234,
		MaxBodies: 5000,
		Mass:      1234567,
		G:         2,
		TimeScale: 1.5,
		SubSteps:  3,
		Paused:    true,
		Merge:     true,
		Radius:    8,
	}
	lines := h.Lines(NewPrinter())
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "paused") {
		t.Fatalf("missing pause state: %q", lines[0])
	}
	if !strings.Contains(lines[1], "1,234/5,000") || !strings.Contains(lines[1], "1,234,567.0") {
		t.Fatalf("numbers should be grouped: %q", lines[1])
	}
	if !strings.Contains(lines[3], "merge on") || !strings.Contains(lines[3], "trails off") {
		t.Fatalf("unexpected toggles line %q", lines[3])
	}

	h.Stats = &system.Stats{Kinetic: 10, Potential: -30}
	h.Notice = "reload failed"
	lines = h.Lines(NewPrinter())
	if len(lines) != 6 || !strings.Contains(lines[4], "E -20.0") || lines[5] != "reload failed" {
		t.Fatalf("unexpected debug lines %q", lines)
	}
}
