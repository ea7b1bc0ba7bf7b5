package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/milk9111/gravwell/config"
)

func TestGlyph(t *testing.T) {
	cases := []struct {
		sr   float64
		want rune
	}{
		{0.2, '.'},
		{1.5, 'o'},
		{3, 'O'},
	}
	for _, c := range cases {
		if got := glyph(c.sr); got != c.want {
			t.Fatalf("glyph(%v) = %q, want %q", c.sr, got, c.want)
		}
	}
}

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return newViewer(screen, config.Defaults(), zap.NewNop()), screen
}

func TestViewerLoadsAndReloadsScene(t *testing.T) {
	v, _ := newTestViewer(t)
	if err := v.loadScene("binary"); err != nil {
		t.Fatalf("load: %v", err)
	}
	n := v.world.Len()
	if n == 0 {
		t.Fatalf("expected bodies after load")
	}

	v.driver.Advance(1.0/30, v.params)
	v.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if v.world.Len() != n || v.sceneName != "binary" {
		t.Fatalf("reload gave %d bodies in %q", v.world.Len(), v.sceneName)
	}
}

func TestViewerKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	if err := v.loadScene("binary"); err != nil {
		t.Fatalf("load: %v", err)
	}
	ts := v.params.TimeScale

	v.handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if v.params.TimeScale <= ts {
		t.Fatalf("'+' did not speed up: %v", v.params.TimeScale)
	}
	v.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !v.paused {
		t.Fatalf("space did not pause")
	}
	v.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !v.quit {
		t.Fatalf("q did not quit")
	}
}

func TestViewerDrawsStatusLine(t *testing.T) {
	v, screen := newTestViewer(t)
	if err := v.loadScene("binary"); err != nil {
		t.Fatalf("load: %v", err)
	}
	v.draw()

	cells, w, h := screen.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		c := cells[(h-1)*w+x]
		if len(c.Runes) > 0 {
			line = append(line, c.Runes[0])
		}
	}
	if got := string(line); len(got) < 8 || got[1:7] != "binary" {
		t.Fatalf("status line = %q", got)
	}
}

func TestViewerTickHonorsPause(t *testing.T) {
	v, _ := newTestViewer(t)
	if err := v.loadScene("binary"); err != nil {
		t.Fatalf("load: %v", err)
	}

	v.paused = true
	before := v.world.Snapshot()
	v.tick(1.0 / 30)
	for i, b := range v.world.Snapshot() {
		if b != before[i] {
			t.Fatalf("paused tick moved body %d: %+v -> %+v", i, before[i], b)
		}
	}

	v.paused = false
	v.tick(1.0 / 30)
	moved := false
	for i, b := range v.world.Snapshot() {
		if i < len(before) && b != before[i] {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("running tick left the store unchanged")
	}
}
