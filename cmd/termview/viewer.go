package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/config"
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/component"
	"github.com/milk9111/gravwell/ecs/system"
	"github.com/milk9111/gravwell/obj"
	"github.com/milk9111/gravwell/prefabs"
)

// Terminal cells are roughly twice as tall as they are wide, so the camera
// works in half-cell rows.
const cellAspect = 2

type viewer struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *zap.Logger

	world  *ecs.World
	driver *system.StepDriver
	params system.Params
	camera *obj.Camera

	sceneName string
	paused    bool
	quit      bool
}

func newViewer(screen tcell.Screen, cfg *config.Config, log *zap.Logger) *viewer {
	w, h := screen.Size()
	world := ecs.NewWorld(cfg.Simulation.MaxBodies)
	return &viewer{
		screen: screen,
		cfg:    cfg,
		log:    log,
		world:  world,
		driver: system.NewStepDriver(world),
		params: system.Params{
			G:            cfg.Simulation.G,
			TimeScale:    cfg.Simulation.TimeScale,
			Softening:    cfg.Simulation.Softening,
			MergeEnabled: cfg.Simulation.Merge,
			MaxBodies:    cfg.Simulation.MaxBodies,
		},
		camera: obj.NewCamera(w, h*cellAspect, 1, 1e-4, 100),
	}
}

func (v *viewer) loadScene(name string) error {
	spec, err := prefabs.LoadScene(name)
	if err != nil {
		return err
	}
	bodies, err := prefabs.BuildScene(spec, prefabs.BuildOptions{
		G:         v.cfg.Simulation.G,
		Softening: v.cfg.Simulation.Softening,
		Density:   v.cfg.Spawn.Density,
	})
	if err != nil {
		return err
	}

	refused := prefabs.Populate(v.world, bodies)
	v.params.G = v.cfg.Simulation.G
	if spec.G != nil {
		v.params.G = *spec.G
	}
	v.params.TimeScale = v.cfg.Simulation.TimeScale
	if spec.TimeScale != nil {
		v.params.TimeScale = *spec.TimeScale
	}
	v.sceneName = prefabs.SceneName(name)
	v.camera.Fit(v.world.Bodies(), 2)

	v.log.Info("scene loaded",
		zap.String("scene", v.sceneName),
		zap.Int("bodies", v.world.Len()),
		zap.Int("refused", refused),
	)
	return nil
}

func (v *viewer) run(frame time.Duration) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	dt := frame.Seconds()
	for !v.quit {
		select {
		case ev := <-events:
			v.handle(ev)
		case <-ticker.C:
			v.tick(dt)
			v.draw()
		}
	}
}

// tick advances the simulation by dt unless paused.
func (v *viewer) tick(dt float64) {
	if v.paused {
		return
	}
	v.driver.Advance(dt, v.params)
	for _, e := range v.world.Events().Drain() {
		v.log.Debug("merge", zap.Stringer("survivor", e.Survivor), zap.Float64("mass", e.Result.Mass))
	}
}

func (v *viewer) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := v.screen.Size()
		v.camera.SetScreenSize(w, h*cellAspect)
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			v.quit = true
			return
		case tcell.KeyRune:
		default:
			return
		}
		switch ev.Rune() {
		case 'q':
			v.quit = true
		case ' ':
			v.paused = !v.paused
		case '+', '=':
			v.params.TimeScale = common.Clamp(v.params.TimeScale*1.25, 0.1, 8)
		case '-':
			v.params.TimeScale = common.Clamp(v.params.TimeScale/1.25, 0.1, 8)
		case 'f':
			v.camera.Fit(v.world.Bodies(), 2)
		case 'r':
			if err := v.loadScene(v.sceneName); err != nil {
				v.log.Error("reload scene", zap.Error(err))
			}
		}
	}
}

// glyph picks a character for a body covering sr half-cells.
func glyph(sr float64) rune {
	switch {
	case sr < 1:
		return '.'
	case sr < 2:
		return 'o'
	default:
		return 'O'
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	zoom := v.camera.Zoom()

	// small bodies last so they stay visible on top of large ones
	bodies := append([]component.Body(nil), v.world.Bodies()...)
	sort.SliceStable(bodies, func(a, b int) bool { return bodies[a].Radius > bodies[b].Radius })
	for _, b := range bodies {
		v.drawBody(b, zoom, cols, rows)
	}

	state := "running"
	if v.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s  %s  bodies %d  G %.2f  time x%.2f  [q]uit [space] pause [+/-] speed [r]eload [f]it",
		v.sceneName, state, v.world.Len(), v.params.G, v.params.TimeScale)
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, rows-1, r, nil, style)
	}
	v.screen.Show()
}

func (v *viewer) drawBody(b component.Body, zoom float64, cols, rows int) {
	sx, sy := v.camera.WorldToScreen(b.Pos.X, b.Pos.Y)
	sr := b.Radius * zoom
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(b.Color))

	cx, cy := int(math.Floor(sx)), int(math.Floor(sy/cellAspect))
	if sr < 2 {
		if cx >= 0 && cx < cols && cy >= 0 && cy < rows-1 {
			v.screen.SetContent(cx, cy, glyph(sr), nil, style)
		}
		return
	}

	// filled disc in cell space
	rx := int(math.Ceil(sr))
	ry := int(math.Ceil(sr / cellAspect))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= cols || y < 0 || y >= rows-1 {
				continue
			}
			if math.Hypot(float64(dx), float64(dy)*cellAspect) > sr {
				continue
			}
			v.screen.SetContent(x, y, '█', nil, style)
		}
	}
}
