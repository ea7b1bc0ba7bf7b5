package main

import (
	"fmt"
	"image"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/milk9111/gravwell/assets"
	"github.com/milk9111/gravwell/common"
	"github.com/milk9111/gravwell/config"
	"github.com/milk9111/gravwell/ecs"
	"github.com/milk9111/gravwell/ecs/render"
	"github.com/milk9111/gravwell/ecs/system"
	"github.com/milk9111/gravwell/obj"
	"github.com/milk9111/gravwell/prefabs"
)

const (
	tuneFactor = 1.25
	minTime    = 0.1
	maxTime    = 8
	minG       = 0.05
	maxG       = 100
	// wheelZoom is the zoom factor per wheel notch.
	wheelZoom = 1.1
	// fitMargin is the screen padding kept around bodies by Fit.
	fitMargin = 40
	// statsEvery is the debug diagnostics log period in frames.
	statsEvery = 300
	// noticeFrames is how long a status notice stays on the HUD.
	noticeFrames = 180
)

type Game struct {
	cfg   *config.Config
	log   *zap.Logger
	debug bool

	world  *ecs.World
	driver *system.StepDriver
	trails *system.TrailSystem
	params system.Params

	camera   *obj.Camera
	input    *obj.Input
	spawner  *obj.Spawner
	renderer *render.Renderer
	tones    *assets.TonePlayer
	ui       *ebitenui.UI
	panel    *controlPanel

	scenes    []string
	sceneName string
	scene     prefabs.SceneSpec
	watcher   *prefabs.Watcher

	paused      bool
	showTrails  bool
	clipboardOK bool
	report      system.StepReport
	frames      int
	notice      string
	noticeUntil int
	quit        bool
}

func NewGame(cfg *config.Config, log *zap.Logger, debug bool) (*Game, error) {
	world := ecs.NewWorld(cfg.Simulation.MaxBodies)
	camera := obj.NewCamera(cfg.Window.Width, cfg.Window.Height, cfg.Camera.Zoom, cfg.Camera.MinZoom, cfg.Camera.MaxZoom)

	g := &Game{
		cfg:        cfg,
		log:        log,
		debug:      debug,
		world:      world,
		driver:     system.NewStepDriver(world),
		trails:     system.NewTrailSystem(cfg.Trails.MaxPoints, cfg.Trails.MinDist),
		params:     paramsFromConfig(cfg.Simulation),
		camera:     camera,
		input:      obj.NewInput(camera, cfg.Camera.PanSpeed),
		spawner:    obj.NewSpawner(cfg.Spawn),
		renderer:   render.NewRenderer(camera),
		tones:      assets.NewTonePlayer(cfg.Audio.Enabled, cfg.Audio.Volume),
		showTrails: cfg.Trails.Enabled,
		scenes:     prefabs.ListScenes(),
	}
	g.ui, g.panel = NewControlUI(g)

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable, snapshot copy disabled", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	if cfg.Scene.Initial != "" {
		if err := g.loadScene(cfg.Scene.Initial); err != nil {
			return nil, err
		}
	}

	if cfg.Scene.Watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultWatchDirs()...)
		if err != nil {
			log.Warn("scene hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
			log.Info("watching scenes for changes", zap.Strings("dirs", prefabs.DefaultWatchDirs()))
		}
	}
	return g, nil
}

func paramsFromConfig(sim config.SimulationConfig) system.Params {
	return system.Params{
		G:            sim.G,
		TimeScale:    sim.TimeScale,
		Softening:    sim.Softening,
		MergeEnabled: sim.Merge,
		MaxBodies:    sim.MaxBodies,
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := 1.0 / float64(ebiten.TPS())

	g.ui.Update()
	g.input.Update(dt)
	g.handleActions()
	if g.quit {
		return ebiten.Termination
	}

	g.updateCamera()
	g.updateSpawner()

	g.stepSimulation(dt)

	g.pollWatcher()

	if g.debug && g.frames%statsEvery == 0 {
		s := system.Measure(g.world.Bodies(), g.params.G, g.params.Softening)
		g.log.Debug("diagnostics",
			zap.Int("bodies", s.Count),
			zap.Int("substeps", g.report.SubSteps),
			zap.Float64("mass", s.Mass),
			zap.Float64("energy", s.Energy()),
			zap.Float64("px", s.Momentum.X),
			zap.Float64("py", s.Momentum.Y),
		)
	}

	g.panel.sync(g)
	return nil
}

func (g *Game) handleActions() {
	for _, a := range g.input.Actions {
		switch a {
		case obj.ActionPause:
			g.togglePause()
		case obj.ActionClear:
			g.clear()
		case obj.ActionToggleMerge:
			g.toggleMerge()
		case obj.ActionFaster:
			g.setTimeScale(g.params.TimeScale * tuneFactor)
		case obj.ActionSlower:
			g.setTimeScale(g.params.TimeScale / tuneFactor)
		case obj.ActionGravityUp:
			g.setGravity(g.params.G * tuneFactor)
		case obj.ActionGravityDown:
			g.setGravity(g.params.G / tuneFactor)
		case obj.ActionToggleTrails:
			g.toggleTrails()
		case obj.ActionToggleAudio:
			g.toggleAudio()
		case obj.ActionCopy:
			g.copySnapshot()
		case obj.ActionFit:
			g.camera.Fit(g.world.Bodies(), fitMargin)
		case obj.ActionResetCamera:
			g.camera.Reset()
		case obj.ActionNextScene:
			g.nextScene()
		case obj.ActionGrowRadius:
			g.spawner.AdjustRadius(1)
		case obj.ActionShrinkRadius:
			g.spawner.AdjustRadius(-1)
		case obj.ActionQuit:
			g.quit = true
		}
	}

	if slot := g.input.Scene; slot >= 0 && slot < len(g.scenes) {
		g.switchScene(g.scenes[slot])
	}
}

func (g *Game) updateCamera() {
	g.camera.Pan(g.input.PanX, g.input.PanY)
	if w := g.input.Wheel; w != 0 {
		if g.spawner.Aiming() {
			g.spawner.AdjustRadius(w)
		} else if !g.overPanel() {
			g.camera.ZoomAt(float64(g.input.MouseX), float64(g.input.MouseY), math.Pow(wheelZoom, w))
		}
	}
	g.input.UpdateWorld()
}

func (g *Game) updateSpawner() {
	in := g.input
	if in.RightPressed {
		g.spawner.Cancel()
	}
	if in.LeftPressed && !g.overPanel() {
		g.spawner.Begin(in.MouseWorldX, in.MouseWorldY)
	}
	if !in.LeftReleased {
		return
	}
	b, ok := g.spawner.Release(in.MouseWorldX, in.MouseWorldY)
	if !ok {
		return
	}
	if _, ok := g.world.Spawn(b); !ok {
		g.log.Debug("spawn refused",
			zap.Int("bodies", g.world.Len()),
			zap.Int("max", g.world.MaxBodies()),
		)
	}
}

// stepSimulation advances the world by one frame unless paused.
func (g *Game) stepSimulation(dt float64) {
	if g.paused {
		return
	}
	g.report = g.driver.Advance(dt, g.params)
	g.drainMerges()
	if g.showTrails {
		g.trails.Update(g.world)
	}
}

func (g *Game) drainMerges() {
	for _, ev := range g.world.Events().Drain() {
		g.tones.Queue(ev.Result.Mass)
		g.log.Debug("merge",
			zap.Stringer("survivor", ev.Survivor),
			zap.Stringer("absorbed", ev.Absorbed),
			zap.Float64("mass", ev.Result.Mass),
			zap.Float64("radius", ev.Result.Radius),
		)
	}
	if _, err := g.tones.Flush(); err != nil {
		g.log.Warn("play merge tone", zap.Error(err))
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.scenes = prefabs.ListScenes()
			if !ch.Affects(g.sceneName, g.scene) {
				continue
			}
			g.log.Info("scene changed on disk", zap.String("path", ch.Path))
			g.switchScene(g.sceneName)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("scene watcher", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) overPanel() bool {
	if g.panel == nil {
		return false
	}
	return image.Pt(g.input.MouseX, g.input.MouseY).In(g.panel.rect())
}

// loadScene replaces the store with the named scene. On error the current
// store is left untouched.
func (g *Game) loadScene(name string) error {
	spec, err := prefabs.LoadScene(name)
	if err != nil {
		return err
	}
	bodies, err := prefabs.BuildScene(spec, prefabs.BuildOptions{
		G:         g.cfg.Simulation.G,
		Softening: g.cfg.Simulation.Softening,
		Density:   g.cfg.Spawn.Density,
	})
	if err != nil {
		return err
	}

	g.world.SetMaxBodies(g.params.MaxBodies)
	g.trails.Reset()
	refused := prefabs.Populate(g.world, bodies)

	g.params.G = g.cfg.Simulation.G
	if spec.G != nil {
		g.params.G = *spec.G
	}
	g.params.TimeScale = g.cfg.Simulation.TimeScale
	if spec.TimeScale != nil {
		g.params.TimeScale = *spec.TimeScale
	}

	g.scene = spec
	g.sceneName = prefabs.SceneName(name)
	if g.world.Len() > 0 {
		g.camera.Fit(g.world.Bodies(), fitMargin)
	} else {
		g.camera.Reset()
	}

	g.log.Info("scene loaded",
		zap.String("scene", g.sceneName),
		zap.Int("bodies", g.world.Len()),
		zap.Int("refused", refused),
	)
	return nil
}

func (g *Game) switchScene(name string) {
	if err := g.loadScene(name); err != nil {
		g.log.Error("load scene", zap.String("scene", name), zap.Error(err))
		g.setNotice(fmt.Sprintf("scene %s: %v", name, err))
	}
}

func (g *Game) nextScene() {
	if len(g.scenes) == 0 {
		return
	}
	next := 0
	for i, s := range g.scenes {
		if s == g.sceneName {
			next = (i + 1) % len(g.scenes)
			break
		}
	}
	g.switchScene(g.scenes[next])
}

func (g *Game) togglePause() {
	g.paused = !g.paused
}

func (g *Game) clear() {
	g.world.Clear()
	g.trails.Reset()
	g.spawner.Cancel()
}

func (g *Game) toggleMerge() {
	g.params.MergeEnabled = !g.params.MergeEnabled
}

func (g *Game) toggleTrails() {
	g.showTrails = !g.showTrails
	if !g.showTrails {
		g.trails.Reset()
	}
}

func (g *Game) toggleAudio() {
	g.tones.SetEnabled(!g.tones.Enabled())
}

func (g *Game) setTimeScale(ts float64) {
	g.params.TimeScale = common.Clamp(ts, minTime, maxTime)
}

func (g *Game) setGravity(v float64) {
	g.params.G = common.Clamp(v, minG, maxG)
}

func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		g.setNotice("clipboard unavailable")
		return
	}
	data, err := prefabs.ExportScene(g.sceneName+"-snapshot", g.world.Snapshot())
	if err != nil {
		g.log.Error("export snapshot", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setNotice(fmt.Sprintf("copied %d bodies", g.world.Len()))
	g.log.Info("snapshot copied", zap.Int("bodies", g.world.Len()), zap.Int("bytes", len(data)))
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeUntil = g.frames + noticeFrames
}

func (g *Game) hud() render.HUD {
	h := render.HUD{
		Scene:     g.sceneName,
		Bodies:    g.world.Len(),
		MaxBodies: g.world.MaxBodies(),
		FPS:       ebiten.ActualFPS(),
		G:         g.params.G,
		TimeScale: g.params.TimeScale,
		SubSteps:  system.SubSteps(g.params.TimeScale),
		Paused:    g.paused,
		Merge:     g.params.MergeEnabled,
		Trails:    g.showTrails,
		Radius:    g.spawner.Radius(),
	}
	stats := system.Measure(g.world.Bodies(), g.params.G, g.params.Softening)
	h.Mass = stats.Mass
	if g.debug {
		h.Stats = &stats
	}
	if g.frames < g.noticeUntil {
		h.Notice = g.notice
	}
	return h
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := render.Frame{
		World: g.world,
		HUD:   g.hud(),
	}
	if g.showTrails {
		f.Trails = g.trails
	}
	if p, ok := g.spawner.Preview(g.input.MouseWorldX, g.input.MouseWorldY); ok {
		f.Pending = &p
	}
	g.renderer.Draw(screen, f)
	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := int(math.Ceil(outsideWidth)), int(math.Ceil(outsideHeight))
	if w <= 0 || h <= 0 {
		w, h = common.BaseWidth, common.BaseHeight
	}
	g.camera.SetScreenSize(w, h)
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
