package system

import (
	"math"

	"github.com/milk9111/gravwell/ecs"
)

const (
	MinSubSteps = 2
	MaxSubSteps = 8
)

// Params is the per-frame simulation configuration owned by the caller.
type Params struct {
	G            float64
	TimeScale    float64
	Softening    float64
	MergeEnabled bool
	// MaxBodies, when positive, updates the store capacity used by spawns.
	MaxBodies int
}

// DefaultParams returns the stock simulation settings.
func DefaultParams() Params {
	return Params{
		G:            2,
		TimeScale:    1,
		Softening:    5,
		MergeEnabled: true,
		MaxBodies:    ecs.DefaultMaxBodies,
	}
}

// StepReport summarizes one Advance call.
type StepReport struct {
	SubSteps int
	Merges   int
	// Dt is the scaled simulated time covered by the call.
	Dt float64
}

// SubSteps returns ceil(timeScale*2) clamped to [MinSubSteps, MaxSubSteps].
func SubSteps(timeScale float64) int {
	s := math.Ceil(timeScale * 2)
	if math.IsNaN(s) || s < MinSubSteps {
		return MinSubSteps
	}
	if s > MaxSubSteps {
		return MaxSubSteps
	}
	return int(s)
}

// StepDriver splits a frame into sub-steps and runs force, integration and
// merging for each of them, in that order.
type StepDriver struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
}

func NewStepDriver(w *ecs.World) *StepDriver {
	return &StepDriver{
		world: w,
		scheduler: ecs.NewScheduler(
			NewForceSystem(),
			NewIntegrateSystem(),
			NewMergeSystem(),
		),
	}
}

// World returns the store the driver advances.
func (d *StepDriver) World() *ecs.World {
	if d == nil {
		return nil
	}
	return d.world
}

// Advance simulates frameDt wall-clock seconds scaled by p.TimeScale. It does
// nothing for an empty store. Callers skip it entirely while paused.
func (d *StepDriver) Advance(frameDt float64, p Params) StepReport {
	if d == nil || d.world == nil {
		return StepReport{}
	}
	if p.MaxBodies > 0 {
		d.world.SetMaxBodies(p.MaxBodies)
	}
	if d.world.Len() == 0 {
		return StepReport{}
	}

	dt := frameDt * p.TimeScale
	steps := SubSteps(p.TimeScale)
	st := ecs.Step{
		Dt:           dt / float64(steps),
		G:            p.G,
		Softening:    p.Softening,
		MergeEnabled: p.MergeEnabled,
	}

	before := d.world.Len()
	for k := 0; k < steps; k++ {
		d.scheduler.Update(d.world, st)
	}
	return StepReport{SubSteps: steps, Merges: before - d.world.Len(), Dt: dt}
}
