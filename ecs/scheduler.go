package ecs

import "sort"

// Phase defines execution ordering within a single sub-step.
type Phase int

const (
	PhaseForce     Phase = iota // read-only: fill acceleration buffers
	PhaseIntegrate              // advance velocity then position
	PhaseCollide                // merge overlapping bodies
)

// Step carries the parameters of one sub-step.
type Step struct {
	Dt           float64
	G            float64
	Softening    float64
	MergeEnabled bool
}

// System advances the world for one sub-step.
type System interface {
	Phase() Phase
	Update(w *World, st Step)
}

// Scheduler runs systems in phase order. Systems sharing a phase keep their
// registration order.
type Scheduler struct {
	systems []System
	sorted  bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.sorted = false
}

func (s *Scheduler) Update(w *World, st Step) {
	s.ensureSorted()
	for _, system := range s.systems {
		system.Update(w, st)
	}
}

func (s *Scheduler) Systems() []System {
	s.ensureSorted()
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func (s *Scheduler) ensureSorted() {
	if s.sorted {
		return
	}
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Phase() < s.systems[j].Phase()
	})
	s.sorted = true
}
