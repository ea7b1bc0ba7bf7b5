package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/milk9111/gravwell/ecs/system"
)

// HUD is the status shown in the top-left corner.
type HUD struct {
	Scene     string
	Bodies    int
	MaxBodies int
	Mass      float64
	FPS       float64
	G         float64
	TimeScale float64
	SubSteps  int
	Paused    bool
	Merge     bool
	Trails    bool
	Radius    float64
	// Stats, when set, adds a diagnostics line.
	Stats *system.Stats
	// Notice is a transient status message such as a reload error.
	Notice string
}

func NewPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// Lines formats the HUD with grouped thousands.
func (h HUD) Lines(p *message.Printer) []string {
	state := "running"
	if h.Paused {
		state = "paused"
	}
	lines := []string{
		p.Sprintf("%s  [%s]  %.0f fps", h.Scene, state, h.FPS),
		p.Sprintf("bodies %d/%d  mass %.1f", h.Bodies, h.MaxBodies, h.Mass),
		p.Sprintf("G %.2f  time x%.2f  substeps %d", h.G, h.TimeScale, h.SubSteps),
		p.Sprintf("merge %s  trails %s  radius %.1f", onOff(h.Merge), onOff(h.Trails), h.Radius),
	}
	if h.Stats != nil {
		s := h.Stats
		lines = append(lines, p.Sprintf("E %.1f (K %.1f U %.1f)  p (%.2f, %.2f)",
			s.Energy(), s.Kinetic, s.Potential, s.Momentum.X, s.Momentum.Y))
	}
	if h.Notice != "" {
		lines = append(lines, h.Notice)
	}
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
