package prefabs

import (
	"fmt"

	"github.com/milk9111/gravwell/ecs/component"
	"gopkg.in/yaml.v3"
)

// SceneFromBodies captures bodies as an explicit scene with every field set.
func SceneFromBodies(name string, bodies []component.Body) SceneSpec {
	spec := SceneSpec{Name: name, Bodies: make([]BodySpec, 0, len(bodies))}
	for _, b := range bodies {
		spec.Bodies = append(spec.Bodies, BodySpec{
			Pos:    [2]float64{b.Pos.X, b.Pos.Y},
			Vel:    [2]float64{b.Vel.X, b.Vel.Y},
			Mass:   b.Mass,
			Radius: b.Radius,
			Color:  Color(b.Color),
		})
	}
	return spec
}

// ExportScene renders bodies as scene YAML that LoadScene/BuildScene accept.
func ExportScene(name string, bodies []component.Body) ([]byte, error) {
	data, err := yaml.Marshal(SceneFromBodies(name, bodies))
	if err != nil {
		return nil, fmt.Errorf("prefabs: export %s: %w", name, err)
	}
	return data, nil
}

func ParseScene(data []byte) (SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: parse scene: %w", err)
	}
	return spec, nil
}
