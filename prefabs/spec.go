package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/milk9111/gravwell/common"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownScene = errors.New("unknown scene")
	ErrScriptOutput = errors.New("script did not produce a bodies list")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes an initial body set. Bodies, rings and script
// output are concatenated in that order.
type SceneSpec struct {
	Name      string     `yaml:"name"`
	G         *float64   `yaml:"g,omitempty"`
	TimeScale *float64   `yaml:"time_scale,omitempty"`
	Density   float64    `yaml:"density,omitempty"`
	AutoOrbit bool       `yaml:"auto_orbit,omitempty"`
	Bodies    []BodySpec `yaml:"bodies,omitempty"`
	Rings     []RingSpec `yaml:"rings,omitempty"`
	Script    string     `yaml:"script,omitempty"`
	Seed      int64      `yaml:"seed,omitempty"`
}

type BodySpec struct {
	Pos    [2]float64 `yaml:"pos,flow"`
	Vel    [2]float64 `yaml:"vel,flow"`
	Mass   float64    `yaml:"mass,omitempty"`
	Radius float64    `yaml:"radius"`
	Color  HexColor   `yaml:"color,omitempty"`
}

// RingSpec scatters Count bodies uniformly over an annulus around Center.
type RingSpec struct {
	Center    [2]float64 `yaml:"center,flow"`
	Count     int        `yaml:"count"`
	Inner     float64    `yaml:"inner"`
	Outer     float64    `yaml:"outer"`
	MinRadius float64    `yaml:"min_radius"`
	MaxRadius float64    `yaml:"max_radius"`
	Seed      int64      `yaml:"seed"`
}

func LoadScene(name string) (SceneSpec, error) {
	path := scenePath(name)
	spec, err := LoadSpec[SceneSpec](path)
	if errors.Is(err, fs.ErrNotExist) {
		return SceneSpec{}, fmt.Errorf("prefabs: %w: %s", ErrUnknownScene, name)
	}
	if err != nil {
		return SceneSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = SceneName(path)
	}
	return spec, nil
}

// HexColor is an optional "#rrggbb" color.
type HexColor struct {
	color.RGBA
	Set bool
}

func Color(c color.RGBA) HexColor {
	return HexColor{RGBA: c, Set: true}
}

func (c HexColor) IsZero() bool {
	return !c.Set
}

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	if value.Value == "" {
		*c = HexColor{}
		return nil
	}
	return c.parse(value.Value)
}

func (c *HexColor) parse(s string) error {
	rgba, err := common.ParseHex(s)
	if err != nil {
		return err
	}
	*c = Color(rgba)
	return nil
}

func (c HexColor) MarshalYAML() (any, error) {
	return common.Hex(c.RGBA), nil
}
