package prefabs

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptTimeout bounds how long a scene script may run.
const scriptTimeout = 2 * time.Second

// RunTengo runs a tengo scene script with the global seed set and reads
// back its global bodies array.
func RunTengo(src []byte, seed int64) ([]BodySpec, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("seed", seed); err != nil {
		return nil, fmt.Errorf("tengo: set seed: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tengo: compile: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("tengo: run: %w", err)
	}

	if !compiled.IsDefined("bodies") {
		return nil, ErrScriptOutput
	}
	v := compiled.Get("bodies")
	items, ok := tengo.ToInterface(v.Object()).([]any)
	if !ok {
		return nil, fmt.Errorf("%w: bodies is %s", ErrScriptOutput, v.ValueType())
	}

	out := make([]BodySpec, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: bodies[%d] is not a map", ErrScriptOutput, i)
		}
		bs, err := bodyFromFields(func(key string) (any, bool) {
			val, ok := m[key]
			return val, ok
		})
		if err != nil {
			return nil, fmt.Errorf("%w: bodies[%d]: %v", ErrScriptOutput, i, err)
		}
		out = append(out, bs)
	}
	return out, nil
}

// bodyFromFields reads x, y, vx, vy, mass, radius and color through get.
// Numbers may arrive as ints or floats.
func bodyFromFields(get func(key string) (any, bool)) (BodySpec, error) {
	num := func(key string) (float64, error) {
		v, ok := get(key)
		if !ok || v == nil {
			return 0, nil
		}
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		}
		return 0, fmt.Errorf("%s is %T, want a number", key, v)
	}

	var bs BodySpec
	fields := []struct {
		key string
		dst *float64
	}{
		{"x", &bs.Pos[0]},
		{"y", &bs.Pos[1]},
		{"vx", &bs.Vel[0]},
		{"vy", &bs.Vel[1]},
		{"mass", &bs.Mass},
		{"radius", &bs.Radius},
	}
	for _, f := range fields {
		v, err := num(f.key)
		if err != nil {
			return BodySpec{}, err
		}
		*f.dst = v
	}

	if v, ok := get("color"); ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return BodySpec{}, fmt.Errorf("color is %T, want a string", v)
		}
		if s != "" {
			var c HexColor
			if err := c.parse(s); err != nil {
				return BodySpec{}, err
			}
			bs.Color = c
		}
	}
	return bs, nil
}
