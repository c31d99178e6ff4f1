package prefabs

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const scriptTimeout = 2 * time.Second

// RunGeometryScript runs a tengo script with `params` bound to the given map
// and reads the boxes it leaves in its `boxes` global. Each box is a map with
// `min` and `max` arrays of three numbers and an optional `name`.
func RunGeometryScript(src []byte, params map[string]any) ([]BoxSpec, error) {
	if params == nil {
		params = map[string]any{}
	}

	script := tengo.NewScript(src)
	if err := script.Add("params", params); err != nil {
		return nil, fmt.Errorf("bind params: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math", "fmt"))

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, err
	}
	if !compiled.IsDefined("boxes") {
		return nil, fmt.Errorf("script does not define boxes")
	}

	raw := compiled.Get("boxes").Array()
	out := make([]BoxSpec, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("boxes[%d]: expected map, got %T", i, item)
		}
		lo, err := vec3FromScript(m["min"])
		if err != nil {
			return nil, fmt.Errorf("boxes[%d].min: %w", i, err)
		}
		hi, err := vec3FromScript(m["max"])
		if err != nil {
			return nil, fmt.Errorf("boxes[%d].max: %w", i, err)
		}
		name, _ := m["name"].(string)
		if name == "" {
			name = fmt.Sprintf("scripted_%d", i)
		}
		out = append(out, BoxSpec{Name: name, Min: lo, Max: hi})
	}
	return out, nil
}

func vec3FromScript(v any) (Vec3Spec, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return Vec3Spec{}, fmt.Errorf("expected array of 3 numbers, got %v", v)
	}
	var xyz [3]float64
	for i, n := range arr {
		switch n := n.(type) {
		case int64:
			xyz[i] = float64(n)
		case float64:
			xyz[i] = n
		default:
			return Vec3Spec{}, fmt.Errorf("component %d is %T, not a number", i, n)
		}
	}
	return Vec3Spec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
