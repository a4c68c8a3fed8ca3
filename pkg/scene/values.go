package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"floatpos/pkg/geom"
)

// AutoPlacementSpec accepts either a bare boolean or a table with
// enabled, excludeSides and padding.
type AutoPlacementSpec struct {
	Enabled      bool
	ExcludeSides []geom.Side
	Padding      float64
}

func (a *AutoPlacementSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return a.fromAny(raw)
}

func (a *AutoPlacementSpec) UnmarshalTOML(data any) error {
	return a.fromAny(data)
}

func (a *AutoPlacementSpec) fromAny(raw any) error {
	switch v := raw.(type) {
	case nil:
		*a = AutoPlacementSpec{}
		return nil
	case bool:
		*a = AutoPlacementSpec{Enabled: v}
		return nil
	case map[string]any:
		out := AutoPlacementSpec{Enabled: true}
		for key, val := range v {
			switch key {
			case "enabled":
				b, ok := val.(bool)
				if !ok {
					return fmt.Errorf("autoPlacement.enabled: want bool, got %T", val)
				}
				out.Enabled = b
			case "excludeSides":
				list, ok := val.([]any)
				if !ok {
					return fmt.Errorf("autoPlacement.excludeSides: want list, got %T", val)
				}
				for _, item := range list {
					name, _ := item.(string)
					side, err := geom.ParseSide(name)
					if err != nil {
						return fmt.Errorf("autoPlacement.excludeSides: %w", err)
					}
					out.ExcludeSides = append(out.ExcludeSides, side)
				}
			case "padding":
				f, ok := toFloat(val)
				if !ok {
					return fmt.Errorf("autoPlacement.padding: want number, got %T", val)
				}
				out.Padding = f
			default:
				return fmt.Errorf("autoPlacement: unknown key %q", key)
			}
		}
		*a = out
		return nil
	}
	return fmt.Errorf("autoPlacement: want bool or table, got %T", raw)
}

// OffsetValue accepts a number (main axis only) or a table with mainAxis
// and crossAxis.
type OffsetValue struct {
	geom.OffsetSpec
}

func (o *OffsetValue) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return o.fromAny(raw)
}

func (o *OffsetValue) UnmarshalTOML(data any) error {
	return o.fromAny(data)
}

func (o *OffsetValue) fromAny(raw any) error {
	if raw == nil {
		o.OffsetSpec = geom.OffsetSpec{}
		return nil
	}
	if f, ok := toFloat(raw); ok {
		o.OffsetSpec = geom.Offset(f)
		return nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("offset: want number or table, got %T", raw)
	}
	var spec geom.OffsetSpec
	for key, val := range m {
		f, ok := toFloat(val)
		if !ok {
			return fmt.Errorf("offset.%s: want number, got %T", key, val)
		}
		switch key {
		case "mainAxis":
			spec.MainAxis = f
		case "crossAxis":
			spec.CrossAxis = f
		default:
			return fmt.Errorf("offset: unknown key %q", key)
		}
	}
	o.OffsetSpec = spec
	return nil
}

// toFloat folds the numeric types yaml and toml decode into float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
