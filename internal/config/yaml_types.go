package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- IntoSetting YAML methods ---

// UnmarshalYAML accepts a boolean, a type name or a {type, func} mapping.
func (s *IntoSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var generic bool
			if err := node.Decode(&generic); err != nil {
				return err
			}

			*s = IntoSetting{}
			if generic {
				s.Mode = IntoGeneric
			}

			return nil
		}

		var typ string
		if err := node.Decode(&typ); err != nil {
			return err
		}

		*s = IntoSetting{}
		if typ != "" {
			*s = IntoSetting{Mode: IntoFixed, Type: typ}
		}

		return nil

	case yaml.MappingNode:
		var raw struct {
			Type string `yaml:"type"`
			Func string `yaml:"func"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		if raw.Type == "" {
			return fmt.Errorf("line %d: into requires a type", node.Line)
		}

		*s = IntoSetting{Mode: IntoFixed, Type: raw.Type, Func: raw.Func}

		return nil

	default:
		return fmt.Errorf("line %d: expected bool, type name or mapping for into, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the shortest form describing s.
func (s IntoSetting) MarshalYAML() (any, error) {
	switch s.Mode {
	case IntoGeneric:
		return true, nil
	case IntoFixed:
		if s.Func == "" {
			return s.Type, nil
		}

		return map[string]string{"type": s.Type, "func": s.Func}, nil
	default:
		return nil, nil
	}
}

// IsZero reports whether no conversion is configured.
func (s IntoSetting) IsZero() bool {
	return s.Mode == IntoNone
}

// --- Import YAML methods ---

// UnmarshalYAML accepts an import path or a {path, alias} mapping.
func (i *Import) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var p string
		if err := node.Decode(&p); err != nil {
			return err
		}

		*i = Import{Path: p}

		return nil

	case yaml.MappingNode:
		type plain Import

		var raw plain
		if err := node.Decode(&raw); err != nil {
			return err
		}

		*i = Import(raw)

		return nil

	default:
		return fmt.Errorf("line %d: expected import path or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes a bare path when no alias is set.
func (i Import) MarshalYAML() (any, error) {
	if i.Alias == "" {
		return i.Path, nil
	}

	type plain Import

	return plain(i), nil
}

// --- ViaMutators YAML methods ---

// UnmarshalYAML accepts a boolean or an {init} mapping.
func (v *ViaMutators) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: via_mutators: %w", node.Line, err)
		}

		*v = ViaMutators{Enabled: enabled}

		return nil

	case yaml.MappingNode:
		var raw struct {
			Init string `yaml:"init"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		*v = ViaMutators{Enabled: true, Init: raw.Init}

		return nil

	default:
		return fmt.Errorf("line %d: expected bool or mapping for via_mutators, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes true or the {init} mapping.
func (v ViaMutators) MarshalYAML() (any, error) {
	if v.Init == "" {
		return v.Enabled, nil
	}

	return map[string]string{"init": v.Init}, nil
}
