package config

import (
	"maps"
	"slices"
)

// FieldNames returns the configured field names, sorted.
func (b *Builder) FieldNames() []string {
	return slices.Sorted(maps.Keys(b.Fields))
}

// Options returns the options of field name with field_defaults applied.
// Mutators and via_mutators are never inherited.
func (b *Builder) Options(name string) FieldOptions {
	own := b.Fields[name]
	def := b.FieldDefaults

	merged := FieldOptions{
		Default:                        pick(own.Default, def.Default),
		DefaultZero:                    pick(own.DefaultZero, def.DefaultZero),
		ViaMutators:                    own.ViaMutators,
		MutableDuringDefaultResolution: pick(own.MutableDuringDefaultResolution, def.MutableDuringDefaultResolution),
		Mutators:                       own.Mutators,
		Setter: SetterOptions{
			Skip:        pick(own.Setter.Skip, def.Setter.Skip),
			StripOption: pick(own.Setter.StripOption, def.Setter.StripOption),
			StripBool:   pick(own.Setter.StripBool, def.Setter.StripBool),
			AutoInto:    pick(own.Setter.AutoInto, def.Setter.AutoInto),
			Transform:   pick(own.Setter.Transform, def.Setter.Transform),
			Name:        own.Setter.Name,
			Prefix:      pick(own.Setter.Prefix, def.Setter.Prefix),
			Suffix:      pick(own.Setter.Suffix, def.Setter.Suffix),
			Vis:         pick(own.Setter.Vis, def.Setter.Vis),
			Doc:         own.Setter.Doc,
			Deprecated:  pick(own.Setter.Deprecated, def.Setter.Deprecated),
		},
	}

	// A field default wins over an inherited default_zero and vice versa.
	if own.Default != nil && own.DefaultZero == nil {
		merged.DefaultZero = nil
	}

	if own.DefaultZero != nil && own.Default == nil {
		merged.Default = nil
	}

	return merged
}

func pick[T any](own, inherited *T) *T {
	if own != nil {
		return own
	}

	return inherited
}

// IsTrue reports whether an optional flag is set and true.
func IsTrue(p *bool) bool {
	return p != nil && *p
}
