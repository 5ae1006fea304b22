package config

import (
	"typed-builder/internal/diagnostic"
)

// File represents the root of a builder definition file.
type File struct {
	// Version of the definition schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the default package pattern of builders that set none.
	Package string `yaml:"package,omitempty"`

	// Support is the import path of the runtime support package.
	Support string `yaml:"support,omitempty"`

	// Builders lists one entry per record type.
	Builders []Builder `yaml:"builders"`

	// Dir is the directory of the loaded file; package patterns are
	// relative to it.
	Dir string `yaml:"-"`

	// Diagnostics collects problems found while parsing.
	Diagnostics diagnostic.Diagnostics `yaml:"-"`
}

// Builder configures the builder of one record type.
type Builder struct {
	// Type is the record type name.
	Type string `yaml:"type"`

	// Package overrides File.Package.
	Package string `yaml:"package,omitempty"`

	// Output is the generated file name, written next to the record.
	Output string `yaml:"output,omitempty"`

	// BuilderType names and documents the builder struct.
	BuilderType NameSetting `yaml:"builder_type,omitempty"`

	// BuilderMethod names and documents the entry point.
	BuilderMethod NameSetting `yaml:"builder_method,omitempty"`

	// BuildMethod names and documents the finalize method.
	BuildMethod NameSetting `yaml:"build_method,omitempty"`

	// Into selects the output conversion.
	Into IntoSetting `yaml:"into,omitempty"`

	// Imports lists packages that configured Go snippets may use.
	Imports []Import `yaml:"imports,omitempty"`

	// FieldDefaults applies to every field unless the field overrides it.
	FieldDefaults FieldOptions `yaml:"field_defaults,omitempty"`

	// Fields holds per-field options keyed by field name.
	Fields map[string]FieldOptions `yaml:"fields,omitempty"`

	// Mutators are struct-level mutators.
	Mutators []Mutator `yaml:"mutators,omitempty"`
}

// NameSetting overrides the name, visibility or doc of a generated item.
type NameSetting struct {
	Name string `yaml:"name,omitempty"`
	Vis  string `yaml:"vis,omitempty"`
	Doc  string `yaml:"doc,omitempty"`
}

// Visibility values accepted by vis settings.
const (
	VisExported   = "exported"
	VisUnexported = "unexported"
)

// IntoMode selects how the finalized record is converted.
type IntoMode int

const (
	// IntoNone returns the record unchanged.
	IntoNone IntoMode = iota
	// IntoGeneric lets the call site choose the result type.
	IntoGeneric
	// IntoFixed always converts to one declared type.
	IntoFixed
)

// IntoSetting is the output conversion of a builder.
// YAML formats supported:
//   - true: generic conversion
//   - "PersonView": conversion to a fixed type
//   - {type: PersonView, func: NewPersonView}: fixed type through a function
type IntoSetting struct {
	Mode IntoMode
	Type string
	Func string
}

// Import is a package available to configured snippets.
// YAML formats supported:
//   - "net/url"
//   - {path: net/url, alias: neturl}
type Import struct {
	Path  string `yaml:"path"`
	Alias string `yaml:"alias,omitempty"`
}

// FieldOptions configures one field. Unset pointers inherit field_defaults.
type FieldOptions struct {
	// Default is a Go expression used when the field was never set.
	Default *string `yaml:"default,omitempty"`

	// DefaultZero uses the zero value as default.
	DefaultZero *bool `yaml:"default_zero,omitempty"`

	// ViaMutators removes the setter; the field starts set and only
	// mutators change it.
	ViaMutators *ViaMutators `yaml:"via_mutators,omitempty"`

	// MutableDuringDefaultResolution lets later defaults modify the
	// resolved value of this field.
	MutableDuringDefaultResolution *bool `yaml:"mutable_during_default_resolution,omitempty"`

	// Setter configures the generated setter.
	Setter SetterOptions `yaml:"setter,omitempty"`

	// Mutators are field-level mutators; they implicitly require the field.
	Mutators []Mutator `yaml:"mutators,omitempty"`
}

// ViaMutators marks a field as set exclusively through mutators.
// YAML formats supported:
//   - true: start from the zero value
//   - {init: "[]string{}"}: start from a Go expression
type ViaMutators struct {
	Enabled bool
	Init    string
}

// SetterOptions configures the setter of a field.
type SetterOptions struct {
	Skip        *bool      `yaml:"skip,omitempty"`
	StripOption *bool      `yaml:"strip_option,omitempty"`
	StripBool   *bool      `yaml:"strip_bool,omitempty"`
	AutoInto    *bool      `yaml:"auto_into,omitempty"`
	Transform   *Transform `yaml:"transform,omitempty"`
	Name        *string    `yaml:"name,omitempty"`
	Prefix      *string    `yaml:"prefix,omitempty"`
	Suffix      *string    `yaml:"suffix,omitempty"`
	Vis         *string    `yaml:"vis,omitempty"`
	Doc         *string    `yaml:"doc,omitempty"`
	Deprecated  *string    `yaml:"deprecated,omitempty"`
}

// Transform replaces the setter's single argument with a parameter list and
// an expression computing the field value from it.
type Transform struct {
	Params string `yaml:"params"`
	Body   string `yaml:"body"`
}

// Mutator edits already-set fields without changing their state.
type Mutator struct {
	Name     string   `yaml:"name"`
	Requires []string `yaml:"requires,omitempty"`
	Params   string   `yaml:"params,omitempty"`
	Body     string   `yaml:"body"`
	Receiver string   `yaml:"receiver,omitempty"`
	Vis      string   `yaml:"vis,omitempty"`
	Doc      string   `yaml:"doc,omitempty"`
}

// PackagePattern returns the package pattern of b.
func (f *File) PackagePattern(b *Builder) string {
	if b.Package != "" {
		return b.Package
	}

	return f.Package
}
