package plan

import (
	"typed-builder/internal/analyze"
	"typed-builder/internal/diagnostic"
	"typed-builder/internal/goexpr"
)

// Plan is the final output of the resolution pipeline.
type Plan struct {
	// Schemas holds one schema per builder that resolved without errors.
	Schemas []*RecordSchema
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// RecordSchema is the normalized description of one record and its builder.
// It is built once and not modified afterwards.
type RecordSchema struct {
	// Name is the record type name.
	Name string
	// Package is the record's package.
	Package PackageRef
	// TypeParams are the record's type parameters.
	TypeParams []analyze.TypeParam
	// Fields are ordered by ordinal, which is declaration order.
	Fields []FieldSpec
	// Builder names the builder struct.
	Builder Item
	// Entry names the constructor returning the all-unset builder.
	Entry Item
	// Build names the finalize method.
	Build Item
	// StaticBuild names the generic finalize function.
	StaticBuild string
	// Into is the output conversion.
	Into IntoSpec
	// Mutators lists struct-level and field-level mutators.
	Mutators []MutatorSpec
	// Support is the import path of the support package.
	Support string
	// SupportName is the identifier generated code uses for Support.
	SupportName string
	// Imports lists the packages generated code may reference.
	Imports []Import
	// Output is the generated file name.
	Output string
	// BindOrder lists field indexes in the order finalize binds them.
	BindOrder []int
	// Taken holds package-level names declared outside the output file.
	Taken map[string]bool
}

// PackageRef identifies a loaded package.
type PackageRef struct {
	Path string
	Name string
	Dir  string
}

// Item is a generated declaration with its doc.
type Item struct {
	Name string
	Doc  string
}

// Import is a package available to generated code under Name.
type Import struct {
	Path string
	Name string
}

// IntoMode selects the output conversion.
type IntoMode int

const (
	IntoNone IntoMode = iota
	IntoGeneric
	IntoFixed
)

// String returns the configuration spelling of the mode.
func (m IntoMode) String() string {
	switch m {
	case IntoNone:
		return "none"
	case IntoGeneric:
		return "generic"
	case IntoFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// IntoSpec is the output conversion of a builder.
type IntoSpec struct {
	Mode IntoMode
	// Type is the fixed result type.
	Type string
	// Func converts the record; a Go conversion is used when empty.
	Func string
	// Param names the result type parameter of the generic static finalizer.
	Param string
	// Arg names the converter argument of the generic static finalizer.
	Arg string
}

//go:generate go tool stringer -type=DefaultKind -trimprefix=Default -output=defaultkind_string.go

// DefaultKind describes where a field's default comes from.
type DefaultKind int

const (
	// DefaultNone marks a required field.
	DefaultNone DefaultKind = iota
	// DefaultExpr evaluates a configured Go expression.
	DefaultExpr
	// DefaultZero uses the zero value of the field type.
	DefaultZero
)

// FieldSpec describes one record field and how its builder handles it.
type FieldSpec struct {
	// Ordinal is the dense position of the field in the record.
	Ordinal int
	// Name is the Go field name.
	Name string
	// Type is the field type expression.
	Type string
	// Elem is the pointer element type, set for pointer fields.
	Elem string
	// IsBool reports a bool underlying type.
	IsBool bool
	// Doc is the field's comment in the record declaration.
	Doc string
	// StateParam names the field's type-state parameter.
	StateParam string
	// Param names the argument of a plain setter.
	Param string

	DefaultKind DefaultKind
	// Default is the expression for DefaultExpr.
	Default string
	// Deps are other fields the default expression refers to, by name.
	Deps []string

	Skip        bool
	StripOption bool
	StripBool   bool
	AutoInto    bool
	Transform   *TransformSpec

	ViaMutators bool
	// ViaInit is the initial value of a via-mutators field; empty means zero.
	ViaInit string

	MutableDuringDefaultResolution bool

	// Setter is the setter method.
	Setter Item
	// Deprecated is the deprecation note of the setter.
	Deprecated string
	// SetterOptions lists the setter options configured on the field itself.
	SetterOptions []string
}

// TransformSpec replaces the setter argument with Params; Body computes the
// field value from them.
type TransformSpec struct {
	Params goexpr.ParamList
	Body   string
}

// HasDefault reports whether the field can be omitted from the builder.
func (f *FieldSpec) HasDefault() bool {
	return f.DefaultKind != DefaultNone
}

// Required reports whether the field must be set before finalizing.
func (f *FieldSpec) Required() bool {
	return !f.Skip && !f.ViaMutators && !f.HasDefault()
}

// Included reports whether the field is part of the builder's type-state.
func (f *FieldSpec) Included() bool {
	return !f.Skip
}

// HasSetter reports whether an ordinary setter is generated.
func (f *FieldSpec) HasSetter() bool {
	return !f.Skip && !f.ViaMutators
}

// ParamType is the type a plain setter accepts: the element type for
// strip_option fields, the declared type otherwise.
func (f *FieldSpec) ParamType() string {
	if f.StripOption {
		return f.Elem
	}

	return f.Type
}

// MutatorSpec describes a mutator.
type MutatorSpec struct {
	// Method is the builder method.
	Method Item
	// Requires lists the fields that must be set, in ordinal order.
	Requires []string
	// Params are the mutator's arguments.
	Params goexpr.ParamList
	// Body is the statement list run against the exposed fields.
	Body string
	// Receiver names the aggregate inside Body.
	Receiver string
	// Field is the owning field of a field-level mutator.
	Field string
}

// DefaultReceiver is the aggregate name mutator bodies use by default.
const DefaultReceiver = "m"

// Field returns the field named name, or nil.
func (r *RecordSchema) Field(name string) *FieldSpec {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}

	return nil
}

// Included returns the fields that carry a type-state parameter.
func (r *RecordSchema) Included() []*FieldSpec {
	var out []*FieldSpec

	for i := range r.Fields {
		if r.Fields[i].Included() {
			out = append(out, &r.Fields[i])
		}
	}

	return out
}

// Required returns the required fields in ordinal order.
func (r *RecordSchema) Required() []*FieldSpec {
	var out []*FieldSpec

	for i := range r.Fields {
		if r.Fields[i].Required() {
			out = append(out, &r.Fields[i])
		}
	}

	return out
}

// MutatorFields returns the fields a mutator exposes: its required fields
// and every via-mutators field, in ordinal order.
func (r *RecordSchema) MutatorFields(m *MutatorSpec) []*FieldSpec {
	required := make(map[string]bool, len(m.Requires))
	for _, name := range m.Requires {
		required[name] = true
	}

	var out []*FieldSpec

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Included() && (required[f.Name] || f.ViaMutators) {
			out = append(out, f)
		}
	}

	return out
}
