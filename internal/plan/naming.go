package plan

import (
	"go/token"
	"go/types"
	"strconv"
	"unicode"
	"unicode/utf8"

	"typed-builder/internal/config"
	"typed-builder/internal/match"
)

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// Uncapitalize lower-cases the first letter of s.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// withVis applies a vis setting to name. An empty vis keeps name as is.
func withVis(name, vis string) string {
	switch vis {
	case config.VisExported:
		return Capitalize(name)
	case config.VisUnexported:
		return Uncapitalize(name)
	default:
		return name
	}
}

// builderName returns the builder struct name: "<Record>Builder" with the
// record's visibility unless overridden.
func builderName(record string, s config.NameSetting) string {
	name := s.Name
	if name == "" {
		name = record + "Builder"
	}

	return withVis(name, s.Vis)
}

// entryName returns the constructor name: "New<Builder>" for exported
// builders, "new<Builder>" otherwise.
func entryName(builder string, s config.NameSetting) string {
	if s.Name != "" {
		return withVis(s.Name, s.Vis)
	}

	name := "New" + Capitalize(builder)
	if !token.IsExported(builder) {
		name = "new" + Capitalize(builder)
	}

	return withVis(name, s.Vis)
}

// buildName returns the finalize method name.
func buildName(s config.NameSetting) string {
	name := s.Name
	if name == "" {
		name = "Build"
	}

	return withVis(name, s.Vis)
}

// staticBuildName returns the generic finalize function name: the method
// name followed by the record name, "BuildPerson".
func staticBuildName(build, record string) string {
	return build + Capitalize(record)
}

// setterName returns the setter name of a field.
func setterName(field string, s config.SetterOptions) string {
	name := field
	if s.Name != nil && *s.Name != "" {
		name = *s.Name
	}

	if s.Prefix != nil && *s.Prefix != "" {
		name = *s.Prefix + Capitalize(name)
	}

	if s.Suffix != nil {
		name += *s.Suffix
	}

	vis := ""
	if s.Vis != nil {
		vis = *s.Vis
	}

	return withVis(name, vis)
}

// InitAlias names the all-unset builder type.
func (r *RecordSchema) InitAlias() string {
	return r.Builder.Name + "Init"
}

// InitialVar names the package-level initial builder.
func (r *RecordSchema) InitialVar() string {
	return "initial" + Capitalize(r.Builder.Name)
}

// GenericNames returns the result type parameter and converter argument
// names of the generic static finalizer, "R" and "into" unless assigned.
func (i IntoSpec) GenericNames() (param, arg string) {
	param, arg = i.Param, i.Arg
	if param == "" {
		param = "R"
	}

	if arg == "" {
		arg = "into"
	}

	return param, arg
}

// MissingErr names the sentinel returned when field is missing.
func (r *RecordSchema) MissingErr(field string) string {
	return "err" + Capitalize(r.Builder.Name) + "Missing" + Capitalize(field)
}

// RepeatedErr names the sentinel recorded when field is set twice.
func (r *RecordSchema) RepeatedErr(field string) string {
	return "err" + Capitalize(r.Builder.Name) + "Repeated" + Capitalize(field)
}

// MutatorErr names the sentinel recorded when mutator m runs before field
// is set.
func (r *RecordSchema) MutatorErr(m *MutatorSpec, field string) string {
	return "err" + Capitalize(r.Builder.Name) + Capitalize(m.Method.Name) + "Requires" + Capitalize(field)
}

// MutatorFieldsType names the aggregate struct exposed to mutator m.
func (r *RecordSchema) MutatorFieldsType(m *MutatorSpec) string {
	return Uncapitalize(r.Builder.Name) + Capitalize(m.Method.Name) + "Fields"
}

// StorageField names the builder struct field holding the state of field.
func StorageField(field string) string {
	return "f" + Capitalize(field)
}

// Receiver is the receiver name of generated builder methods.
const Receiver = "b"

// IsReserved reports whether name is a Go keyword or a predeclared
// identifier.
func IsReserved(name string) bool {
	return token.IsKeyword(name) || types.Universe.Lookup(name) != nil
}

// uniqueName returns base, or base followed by the smallest number >= 2,
// such that taken reports false.
func uniqueName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}

	for i := 2; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}

// paramName derives a setter parameter name from a field name. Names that
// would shadow something the setter body needs get a "Value" suffix.
func paramName(field string, taken func(string) bool) string {
	name := match.LowerCamel(field)
	if name == "" {
		name = Uncapitalize(field)
	}

	for IsReserved(name) || taken(name) {
		name += "Value"
	}

	return name
}
