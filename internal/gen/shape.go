package gen

import (
	"strings"

	"typed-builder/internal/plan"
)

// shape renders the type expressions shared by every fragment of a schema.
type shape struct {
	s       *plan.RecordSchema
	support string
	fields  []*plan.FieldSpec
}

func newShape(s *plan.RecordSchema) *shape {
	return &shape{s: s, support: s.SupportName, fields: s.Included()}
}

// generic reports whether the record declares type parameters.
func (sh *shape) generic() bool {
	return len(sh.s.TypeParams) > 0
}

// recordParams renders the record's type parameter declarations.
func (sh *shape) recordParams() []string {
	out := make([]string, len(sh.s.TypeParams))
	for i, tp := range sh.s.TypeParams {
		out[i] = tp.Name + " " + tp.Constraint
	}

	return out
}

// recordArgs returns the record's type parameter names.
func (sh *shape) recordArgs() []string {
	out := make([]string, len(sh.s.TypeParams))
	for i, tp := range sh.s.TypeParams {
		out[i] = tp.Name
	}

	return out
}

// recordType renders the record type, instantiated with its own parameters.
func (sh *shape) recordType() string {
	return instantiate(sh.s.Name, sh.recordArgs())
}

// marker renders Set[T] or Unset[T] for field f.
func (sh *shape) marker(set bool, f *plan.FieldSpec) string {
	if set {
		return sh.support + ".Set[" + f.Type + "]"
	}

	return sh.support + ".Unset[" + f.Type + "]"
}

// constraint renders the constraint of f's state parameter.
func (sh *shape) constraint(f *plan.FieldSpec) string {
	if f.Required() {
		return sh.support + ".Required[" + f.Type + "]"
	}

	return sh.support + ".Field[" + f.Type + "]"
}

// stateParam renders the declaration of f's state parameter.
func (sh *shape) stateParam(f *plan.FieldSpec) string {
	return f.StateParam + " " + sh.constraint(f)
}

// declParams renders the builder's full type parameter list.
func (sh *shape) declParams() string {
	params := sh.recordParams()
	for _, f := range sh.fields {
		params = append(params, sh.stateParam(f))
	}

	return strings.Join(params, ", ")
}

// builderWith renders the builder type with the state of each field given
// by state. An empty state keeps the field's parameter.
func (sh *shape) builderWith(state func(f *plan.FieldSpec) string) string {
	args := sh.recordArgs()

	for _, f := range sh.fields {
		arg := state(f)
		if arg == "" {
			arg = f.StateParam
		}

		args = append(args, arg)
	}

	return instantiate(sh.s.Builder.Name, args)
}

// recv renders the builder type over its own parameters, as used by
// method receivers.
func (sh *shape) recv() string {
	return sh.builderWith(func(*plan.FieldSpec) string { return "" })
}

// withSet renders the receiver type with target moved to Set.
func (sh *shape) withSet(target *plan.FieldSpec) string {
	return sh.builderWith(func(f *plan.FieldSpec) string {
		if f == target {
			return sh.marker(true, f)
		}

		return ""
	})
}

// initial renders the all-unset builder type: via-mutators fields are Set,
// every other field is Unset.
func (sh *shape) initial() string {
	return sh.builderWith(func(f *plan.FieldSpec) string {
		return sh.marker(f.ViaMutators, f)
	})
}

// finalized renders the builder type accepted by the static finalize
// function: required fields are Set, the others keep their parameter.
func (sh *shape) finalized() string {
	return sh.builderWith(func(f *plan.FieldSpec) string {
		if f.Required() {
			return sh.marker(true, f)
		}

		return ""
	})
}

// optionalParams renders the state parameters left generic by finalized.
func (sh *shape) optionalParams() []string {
	var out []string

	for _, f := range sh.fields {
		if !f.Required() {
			out = append(out, sh.stateParam(f))
		}
	}

	return out
}

// typeParamList renders params in brackets, or nothing when empty.
func typeParamList(params []string) string {
	if len(params) == 0 {
		return ""
	}

	return "[" + strings.Join(params, ", ") + "]"
}

func instantiate(name string, args []string) string {
	return name + typeParamList(args)
}

// commentLines renders text as // comment lines.
func commentLines(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString("//\n")
			continue
		}

		b.WriteString("// " + line + "\n")
	}

	return b.String()
}
