package plan

import (
	"fmt"
	"slices"
	"strings"

	"typed-builder/internal/diagnostic"
	"typed-builder/internal/goexpr"
	"typed-builder/internal/match"
)

// ValidateRecord checks a schema for combinations the generator cannot
// express. It only reads the schema and may be called more than once.
func ValidateRecord(r *RecordSchema) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if r == nil {
		diags.AddError("schema_is_nil", "record schema is nil", "", "")
		return diags
	}

	v := &recordValidator{r: r, diags: &diags}

	v.checkIdentity()

	for i := range r.Fields {
		v.checkField(&r.Fields[i])
	}

	for i := range r.Mutators {
		v.checkMutator(&r.Mutators[i])
	}

	v.checkInto()
	v.checkMembers()
	v.checkTopLevel()
	v.checkLocals()
	v.checkDefaults()
	v.checkImports()

	return diags
}

type recordValidator struct {
	r     *RecordSchema
	diags *diagnostic.Diagnostics
}

func (v *recordValidator) errorf(code, field, format string, args ...any) {
	v.diags.AddError(code, fmt.Sprintf(format, args...), v.r.Name, field)
}

func (v *recordValidator) checkIdentity() {
	seen := make(map[string]bool, len(v.r.Fields))

	for i := range v.r.Fields {
		f := &v.r.Fields[i]
		if f.Ordinal != i {
			v.errorf("invalid_ordinal", f.Name, "field %s has ordinal %d, want %d", f.Name, f.Ordinal, i)
		}

		if seen[f.Name] {
			v.errorf("duplicate_field", f.Name, "field %s is declared more than once", f.Name)
		}

		seen[f.Name] = true
	}

	if v.r.Support == "" || v.r.SupportName == "" {
		v.errorf("missing_support", "", "support package is not set")
	}
}

func (v *recordValidator) checkField(f *FieldSpec) {
	if f.StripOption && f.Elem == "" {
		v.errorf("strip_option_needs_pointer", f.Name,
			"strip_option needs a pointer field; %s has type %s", f.Name, f.Type)
	}

	if f.StripBool && !f.IsBool {
		v.errorf("strip_bool_needs_bool", f.Name, "strip_bool needs a bool field; %s has type %s", f.Name, f.Type)
	}

	if f.Skip && !f.HasDefault() {
		v.errorf("skip_needs_default", f.Name, "skipped field %s needs a default or default_zero", f.Name)
	}

	if f.Skip && f.ViaMutators {
		v.errorf("skip_with_via_mutators", f.Name, "field %s cannot be both skipped and set via mutators", f.Name)
	}

	if f.ViaMutators {
		if len(f.SetterOptions) > 0 {
			v.errorf("via_mutators_with_setter", f.Name,
				"field %s is set via mutators and has no setter; remove %s", f.Name, strings.Join(f.SetterOptions, ", "))
		}

		if f.HasDefault() {
			v.errorf("via_mutators_with_default", f.Name,
				"field %s is set via mutators and cannot have a default; use via_mutators.init", f.Name)
		}

		if f.ViaInit != "" {
			if _, err := goexpr.Parse(f.ViaInit); err != nil {
				v.errorf("invalid_init", f.Name, "%v", err)
			}
		}
	}

	if f.DefaultKind == DefaultExpr {
		if _, err := goexpr.Parse(f.Default); err != nil {
			v.errorf("invalid_default", f.Name, "%v", err)
		}
	}

	if f.Transform != nil {
		v.checkTransform(f)
	}

	if f.HasSetter() && f.StripBool && (f.Transform != nil || f.StripOption || f.AutoInto) {
		v.diags.AddWarning("ignored_setter_option",
			fmt.Sprintf("strip_bool setter of %s takes no argument; other argument options are ignored", f.Name),
			v.r.Name, f.Name)
	} else if f.HasSetter() && f.Transform != nil && (f.StripOption || f.AutoInto) {
		v.diags.AddWarning("ignored_setter_option",
			fmt.Sprintf("transform of %s replaces strip_option and auto_into", f.Name), v.r.Name, f.Name)
	}

	if f.Skip && len(f.SetterOptions) > 0 {
		v.diags.AddWarning("ignored_setter_option",
			fmt.Sprintf("%s has no setter; %s ignored", f.Name, strings.Join(f.SetterOptions, ", ")), v.r.Name, f.Name)
	}
}

func (v *recordValidator) checkTransform(f *FieldSpec) {
	if _, err := goexpr.Parse(f.Transform.Body); err != nil {
		v.errorf("invalid_transform", f.Name, "%v", err)
	}

	v.checkParams(f.Name, "transform", f.Transform.Params, "", false)
}

// checkParams rejects parameters that would shadow a name the generated
// method body needs. Forwarded parameters are passed on by name, so they
// cannot be blank.
func (v *recordValidator) checkParams(field, what string, params goexpr.ParamList, receiver string, forwarded bool) {
	outer := v.r.outerNames()
	seen := make(map[string]bool, len(params))

	for i, p := range params {
		switch {
		case p.Name == Receiver:
			v.errorf("reserved_param", field, "%s parameter %q is the builder receiver", what, p.Name)
		case receiver != "" && p.Name == receiver:
			v.errorf("reserved_param", field, "%s parameter %q is the mutator receiver", what, p.Name)
		case forwarded && p.Name == "_":
			v.errorf("reserved_param", field, "%s parameters are forwarded and cannot be blank", what)
		case p.Name != "_" && outer[p.Name]:
			v.errorf("param_shadows", field, "%s parameter %q shadows a name used by generated code", what, p.Name)
		}

		if seen[p.Name] && p.Name != "_" {
			v.errorf("duplicate_param", field, "%s parameter %q is declared twice", what, p.Name)
		}

		seen[p.Name] = true

		if p.Variadic && i != len(params)-1 {
			v.errorf("invalid_variadic", field, "only the last %s parameter can be variadic", what)
		}
	}
}

func (v *recordValidator) checkMutator(m *MutatorSpec) {
	name := m.Method.Name

	if m.Receiver == Receiver {
		v.errorf("reserved_receiver", name, "mutator receiver %q is the builder receiver", m.Receiver)
	} else if IsReserved(m.Receiver) || v.r.outerNames()[m.Receiver] {
		v.errorf("reserved_receiver", name, "mutator receiver %q shadows a name used by generated code", m.Receiver)
	}

	if _, err := goexpr.ParseBody(m.Body); err != nil {
		v.errorf("invalid_mutator_body", name, "%v", err)
	}

	v.checkParams(name, "mutator", m.Params, m.Receiver, true)

	names := make([]string, 0, len(v.r.Fields))
	for i := range v.r.Fields {
		names = append(names, v.r.Fields[i].Name)
	}

	for _, req := range m.Requires {
		f := v.r.Field(req)

		switch {
		case f == nil:
			v.diags.AddErrorWithSuggestions("unknown_field",
				fmt.Sprintf("mutator %s requires unknown field %s", name, req), v.r.Name, name,
				match.Suggest(req, names, maxSuggestions))
		case f.Skip:
			v.errorf("mutator_requires_skipped", name, "mutator %s requires skipped field %s", name, req)
		}
	}
}

func (v *recordValidator) checkInto() {
	into := v.r.Into
	if into.Mode == IntoGeneric {
		v.checkGenericInto()
		return
	}

	if into.Mode != IntoFixed {
		return
	}

	if into.Type == "" {
		v.errorf("invalid_into", "into", "into needs a type")
		return
	}

	if _, err := goexpr.Parse(into.Type); err != nil {
		v.errorf("invalid_into", "into", "%v", err)
	}
}

// checkGenericInto rejects names of the generic static finalizer that
// collide with the record's type parameters or other generated names.
func (v *recordValidator) checkGenericInto() {
	param, arg := v.r.Into.GenericNames()
	outer := v.r.outerNames()

	for _, name := range []string{param, arg} {
		if IsReserved(name) || outer[name] {
			v.errorf("name_collision", "into", "generic finalizer name %q collides with a name used by generated code", name)
		}
	}

	if param == arg {
		v.errorf("name_collision", "into", "generic finalizer declares %q twice", param)
	}
}

// checkMembers rejects builder methods and storage fields sharing a name.
func (v *recordValidator) checkMembers() {
	owners := map[string]string{
		"err":          "error slot",
		"validate":     "guard method",
		"finish":       "finalize helper",
		v.r.Build.Name: "finalize method",
	}

	claim := func(name, owner, field string) {
		if prev, ok := owners[name]; ok {
			v.errorf("name_collision", field, "%s %q collides with %s", owner, name, prev)
			return
		}

		owners[name] = owner
	}

	for i := range v.r.Fields {
		f := &v.r.Fields[i]
		if f.Included() {
			claim(StorageField(f.Name), "storage of "+f.Name, f.Name)
		}
	}

	for i := range v.r.Fields {
		f := &v.r.Fields[i]
		if f.HasSetter() {
			claim(f.Setter.Name, "setter of "+f.Name, f.Name)
		}
	}

	for i := range v.r.Mutators {
		m := &v.r.Mutators[i]
		claim(m.Method.Name, "mutator "+m.Method.Name, m.Method.Name)
	}
}

// checkTopLevel rejects generated package-level names that collide with each
// other, with declarations in other files or with imports.
func (v *recordValidator) checkTopLevel() {
	imports := make(map[string]bool, len(v.r.Imports)+1)
	for _, imp := range v.r.Imports {
		imports[imp.Name] = true

		if v.r.Taken[imp.Name] {
			v.errorf("name_collision", "imports",
				"import name %q collides with a declaration in package %s", imp.Name, v.r.Package.Name)
		}
	}

	imports[v.r.SupportName] = true

	seen := make(map[string]bool)

	for _, name := range v.r.TopLevelNames() {
		switch {
		case seen[name]:
			v.errorf("name_collision", "", "generated name %q is declared twice", name)
		case v.r.Taken[name]:
			v.errorf("name_collision", "", "generated name %q is already declared in package %s", name, v.r.Package.Name)
		case imports[name]:
			v.errorf("name_collision", "", "generated name %q collides with an import", name)
		case name == v.r.Name:
			v.errorf("name_collision", "", "generated name %q is the record name", name)
		}

		seen[name] = true
	}
}

// checkLocals rejects fields whose finalize locals would shadow a name the
// finalize body needs after the local is bound.
func (v *recordValidator) checkLocals() {
	needed := map[string]string{
		Receiver:        "the builder receiver",
		v.r.Name:        "the record type",
		v.r.SupportName: "the support package",
	}

	for _, tp := range v.r.TypeParams {
		needed[tp.Name] = "a type parameter"
	}

	for _, imp := range v.r.Imports {
		needed[imp.Name] = "an import"
	}

	order := v.r.BindOrder
	if len(order) != len(v.r.Fields) {
		order = make([]int, len(v.r.Fields))
		for i := range order {
			order[i] = i
		}
	}

	for pos, i := range order {
		f := &v.r.Fields[i]

		if what, ok := needed[f.Name]; ok {
			v.errorf("field_name_shadows", f.Name, "field %s shadows %s in the finalize body", f.Name, what)
			continue
		}

		for _, j := range order[pos+1:] {
			if identSet(v.r.Fields[j].Type)[f.Name] {
				v.errorf("field_name_shadows", f.Name,
					"field %s shadows a name used by the type of field %s", f.Name, v.r.Fields[j].Name)

				break
			}
		}
	}
}

func (v *recordValidator) checkDefaults() {
	for i := range v.r.Fields {
		f := &v.r.Fields[i]
		if slices.Contains(f.Deps, f.Name) {
			v.errorf("default_cycle", f.Name, "default of %s refers to the field itself", f.Name)
		}
	}

	if _, err := BindingOrder(v.r.Fields); err != nil {
		if cyc, ok := err.(*CycleError); ok && len(cyc.Fields) > 0 {
			v.errorf("default_cycle", cyc.Fields[0], "%v", err)
			return
		}

		v.errorf("default_cycle", "", "%v", err)
	}
}

// checkImports warns about imports nothing in the schema refers to. The
// generator leaves them out of the output.
func (v *recordValidator) checkImports() {
	if len(v.r.Imports) == 0 {
		return
	}

	used := make(map[string]bool)

	mark := func(names []string) {
		for _, name := range names {
			used[name] = true
		}
	}

	markExpr := func(src string) {
		if src == "" {
			return
		}

		if names, err := goexpr.Qualifiers(src); err == nil {
			mark(names)
		}
	}

	for _, tp := range v.r.TypeParams {
		markExpr(tp.Constraint)
	}

	for i := range v.r.Fields {
		f := &v.r.Fields[i]
		markExpr(f.Type)
		markExpr(f.Default)
		markExpr(f.ViaInit)

		if f.Transform != nil {
			markExpr(f.Transform.Body)
			mark(f.Transform.Params.TypeQualifiers())
		}
	}

	for i := range v.r.Mutators {
		m := &v.r.Mutators[i]
		if names, err := goexpr.ParseBody(m.Body); err == nil {
			mark(names)
		}

		mark(m.Params.TypeQualifiers())
	}

	markExpr(v.r.Into.Type)
	markExpr(v.r.Into.Func)

	for _, imp := range v.r.Imports {
		if !used[imp.Name] {
			v.diags.AddWarning("unused_import",
				fmt.Sprintf("import %q is never used", imp.Path), v.r.Name, "imports")
		}
	}
}
