package config

import (
	"fmt"
	"go/token"

	"typed-builder/internal/diagnostic"
)

// Validate checks a File for problems that need no type information:
// missing names, invalid identifiers, duplicate builders and bad vis values.
// Parse diagnostics recorded in f are included.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "builder file is nil", "", "")
		return res
	}

	res.Merge(f.Diagnostics)

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	if f.Support == "" {
		res.AddError("missing_support", "support package path is empty", "", "")
	}

	seen := make(map[string]bool)

	for i := range f.Builders {
		b := &f.Builders[i]
		if b.Type == "" {
			res.AddError("missing_type", fmt.Sprintf("builder #%d has no type", i+1), "", "")
			continue
		}

		key := f.PackagePattern(b) + "." + b.Type
		if seen[key] {
			res.AddError("duplicate_builder", fmt.Sprintf("type %q is configured more than once", b.Type), b.Type, "")
		}

		seen[key] = true

		validateBuilder(res, b)
	}

	return res
}

func validateBuilder(res *diagnostic.Diagnostics, b *Builder) {
	for _, ns := range []struct {
		option string
		value  NameSetting
	}{
		{"builder_type", b.BuilderType},
		{"builder_method", b.BuilderMethod},
		{"build_method", b.BuildMethod},
	} {
		checkIdent(res, b.Type, ns.option, ns.value.Name)
		checkVis(res, b.Type, ns.option, ns.value.Vis)
	}

	if b.Into.Mode == IntoFixed {
		if b.Into.Func != "" {
			checkIdent(res, b.Type, "into.func", b.Into.Func)
		}
	}

	for _, imp := range b.Imports {
		if imp.Path == "" {
			res.AddError("invalid_import", "import path is empty", b.Type, "imports")
		}

		checkIdent(res, b.Type, "imports", imp.Alias)
	}

	checkSetter(res, b.Type, "field_defaults", b.FieldDefaults.Setter)

	if b.FieldDefaults.ViaMutators != nil || len(b.FieldDefaults.Mutators) > 0 {
		res.AddError("invalid_field_defaults",
			"field_defaults cannot declare via_mutators or mutators", b.Type, "field_defaults")
	}

	for _, name := range b.FieldNames() {
		opts := b.Fields[name]
		checkSetter(res, b.Type, name, opts.Setter)

		for _, m := range opts.Mutators {
			checkMutator(res, b.Type, m)
		}
	}

	for _, m := range b.Mutators {
		checkMutator(res, b.Type, m)
	}
}

func checkSetter(res *diagnostic.Diagnostics, builder, field string, s SetterOptions) {
	if s.Name != nil {
		checkIdent(res, builder, field+".setter.name", *s.Name)
	}

	if s.Vis != nil {
		checkVis(res, builder, field+".setter.vis", *s.Vis)
	}
}

func checkMutator(res *diagnostic.Diagnostics, builder string, m Mutator) {
	if m.Name == "" {
		res.AddError("missing_mutator_name", "mutator has no name", builder, "")
		return
	}

	checkIdent(res, builder, m.Name, m.Name)
	checkIdent(res, builder, m.Name+".receiver", m.Receiver)
	checkVis(res, builder, m.Name+".vis", m.Vis)

	if m.Body == "" {
		res.AddError("missing_mutator_body", fmt.Sprintf("mutator %q has no body", m.Name), builder, m.Name)
	}
}

func checkIdent(res *diagnostic.Diagnostics, builder, where, name string) {
	if name == "" {
		return
	}

	if !token.IsIdentifier(name) {
		res.AddError("invalid_identifier", fmt.Sprintf("%q is not a valid Go identifier", name), builder, where)
	}
}

func checkVis(res *diagnostic.Diagnostics, builder, where, vis string) {
	switch vis {
	case "", VisExported, VisUnexported:
	default:
		res.AddErrorWithSuggestions("invalid_vis",
			fmt.Sprintf("invalid visibility %q", vis), builder, where,
			[]string{VisExported, VisUnexported})
	}
}
