package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"typed-builder/internal/analyze"
	"typed-builder/internal/common"
	"typed-builder/internal/config"
	"typed-builder/internal/diagnostic"
	"typed-builder/internal/goexpr"
	"typed-builder/internal/match"
)

// maxSuggestions is the maximum number of did-you-mean suggestions.
const maxSuggestions = 3

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph *analyze.TypeGraph
	file  *config.File
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, file *config.File) *Resolver {
	return &Resolver{graph: graph, file: file}
}

// Resolve runs the full resolution pipeline and returns a Plan. Builders
// with errors are reported in the plan's diagnostics and left out of its
// schemas; the error return is reserved for unusable input.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.file == nil {
		return nil, errors.New("builder file is required")
	}

	if r.graph == nil {
		return nil, errors.New("type graph is required")
	}

	plan := &Plan{}
	plan.Diagnostics.Merge(*config.Validate(r.file))

	if plan.Diagnostics.HasErrorsFor("") {
		return plan, nil
	}

	for i := range r.file.Builders {
		b := &r.file.Builders[i]
		if plan.Diagnostics.HasErrorsFor(b.Type) {
			continue
		}

		schema, diags := r.resolveBuilder(b)
		plan.Diagnostics.Merge(diags)

		if schema == nil || diags.HasErrors() {
			continue
		}

		plan.Schemas = append(plan.Schemas, schema)
	}

	return plan, nil
}

// resolveBuilder builds the schema of one builder and validates it.
func (r *Resolver) resolveBuilder(b *config.Builder) (*RecordSchema, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	pattern := r.file.PackagePattern(b)

	pkg := r.findPackage(pattern)
	if pkg == nil {
		diags.AddError("package_not_loaded", fmt.Sprintf("package %q is not loaded", pattern), b.Type, "")
		return nil, diags
	}

	info := r.graph.GetType(analyze.TypeID{PkgPath: pkg.Path, Name: b.Type})
	if info == nil {
		names := make([]string, len(pkg.Types))
		for i, id := range pkg.Types {
			names[i] = id.Name
		}

		diags.AddErrorWithSuggestions("record_not_found",
			fmt.Sprintf("type %q not found in package %s", b.Type, pkg.Path), b.Type, "",
			match.Suggest(b.Type, names, maxSuggestions))

		return nil, diags
	}

	if info.Kind != analyze.TypeKindStruct {
		msg := fmt.Sprintf("%s is a %s type; only struct records are supported", b.Type, info.Kind)
		if info.Kind == analyze.TypeKindInterface {
			msg = fmt.Sprintf("%s is an interface; enum and union inputs are not supported", b.Type)
		}

		diags.AddError("not_a_struct", msg, b.Type, "")

		return nil, diags
	}

	if info.File == b.Output {
		diags.AddError("output_overwrites_source",
			fmt.Sprintf("output %s is the file declaring %s", b.Output, b.Type), b.Type, "output")

		return nil, diags
	}

	schema := &RecordSchema{
		Name:       b.Type,
		Package:    PackageRef{Path: pkg.Path, Name: pkg.Name, Dir: pkg.Dir},
		TypeParams: info.TypeParams,
		Support:    r.file.Support,
		Output:     b.Output,
		Taken:      make(map[string]bool),
	}

	for name := range pkg.Scope {
		if pkg.Declares(name, b.Output) {
			schema.Taken[name] = true
		}
	}

	schema.Builder = Item{Name: builderName(b.Type, b.BuilderType), Doc: b.BuilderType.Doc}
	schema.Entry = Item{Name: entryName(schema.Builder.Name, b.BuilderMethod), Doc: b.BuilderMethod.Doc}
	schema.Build = Item{Name: buildName(b.BuildMethod), Doc: b.BuildMethod.Doc}
	schema.StaticBuild = staticBuildName(schema.Build.Name, b.Type)
	schema.Into = resolveInto(b.Into)

	r.resolveImports(schema, info, b, &diags)
	r.resolveFields(schema, info, b, &diags)

	for _, m := range b.Mutators {
		schema.Mutators = append(schema.Mutators, resolveMutator(schema, m, "", &diags))
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		for _, m := range b.Options(f.Name).Mutators {
			schema.Mutators = append(schema.Mutators, resolveMutator(schema, m, f.Name, &diags))
		}
	}

	assignNames(schema)

	if order, err := BindingOrder(schema.Fields); err == nil {
		schema.BindOrder = order

		if !slices.IsSorted(order) {
			names := make([]string, len(order))
			for i, idx := range order {
				names[i] = schema.Fields[idx].Name
			}

			diags.AddInfo("reordered_bindings",
				"defaults refer to later fields; fields are bound as "+strings.Join(names, ", "), b.Type, "")
		}
	}

	diags.Merge(ValidateRecord(schema))

	return schema, diags
}

// findPackage matches a package pattern against the loaded packages.
// Relative and absolute paths match a package directory, relative to the
// builder file; anything else must be an import path.
func (r *Resolver) findPackage(pattern string) *analyze.PackageInfo {
	if !isPathPattern(pattern) {
		return r.graph.Packages[pattern]
	}

	dir := pattern
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.file.Dir, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	for _, pkg := range r.graph.Packages {
		if pkg.Dir != "" && filepath.Clean(pkg.Dir) == abs {
			return pkg
		}
	}

	return nil
}

func isPathPattern(pattern string) bool {
	return pattern == "." || pattern == ".." ||
		strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../") ||
		filepath.IsAbs(pattern)
}

func resolveInto(s config.IntoSetting) IntoSpec {
	switch s.Mode {
	case config.IntoGeneric:
		return IntoSpec{Mode: IntoGeneric}
	case config.IntoFixed:
		return IntoSpec{Mode: IntoFixed, Type: s.Type, Func: s.Func}
	default:
		return IntoSpec{Mode: IntoNone}
	}
}

// resolveImports collects the packages used by field types and the
// configured imports, then picks a name for the support package.
func (r *Resolver) resolveImports(schema *RecordSchema, info *analyze.TypeInfo, b *config.Builder, diags *diagnostic.Diagnostics) {
	byName := make(map[string]string)

	add := func(name, importPath string) {
		if prev, ok := byName[name]; ok {
			if prev != importPath {
				diags.AddError("import_conflict",
					fmt.Sprintf("import name %q refers to both %s and %s", name, prev, importPath), b.Type, "imports")
			}

			return
		}

		byName[name] = importPath
		schema.Imports = append(schema.Imports, Import{Path: importPath, Name: name})
	}

	for _, imp := range info.Imports {
		add(imp.Name, imp.Path)
	}

	for _, imp := range b.Imports {
		name := imp.Alias
		if name == "" {
			name = common.PkgAlias(imp.Path)
		}

		if imp.Path == schema.Package.Path {
			diags.AddError("import_cycle", fmt.Sprintf("%s imports its own package", b.Type), b.Type, "imports")
			continue
		}

		add(name, imp.Path)
	}

	schema.SupportName = uniqueName(common.PkgAlias(schema.Support), func(name string) bool {
		if _, ok := byName[name]; ok {
			return true
		}

		if schema.Taken[name] || name == schema.Name {
			return true
		}

		for _, tp := range info.TypeParams {
			if tp.Name == name {
				return true
			}
		}

		for _, f := range info.Fields {
			if f.Name == name {
				return true
			}
		}

		return false
	})
}

// resolveFields converts record fields into FieldSpecs with field_defaults
// merged in.
func (r *Resolver) resolveFields(schema *RecordSchema, info *analyze.TypeInfo, b *config.Builder, diags *diagnostic.Diagnostics) {
	names := make([]string, 0, len(info.Fields))

	for _, fi := range info.Fields {
		names = append(names, fi.Name)

		if fi.Embedded {
			diags.AddError("embedded_field",
				fmt.Sprintf("embedded field %s is not supported; give it a name", fi.Name), b.Type, fi.Name)

			continue
		}

		schema.Fields = append(schema.Fields, resolveField(fi, b, len(schema.Fields), diags))
	}

	for _, name := range b.FieldNames() {
		if !slices.Contains(names, name) {
			diags.AddErrorWithSuggestions("unknown_field",
				fmt.Sprintf("%s has no field %s", b.Type, name), b.Type, name,
				match.Suggest(name, names, maxSuggestions))
		}
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		if f.DefaultKind == DefaultExpr {
			f.Deps = DefaultDeps(f.Default, schema.Fields)
		}
	}
}

func resolveField(fi analyze.FieldInfo, b *config.Builder, ordinal int, diags *diagnostic.Diagnostics) FieldSpec {
	opts := b.Options(fi.Name)
	s := opts.Setter

	f := FieldSpec{
		Ordinal:     ordinal,
		Name:        fi.Name,
		Type:        fi.Type,
		Elem:        fi.Elem,
		IsBool:      fi.IsBool,
		Doc:         fi.Doc,
		Skip:        config.IsTrue(s.Skip),
		StripOption: config.IsTrue(s.StripOption),
		StripBool:   config.IsTrue(s.StripBool),
		AutoInto:    config.IsTrue(s.AutoInto),

		MutableDuringDefaultResolution: config.IsTrue(opts.MutableDuringDefaultResolution),

		Setter:        Item{Name: setterName(fi.Name, s)},
		SetterOptions: setterOptions(b.Fields[fi.Name].Setter),
	}

	if s.Doc != nil {
		f.Setter.Doc = *s.Doc
	}

	if s.Deprecated != nil {
		f.Deprecated = *s.Deprecated
	}

	if !fi.IsPointer() {
		f.Elem = ""
	}

	if opts.ViaMutators != nil && opts.ViaMutators.Enabled {
		f.ViaMutators = true
		f.ViaInit = opts.ViaMutators.Init
	}

	switch {
	case opts.Default != nil:
		f.DefaultKind = DefaultExpr
		f.Default = *opts.Default
	case config.IsTrue(opts.DefaultZero):
		f.DefaultKind = DefaultZero
	case f.ViaMutators:
		// Via fields start set and need no default.
	case f.StripOption, f.StripBool:
		// Omitting an optional or flag field leaves it nil or false.
		f.DefaultKind = DefaultZero
	}

	if s.Transform != nil {
		params, err := goexpr.ParseParams(s.Transform.Params)
		if err != nil {
			diags.AddError("invalid_transform", err.Error(), b.Type, fi.Name)
		}

		f.Transform = &TransformSpec{Params: params, Body: s.Transform.Body}
	}

	return f
}

// setterOptions names the setter options set in s, skip excluded.
func setterOptions(s config.SetterOptions) []string {
	var out []string

	for _, opt := range []struct {
		name string
		set  bool
	}{
		{"strip_option", s.StripOption != nil},
		{"strip_bool", s.StripBool != nil},
		{"auto_into", s.AutoInto != nil},
		{"transform", s.Transform != nil},
		{"name", s.Name != nil},
		{"prefix", s.Prefix != nil},
		{"suffix", s.Suffix != nil},
		{"vis", s.Vis != nil},
		{"doc", s.Doc != nil},
		{"deprecated", s.Deprecated != nil},
	} {
		if opt.set {
			out = append(out, opt.name)
		}
	}

	return out
}

// resolveMutator converts a configured mutator. field is the owning field
// of a field-level mutator; it is always required.
func resolveMutator(schema *RecordSchema, m config.Mutator, field string, diags *diagnostic.Diagnostics) MutatorSpec {
	spec := MutatorSpec{
		Method:   Item{Name: withVis(m.Name, m.Vis), Doc: m.Doc},
		Body:     m.Body,
		Receiver: m.Receiver,
		Field:    field,
	}

	if spec.Receiver == "" {
		spec.Receiver = DefaultReceiver
	}

	params, err := goexpr.ParseParams(m.Params)
	if err != nil {
		diags.AddError("invalid_mutator_params", err.Error(), schema.Name, m.Name)
	}

	spec.Params = params

	requires := m.Requires
	if field != "" {
		requires = append([]string{field}, requires...)
	}

	spec.Requires = orderRequires(schema, requires)

	return spec
}

// orderRequires removes duplicates and sorts known fields by ordinal;
// unknown names follow in their given order.
func orderRequires(schema *RecordSchema, names []string) []string {
	seen := make(map[string]bool, len(names))

	var known, unknown []string

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true

		if schema.Field(name) != nil {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}

	slices.SortFunc(known, func(a, b string) int {
		return schema.Field(a).Ordinal - schema.Field(b).Ordinal
	})

	return append(known, unknown...)
}

// assignNames picks the state parameter and setter parameter name of every
// field so that neither shadows a name the generated code refers to.
func assignNames(schema *RecordSchema) {
	outer := schema.outerNames()

	stateTaken := func(name string) bool {
		return outer[name] || IsReserved(name)
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		if !f.Included() {
			continue
		}

		f.StateParam = uniqueName(f.Name+"State", stateTaken)
		outer[f.StateParam] = true
	}

	if schema.Into.Mode == IntoGeneric {
		schema.Into.Param = uniqueName("R", stateTaken)
		outer[schema.Into.Param] = true
		schema.Into.Arg = uniqueName("into", stateTaken)
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		if !f.HasSetter() {
			continue
		}

		typeIdents := identSet(f.ParamType())

		f.Param = paramName(f.Name, func(name string) bool {
			return outer[name] || typeIdents[name]
		})
	}
}

// outerNames returns every identifier generated bodies may refer to:
// the receiver, the record and its type parameters, imports, the support
// package, generated top-level names, state parameters and identifiers
// used in field types.
func (r *RecordSchema) outerNames() map[string]bool {
	names := map[string]bool{
		Receiver:      true,
		r.Name:        true,
		r.SupportName: true,
	}

	for _, tp := range r.TypeParams {
		names[tp.Name] = true

		for name := range identSet(tp.Constraint) {
			names[name] = true
		}
	}

	for _, imp := range r.Imports {
		names[imp.Name] = true
	}

	for _, name := range r.TopLevelNames() {
		names[name] = true
	}

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.StateParam != "" {
			names[f.StateParam] = true
		}

		for name := range identSet(f.Type) {
			names[name] = true
		}
	}

	return names
}

// TopLevelNames lists the package-level names the generated file declares.
func (r *RecordSchema) TopLevelNames() []string {
	names := []string{r.Builder.Name, r.Entry.Name, r.StaticBuild}

	if len(r.TypeParams) == 0 {
		names = append(names, r.InitAlias(), r.InitialVar())
	}

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Required() {
			names = append(names, r.MissingErr(f.Name))
		}

		if f.HasSetter() {
			names = append(names, r.RepeatedErr(f.Name))
		}
	}

	for i := range r.Mutators {
		m := &r.Mutators[i]
		names = append(names, r.MutatorFieldsType(m))

		for _, req := range m.Requires {
			names = append(names, r.MutatorErr(m, req))
		}
	}

	return names
}

// identSet returns the free identifiers of a Go expression or type.
func identSet(src string) map[string]bool {
	set := make(map[string]bool)
	if src == "" {
		return set
	}

	idents, err := goexpr.Idents(src)
	if err != nil {
		return set
	}

	for _, id := range idents {
		set[id] = true
	}

	return set
}
