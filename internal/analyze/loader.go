package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	// ignored holds base names of files whose errors do not fail loading.
	ignored map[string]bool
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:   NewTypeGraph(),
		ignored: make(map[string]bool),
	}
}

// IgnoreErrorsIn makes LoadPackages tolerate errors located in files with
// the given base names. Builder files from an earlier run may no longer
// compile once their record changed; they are about to be replaced.
func (a *Analyzer) IgnoreErrorsIn(files ...string) {
	for _, f := range files {
		a.ignored[filepath.Base(f)] = true
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns resolved relative to dir
// (e.g., "./examples/person", "typed-builder/examples/server").
func (a *Analyzer) LoadPackages(ctx context.Context, dir string, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.ignored[errorFile(e)] {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
		}

		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

var errorPos = regexp.MustCompile(`^(.*?):\d+(:\d+)?$`)

// errorFile returns the base name of the file an error points at.
func errorFile(e packages.Error) string {
	m := errorPos.FindStringSubmatch(e.Pos)
	if m == nil {
		return ""
	}

	return filepath.Base(m[1])
}

// processPackage extracts named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	dir := ""
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}

	a.AddPackage(pkg.Types, dir, pkg.Fset, pkg.Syntax)

	return nil
}

// AddPackage records the named types of a type-checked package. files are
// the package's syntax trees; they supply field comments.
func (a *Analyzer) AddPackage(tpkg *types.Package, dir string, fset *token.FileSet, files []*ast.File) *PackageInfo {
	pkgInfo := &PackageInfo{
		Path:  tpkg.Path(),
		Name:  tpkg.Name(),
		Dir:   dir,
		Scope: make(map[string]string),
	}

	docs := fieldDocs(files)

	scope := tpkg.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		pkgInfo.Scope[name] = baseName(fset, obj.Pos())

		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		typeID := TypeID{PkgPath: tpkg.Path(), Name: name}

		info := analyzeNamed(named, tpkg.Path(), docs)
		info.ID = typeID
		info.File = pkgInfo.Scope[name]

		a.graph.Types[typeID] = info
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[tpkg.Path()] = pkgInfo

	return pkgInfo
}

func baseName(fset *token.FileSet, pos token.Pos) string {
	if !pos.IsValid() || fset == nil {
		return ""
	}

	return filepath.Base(fset.Position(pos).Filename)
}

// analyzeNamed describes a named type. Type expressions are rendered
// relative to pkgPath; every other package they mention is recorded.
func analyzeNamed(named *types.Named, pkgPath string, docs map[string]string) *TypeInfo {
	q := newQualifier(pkgPath)

	info := &TypeInfo{
		Kind:   KindOf(named),
		GoType: named,
	}

	tparams := named.TypeParams()
	for i := range tparams.Len() {
		tp := tparams.At(i)
		info.TypeParams = append(info.TypeParams, TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), q.qualify),
		})
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		info.Fields = analyzeStructFields(st, named.Obj().Name(), q, docs)
	}

	info.Imports = q.imports()

	return info
}

// analyzeStructFields extracts fields from a struct type.
func analyzeStructFields(st *types.Struct, typeName string, q *qualifier, docs map[string]string) []FieldInfo {
	var fields []FieldInfo

	for i := range st.NumFields() {
		field := st.Field(i)
		ft := field.Type()

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     types.TypeString(ft, q.qualify),
			Kind:     KindOf(ft),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
			Doc:      docs[typeName+"."+field.Name()],
		}

		if ptr, ok := ft.Underlying().(*types.Pointer); ok {
			fieldInfo.Elem = types.TypeString(ptr.Elem(), q.qualify)
		}

		if basic, ok := ft.Underlying().(*types.Basic); ok && basic.Kind() == types.Bool {
			fieldInfo.IsBool = true
		}

		fields = append(fields, fieldInfo)
	}

	return fields
}

// fieldDocs maps "Type.Field" to the field's doc or line comment.
func fieldDocs(files []*ast.File) map[string]string {
	docs := make(map[string]string)

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}

				for _, f := range st.Fields.List {
					text := f.Doc.Text()
					if text == "" {
						text = f.Comment.Text()
					}

					text = strings.TrimSpace(text)
					if text == "" {
						continue
					}

					for _, name := range f.Names {
						docs[ts.Name.Name+"."+name.Name] = text
					}
				}
			}
		}
	}

	return docs
}

// qualifier renders package-qualified type names and remembers the
// packages it saw. Distinct packages sharing a name get numbered aliases.
type qualifier struct {
	self   string
	byPath map[string]string
	taken  map[string]string
}

func newQualifier(self string) *qualifier {
	return &qualifier{
		self:   self,
		byPath: make(map[string]string),
		taken:  make(map[string]string),
	}
}

func (q *qualifier) qualify(p *types.Package) string {
	if p.Path() == q.self {
		return ""
	}

	if name, ok := q.byPath[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for n := 2; ; n++ {
		if _, used := q.taken[name]; !used {
			break
		}

		name = p.Name() + strconv.Itoa(n)
	}

	q.byPath[p.Path()] = name
	q.taken[name] = p.Path()

	return name
}

func (q *qualifier) imports() []Import {
	out := make([]Import, 0, len(q.byPath))
	for path, name := range q.byPath {
		out = append(out, Import{Path: path, Name: name})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}
