package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"typed-builder/internal/common"
	"typed-builder/internal/plan"
)

// Header is the first line of every generated file.
const Header = "// Code generated by typed-builder. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// DebugUnformatted writes code that fails to format to a sidecar file
	// next to the intended output.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{DebugUnformatted: true}
}

// Generator generates builder files from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Record is the record the file builds.
	Record string
	// Dir is the directory of the record's package.
	Dir string
	// Filename is the name of the file (e.g., "person_builder.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the location the file is written to.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates one file per schema of p. A schema that fails does
// not stop the others: the files that generated are returned along with
// the joined errors.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Schemas))

	var errs []error

	for _, s := range p.Schemas {
		file, err := g.GenerateSchema(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("generating %s builder: %w", s.Name, err))
			continue
		}

		files = append(files, *file)
	}

	return files, errors.Join(errs...)
}

// Fragments renders the declarations of s in emission order.
func Fragments(s *plan.RecordSchema) ([]Fragment, error) {
	components := []func(*plan.RecordSchema) (Fragment, error){
		TypeState,
		Setters,
		Guards,
		Mutators,
		Finalize,
	}

	frags := make([]Fragment, 0, len(components))

	for _, component := range components {
		frag, err := component(s)
		if err != nil {
			return nil, err
		}

		frags = append(frags, frag)
	}

	return frags, nil
}

type fileData struct {
	Header  string
	Package string
	Imports []importSpec
	Body    string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{.Body}}`))

// GenerateSchema generates the builder file of one schema. The schema is
// validated again; an invalid schema produces no output.
func (g *Generator) GenerateSchema(s *plan.RecordSchema) (*GeneratedFile, error) {
	if diags := plan.ValidateRecord(s); !diags.IsValid() {
		return nil, fmt.Errorf("invalid schema: %w", diags.Error())
	}

	frags, err := Fragments(s)
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	for _, frag := range frags {
		body.WriteString(frag.Code)
	}

	data := fileData{
		Header:  Header,
		Package: s.Package.Name,
		Imports: usedImports(s, body.String()),
		Body:    body.String(),
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Record: s.Name, Dir: s.Package.Dir, Filename: s.Output}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	// Group standard library imports apart from the rest.
	grouped, err := imports.Process(file.Path(), formatted, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("grouping imports: %w", err)
	}

	file.Content = grouped

	return file, nil
}

// usedImports returns the imports body refers to: the support package and
// the record's imports, in that order.
func usedImports(s *plan.RecordSchema, body string) []importSpec {
	candidates := append([]plan.Import{{Path: s.Support, Name: s.SupportName}}, s.Imports...)

	used, ok := qualifiers(body)

	var out []importSpec

	for _, imp := range candidates {
		if ok && !used[imp.Name] {
			continue
		}

		spec := importSpec{Path: imp.Path}
		if imp.Name != common.PkgAlias(imp.Path) {
			spec.Alias = imp.Name
		}

		out = append(out, spec)
	}

	return out
}

// qualifiers returns the identifiers used as selector operands in body. It
// reports false when body does not parse.
func qualifiers(body string) (map[string]bool, bool) {
	f, err := parser.ParseFile(token.NewFileSet(), "", "package p\n"+body, parser.SkipObjectResolution)
	if err != nil {
		return nil, false
	}

	used := make(map[string]bool)

	ast.Inspect(f, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = true
			}
		}

		return true
	})

	return used, true
}
