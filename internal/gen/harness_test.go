package gen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"typed-builder/internal/analyze"
	"typed-builder/internal/config"
	"typed-builder/internal/plan"
)

const recordPkgPath = "example.com/people"

// srcImporter type-checks the support package from source and delegates
// the standard library to the source importer.
type srcImporter struct {
	std     types.Importer
	support *types.Package
}

func (imp *srcImporter) Import(path string) (*types.Package, error) {
	if path == config.DefaultSupport {
		return imp.support, nil
	}

	return imp.std.Import(path)
}

var (
	harnessOnce sync.Once
	harnessFset *token.FileSet
	harnessImp  *srcImporter
	harnessErr  error
)

// harness returns the shared file set and importer.
func harness(t *testing.T) (*token.FileSet, *srcImporter) {
	t.Helper()

	harnessOnce.Do(func() {
		harnessFset = token.NewFileSet()
		std := importer.ForCompiler(harnessFset, "source", nil)

		dir := filepath.Join("..", "..", "typedbuilder")

		entries, err := os.ReadDir(dir)
		if err != nil {
			harnessErr = err
			return
		}

		var files []*ast.File

		for _, e := range entries {
			name := e.Name()
			if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}

			f, err := parser.ParseFile(harnessFset, filepath.Join(dir, name), nil, parser.ParseComments)
			if err != nil {
				harnessErr = err
				return
			}

			files = append(files, f)
		}

		conf := types.Config{Importer: std}

		support, err := conf.Check(config.DefaultSupport, harnessFset, files, nil)
		if err != nil {
			harnessErr = err
			return
		}

		harnessImp = &srcImporter{std: std, support: support}
	})

	require.NoError(t, harnessErr)

	return harnessFset, harnessImp
}

// source is a named Go file of the record package.
type source struct {
	name string
	code string
}

// typeCheck type-checks sources as the record package and returns every
// error found.
func typeCheck(t *testing.T, sources ...source) []error {
	t.Helper()

	fset, imp := harness(t)

	files := make([]*ast.File, 0, len(sources))

	for _, src := range sources {
		f, err := parser.ParseFile(fset, src.name, src.code, parser.ParseComments)
		require.NoError(t, err, src.name)

		files = append(files, f)
	}

	var errs []error

	conf := types.Config{
		Importer: imp,
		Error:    func(err error) { errs = append(errs, err) },
	}

	_, _ = conf.Check(recordPkgPath, fset, files, nil)

	return errs
}

// resolveRecord type-checks the record source, resolves builders against
// it and returns the single resulting schema.
func resolveRecord(t *testing.T, record, builders string) *plan.RecordSchema {
	t.Helper()

	fset, imp := harness(t)

	f, err := parser.ParseFile(fset, "records.go", record, parser.ParseComments)
	require.NoError(t, err)

	conf := types.Config{Importer: imp}

	pkg, err := conf.Check(recordPkgPath, fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	an := analyze.NewAnalyzer()
	an.AddPackage(pkg, "/src/people", fset, []*ast.File{f})

	cfg, err := config.Parse([]byte("package: " + recordPkgPath + "\n" + builders))
	require.NoError(t, err)

	p, err := plan.NewResolver(an.Graph(), cfg).Resolve()
	require.NoError(t, err)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)

	return p.Schemas[0]
}

// generate resolves and generates one builder, then type-checks the record,
// the builder and usage together.
func generate(t *testing.T, record, builders, usage string) string {
	t.Helper()

	s := resolveRecord(t, record, builders)

	file, err := NewGenerator(GeneratorConfig{}).GenerateSchema(s)
	require.NoError(t, err)

	code := string(file.Content)

	errs := typeCheck(t,
		source{"records.go", record},
		source{file.Filename, code},
		source{"usage.go", usage},
	)
	require.Empty(t, errs, code)

	return code
}
