package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"typed-builder/internal/analyze"
	"typed-builder/internal/config"
)

const peoplePath = "example.com/people"

// peopleGraph returns a type graph with the records used across the tests.
func peopleGraph() *analyze.TypeGraph {
	g := analyze.NewTypeGraph()

	add := func(info *analyze.TypeInfo) analyze.TypeID {
		info.ID = analyze.TypeID{PkgPath: peoplePath, Name: info.ID.Name}
		g.Types[info.ID] = info

		return info.ID
	}

	person := add(&analyze.TypeInfo{
		ID:   analyze.TypeID{Name: "Person"},
		Kind: analyze.TypeKindStruct,
		File: "person.go",
		Fields: []analyze.FieldInfo{
			{Name: "ID", Exported: true, Type: "int", Kind: analyze.TypeKindBasic, Index: 0},
			{Name: "Name", Exported: true, Type: "string", Kind: analyze.TypeKindBasic, Index: 1},
			{Name: "Tags", Exported: true, Type: "*[]string", Kind: analyze.TypeKindPointer, Elem: "[]string", Index: 2},
		},
	})

	server := add(&analyze.TypeInfo{
		ID:   analyze.TypeID{Name: "Server"},
		Kind: analyze.TypeKindStruct,
		File: "server.go",
		Fields: []analyze.FieldInfo{
			{Name: "Host", Exported: true, Type: "string", Kind: analyze.TypeKindBasic, Index: 0},
			{Name: "Port", Exported: true, Type: "int", Kind: analyze.TypeKindBasic, Index: 1},
			{Name: "Addr", Exported: true, Type: "string", Kind: analyze.TypeKindBasic, Index: 2},
			{Name: "Timeout", Exported: true, Type: "time.Duration", Kind: analyze.TypeKindBasic, Index: 3},
			{Name: "Debug", Exported: true, Type: "bool", Kind: analyze.TypeKindBasic, IsBool: true, Index: 4},
			{Name: "Tags", Exported: true, Type: "[]string", Kind: analyze.TypeKindSlice, Index: 5},
		},
		Imports: []analyze.Import{{Path: "time", Name: "time"}},
	})

	pair := add(&analyze.TypeInfo{
		ID:         analyze.TypeID{Name: "Pair"},
		Kind:       analyze.TypeKindStruct,
		File:       "pair.go",
		TypeParams: []analyze.TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}},
		Fields: []analyze.FieldInfo{
			{Name: "Key", Exported: true, Type: "K", Kind: analyze.TypeKindTypeParam, Index: 0},
			{Name: "Value", Exported: true, Type: "V", Kind: analyze.TypeKindTypeParam, Index: 1},
		},
	})

	wrapped := add(&analyze.TypeInfo{
		ID:   analyze.TypeID{Name: "Wrapped"},
		Kind: analyze.TypeKindStruct,
		File: "person.go",
		Fields: []analyze.FieldInfo{
			{Name: "Person", Exported: true, Type: "Person", Kind: analyze.TypeKindStruct, Embedded: true, Index: 0},
			{Name: "Note", Exported: true, Type: "string", Kind: analyze.TypeKindBasic, Index: 1},
		},
	})

	number := add(&analyze.TypeInfo{
		ID:   analyze.TypeID{Name: "Number"},
		Kind: analyze.TypeKindInterface,
		File: "person.go",
	})

	level := add(&analyze.TypeInfo{
		ID:   analyze.TypeID{Name: "Level"},
		Kind: analyze.TypeKindBasic,
		File: "person.go",
	})

	g.Packages[peoplePath] = &analyze.PackageInfo{
		Path:  peoplePath,
		Name:  "people",
		Dir:   "/src/people",
		Types: []analyze.TypeID{person, server, pair, wrapped, number, level},
		Scope: map[string]string{
			"Person":        "person.go",
			"Server":        "server.go",
			"Pair":          "pair.go",
			"Wrapped":       "person.go",
			"Number":        "person.go",
			"Level":         "person.go",
			"PersonBuilder": "person_builder.go",
			"defaultPort":   "server.go",
		},
	}

	return g
}

// resolve parses a builder file and resolves it against peopleGraph.
func resolve(t *testing.T, yamlSrc string) *Plan {
	t.Helper()

	f, err := config.Parse([]byte(yamlSrc))
	require.NoError(t, err)

	f.Dir = "/src"

	p, err := NewResolver(peopleGraph(), f).Resolve()
	require.NoError(t, err)

	return p
}

// codes returns the codes of all error diagnostics.
func codes(p *Plan) []string {
	var out []string
	for _, e := range p.Diagnostics.Errors {
		out = append(out, e.Code)
	}

	return out
}
