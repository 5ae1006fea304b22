package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typed-builder/internal/config"
)

const personConfig = `
package: example.com/people
builders:
  - type: Person
    fields:
      Name:
        default: '"anon"'
      Tags:
        setter:
          strip_option: true
`

func TestResolve_Person(t *testing.T) {
	p := resolve(t, personConfig)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)

	s := p.Schemas[0]
	assert.Equal(t, "Person", s.Name)
	assert.Equal(t, PackageRef{Path: peoplePath, Name: "people", Dir: "/src/people"}, s.Package)
	assert.Equal(t, "PersonBuilder", s.Builder.Name)
	assert.Equal(t, "NewPersonBuilder", s.Entry.Name)
	assert.Equal(t, "Build", s.Build.Name)
	assert.Equal(t, "BuildPerson", s.StaticBuild)
	assert.Equal(t, "typedbuilder", s.SupportName)
	assert.Equal(t, "person_builder.go", s.Output)
	assert.Equal(t, []int{0, 1, 2}, s.BindOrder)

	// The previous builder file does not count as taken.
	assert.False(t, s.Taken["PersonBuilder"])
	assert.True(t, s.Taken["Person"])

	require.Len(t, s.Fields, 3)

	id, name, tags := s.Fields[0], s.Fields[1], s.Fields[2]

	assert.True(t, id.Required())
	assert.Equal(t, "IDState", id.StateParam)
	assert.Equal(t, "id", id.Param)

	assert.Equal(t, DefaultExpr, name.DefaultKind)
	assert.Equal(t, `"anon"`, name.Default)
	assert.False(t, name.Required())

	assert.True(t, tags.StripOption)
	assert.Equal(t, DefaultZero, tags.DefaultKind)
	assert.Equal(t, "[]string", tags.ParamType())
	assert.Equal(t, "Tags", tags.Setter.Name)

	assert.Equal(t, []*FieldSpec{&s.Fields[0]}, s.Required())
	assert.Len(t, s.Included(), 3)
}

func TestResolve_PackageByDirectory(t *testing.T) {
	p := resolve(t, "package: ./people\nbuilders:\n  - type: Person\n")
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)
	assert.Equal(t, peoplePath, p.Schemas[0].Package.Path)
}

func TestResolve_Server(t *testing.T) {
	p := resolve(t, `
package: example.com/people
builders:
  - type: Server
    build_method: {name: Finish}
    into: {type: Endpoint, func: NewEndpoint}
    imports: [net, strconv]
    field_defaults:
      setter: {prefix: With}
    fields:
      Port:
        default: defaultPort
      Addr:
        default: net.JoinHostPort(Host, strconv.Itoa(Port))
      Timeout:
        default: 5 * time.Second
        setter: {name: Deadline}
      Debug:
        setter: {strip_bool: true}
      Tags:
        via_mutators: {init: "[]string{}"}
        mutators:
          - name: AddTag
            params: tag string
            body: m.Tags = append(m.Tags, tag)
    mutators:
      - name: Rename
        requires: [Port, Host, Host]
        params: host string
        body: m.Host = host
`)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)

	s := p.Schemas[0]
	assert.Equal(t, "Finish", s.Build.Name)
	assert.Equal(t, "FinishServer", s.StaticBuild)
	assert.Equal(t, IntoSpec{Mode: IntoFixed, Type: "Endpoint", Func: "NewEndpoint"}, s.Into)
	assert.Equal(t, []Import{{Path: "time", Name: "time"}, {Path: "net", Name: "net"}, {Path: "strconv", Name: "strconv"}}, s.Imports)

	assert.Equal(t, "WithHost", s.Field("Host").Setter.Name)
	assert.Equal(t, "WithDeadline", s.Field("Timeout").Setter.Name)
	assert.Equal(t, []string{"Host", "Port"}, s.Field("Addr").Deps)
	assert.Equal(t, DefaultZero, s.Field("Debug").DefaultKind)

	tags := s.Field("Tags")
	assert.True(t, tags.ViaMutators)
	assert.False(t, tags.Required())
	assert.False(t, tags.HasSetter())
	assert.Empty(t, tags.Param)

	require.Len(t, s.Mutators, 2)

	rename := s.Mutators[0]
	assert.Equal(t, "Rename", rename.Method.Name)
	assert.Equal(t, []string{"Host", "Port"}, rename.Requires)
	assert.Equal(t, DefaultReceiver, rename.Receiver)

	var names []string
	for _, f := range s.MutatorFields(&rename) {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"Host", "Port", "Tags"}, names)

	addTag := s.Mutators[1]
	assert.Equal(t, "Tags", addTag.Field)
	assert.Equal(t, []string{"Tags"}, addTag.Requires)
	assert.Equal(t, "tag", addTag.Params[0].Name)
}

func TestResolve_GenericRecord(t *testing.T) {
	p := resolve(t, "package: example.com/people\nbuilders:\n  - type: Pair\n")
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)

	s := p.Schemas[0]
	assert.Len(t, s.TypeParams, 2)
	assert.Equal(t, "pair_builder.go", s.Output)
	assert.NotContains(t, s.TopLevelNames(), s.InitAlias())
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		code    string
		suggest []string
	}{
		{
			name:    "unknown record",
			yaml:    "builders:\n  - type: Persn\n",
			code:    "record_not_found",
			suggest: []string{"Person"},
		},
		{
			name: "interface union",
			yaml: "builders:\n  - type: Number\n",
			code: "not_a_struct",
		},
		{
			name: "named basic type",
			yaml: "builders:\n  - type: Level\n",
			code: "not_a_struct",
		},
		{
			name: "embedded field",
			yaml: "builders:\n  - type: Wrapped\n",
			code: "embedded_field",
		},
		{
			name:    "unknown field",
			yaml:    "builders:\n  - type: Person\n    fields:\n      Nmae: {default: '\"x\"'}\n",
			code:    "unknown_field",
			suggest: []string{"Name"},
		},
		{
			name: "output over source",
			yaml: "builders:\n  - type: Person\n    output: person.go\n",
			code: "output_overwrites_source",
		},
		{
			name: "bad transform params",
			yaml: "builders:\n  - type: Person\n    fields:\n      Name:\n        setter:\n          transform: {params: 'first string second', body: first}\n",
			code: "invalid_transform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := resolve(t, "package: example.com/people\n"+tt.yaml)
			assert.Empty(t, p.Schemas)
			require.Contains(t, codes(p), tt.code)

			for _, e := range p.Diagnostics.Errors {
				if e.Code == tt.code && tt.suggest != nil {
					assert.Equal(t, tt.suggest, e.Suggestions)
				}
			}
		})
	}
}

func TestResolve_PackageNotLoaded(t *testing.T) {
	p := resolve(t, "package: example.com/missing\nbuilders:\n  - type: Person\n")
	assert.Equal(t, []string{"package_not_loaded"}, codes(p))
}

func TestResolve_KeepsValidBuilders(t *testing.T) {
	p := resolve(t, `
package: example.com/people
builders:
  - type: Person
  - type: Number
`)
	require.Len(t, p.Schemas, 1)
	assert.Equal(t, "Person", p.Schemas[0].Name)
	assert.Equal(t, []string{"not_a_struct"}, codes(p))
}

func TestResolve_FileLevelErrorsStop(t *testing.T) {
	f := &config.File{Version: "2", Support: config.DefaultSupport, Builders: []config.Builder{{Type: "Person"}}}

	p, err := NewResolver(peopleGraph(), f).Resolve()
	require.NoError(t, err)
	assert.Empty(t, p.Schemas)
	assert.Equal(t, []string{"unsupported_version"}, codes(p))
}

func TestResolve_NilInput(t *testing.T) {
	_, err := NewResolver(peopleGraph(), nil).Resolve()
	require.Error(t, err)

	_, err = NewResolver(nil, &config.File{}).Resolve()
	require.Error(t, err)
}

func TestResolve_ReorderedBindings(t *testing.T) {
	p := resolve(t, `
package: example.com/people
builders:
  - type: Person
    fields:
      ID:
        default: len(Name)
`)
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())
	require.Len(t, p.Schemas, 1)

	assert.Equal(t, []int{1, 0, 2}, p.Schemas[0].BindOrder)

	require.Len(t, p.Diagnostics.Infos, 1)
	assert.Equal(t, "reordered_bindings", p.Diagnostics.Infos[0].Code)
	assert.Contains(t, p.Diagnostics.Infos[0].Message, "Name, ID, Tags")
}
