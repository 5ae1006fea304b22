package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typed-builder/internal/analyze"
	"typed-builder/internal/diagnostic"
	"typed-builder/internal/goexpr"
)

// personSchema returns a valid schema for
// Person{ID int; Name string = "anon"; Tags *[]string}.
func personSchema() *RecordSchema {
	s := &RecordSchema{
		Name:        "Person",
		Package:     PackageRef{Path: peoplePath, Name: "people"},
		Builder:     Item{Name: "PersonBuilder"},
		Entry:       Item{Name: "NewPersonBuilder"},
		Build:       Item{Name: "Build"},
		StaticBuild: "BuildPerson",
		Support:     "typed-builder/typedbuilder",
		SupportName: "typedbuilder",
		Output:      "person_builder.go",
		Taken:       map[string]bool{"Person": true},
		Fields: []FieldSpec{
			{Ordinal: 0, Name: "ID", Type: "int", Setter: Item{Name: "ID"}},
			{Ordinal: 1, Name: "Name", Type: "string", Setter: Item{Name: "Name"}, DefaultKind: DefaultExpr, Default: `"anon"`},
			{
				Ordinal: 2, Name: "Tags", Type: "*[]string", Elem: "[]string", Setter: Item{Name: "Tags"},
				StripOption: true, DefaultKind: DefaultZero,
			},
		},
		BindOrder: []int{0, 1, 2},
	}

	assignNames(s)

	return s
}

func errorCodes(d diagnostic.Diagnostics) []string {
	var out []string
	for _, e := range d.Errors {
		out = append(out, e.Code)
	}

	return out
}

func TestValidateRecord_Valid(t *testing.T) {
	d := ValidateRecord(personSchema())
	assert.True(t, d.IsValid(), d.Error())
	assert.Empty(t, d.Warnings)
}

func TestValidateRecord_Nil(t *testing.T) {
	d := ValidateRecord(nil)
	assert.Equal(t, []string{"schema_is_nil"}, errorCodes(d))
}

func TestValidateRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *RecordSchema)
		code   string
		field  string
	}{
		{
			name:   "strip_option on a value field",
			mutate: func(s *RecordSchema) { s.Fields[1].StripOption = true },
			code:   "strip_option_needs_pointer",
			field:  "Name",
		},
		{
			name:   "strip_bool on a string field",
			mutate: func(s *RecordSchema) { s.Fields[1].StripBool = true },
			code:   "strip_bool_needs_bool",
			field:  "Name",
		},
		{
			name:   "skip without default",
			mutate: func(s *RecordSchema) { s.Fields[0].Skip = true },
			code:   "skip_needs_default",
			field:  "ID",
		},
		{
			name: "via mutators with setter options",
			mutate: func(s *RecordSchema) {
				s.Fields[0].ViaMutators = true
				s.Fields[0].SetterOptions = []string{"prefix"}
			},
			code:  "via_mutators_with_setter",
			field: "ID",
		},
		{
			name:   "via mutators with default",
			mutate: func(s *RecordSchema) { s.Fields[1].ViaMutators = true },
			code:   "via_mutators_with_default",
			field:  "Name",
		},
		{
			name: "unparsable via init",
			mutate: func(s *RecordSchema) {
				s.Fields[0].ViaMutators = true
				s.Fields[0].ViaInit = "1 +"
			},
			code:  "invalid_init",
			field: "ID",
		},
		{
			name:   "unparsable default",
			mutate: func(s *RecordSchema) { s.Fields[1].Default = `"anon` },
			code:   "invalid_default",
			field:  "Name",
		},
		{
			name: "transform parameter named b",
			mutate: func(s *RecordSchema) {
				s.Fields[1].Transform = &TransformSpec{Params: goexpr.ParamList{{Name: "b", Type: "string"}}, Body: "b"}
			},
			code:  "reserved_param",
			field: "Name",
		},
		{
			name: "transform parameter shadowing the support package",
			mutate: func(s *RecordSchema) {
				s.Fields[1].Transform = &TransformSpec{
					Params: goexpr.ParamList{{Name: "typedbuilder", Type: "string"}},
					Body:   "typedbuilder",
				}
			},
			code:  "param_shadows",
			field: "Name",
		},
		{
			name: "unparsable transform body",
			mutate: func(s *RecordSchema) {
				s.Fields[1].Transform = &TransformSpec{Params: goexpr.ParamList{{Name: "v", Type: "string"}}, Body: "v +"}
			},
			code:  "invalid_transform",
			field: "Name",
		},
		{
			name: "variadic parameter not last",
			mutate: func(s *RecordSchema) {
				s.Fields[1].Transform = &TransformSpec{
					Params: goexpr.ParamList{{Name: "a", Type: "string", Variadic: true}, {Name: "c", Type: "int"}},
					Body:   `"x"`,
				}
			},
			code:  "invalid_variadic",
			field: "Name",
		},
		{
			name:   "setter name collision",
			mutate: func(s *RecordSchema) { s.Fields[2].Setter.Name = "ID" },
			code:   "name_collision",
			field:  "Tags",
		},
		{
			name:   "setter named like the finalize method",
			mutate: func(s *RecordSchema) { s.Fields[0].Setter.Name = "Build" },
			code:   "name_collision",
			field:  "ID",
		},
		{
			name:   "setter named like a storage field",
			mutate: func(s *RecordSchema) { s.Fields[0].Setter.Name = "fName" },
			code:   "name_collision",
			field:  "ID",
		},
		{
			name:   "builder declared elsewhere",
			mutate: func(s *RecordSchema) { s.Taken["PersonBuilder"] = true },
			code:   "name_collision",
		},
		{
			name:   "builder named like the record",
			mutate: func(s *RecordSchema) { s.Builder.Name = "Person" },
			code:   "name_collision",
		},
		{
			name:   "import shadowed by a declaration",
			mutate: func(s *RecordSchema) { s.Imports = []Import{{Path: "time", Name: "Person"}} },
			code:   "name_collision",
			field:  "imports",
		},
		{
			name: "field named like an import",
			mutate: func(s *RecordSchema) {
				s.Imports = []Import{{Path: "strings", Name: "strings"}}
				s.Fields[1].Name = "strings"
			},
			code:  "field_name_shadows",
			field: "strings",
		},
		{
			name:   "field named b",
			mutate: func(s *RecordSchema) { s.Fields[1].Name = "b" },
			code:   "field_name_shadows",
			field:  "b",
		},
		{
			name: "field named like a later field's type",
			mutate: func(s *RecordSchema) {
				s.Fields[0].Name = "Level"
				s.Fields[1].Type = "Level"
			},
			code:  "field_name_shadows",
			field: "Level",
		},
		{
			name: "default refers to itself",
			mutate: func(s *RecordSchema) {
				s.Fields[1].Default = "Name + Name"
				s.Fields[1].Deps = []string{"Name"}
			},
			code:  "default_cycle",
			field: "Name",
		},
		{
			name:   "fixed into without type",
			mutate: func(s *RecordSchema) { s.Into = IntoSpec{Mode: IntoFixed} },
			code:   "invalid_into",
			field:  "into",
		},
		{
			name: "generic into result named like a type parameter",
			mutate: func(s *RecordSchema) {
				s.TypeParams = []analyze.TypeParam{{Name: "R", Constraint: "any"}}
				s.Into = IntoSpec{Mode: IntoGeneric}
			},
			code:  "name_collision",
			field: "into",
		},
		{
			name: "generic into converter named like a type parameter",
			mutate: func(s *RecordSchema) {
				s.TypeParams = []analyze.TypeParam{{Name: "into", Constraint: "any"}}
				s.Into = IntoSpec{Mode: IntoGeneric}
			},
			code:  "name_collision",
			field: "into",
		},
		{
			name:   "misnumbered ordinal",
			mutate: func(s *RecordSchema) { s.Fields[2].Ordinal = 5 },
			code:   "invalid_ordinal",
			field:  "Tags",
		},
		{
			name:   "duplicate field",
			mutate: func(s *RecordSchema) { s.Fields[2].Name = "Name" },
			code:   "duplicate_field",
			field:  "Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := personSchema()
			tt.mutate(s)

			d := ValidateRecord(s)
			require.Contains(t, errorCodes(d), tt.code, d.Error())

			for _, e := range d.Errors {
				if e.Code == tt.code {
					assert.Equal(t, tt.field, e.Field)
					assert.Equal(t, "Person", e.Builder)

					break
				}
			}
		})
	}
}

func TestValidateRecord_Mutators(t *testing.T) {
	tests := []struct {
		name    string
		mutator MutatorSpec
		skipTag bool
		code    string
		suggest []string
	}{
		{
			name:    "unknown requirement",
			mutator: MutatorSpec{Requires: []string{"Nmae"}, Body: "m.Name = \"\"", Receiver: "m"},
			code:    "unknown_field",
			suggest: []string{"Name"},
		},
		{
			name:    "skipped requirement",
			mutator: MutatorSpec{Requires: []string{"Tags"}, Body: "m.Tags = nil", Receiver: "m"},
			skipTag: true,
			code:    "mutator_requires_skipped",
		},
		{
			name:    "receiver b",
			mutator: MutatorSpec{Body: "_ = b", Receiver: "b"},
			code:    "reserved_receiver",
		},
		{
			name:    "receiver shadows support package",
			mutator: MutatorSpec{Body: "_ = typedbuilder", Receiver: "typedbuilder"},
			code:    "reserved_receiver",
		},
		{
			name: "parameter named like the receiver",
			mutator: MutatorSpec{
				Params: goexpr.ParamList{{Name: "m", Type: "int"}}, Body: "_ = m", Receiver: "m",
			},
			code: "reserved_param",
		},
		{
			name:    "unparsable body",
			mutator: MutatorSpec{Body: "m.ID = ", Receiver: "m"},
			code:    "invalid_mutator_body",
		},
		{
			name: "blank parameter",
			mutator: MutatorSpec{
				Params: goexpr.ParamList{{Name: "_", Type: "int"}}, Body: "m.ID++", Receiver: "m",
			},
			code: "reserved_param",
		},
		{
			name: "duplicate parameter",
			mutator: MutatorSpec{
				Params: goexpr.ParamList{{Name: "x", Type: "int"}, {Name: "x", Type: "int"}}, Body: "", Receiver: "m",
			},
			code: "duplicate_param",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := personSchema()
			tt.mutator.Method = Item{Name: "Touch"}
			s.Mutators = []MutatorSpec{tt.mutator}

			if tt.skipTag {
				s.Fields[2].Skip = true
			}

			d := ValidateRecord(s)
			require.Contains(t, errorCodes(d), tt.code, d.Error())

			for _, e := range d.Errors {
				if e.Code == tt.code {
					assert.Equal(t, "Touch", e.Field)

					if tt.suggest != nil {
						assert.Equal(t, tt.suggest, e.Suggestions)
					}
				}
			}
		})
	}
}

func TestValidateRecord_Warnings(t *testing.T) {
	s := personSchema()
	s.Fields[2].Transform = &TransformSpec{Params: goexpr.ParamList{{Name: "v", Type: "string"}}, Body: "&[]string{v}"}

	d := ValidateRecord(s)
	require.True(t, d.IsValid(), d.Error())
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "ignored_setter_option", d.Warnings[0].Code)
	assert.Equal(t, "Tags", d.Warnings[0].Field)
}

func TestValidateRecord_ForwardDefaultIsValid(t *testing.T) {
	s := personSchema()
	s.Fields[1].Default = `fmt.Sprint(ID)`
	s.Fields[1].Deps = []string{"ID"}
	s.Imports = []Import{{Path: "fmt", Name: "fmt"}}

	d := ValidateRecord(s)
	assert.True(t, d.IsValid(), d.Error())
}

func TestValidateRecord_UnusedImport(t *testing.T) {
	s := personSchema()
	s.Imports = []Import{{Path: "fmt", Name: "fmt"}, {Path: "strings", Name: "strings"}}
	s.Fields[1].Default = `strings.Repeat("a", 2)`
	s.Mutators = []MutatorSpec{{
		Method:   Item{Name: "Shout"},
		Receiver: DefaultReceiver,
		Body:     "m.ID = len(fmt.Sprint(m.ID))",
		Requires: []string{"ID"},
	}}

	d := ValidateRecord(s)
	require.True(t, d.IsValid(), d.Error())
	assert.Empty(t, d.Warnings)

	s.Mutators = nil

	d = ValidateRecord(s)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "unused_import", d.Warnings[0].Code)
	assert.Equal(t, `import "fmt" is never used`, d.Warnings[0].Message)
}
