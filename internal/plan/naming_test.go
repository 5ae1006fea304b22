package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"typed-builder/internal/config"
)

func strp(s string) *string { return &s }

func TestBuilderNames(t *testing.T) {
	assert.Equal(t, "PersonBuilder", builderName("Person", config.NameSetting{}))
	assert.Equal(t, "personBuilder", builderName("person", config.NameSetting{}))
	assert.Equal(t, "personMaker", builderName("Person", config.NameSetting{Name: "PersonMaker", Vis: config.VisUnexported}))

	assert.Equal(t, "NewPersonBuilder", entryName("PersonBuilder", config.NameSetting{}))
	assert.Equal(t, "newPersonBuilder", entryName("personBuilder", config.NameSetting{}))
	assert.Equal(t, "Make", entryName("personBuilder", config.NameSetting{Name: "make", Vis: config.VisExported}))

	assert.Equal(t, "Build", buildName(config.NameSetting{}))
	assert.Equal(t, "build", buildName(config.NameSetting{Vis: config.VisUnexported}))
	assert.Equal(t, "BuildPerson", staticBuildName("Build", "Person"))
	assert.Equal(t, "buildPerson", staticBuildName("build", "person"))
}

func TestSetterName(t *testing.T) {
	tests := []struct {
		name string
		opts config.SetterOptions
		want string
	}{
		{"field name", config.SetterOptions{}, "Name"},
		{"renamed", config.SetterOptions{Name: strp("FullName")}, "FullName"},
		{"prefix", config.SetterOptions{Prefix: strp("with")}, "withName"},
		{"suffix", config.SetterOptions{Suffix: strp("Value")}, "NameValue"},
		{"prefix and vis", config.SetterOptions{Prefix: strp("with"), Vis: strp(config.VisExported)}, "WithName"},
		{"unexported", config.SetterOptions{Vis: strp(config.VisUnexported)}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, setterName("Name", tt.opts))
		})
	}
}

func TestSchemaNames(t *testing.T) {
	r := &RecordSchema{Name: "Server", Builder: Item{Name: "ServerBuilder"}}
	m := &MutatorSpec{Method: Item{Name: "AddTag"}}

	assert.Equal(t, "ServerBuilderInit", r.InitAlias())
	assert.Equal(t, "initialServerBuilder", r.InitialVar())
	assert.Equal(t, "errServerBuilderMissingHost", r.MissingErr("Host"))
	assert.Equal(t, "errServerBuilderRepeatedHost", r.RepeatedErr("Host"))
	assert.Equal(t, "errServerBuilderAddTagRequiresTags", r.MutatorErr(m, "Tags"))
	assert.Equal(t, "serverBuilderAddTagFields", r.MutatorFieldsType(m))
	assert.Equal(t, "fHost", StorageField("Host"))
	assert.Equal(t, "fVip", StorageField("vip"))
}

func TestParamName(t *testing.T) {
	none := func(string) bool { return false }

	assert.Equal(t, "id", paramName("ID", none))
	assert.Equal(t, "urlPath", paramName("URLPath", none))
	assert.Equal(t, "typeValue", paramName("Type", none))
	assert.Equal(t, "stringValue", paramName("String", none))
	assert.Equal(t, "timeValue", paramName("Time", func(s string) bool { return s == "time" }))
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"typedbuilder": true, "typedbuilder2": true}
	assert.Equal(t, "typedbuilder3", uniqueName("typedbuilder", func(s string) bool { return taken[s] }))
	assert.Equal(t, "other", uniqueName("other", func(s string) bool { return taken[s] }))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Name", Capitalize("name"))
	assert.Equal(t, "name", Uncapitalize("Name"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Équipe", Capitalize("équipe"))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Expr", DefaultExpr.String())
	assert.Equal(t, "Zero", DefaultZero.String())
	assert.Equal(t, "DefaultKind(7)", DefaultKind(7).String())
	assert.Equal(t, "generic", IntoGeneric.String())
}
