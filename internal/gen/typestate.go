package gen

import (
	"strings"
	"text/template"

	"typed-builder/internal/goexpr"
	"typed-builder/internal/plan"
)

type typeStateData struct {
	Doc         string
	Builder     string
	Params      string
	Storage     []storageField
	Generic     bool
	InitAlias   string
	InitType    string
	Hoisted     bool
	InitialVar  string
	EntryDoc    string
	Entry       string
	EntryTypes  string
	EntryResult string
	InitLit     string
}

type storageField struct {
	Name  string
	State string
	Field string
}

type storageInit struct {
	Name  string
	Value string
}

var typeStateTemplate = template.Must(template.New("typestate").Funcs(funcs).Parse(`
{{comment .Doc}}type {{.Builder}}[{{.Params}}] struct {
{{range .Storage}}	{{.Name}} {{.State}} ` + "`typedbuilder:\"{{.Field}}\"`" + `
{{end}}	err error
}
{{if not .Generic}}
// {{.InitAlias}} is a {{.Builder}} with no field set.
type {{.InitAlias}} = {{.InitType}}
{{end}}{{if .Hoisted}}
var {{.InitialVar}} = {{.InitLit}}

{{comment .EntryDoc}}func {{.Entry}}() {{.InitAlias}} {
	return {{.InitialVar}}
}
{{else}}
{{comment .EntryDoc}}func {{.Entry}}{{.EntryTypes}}() {{.EntryResult}} {
	return {{.InitLit}}
}
{{end}}`))

// TypeState renders the builder struct, the all-unset alias and the entry
// point of s.
func TypeState(s *plan.RecordSchema) (Fragment, error) {
	sh := newShape(s)

	data := typeStateData{
		Doc:        builderDoc(s),
		Builder:    s.Builder.Name,
		Params:     sh.declParams(),
		Generic:    sh.generic(),
		InitAlias:  s.InitAlias(),
		InitType:   sh.initial(),
		InitialVar: s.InitialVar(),
		EntryDoc:   s.Entry.Doc,
		Entry:      s.Entry.Name,
		EntryTypes: typeParamList(sh.recordParams()),
	}

	if data.EntryDoc == "" {
		data.EntryDoc = s.Entry.Name + " returns a " + s.Builder.Name + " with no field set."
	}

	// The initial builder is shared only when building it has no side
	// effects and yields the same value every time.
	data.Hoisted = !data.Generic

	var inits []storageInit

	for _, f := range sh.fields {
		data.Storage = append(data.Storage, storageField{
			Name:  plan.StorageField(f.Name),
			State: f.StateParam,
			Field: f.Name,
		})

		if !f.ViaMutators {
			continue
		}

		value := sh.marker(true, f) + "{}"
		if f.ViaInit != "" {
			value = sh.marker(true, f) + "{Value: " + f.ViaInit + "}"

			if !goexpr.IsConst(f.ViaInit) {
				data.Hoisted = false
			}
		}

		inits = append(inits, storageInit{Name: plan.StorageField(f.Name), Value: value})
	}

	data.EntryResult = data.InitType
	if !data.Generic {
		data.EntryResult = data.InitAlias
	}

	data.InitLit = compositeLit(data.EntryResult, inits)

	return render("typestate", typeStateTemplate, data)
}

// compositeLit renders a keyed composite literal of typ.
func compositeLit(typ string, inits []storageInit) string {
	if len(inits) == 0 {
		return typ + "{}"
	}

	var b strings.Builder

	b.WriteString(typ + "{\n")

	for _, in := range inits {
		b.WriteString("\t" + in.Name + ": " + in.Value + ",\n")
	}

	b.WriteString("}")

	return b.String()
}

// builderDoc documents the builder struct and lists its setters.
func builderDoc(s *plan.RecordSchema) string {
	var b strings.Builder

	if s.Builder.Doc != "" {
		b.WriteString(s.Builder.Doc)
	} else {
		b.WriteString(s.Builder.Name + " builds a " + s.Name + ". Every setter returns a new builder whose\n")
		b.WriteString("type records the field as set; " + s.StaticBuild + " only accepts builders whose\n")
		b.WriteString("required fields are set.")
	}

	var lines []string

	for i := range s.Fields {
		f := &s.Fields[i]

		switch {
		case f.HasSetter() && f.Required():
			lines = append(lines, "  - "+f.Setter.Name+" (required)")
		case f.HasSetter():
			lines = append(lines, "  - "+f.Setter.Name+" (optional)")
		}
	}

	for i := range s.Mutators {
		lines = append(lines, "  - "+s.Mutators[i].Method.Name+" (mutator)")
	}

	if len(lines) > 0 {
		b.WriteString("\n\nMethods:\n\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}
