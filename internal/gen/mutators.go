package gen

import (
	"strconv"
	"strings"
	"text/template"

	"typed-builder/internal/plan"
)

type mutatorsData struct {
	Support   string
	Sentinels []sentinel
	Mutators  []mutatorData
}

type mutatorData struct {
	Fields     string
	FieldsDecl string
	FieldsType string
	Members    []member
	Receiver   string
	Params     string
	Body       string

	Doc       string
	Directive string
	Recv      string
	Name      string
	Checks    []guard
	Lit       string
	Args      string
	WriteBack []writeBack
}

type member struct {
	Name string
	Type string
}

type writeBack struct {
	Storage string
	Field   string
}

var mutatorsTemplate = template.Must(template.New("mutators").Funcs(funcs).Parse(`
{{- if .Sentinels}}
var (
{{range .Sentinels}}	{{.Name}} = {{.Value}}
{{end}})
{{end}}
{{- range .Mutators}}{{$m := .}}
// {{.Fields}} exposes the fields {{.Name}} may change.
type {{.FieldsDecl}} struct {
{{range .Members}}	{{.Name}} {{.Type}}
{{end}}}

func ({{.Receiver}} *{{.FieldsType}}) apply({{.Params}}) {
{{.Body}}
}

{{comment .Doc}}//
//{{.Directive}}
func (b {{.Recv}}) {{.Name}}({{.Params}}) {{.Recv}} {
{{- range .Checks}}
	if {{.Cond}} {
		b.err = {{$.Support}}.Check(b.err, true, {{.Sentinel}})
		return b
	}
{{end}}
	{{.Receiver}} := {{.Lit}}
	{{.Receiver}}.apply({{.Args}})
{{range .WriteBack}}	{{$.Support}}.Put(&b.{{.Storage}}, {{$m.Receiver}}.{{.Field}})
{{end}}
	return b
}
{{end}}`))

// Mutators renders, per mutator, an aggregate type exposing its required
// and via-mutators fields, the aggregate's apply method holding the body,
// and the builder method. The builder method keeps the type-state: it
// refuses to run while a required field is unset and otherwise writes the
// edited values back into the same fields.
func Mutators(s *plan.RecordSchema) (Fragment, error) {
	if len(s.Mutators) == 0 {
		return Fragment{Component: "mutators"}, nil
	}

	sh := newShape(s)
	data := mutatorsData{Support: sh.support}

	for i := range s.Mutators {
		m := &s.Mutators[i]
		md := mutatorData{
			Fields:     s.MutatorFieldsType(m),
			FieldsDecl: s.MutatorFieldsType(m) + typeParamList(sh.recordParams()),
			FieldsType: instantiate(s.MutatorFieldsType(m), sh.recordArgs()),
			Receiver:   m.Receiver,
			Params:     m.Params.Decl(),
			Body:       m.Body,
			Doc:        mutatorDoc(m),
			Directive:  "typedbuilder:mutator",
			Recv:       sh.recv(),
			Name:       m.Method.Name,
			Args:       m.Params.Args(),
		}

		if len(m.Requires) > 0 {
			md.Directive += " requires " + strings.Join(m.Requires, " ")
		}

		for _, name := range m.Requires {
			f := s.Field(name)
			sentinelName := s.MutatorErr(m, name)

			data.Sentinels = append(data.Sentinels, sentinel{
				Name: sentinelName,
				Value: sh.support + ".MutatorRequires(" + strconv.Quote(s.Builder.Name) + ", " +
					strconv.Quote(m.Method.Name) + ", " + strconv.Quote(f.Name) + ")",
			})

			md.Checks = append(md.Checks, guard{
				Field:    f.Name,
				Cond:     "!b." + plan.StorageField(f.Name) + ".IsSet()",
				Sentinel: sentinelName,
			})
		}

		var inits []storageInit

		for _, f := range s.MutatorFields(m) {
			md.Members = append(md.Members, member{Name: f.Name, Type: f.Type})
			inits = append(inits, storageInit{Name: f.Name, Value: "b." + plan.StorageField(f.Name) + ".Get()"})
			md.WriteBack = append(md.WriteBack, writeBack{Storage: plan.StorageField(f.Name), Field: f.Name})
		}

		md.Lit = compositeLit(md.FieldsType, inits)

		data.Mutators = append(data.Mutators, md)
	}

	return render("mutators", mutatorsTemplate, data)
}

func mutatorDoc(m *plan.MutatorSpec) string {
	if m.Method.Doc != "" {
		return m.Method.Doc
	}

	if len(m.Requires) == 0 {
		return m.Method.Name + " edits the builder's fields in place."
	}

	return m.Method.Name + " edits the builder's fields in place. It requires " +
		strings.Join(m.Requires, ", ") + " to be set."
}
