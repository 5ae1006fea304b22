package gen

import (
	"strconv"
	"text/template"

	"typed-builder/internal/plan"
)

type settersData struct {
	Sentinels []sentinel
	Setters   []setterData
}

type sentinel struct {
	Name  string
	Value string
}

type setterData struct {
	Doc    string
	Recv   string
	Name   string
	Params string
	Result string
	Lit    string
}

var settersTemplate = template.Must(template.New("setters").Funcs(funcs).Parse(`
{{- if .Sentinels}}
var (
{{range .Sentinels}}	{{.Name}} = {{.Value}}
{{end}})
{{end}}
{{- range .Setters}}
{{comment .Doc}}func (b {{.Recv}}) {{.Name}}({{.Params}}) {{.Result}} {
	return {{.Lit}}
}
{{end}}`))

// Setters renders one state-transitioning setter per field that has one,
// plus the sentinel each setter records when its field is already set.
func Setters(s *plan.RecordSchema) (Fragment, error) {
	sh := newShape(s)

	var data settersData

	for _, f := range sh.fields {
		if !f.HasSetter() {
			continue
		}

		repeated := s.RepeatedErr(f.Name)
		data.Sentinels = append(data.Sentinels, sentinel{
			Name:  repeated,
			Value: sh.support + ".RepeatedField(" + strconv.Quote(s.Builder.Name) + ", " + strconv.Quote(f.Name) + ")",
		})

		params, value := setterArgs(sh, f)

		var inits []storageInit

		for _, g := range sh.fields {
			v := "b." + plan.StorageField(g.Name)
			if g == f {
				v = sh.marker(true, f) + "{Value: " + value + "}"
			}

			inits = append(inits, storageInit{Name: plan.StorageField(g.Name), Value: v})
		}

		inits = append(inits, storageInit{
			Name:  "err",
			Value: sh.support + ".Check(b.err, b." + plan.StorageField(f.Name) + ".IsSet(), " + repeated + ")",
		})

		result := sh.withSet(f)

		data.Setters = append(data.Setters, setterData{
			Doc:    setterDoc(f),
			Recv:   sh.recv(),
			Name:   f.Setter.Name,
			Params: params,
			Result: result,
			Lit:    compositeLit(result, inits),
		})
	}

	return render("setters", settersTemplate, data)
}

// setterArgs returns the parameter list of f's setter and the expression
// computing the stored value. strip_bool wins over transform, transform over
// strip_option and auto_into; the last two combine.
func setterArgs(sh *shape, f *plan.FieldSpec) (params, value string) {
	switch {
	case f.StripBool:
		return "", "true"
	case f.Transform != nil:
		return f.Transform.Params.Decl(), f.Transform.Body
	}

	typ := f.ParamType()
	value = f.Param

	if f.AutoInto {
		typ = sh.support + ".Into[" + typ + "]"
		value = f.Param + ".Into()"
	}

	if f.StripOption {
		value = sh.support + ".Ptr(" + value + ")"
	}

	return f.Param + " " + typ, value
}

func setterDoc(f *plan.FieldSpec) string {
	doc := f.Setter.Doc
	if doc == "" {
		doc = f.Setter.Name + " sets the " + f.Name + " field."
		if f.StripBool {
			doc = f.Setter.Name + " sets the " + f.Name + " field to true."
		}

		if f.Doc != "" {
			doc += "\n\n" + f.Doc
		}

		switch f.DefaultKind {
		case plan.DefaultExpr:
			doc += "\n\nOptional; defaults to " + f.Default + "."
		case plan.DefaultZero:
			doc += "\n\nOptional; defaults to the zero value."
		}
	}

	if f.Deprecated != "" {
		doc += "\n\nDeprecated: " + f.Deprecated
	}

	return doc
}
