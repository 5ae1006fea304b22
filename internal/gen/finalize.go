package gen

import (
	"strings"
	"text/template"

	"typed-builder/internal/plan"
)

type finalizeData struct {
	Recv       string
	RecordType string
	Bindings   []string
	Lit        string

	BuildDoc    string
	Build       string
	BuildResult string
	BuildConv   string

	StaticDoc    string
	Static       string
	StaticParams string
	StaticArg    string
	StaticInto   string
	StaticResult string
	StaticConv   string
}

var finalizeTemplate = template.Must(template.New("finalize").Funcs(funcs).Parse(`
// finish binds every field, resolving unset optional fields through their
// defaults, and constructs the record.
func (b {{.Recv}}) finish() {{.RecordType}} {
{{range .Bindings}}	{{.}}
{{end}}
	return {{.Lit}}
}

{{comment .BuildDoc}}//
//typedbuilder:finalize
func (b {{.Recv}}) {{.Build}}() ({{.BuildResult}}, error) {
	if err := b.validate(); err != nil {
		var zero {{.BuildResult}}
		return zero, err
	}

	return {{.BuildConv}}, nil
}

{{comment .StaticDoc}}//
//typedbuilder:finalize
func {{.Static}}{{.StaticParams}}(b {{.StaticArg}}{{.StaticInto}}) ({{.StaticResult}}, error) {
	if b.err != nil {
		var zero {{.StaticResult}}
		return zero, b.err
	}

	return {{.StaticConv}}, nil
}
`))

// Finalize renders finish, the runtime-checked Build method and the
// statically checked Build<Record> function.
func Finalize(s *plan.RecordSchema) (Fragment, error) {
	sh := newShape(s)
	record := sh.recordType()

	data := finalizeData{
		Recv:       sh.recv(),
		RecordType: record,
		Build:      s.Build.Name,
		BuildDoc:   s.Build.Doc,
		Static:     s.StaticBuild,
		StaticArg:  sh.finalized(),
	}

	for _, i := range s.BindOrder {
		data.Bindings = append(data.Bindings, binding(sh, &s.Fields[i]))
	}

	inits := make([]storageInit, len(s.Fields))
	for i := range s.Fields {
		inits[i] = storageInit{Name: s.Fields[i].Name, Value: s.Fields[i].Name}
	}

	data.Lit = compositeLit(record, inits)

	staticParams := sh.recordParams()

	switch s.Into.Mode {
	case plan.IntoFixed:
		data.BuildResult = s.Into.Type
		data.BuildConv = convert(s.Into, "b.finish()")
		data.StaticResult = s.Into.Type
		data.StaticConv = data.BuildConv
	case plan.IntoGeneric:
		data.BuildResult = record
		data.BuildConv = "b.finish()"
		param, arg := s.Into.GenericNames()
		data.StaticResult = param
		data.StaticConv = arg + "(b.finish())"
		data.StaticInto = ", " + arg + " func(" + record + ") " + param
		staticParams = append(staticParams, param+" any")
	default:
		data.BuildResult = record
		data.BuildConv = "b.finish()"
		data.StaticResult = record
		data.StaticConv = data.BuildConv
	}

	data.StaticParams = typeParamList(append(staticParams, sh.optionalParams()...))

	if data.BuildDoc == "" {
		data.BuildDoc = s.Build.Name + " validates the builder and returns the " + s.Name + " it describes.\n" +
			"The first usage error recorded by a setter or mutator wins over a\n" +
			"missing required field."
	}

	data.StaticDoc = s.StaticBuild + " returns the " + s.Name + " described by b. Builders missing a\n" +
		"required field do not compile."
	if s.Into.Mode == plan.IntoGeneric {
		_, arg := s.Into.GenericNames()
		data.StaticDoc += " The record is passed through " + arg + "."
	}

	return render("finalize", finalizeTemplate, data)
}

// binding renders the statement binding f's local.
func binding(sh *shape, f *plan.FieldSpec) string {
	storage := "b." + plan.StorageField(f.Name)

	switch {
	case f.Skip && f.DefaultKind == plan.DefaultExpr:
		return "var " + f.Name + " " + f.Type + " = " + f.Default
	case f.Skip:
		return "var " + f.Name + " " + f.Type
	case f.DefaultKind == plan.DefaultExpr:
		return f.Name + " := " + sh.support + ".IntoValue(" + storage + ", func() " + f.Type +
			" { return " + f.Default + " })"
	case f.DefaultKind == plan.DefaultZero:
		return f.Name + " := " + sh.support + ".IntoValue(" + storage + ", func() " + f.Type +
			" { return " + zeroValue(sh, f) + " })"
	default:
		return f.Name + " := " + storage + ".Get()"
	}
}

// zeroValue renders the zero value of f's type.
func zeroValue(sh *shape, f *plan.FieldSpec) string {
	switch {
	case f.Elem != "":
		return "nil"
	case f.IsBool:
		return "false"
	default:
		return sh.support + ".Zero[" + f.Type + "]()"
	}
}

// convert renders the fixed output conversion of expr.
func convert(into plan.IntoSpec, expr string) string {
	if into.Func != "" {
		return into.Func + "(" + expr + ")"
	}

	typ := into.Type
	if strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "<-") || strings.HasPrefix(typ, "func") {
		typ = "(" + typ + ")"
	}

	return typ + "(" + expr + ")"
}
