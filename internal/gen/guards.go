package gen

import (
	"strconv"
	"strings"
	"text/template"

	"typed-builder/internal/plan"
)

type guardsData struct {
	Sentinels []sentinel
	Recv      string
	Guards    []guard
}

type guard struct {
	Field    string
	Cond     string
	Sentinel string
}

var guardsTemplate = template.Must(template.New("guards").Funcs(funcs).Parse(`
{{- if .Sentinels}}
var (
{{range .Sentinels}}	{{.Name}} = {{.Value}}
{{end}})
{{end}}
// validate returns the first usage error recorded by a setter or mutator,
// then the first missing required field in declaration order.
func (b {{.Recv}}) validate() error {
	if b.err != nil {
		return b.err
	}
{{range .Guards}}
	if {{.Cond}} {
		return {{.Sentinel}}
	}
{{end}}
	return nil
}
`))

// Guards renders one sentinel per required field and the validate method
// reporting the first missing one. The guard of a field fires only when
// every earlier required field is set, so exactly one guard applies to any
// incomplete builder.
func Guards(s *plan.RecordSchema) (Fragment, error) {
	sh := newShape(s)
	data := guardsData{Recv: sh.recv()}

	var earlier []*plan.FieldSpec

	for _, f := range s.Required() {
		missing := s.MissingErr(f.Name)

		data.Sentinels = append(data.Sentinels, sentinel{
			Name:  missing,
			Value: sh.support + ".MissingField(" + strconv.Quote(s.Builder.Name) + ", " + strconv.Quote(f.Name) + ")",
		})

		data.Guards = append(data.Guards, guard{
			Field:    f.Name,
			Cond:     guardCond(f, earlier),
			Sentinel: missing,
		})

		earlier = append(earlier, f)
	}

	return render("guards", guardsTemplate, data)
}

// guardCond renders the condition under which f is the field to report:
// f is unset and every earlier required field is set. Optional and
// via-mutators fields never constrain a guard.
func guardCond(f *plan.FieldSpec, earlier []*plan.FieldSpec) string {
	parts := []string{"!b." + plan.StorageField(f.Name) + ".IsSet()"}
	for _, g := range earlier {
		parts = append(parts, "b."+plan.StorageField(g.Name)+".IsSet()")
	}

	return strings.Join(parts, " && ")
}
