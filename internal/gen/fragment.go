package gen

import (
	"bytes"
	"fmt"
	"text/template"
)

// Fragment is a unit of generated declarations. The Generator emits
// fragments in the order they were produced.
type Fragment struct {
	// Component names the generator part that produced the fragment.
	Component string
	// Code holds Go declarations without package clause or imports.
	Code string
}

// render executes tmpl into a Fragment.
func render(component string, tmpl *template.Template, data any) (Fragment, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Fragment{}, fmt.Errorf("executing %s template: %w", component, err)
	}

	return Fragment{Component: component, Code: buf.String()}, nil
}

// funcs is shared by every fragment template.
var funcs = template.FuncMap{
	"comment": commentLines,
}
