package goexpr

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
)

// Param is one named parameter of a parameter list.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// ParamList is a parsed parameter list.
type ParamList []Param

// ParseParams parses a parameter list written without parentheses, such as
// "host string, port int". Every parameter must be named.
func ParseParams(src string) (ParamList, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	expr, err := parser.ParseExpr("func(" + src + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid parameter list %q: %w", src, err)
	}

	fn, ok := expr.(*ast.FuncType)
	if !ok {
		return nil, fmt.Errorf("invalid parameter list %q", src)
	}

	var params ParamList

	for _, field := range fn.Params.List {
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("parameter list %q: every parameter needs a name", src)
		}

		typ := field.Type
		variadic := false

		if ell, isEllipsis := typ.(*ast.Ellipsis); isEllipsis {
			typ = ell.Elt
			variadic = true
		}

		typeStr, err := render(typ)
		if err != nil {
			return nil, err
		}

		for _, name := range field.Names {
			params = append(params, Param{Name: name.Name, Type: typeStr, Variadic: variadic})
		}
	}

	return params, nil
}

// Names returns the parameter names in order.
func (l ParamList) Names() []string {
	names := make([]string, len(l))
	for i, p := range l {
		names[i] = p.Name
	}

	return names
}

// Decl renders the list for a function declaration.
func (l ParamList) Decl() string {
	parts := make([]string, len(l))
	for i, p := range l {
		if p.Variadic {
			parts[i] = p.Name + " ..." + p.Type
		} else {
			parts[i] = p.Name + " " + p.Type
		}
	}

	return strings.Join(parts, ", ")
}

// Args renders the list as call arguments forwarding every parameter.
func (l ParamList) Args() string {
	parts := make([]string, len(l))
	for i, p := range l {
		if p.Variadic {
			parts[i] = p.Name + "..."
		} else {
			parts[i] = p.Name
		}
	}

	return strings.Join(parts, ", ")
}

// TypeQualifiers returns the candidate package names used by parameter types.
func (l ParamList) TypeQualifiers() []string {
	seen := make(map[string]bool)

	for _, p := range l {
		expr, err := parser.ParseExpr(p.Type)
		if err != nil {
			continue
		}

		for _, q := range qualifiers(expr) {
			seen[q] = true
		}
	}

	return sortedKeys(seen)
}

// ParseBody checks that src is a valid statement list and returns the
// candidate package names it uses.
func ParseBody(src string) ([]string, error) {
	expr, err := parser.ParseExpr("func() {\n" + src + "\n}")
	if err != nil {
		return nil, fmt.Errorf("invalid body %q: %w", src, err)
	}

	return qualifiers(expr), nil
}

func render(node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), node); err != nil {
		return "", fmt.Errorf("printing %T: %w", node, err)
	}

	return buf.String(), nil
}
