// Package goexpr inspects the Go expressions, parameter lists and statement
// bodies that builder configurations embed as strings.
package goexpr

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
)

// Parse parses a single Go expression.
func Parse(src string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}

	return expr, nil
}

// IsConst reports whether src is built only from literals and operators, so
// evaluating it once at package initialization is equivalent to evaluating it
// on every call. Calls, identifiers other than true, false and nil, composite
// literals and function literals are never constant. Unparsable input is not
// constant.
func IsConst(src string) bool {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return false
	}

	return isConstExpr(expr)
}

func isConstExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return true
	case *ast.Ident:
		return e.Name == "true" || e.Name == "false" || e.Name == "nil"
	case *ast.ParenExpr:
		return isConstExpr(e.X)
	case *ast.UnaryExpr:
		// &T{} allocates and <-ch blocks.
		if e.Op == token.AND || e.Op == token.ARROW {
			return false
		}

		return isConstExpr(e.X)
	case *ast.BinaryExpr:
		return isConstExpr(e.X) && isConstExpr(e.Y)
	default:
		return false
	}
}

// Idents returns the free identifiers referenced by src, sorted and unique.
// Selector names, struct literal keys and names declared by function literal
// parameters are not free.
func Idents(src string) ([]string, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	collectIdents(expr, make(map[string]bool), seen)

	return sortedKeys(seen), nil
}

func collectIdents(node ast.Node, bound, seen map[string]bool) {
	ast.Inspect(node, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.Ident:
			if !bound[x.Name] && x.Name != "_" {
				seen[x.Name] = true
			}

		case *ast.SelectorExpr:
			collectIdents(x.X, bound, seen)
			return false

		case *ast.KeyValueExpr:
			if _, isIdent := x.Key.(*ast.Ident); !isIdent {
				collectIdents(x.Key, bound, seen)
			}

			collectIdents(x.Value, bound, seen)

			return false

		case *ast.FuncLit:
			inner := make(map[string]bool, len(bound))
			for k := range bound {
				inner[k] = true
			}

			for _, list := range []*ast.FieldList{x.Type.Params, x.Type.Results} {
				if list == nil {
					continue
				}

				for _, f := range list.List {
					collectIdents(f.Type, bound, seen)

					for _, name := range f.Names {
						inner[name.Name] = true
					}
				}
			}

			collectIdents(x.Body, inner, seen)

			return false
		}

		return true
	})
}

// Qualifiers returns the identifiers used as the left side of selector
// expressions (candidate package names) in src, sorted and unique.
func Qualifiers(src string) ([]string, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return qualifiers(expr), nil
}

func qualifiers(node ast.Node) []string {
	seen := make(map[string]bool)

	ast.Inspect(node, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				seen[id.Name] = true
			}
		}

		return true
	})

	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}
