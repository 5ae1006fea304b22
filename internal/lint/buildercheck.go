package lint

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const doc = `check the use of generated type-state builders

The buildercheck analyzer reports builder calls the type-state shows to be
wrong: a setter called on a builder whose field is already set, a finalize
call on a builder missing a required field, and a mutator called before a
field it requires is set.`

// Analyzer is the buildercheck analyzer.
var Analyzer = &analysis.Analyzer{
	Name:      "buildercheck",
	Doc:       doc,
	Requires:  []*analysis.Analyzer{inspect.Analyzer},
	Run:       run,
	FactTypes: []analysis.Fact{new(finalizeFact), new(mutatorFact)},
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		exportFacts(pass, n.(*ast.FuncDecl))
	})

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		checkCall(pass, n.(*ast.CallExpr))
	})

	return nil, nil
}

// exportFacts records the directives of a function declaration.
func exportFacts(pass *analysis.Pass, decl *ast.FuncDecl) {
	fn, ok := pass.TypesInfo.Defs[decl.Name].(*types.Func)
	if !ok {
		return
	}

	for _, words := range directives(decl.Doc) {
		switch words[0] {
		case finalizeDirective:
			pass.ExportObjectFact(fn, &finalizeFact{Static: decl.Recv == nil})
		case mutatorDirective:
			pass.ExportObjectFact(fn, &mutatorFact{Requires: mutatorRequires(words[1:])})
		}
	}
}

// checkCall checks one call against the type-state of the builder it
// receives.
func checkCall(pass *analysis.Pass, call *ast.CallExpr) {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return
	}

	origin := fn.Origin()

	var fin finalizeFact
	if pass.ImportObjectFact(origin, &fin) {
		arg := builderArg(call, fin.Static)
		if arg == nil {
			return
		}

		if l, named := layoutOf(pass.TypesInfo.TypeOf(arg)); l != nil {
			checkFinalize(pass, call, fn, l, named)
		}

		return
	}

	arg := builderArg(call, false)
	if arg == nil {
		return
	}

	l, named := layoutOf(pass.TypesInfo.TypeOf(arg))
	if l == nil {
		return
	}

	var mut mutatorFact
	if pass.ImportObjectFact(origin, &mut) {
		checkMutator(pass, call, fn, mut.Requires, l, named)
		return
	}

	if i := setterIndex(fn); i >= 0 && state(named, i) == stateSet {
		pass.Reportf(callPos(call), "field %s of %s is already set", l.fields[i], l.name)
	}
}

// builderArg returns the expression holding the builder: the receiver of
// a method call, or the first argument of a static finalize call.
func builderArg(call *ast.CallExpr, static bool) ast.Expr {
	if static {
		if len(call.Args) == 0 {
			return nil
		}

		return call.Args[0]
	}

	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return nil
	}

	return sel.X
}

// callPos is the position of the called name.
func callPos(call *ast.CallExpr) token.Pos {
	if sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr); ok {
		return sel.Sel.Pos()
	}

	return call.Pos()
}

// checkFinalize reports the first required field, in declaration order,
// that the builder leaves unset.
func checkFinalize(pass *analysis.Pass, call *ast.CallExpr, fn *types.Func, l *layout, named *types.Named) {
	for i, field := range l.fields {
		if field == "" || !l.required[i] {
			continue
		}

		if state(named, i) == stateUnset {
			pass.Reportf(callPos(call), "%s called before required field %s of %s is set", fn.Name(), field, l.name)
			return
		}
	}
}

func checkMutator(pass *analysis.Pass, call *ast.CallExpr, fn *types.Func, requires []string, l *layout, named *types.Named) {
	for _, field := range requires {
		i := l.index(field)
		if i < 0 {
			continue
		}

		if state(named, i) == stateUnset {
			pass.Reportf(callPos(call), "%s requires field %s of %s to be set", fn.Name(), field, l.name)
			return
		}
	}
}
