package lint

import (
	"go/ast"
	"strings"
)

const (
	directivePrefix   = "//typedbuilder:"
	finalizeDirective = "finalize"
	mutatorDirective  = "mutator"
)

// finalizeFact marks a method or function that finalizes a builder.
type finalizeFact struct {
	// Static is set for finalize functions taking the builder as their
	// first argument.
	Static bool
}

func (*finalizeFact) AFact() {}

func (f *finalizeFact) String() string {
	if f.Static {
		return "finalize static"
	}

	return "finalize"
}

// mutatorFact records the fields a mutator requires.
type mutatorFact struct {
	Requires []string
}

func (*mutatorFact) AFact() {}

func (f *mutatorFact) String() string {
	if len(f.Requires) == 0 {
		return "mutator"
	}

	return "mutator requires " + strings.Join(f.Requires, " ")
}

// directives returns the typedbuilder directives in doc, each split into
// words.
func directives(doc *ast.CommentGroup) [][]string {
	if doc == nil {
		return nil
	}

	var out [][]string

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		if words := strings.Fields(rest); len(words) > 0 {
			out = append(out, words)
		}
	}

	return out
}

// mutatorRequires parses the words following "mutator".
func mutatorRequires(args []string) []string {
	if len(args) == 0 || args[0] != "requires" {
		return nil
	}

	return args[1:]
}
