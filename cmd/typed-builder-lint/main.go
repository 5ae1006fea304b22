// Command typed-builder-lint runs the buildercheck analyzer, which reports
// misuse of generated type-state builders.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"typed-builder/internal/lint"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
