// Package lint provides the buildercheck analyzer. It reads the
// type-state of generated builders at each call site and reports setters
// called twice, finalize calls made while a required field is unset and
// mutators called before the fields they require are set.
//
// Generated code marks finalize operations and mutators with directives
// that the analyzer exports as facts, so call sites in other packages are
// checked too:
//
//	//typedbuilder:finalize
//	//typedbuilder:mutator requires Host Port
package lint
