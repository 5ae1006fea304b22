// Package gen provides deterministic Go code generation for typed builders.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Each component renders one Fragment; the
// Generator concatenates them in a fixed order:
//   - type-state: the generic builder struct, its all-unset alias and entry
//   - setters: one state-transitioning method per field
//   - guards: missing-field sentinels and the validate method
//   - mutators: aggregate types and builder methods editing set fields
//   - finalize: finish, the fluent Build method and the static Build<Record>
package gen
