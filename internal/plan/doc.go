// Package plan provides the resolution pipeline that turns builder
// definitions into RecordSchemas consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load the builder file → validate its structure
//  3. For each builder:
//     - Find the record type and reject non-struct records
//     - Merge field_defaults into every field and attach mutators
//     - Parse embedded Go snippets and collect the imports they use
//     - Compute the order in which finalize binds field values
//  4. Re-validate each schema (ValidateRecord); a builder with errors is
//     dropped from the plan, the others still generate
package plan
