// Package analyze provides package loading and record extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to describe
// every named type of the loaded packages: its kind, type parameters and,
// for structs, the fields a builder is generated for.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind, type parameters, fields and the imports their types need
//   - FieldInfo: field name, type expression, pointer element, doc and tag
package analyze
