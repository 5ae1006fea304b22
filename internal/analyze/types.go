package analyze

import (
	"go/types"
	"reflect"

	"typed-builder/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "typed-builder/examples/person"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface, including union constraints
	TypeKindFunc               // function type
	TypeKindChan               // channel type
	TypeKindTypeParam          // type parameter of a generic type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	case TypeKindTypeParam:
		return "type parameter"
	default:
		return common.UnknownStr
	}
}

// KindOf classifies the underlying type of t.
func KindOf(t types.Type) TypeKind {
	if _, ok := t.(*types.TypeParam); ok {
		return TypeKindTypeParam
	}

	switch t.Underlying().(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	case *types.Signature:
		return TypeKindFunc
	case *types.Chan:
		return TypeKindChan
	default:
		return TypeKindUnknown
	}
}

// TypeInfo describes a named type of a loaded package.
type TypeInfo struct {
	ID         TypeID      // Unique identifier
	Kind       TypeKind    // Kind of the underlying type
	File       string      // Base name of the declaring file
	TypeParams []TypeParam // Type parameters of a generic type
	Fields     []FieldInfo // For structs, the list of fields
	Imports    []Import    // Packages referenced by field and constraint types
	GoType     types.Type  // The original go/types.Type
}

// IsGeneric reports whether the type declares type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return len(t.TypeParams) > 0
}

// TypeParam is a type parameter with its constraint rendered as Go source.
type TypeParam struct {
	Name       string
	Constraint string
}

// Import is a package referenced by a type expression. Name is the
// identifier the expression uses for it.
type Import struct {
	Path string
	Name string
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     string            // Type expression, qualified relative to the record's package
	Kind     TypeKind          // Kind of the field type
	Elem     string            // For pointers, the element type expression
	IsBool   bool              // Whether the underlying type is bool
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Doc      string            // Doc or line comment text
}

// IsPointer reports whether the field type is a pointer.
func (f *FieldInfo) IsPointer() bool {
	return f.Kind == TypeKindPointer && f.Elem != ""
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string            // Import path
	Name  string            // Package name
	Dir   string            // Directory of the package sources
	Types []TypeID          // Named types defined in this package
	Scope map[string]string // Package-level names mapped to the base name of their file
}

// Declares reports whether name is declared at package level outside of
// the file skip.
func (p *PackageInfo) Declares(name, skip string) bool {
	file, ok := p.Scope[name]
	return ok && file != skip
}
