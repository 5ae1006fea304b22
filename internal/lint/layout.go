package lint

import (
	"go/types"
	"reflect"
)

const tagKey = "typedbuilder"

// markerTypes are the generic types every support package declares. The
// support package is found by these, so any import path or name works.
var markerTypes = [...]string{"Unset", "Set", "Field", "Required"}

// fieldState is the state a builder type argument pins a field to.
type fieldState int

const (
	stateUnknown fieldState = iota
	stateUnset
	stateSet
)

// layout maps builder type parameters to record fields.
type layout struct {
	name     string
	fields   []string // by type parameter index; empty for record parameters
	required []bool
}

// layoutOf returns the layout of a generated builder type, or nil when t is
// not one. Builders are recognized by their storage fields: each is typed
// by a state parameter and tagged with the field it stores.
func layoutOf(t types.Type) (*layout, *types.Named) {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil, nil
	}

	origin := named.Origin()

	st, ok := origin.Underlying().(*types.Struct)
	if !ok || origin.TypeParams().Len() == 0 {
		return nil, nil
	}

	l := &layout{
		name:     origin.Obj().Name(),
		fields:   make([]string, origin.TypeParams().Len()),
		required: make([]bool, origin.TypeParams().Len()),
	}

	found := false

	for i := range st.NumFields() {
		field, ok := reflect.StructTag(st.Tag(i)).Lookup(tagKey)
		if !ok {
			continue
		}

		tp, ok := st.Field(i).Type().(*types.TypeParam)
		if !ok {
			continue
		}

		l.fields[tp.Index()] = field
		l.required[tp.Index()] = isSupport(tp.Constraint(), "Required")
		found = true
	}

	if !found {
		return nil, nil
	}

	return l, named
}

// index returns the type parameter index of field, or -1.
func (l *layout) index(field string) int {
	for i, f := range l.fields {
		if f != "" && f == field {
			return i
		}
	}

	return -1
}

// state returns the state named pins the i-th parameter to.
func state(named *types.Named, i int) fieldState {
	args := named.TypeArgs()
	if args == nil || i >= args.Len() {
		return stateUnknown
	}

	switch {
	case isSupport(args.At(i), "Set"):
		return stateSet
	case isSupport(args.At(i), "Unset"):
		return stateUnset
	default:
		return stateUnknown
	}
}

// isSupport reports whether t is the support package type called name.
func isSupport(t types.Type, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Name() == name && isSupportPkg(obj.Pkg())
}

// isSupportPkg reports whether pkg declares every marker type with a
// single type parameter.
func isSupportPkg(pkg *types.Package) bool {
	if pkg == nil {
		return false
	}

	for _, name := range markerTypes {
		tn, ok := pkg.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			return false
		}

		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() != 1 {
			return false
		}
	}

	return true
}

// setterIndex returns the index of the parameter a builder method moves to
// Set, or -1 when fn is not a setter.
func setterIndex(fn *types.Func) int {
	sig, ok := fn.Origin().Type().(*types.Signature)
	if !ok || sig.Recv() == nil || sig.Results().Len() != 1 {
		return -1
	}

	recv, ok := types.Unalias(sig.Recv().Type()).(*types.Named)
	if !ok {
		return -1
	}

	res, ok := types.Unalias(sig.Results().At(0).Type()).(*types.Named)
	if !ok || res.Origin() != recv.Origin() {
		return -1
	}

	ra, sa := recv.TypeArgs(), res.TypeArgs()
	if ra == nil || sa == nil || ra.Len() != sa.Len() {
		return -1
	}

	idx := -1

	for i := range ra.Len() {
		if types.Identical(ra.At(i), sa.At(i)) {
			continue
		}

		if idx >= 0 || !isSupport(sa.At(i), "Set") {
			return -1
		}

		idx = i
	}

	return idx
}
