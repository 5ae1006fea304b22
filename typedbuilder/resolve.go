package typedbuilder

// IntoValue returns the value held by m, or fallback() when m is Unset.
// fallback runs at most once and never for a Set field.
func IntoValue[T any, M Field[T]](m M, fallback func() T) T {
	if m.IsSet() {
		return m.Get()
	}

	return fallback()
}

// Zero returns the zero value of T.
func Zero[T any]() T {
	var zero T
	return zero
}

// Put overwrites the value held by a Set field. It is a no-op for Unset
// fields; mutators only write back fields they verified to be Set.
func Put[T any, M Field[T]](m *M, v T) {
	if s, ok := any(m).(*Set[T]); ok {
		s.Value = v
	}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Into is accepted by setters of auto-converting fields.
type Into[T any] interface {
	Into() T
}

type identity[T any] struct {
	v T
}

func (i identity[T]) Into() T { return i.v }

// Value wraps v so it can be passed where an Into[T] is expected.
func Value[T any](v T) Into[T] {
	return identity[T]{v: v}
}

// Check keeps the first usage error recorded on a builder: it returns prev
// when set, failure when failed is true, and nil otherwise.
func Check(prev error, failed bool, failure error) error {
	if prev != nil {
		return prev
	}

	if failed {
		return failure
	}

	return nil
}
