package typedbuilder

// Unset is the state of a field that has not been supplied.
type Unset[T any] struct{}

// IsSet always reports false.
func (Unset[T]) IsSet() bool { return false }

// Get returns the zero value of T.
func (Unset[T]) Get() T {
	var zero T
	return zero
}

// Set is the state of a field holding a supplied value.
type Set[T any] struct {
	Value T
}

// IsSet always reports true.
func (Set[T]) IsSet() bool { return true }

// Get returns the stored value.
func (s Set[T]) Get() T { return s.Value }

// Field is the constraint of every builder state parameter. Exactly one of
// Unset[T] and Set[T] holds.
type Field[T any] interface {
	Unset[T] | Set[T]
	IsSet() bool
	Get() T
}

// Required constrains the state of a field without a default. It has the
// same type set as Field; the distinct name lets tools find required fields.
type Required[T any] interface {
	Field[T]
}
