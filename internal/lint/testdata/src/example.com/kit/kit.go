package kit

type Unset[T any] struct{}

func (Unset[T]) IsSet() bool { return false }

func (Unset[T]) Get() T {
	var zero T
	return zero
}

type Set[T any] struct {
	Value T
}

func (Set[T]) IsSet() bool { return true }

func (s Set[T]) Get() T { return s.Value }

type Field[T any] interface {
	Unset[T] | Set[T]
	IsSet() bool
	Get() T
}

type Required[T any] interface {
	Field[T]
}
