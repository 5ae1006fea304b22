package typedbuilder

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField matches every *MissingFieldError.
	ErrMissingField = errors.New("missing required field")
	// ErrRepeatedField matches every *RepeatedFieldError.
	ErrRepeatedField = errors.New("field set more than once")
	// ErrMutatorRequirement matches every *MutatorError.
	ErrMutatorRequirement = errors.New("mutator requirement not satisfied")
)

// MissingFieldError is returned when a builder is finalized without a
// required field.
type MissingFieldError struct {
	Builder string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %s", e.Builder, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// RepeatedFieldError is returned when a builder field was set twice.
type RepeatedFieldError struct {
	Builder string
	Field   string
}

func (e *RepeatedFieldError) Error() string {
	return fmt.Sprintf("%s: field %s is already set", e.Builder, e.Field)
}

// Is reports whether target is ErrRepeatedField.
func (e *RepeatedFieldError) Is(target error) bool {
	return target == ErrRepeatedField
}

// MutatorError is returned when a mutator ran before one of the fields it
// requires was set.
type MutatorError struct {
	Builder string
	Mutator string
	Field   string
}

func (e *MutatorError) Error() string {
	return fmt.Sprintf("%s.%s: requires field %s to be set", e.Builder, e.Mutator, e.Field)
}

// Is reports whether target is ErrMutatorRequirement.
func (e *MutatorError) Is(target error) bool {
	return target == ErrMutatorRequirement
}

// MissingField returns the error reported by the guard of field.
func MissingField(builder, field string) error {
	return &MissingFieldError{Builder: builder, Field: field}
}

// RepeatedField returns the error recorded by a second call to the setter
// of field.
func RepeatedField(builder, field string) error {
	return &RepeatedFieldError{Builder: builder, Field: field}
}

// MutatorRequires returns the error recorded when mutator runs with field
// unset.
func MutatorRequires(builder, mutator, field string) error {
	return &MutatorError{Builder: builder, Mutator: mutator, Field: field}
}
