package typedbuilder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingField(t *testing.T) {
	err := MissingField("PersonBuilder", "ID")

	assert.EqualError(t, err, "PersonBuilder: missing required field ID")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrRepeatedField)

	var missing *MissingFieldError
	require.ErrorAs(t, fmt.Errorf("build: %w", err), &missing)
	assert.Equal(t, "ID", missing.Field)
}

func TestRepeatedField(t *testing.T) {
	err := RepeatedField("PersonBuilder", "Name")

	assert.EqualError(t, err, "PersonBuilder: field Name is already set")
	assert.ErrorIs(t, err, ErrRepeatedField)
}

func TestMutatorRequires(t *testing.T) {
	err := MutatorRequires("ServerBuilder", "AddTag", "Host")

	assert.EqualError(t, err, "ServerBuilder.AddTag: requires field Host to be set")
	assert.True(t, errors.Is(err, ErrMutatorRequirement))

	var mutErr *MutatorError
	require.ErrorAs(t, err, &mutErr)
	assert.Equal(t, "AddTag", mutErr.Mutator)
}
