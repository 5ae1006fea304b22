package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	fields := []string{"ID", "Name", "Tags", "Nickname"}

	assert.Equal(t, []string{"Name"}, Suggest("Nmae", fields, 3))
	assert.Equal(t, []string{"Tags"}, Suggest("tags", fields, 3))
	assert.Empty(t, Suggest("Zzzzzz", fields, 3))
}

func TestSuggest_Limit(t *testing.T) {
	options := []string{"strip_option", "strip_bool", "skip"}

	got := Suggest("strip_opton", options, 1)
	assert.Equal(t, []string{"strip_option"}, got)
}

func TestSuggest_ExactNameSkipped(t *testing.T) {
	assert.Empty(t, Suggest("Name", []string{"Name"}, 3))
}
