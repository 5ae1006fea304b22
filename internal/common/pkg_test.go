package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"net", "net"},
		{"net/http", "http"},
		{"typed-builder/typedbuilder", "typedbuilder"},
		{"github.com/hashicorp/hcl/v2", "hcl"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/goccy/go-json", "json"},
		{"github.com/davecgh/go-spew/spew", "spew"},
		{"example.com/v1", "v1"},
		{"example.com/lib/v10", "lib"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PkgAlias(tt.path))
		})
	}
}
