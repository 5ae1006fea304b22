package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSupport is the import path of the runtime support package.
const DefaultSupport = "typed-builder/typedbuilder"

// LoadFile loads a builder definition file. Files ending in .hcl are read as
// HCL, everything else as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read builder file %s: %w", path, err)
	}

	var f *File

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		f, err = ParseHCL(data, path)
	} else {
		f, err = Parse(data)
	}

	if err != nil {
		return nil, err
	}

	f.Dir = filepath.Dir(path)

	return f, nil
}

// Parse parses YAML data into a File. Unknown options are recorded in
// File.Diagnostics rather than failing the parse.
func Parse(data []byte) (*File, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse builder YAML: %w", err)
	}

	var f File

	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode builder YAML: %w", err)
	}

	checkKeys(&root, fileSchema, "", &f.Diagnostics)
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional settings.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Package == "" {
		f.Package = "."
	}

	if f.Support == "" {
		f.Support = DefaultSupport
	}

	for i := range f.Builders {
		b := &f.Builders[i]
		if b.Output == "" && b.Type != "" {
			b.Output = strings.ToLower(b.Type) + "_builder.go"
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)

	return out
}
