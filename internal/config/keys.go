package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"typed-builder/internal/diagnostic"
	"typed-builder/internal/match"
)

// keySchema lists the keys accepted in one YAML mapping.
type keySchema struct {
	keys map[string]*keySchema
	// values applies to every value of a mapping with free-form keys.
	values *keySchema
}

// leaf accepts any value.
var leaf = &keySchema{}

func object(keys map[string]*keySchema) *keySchema {
	return &keySchema{keys: keys}
}

var (
	nameSchema = object(map[string]*keySchema{"name": leaf, "vis": leaf, "doc": leaf})

	mutatorSchema = object(map[string]*keySchema{
		"name": leaf, "requires": leaf, "params": leaf, "body": leaf,
		"receiver": leaf, "vis": leaf, "doc": leaf,
	})

	setterSchema = object(map[string]*keySchema{
		"skip": leaf, "strip_option": leaf, "strip_bool": leaf, "auto_into": leaf,
		"name": leaf, "prefix": leaf, "suffix": leaf, "vis": leaf, "doc": leaf, "deprecated": leaf,
		"transform": object(map[string]*keySchema{"params": leaf, "body": leaf}),
	})

	fieldSchema = object(map[string]*keySchema{
		"default":                           leaf,
		"default_zero":                      leaf,
		"via_mutators":                      object(map[string]*keySchema{"init": leaf}),
		"mutable_during_default_resolution": leaf,
		"setter":                            setterSchema,
		"mutators":                          mutatorSchema,
	})

	builderSchema = object(map[string]*keySchema{
		"type":           leaf,
		"package":        leaf,
		"output":         leaf,
		"builder_type":   nameSchema,
		"builder_method": nameSchema,
		"build_method":   nameSchema,
		"into":           object(map[string]*keySchema{"type": leaf, "func": leaf}),
		"imports":        object(map[string]*keySchema{"path": leaf, "alias": leaf}),
		"field_defaults": fieldSchema,
		"fields":         {values: fieldSchema},
		"mutators":       mutatorSchema,
	})

	fileSchema = object(map[string]*keySchema{
		"version":  leaf,
		"package":  leaf,
		"support":  leaf,
		"builders": builderSchema,
	})
)

// checkKeys reports mapping keys that the schema does not know, with
// suggestions. Sequences are checked element-wise against the same schema.
func checkKeys(node *yaml.Node, schema *keySchema, path string, diags *diagnostic.Diagnostics) {
	if node == nil || schema == nil || schema == leaf {
		return
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			checkKeys(child, schema, path, diags)
		}

	case yaml.MappingNode:
		known := make([]string, 0, len(schema.keys))
		for k := range schema.keys {
			known = append(known, k)
		}

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]

			if schema.values != nil {
				checkKeys(value, schema.values, join(path, key.Value), diags)
				continue
			}

			child, ok := schema.keys[key.Value]
			if !ok {
				diags.AddErrorWithSuggestions("unknown_option",
					fmt.Sprintf("line %d: unknown option %q", key.Line, key.Value),
					"", join(path, key.Value), match.Suggest(key.Value, sortedCopy(known), 3))

				continue
			}

			checkKeys(value, child, join(path, key.Value), diags)
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
