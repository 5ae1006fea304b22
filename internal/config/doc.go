// Package config provides the builder definition file: its schema, YAML and
// HCL parsing, field_defaults merging and structural validation.
//
// # Schema Overview
//
// A YAML definition file has the following structure:
//
//	version: "1"
//	package: .                      # package pattern, relative to the file
//	support: typed-builder/typedbuilder
//	builders:
//	  - type: Person
//	    output: person_builder.go
//	    builder_type: {name: PersonBuilder, doc: "..."}
//	    builder_method: {name: NewPersonBuilder}
//	    build_method: {name: Build}
//	    into: PersonView               # or true, or {type: ..., func: ...}
//	    imports: [strings]
//	    field_defaults:
//	      setter: {prefix: With}
//	    fields:
//	      Name:
//	        default: '"anon"'
//	      Tags:
//	        setter: {strip_option: true}
//	      Labels:
//	        via_mutators: {init: "map[string]string{}"}
//	    mutators:
//	      - name: Label
//	        requires: [ID]
//	        params: "key, value string"
//	        body: "m.Labels[key] = value"
//
// The HCL form carries the same settings, with one labeled block per
// builder, field, mutator and import:
//
//	builder "Person" {
//	  field "Name" {
//	    default = "\"anon\""
//	  }
//	}
//
// Default values, initializers, transform bodies and mutator bodies are Go
// source text evaluated inside the generated file.
package config
