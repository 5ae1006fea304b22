// Package app wires the generator pipeline: it loads a builder definition
// file, loads the record packages it names, resolves builder schemas and
// then generates, checks or dumps them.
package app
