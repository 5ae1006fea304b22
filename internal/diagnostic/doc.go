// Package diagnostic provides structured errors, warnings and notes for
// builder configurations.
//
// Every diagnostic carries a stable code, the builder it belongs to and,
// when it concerns one field or mutator, that member's name. Unknown names
// come with did-you-mean suggestions.
package diagnostic
