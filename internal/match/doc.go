// Package match ranks known names against a misspelled one for
// did-you-mean suggestions, and derives Go identifiers from field names.
//
// Identifiers are compared after normalization, so "strip_option",
// "stripOption" and "StripOption" are the same name.
package match
