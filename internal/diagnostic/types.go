package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"typed-builder/internal/common"
)

// Diagnostics holds all diagnostic information from resolution.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Builder names the record type whose builder this relates to (if any).
	Builder string `json:"builder,omitempty"`
	// Field names the field or mutator this relates to (if any).
	Field string `json:"field,omitempty"`
	// Suggestions are potential fixes or alternatives.
	Suggestions []string `json:"suggestions,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the severity by name.
func (s DiagnosticSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func appendDiag(list *[]Diagnostic, sev DiagnosticSeverity, code, message, builder, field string) *Diagnostic {
	*list = append(*list, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Builder:  builder,
		Field:    field,
	})

	return &(*list)[len(*list)-1]
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, builder, field string) {
	appendDiag(&d.Errors, DiagnosticError, code, message, builder, field)
}

// AddErrorWithSuggestions adds an error diagnostic offering alternatives.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, builder, field string, suggestions []string) {
	appendDiag(&d.Errors, DiagnosticError, code, message, builder, field).Suggestions = suggestions
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, builder, field string) {
	appendDiag(&d.Warnings, DiagnosticWarning, code, message, builder, field)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, builder, field string) {
	appendDiag(&d.Infos, DiagnosticInfo, code, message, builder, field)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasErrorsFor reports whether any error belongs to builder.
func (d *Diagnostics) HasErrorsFor(builder string) bool {
	for _, e := range d.Errors {
		if e.Builder == builder {
			return true
		}
	}

	return false
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Builder != "" {
		prefix = append(prefix, "["+d.Builder+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
