// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldInput = "input"

	// Parse fields.
	FieldDialect = "dialect"
	FieldOffset  = "offset"
	FieldLine    = "line"
	FieldColumn  = "column"
	FieldTag     = "tag"
	FieldKeyword = "keyword"
	FieldKind    = "kind"

	// Statistics fields.
	FieldNodes       = "nodes"
	FieldDiagnostics = "diagnostics"
	FieldSourceBytes = "source_bytes"
)
