package render

import (
	"fmt"
	"strings"

	"github.com/markuplab/tplparse/pkg/diag"
)

// Renderer formats diagnostics against one source text.
type Renderer struct {
	styles *Styles
	path   string
	lines  []string
}

// NewRenderer creates a renderer for the given file path and source.
func NewRenderer(path, source string, styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &Renderer{
		styles: styles,
		path:   path,
		lines:  strings.Split(source, "\n"),
	}
}

// FormatDiagnostic formats a single diagnostic for terminal output,
// including the offending source line with a caret marker.
func (r *Renderer) FormatDiagnostic(d diag.Diagnostic) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		r.styles.FilePath.Render(r.path),
		d.Pos.Line,
		d.Pos.Column,
	)

	kindDisplay := r.styles.Kind.Render("(" + d.Kind.String() + ")")

	// Main line: location  severity  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		r.styles.Error.Render("error"),
		r.styles.Message.Render(d.Message()),
		kindDisplay,
	))

	if line, ok := r.sourceLine(d.Pos.Line); ok {
		builder.WriteString(r.FormatSourceContext(line, int(d.Pos.Column)))
	}

	return builder.String()
}

// FormatAll formats every diagnostic in report order.
func (r *Renderer) FormatAll(diags []diag.Diagnostic) string {
	var builder strings.Builder
	for _, d := range diags {
		builder.WriteString(r.FormatDiagnostic(d))
	}
	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (r *Renderer) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + r.styles.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + r.styles.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// sourceLine returns the 1-based line of the source, trimmed of a trailing
// carriage return.
func (r *Renderer) sourceLine(line uint32) (string, bool) {
	if line < 1 || int(line) > len(r.lines) {
		return "", false
	}
	return strings.TrimSuffix(r.lines[line-1], "\r"), true
}
