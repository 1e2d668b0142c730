// Package diag defines the closed taxonomy of parse diagnostics and the
// ordered list that accumulates them during a parse.
package diag

import (
	"fmt"

	"github.com/markuplab/tplparse/pkg/ast"
)

// Kind identifies which grammar expectation went unmet. One kind exists per
// expectation; the set is closed.
type Kind uint8

const (
	ExpectAttrName Kind = iota
	ExpectAttrValue
	ExpectBlockEnd
	ExpectChar
	ExpectCloseTag
	ExpectComment
	ExpectDirective
	ExpectDoctype
	ExpectElement
	ExpectExpression
	ExpectFrontMatter
	ExpectIdentifier
	ExpectInterpolation
	ExpectSelfCloseTag
	ExpectTagName
	ExpectTextNode
	MismatchedTag
	UnclosedElement
)

var kindNames = [...]string{
	ExpectAttrName:      "ExpectAttrName",
	ExpectAttrValue:     "ExpectAttrValue",
	ExpectBlockEnd:      "ExpectBlockEnd",
	ExpectChar:          "ExpectChar",
	ExpectCloseTag:      "ExpectCloseTag",
	ExpectComment:       "ExpectComment",
	ExpectDirective:     "ExpectDirective",
	ExpectDoctype:       "ExpectDoctype",
	ExpectElement:       "ExpectElement",
	ExpectExpression:    "ExpectExpression",
	ExpectFrontMatter:   "ExpectFrontMatter",
	ExpectIdentifier:    "ExpectIdentifier",
	ExpectInterpolation: "ExpectInterpolation",
	ExpectSelfCloseTag:  "ExpectSelfCloseTag",
	ExpectTagName:       "ExpectTagName",
	ExpectTextNode:      "ExpectTextNode",
	MismatchedTag:       "MismatchedTag",
	UnclosedElement:     "UnclosedElement",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Diagnostic records a single unmet grammar expectation and where it
// happened. It doubles as the failure payload of the parse attempt that
// produced it, so it implements error.
type Diagnostic struct {
	Kind Kind

	// Char is the expected character when Kind is ExpectChar.
	Char rune

	// Detail carries kind-specific context: the tag name for
	// MismatchedTag and UnclosedElement, the block name for
	// ExpectBlockEnd.
	Detail string

	// Pos is the cursor position at the failure point.
	Pos ast.Position
}

// Message returns a human-readable description without the position.
func (d *Diagnostic) Message() string {
	switch d.Kind {
	case ExpectChar:
		return fmt.Sprintf("expected %q", d.Char)
	case MismatchedTag:
		return fmt.Sprintf("mismatched close tag: %s", d.Detail)
	case UnclosedElement:
		return fmt.Sprintf("unclosed element <%s>", d.Detail)
	case ExpectBlockEnd:
		return fmt.Sprintf("expected end of %q block", d.Detail)
	case ExpectAttrName:
		return "expected attribute name"
	case ExpectAttrValue:
		return "expected attribute value"
	case ExpectCloseTag:
		return "expected close tag"
	case ExpectComment:
		return "expected comment"
	case ExpectDirective:
		return "expected directive attribute"
	case ExpectDoctype:
		return "expected doctype"
	case ExpectElement:
		return "expected element"
	case ExpectExpression:
		return "expected expression"
	case ExpectFrontMatter:
		return "expected front matter"
	case ExpectIdentifier:
		return "expected identifier"
	case ExpectInterpolation:
		return "expected interpolation"
	case ExpectSelfCloseTag:
		return "expected self-close tag"
	case ExpectTagName:
		return "expected tag name"
	case ExpectTextNode:
		return "expected text node"
	default:
		return "parse error"
	}
}

// Error implements the error interface: message plus "line:column".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s", d.Message(), d.Pos)
}

// List is the ordered accumulator of diagnostics for one parse.
type List struct {
	diags []Diagnostic
}

// Report appends a diagnostic at the given position and returns it so the
// caller can use it as the failure payload of the current parse attempt.
// The returned value is a copy, not a pointer into the list: Truncate can
// free a slot for a later append, and a still-held payload must not change
// underneath its holder.
func (l *List) Report(kind Kind, pos ast.Position) *Diagnostic {
	return l.report(Diagnostic{Kind: kind, Pos: pos})
}

// ReportChar appends an ExpectChar diagnostic for the given character.
func (l *List) ReportChar(c rune, pos ast.Position) *Diagnostic {
	return l.report(Diagnostic{Kind: ExpectChar, Char: c, Pos: pos})
}

// ReportDetail appends a diagnostic carrying kind-specific detail text.
func (l *List) ReportDetail(kind Kind, detail string, pos ast.Position) *Diagnostic {
	return l.report(Diagnostic{Kind: kind, Detail: detail, Pos: pos})
}

func (l *List) report(d Diagnostic) *Diagnostic {
	l.diags = append(l.diags, d)
	return &d
}

// Len returns the number of accumulated diagnostics.
func (l *List) Len() int {
	return len(l.diags)
}

// Truncate discards diagnostics past the first n. Speculative parse
// attempts record the length before running and truncate back on failure so
// abandoned grammars leave no trace.
func (l *List) Truncate(n int) {
	if n >= 0 && n <= len(l.diags) {
		l.diags = l.diags[:n]
	}
}

// All returns the accumulated diagnostics in report order.
func (l *List) All() []Diagnostic {
	out := make([]Diagnostic, len(l.diags))
	copy(out, l.diags)
	return out
}
