package ast

import "fmt"

// Position locates a single point in the source text.
type Position struct {
	// Offset is the byte index from the start of the source (0-based).
	Offset uint32

	// Line is the 1-based line number.
	Line uint32

	// Column is the 1-based column number, counted in UTF-16 code units
	// within the line for editor-tool compatibility.
	Column uint32
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes before other in the source.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is the half-open source range [Start.Offset, End.Offset) covered by
// a node or attribute. End.Offset is always >= Start.Offset and both ends
// lie within the source bounds.
type Span struct {
	Start Position
	End   Position
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return int(s.End.Offset) - int(s.Start.Offset)
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start.Offset == s.End.Offset
}

// Contains returns true if the given byte offset is within this span.
func (s Span) Contains(offset uint32) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Encloses returns true if other lies entirely within this span.
func (s Span) Encloses(other Span) bool {
	return other.Start.Offset >= s.Start.Offset && other.End.Offset <= s.End.Offset
}

// Text returns the slice of source covered by this span.
func (s Span) Text(source string) string {
	if int(s.End.Offset) > len(source) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return source[s.Start.Offset:s.End.Offset]
}
