package ast

// SegmentKind classifies one piece of an attribute value.
type SegmentKind uint8

const (
	// SegmentStatic is literal text.
	SegmentStatic SegmentKind = iota

	// SegmentExpression is an embedded interpolation.
	SegmentExpression
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	if k == SegmentExpression {
		return "Expression"
	}
	return "Static"
}

// ValueSegment is one piece of an attribute value. Segments are contiguous
// and non-overlapping; concatenating their spans reconstructs the original
// value text exactly.
type ValueSegment struct {
	Kind SegmentKind

	// Content is the literal text for static segments and the trimmed
	// interior for expression segments.
	Content string

	// Loc covers the whole segment including any delimiters. Inner is
	// only set for expression segments and covers the interior between
	// the delimiters.
	Loc   Span
	Inner Span
}

// Directive is the parsed head of a dialect directive attribute, e.g.
// v-on:click.stop="handler" carries {Name: "on", Arg: "click",
// Modifiers: ["stop"]}. The bound expression lives in the owning
// Attribute's value segments.
type Directive struct {
	// Name is the directive name without the dialect prefix.
	Name string

	// Arg is the optional argument after ":" (empty if absent).
	Arg string

	// Modifiers are the optional trailing ".mod" names, in order.
	Modifiers []string

	// Shorthand is the shorthand sigil used instead of the full prefix
	// (':', '@', '#'), or 0 when the longhand form was written.
	Shorthand byte
}

// Attribute is a single name/value pair on an element's opening tag.
type Attribute struct {
	Name string

	// NameLoc covers just the name.
	NameLoc Span

	// Value is nil for bare boolean attributes. A plain literal value is
	// a single static segment; values mixing literal text and
	// interpolations hold alternating segments.
	Value []ValueSegment

	// Quote is the quote character surrounding the value ('"' or '\''),
	// or 0 for unquoted and valueless attributes.
	Quote byte

	// Directive is non-nil when the dialect's directive grammar matched
	// this attribute.
	Directive *Directive

	Loc Span
}

// HasValue reports whether the attribute carries a value, including an
// empty quoted one.
func (a *Attribute) HasValue() bool {
	return a.Value != nil
}

// IsDirective reports whether the dialect directive grammar matched.
func (a *Attribute) IsDirective() bool {
	return a.Directive != nil
}
