// Package ast defines the span-annotated syntax tree produced by the
// template parser. Node kinds form a closed set: consumers dispatch with a
// type switch (or on Kind) rather than through virtual methods. The tree is
// built in a single pass and never mutated afterwards.
package ast

// NodeKind classifies the type of an AST node.
type NodeKind uint8

// Node kinds. The dialect-gated kinds (doctype, front matter, block) only
// appear in trees parsed with a dialect that enables them.
const (
	KindRoot NodeKind = iota
	KindElement
	KindText
	KindComment
	KindExpression
	KindDoctype
	KindFrontMatter
	KindBlock
)

var nodeKindNames = [...]string{
	KindRoot:        "Root",
	KindElement:     "Element",
	KindText:        "Text",
	KindComment:     "Comment",
	KindExpression:  "Expression",
	KindDoctype:     "Doctype",
	KindFrontMatter: "FrontMatter",
	KindBlock:       "Block",
}

// String returns the node kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	node() // marker method closing the variant set

	// Kind identifies the variant without a type assertion.
	Kind() NodeKind

	// Span returns the source range covered by the node.
	Span() Span
}

// Root is the top of a parsed document: an ordered sequence of top-level
// nodes whose span covers the whole input.
type Root struct {
	Children []Node
	Loc      Span
}

func (r *Root) node()          {}
func (r *Root) Kind() NodeKind { return KindRoot }
func (r *Root) Span() Span     { return r.Loc }

// Element is a markup element such as <div> or <my-component/>.
type Element struct {
	// Name is the tag name as written. Open/close pairing is
	// case-insensitive, so the recorded casing is the opening tag's.
	Name string

	Attrs    []Attribute
	Children []Node

	// SelfClosing is set for explicit "/>" syntax.
	SelfClosing bool

	// Void is set when the dialect knows the tag as an empty element
	// (e.g. <img>). Void elements never have a close tag, with or
	// without the "/"; the two flags are independent.
	Void bool

	// FirstAttrSameLine records whether the first attribute appeared on
	// the same line as the tag name. Layout hint for formatters; true
	// for attribute-less elements.
	FirstAttrSameLine bool

	Loc Span
}

func (e *Element) node()          {}
func (e *Element) Kind() NodeKind { return KindElement }
func (e *Element) Span() Span     { return e.Loc }

// Text is a run of literal content, recorded exactly as it appeared with no
// un-escaping.
type Text struct {
	Raw string

	// LineBreaks counts the newlines embedded in Raw.
	LineBreaks int

	Loc Span
}

func (t *Text) node()          {}
func (t *Text) Kind() NodeKind { return KindText }
func (t *Text) Span() Span     { return t.Loc }

// Comment is the verbatim interior of a <!-- --> comment (or the dialect's
// equivalent, e.g. Jinja's {# #}).
type Comment struct {
	Raw string
	Loc Span
}

func (c *Comment) node()          {}
func (c *Comment) Kind() NodeKind { return KindComment }
func (c *Comment) Span() Span     { return c.Loc }

// Expression is an embedded interpolation such as {{ total + 1 }}.
type Expression struct {
	// Content is the interior with surrounding whitespace trimmed.
	Content string

	// Loc covers the whole construct including delimiters; Inner covers
	// only the interior between them.
	Loc   Span
	Inner Span
}

func (e *Expression) node()          {}
func (e *Expression) Kind() NodeKind { return KindExpression }
func (e *Expression) Span() Span     { return e.Loc }

// Doctype is a <!DOCTYPE ...> declaration. Dialect-gated.
type Doctype struct {
	// Keyword is the doctype keyword as written (e.g. "DOCTYPE").
	Keyword string

	// Declaration is the trimmed text between the keyword and ">".
	Declaration string

	Loc Span
}

func (d *Doctype) node()          {}
func (d *Doctype) Kind() NodeKind { return KindDoctype }
func (d *Doctype) Span() Span     { return d.Loc }

// FrontMatter is a fenced prelude preceding the markup body, delimited by
// top-level "---" fences. Dialect-gated.
type FrontMatter struct {
	// Raw is the verbatim interior between the fences.
	Raw string

	// Loc covers both fences; Inner covers only the interior.
	Loc   Span
	Inner Span
}

func (f *FrontMatter) node()          {}
func (f *FrontMatter) Kind() NodeKind { return KindFrontMatter }
func (f *FrontMatter) Span() Span     { return f.Loc }

// Block is a dialect control-flow construct: {#if}/{#each}/{#snippet} in
// brace-block dialects, {% if %}/{% for %} in tag-block dialects. It follows
// the element shape plus a parsed head expression and optional branch arms.
type Block struct {
	// Name is the block keyword: "if", "each", "for", "snippet", ...
	Name string

	// Head is the trimmed head expression following the keyword.
	Head string

	// HeadLoc covers the untrimmed head text.
	HeadLoc Span

	// Children are the nodes of the primary arm, before any branch.
	Children []Node

	// Branches are the ordered secondary arms ({:else if}, {:else},
	// {% elif %}, {% else %}, {:then}, {:catch}).
	Branches []BlockBranch

	Loc Span
}

func (b *Block) node()          {}
func (b *Block) Kind() NodeKind { return KindBlock }
func (b *Block) Span() Span     { return b.Loc }

// BlockBranch is one secondary arm of a Block.
type BlockBranch struct {
	// Name is the branch keyword: "else", "then", "catch", "elif".
	Name string

	// Head is the trimmed text after the keyword ("if x > 1" for an
	// {:else if x > 1} arm, empty for a bare {:else}).
	Head string

	HeadLoc  Span
	Children []Node
	Loc      Span
}
