package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markuplab/tplparse/pkg/ast"
)

func pos(offset uint32) ast.Position {
	return ast.Position{Offset: offset, Line: 1, Column: offset + 1}
}

func TestPosition_String(t *testing.T) {
	p := ast.Position{Offset: 10, Line: 3, Column: 7}
	assert.Equal(t, "3:7", p.String())
}

func TestPosition_Before(t *testing.T) {
	assert.True(t, pos(1).Before(pos(2)))
	assert.False(t, pos(2).Before(pos(1)))
	assert.False(t, pos(2).Before(pos(2)))
}

func TestSpan_LenAndEmpty(t *testing.T) {
	s := ast.Span{Start: pos(2), End: pos(6)}
	assert.Equal(t, 4, s.Len())
	assert.False(t, s.IsEmpty())

	empty := ast.Span{Start: pos(3), End: pos(3)}
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.IsEmpty())
}

func TestSpan_Contains(t *testing.T) {
	s := ast.Span{Start: pos(2), End: pos(5)}
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5), "spans are half-open")
}

func TestSpan_Encloses(t *testing.T) {
	outer := ast.Span{Start: pos(0), End: pos(10)}
	inner := ast.Span{Start: pos(2), End: pos(8)}
	assert.True(t, outer.Encloses(inner))
	assert.True(t, outer.Encloses(outer))
	assert.False(t, inner.Encloses(outer))
}

func TestSpan_Text(t *testing.T) {
	source := "<div>hello</div>"
	s := ast.Span{Start: pos(5), End: pos(10)}
	assert.Equal(t, "hello", s.Text(source))

	oob := ast.Span{Start: pos(5), End: pos(99)}
	assert.Empty(t, oob.Text(source))
}

func TestNodeKind_String(t *testing.T) {
	assert.Equal(t, "Element", ast.KindElement.String())
	assert.Equal(t, "FrontMatter", ast.KindFrontMatter.String())
}

func TestAttribute_Helpers(t *testing.T) {
	bare := ast.Attribute{Name: "disabled"}
	assert.False(t, bare.HasValue())
	assert.False(t, bare.IsDirective())

	valued := ast.Attribute{
		Name:  "class",
		Value: []ast.ValueSegment{{Kind: ast.SegmentStatic, Content: "a"}},
	}
	assert.True(t, valued.HasValue())

	directive := ast.Attribute{
		Name:      ":href",
		Directive: &ast.Directive{Name: "bind", Arg: "href", Shorthand: ':'},
	}
	assert.True(t, directive.IsDirective())
}
