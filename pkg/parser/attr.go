package parser

import (
	"strings"

	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
)

// parseAttr consumes one attribute. Dialects with directive syntax get a
// speculative directive parse first; a failed attempt backtracks cleanly to
// the plain attribute grammar.
func (p *Parser) parseAttr() (ast.Attribute, error) {
	if p.policy.HasDirectives() {
		if attr, ok := p.speculateAttr(p.parseDirectiveAttr); ok {
			return attr, nil
		}
	}
	return p.parseNativeAttr()
}

// speculateAttr runs an attribute parse that may fail without committing
// the cursor or any diagnostics.
func (p *Parser) speculateAttr(f func() (ast.Attribute, error)) (ast.Attribute, bool) {
	m := p.cur.snapshot()
	n := p.diags.Len()
	attr, err := f()
	if err != nil {
		p.cur.restore(m)
		p.diags.Truncate(n)
		return ast.Attribute{}, false
	}
	return attr, true
}

func (p *Parser) parseNativeAttr() (ast.Attribute, error) {
	start := p.cur.pos()
	name, err := p.parseAttrName()
	if err != nil {
		return ast.Attribute{}, err
	}
	attr := ast.Attribute{
		Name:    name,
		NameLoc: span(start, p.cur.pos()),
	}

	// Whitespace around "=" is tolerated, but a bare attribute followed by
	// whitespace and a non-"=" character must not eat that whitespace.
	m := p.cur.snapshot()
	p.cur.skipWhitespace()
	if r, ok := p.cur.peek(); !ok || r != '=' {
		p.cur.restore(m)
		attr.Loc = attr.NameLoc
		return attr, nil
	}
	p.cur.advance()
	p.cur.skipWhitespace()

	segs, quote, err := p.parseAttrValue()
	if err != nil {
		return ast.Attribute{}, err
	}
	attr.Value = segs
	attr.Quote = quote
	attr.Loc = span(start, p.cur.pos())
	return attr, nil
}

func (p *Parser) parseAttrName() (string, error) {
	start := p.cur.pos()
	for {
		r, ok := p.cur.peek()
		if !ok || !p.policy.IsAttrNameChar(r) {
			break
		}
		p.cur.advance()
	}
	end := p.cur.pos()
	if end.Offset == start.Offset {
		return "", p.fail(diag.ExpectAttrName)
	}
	return p.cur.src[start.Offset:end.Offset], nil
}

// parseAttrValue consumes a quoted or unquoted attribute value and returns
// its segments plus the quote character (0 for unquoted).
func (p *Parser) parseAttrValue() ([]ast.ValueSegment, byte, error) {
	r, ok := p.cur.peek()
	if !ok {
		return nil, 0, p.fail(diag.ExpectAttrValue)
	}
	if r == '"' || r == '\'' {
		segs, err := p.parseQuotedValue(byte(r))
		return segs, byte(r), err
	}
	segs, err := p.parseUnquotedValue()
	return segs, 0, err
}

// parseQuotedValue consumes a value delimited by quote. The value is split
// into alternating static and expression segments whose spans concatenate
// back to the raw value; an empty value yields one empty static segment.
func (p *Parser) parseQuotedValue(quote byte) ([]ast.ValueSegment, error) {
	p.cur.advance() // opening quote
	var segs []ast.ValueSegment
	segStart := p.cur.pos()

	flush := func(end ast.Position) {
		if end.Offset == segStart.Offset {
			return
		}
		segs = append(segs, ast.ValueSegment{
			Kind:    ast.SegmentStatic,
			Content: p.cur.src[segStart.Offset:end.Offset],
			Loc:     span(segStart, end),
		})
	}

	for {
		if p.cur.eof() {
			return nil, p.failChar(rune(quote))
		}
		r, _ := p.cur.peek()
		if byte(r) == quote && r < 0x80 {
			end := p.cur.pos()
			flush(end)
			p.cur.advance() // closing quote
			if len(segs) == 0 {
				segs = append(segs, ast.ValueSegment{
					Kind: ast.SegmentStatic,
					Loc:  span(end, end),
				})
			}
			return segs, nil
		}
		if p.policy.HasInterpolation() && p.cur.at(p.policy.ExprOpen) {
			flush(p.cur.pos())
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.ValueSegment{
				Kind:    ast.SegmentExpression,
				Content: expr.Content,
				Loc:     expr.Loc,
				Inner:   expr.Inner,
			})
			segStart = p.cur.pos()
			continue
		}
		p.cur.advance()
	}
}

// parseUnquotedValue consumes a bare value up to whitespace or a tag
// delimiter. Dialects that allow it may embed interpolations.
func (p *Parser) parseUnquotedValue() ([]ast.ValueSegment, error) {
	var segs []ast.ValueSegment
	segStart := p.cur.pos()

	flush := func(end ast.Position) {
		if end.Offset == segStart.Offset {
			return
		}
		segs = append(segs, ast.ValueSegment{
			Kind:    ast.SegmentStatic,
			Content: p.cur.src[segStart.Offset:end.Offset],
			Loc:     span(segStart, end),
		})
	}

	for {
		if p.policy.UnquotedInterpolation && p.policy.HasInterpolation() && p.cur.at(p.policy.ExprOpen) {
			flush(p.cur.pos())
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.ValueSegment{
				Kind:    ast.SegmentExpression,
				Content: expr.Content,
				Loc:     expr.Loc,
				Inner:   expr.Inner,
			})
			segStart = p.cur.pos()
			continue
		}
		r, ok := p.cur.peek()
		if !ok || !isUnquotedValueChar(r) {
			break
		}
		p.cur.advance()
	}
	flush(p.cur.pos())
	if len(segs) == 0 {
		return nil, p.fail(diag.ExpectAttrValue)
	}
	return segs, nil
}

func isUnquotedValueChar(r rune) bool {
	if isWhitespace(r) {
		return false
	}
	return !strings.ContainsRune(`"'=<>`+"`", r)
}
