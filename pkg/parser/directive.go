package parser

import (
	"strings"

	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
)

// parseDirectiveAttr consumes one directive attribute: either the longhand
// prefix form "v-name:arg.mod" or a shorthand such as ":arg", "@event" or
// "#slot". The value, when present, is a single expression segment. Called
// speculatively, so any failure falls back to the plain attribute grammar.
func (p *Parser) parseDirectiveAttr() (ast.Attribute, error) {
	start := p.cur.pos()
	d := &ast.Directive{}

	r, ok := p.cur.peek()
	if !ok {
		return ast.Attribute{}, p.fail(diag.ExpectDirective)
	}
	switch {
	case r < 0x80 && strings.ContainsRune(p.policy.DirectiveShorthands, r):
		d.Shorthand = byte(r)
		p.cur.advance()
		switch d.Shorthand {
		case ':':
			d.Name = "bind"
		case '@':
			d.Name = "on"
		case '#':
			d.Name = "slot"
		default:
			return ast.Attribute{}, p.fail(diag.ExpectDirective)
		}
		arg, err := p.parseDirectiveName()
		if err != nil {
			return ast.Attribute{}, err
		}
		d.Arg = arg
	case p.policy.DirectivePrefix != "" && p.cur.at(p.policy.DirectivePrefix):
		p.cur.advanceBytes(len(p.policy.DirectivePrefix))
		name, err := p.parseDirectiveName()
		if err != nil {
			return ast.Attribute{}, err
		}
		d.Name = name
		if nxt, ok := p.cur.peek(); ok && nxt == ':' {
			p.cur.advance()
			arg, err := p.parseDirectiveName()
			if err != nil {
				return ast.Attribute{}, err
			}
			d.Arg = arg
		}
	default:
		return ast.Attribute{}, p.fail(diag.ExpectDirective)
	}

	for p.cur.at(".") {
		p.cur.advance()
		mod, err := p.parseDirectiveName()
		if err != nil {
			return ast.Attribute{}, err
		}
		d.Modifiers = append(d.Modifiers, mod)
	}

	nameEnd := p.cur.pos()
	attr := ast.Attribute{
		Name:      p.cur.src[start.Offset:nameEnd.Offset],
		NameLoc:   span(start, nameEnd),
		Directive: d,
	}

	m := p.cur.snapshot()
	p.cur.skipWhitespace()
	if r, ok := p.cur.peek(); !ok || r != '=' {
		p.cur.restore(m)
		attr.Loc = attr.NameLoc
		return attr, nil
	}
	p.cur.advance()
	p.cur.skipWhitespace()

	seg, quote, err := p.parseDirectiveValue()
	if err != nil {
		return ast.Attribute{}, err
	}
	attr.Value = []ast.ValueSegment{seg}
	attr.Quote = quote
	attr.Loc = span(start, p.cur.pos())
	return attr, nil
}

// parseDirectiveValue consumes the value as one expression segment. A
// quoted value scans to the matching quote; an unquoted value stops at the
// usual delimiters.
func (p *Parser) parseDirectiveValue() (ast.ValueSegment, byte, error) {
	r, ok := p.cur.peek()
	if !ok {
		return ast.ValueSegment{}, 0, p.fail(diag.ExpectAttrValue)
	}
	if r == '"' || r == '\'' {
		quote := byte(r)
		p.cur.advance()
		start := p.cur.pos()
		inner, found := p.cur.scanToBefore(string(quote))
		if !found {
			return ast.ValueSegment{}, 0, p.failChar(rune(quote))
		}
		end := p.cur.pos()
		p.cur.advance() // closing quote
		return ast.ValueSegment{
			Kind:    ast.SegmentExpression,
			Content: strings.TrimSpace(inner),
			Loc:     span(start, end),
			Inner:   span(start, end),
		}, quote, nil
	}

	start := p.cur.pos()
	for {
		r, ok := p.cur.peek()
		if !ok || !isUnquotedValueChar(r) {
			break
		}
		p.cur.advance()
	}
	end := p.cur.pos()
	if end.Offset == start.Offset {
		return ast.ValueSegment{}, 0, p.fail(diag.ExpectAttrValue)
	}
	inner := p.cur.src[start.Offset:end.Offset]
	return ast.ValueSegment{
		Kind:    ast.SegmentExpression,
		Content: strings.TrimSpace(inner),
		Loc:     span(start, end),
		Inner:   span(start, end),
	}, 0, nil
}

// parseDirectiveName consumes a directive, argument or modifier name:
// letters, digits, "-" and "_".
func (p *Parser) parseDirectiveName() (string, error) {
	start := p.cur.pos()
	for {
		r, ok := p.cur.peek()
		if !ok || !(isIdentChar(r) || r == '-') {
			break
		}
		p.cur.advance()
	}
	end := p.cur.pos()
	if end.Offset == start.Offset {
		return "", p.fail(diag.ExpectDirective)
	}
	return p.cur.src[start.Offset:end.Offset], nil
}
