package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/markuplab/tplparse/internal/logging"
	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
)

// parseElement consumes one element: open tag, attributes, children, close
// tag. Self-closing and void elements return immediately after the open
// tag; raw-text elements capture their body verbatim.
func (p *Parser) parseElement() (*ast.Element, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral("<") {
		return nil, p.fail(diag.ExpectElement)
	}
	name, err := p.parseTagName()
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parse element", logging.FieldTag, name, logging.FieldOffset, start.Offset)

	el := &ast.Element{Name: name, FirstAttrSameLine: true}

attrs:
	for {
		r, ok := p.cur.peek()
		if !ok {
			return nil, p.failDetail(diag.UnclosedElement, name)
		}
		switch {
		case r == '/':
			p.cur.advance()
			if !p.cur.consumeLiteral(">") {
				return nil, p.fail(diag.ExpectSelfCloseTag)
			}
			el.SelfClosing = true
			el.Void = p.policy.IsVoidElement(name)
			el.Loc = span(start, p.cur.pos())
			return el, nil
		case r == '>':
			p.cur.advance()
			break attrs
		case r == '\n':
			if len(el.Attrs) == 0 {
				el.FirstAttrSameLine = false
			}
			p.cur.advance()
		case isWhitespace(r):
			p.cur.advance()
		default:
			attr, err := p.parseAttr()
			if err != nil {
				return nil, err
			}
			el.Attrs = append(el.Attrs, attr)
		}
	}

	if p.policy.IsVoidElement(name) {
		el.Void = true
		el.Loc = span(start, p.cur.pos())
		return el, nil
	}

	if p.policy.IsRawTextElement(name) {
		if text := p.scanRawText(name); text != nil {
			el.Children = append(el.Children, text)
		}
		if err := p.consumeCloseTag(name); err != nil {
			return nil, err
		}
		el.Loc = span(start, p.cur.pos())
		return el, nil
	}

	for {
		if p.cur.eof() {
			return nil, p.failDetail(diag.UnclosedElement, name)
		}
		if p.cur.at("</") {
			if err := p.consumeCloseTag(name); err != nil {
				return nil, err
			}
			break
		}
		child, err := p.parseNode()
		if err != nil {
			if p.errPolicy == PolicyStrict {
				return nil, err
			}
			p.cur.advance()
			continue
		}
		el.Children = append(el.Children, child)
	}

	el.Loc = span(start, p.cur.pos())
	return el, nil
}

// parseTagName consumes a tag name using the dialect's character set. Two
// dialect hooks apply: fragments leave the name empty when "<" is directly
// followed by ">", and tag-name interpolation splices a whole interpolation
// construct into the name verbatim.
func (p *Parser) parseTagName() (string, error) {
	if p.policy.AllowsFragment {
		if r, ok := p.cur.peek(); ok && r == '>' {
			return "", nil
		}
	}
	var sb strings.Builder
	for {
		if p.policy.TagNameInterpolation && p.policy.HasInterpolation() && p.cur.at(p.policy.ExprOpen) {
			expr, err := p.parseExpression()
			if err != nil {
				return "", err
			}
			sb.WriteString(expr.Loc.Text(p.cur.src))
			continue
		}
		r, ok := p.cur.peek()
		if !ok || !p.policy.IsTagNameChar(r) {
			break
		}
		sb.WriteRune(r)
		p.cur.advance()
	}
	if sb.Len() == 0 {
		return "", p.fail(diag.ExpectTagName)
	}
	return sb.String(), nil
}

// consumeCloseTag consumes "</name>" for the given open tag. Matching is
// case-insensitive; whitespace may precede ">".
func (p *Parser) consumeCloseTag(name string) error {
	if !p.cur.consumeLiteral("</") {
		return p.fail(diag.ExpectCloseTag)
	}
	if name == "" {
		// Fragment close: "</>".
		p.cur.skipWhitespace()
		if !p.cur.consumeLiteral(">") {
			return p.fail(diag.ExpectCloseTag)
		}
		return nil
	}
	namePos := p.cur.pos()
	closeName, err := p.parseTagName()
	if err != nil {
		return err
	}
	if !strings.EqualFold(closeName, name) {
		return p.failDetailAt(diag.MismatchedTag,
			fmt.Sprintf("expected </%s>, found </%s>", name, closeName), namePos)
	}
	p.cur.skipWhitespace()
	if !p.cur.consumeLiteral(">") {
		return p.fail(diag.ExpectCloseTag)
	}
	return nil
}

// scanRawText captures the body of a raw-text element verbatim up to the
// matching case-insensitive close tag, which is left unconsumed. For
// nestable raw-text tags a depth counter keeps an inner same-named open tag
// from letting its close tag terminate the outer element early. Returns nil
// for an empty body.
func (p *Parser) scanRawText(name string) *ast.Text {
	start := p.cur.pos()
	nestable := p.policy.IsNestableRawText(name)
	depth := 0
	lineBreaks := 0
	for !p.cur.eof() {
		if p.cur.at("</") && p.tagFollows(2, name) {
			if depth == 0 {
				break
			}
			depth--
			p.cur.advanceBytes(2 + len(name))
			continue
		}
		if nestable && p.cur.at("<") && p.tagFollows(1, name) {
			depth++
			p.cur.advanceBytes(1 + len(name))
			continue
		}
		r, _ := p.cur.advance()
		if r == '\n' {
			lineBreaks++
		}
	}
	end := p.cur.pos()
	if end.Offset == start.Offset {
		return nil
	}
	return &ast.Text{
		Raw:        p.cur.src[start.Offset:end.Offset],
		LineBreaks: lineBreaks,
		Loc:        span(start, end),
	}
}

// tagFollows reports whether the case-insensitive tag name occurs skip
// bytes ahead of the cursor, followed by a character that ends a tag name.
func (p *Parser) tagFollows(skip int, name string) bool {
	rest := p.cur.rest()
	if len(rest) < skip+len(name) {
		return false
	}
	if !strings.EqualFold(rest[skip:skip+len(name)], name) {
		return false
	}
	tail := rest[skip+len(name):]
	if tail == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(tail)
	return r == '>' || r == '/' || isWhitespace(r)
}
