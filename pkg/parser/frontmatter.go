package parser

import (
	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
)

// parseFrontMatter consumes a "---" fenced prelude at the very start of the
// input. The body is script code, so the closing fence is only recognized
// at the start of a line while outside strings, comments and brackets; a
// "---" inside a template literal stays part of the body.
func (p *Parser) parseFrontMatter() (*ast.FrontMatter, error) {
	if p.frontMatterSeen {
		return nil, p.fail(diag.ExpectFrontMatter)
	}
	start := p.cur.pos()
	if !p.cur.consumeLiteral("---") {
		return nil, p.fail(diag.ExpectFrontMatter)
	}
	innerStart := p.cur.pos()

	var quote rune
	escaped := false
	lineComment := false
	blockComment := false
	depth := 0

	for {
		if p.cur.eof() {
			return nil, p.failAt(diag.ExpectFrontMatter, start)
		}
		if quote == 0 && !lineComment && !blockComment && depth == 0 &&
			p.cur.pos().Column == 1 && p.cur.at("---") {
			break
		}
		r, _ := p.cur.advance()
		switch {
		case lineComment:
			if r == '\n' {
				lineComment = false
			}
		case blockComment:
			if r == '*' {
				if nxt, ok := p.cur.peek(); ok && nxt == '/' {
					p.cur.advance()
					blockComment = false
				}
			}
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
		default:
			switch r {
			case '\'', '"', '`':
				quote = r
			case '/':
				if nxt, ok := p.cur.peek(); ok {
					if nxt == '/' {
						p.cur.advance()
						lineComment = true
					} else if nxt == '*' {
						p.cur.advance()
						blockComment = true
					}
				}
			case '{', '[', '(':
				depth++
			case '}', ']', ')':
				if depth > 0 {
					depth--
				}
			}
		}
	}

	innerEnd := p.cur.pos()
	p.cur.advanceBytes(3)
	p.frontMatterSeen = true
	return &ast.FrontMatter{
		Raw:   p.cur.src[innerStart.Offset:innerEnd.Offset],
		Inner: span(innerStart, innerEnd),
		Loc:   span(start, p.cur.pos()),
	}, nil
}
