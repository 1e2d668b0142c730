package parser

import (
	"strings"

	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
)

// parseText consumes a run of plain text. The first character is taken
// unconditionally so that stray markup characters the dispatch could not
// place still land in a text node instead of looping forever.
func (p *Parser) parseText() (*ast.Text, error) {
	start := p.cur.pos()
	r, ok := p.cur.advance()
	if !ok {
		return nil, p.fail(diag.ExpectTextNode)
	}
	lineBreaks := 0
	if r == '\n' {
		lineBreaks++
	}
	for !p.cur.eof() {
		if p.policy.TerminatesText(p.cur.peekN(2)) {
			break
		}
		r, _ = p.cur.advance()
		if r == '\n' {
			lineBreaks++
		}
	}
	end := p.cur.pos()
	return &ast.Text{
		Raw:        p.cur.src[start.Offset:end.Offset],
		LineBreaks: lineBreaks,
		Loc:        span(start, end),
	}, nil
}

// parseExpression consumes one interpolation. The body is scanned with a
// brace counter so object and block literals inside the expression do not
// end it early; an unbalanced "}" is treated as content when the dialect's
// closer is longer than one brace.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral(p.policy.ExprOpen) {
		return nil, p.fail(diag.ExpectInterpolation)
	}
	innerStart := p.cur.pos()
	depth := 0
	for {
		if p.cur.eof() {
			return nil, p.failAt(diag.ExpectExpression, start)
		}
		if depth == 0 && p.cur.at(p.policy.ExprClose) {
			break
		}
		r, _ := p.cur.advance()
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	innerEnd := p.cur.pos()
	p.cur.advanceBytes(len(p.policy.ExprClose))
	return &ast.Expression{
		Content: strings.TrimSpace(p.cur.src[innerStart.Offset:innerEnd.Offset]),
		Inner:   span(innerStart, innerEnd),
		Loc:     span(start, p.cur.pos()),
	}, nil
}

// parseComment consumes an HTML comment. An unterminated comment swallows
// the rest of the input and reports exactly once.
func (p *Parser) parseComment() (*ast.Comment, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral("<!--") {
		return nil, p.fail(diag.ExpectComment)
	}
	raw, found := p.cur.scanToAfter("-->")
	if !found {
		return nil, p.failAt(diag.ExpectComment, start)
	}
	return &ast.Comment{Raw: raw, Loc: span(start, p.cur.pos())}, nil
}

// parseDialectComment consumes a template-language comment such as
// "{# ... #}".
func (p *Parser) parseDialectComment() (*ast.Comment, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral(p.policy.DialectCommentOpen) {
		return nil, p.fail(diag.ExpectComment)
	}
	raw, found := p.cur.scanToAfter(p.policy.DialectCommentClose)
	if !found {
		return nil, p.failAt(diag.ExpectComment, start)
	}
	return &ast.Comment{Raw: raw, Loc: span(start, p.cur.pos())}, nil
}

// parseDoctype consumes "<!keyword declaration>". Only called
// speculatively, so a non-doctype "<!" bang falls back to text.
func (p *Parser) parseDoctype() (*ast.Doctype, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral("<!") {
		return nil, p.fail(diag.ExpectDoctype)
	}
	kwStart := p.cur.pos()
	for {
		r, ok := p.cur.peek()
		if !ok || !isASCIILetter(r) {
			break
		}
		p.cur.advance()
	}
	keyword := p.cur.src[kwStart.Offset:p.cur.pos().Offset]
	if !strings.EqualFold(keyword, "doctype") {
		return nil, p.failAt(diag.ExpectDoctype, kwStart)
	}
	decl, found := p.cur.scanToBefore(">")
	if !found {
		return nil, p.failAt(diag.ExpectDoctype, start)
	}
	p.cur.advance() // ">"
	return &ast.Doctype{
		Keyword:     keyword,
		Declaration: strings.TrimSpace(decl),
		Loc:         span(start, p.cur.pos()),
	}, nil
}
