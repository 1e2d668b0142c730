package parser

import (
	"fmt"
	"strings"

	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/diag"
	"github.com/markuplab/tplparse/pkg/dialect"
)

func (p *Parser) parseBlock() (*ast.Block, error) {
	switch p.policy.Blocks {
	case dialect.BlockBraces:
		return p.parseBraceBlock()
	case dialect.BlockTags:
		return p.parseTagBlock()
	default:
		return nil, p.fail(diag.ExpectBlockEnd)
	}
}

// parseBraceBlock consumes a brace-delimited control block:
//
//	{#name head} children {:branch head} children {/name}
//
// Branch arms may repeat; the close tag must carry the opening keyword.
func (p *Parser) parseBraceBlock() (*ast.Block, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral("{#") {
		return nil, p.fail(diag.ExpectBlockEnd)
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	head, headLoc, ok := p.scanBlockHead("}")
	if !ok {
		return nil, p.failDetailAt(diag.ExpectBlockEnd, name, start)
	}

	blk := &ast.Block{Name: name, Head: head, HeadLoc: headLoc}
	var branch *ast.BlockBranch
	branchStart := ast.Position{}

	appendChild := func(n ast.Node) {
		if branch != nil {
			branch.Children = append(branch.Children, n)
			return
		}
		blk.Children = append(blk.Children, n)
	}
	closeBranch := func(end ast.Position) {
		if branch == nil {
			return
		}
		branch.Loc = span(branchStart, end)
		blk.Branches = append(blk.Branches, *branch)
		branch = nil
	}

	for {
		if p.cur.eof() {
			return nil, p.failDetailAt(diag.ExpectBlockEnd, name, start)
		}
		if p.cur.at("{/") {
			closeBranch(p.cur.pos())
			p.cur.advanceBytes(2)
			closePos := p.cur.pos()
			closeName, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if closeName != name {
				return nil, p.failDetailAt(diag.ExpectBlockEnd,
					fmt.Sprintf("expected {/%s}, found {/%s}", name, closeName), closePos)
			}
			if !p.cur.consumeLiteral("}") {
				return nil, p.failChar('}')
			}
			break
		}
		if p.cur.at("{:") {
			bStart := p.cur.pos()
			closeBranch(bStart)
			p.cur.advanceBytes(2)
			bName, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			bHead, bHeadLoc, ok := p.scanBlockHead("}")
			if !ok {
				return nil, p.failDetailAt(diag.ExpectBlockEnd, name, start)
			}
			branch = &ast.BlockBranch{Name: bName, Head: bHead, HeadLoc: bHeadLoc}
			branchStart = bStart
			continue
		}
		child, err := p.parseNode()
		if err != nil {
			if p.errPolicy == PolicyStrict {
				return nil, err
			}
			p.cur.advance()
			continue
		}
		appendChild(child)
	}

	blk.Loc = span(start, p.cur.pos())
	return blk, nil
}

// parseTagBlock consumes a tag-delimited statement:
//
//	{% name head %} children {% elif head %} ... {% endname %}
//
// Keywords outside the paired set are leaf statements with no body and no
// end tag.
func (p *Parser) parseTagBlock() (*ast.Block, error) {
	start := p.cur.pos()
	if !p.cur.consumeLiteral("{%") {
		return nil, p.fail(diag.ExpectBlockEnd)
	}
	p.cur.skipWhitespace()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	head, headLoc, ok := p.scanBlockHead("%}")
	if !ok {
		return nil, p.failDetailAt(diag.ExpectBlockEnd, name, start)
	}

	blk := &ast.Block{Name: name, Head: head, HeadLoc: headLoc}
	if !p.policy.IsBlockKeyword(name) {
		// Leaf statement such as {% set x = 1 %} or {% include "a" %}.
		blk.Loc = span(start, p.cur.pos())
		return blk, nil
	}

	endName := "end" + name
	var branch *ast.BlockBranch
	branchStart := ast.Position{}

	appendChild := func(n ast.Node) {
		if branch != nil {
			branch.Children = append(branch.Children, n)
			return
		}
		blk.Children = append(blk.Children, n)
	}
	closeBranch := func(end ast.Position) {
		if branch == nil {
			return
		}
		branch.Loc = span(branchStart, end)
		blk.Branches = append(blk.Branches, *branch)
		branch = nil
	}

	for {
		if p.cur.eof() {
			return nil, p.failDetailAt(diag.ExpectBlockEnd, endName, start)
		}
		if kw := p.peekTagKeyword(); kw != "" {
			if kw == endName {
				closeBranch(p.cur.pos())
				p.consumeTagOpener()
				if _, _, ok := p.scanBlockHead("%}"); !ok {
					return nil, p.failDetailAt(diag.ExpectBlockEnd, endName, start)
				}
				break
			}
			if p.policy.IsBranchKeyword(kw) {
				bStart := p.cur.pos()
				closeBranch(bStart)
				p.consumeTagOpener()
				bHead, bHeadLoc, ok := p.scanBlockHead("%}")
				if !ok {
					return nil, p.failDetailAt(diag.ExpectBlockEnd, endName, start)
				}
				branch = &ast.BlockBranch{Name: kw, Head: bHead, HeadLoc: bHeadLoc}
				branchStart = bStart
				continue
			}
			if strings.HasPrefix(kw, "end") {
				pos := p.cur.pos()
				return nil, p.failDetailAt(diag.ExpectBlockEnd,
					fmt.Sprintf("expected {%% %s %%}, found {%% %s %%}", endName, kw), pos)
			}
		}
		child, err := p.parseNode()
		if err != nil {
			if p.errPolicy == PolicyStrict {
				return nil, err
			}
			p.cur.advance()
			continue
		}
		appendChild(child)
	}

	blk.Loc = span(start, p.cur.pos())
	return blk, nil
}

// peekTagKeyword returns the keyword of a "{% keyword" opener at the
// cursor without consuming anything, or "" when the cursor is not on one.
func (p *Parser) peekTagKeyword() string {
	rest := p.cur.rest()
	if !strings.HasPrefix(rest, "{%") {
		return ""
	}
	rest = strings.TrimLeft(rest[2:], " \t\r\n")
	i := 0
	for i < len(rest) && isIdentChar(rune(rest[i])) {
		i++
	}
	return rest[:i]
}

// consumeTagOpener consumes "{%", surrounding whitespace and the keyword
// already seen by peekTagKeyword.
func (p *Parser) consumeTagOpener() {
	p.cur.advanceBytes(2)
	p.cur.skipWhitespace()
	for {
		r, ok := p.cur.peek()
		if !ok || !isIdentChar(r) {
			break
		}
		p.cur.advance()
	}
}

// scanBlockHead collects everything up to the closing delimiter, skipping
// over balanced braces so object literals in the head do not end it early.
// The delimiter is consumed; the returned head is trimmed and its span
// covers the untrimmed text.
func (p *Parser) scanBlockHead(close string) (string, ast.Span, bool) {
	start := p.cur.pos()
	depth := 0
	for {
		if p.cur.eof() {
			return "", ast.Span{}, false
		}
		if depth == 0 && p.cur.at(close) {
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
	end := p.cur.pos()
	p.cur.advanceBytes(len(close))
	return strings.TrimSpace(p.cur.src[start.Offset:end.Offset]), span(start, end), true
}

func (p *Parser) parseIdentifier() (string, error) {
	start := p.cur.pos()
	if r, ok := p.cur.peek(); !ok || !isASCIILetter(r) {
		return "", p.fail(diag.ExpectIdentifier)
	}
	for {
		r, ok := p.cur.peek()
		if !ok || !isIdentChar(r) {
			break
		}
		p.cur.advance()
	}
	return p.cur.src[start.Offset:p.cur.pos().Offset], nil
}

func isIdentChar(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9') || r == '_'
}
