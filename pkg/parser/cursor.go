package parser

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/markuplab/tplparse/pkg/ast"
)

// cursor owns the source text and the current position (byte offset, line,
// column). It never fails: absence of a match is signalled to the caller by
// a false return, and the caller decides whether that is an error.
type cursor struct {
	src  string
	off  int
	line int
	col  int
}

func newCursor(src string) *cursor {
	return &cursor{src: src, line: 1, col: 1}
}

// mark is an O(1) snapshot of the cursor position: three integers over an
// immutable source, so backtracking never clones anything.
type mark struct {
	off, line, col int
}

func (c *cursor) snapshot() mark {
	return mark{c.off, c.line, c.col}
}

func (c *cursor) restore(m mark) {
	c.off, c.line, c.col = m.off, m.line, m.col
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

func (c *cursor) rest() string {
	return c.src[c.off:]
}

func (c *cursor) pos() ast.Position {
	return ast.Position{Offset: uint32(c.off), Line: uint32(c.line), Column: uint32(c.col)}
}

// peek returns the next character without consuming it.
func (c *cursor) peek() (rune, bool) {
	if c.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.off:])
	return r, true
}

// peekN returns up to n characters of lookahead without consuming them.
func (c *cursor) peekN(n int) string {
	end := c.off
	for i := 0; i < n && end < len(c.src); i++ {
		_, size := utf8.DecodeRuneInString(c.src[end:])
		end += size
	}
	return c.src[c.off:end]
}

// at reports whether the source continues with s at the current position.
func (c *cursor) at(s string) bool {
	return strings.HasPrefix(c.rest(), s)
}

// advance consumes one character. A newline starts the next line and resets
// the column; any other character widens the column by its UTF-16 width.
func (c *cursor) advance() (rune, bool) {
	if c.eof() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col += utf16Width(r)
	}
	return r, true
}

func utf16Width(r rune) int {
	if utf16.RuneLen(r) == 2 {
		return 2
	}
	return 1
}

// advanceBytes consumes exactly n bytes, keeping line/column bookkeeping.
func (c *cursor) advanceBytes(n int) {
	end := c.off + n
	if end > len(c.src) {
		end = len(c.src)
	}
	for c.off < end {
		c.advance()
	}
}

// consumeLiteral consumes s only if it matches at the current position.
func (c *cursor) consumeLiteral(s string) bool {
	if !c.at(s) {
		return false
	}
	c.advanceBytes(len(s))
	return true
}

// scanToBefore searches for needle from the current position and leaves the
// cursor just before it, returning the skipped slice. When needle is absent
// the cursor consumes to end of input and found is false.
func (c *cursor) scanToBefore(needle string) (skipped string, found bool) {
	start := c.off
	i := strings.Index(c.rest(), needle)
	if i < 0 {
		c.advanceBytes(len(c.src) - c.off)
		return c.src[start:], false
	}
	c.advanceBytes(i)
	return c.src[start:c.off], true
}

// scanToAfter is scanToBefore but also consumes the needle itself.
func (c *cursor) scanToAfter(needle string) (skipped string, found bool) {
	skipped, found = c.scanToBefore(needle)
	if found {
		c.advanceBytes(len(needle))
	}
	return skipped, found
}

// skipWhitespace consumes contiguous whitespace and returns how many
// newlines it crossed.
func (c *cursor) skipWhitespace() int {
	newlines := 0
	for {
		r, ok := c.peek()
		if !ok || !isWhitespace(r) {
			break
		}
		if r == '\n' {
			newlines++
		}
		c.advance()
	}
	return newlines
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
