package parser

import (
	"testing"
)

func TestCursor_AdvanceTracksLineAndColumn(t *testing.T) {
	c := newCursor("ab\ncd")

	if got := c.pos(); got.Line != 1 || got.Column != 1 || got.Offset != 0 {
		t.Fatalf("start pos = %v", got)
	}

	c.advance() // a
	c.advance() // b
	if got := c.pos(); got.Line != 1 || got.Column != 3 {
		t.Errorf("after ab: %v", got)
	}

	c.advance() // newline
	if got := c.pos(); got.Line != 2 || got.Column != 1 || got.Offset != 3 {
		t.Errorf("after newline: %v", got)
	}
}

func TestCursor_ColumnCountsUTF16Units(t *testing.T) {
	// U+1F600 occupies four bytes but two UTF-16 code units; U+4E2D
	// occupies three bytes but one unit.
	c := newCursor("\U0001F600中a")

	c.advance()
	if got := c.pos(); got.Column != 3 || got.Offset != 4 {
		t.Errorf("after astral rune: %v", got)
	}

	c.advance()
	if got := c.pos(); got.Column != 4 || got.Offset != 7 {
		t.Errorf("after BMP rune: %v", got)
	}
}

func TestCursor_SnapshotRestore(t *testing.T) {
	c := newCursor("abc\ndef")
	c.advance()
	m := c.snapshot()

	c.advance()
	c.advance()
	c.advance()
	if got := c.pos(); got.Line != 2 {
		t.Fatalf("expected line 2, got %v", got)
	}

	c.restore(m)
	if got := c.pos(); got.Offset != 1 || got.Line != 1 || got.Column != 2 {
		t.Errorf("restore mismatch: %v", got)
	}
}

func TestCursor_ConsumeLiteral(t *testing.T) {
	c := newCursor("{{x}}")

	if c.consumeLiteral("{%") {
		t.Error("consumed a literal that does not match")
	}
	if got := c.pos().Offset; got != 0 {
		t.Errorf("failed consume moved the cursor to %d", got)
	}
	if !c.consumeLiteral("{{") {
		t.Error("did not consume matching literal")
	}
	if got := c.pos().Offset; got != 2 {
		t.Errorf("offset after consume = %d", got)
	}
}

func TestCursor_ScanTo(t *testing.T) {
	c := newCursor("abc-->rest")
	skipped, found := c.scanToAfter("-->")
	if !found || skipped != "abc" {
		t.Errorf("scanToAfter = %q, %v", skipped, found)
	}
	if c.rest() != "rest" {
		t.Errorf("rest = %q", c.rest())
	}

	c = newCursor("no terminator")
	skipped, found = c.scanToBefore("-->")
	if found || skipped != "no terminator" || !c.eof() {
		t.Errorf("missing needle: %q, %v, eof=%v", skipped, found, c.eof())
	}
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	c := newCursor("xy")

	r, ok := c.peek()
	if !ok || r != 'x' {
		t.Fatalf("peek = %q, %v", r, ok)
	}
	if c.pos().Offset != 0 {
		t.Error("peek moved the cursor")
	}
	if la := c.peekN(2); la != "xy" {
		t.Errorf("peekN(2) = %q", la)
	}
	if !c.at("xy") || c.at("yx") {
		t.Error("at mismatch")
	}
}

func TestCursor_SkipWhitespace(t *testing.T) {
	c := newCursor(" \t\n \nx")
	if nl := c.skipWhitespace(); nl != 2 {
		t.Errorf("newlines = %d", nl)
	}
	if r, _ := c.peek(); r != 'x' {
		t.Errorf("stopped at %q", r)
	}
}
