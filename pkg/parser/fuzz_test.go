package parser_test

import (
	"testing"

	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/dialect"
	"github.com/markuplab/tplparse/pkg/parser"
)

// FuzzParse fuzzes the full parser across every dialect with random input.
func FuzzParse(f *testing.F) {
	// Add seed corpus.
	seeds := []string{
		"",
		"plain text",
		"<div>hello</div>",
		"<input/>",
		"<img src=\"a.png\">",
		"<script>if (a<b) {}</script>",
		"<pre><pre>x</pre></pre>",
		"{{ a + {b: 1} }}",
		"<view class=\"a {{ b }} c\"/>",
		"<div></span>",
		"<!-- unterminated",
		"<!DOCTYPE html><p>x</p>",
		"{#if x}a{:else}b{/if}",
		"{% for i in xs %}{{ i }}{% endfor %}",
		"{# comment #}",
		"---\nconst x = 1;\n---\n<div/>",
		"<>fragment</>",
		"<a :href=\"u\" @click.stop=\"go\">x</a>",
		"<h{{ n }}>t</h{{ n }}>",
		"a < b > c",
		"<<<>>>",
		"{{{}}}",
		"\U0001F600 <b>中文</b>",
		"<div\n  id=\"a\"\n  class=\"b\">x</div>",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	dialects := []dialect.Dialect{
		dialect.HTML, dialect.WXML, dialect.Vue,
		dialect.Svelte, dialect.Astro, dialect.Jinja,
	}

	f.Fuzz(func(t *testing.T, source string) {
		for _, d := range dialects {
			// Parse should never panic.
			root, diags, err := parser.Parse(source, parser.WithDialect(d))
			if err != nil {
				t.Errorf("dialect %s: unexpected error under resync policy: %v", d, err)
				continue
			}
			if root == nil {
				t.Errorf("dialect %s: nil root without error", d)
				continue
			}

			// Spans must stay inside the input and nest properly.
			var walk func(parent ast.Span, n ast.Node)
			walk = func(parent ast.Span, n ast.Node) {
				sp := n.Span()
				if sp.Start.Offset > sp.End.Offset || int(sp.End.Offset) > len(source) {
					t.Errorf("dialect %s: span %v escapes input", d, sp)
				}
				if !parent.Encloses(sp) {
					t.Errorf("dialect %s: child span %v escapes parent %v", d, sp, parent)
				}
				if el, ok := n.(*ast.Element); ok {
					for _, c := range el.Children {
						walk(sp, c)
					}
				}
				if r, ok := n.(*ast.Root); ok {
					for _, c := range r.Children {
						walk(sp, c)
					}
				}
			}
			walk(root.Loc, root)

			// Diagnostics must carry in-range positions.
			for _, dg := range diags {
				if int(dg.Pos.Offset) > len(source) {
					t.Errorf("dialect %s: diagnostic offset %d out of range", d, dg.Pos.Offset)
				}
			}
		}
	})
}

// FuzzParseDeterministic verifies that parsing twice gives the same shape.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"<div>x</div>",
		"{{ a }}",
		"{#if x}a{/if}",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		r1, d1, err1 := parser.Parse(source, parser.WithDialect(dialect.WXML))
		r2, d2, err2 := parser.Parse(source, parser.WithDialect(dialect.WXML))

		if (err1 == nil) != (err2 == nil) {
			t.Fatal("parsing should be deterministic")
		}
		if err1 != nil {
			return
		}
		if len(r1.Children) != len(r2.Children) {
			t.Errorf("child count mismatch: %d vs %d", len(r1.Children), len(r2.Children))
		}
		if len(d1) != len(d2) {
			t.Errorf("diagnostic count mismatch: %d vs %d", len(d1), len(d2))
		}
	})
}
