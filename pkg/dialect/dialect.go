// Package dialect defines the per-dialect grammar policies consulted by the
// parser: character predicates, void/raw-text membership, interpolation and
// block delimiters, and the lookahead dispatch table. The core
// element/text/comment grammar is dialect-agnostic; only dispatch and a
// handful of terminator characters vary per dialect.
package dialect

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Dialect names a variant of the template grammar.
type Dialect uint8

const (
	HTML Dialect = iota
	WXML
	Vue
	Svelte
	Astro
	Jinja
)

var dialectNames = [...]string{
	HTML:   "html",
	WXML:   "wxml",
	Vue:    "vue",
	Svelte: "svelte",
	Astro:  "astro",
	Jinja:  "jinja",
}

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return "unknown"
}

// FromName resolves a dialect by its lowercase name.
func FromName(name string) (Dialect, error) {
	for d, n := range dialectNames {
		if n == strings.ToLower(name) {
			return Dialect(d), nil
		}
	}
	return HTML, fmt.Errorf("unknown dialect %q", name)
}

// Branch identifies the grammar branch chosen by 1-2 characters of
// lookahead at a node boundary.
type Branch uint8

const (
	BranchText Branch = iota
	BranchElement
	BranchDeclaration // "<!": comment, else doctype, else text
	BranchInterpolation
	BranchBlock
	BranchComment // dialect comment syntax such as Jinja's {# #}
)

// BlockStyle selects which control-flow block grammar a dialect uses.
type BlockStyle uint8

const (
	// BlockNone disables block constructs.
	BlockNone BlockStyle = iota

	// BlockBraces is the {#name head}...{:branch}...{/name} style.
	BlockBraces

	// BlockTags is the {% name head %}...{% else %}...{% endname %} style.
	BlockTags
)

// Policy is the grammar table for one dialect. Policies are immutable;
// obtain them through For.
type Policy struct {
	Dialect Dialect

	// ExprOpen/ExprClose delimit interpolations. An empty ExprOpen
	// disables interpolation entirely.
	ExprOpen  string
	ExprClose string

	// Blocks selects the control-flow block grammar, if any.
	Blocks BlockStyle

	// DirectivePrefix is the longhand directive attribute prefix ("v-"
	// for Vue); empty disables the directive grammar.
	// DirectiveShorthands lists the single-character shorthand sigils.
	DirectivePrefix     string
	DirectiveShorthands string

	// DialectCommentOpen/Close add a second comment syntax beyond
	// <!-- --> (Jinja's {# #}); empty disables.
	DialectCommentOpen  string
	DialectCommentClose string

	HasDoctype     bool
	HasFrontMatter bool

	// UnquotedInterpolation permits interpolation segments inside
	// unquoted attribute values.
	UnquotedInterpolation bool

	// TagNameInterpolation permits an embedded interpolation inside a
	// tag name, as in <h{{ level }}>.
	TagNameInterpolation bool

	// AllowsFragment treats ">" immediately after "<" as an empty-named
	// fragment tag (<>...</>).
	AllowsFragment bool

	voids       map[string]struct{}
	rawText     map[string]struct{}
	nestableRaw map[string]struct{}

	// textBreakers are the non-"<" lookahead prefixes that terminate a
	// text node.
	textBreakers []string

	blockKeywords  map[string]struct{}
	branchKeywords map[string]struct{}
}

// For returns the policy table for the given dialect.
func For(d Dialect) *Policy {
	if int(d) < len(policies) && policies[d] != nil {
		return policies[d]
	}
	return policies[HTML]
}

// IsTagNameChar reports whether r may appear in a tag name.
func (p *Policy) IsTagNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '-' || r == '_' || r == '.' || r == ':' || r == '\\' ||
		r >= utf8.RuneSelf
}

// IsAttrNameChar reports whether r may appear in an attribute name.
func (p *Policy) IsAttrNameChar(r rune) bool {
	switch r {
	case '"', '\'', '<', '>', '/', '=', ' ', '\t', '\n', '\r', '\f':
		return false
	}
	return r > ' '
}

// IsVoidElement reports whether name is a dialect-known empty element.
func (p *Policy) IsVoidElement(name string) bool {
	_, ok := p.voids[strings.ToLower(name)]
	return ok
}

// IsRawTextElement reports whether name's body is captured verbatim up to
// its literal close tag.
func (p *Policy) IsRawTextElement(name string) bool {
	_, ok := p.rawText[strings.ToLower(name)]
	return ok
}

// IsNestableRawText reports whether name is a pre-class raw-text element
// whose inner same-named tags must be depth-tracked.
func (p *Policy) IsNestableRawText(name string) bool {
	_, ok := p.nestableRaw[strings.ToLower(name)]
	return ok
}

// IsBlockKeyword reports whether kw opens a block in this dialect.
func (p *Policy) IsBlockKeyword(kw string) bool {
	_, ok := p.blockKeywords[kw]
	return ok
}

// IsBranchKeyword reports whether kw starts a secondary block arm.
func (p *Policy) IsBranchKeyword(kw string) bool {
	_, ok := p.branchKeywords[kw]
	return ok
}

// HasDirectives reports whether the dialect has a directive attribute
// grammar.
func (p *Policy) HasDirectives() bool {
	return p.DirectivePrefix != "" || p.DirectiveShorthands != ""
}

// HasInterpolation reports whether the dialect has interpolation syntax.
func (p *Policy) HasInterpolation() bool {
	return p.ExprOpen != ""
}

// Dispatch maps up to two characters of lookahead to a grammar branch. The
// lookahead may be shorter than two characters near end of input.
func (p *Policy) Dispatch(la string) Branch {
	r0, size := utf8.DecodeRuneInString(la)
	if size == 0 {
		return BranchText
	}
	if r0 == '<' {
		r1, _ := utf8.DecodeRuneInString(la[size:])
		switch {
		case r1 == '!':
			return BranchDeclaration
		case p.IsTagNameChar(r1):
			return BranchElement
		case p.AllowsFragment && r1 == '>':
			return BranchElement
		case p.TagNameInterpolation && p.ExprOpen != "" && len(la) > size && strings.HasPrefix(p.ExprOpen, la[size:]):
			// Two characters of lookahead only show "<{" of "<{{"; the
			// tag-name grammar re-checks the full opener.
			return BranchElement
		}
		return BranchText
	}
	if p.DialectCommentOpen != "" && strings.HasPrefix(la, p.DialectCommentOpen) {
		return BranchComment
	}
	switch p.Blocks {
	case BlockBraces:
		if strings.HasPrefix(la, "{#") {
			return BranchBlock
		}
	case BlockTags:
		if strings.HasPrefix(la, "{%") {
			return BranchBlock
		}
	}
	if p.ExprOpen != "" && strings.HasPrefix(la, p.ExprOpen) {
		return BranchInterpolation
	}
	return BranchText
}

// TerminatesText reports whether the lookahead at the current position ends
// a text node.
func (p *Policy) TerminatesText(la string) bool {
	r0, size := utf8.DecodeRuneInString(la)
	if size == 0 {
		return true
	}
	if r0 == '<' {
		r1, n := utf8.DecodeRuneInString(la[size:])
		if n == 0 {
			return false
		}
		if r1 == '!' || r1 == '/' || p.IsTagNameChar(r1) {
			return true
		}
		if p.AllowsFragment && r1 == '>' {
			return true
		}
		if p.TagNameInterpolation && r1 == '{' {
			return true
		}
		return false
	}
	for _, b := range p.textBreakers {
		if strings.HasPrefix(la, b) {
			return true
		}
	}
	return false
}

func names(ss ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

// htmlVoids per the HTML living standard.
func htmlVoids() map[string]struct{} {
	return names("area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr")
}

func htmlRawText() map[string]struct{} {
	return names("script", "style", "textarea", "title")
}

var policies = [...]*Policy{
	HTML: {
		Dialect:    HTML,
		HasDoctype: true,
		voids:      htmlVoids(),
		rawText:    htmlRawText(),
	},
	WXML: {
		Dialect:               WXML,
		ExprOpen:              "{{",
		ExprClose:             "}}",
		UnquotedInterpolation: true,
		voids:                 names("input", "img", "br", "hr"),
		rawText:               names("script", "wxs", "pre"),
		nestableRaw:           names("pre"),
		textBreakers:          []string{"{{"},
	},
	Vue: {
		Dialect:               Vue,
		ExprOpen:              "{{",
		ExprClose:             "}}",
		DirectivePrefix:       "v-",
		DirectiveShorthands:   ":@#",
		HasDoctype:            true,
		UnquotedInterpolation: true,
		voids:                 htmlVoids(),
		rawText:               htmlRawText(),
		textBreakers:          []string{"{{"},
	},
	Svelte: {
		Dialect:        Svelte,
		ExprOpen:       "{",
		ExprClose:      "}",
		Blocks:         BlockBraces,
		HasDoctype:     true,
		voids:          htmlVoids(),
		rawText:        htmlRawText(),
		textBreakers:   []string{"{"},
		blockKeywords:  names("if", "each", "await", "key", "snippet"),
		branchKeywords: names("else", "then", "catch"),
	},
	Astro: {
		Dialect:        Astro,
		ExprOpen:       "{",
		ExprClose:      "}",
		HasDoctype:     true,
		HasFrontMatter: true,
		AllowsFragment: true,
		voids:          htmlVoids(),
		rawText:        htmlRawText(),
		textBreakers:   []string{"{"},
	},
	Jinja: {
		Dialect:              Jinja,
		ExprOpen:             "{{",
		ExprClose:            "}}",
		Blocks:               BlockTags,
		DialectCommentOpen:   "{#",
		DialectCommentClose:  "#}",
		HasDoctype:           true,
		TagNameInterpolation: true,
		voids:                htmlVoids(),
		rawText:              htmlRawText(),
		textBreakers:         []string{"{{", "{%", "{#"},
		blockKeywords:        names("if", "for", "block", "macro", "filter", "with", "call"),
		branchKeywords:       names("elif", "else"),
	},
}
