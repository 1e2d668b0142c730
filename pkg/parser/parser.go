// Package parser implements a single-pass recursive-descent parser for
// markup-style template source. It consumes characters directly, with no
// intermediate token stream, and produces a span-annotated AST plus an
// ordered list of diagnostics. Dialect extensions (directive attributes,
// control-flow blocks, front matter) hang off a per-dialect policy table;
// the core element/text/comment grammar is shared by every dialect.
package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/markuplab/tplparse/internal/logging"
	"github.com/markuplab/tplparse/pkg/ast"
	"github.com/markuplab/tplparse/pkg/config"
	"github.com/markuplab/tplparse/pkg/diag"
	"github.com/markuplab/tplparse/pkg/dialect"
)

// offsetLimit is the largest input size representable in the 32-bit span
// offsets. Inputs beyond it are rejected up front, never truncated.
const offsetLimit = int64(math.MaxUint32)

// ErrSourceTooLarge is returned when the input exceeds the configured or
// representable size limit.
var ErrSourceTooLarge = errors.New("source exceeds size limit")

// Parser owns all state for parsing one input: the cursor, the diagnostic
// list and the partially built tree. Independent parses of different inputs
// share nothing and are safe to run concurrently.
type Parser struct {
	cur       *cursor
	policy    *dialect.Policy
	diags     *diag.List
	logger    *log.Logger
	errPolicy ErrorPolicy
	maxSource int64
	cfg       *config.Config

	// frontMatterSeen flips after the prelude is consumed so a later
	// "---" is plain text.
	frontMatterSeen bool
}

// New constructs a Parser over source. It fails if the input does not fit
// the span offset width (or a lower configured limit).
func New(source string, opts ...Option) (*Parser, error) {
	p := &Parser{
		cur:       newCursor(source),
		policy:    dialect.For(dialect.HTML),
		diags:     &diag.List{},
		logger:    logging.Default(),
		errPolicy: PolicyResync,
		maxSource: offsetLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg != nil {
		if err := p.applyConfig(p.cfg); err != nil {
			return nil, err
		}
	}
	if int64(len(source)) > p.maxSource {
		return nil, fmt.Errorf("%w: %d bytes", ErrSourceTooLarge, len(source))
	}
	return p, nil
}

func (p *Parser) applyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	if cfg.Dialect != "" {
		d, err := dialect.FromName(cfg.Dialect)
		if err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
		p.policy = dialect.For(d)
	}
	switch cfg.ErrorPolicy {
	case config.PolicyStrict:
		p.errPolicy = PolicyStrict
	case config.PolicyResync:
		p.errPolicy = PolicyResync
	}
	if cfg.MaxSourceBytes > 0 && cfg.MaxSourceBytes < p.maxSource {
		p.maxSource = cfg.MaxSourceBytes
	}
	if cfg.LogLevel != "" {
		p.logger = logging.New(cfg.LogLevel)
	}
	return nil
}

// Parse is the convenience entry point: one call from source text to a Root
// node and the diagnostics gathered along the way. Under the resync policy
// the returned error is nil even when diagnostics were recorded; under the
// strict policy the first failure is returned and the root is nil.
func Parse(source string, opts ...Option) (*ast.Root, []diag.Diagnostic, error) {
	p, err := New(source, opts...)
	if err != nil {
		return nil, nil, err
	}
	root, err := p.ParseRoot()
	return root, p.Diagnostics(), err
}

// Diagnostics returns the diagnostics recorded so far, in report order.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags.All()
}

// Dialect returns the grammar variant this parser was configured with.
func (p *Parser) Dialect() dialect.Dialect {
	return p.policy.Dialect
}

// ParseRoot parses the whole input into a Root node whose span covers it.
func (p *Parser) ParseRoot() (*ast.Root, error) {
	start := p.cur.pos()
	var children []ast.Node

	if p.policy.HasFrontMatter && p.cur.at("---") {
		fm, err := p.parseFrontMatter()
		if err != nil {
			if p.errPolicy == PolicyStrict {
				return nil, err
			}
		} else {
			children = append(children, fm)
		}
	}

	for !p.cur.eof() {
		n, err := p.parseNode()
		if err != nil {
			if p.errPolicy == PolicyStrict {
				return nil, err
			}
			p.logger.Debug("resync after failed node parse",
				logging.FieldOffset, p.cur.pos().Offset,
				logging.FieldError, err)
			p.cur.advance()
			continue
		}
		children = append(children, n)
	}

	return &ast.Root{Children: children, Loc: span(start, p.cur.pos())}, nil
}

// parseNode inspects up to two characters of lookahead and dispatches via
// the dialect policy.
func (p *Parser) parseNode() (ast.Node, error) {
	la := p.cur.peekN(2)
	switch p.policy.Dispatch(la) {
	case dialect.BranchElement:
		return p.parseElement()
	case dialect.BranchDeclaration:
		if p.cur.at("<!--") {
			return p.parseComment()
		}
		if p.policy.HasDoctype {
			var d *ast.Doctype
			if err := p.speculate(func() error {
				var err error
				d, err = p.parseDoctype()
				return err
			}); err == nil {
				return d, nil
			}
		}
		return p.parseText()
	case dialect.BranchInterpolation:
		return p.parseExpression()
	case dialect.BranchBlock:
		return p.parseBlock()
	case dialect.BranchComment:
		return p.parseDialectComment()
	default:
		return p.parseText()
	}
}

// speculate snapshots the cursor and the diagnostic list length, runs f,
// and rolls both back if f fails. Abandoned grammar attempts leave neither
// cursor movement nor diagnostics behind.
func (p *Parser) speculate(f func() error) error {
	m := p.cur.snapshot()
	n := p.diags.Len()
	if err := f(); err != nil {
		p.cur.restore(m)
		p.diags.Truncate(n)
		return err
	}
	return nil
}

func (p *Parser) fail(kind diag.Kind) error {
	return p.diags.Report(kind, p.cur.pos())
}

func (p *Parser) failAt(kind diag.Kind, pos ast.Position) error {
	return p.diags.Report(kind, pos)
}

func (p *Parser) failDetail(kind diag.Kind, detail string) error {
	return p.diags.ReportDetail(kind, detail, p.cur.pos())
}

func (p *Parser) failDetailAt(kind diag.Kind, detail string, pos ast.Position) error {
	return p.diags.ReportDetail(kind, detail, pos)
}

func (p *Parser) failChar(c rune) error {
	return p.diags.ReportChar(c, p.cur.pos())
}

func span(start, end ast.Position) ast.Span {
	return ast.Span{Start: start, End: end}
}
