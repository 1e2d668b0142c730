package parser

import (
	"github.com/charmbracelet/log"

	"github.com/markuplab/tplparse/pkg/config"
	"github.com/markuplab/tplparse/pkg/dialect"
)

// ErrorPolicy controls what happens when a node parse fails at the sequence
// level (root children, element children, block children).
type ErrorPolicy uint8

const (
	// PolicyResync recovers by advancing the cursor one character and
	// retrying, so a single malformed construct does not prevent the
	// rest of the sibling sequence from parsing. The diagnostic list
	// still records every failure. This is the default.
	PolicyResync ErrorPolicy = iota

	// PolicyStrict aborts the entire parse at the first unrecovered
	// failure and surfaces it as the sole result.
	PolicyStrict
)

// String returns the policy name used in configuration files.
func (e ErrorPolicy) String() string {
	if e == PolicyStrict {
		return "strict"
	}
	return "resync"
}

// Option configures a Parser.
type Option func(*Parser)

// WithDialect selects the grammar variant. The default is dialect.HTML.
func WithDialect(d dialect.Dialect) Option {
	return func(p *Parser) {
		p.policy = dialect.For(d)
	}
}

// WithErrorPolicy selects the node-sequence recovery policy.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(p *Parser) {
		p.errPolicy = policy
	}
}

// WithLogger attaches a logger for debug tracing of dispatch decisions,
// speculation fallbacks and recovery skips.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxSourceBytes lowers the accepted input size below the offset-width
// limit. Values of zero or less leave the limit unchanged.
func WithMaxSourceBytes(n int64) Option {
	return func(p *Parser) {
		if n > 0 && n < p.maxSource {
			p.maxSource = n
		}
	}
}

// WithConfig applies a serializable configuration. The config is validated
// when the Parser is constructed.
func WithConfig(cfg *config.Config) Option {
	return func(p *Parser) {
		p.cfg = cfg
	}
}
