// Package config defines core configuration types for tplparse.
// These types are pure data structures with no dependency on the parser.
package config

import (
	"fmt"

	"github.com/markuplab/tplparse/pkg/dialect"
)

// ErrorPolicy names for configuration files.
const (
	PolicyResync = "resync"
	PolicyStrict = "strict"
)

// Config is the root configuration structure for tplparse.
type Config struct {
	// Dialect selects the grammar variant ("html", "wxml", "vue",
	// "svelte", "astro" or "jinja").
	Dialect string `mapstructure:"dialect" yaml:"dialect"`

	// ErrorPolicy selects how parse failures are handled: "resync"
	// records a diagnostic and continues, "strict" aborts on the first.
	ErrorPolicy string `mapstructure:"error_policy" yaml:"error_policy"`

	// LogLevel controls parser logging ("debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// MaxSourceBytes caps the input size. Zero means the span offset
	// width is the only limit.
	MaxSourceBytes int64 `mapstructure:"max_source_bytes" yaml:"max_source_bytes"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialect:     "html",
		ErrorPolicy: PolicyResync,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for unknown names and bad values.
func (c *Config) Validate() error {
	if c.Dialect != "" {
		if _, err := dialect.FromName(c.Dialect); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	switch c.ErrorPolicy {
	case "", PolicyResync, PolicyStrict:
	default:
		return fmt.Errorf("validate config: unknown error policy %q", c.ErrorPolicy)
	}
	if c.MaxSourceBytes < 0 {
		return fmt.Errorf("validate config: negative max_source_bytes %d", c.MaxSourceBytes)
	}
	return nil
}
