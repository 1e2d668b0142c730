package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markuplab/tplparse/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Dialect:        "vue",
			ErrorPolicy:    config.PolicyStrict,
			LogLevel:       "debug",
			MaxSourceBytes: 1 << 20,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Dialect = "svelte"
		assert.Equal(t, "vue", original.Dialect)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Dialect = "jinja"
	original.MaxSourceBytes = 4096

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "dialect: jinja")
	assert.Contains(t, string(data), "max_source_bytes: 4096")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestFromYAML(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("dialect: wxml\nerror_policy: strict\n"))
		require.NoError(t, err)
		assert.Equal(t, "wxml", cfg.Dialect)
		assert.Equal(t, config.PolicyStrict, cfg.ErrorPolicy)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := config.FromYAML([]byte("dialect: [unterminated"))
		assert.Error(t, err)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	cfg := config.NewConfig()

	data, err := cfg.ToYAMLWithHeader("# tplparse configuration")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tplparse configuration\n\n")
	assert.Contains(t, string(data), "dialect: html")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"defaults", *config.NewConfig(), false},
		{"empty is valid", config.Config{}, false},
		{"unknown dialect", config.Config{Dialect: "pug"}, true},
		{"unknown policy", config.Config{ErrorPolicy: "panic"}, true},
		{"negative max size", config.Config{MaxSourceBytes: -1}, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.cfg.Validate()
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
