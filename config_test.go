package gridnorm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridnorm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
merge_strategy: anchor
coverage_warn_threshold: 0.5
mixed_type_threshold: 0.2
date_order: eu
cache_capacity: 1000
workers: 4
rules:
  - name: sparse column
    expr: nonEmpty < 3
    severity: info
    message: very few values
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "anchor", cfg.MergeStrategy)
	require.NotNil(t, cfg.CoverageWarnThreshold)
	assert.Equal(t, 0.5, *cfg.CoverageWarnThreshold)
	assert.Equal(t, 4, cfg.Workers)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "sparse column", cfg.Rules[0].Name)

	opts, err := cfg.Options()
	require.NoError(t, err)

	// The options must produce a working Enricher.
	_, err = New(opts...)
	require.NoError(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "merge_strategy: [unterminated")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigOptions_UnknownStrategy(t *testing.T) {
	cfg := &Config{MergeStrategy: "overwrite"}
	_, err := cfg.Options()
	assert.Error(t, err)
}

func TestConfigOptions_UnknownDateOrder(t *testing.T) {
	cfg := &Config{DateOrder: "ymd"}
	_, err := cfg.Options()
	assert.Error(t, err)
}

func TestConfigOptions_UnknownRuleSeverity(t *testing.T) {
	cfg := &Config{Rules: []RuleConfig{{Name: "r", Expr: "empty", Severity: "fatal"}}}
	_, err := cfg.Options()
	assert.Error(t, err)
}

func TestConfigOptions_RuleSeverityDefaultsToWarning(t *testing.T) {
	cfg := &Config{Rules: []RuleConfig{{Name: "r", Expr: "empty"}}}
	opts, err := cfg.Options()
	require.NoError(t, err)

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	require.Len(t, o.rules, 1)
	assert.Equal(t, SeverityWarning, o.rules[0].Severity)
}

func TestConfigOptions_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}
