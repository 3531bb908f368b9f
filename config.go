package gridnorm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javajack/gridnorm/merge"
	"github.com/javajack/gridnorm/normalize"
)

// Config is the YAML-file form of the Enricher options, used by the CLI.
type Config struct {
	MergeStrategy         string       `yaml:"merge_strategy"`
	CoverageWarnThreshold *float64     `yaml:"coverage_warn_threshold"`
	MixedTypeThreshold    *float64     `yaml:"mixed_type_threshold"`
	DateOrder             string       `yaml:"date_order"`
	CacheCapacity         int          `yaml:"cache_capacity"`
	Workers               int          `yaml:"workers"`
	Rules                 []RuleConfig `yaml:"rules"`
}

// RuleConfig is the YAML form of one ColumnRule.
type RuleConfig struct {
	Name     string `yaml:"name"`
	Expr     string `yaml:"expr"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

// Options converts the config into Enricher options. Unknown enum values
// are reported here, so a bad config fails before any processing.
func (c *Config) Options() ([]Option, error) {
	var opts []Option

	if c.MergeStrategy != "" {
		strategy, err := merge.ParseStrategy(c.MergeStrategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMergeStrategy(strategy))
	}
	if c.CoverageWarnThreshold != nil {
		opts = append(opts, WithCoverageWarnThreshold(*c.CoverageWarnThreshold))
	}
	if c.MixedTypeThreshold != nil {
		opts = append(opts, WithMixedTypeThreshold(*c.MixedTypeThreshold))
	}

	switch c.DateOrder {
	case "":
	case "us", "mdy", "MDY":
		opts = append(opts, WithDateOrder(normalize.OrderMDY))
	case "eu", "dmy", "DMY":
		opts = append(opts, WithDateOrder(normalize.OrderDMY))
	default:
		return nil, fmt.Errorf("unknown date order %q", c.DateOrder)
	}

	if c.CacheCapacity > 0 {
		opts = append(opts, WithCacheCapacity(c.CacheCapacity))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}

	for _, rc := range c.Rules {
		sev := SeverityWarning
		if rc.Severity != "" {
			parsed, err := ParseSeverity(rc.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", rc.Name, err)
			}
			sev = parsed
		}
		opts = append(opts, WithColumnRule(ColumnRule{
			Name:     rc.Name,
			Expr:     rc.Expr,
			Severity: sev,
			Message:  rc.Message,
		}))
	}

	return opts, nil
}
