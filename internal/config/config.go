// Package config loads the TOML file that overrides the normalization tables
// and extraction settings.
//
// Every key is optional; anything left out keeps its default:
//
//	[normalize]
//	float_allow_list = ["disk_size", "memory", "price"]
//	wide_counters    = ["ingoing_traffic", "outgoing_traffic"]
//
//	[extract]
//	min_count     = 2
//	nullable_refs = true
//	single_use    = "ignore"
//
//	[files]
//	inputs      = ["schemas/**/*.json"]
//	naming_file = "resources/schema_types.json"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/deduplicator"
	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// Config is the decoded configuration file.
type Config struct {
	Normalize Normalize `toml:"normalize"`
	Extract   Extract   `toml:"extract"`
	Files     Files     `toml:"files"`
}

// Normalize overrides the fixer policy tables.
type Normalize struct {
	Enabled         bool     `toml:"enabled"`
	FloatAllowList  []string `toml:"float_allow_list"`
	WideCounters    []string `toml:"wide_counters"`
	DeprecatedField string   `toml:"deprecated_field"`
	LabelsField     string   `toml:"labels_field"`
	LabelKeyPattern string   `toml:"label_key_pattern"`
}

// Extract overrides the selection and extraction settings.
type Extract struct {
	MinCount          int    `toml:"min_count"`
	MinComplexity     int    `toml:"min_complexity"`
	MinDirectChildren int    `toml:"min_direct_children"`
	NullableRefs      bool   `toml:"nullable_refs"`
	SingleUse         string `toml:"single_use"`
	MaxDepth          int    `toml:"max_depth"`
}

// Files names the default inputs and outputs of the CLI.
type Files struct {
	Inputs     []string `toml:"inputs"`
	NamingFile string   `toml:"naming_file"`
	Output     string   `toml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	policy := fixer.DefaultPolicy()
	thresholds := deduplicator.DefaultThresholds()
	return &Config{
		Normalize: Normalize{
			Enabled:         true,
			FloatAllowList:  policy.FloatAllowList,
			WideCounters:    policy.WideCounters,
			DeprecatedField: policy.DeprecatedField,
			LabelsField:     policy.LabelsField,
			LabelKeyPattern: policy.LabelKeyPattern,
		},
		Extract: Extract{
			MinCount:          thresholds.MinCount,
			MinComplexity:     thresholds.MinComplexity,
			MinDirectChildren: thresholds.MinDirectChildren,
			SingleUse:         deduplicator.SingleUseWarn.String(),
			MaxDepth:          walker.DefaultMaxDepth,
		},
		Files: Files{
			NamingFile: "resources/schema_types.json",
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "reading config file", Cause: err}
	}
	return Parse(path, data)
}

// Parse decodes a TOML document held in memory over the defaults.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &oaserrors.ConfigError{Option: "config", Value: name, Message: strict.String(), Cause: err}
		}
		return nil, &oaserrors.ConfigError{Option: "config", Value: name, Message: "malformed TOML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	if _, err := regexp.Compile(c.Normalize.LabelKeyPattern); err != nil {
		return &oaserrors.ConfigError{
			Option: "normalize.label_key_pattern", Value: c.Normalize.LabelKeyPattern,
			Message: "invalid regular expression", Cause: err,
		}
	}
	if _, err := deduplicator.ParseSingleUsePolicy(c.Extract.SingleUse); err != nil {
		return &oaserrors.ConfigError{Option: "extract.single_use", Value: c.Extract.SingleUse, Message: err.Error()}
	}
	if c.Extract.MinCount < 1 {
		return &oaserrors.ConfigError{Option: "extract.min_count", Value: c.Extract.MinCount, Message: "must be at least 1"}
	}
	if c.Extract.MinComplexity < 1 {
		return &oaserrors.ConfigError{Option: "extract.min_complexity", Value: c.Extract.MinComplexity, Message: "must be at least 1"}
	}
	if c.Extract.MinDirectChildren < 0 {
		return &oaserrors.ConfigError{Option: "extract.min_direct_children", Value: c.Extract.MinDirectChildren, Message: "cannot be negative"}
	}
	if c.Extract.MaxDepth < 0 {
		return &oaserrors.ConfigError{Option: "extract.max_depth", Value: c.Extract.MaxDepth, Message: "cannot be negative"}
	}
	return nil
}

// Policy returns the fixer tables.
func (c *Config) Policy() fixer.Policy {
	return fixer.Policy{
		FloatAllowList:  c.Normalize.FloatAllowList,
		WideCounters:    c.Normalize.WideCounters,
		DeprecatedField: c.Normalize.DeprecatedField,
		LabelsField:     c.Normalize.LabelsField,
		LabelKeyPattern: c.Normalize.LabelKeyPattern,
	}
}

// Thresholds returns the extraction thresholds.
func (c *Config) Thresholds() deduplicator.Thresholds {
	return deduplicator.Thresholds{
		MinCount:          c.Extract.MinCount,
		MinComplexity:     c.Extract.MinComplexity,
		MinDirectChildren: c.Extract.MinDirectChildren,
	}
}

// DeduplicatorOptions translates the configuration into pipeline options.
// Input and naming options are left to the caller.
func (c *Config) DeduplicatorOptions() ([]deduplicator.Option, error) {
	singleUse, err := deduplicator.ParseSingleUsePolicy(c.Extract.SingleUse)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []deduplicator.Option{
		deduplicator.WithPolicy(c.Policy()),
		deduplicator.WithNormalize(c.Normalize.Enabled),
		deduplicator.WithThresholds(c.Thresholds()),
		deduplicator.WithSingleUsePolicy(singleUse),
		deduplicator.WithNullableRefs(c.Extract.NullableRefs),
		deduplicator.WithMaxDepth(c.Extract.MaxDepth),
	}, nil
}
