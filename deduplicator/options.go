package deduplicator

import (
	"fmt"

	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
)

// Option is a function that configures a deduplication run
type Option func(*dedupeConfig) error

// dedupeConfig holds configuration for a deduplication run
type dedupeConfig struct {
	// Input source (exactly one must be set)
	registry  *schema.Registry
	parsed    *parser.ParseResult
	filePaths []string

	pinned     []schematypes.Entry
	pinnedFile string
	pinnedSet  bool
	fresh      bool

	policy        fixer.Policy
	skipNormalize bool
	thresholds    Thresholds
	singleUse     SingleUsePolicy
	nullableRefs  bool
	logger        parser.Logger
	maxDepth      int
}

// DeduplicateWithOptions runs the pipeline using functional options.
//
// Example:
//
//	result, err := deduplicator.DeduplicateWithOptions(
//	    deduplicator.WithFilePaths("schemas/servers.json", "schemas/networks.json"),
//	    deduplicator.WithFresh(),
//	)
func DeduplicateWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("deduplicator: invalid options: %w", err)
	}

	d := &Deduplicator{
		Mode:          ModeFresh,
		Policy:        cfg.policy,
		SkipNormalize: cfg.skipNormalize,
		Thresholds:    cfg.thresholds,
		SingleUse:     cfg.singleUse,
		NullableRefs:  cfg.nullableRefs,
		Logger:        cfg.logger,
		MaxDepth:      cfg.maxDepth,
	}
	if cfg.pinnedSet {
		d.Mode = ModePinned
		d.Pinned = cfg.pinned
		if cfg.pinnedFile != "" {
			d.Pinned, err = schematypes.Load(cfg.pinnedFile)
			if err != nil {
				return nil, fmt.Errorf("deduplicator: %w", err)
			}
		}
	}

	var parsed *parser.ParseResult
	switch {
	case cfg.registry != nil:
		return d.Deduplicate(cfg.registry)
	case cfg.parsed != nil:
		parsed = cfg.parsed
	case len(cfg.filePaths) > 0:
		p := &parser.Parser{Logger: cfg.logger}
		if parsed, err = p.ParseFiles(cfg.filePaths); err != nil {
			return nil, fmt.Errorf("deduplicator: %w", err)
		}
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("deduplicator: no input source specified")
	}

	result, err := d.Deduplicate(parsed.Registry)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(append([]Diagnostic(nil), parsed.Diagnostics...), result.Diagnostics...)
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*dedupeConfig, error) {
	cfg := &dedupeConfig{
		policy:     fixer.DefaultPolicy(),
		thresholds: DefaultThresholds(),
		singleUse:  SingleUseWarn,
		logger:     parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.registry != nil {
		sources++
	}
	if cfg.parsed != nil {
		sources++
	}
	if len(cfg.filePaths) > 0 {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithRegistry, WithParsed, or WithFilePaths")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithRegistry, WithParsed, or WithFilePaths")
	}
	if cfg.pinnedSet && cfg.fresh {
		return nil, fmt.Errorf("pinned and fresh naming are mutually exclusive")
	}
	if err := cfg.thresholds.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithRegistry specifies the registry to transform in place
func WithRegistry(reg *schema.Registry) Option {
	return func(cfg *dedupeConfig) error {
		if reg == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		cfg.registry = reg
		return nil
	}
}

// WithParsed specifies an already-parsed input. Its diagnostics are carried
// into the result.
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *dedupeConfig) error {
		if result.Registry == nil {
			return fmt.Errorf("parse result has no registry")
		}
		cfg.parsed = &result
		return nil
	}
}

// WithFilePaths specifies schema documents to load
func WithFilePaths(paths ...string) Option {
	return func(cfg *dedupeConfig) error {
		for _, p := range paths {
			if p == "" {
				return fmt.Errorf("file path cannot be empty")
			}
		}
		cfg.filePaths = append(cfg.filePaths, paths...)
		return nil
	}
}

// WithPinned selects pinned mode with the given naming file entries
func WithPinned(entries []schematypes.Entry) Option {
	return func(cfg *dedupeConfig) error {
		cfg.pinned = entries
		cfg.pinnedFile = ""
		cfg.pinnedSet = true
		return nil
	}
}

// WithPinnedFile selects pinned mode, loading the naming file at path.
// A malformed file aborts the run.
func WithPinnedFile(path string) Option {
	return func(cfg *dedupeConfig) error {
		if path == "" {
			return fmt.Errorf("naming file path cannot be empty")
		}
		cfg.pinned = nil
		cfg.pinnedFile = path
		cfg.pinnedSet = true
		return nil
	}
}

// WithFresh selects fresh mode, deriving every name from scratch
func WithFresh() Option {
	return func(cfg *dedupeConfig) error {
		cfg.fresh = true
		return nil
	}
}

// WithPolicy replaces the normalization tables
func WithPolicy(policy fixer.Policy) Option {
	return func(cfg *dedupeConfig) error {
		cfg.policy = policy
		return nil
	}
}

// WithNormalize enables or disables the normalization pass (enabled by default)
func WithNormalize(enabled bool) Option {
	return func(cfg *dedupeConfig) error {
		cfg.skipNormalize = !enabled
		return nil
	}
}

// WithThresholds replaces the extraction thresholds
func WithThresholds(t Thresholds) Option {
	return func(cfg *dedupeConfig) error {
		cfg.thresholds = t
		return nil
	}
}

// WithSingleUsePolicy controls the report of single-use references
func WithSingleUsePolicy(p SingleUsePolicy) Option {
	return func(cfg *dedupeConfig) error {
		if p != SingleUseWarn && p != SingleUseIgnore {
			return fmt.Errorf("invalid single-use policy: %s", p)
		}
		cfg.singleUse = p
		return nil
	}
}

// WithNullableRefs keeps an occurrence's nullable flag at its reference site
func WithNullableRefs(keep bool) Option {
	return func(cfg *dedupeConfig) error {
		cfg.nullableRefs = keep
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *dedupeConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithMaxDepth bounds the nesting depth of every walk
func WithMaxDepth(depth int) Option {
	return func(cfg *dedupeConfig) error {
		if depth < 0 {
			return fmt.Errorf("max depth cannot be negative")
		}
		cfg.maxDepth = depth
		return nil
	}
}
