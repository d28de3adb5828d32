package fixer

import (
	"fmt"
	"slices"

	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeNullableDeprecated indicates a deprecation marker was made nullable
	FixTypeNullableDeprecated FixType = "nullable-deprecated"
	// FixTypeEmptyArrayItems indicates empty array items were given an explicit shape
	FixTypeEmptyArrayItems FixType = "empty-array-items"
	// FixTypeSortedEnum indicates enum values were sorted
	FixTypeSortedEnum FixType = "sorted-enum"
	// FixTypeNarrowedNumber indicates a number was narrowed to an integer
	FixTypeNarrowedNumber FixType = "narrowed-number"
	// FixTypeWideCounter indicates an integer was given format int64
	FixTypeWideCounter FixType = "wide-counter"
	// FixTypeLabelsMap indicates a labels object was rewritten into a string map
	FixTypeLabelsMap FixType = "labels-map"
)

// AllFixTypes lists every fix type in the order the rules run.
func AllFixTypes() []FixType {
	return []FixType{
		FixTypeNullableDeprecated,
		FixTypeEmptyArrayItems,
		FixTypeSortedEnum,
		FixTypeNarrowedNumber,
		FixTypeWideCounter,
		FixTypeLabelsMap,
	}
}

// ParseFixTypes converts fix type names, rejecting unknown ones.
func ParseFixTypes(names []string) ([]FixType, error) {
	known := AllFixTypes()
	out := make([]FixType, 0, len(names))
	for _, name := range names {
		ft := FixType(name)
		if !slices.Contains(known, ft) {
			return nil, fmt.Errorf("unknown fix type %q", name)
		}
		out = append(out, ft)
	}
	return out, nil
}

// Fix represents a single rewrite applied to a schema node
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the location of the fixed node (e.g., "get_server_response/server/labels")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the relevant value before the fix (nil if nothing was replaced)
	Before any
	// After is the value that was added or changed
	After any
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Registry is the normalized registry. Roots are modified in place.
	Registry *schema.Registry
	// Fixes contains all fixes applied
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
	// Success is true if fixing completed without errors
	Success bool
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// Fixer normalizes schema registries
type Fixer struct {
	// Policy holds the name tables the rules consult.
	Policy Policy
	// EnabledFixes specifies which fix types to apply.
	// If nil or empty, all fix types are enabled.
	EnabledFixes []FixType
	// Logger receives a debug line per applied fix. Defaults to parser.NopLogger.
	Logger parser.Logger
	// MaxDepth bounds the nesting depth of a walk (0 means walker.DefaultMaxDepth).
	MaxDepth int
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{
		Policy: DefaultPolicy(),
		Logger: parser.NopLogger{},
	}
}

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	registry *schema.Registry
	parsed   *parser.ParseResult

	policy       Policy
	enabledFixes []FixType
	logger       parser.Logger
}

// FixWithOptions normalizes a registry using functional options.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithRegistry(reg),
//	    fixer.WithEnabledFixes(fixer.FixTypeSortedEnum),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}

	f := &Fixer{
		Policy:       cfg.policy,
		EnabledFixes: cfg.enabledFixes,
		Logger:       cfg.logger,
	}

	if cfg.registry != nil {
		return f.Fix(cfg.registry)
	}
	if cfg.parsed != nil {
		return f.FixParsed(*cfg.parsed)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("fixer: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*fixConfig, error) {
	cfg := &fixConfig{
		policy: DefaultPolicy(),
		logger: parser.NopLogger{},
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

	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithRegistry or WithParsed")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithRegistry or WithParsed")
	}

	return cfg, nil
}

// WithRegistry specifies the registry to normalize in place
func WithRegistry(reg *schema.Registry) Option {
	return func(cfg *fixConfig) error {
		if reg == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		cfg.registry = reg
		return nil
	}
}

// WithParsed specifies an already-parsed result to normalize
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *fixConfig) error {
		if result.Registry == nil {
			return fmt.Errorf("parse result has no registry")
		}
		cfg.parsed = &result
		return nil
	}
}

// WithPolicy replaces the default name tables
func WithPolicy(policy Policy) Option {
	return func(cfg *fixConfig) error {
		cfg.policy = policy
		return nil
	}
}

// WithEnabledFixes specifies which fix types to apply
func WithEnabledFixes(fixes ...FixType) Option {
	return func(cfg *fixConfig) error {
		cfg.enabledFixes = fixes
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l parser.Logger) Option {
	return func(cfg *fixConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// FixParsed normalizes the registry of a parse result
func (f *Fixer) FixParsed(parseResult parser.ParseResult) (*FixResult, error) {
	return f.Fix(parseResult.Registry)
}

// Fix normalizes every root of reg in place, in sorted id order.
func (f *Fixer) Fix(reg *schema.Registry) (*FixResult, error) {
	result := &FixResult{Registry: reg}
	for _, id := range reg.IDs() {
		root, _ := reg.Get(id)
		fixes, err := f.FixTree(id, root)
		if err != nil {
			return nil, err
		}
		result.Fixes = append(result.Fixes, fixes...)
	}

	for _, fix := range result.Fixes {
		f.logger().Debug(fix.Description, "fix", string(fix.Type), "path", fix.Path)
	}
	result.FixCount = len(result.Fixes)
	result.Success = true
	return result, nil
}

// FixTree normalizes a single root stored under id.
func (f *Fixer) FixTree(id string, root *schema.Node) ([]Fix, error) {
	var fixes []Fix
	ctx := walker.NewContext(id)
	err := walker.New(walker.WithMaxDepth(f.MaxDepth)).Walk(root, ctx.Track(walker.Hooks{
		AfterVisit: func(node *schema.Node) error {
			fixes = append(fixes, f.fixNode(node, ctx)...)
			return nil
		},
	}))
	if err != nil {
		return nil, fmt.Errorf("fixer: %s: %w", id, err)
	}
	return fixes, nil
}

func (f *Fixer) logger() parser.Logger {
	if f.Logger == nil {
		return parser.NopLogger{}
	}
	return f.Logger
}

// isFixEnabled checks if a fix type is enabled
func (f *Fixer) isFixEnabled(fixType FixType) bool {
	if len(f.EnabledFixes) == 0 {
		return true // all fixes enabled by default
	}
	for _, ft := range f.EnabledFixes {
		if ft == fixType {
			return true
		}
	}
	return false
}
