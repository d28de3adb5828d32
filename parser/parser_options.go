package parser

import (
	"fmt"
	"io"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one kind must be set)
	filePaths []string
	globs     []string
	reader    io.Reader
	bytes     []byte
	name      string

	logger      Logger
	maxFileSize int64
}

// ParseWithOptions parses schema documents using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePaths("servers.json", "networks.yaml"),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{Logger: cfg.logger, MaxFileSize: cfg.maxFileSize}

	switch {
	case len(cfg.globs) > 0:
		paths, err := ExpandGlobs(cfg.globs...)
		if err != nil {
			return nil, fmt.Errorf("parser: %w", err)
		}
		return p.ParseFiles(paths)
	case len(cfg.filePaths) > 0:
		return p.ParseFiles(cfg.filePaths)
	case cfg.reader != nil:
		return p.ParseReader(cfg.name, cfg.reader)
	case cfg.bytes != nil:
		return p.ParseBytes(cfg.name, cfg.bytes)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("parser: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{logger: NopLogger{}}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if len(cfg.filePaths) > 0 {
		sources++
	}
	if len(cfg.globs) > 0 {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if cfg.bytes != nil {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePaths, WithGlob, WithReader, or WithBytes")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePaths, WithGlob, WithReader, or WithBytes")
	}
	return cfg, nil
}

// WithFilePaths specifies the documents to load.
func WithFilePaths(paths ...string) Option {
	return func(cfg *parseConfig) error {
		for _, p := range paths {
			if p == "" {
				return fmt.Errorf("file path cannot be empty")
			}
		}
		cfg.filePaths = append(cfg.filePaths, paths...)
		return nil
	}
}

// WithGlob specifies doublestar patterns (e.g. "schemas/**/*.json") that
// select the documents to load.
func WithGlob(patterns ...string) Option {
	return func(cfg *parseConfig) error {
		for _, p := range patterns {
			if p == "" {
				return fmt.Errorf("glob pattern cannot be empty")
			}
		}
		cfg.globs = append(cfg.globs, patterns...)
		return nil
	}
}

// WithReader specifies a single document read from r. name identifies it in
// diagnostics and names a bare schema root.
func WithReader(name string, r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		cfg.name = name
		return nil
	}
}

// WithBytes specifies a single in-memory document.
func WithBytes(name string, data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		cfg.name = name
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithMaxFileSize overrides the per-document size limit.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("max file size cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}
