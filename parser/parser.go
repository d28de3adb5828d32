package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
	"golang.org/x/sync/errgroup"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// SourceFormat represents the format of a source document.
type SourceFormat string

const (
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
)

// DefaultMaxFileSize bounds a single input document.
const DefaultMaxFileSize int64 = 64 << 20

// ParseResult contains the registry built from one or more documents.
type ParseResult struct {
	// Registry holds every decoded root keyed by component id
	Registry *schema.Registry
	// Diagnostics lists the legacy-shape repairs applied while decoding
	Diagnostics []Diagnostic
	// SourcePaths lists the inputs in merge order
	SourcePaths []string
}

// Parser loads schema documents.
type Parser struct {
	// Logger receives structured progress messages. Defaults to NopLogger.
	Logger Logger
	// MaxFileSize limits the size of each input (0 means DefaultMaxFileSize).
	MaxFileSize int64
}

// New creates a new Parser with default settings.
func New() *Parser {
	return &Parser{Logger: NopLogger{}}
}

func (p *Parser) logger() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return p.MaxFileSize
}

// partial is the decoding outcome of one document.
type partial struct {
	name        string
	roots       map[string]*schema.Node
	diagnostics []Diagnostic
}

// ParseFiles reads and decodes every path concurrently and merges the
// results in argument order. A component id defined twice is an error.
func (p *Parser) ParseFiles(paths []string) (*ParseResult, error) {
	parts := make([]*partial, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			data, err := p.readFile(path)
			if err != nil {
				return err
			}
			part, err := p.decodeDocument(path, data)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p.merge(parts)
}

// ParseBytes decodes a single in-memory document. name is used for
// diagnostics, format detection, and as the id of a bare schema.
func (p *Parser) ParseBytes(name string, data []byte) (*ParseResult, error) {
	part, err := p.decodeDocument(name, data)
	if err != nil {
		return nil, err
	}
	return p.merge([]*partial{part})
}

// ParseReader decodes a single document read from r.
func (p *Parser) ParseReader(name string, r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "reading input", Cause: err}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, p.sizeError(name, int64(len(data)))
	}
	return p.ParseBytes(name, data)
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading input", Cause: err}
	}
	if info.Size() > p.maxFileSize() {
		return nil, p.sizeError(path, info.Size())
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: input paths are supplied by the operator
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading input", Cause: err}
	}
	return data, nil
}

func (p *Parser) sizeError(name string, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        p.maxFileSize(),
		Actual:       actual,
		Message:      name,
	}
}

func (p *Parser) decodeDocument(name string, data []byte) (*partial, error) {
	format := DetectFormat(name, data)
	var raw any
	var err error
	switch format {
	case SourceFormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: fmt.Sprintf("invalid %s", format), Cause: err}
	}

	rawRoots, err := splitRoots(name, raw)
	if err != nil {
		return nil, err
	}

	d := &decoder{source: name}
	part := &partial{name: name, roots: make(map[string]*schema.Node, len(rawRoots))}
	for _, id := range sortedKeys(rawRoots) {
		node, err := d.decode(rawRoots[id], schema.Location{id})
		if err != nil {
			return nil, err
		}
		part.roots[id] = node
	}
	part.diagnostics = d.diagnostics
	p.logger().Debug("decoded document", "source", name, "format", string(format), "roots", len(part.roots))
	return part, nil
}

func (p *Parser) merge(parts []*partial) (*ParseResult, error) {
	result := &ParseResult{Registry: schema.NewRegistry()}
	origin := make(map[string]string)
	for _, part := range parts {
		result.SourcePaths = append(result.SourcePaths, part.name)
		ids := make([]string, 0, len(part.roots))
		for id := range part.roots {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			node := part.roots[id]
			if first, dup := origin[id]; dup {
				return nil, &oaserrors.ParseError{
					Path:    part.name,
					Message: fmt.Sprintf("component %q already defined in %s", id, first),
				}
			}
			origin[id] = part.name
			result.Registry.Set(id, node)
		}
		result.Diagnostics = append(result.Diagnostics, part.diagnostics...)
	}
	for _, d := range result.Diagnostics {
		logDiagnostic(p.logger(), d)
	}
	return result, nil
}

func logDiagnostic(logger Logger, d Diagnostic) {
	attrs := []any{"code", string(d.Code), "path", d.Path}
	switch d.Severity {
	case severity.SeverityInfo:
		logger.Debug(d.Message, attrs...)
	case severity.SeverityWarning:
		logger.Warn(d.Message, attrs...)
	default:
		logger.Error(d.Message, attrs...)
	}
}

// splitRoots finds the component roots inside a decoded document.
func splitRoots(name string, raw any) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &oaserrors.ParseError{Path: name, Message: "document root must be a mapping"}
	}
	if components, found := m["components"].(map[string]any); found {
		schemas, isMap := components["schemas"].(map[string]any)
		if !isMap {
			return nil, &oaserrors.ParseError{Path: name, Message: "components.schemas must be a mapping"}
		}
		return schemas, nil
	}
	if looksLikeSchema(m) {
		return map[string]any{stem(name): m}, nil
	}
	return m, nil
}

func looksLikeSchema(m map[string]any) bool {
	for _, key := range []string{"type", "$ref", "properties", "items"} {
		if _, found := m[key]; found {
			return true
		}
	}
	return false
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DetectFormat picks the decoder from the file extension, falling back to
// sniffing the first non-blank byte.
func DetectFormat(name string, data []byte) SourceFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// ExpandGlobs resolves doublestar patterns to a sorted, de-duplicated file
// list. A pattern that matches nothing is a configuration error.
func ExpandGlobs(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "input", Value: pattern, Message: "invalid glob", Cause: err}
		}
		if len(matches) == 0 {
			return nil, &oaserrors.ConfigError{Option: "input", Value: pattern, Message: "pattern matched no files"}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
