// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the schema canonicalization pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	hcloudopenapi "github.com/MaximilianKoestler/hcloud-openapi"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/fileutil"
	"github.com/MaximilianKoestler/hcloud-openapi/parser"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

const serverInstructions = `hcloud-openapi MCP server: parses, normalizes, and deduplicates API schema components.

Configuration: All defaults are configurable via HCLOUD_OPENAPI_* environment variables set in your MCP client config.

Key settings:
- HCLOUD_OPENAPI_CACHE_ENABLED (default: true): disable parse caching entirely
- HCLOUD_OPENAPI_CACHE_FILE_TTL (default: 15m): cache TTL for file inputs
- HCLOUD_OPENAPI_LIST_LIMIT (default: 100): default page size for listed results
- HCLOUD_OPENAPI_NULLABLE_REFS (default: false): keep nullable at reference sites
- HCLOUD_OPENAPI_SINGLE_USE (default: warn): warn or ignore single-use components
- HCLOUD_OPENAPI_MAX_DEPTH (default: 100): nesting limit for every walk

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		parseCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "hcloud-openapi", Version: hcloudopenapi.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse schema documents (bare schemas or components.schemas documents) into a component registry. Returns the component ids and the legacy-shape repairs applied while decoding. Set path to also return the schema at one location.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Apply the normalization rewrites to schema documents: deprecated nullable markers, empty array items, enum ordering, integer narrowing, wide counters, and label maps. Use fixes to restrict the rewrites. Use include_document or output to get the rewritten document.",
	}, handleNormalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dedupe",
		Description: "Extract structurally identical object schemas into named shared components and replace every occurrence with a reference. Pinned mode names components from a naming file (types); fresh mode derives names from occurrence locations. Use save_types to persist the naming file after a successful run.",
	}, handleDedupe)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns a nil slice for n == 0, or a pre-allocated slice otherwise.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// diagnosticOutput is the wire form of a parse or pipeline diagnostic.
type diagnosticOutput struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Context  string `json:"context,omitempty"`
}

func makeDiagnostics(diags []parser.Diagnostic) []diagnosticOutput {
	out := makeSlice[diagnosticOutput](len(diags))
	for _, d := range diags {
		out = append(out, diagnosticOutput{
			Code:     string(d.Code),
			Severity: d.Severity.String(),
			Path:     d.Path,
			Message:  d.Message,
			Context:  d.Context,
		})
	}
	return out
}

// emitDocument writes the rendered document to output when set and returns
// the text to inline when include is true.
func emitDocument(reg *schema.Registry, format, output string, include bool) (written, inline string, err error) {
	if output == "" && !include {
		return "", "", nil
	}
	data, err := reg.Encode(format)
	if err != nil {
		return "", "", err
	}
	if output != "" {
		if err := fileutil.WriteAtomic(output, data, fileutil.ReadableByAll); err != nil {
			return "", "", fmt.Errorf("failed to write output file: %w", err)
		}
		written = output
	}
	if include {
		inline = string(data)
	}
	return written, inline, nil
}
