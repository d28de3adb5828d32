package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
)

type normalizeInput struct {
	Input           schemaInput `json:"input"                      jsonschema:"The schema documents to normalize"`
	Fixes           []string    `json:"fixes,omitempty"            jsonschema:"Restrict the rewrites to these fix types (default: all)"`
	IncludeDocument bool        `json:"include_document,omitempty" jsonschema:"Include the normalized document in output"`
	Format          string      `json:"format,omitempty"           jsonschema:"Document format: json (default) or yaml"`
	Output          string      `json:"output,omitempty"           jsonschema:"File path to write the normalized document to"`
	Offset          int         `json:"offset,omitempty"           jsonschema:"Skip the first N fixes (for pagination)"`
	Limit           int         `json:"limit,omitempty"            jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type normalizeOutput struct {
	FixCount  int          `json:"fix_count"`
	Returned  int          `json:"returned"`
	Fixes     []fixApplied `json:"fixes,omitempty"`
	WrittenTo string       `json:"written_to,omitempty"`
	Document  string       `json:"document,omitempty"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	opts, err := buildFixerOptions(input)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	output := normalizeOutput{FixCount: result.FixCount}
	fixes := makeSlice[fixApplied](len(result.Fixes))
	for _, f := range result.Fixes {
		fixes = append(fixes, fixApplied{
			Type:        string(f.Type),
			Path:        f.Path,
			Description: f.Description,
		})
	}
	output.Fixes = paginate(fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	output.WrittenTo, output.Document, err = emitDocument(result.Registry, input.Format, input.Output, input.IncludeDocument)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}
	return nil, output, nil
}

// buildFixerOptions translates the MCP input into fixer options. The input is
// parsed first (through the cache) and handed over via fixer.WithParsed.
func buildFixerOptions(input normalizeInput) ([]fixer.Option, error) {
	enabled, err := fixer.ParseFixTypes(input.Fixes)
	if err != nil {
		return nil, err
	}

	parsed, err := input.Input.resolve()
	if err != nil {
		return nil, err
	}

	opts := []fixer.Option{fixer.WithParsed(*parsed)}
	if len(enabled) > 0 {
		opts = append(opts, fixer.WithEnabledFixes(enabled...))
	}
	return opts, nil
}
