package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

type parseInput struct {
	Input  schemaInput `json:"input"            jsonschema:"The schema documents to parse"`
	Path   string      `json:"path,omitempty"   jsonschema:"Return the schema at this location: a component id followed by property names, joined with '/' (array items add no segment)"`
	Offset int         `json:"offset,omitempty" jsonschema:"Skip the first N component ids (for pagination)"`
	Limit  int         `json:"limit,omitempty"  jsonschema:"Maximum number of component ids to return (default 100)"`
}

type parseOutput struct {
	ComponentCount int                `json:"component_count"`
	Returned       int                `json:"returned"`
	Components     []string           `json:"components,omitempty"`
	Sources        []string           `json:"sources,omitempty"`
	Diagnostics    []diagnosticOutput `json:"diagnostics,omitempty"`
	Schema         string             `json:"schema,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Input.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	ids := result.Registry.IDs()
	output := parseOutput{
		ComponentCount: len(ids),
		Components:     paginate(ids, input.Offset, input.Limit),
		Sources:        result.SourcePaths,
		Diagnostics:    makeDiagnostics(result.Diagnostics),
	}
	output.Returned = len(output.Components)

	if input.Path != "" {
		node, ok := result.Registry.Lookup(schema.ParseLocation(input.Path))
		if !ok {
			return errResult(fmt.Errorf("no schema at path %q", input.Path)), parseOutput{}, nil
		}
		data, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.Schema = string(data)
	}
	return nil, output, nil
}
