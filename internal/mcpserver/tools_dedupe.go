package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MaximilianKoestler/hcloud-openapi/deduplicator"
	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
)

type dedupeInput struct {
	Input           schemaInput `json:"input"                      jsonschema:"The schema documents to deduplicate"`
	Types           string      `json:"types,omitempty"            jsonschema:"Naming file (schema_types.json) that pins component names. Required unless fresh is set."`
	Fresh           bool        `json:"fresh,omitempty"            jsonschema:"Derive every component name from occurrence locations instead of the naming file"`
	SaveTypes       bool        `json:"save_types,omitempty"       jsonschema:"Write the naming file (types) after a successful run"`
	NoNormalize     bool        `json:"no_normalize,omitempty"     jsonschema:"Skip the normalization pass"`
	NullableRefs    *bool       `json:"nullable_refs,omitempty"    jsonschema:"Keep nullable at reference sites (default from HCLOUD_OPENAPI_NULLABLE_REFS)"`
	IncludeDocument bool        `json:"include_document,omitempty" jsonschema:"Include the deduplicated document in output"`
	Format          string      `json:"format,omitempty"           jsonschema:"Document format: json (default) or yaml"`
	Output          string      `json:"output,omitempty"           jsonschema:"File path to write the deduplicated document to"`
	Offset          int         `json:"offset,omitempty"           jsonschema:"Skip the first N components (for pagination)"`
	Limit           int         `json:"limit,omitempty"            jsonschema:"Maximum number of components to return (default 100)"`
}

type componentOutput struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	References  int    `json:"references"`
}

type stalePinOutput struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Closest    string  `json:"closest,omitempty"`
	Similarity float32 `json:"similarity,omitempty"`
}

type dedupeOutput struct {
	Mode           string             `json:"mode"`
	ExtractedCount int                `json:"extracted_count"`
	FixCount       int                `json:"fix_count"`
	WarningCount   int                `json:"warning_count"`
	Returned       int                `json:"returned"`
	Components     []componentOutput  `json:"components,omitempty"`
	StalePins      []stalePinOutput   `json:"stale_pins,omitempty"`
	Diagnostics    []diagnosticOutput `json:"diagnostics,omitempty"`
	TypesWritten   string             `json:"types_written,omitempty"`
	WrittenTo      string             `json:"written_to,omitempty"`
	Document       string             `json:"document,omitempty"`
}

func handleDedupe(_ context.Context, _ *mcp.CallToolRequest, input dedupeInput) (*mcp.CallToolResult, dedupeOutput, error) {
	opts, err := buildDedupeOptions(input)
	if err != nil {
		return errResult(err), dedupeOutput{}, nil
	}

	result, err := deduplicator.DeduplicateWithOptions(opts...)
	if err != nil {
		return errResult(err), dedupeOutput{}, nil
	}

	output := dedupeOutput{
		Mode:           result.Mode.String(),
		ExtractedCount: result.ExtractedCount(),
		FixCount:       len(result.Fixes),
		WarningCount:   result.WarningCount(),
		Diagnostics:    makeDiagnostics(result.Diagnostics),
	}

	components := makeSlice[componentOutput](len(result.Components))
	for _, e := range result.Components {
		components = append(components, componentOutput{
			Name:        e.Name,
			Path:        e.Location().String(),
			Description: e.Description,
			References:  result.ReferenceCounts[e.Name],
		})
	}
	output.Components = paginate(components, input.Offset, input.Limit)
	output.Returned = len(output.Components)

	for _, s := range result.StalePins {
		output.StalePins = append(output.StalePins, stalePinOutput{
			Name:       s.Entry.Name,
			Path:       s.Entry.Location().String(),
			Closest:    s.Closest,
			Similarity: s.Similarity,
		})
	}

	output.WrittenTo, output.Document, err = emitDocument(result.Registry, input.Format, input.Output, input.IncludeDocument)
	if err != nil {
		return errResult(err), dedupeOutput{}, nil
	}

	// The naming file is only persisted once the document is out.
	if input.SaveTypes {
		if err := schematypes.Save(input.Types, result.Components); err != nil {
			return errResult(fmt.Errorf("failed to write naming file: %w", err)), dedupeOutput{}, nil
		}
		output.TypesWritten = input.Types
	}
	return nil, output, nil
}

// buildDedupeOptions translates the MCP input into deduplicator options,
// applying the HCLOUD_OPENAPI_* defaults for anything the input leaves unset.
func buildDedupeOptions(input dedupeInput) ([]deduplicator.Option, error) {
	if input.SaveTypes && input.Types == "" {
		return nil, fmt.Errorf("save_types requires types")
	}
	if !input.Fresh && input.Types == "" {
		return nil, fmt.Errorf("types is required unless fresh is set")
	}

	parsed, err := input.Input.resolve()
	if err != nil {
		return nil, err
	}

	nullableRefs := cfg.NullableRefs
	if input.NullableRefs != nil {
		nullableRefs = *input.NullableRefs
	}

	opts := []deduplicator.Option{
		deduplicator.WithParsed(*parsed),
		deduplicator.WithNormalize(!input.NoNormalize),
		deduplicator.WithNullableRefs(nullableRefs),
		deduplicator.WithSingleUsePolicy(cfg.SingleUse),
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, deduplicator.WithMaxDepth(cfg.MaxDepth))
	}
	if input.Fresh {
		opts = append(opts, deduplicator.WithFresh())
	} else {
		opts = append(opts, deduplicator.WithPinnedFile(input.Types))
	}
	return opts, nil
}
