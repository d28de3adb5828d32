package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximilianKoestler/hcloud-openapi/schematypes"
)

func TestDedupeTool_Fresh(t *testing.T) {
	withCache(t, false)

	input := dedupeInput{
		Input:           schemaInput{Content: networksDoc},
		Fresh:           true,
		IncludeDocument: true,
	}
	result, output, err := handleDedupe(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "fresh", output.Mode)
	assert.Equal(t, 1, output.ExtractedCount)
	assert.Zero(t, output.FixCount)
	assert.Zero(t, output.WarningCount)
	assert.Equal(t, []componentOutput{{
		Name:       "network",
		Path:       "list_networks_response/networks",
		References: 2,
	}}, output.Components)
	assert.Equal(t, 1, output.Returned)
	assert.Empty(t, output.StalePins)
	assert.Contains(t, output.Document, `"$ref": "#/components/schemas/network"`)
	assert.Empty(t, output.TypesWritten)
}

func TestDedupeTool_FreshSavesNamingFile(t *testing.T) {
	withCache(t, false)
	types := filepath.Join(t.TempDir(), "schema_types.json")

	input := dedupeInput{
		Input:     schemaInput{Content: networksDoc},
		Types:     types,
		Fresh:     true,
		SaveTypes: true,
	}
	_, output, err := handleDedupe(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, types, output.TypesWritten)

	entries, err := schematypes.Load(types)
	require.NoError(t, err)
	assert.Equal(t, []schematypes.Entry{{
		Name: "network",
		Path: []string{"list_networks_response", "networks"},
	}}, entries)
}

func TestDedupeTool_OutputFailureSkipsNamingFile(t *testing.T) {
	withCache(t, false)
	types := filepath.Join(t.TempDir(), "schema_types.json")

	input := dedupeInput{
		Input:           schemaInput{Content: networksDoc},
		Types:           types,
		Fresh:           true,
		SaveTypes:       true,
		IncludeDocument: true,
		Format:          "toml",
	}
	result, _, err := handleDedupe(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	_, statErr := os.Stat(types)
	assert.True(t, os.IsNotExist(statErr), "naming file must not be written when the document fails")
}

func TestDedupeTool_Pinned(t *testing.T) {
	withCache(t, false)
	dir := t.TempDir()
	types := writeFile(t, dir, "schema_types.json", `[
  {"name": "private_network", "path": ["list_servers_response", "networks"]},
  {"name": "volume", "path": ["list_volumes_response", "volumes"]}
]
`)

	input := dedupeInput{
		Input:     schemaInput{Content: networksDoc},
		Types:     types,
		SaveTypes: true,
	}
	result, output, err := handleDedupe(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "pinned", output.Mode)
	assert.Equal(t, 1, output.ExtractedCount)
	require.Len(t, output.Components, 1)
	assert.Equal(t, "private_network", output.Components[0].Name)
	assert.Equal(t, 2, output.Components[0].References)

	require.Len(t, output.StalePins, 1)
	assert.Equal(t, "volume", output.StalePins[0].Name)
	assert.Equal(t, "list_volumes_response/volumes", output.StalePins[0].Path)
	assert.GreaterOrEqual(t, output.WarningCount, 1)

	// The stale entry is dropped from the rewritten naming file.
	entries, err := schematypes.Load(types)
	require.NoError(t, err)
	assert.Equal(t, []schematypes.Entry{{
		Name: "private_network",
		Path: []string{"list_servers_response", "networks"},
	}}, entries)
}

func TestDedupeTool_NullableRefsOverride(t *testing.T) {
	withCache(t, false)
	keep := true

	opts, err := buildDedupeOptions(dedupeInput{
		Input:        schemaInput{Content: networksDoc},
		Fresh:        true,
		NullableRefs: &keep,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestDedupeTool_InputErrors(t *testing.T) {
	withCache(t, false)

	tests := []struct {
		name  string
		input dedupeInput
	}{
		{
			name:  "pinned mode without naming file",
			input: dedupeInput{Input: schemaInput{Content: networksDoc}},
		},
		{
			name:  "save without naming file",
			input: dedupeInput{Input: schemaInput{Content: networksDoc}, Fresh: true, SaveTypes: true},
		},
		{
			name:  "missing naming file",
			input: dedupeInput{Input: schemaInput{Content: networksDoc}, Types: filepath.Join(t.TempDir(), "missing.json")},
		},
		{
			name:  "no input",
			input: dedupeInput{Fresh: true},
		},
		{
			name:  "bad format",
			input: dedupeInput{Input: schemaInput{Content: networksDoc}, Fresh: true, IncludeDocument: true, Format: "toml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleDedupe(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
