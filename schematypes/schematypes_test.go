package schematypes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{Name: "server", Path: []string{"get_server_response", "server"}},
		{Description: "Attached network", Name: "network", Path: []string{"get_server_response", "server", "private_net"}},
	}
}

func TestMarshal_JSON(t *testing.T) {
	data, err := Marshal("schema_types.json", sampleEntries())
	require.NoError(t, err)

	want := `[
  {
    "description": "Attached network",
    "name": "network",
    "path": [
      "get_server_response",
      "server",
      "private_net"
    ]
  },
  {
    "name": "server",
    "path": [
      "get_server_response",
      "server"
    ]
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal("schema_types.json", nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"schema_types.json", "schema_types.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, sampleEntries()))

			loaded, err := Load(path)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			assert.Equal(t, "network", loaded[0].Name)
			assert.Equal(t, "Attached network", loaded[0].Description)
			assert.Equal(t, "server", loaded[1].Name)
			assert.Equal(t, schema.Location{"get_server_response", "server"}, loaded[1].Location())
		})
	}
}

func TestSave_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema_types.json")
	require.NoError(t, Save(path, sampleEntries()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Save(path, loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, oaserrors.ErrParse)

	tests := map[string]string{
		"malformed.json": `[{"name": "server", "path": [`,
		"noname.json":    `[{"path": ["a", "b"]}]`,
		"nopath.json":    `[{"name": "server"}]`,
		"object.json":    `{"name": "server"}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := Load(path)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
		})
	}
}

func TestStalePins(t *testing.T) {
	entries := []Entry{
		{Name: "network", Path: []string{"get_server_response", "server", "private_net"}},
		{Name: "server", Path: []string{"get_server_response", "servr"}},
	}
	locations := []schema.Location{
		{"get_server_response"},
		{"get_server_response", "server"},
		{"get_server_response", "server", "private_net"},
	}

	stale := StalePins(entries, locations)
	require.Len(t, stale, 1)
	assert.Equal(t, "server", stale[0].Entry.Name)
	assert.Equal(t, "get_server_response/server", stale[0].Closest)
	assert.Greater(t, stale[0].Similarity, float32(0.9))
}
