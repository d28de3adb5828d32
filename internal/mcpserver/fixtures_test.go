package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// networksDoc holds two responses that list networks of the same shape.
const networksDoc = `{
  "components": {
    "schemas": {
      "list_networks_response": {
        "type": "object",
        "properties": {
          "networks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id"],
              "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
              }
            }
          }
        }
      },
      "list_servers_response": {
        "type": "object",
        "properties": {
          "networks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id"],
              "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

// serverDoc is a bare schema whose enum is out of order.
const serverDoc = `type: object
properties:
  status:
    type: string
    enum: [running, off]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// withCache enables caching for the duration of the test and starts from an
// empty cache.
func withCache(t *testing.T, enabled bool) {
	t.Helper()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = enabled
	parseCache.reset()
	t.Cleanup(func() {
		cfg.CacheEnabled = old
		parseCache.reset()
	})
}
