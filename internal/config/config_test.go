package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/deduplicator"
	"github.com/MaximilianKoestler/hcloud-openapi/fixer"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, fixer.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, deduplicator.DefaultThresholds(), cfg.Thresholds())
	assert.True(t, cfg.Normalize.Enabled)
	assert.Equal(t, "resources/schema_types.json", cfg.Files.NamingFile)

	opts, err := cfg.DeduplicatorOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 6)
}

func TestParse_Overrides(t *testing.T) {
	doc := `
[normalize]
float_allow_list = ["price"]

[extract]
min_count = 3
nullable_refs = true
single_use = "ignore"

[files]
inputs = ["schemas/**/*.json"]
`
	cfg, err := Parse("hcloud-openapi.toml", []byte(doc))
	require.NoError(t, err)

	assert.Contains(t, cfg.Normalize.FloatAllowList, "price")
	assert.Equal(t, fixer.DefaultPolicy().WideCounters, cfg.Normalize.WideCounters)
	assert.Equal(t, 3, cfg.Thresholds().MinCount)
	assert.Equal(t, 2, cfg.Thresholds().MinComplexity)
	assert.True(t, cfg.Extract.NullableRefs)
	assert.Equal(t, "ignore", cfg.Extract.SingleUse)
	assert.Equal(t, []string{"schemas/**/*.json"}, cfg.Files.Inputs)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"malformed":       "[extract\nmin_count = 2",
		"unknown key":     "[extract]\nmin_cout = 2\n",
		"bad single use":  "[extract]\nsingle_use = \"retract\"\n",
		"bad pattern":     "[normalize]\nlabel_key_pattern = \"([a-z\"\n",
		"zero count":      "[extract]\nmin_count = 0\n",
		"negative depth":  "[extract]\nmax_depth = -1\n",
		"wrong type":      "[extract]\nmin_count = \"two\"\n",
		"negative childs": "[extract]\nmin_direct_children = -1\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("hcloud-openapi.toml", []byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hcloud-openapi.toml")
	require.NoError(t, os.WriteFile(path, []byte("[extract]\nmin_complexity = 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Extract.MinComplexity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
