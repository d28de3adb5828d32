package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema_types.json")

	require.NoError(t, WriteAtomic(path, []byte("first"), ReadableByAll))
	require.NoError(t, WriteAtomic(path, []byte("second"), ReadableByAll))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, ReadableByAll, info.Mode().Perm())
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	err := WriteAtomic(filepath.Join(t.TempDir(), "missing", "out.json"), []byte("x"), OwnerReadWrite)
	assert.Error(t, err)
}
