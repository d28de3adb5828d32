package hcloudopenapi

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDetails_Defaults(t *testing.T) {
	// Development builds keep the values the ldflags would replace.
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildDetails_Ldflags(t *testing.T) {
	saved := [3]string{version, commit, buildTime}
	t.Cleanup(func() { version, commit, buildTime = saved[0], saved[1], saved[2] })

	version, commit, buildTime = "v0.4.0", "1a2b3c4", "2026-10-01T12:00:00Z"

	assert.Equal(t, "v0.4.0", Version())
	assert.Equal(t, "1a2b3c4", Commit())
	assert.Equal(t, "2026-10-01T12:00:00Z", BuildTime())
}

func TestBuildInfo(t *testing.T) {
	lines := strings.Split(BuildInfo(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Version: "+Version(), lines[0])
	assert.Equal(t, "Commit: "+Commit(), lines[1])
	assert.Equal(t, "Build Time: "+BuildTime(), lines[2])
	assert.Equal(t, "Go Version: "+GoVersion(), lines[3])
}
