package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/MaximilianKoestler/hcloud-openapi/deduplicator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Listing defaults shared by every tool that paginates.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize int64

	// Dedupe tool defaults.
	NullableRefs bool
	SingleUse    deduplicator.SingleUsePolicy
	MaxDepth     int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from HCLOUD_OPENAPI_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("HCLOUD_OPENAPI_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("HCLOUD_OPENAPI_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("HCLOUD_OPENAPI_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("HCLOUD_OPENAPI_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("HCLOUD_OPENAPI_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("HCLOUD_OPENAPI_LIST_LIMIT", 100),
		MaxLimit:           envInt("HCLOUD_OPENAPI_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("HCLOUD_OPENAPI_MAX_INLINE_SIZE", 10*1024*1024),
		NullableRefs:       envBool("HCLOUD_OPENAPI_NULLABLE_REFS", false),
		SingleUse:          envSingleUse("HCLOUD_OPENAPI_SINGLE_USE", deduplicator.SingleUseWarn),
		MaxDepth:           envInt("HCLOUD_OPENAPI_MAX_DEPTH", 0),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envSingleUse(key string, fallback deduplicator.SingleUsePolicy) deduplicator.SingleUsePolicy {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	p, err := deduplicator.ParseSingleUsePolicy(v)
	if err != nil {
		slog.Warn("invalid single-use policy env var, using default", "key", key, "value", v, "default", fallback.String()) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return p
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
