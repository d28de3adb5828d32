package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/parser"
)

// schemaInput represents the two ways schema documents can be provided to a
// tool. Exactly one of Files or Content must be set.
type schemaInput struct {
	Files   []string `json:"files,omitempty"   jsonschema:"Schema files or doublestar globs (e.g. schemas/**/*.json)"`
	Content string   `json:"content,omitempty" jsonschema:"Inline schema document content (JSON or YAML)"`
	Name    string   `json:"name,omitempty"    jsonschema:"Document name for inline content; a bare schema takes its component id from it (default: content)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// parseCacheStore provides a session-scoped cache for parsed documents.
// File inputs are keyed by every (absolutePath, modTime) pair. Content inputs
// are keyed by an xxhash digest. Entries are never handed out directly: the
// pipeline rewrites registries in place, so callers get a deep copy.
type parseCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var parseCache = &parseCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a copy of a cached result or nil. Expired entries are lazily removed.
func (c *parseCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return cloneResult(e.result)
	}
	return nil
}

// putWithTTL stores a copy of result, evicting the oldest entry if at capacity.
func (c *parseCacheStore) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: cloneResult(result), insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *parseCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *parseCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *parseCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *parseCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cloneResult(r *parser.ParseResult) *parser.ParseResult {
	return &parser.ParseResult{
		Registry:    r.Registry.Clone(),
		Diagnostics: append([]parser.Diagnostic(nil), r.Diagnostics...),
		SourcePaths: append([]string(nil), r.SourcePaths...),
	}
}

// fileCacheKey keys a set of resolved files by path and modification time.
// It returns "" when any file cannot be stat'ed.
func fileCacheKey(paths []string) string {
	var b strings.Builder
	b.WriteString("files")
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		fmt.Fprintf(&b, ":%s@%d", absPath, info.ModTime().UnixNano())
	}
	return b.String()
}

func contentCacheKey(name, content string) string {
	return fmt.Sprintf("content:%s:%016x", name, xxhash.Sum64String(content))
}

func (s schemaInput) documentName() string {
	if s.Name != "" {
		return s.Name
	}
	return "content"
}

// resolve parses the documents from whichever input was provided, using the
// cache when enabled. The returned registry is always safe to modify.
func (s schemaInput) resolve() (*parser.ParseResult, error) {
	hasFiles := len(s.Files) > 0
	hasContent := s.Content != ""
	if hasFiles == hasContent {
		return nil, fmt.Errorf("exactly one of files or content must be provided")
	}

	if hasContent && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set HCLOUD_OPENAPI_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var opts []parser.Option
	var key string
	var ttl time.Duration
	if hasFiles {
		paths, err := parser.ExpandGlobs(s.Files...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithFilePaths(paths...))
		if cfg.CacheEnabled {
			key, ttl = fileCacheKey(paths), cfg.CacheFileTTL
		}
	} else {
		name := s.documentName()
		opts = append(opts, parser.WithBytes(name, []byte(s.Content)))
		if cfg.CacheEnabled {
			key, ttl = contentCacheKey(name, s.Content), cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := parseCache.get(key); cached != nil {
			return cached, nil
		}
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		parseCache.putWithTTL(key, result, ttl)
	}
	return result, nil
}
