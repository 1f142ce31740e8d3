package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/splitter"
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

	// Split tool defaults.
	SplitMethod   splitter.Method
	MaxOperations int

	// Merge tool defaults.
	ConflictStrategy document.ConflictPolicy
	MergeConcurrency int

	// MaxInlineSize is the largest inline document, in bytes, a tool accepts.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASPLIT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASPLIT_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASPLIT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASPLIT_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASPLIT_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASPLIT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		SplitMethod:        envMethod("OASPLIT_SPLIT_METHOD", splitter.MethodPath),
		MaxOperations:      envInt("OASPLIT_MAX_OPERATIONS", splitter.DefaultMaxOperations),
		ConflictStrategy:   envPolicy("OASPLIT_CONFLICT_STRATEGY", document.PolicyKeepFirst),
		MergeConcurrency:   envInt("OASPLIT_MERGE_CONCURRENCY", 1),
		MaxInlineSize:      envInt64("OASPLIT_MAX_INLINE_SIZE", 10*1024*1024),
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

func envMethod(key string, fallback splitter.Method) splitter.Method {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	m, err := splitter.ParseMethod(v)
	if err != nil {
		slog.Warn("invalid split method env var, using default", "key", key, "value", v, "default", string(fallback)) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return m
}

func envPolicy(key string, fallback document.ConflictPolicy) document.ConflictPolicy {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	p, err := document.ParsePolicy(v)
	if err != nil {
		slog.Warn("invalid conflict strategy env var, using default", "key", key, "value", v, "default", string(fallback)) //nolint:gosec // G706: values are structured log fields, not format strings
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
