package domain

import "time"

// Config file and default locations.
const (
	ConfigFileName = "grove.yaml"
	CacheFileName  = "cache.json"
)

// DefaultGraphBaseURL is the Microsoft Graph v1.0 endpoint.
const DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"

// DefaultTokenEnv names the environment variable holding the bearer token.
const DefaultTokenEnv = "GROVE_GRAPH_TOKEN"

// DefaultCacheMaxBytes bounds the encoded size of the cache file.
const DefaultCacheMaxBytes = 4 << 20

// Config is the resolved application configuration.
type Config struct {
	// GraphBaseURL is the Microsoft Graph API root, without trailing slash.
	GraphBaseURL string

	// TokenEnv names the environment variable the token provider reads.
	TokenEnv string

	// CachePath is the cache file location. Empty means in-memory only.
	CachePath string

	// CacheMaxBytes bounds the encoded cache size. Zero means unbounded.
	CacheMaxBytes int

	// TTLs overrides per-category cache lifetimes, keyed by category name.
	TTLs map[string]time.Duration

	// LogJSON switches log output to JSON lines.
	LogJSON bool
}
