// Package constants provides shared constants used throughout ultrasearch:
// timeouts, limits, file permissions and search defaults that must agree
// between the CLI, the HTTP server and the TUI.
package constants

import "time"

// Timeout constants
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout = 5 * time.Second

	// ReloadTimeout bounds a single catalog reload
	ReloadTimeout = 30 * time.Second

	// WatchDebounce collapses bursts of file events into one reload
	WatchDebounce = 250 * time.Millisecond
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxCatalogBytes caps the size of a catalog file read into memory
	MaxCatalogBytes = 64 << 20

	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 100
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute per client
	DefaultRateLimit = 120

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 20
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Search defaults used when a query omits radius or exposure.
const (
	// DefaultRadiusDeg is the default search radius in degrees
	DefaultRadiusDeg = 0.1

	// DefaultMinExposeMinutes is the default minimum exposure in minutes
	DefaultMinExposeMinutes = 0.0
)

// Path constants
const (
	// DefaultConfigFile is the config file name looked up in the home directory
	DefaultConfigFile = ".ultrasearch"

	// EnvPrefix is the prefix for environment overrides
	EnvPrefix = "ULTRASEARCH"
)
