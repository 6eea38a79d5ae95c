package server

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/ultrasearch/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// LogBaseURL is where the nightly observation logs are published.
	// Night links on rendered pages point below it.
	LogBaseURL string

	// Search defaults used when a request omits radius or expose.
	DefaultRadiusDeg        float64
	DefaultMinExposeMinutes float64

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	RateBurst int
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:                    "localhost",
		Port:                    8080,
		PathPrefix:              "/api/v1",
		DefaultRadiusDeg:        constants.DefaultRadiusDeg,
		DefaultMinExposeMinutes: constants.DefaultMinExposeMinutes,
		CORSEnabled:             false,
		CORSOrigins:             []string{},
		RateLimit:               constants.DefaultRateLimit,
		RateBurst:               constants.BurstSize,
		CacheTTL:                constants.CacheTTL,
		ReadTimeout:             10 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             120 * time.Second,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
