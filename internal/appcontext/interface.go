// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/internal/server"
	"github.com/agentstation/ultrasearch/pkg/catalog"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/ultrasearch/app implements this interface,
// providing dependency injection for commands while maintaining testability.
type Interface interface {
	// Store returns the catalog store with every configured catalog loaded.
	// The store is created on first use and shared afterwards.
	Store(ctx context.Context) (*catalog.Store, error)

	// Instrument returns the instrument selected by --instrument or
	// configuration.
	Instrument() (catalog.Instrument, error)

	// SearchDefaults returns the configured radius in degrees and minimum
	// exposure in minutes.
	SearchDefaults() (radiusDeg, minExposeMinutes float64)

	// ServerConfig returns the HTTP server settings.
	ServerConfig() server.Config

	// Watch reports whether catalog files should be watched for changes.
	Watch() bool

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml,
	// html). Empty means auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
