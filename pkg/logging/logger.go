// Package logging provides structured logging for ultrasearch using zerolog.
// Terminals get human-readable console output; everything else gets JSON
// lines suitable for log collectors.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("instrument", "ultracam").Int("records", n).Msg("Catalog loaded")
//
//	ctx := logging.WithInstrument(context.Background(), "ultraspec")
//	logging.FromContext(ctx).Debug().Msg("Resolving targets")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code that has no logger of its own, until the CLI
// installs the configured one.
var defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}
