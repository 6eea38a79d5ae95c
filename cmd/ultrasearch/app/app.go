// Package app provides the application context and dependency management
// for the ultrasearch CLI: configuration, logging and the shared catalog
// store that every command reads from.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/internal/embedded"
	"github.com/agentstation/ultrasearch/internal/server"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

// App represents the ultrasearch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Store is created lazily and shared by every command.
	mu          sync.RWMutex
	store       *catalog.Store
	stopWatcher context.CancelFunc
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Instrument returns the configured instrument, ULTRACAM by default.
func (a *App) Instrument() (catalog.Instrument, error) {
	if a.config.Instrument == "" {
		return catalog.ULTRACAM, nil
	}
	return catalog.ParseInstrument(a.config.Instrument)
}

// SearchDefaults returns the configured radius and minimum exposure.
func (a *App) SearchDefaults() (float64, float64) {
	return a.config.SearchRadius, a.config.SearchExpose
}

// ServerConfig returns the HTTP server settings.
func (a *App) ServerConfig() server.Config {
	cfg := a.config.Server
	cfg.DefaultRadiusDeg = a.config.SearchRadius
	cfg.DefaultMinExposeMinutes = a.config.SearchExpose
	return cfg
}

// Watch reports whether catalog files are watched for changes.
func (a *App) Watch() bool {
	return a.config.Watch
}

// Store returns the catalog store, loading every catalog on first use.
// When watching is enabled, a watcher reloads changed files until Shutdown
// or until ctx is cancelled.
func (a *App) Store(ctx context.Context) (*catalog.Store, error) {
	a.mu.RLock()
	if a.store != nil {
		store := a.store
		a.mu.RUnlock()
		return store, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.store != nil {
		return a.store, nil
	}

	store := catalog.NewStore(a.storeOptions()...)
	if err := store.Load(ctx); err != nil {
		return nil, errors.WrapResource("load", "catalogs", "", err)
	}

	if a.config.Watch {
		w, err := catalog.NewWatcher(store, 0)
		if err != nil {
			return nil, err
		}
		watchCtx, cancel := context.WithCancel(ctx)
		a.stopWatcher = cancel
		go func() {
			if err := w.Run(watchCtx); err != nil {
				a.logger.Error().Err(err).Msg("Catalog watcher stopped")
			}
		}()
		a.logger.Debug().Int("files", w.Files()).Msg("Watching catalog files")
	}

	a.store = store
	return store, nil
}

// Shutdown stops background work started by the app.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopWatcher != nil {
		a.stopWatcher()
		a.stopWatcher = nil
	}
	return nil
}

// storeOptions builds one catalog source per instrument. Instruments
// without a configured path fall back to the embedded sample catalog.
func (a *App) storeOptions() []catalog.Option {
	opts := []catalog.Option{catalog.WithLogger(a.logger)}
	for _, inst := range catalog.Instruments() {
		src := catalog.Source{Instrument: inst, Path: a.config.Catalogs[inst]}
		if src.Path == "" {
			src.Path = embedded.Path(inst.String())
			src.FS = embedded.FS
		}
		opts = append(opts, catalog.WithSource(src))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a preloaded catalog store (useful for testing).
func WithStore(store *catalog.Store) Option {
	return func(a *App) error {
		a.store = store
		return nil
	}
}
