package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/internal/embedded"
	"github.com/agentstation/ultrasearch/internal/server"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default: the embedded
// sample catalogs, ULTRACAM, the built-in search defaults and a no-op
// logger.
type Mock struct {
	StoreFunc          func(context.Context) (*catalog.Store, error)
	InstrumentFunc     func() (catalog.Instrument, error)
	SearchDefaultsFunc func() (float64, float64)
	ServerConfigFunc   func() server.Config
	WatchFunc          func() bool
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Store returns a store using the mock function or the embedded samples.
func (m *Mock) Store(ctx context.Context) (*catalog.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx)
	}
	return EmbeddedStore(ctx, m.Logger())
}

// Instrument returns the instrument using the mock function or ULTRACAM.
func (m *Mock) Instrument() (catalog.Instrument, error) {
	if m.InstrumentFunc != nil {
		return m.InstrumentFunc()
	}
	return catalog.ULTRACAM, nil
}

// SearchDefaults returns the search defaults using the mock function or
// the built-in defaults.
func (m *Mock) SearchDefaults() (float64, float64) {
	if m.SearchDefaultsFunc != nil {
		return m.SearchDefaultsFunc()
	}
	return constants.DefaultRadiusDeg, constants.DefaultMinExposeMinutes
}

// ServerConfig returns the server config using the mock function or the
// server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Watch returns the watch setting using the mock function or false.
func (m *Mock) Watch() bool {
	if m.WatchFunc != nil {
		return m.WatchFunc()
	}
	return false
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// EmbeddedStore returns a loaded store over the embedded sample catalogs.
func EmbeddedStore(ctx context.Context, logger *zerolog.Logger) (*catalog.Store, error) {
	opts := []catalog.Option{catalog.WithLogger(logger)}
	for _, inst := range catalog.Instruments() {
		opts = append(opts, catalog.WithSource(catalog.Source{
			Instrument: inst,
			Path:       embedded.Path(inst.String()),
			FS:         embedded.FS,
		}))
	}
	store := catalog.NewStore(opts...)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
