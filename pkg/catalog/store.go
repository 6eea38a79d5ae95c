// Package catalog loads observation catalogs and keeps the current snapshot
// of each instrument.
//
// A Store holds one immutable Snapshot per instrument. Queries read the
// snapshot pointer once and work on it without locks; Reload builds a
// complete replacement and swaps it in, so readers see either the old
// catalog or the new one, never a mix.
package catalog

import (
	"context"
	"io/fs"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/logging"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

// Source tells the store where an instrument's catalog lives. When FS is set
// Path is resolved inside it; otherwise Path is a file on disk.
type Source struct {
	Instrument Instrument
	Path       string
	FS         fs.FS
}

// String describes the source for logs and listings.
func (s Source) String() string {
	if s.FS != nil {
		return "embedded:" + s.Path
	}
	return s.Path
}

// Load reads the source's records.
func (s Source) Load() ([]observations.ObservationRecord, error) {
	if s.FS != nil {
		return LoadFS(s.FS, s.Path)
	}
	return LoadFile(s.Path)
}

// ReloadHook is called after a snapshot has been swapped in. Hooks run
// while the reload lock is held and must not call Reload.
type ReloadHook func(snap *Snapshot)

// Store keeps the current snapshot for each configured instrument.
type Store struct {
	mu      sync.RWMutex
	sources map[Instrument]Source
	current map[Instrument]*atomic.Pointer[Snapshot]
	hooks   []ReloadHook

	// reloadMu serialises reloads so generations are stored in order.
	reloadMu   sync.Mutex
	generation atomic.Uint64
	logger     *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSource registers an instrument's catalog source.
func WithSource(src Source) Option {
	return func(s *Store) {
		s.sources[src.Instrument] = src
		s.current[src.Instrument] = &atomic.Pointer[Snapshot]{}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store. Call Load or Reload to read catalogs.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sources: make(map[Instrument]Source),
		current: make(map[Instrument]*atomic.Pointer[Snapshot]),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Instruments returns the configured instruments in display order.
func (s *Store) Instruments() []Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	known := Instruments()
	out := make([]Instrument, 0, len(s.sources))
	for _, inst := range known {
		if _, ok := s.sources[inst]; ok {
			out = append(out, inst)
		}
	}
	var extra []Instrument
	for inst := range s.sources {
		if !slices.Contains(known, inst) {
			extra = append(extra, inst)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Source returns the configured source for an instrument.
func (s *Store) Source(inst Instrument) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[inst]
	return src, ok
}

// OnReload registers a hook called after every successful reload.
func (s *Store) OnReload(fn ReloadHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Load reads every configured catalog. All instruments are attempted; the
// returned error joins the individual failures.
func (s *Store) Load(ctx context.Context) error {
	var errs []error
	for _, inst := range s.Instruments() {
		if _, err := s.Reload(ctx, inst); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reload re-reads one instrument's catalog from scratch and swaps it in.
// On failure the previous snapshot stays current.
func (s *Store) Reload(ctx context.Context, inst Instrument) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapResource("reload", "catalog", inst.String(), errors.ErrCanceled)
	}

	s.mu.RLock()
	src, ok := s.sources[inst]
	slot := s.current[inst]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("instrument", inst.String())
	}

	logger := s.logger.With().Str("instrument", inst.String()).Str("source", src.String()).Logger()

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	records, err := src.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Catalog load failed")
		return nil, errors.WrapResource("reload", "catalog", inst.String(), err)
	}

	snap := NewSnapshot(inst, src.String(), s.generation.Add(1), records)
	slot.Store(snap)

	logger.Info().
		Int("records", snap.Len()).
		Uint64("generation", snap.Generation).
		Msg("Catalog loaded")

	s.mu.RLock()
	hooks := slices.Clone(s.hooks)
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(snap)
	}
	return snap, nil
}

// Snapshot returns the current snapshot for an instrument.
func (s *Store) Snapshot(inst Instrument) (*Snapshot, error) {
	s.mu.RLock()
	slot, ok := s.current[inst]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("instrument", inst.String())
	}
	snap := slot.Load()
	if snap == nil {
		return nil, errors.WrapResource("read", "catalog", inst.String(), errors.ErrUnavailable)
	}
	return snap, nil
}

// Infos summarises every loaded snapshot.
func (s *Store) Infos() []Info {
	var out []Info
	for _, inst := range s.Instruments() {
		if snap, err := s.Snapshot(inst); err == nil {
			out = append(out, snap.Info())
		}
	}
	return out
}
