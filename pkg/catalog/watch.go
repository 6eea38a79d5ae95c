package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Watcher reloads catalogs when their files change on disk. Every change
// triggers a full reload of the affected instrument; nothing is patched in
// place.
//
// Directories are watched rather than files because editors and rsync
// usually replace a file by renaming a temporary one over it.
type Watcher struct {
	store    *Store
	debounce time.Duration
	logger   *zerolog.Logger

	files map[string]Instrument // cleaned absolute path -> instrument
	dirs  []string

	mu     sync.Mutex
	timers map[Instrument]*time.Timer
}

// NewWatcher prepares a watcher for every disk-backed source in store.
// Embedded sources are skipped.
func NewWatcher(store *Store, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = constants.WatchDebounce
	}
	w := &Watcher{
		store:    store,
		debounce: debounce,
		logger:   store.logger,
		files:    make(map[string]Instrument),
		timers:   make(map[Instrument]*time.Timer),
	}

	seen := make(map[string]bool)
	for _, inst := range store.Instruments() {
		src, _ := store.Source(inst)
		if src.FS != nil || src.Path == "" {
			continue
		}
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			return nil, errors.WrapIO("watch", src.Path, err)
		}
		w.files[abs] = inst
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Files returns the number of watched catalog files.
func (w *Watcher) Files() int {
	return len(w.files)
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.files) == 0 {
		<-ctx.Done()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapIO("watch", "", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return errors.WrapIO("watch", dir, err)
		}
		w.logger.Debug().Str("dir", dir).Msg("Watching catalog directory")
	}

	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if inst, ok := w.Relevant(ev); ok {
				w.schedule(ctx, inst)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Catalog watcher error")
		}
	}
}

// Relevant reports whether ev changes the contents of a watched catalog.
// Removals are ignored: the last good snapshot stays in service until a
// replacement file appears.
func (w *Watcher) Relevant(ev fsnotify.Event) (Instrument, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	inst, ok := w.files[abs]
	return inst, ok
}

func (w *Watcher) schedule(ctx context.Context, inst Instrument) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[inst]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[inst] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, inst)
		w.mu.Unlock()

		reloadCtx, cancel := context.WithTimeout(ctx, constants.ReloadTimeout)
		defer cancel()
		if _, err := w.store.Reload(reloadCtx, inst); err != nil {
			w.logger.Warn().Err(err).Str("instrument", inst.String()).Msg("Keeping previous catalog after failed reload")
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for inst, t := range w.timers {
		t.Stop()
		delete(w.timers, inst)
	}
}
