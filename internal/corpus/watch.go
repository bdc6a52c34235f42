package corpus

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/kamusis/skillscope/internal/logger"
	"github.com/kamusis/skillscope/internal/search"
)

// DefaultDebounce is how long the watcher waits for the corpus to settle
// before reloading.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc is called after every reload with the snapshot now in effect.
type ReloadFunc func(ctx context.Context, snap *search.Snapshot, warns []*search.ParseError)

// Watcher reloads a Catalog whenever files under the corpus root change.
type Watcher struct {
	root     string
	patterns Patterns
	catalog  *search.Catalog
	debounce time.Duration
	onReload ReloadFunc
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnReload registers a callback invoked after each reload.
func WithOnReload(fn ReloadFunc) WatchOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher creates a watcher for root that reloads catalog.
func NewWatcher(root string, patterns Patterns, catalog *search.Catalog, opts ...WatchOption) *Watcher {
	w := &Watcher{
		root:     root,
		patterns: patterns,
		catalog:  catalog,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Reload rediscovers the corpus and swaps a new snapshot into the catalog.
func (w *Watcher) Reload(ctx context.Context) error {
	sources, err := Discover(ctx, w.root, w.patterns)
	if err != nil {
		return err
	}
	warns := w.catalog.Reload(ctx, sources)
	if w.onReload != nil {
		w.onReload(ctx, w.catalog.Snapshot(), warns)
	}
	return nil
}

// Run watches the corpus until ctx is cancelled. Bursts of events are
// coalesced into a single reload after the debounce delay.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fw.Close()

	if err := w.addTree(ctx, fw, w.root); err != nil {
		return err
	}

	log := logger.G(ctx).WithField("root", w.root)
	log.Info("watching corpus")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories must be watched too.
				_ = w.addTree(ctx, fw, event.Name)
			}
			log.WithField("file", event.Name).WithField("operation", event.Op.String()).Debug("corpus change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if err := w.Reload(ctx); err != nil {
				log.WithError(err).Error("corpus reload failed")
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("error watching corpus")
		}
	}
}

// addTree adds dir and all its subdirectories, skipping hidden ones.
func (w *Watcher) addTree(ctx context.Context, fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return errors.Wrapf(err, "cannot watch %s", path)
		}
		logger.G(ctx).WithField("directory", path).Trace("watching directory")
		return nil
	})
}
