package translation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a DirectoryCatalog when translation databases are
// installed or removed. Events are debounced so a multi-file install
// triggers a single rescan.
type Watcher struct {
	catalog  *DirectoryCatalog
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher over the catalog's directory.
func NewWatcher(catalog *DirectoryCatalog, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{catalog: catalog, debounce: debounce, logger: logger}
}

// Run watches until ctx is cancelled. A missing directory stops the watcher
// silently; translations can still be listed from the last scan.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.catalog.dir); err != nil {
		w.logger.Warn("translations directory not watchable",
			slog.String("dir", w.catalog.dir),
			slog.String("error", err.Error()))
		return nil
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".db") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("translation watcher error", slog.String("error", err.Error()))

		case <-fire:
			timer = nil
			fire = nil
			if err := w.catalog.Reload(); err != nil {
				w.logger.Warn("translation catalog reload failed",
					slog.String("error", err.Error()))
			}
		}
	}
}
