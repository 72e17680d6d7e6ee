package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/mannaz/internal/storage"
)

// Event kinds passed to the watch callback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventCallback is called after a watcher-driven index change with one of
// the Event kinds and the changed document path.
type EventCallback func(kind string, path string)

// reconcileDelay debounces the reconciliation pass scheduled after renames.
const reconcileDelay = 200 * time.Millisecond

// watcher bundles the dependencies of one Watch run.
type watcher struct {
	db     *DB
	store  storage.Provider
	root   string
	logger *slog.Logger
	cb     EventCallback
}

// Watch starts an fsnotify watcher on the data root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful index mutation. This is what keeps search current when
// records are edited by hand rather than through the tool surface.
//
// Directories created at runtime join the watch list; hidden directories
// and dotfiles are ignored, the data dir is commonly under version
// control and edited in place. A rename fires on the old path only, so it
// schedules a reconciliation pass that diffs the index against the store.
func Watch(ctx context.Context, db *DB, store storage.Provider, dataRoot string, logger *slog.Logger, cb EventCallback) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	w := &watcher{db: db, store: store, root: dataRoot, logger: logger, cb: cb}
	if err := w.watchTree(fsw, dataRoot); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("root", dataRoot))

	reconcile := time.NewTimer(reconcileDelay)
	reconcile.Stop()

	for {
		select {
		case <-ctx.Done():
			reconcile.Stop()
			logger.Info("watcher: stopped")
			return nil

		case <-reconcile.C:
			w.reconcile()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(fsw, ev) {
				reconcile.Reset(reconcileDelay)
			}

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// handle processes one fsnotify event. The return value reports whether a
// reconciliation pass should be scheduled.
func (w *watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Op&fsnotify.Create != 0 {
		if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				return false
			}
			if err := w.watchTree(fsw, ev.Name); err != nil {
				w.logger.Warn("watcher: add new dir failed",
					slog.String("path", ev.Name), slog.String("error", err.Error()))
			} else {
				w.logger.Debug("watcher: watching new dir", slog.String("path", ev.Name))
			}
			// Files may land in a directory before its watch registers.
			w.indexTree(ev.Name)
			return false
		}
	}

	base := filepath.Base(ev.Name)
	if !strings.HasSuffix(base, ".md") || strings.HasPrefix(base, ".") {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return false
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		kind := EventUpdated
		if ev.Op&fsnotify.Create != 0 {
			kind = EventCreated
		}
		w.index(rel, kind)

	case ev.Op&fsnotify.Remove != 0:
		w.drop(rel)

	case ev.Op&fsnotify.Rename != 0:
		// Rename fires on the old path; the new path arrives as its own
		// Create event when it lands inside a watched dir.
		w.drop(rel)
		return true
	}
	return false
}

// index reads one document through the store and upserts it, emitting kind
// on success.
func (w *watcher) index(rel, kind string) {
	data, err := w.store.Read(rel)
	if err != nil {
		w.logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	if err := indexFile(w.db, rel, data); err != nil {
		w.logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watcher: indexed", slog.String("path", rel), slog.String("op", kind))
	w.emit(kind, rel)
}

// drop removes one path from the index.
func (w *watcher) drop(rel string) {
	if err := w.db.Delete(rel); err != nil {
		w.logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watcher: deleted", slog.String("path", rel))
	w.emit(EventDeleted, rel)
}

func (w *watcher) emit(kind, rel string) {
	if w.cb != nil {
		w.cb(kind, rel)
	}
}

// reconcile diffs the index against the store listing: entries whose file
// is gone are dropped, on-disk files with a stale or missing checksum are
// reindexed. Renames land here because their Create half is lost when the
// target directory was not yet watched.
func (w *watcher) reconcile() {
	checksums, err := w.db.AllChecksums()
	if err != nil {
		w.logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}
	metas, err := w.store.List("")
	if err != nil {
		w.logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Path] = m.Checksum
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if delErr := w.db.Delete(p); delErr == nil {
				w.logger.Debug("reconcile: removed stale", slog.String("path", p))
				w.emit(EventDeleted, p)
			}
		}
	}

	for p, cs := range disk {
		if checksums[p] == cs {
			continue
		}
		w.index(p, EventCreated)
	}
}

// indexTree indexes every visible .md file under dir.
func (w *watcher) indexTree(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}
		w.index(rel, EventCreated)
		return nil
	})
}

// watchTree adds root and every visible subdirectory to the watch list.
func (w *watcher) watchTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
