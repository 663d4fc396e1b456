// internal/watch/watch.go
//
// Filesystem watcher for serve mode.
//
// Context
// -------
// Content edits should show up on the next request without restarting the
// process.  The watcher monitors the content, assets, and theme trees and
// fires one coalesced rebuild callback after changes settle, so a save-all
// from an editor triggers a single reload instead of one per file.
//
// fsnotify does not watch recursively, so Start walks each root and adds
// every subdirectory, and newly created directories are added as their
// create events arrive.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// tick is how often the debounce window is checked.
const tick = 100 * time.Millisecond

// Watcher fires onChange once per settled burst of filesystem events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	onChange func()

	mu      sync.Mutex
	pending bool
	last    time.Time
	running bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New prepares a watcher over the given root directories.  Roots that do
// not exist are skipped at Start.
func New(roots []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		roots:    roots,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers every directory under the roots and launches the event
// loop.  Non-blocking; call Stop to shut down.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, root := range w.roots {
		if _, err := os.Stat(root); err != nil {
			zap.S().Debugw("watch root missing, skipping", "root", root)
			continue
		}
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	zap.S().Infow("watching for changes", "dirs", len(w.fsw.WatchList()))

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fsw.Close(); err != nil {
		zap.S().Warnw("watcher close failed", "err", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			zap.S().Warnw("watch error", "err", err)

		case <-ticker.C:
			w.fireIfSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if ignored(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// A new directory needs its own watch before files land in it.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				zap.S().Warnw("watch add failed", "dir", event.Name, "err", err)
			}
		}
	}

	zap.S().Debugw("change detected", "op", event.Op.String(), "path", event.Name)

	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()
}

// fireIfSettled invokes onChange once no event has arrived for a full
// debounce window.
func (w *Watcher) fireIfSettled() {
	w.mu.Lock()
	ready := w.pending && time.Since(w.last) >= w.debounce
	if ready {
		w.pending = false
	}
	w.mu.Unlock()

	if ready {
		w.onChange()
	}
}

// addTree registers dir and every directory below it, skipping hidden
// subtrees like .git.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ignored(path) {
			return fs.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// ignored filters editor droppings and hidden paths.
func ignored(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
