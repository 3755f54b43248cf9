// # internal/core/watcher/watcher.go
package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
)

// Filter reports whether an absolute path should be ignored. isDir is true
// for directories, which are then neither watched nor descended into.
type Filter func(path string, isDir bool) bool

const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher recursively watches project directories and reports batches of
// changed files after a quiet period.
type Watcher struct {
	fs          *fsnotify.Watcher
	dirGlobs    []glob.Glob
	fileGlobs   []glob.Glob
	filter      Filter
	watchHidden bool

	notifyMu sync.Mutex
	notify   func([]string)

	mu       sync.Mutex
	debounce time.Duration
	batch    map[string]struct{}
	timer    *time.Timer
	closed   bool
}

// NewWatcher compiles the basename exclude globs. onChange receives the
// sorted set of paths touched during one debounce window.
func NewWatcher(debounce time.Duration, excludeDirs, excludeFiles []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}

	w := &Watcher{debounce: debounce, notify: onChange, batch: make(map[string]struct{})}
	var err error
	if w.dirGlobs, err = compileGlobs(excludeDirs); err != nil {
		return nil, err
	}
	if w.fileGlobs, err = compileGlobs(excludeFiles); err != nil {
		return nil, err
	}
	if w.fs, err = fsnotify.NewWatcher(); err != nil {
		return nil, err
	}
	return w, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// SetFilter installs an additional exclusion predicate, typically the
// scanner's include/exclude/gitignore matcher. Call before Watch.
func (w *Watcher) SetFilter(filter Filter) {
	w.filter = filter
}

// SetWatchHidden controls whether dot-files and dot-directories are watched.
func (w *Watcher) SetWatchHidden(enabled bool) {
	w.watchHidden = enabled
}

func (w *Watcher) SetDebounce(debounce time.Duration) {
	w.mu.Lock()
	w.debounce = debounce
	w.mu.Unlock()
}

// Watch registers every non-excluded directory below each root and starts
// the event loop.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		if err := w.addTree(root, nil); err != nil {
			return err
		}
	}
	go w.loop()
	return nil
}

// addTree watches root and its subdirectories. When onFile is set it is
// called for every non-excluded file found along the way.
func (w *Watcher) addTree(root string, onFile func(string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if onFile != nil && !w.excluded(p, false) {
				onFile(p)
			}
			return nil
		}
		if p != root && w.excluded(p, true) {
			return filepath.SkipDir
		}
		return w.fs.Add(p)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.excluded(event.Name, true) {
				return
			}
			// Files may land in a new directory before its watch exists.
			if err := w.addTree(event.Name, w.schedule); err != nil {
				slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if event.Op&changeOps == 0 || w.excluded(event.Name, false) {
		return
	}
	w.schedule(event.Name)
}

func (w *Watcher) schedule(p string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.batch[p] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := util.SortedStringKeys(w.batch)
	w.batch = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()
	w.notify(paths)
}

func isHidden(p string) bool {
	base := filepath.Base(p)
	return len(base) > 1 && base[0] == '.'
}

// excluded applies, in order: the hidden rule, the basename globs for the
// entry kind, then the installed filter.
func (w *Watcher) excluded(p string, isDir bool) bool {
	if !w.watchHidden && isHidden(p) {
		return true
	}
	globs := w.fileGlobs
	if isDir {
		globs = w.dirGlobs
	}
	base := filepath.Base(p)
	for _, g := range globs {
		if g.Match(base) {
			return true
		}
	}
	return w.filter != nil && w.filter(p, isDir)
}

// Close stops the event loop. Pending changes are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}
