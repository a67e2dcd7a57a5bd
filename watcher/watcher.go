// Package watcher reports workspace files that changed on disk after the
// session caches were filled. It only records changes; cached results are
// never refreshed or invalidated by it.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lexandro/contextai-mcp/ignore"
)

// DefaultDebounce is the quiet period before a burst of events is recorded.
const DefaultDebounce = 100 * time.Millisecond

// Change is the latest recorded change to one workspace path.
type Change struct {
	Path string // workspace-relative, forward slashes
	Op   EventOp
	At   time.Time
}

// Tracker watches the workspace recursively and keeps the set of paths that
// changed since it started.
type Tracker struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	rules     *ignore.RuleSet
	rootDir   string
	logger    *slog.Logger

	mu      sync.Mutex
	pending map[string]Change

	wg sync.WaitGroup
}

// NewTracker registers every non-ignored, non-hidden directory under rootDir
// with fsnotify. Call Start to begin consuming events and Close to release.
func NewTracker(rootDir string, rules *ignore.RuleSet, debounce time.Duration, logger *slog.Logger) (*Tracker, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		fsWatcher: fsWatcher,
		rules:     rules,
		rootDir:   rootDir,
		logger:    logger,
		pending:   make(map[string]Change),
	}
	t.debouncer = NewDebouncer(debounce, t.record)

	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != rootDir && t.skipDir(path) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return t, nil
}

func (t *Tracker) skipDir(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".") || t.rules.IsIgnoredAbs(path, true)
}

// Start consumes events on a background goroutine until Close.
func (t *Tracker) Start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run()
	}()
}

func (t *Tracker) run() {
	for {
		select {
		case event, ok := <-t.fsWatcher.Events:
			if !ok {
				return
			}
			t.handleEvent(event)

		case err, ok := <-t.fsWatcher.Errors:
			if !ok {
				return
			}
			t.logger.Warn("watcher error", "error", err)
		}
	}
}

func (t *Tracker) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !t.skipDir(path) {
				if err := t.fsWatcher.Add(path); err != nil {
					t.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if strings.HasPrefix(filepath.Base(path), ".") || t.rules.IsIgnoredAbs(path, false) {
		return
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}
	t.debouncer.Add(path, op)
}

func (t *Tracker) record(batch []DebouncedEvent) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, event := range batch {
		rel, err := filepath.Rel(t.rootDir, event.Path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		t.pending[rel] = Change{Path: rel, Op: event.Op, At: now}
	}
	t.logger.Debug("recorded workspace changes", "batch", len(batch), "pending", len(t.pending))
}

// Pending returns the recorded changes sorted by path.
func (t *Tracker) Pending() []Change {
	t.mu.Lock()
	defer t.mu.Unlock()

	changes := make([]Change, 0, len(t.pending))
	for _, c := range t.pending {
		changes = append(changes, c)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

// Close stops watching and waits for the event goroutine to exit.
func (t *Tracker) Close() error {
	err := t.fsWatcher.Close()
	t.wg.Wait()
	t.debouncer.Stop()
	return err
}
