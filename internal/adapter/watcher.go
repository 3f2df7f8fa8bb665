package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports batches of changed files below a set of directories.
type Watcher interface {
	// Start begins watching. callback receives the sorted, deduplicated set of
	// paths changed during one debounce window.
	Start(ctx context.Context, callback func(paths []m.Path)) error
	// Stop ends watching and waits for the event loop to exit. It is idempotent.
	Stop() error
}

type fileWatcher struct {
	watcher  *fsnotify.Watcher
	match    func(path string) bool
	debounce time.Duration
	callback func(paths []m.Path)
	cancel   context.CancelFunc

	pending   map[string]struct{}
	pendingMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewWatcher watches dirs recursively. match filters changed file paths; a nil
// match accepts every file.
func NewWatcher(dirs []m.Path, debounce time.Duration, match func(path string) bool) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &fileWatcher{
		watcher:  watcher,
		match:    match,
		debounce: debounce,
		pending:  make(map[string]struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fw.addRecursive(string(dir)); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return fw, nil
}

func (fw *fileWatcher) Start(ctx context.Context, callback func(paths []m.Path)) error {
	if callback == nil {
		return fmt.Errorf("watch callback is nil")
	}

	fw.callback = callback

	var loopCtx context.Context
	loopCtx, fw.cancel = context.WithCancel(ctx)

	go fw.loop(loopCtx)

	return nil
}

func (fw *fileWatcher) Stop() error {
	var err error

	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}

		err = fw.watcher.Close()
	})

	return err
}

func (fw *fileWatcher) loop(ctx context.Context) {
	defer close(fw.doneCh)

	flushCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			fw.stopTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addRecursive(event.Name); err != nil {
						slog.Error("Failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if !fw.shouldProcess(event) {
				continue
			}

			fw.pendingMu.Lock()
			fw.pending[event.Name] = struct{}{}
			fw.pendingMu.Unlock()

			fw.resetTimer(flushCh)

		case <-flushCh:
			fw.flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

			slog.Error("File watcher error", "error", err)
		}
	}
}

func (fw *fileWatcher) flush() {
	fw.pendingMu.Lock()
	if len(fw.pending) == 0 {
		fw.pendingMu.Unlock()
		return
	}

	paths := make([]m.Path, 0, len(fw.pending))
	for path := range fw.pending {
		paths = append(paths, m.Path(path))
	}

	fw.pending = make(map[string]struct{})
	fw.pendingMu.Unlock()

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	fw.callback(paths)
}

func (fw *fileWatcher) resetTimer(flushCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}

	fw.timer = time.AfterFunc(fw.debounce, func() {
		select {
		case flushCh <- struct{}{}:
		default:
		}
	})
}

func (fw *fileWatcher) stopTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
}

func (fw *fileWatcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if fw.match == nil {
		return true
	}

	return fw.match(event.Name)
}

func (fw *fileWatcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			slog.Debug("Skipping unreadable path", "path", path, "error", err)

			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if path != root {
			if _, skip := skippedDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
		}

		if err := fw.watcher.Add(path); err != nil {
			slog.Error("Failed to watch directory", "path", path, "error", err)
		}

		return nil
	})
}
