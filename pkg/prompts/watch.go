package prompts

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/util/pathutil"
	"github.com/sirupsen/logrus"
)

// SnapshotWatcher reloads a snapshot file whenever another process rewrites
// it. Snapshots are saved by renaming a temp file into place, so the parent
// directory is watched rather than the file itself.
type SnapshotWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(Snapshot)
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// NewSnapshotWatcher watches path. onChange receives every successfully
// loaded snapshot; rapid bursts of events within debounce are coalesced.
func NewSnapshotWatcher(path string, debounce time.Duration, onChange func(Snapshot)) (*SnapshotWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	return &SnapshotWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logging.NewLogger("snapshot-watcher"),
	}, nil
}

// Start processes events until ctx is cancelled.
func (w *SnapshotWatcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !pathutil.SamePath(event.Name, w.path) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.stopTimer()
			w.watcher.Close()
			return
		}
	}
}

// schedule (re)arms the reload timer so only the last event of a burst
// triggers a reload.
func (w *SnapshotWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *SnapshotWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *SnapshotWatcher) reload() {
	snap, err := LoadSnapshot(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("Ignoring unreadable snapshot")
		return
	}
	w.logger.Infof("Snapshot changed: %s", filepath.Base(w.path))
	if w.onChange != nil {
		w.onChange(snap)
	}
}

// Close stops the watcher and releases resources.
func (w *SnapshotWatcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
