// ABOUTME: Polling file watcher that reloads settings when config files change
// ABOUTME: Reports the changed paths; creation, modification and removal all count

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultPollInterval is used when no interval is configured.
const DefaultPollInterval = time.Second

type fileState struct {
	mtime time.Time
	size  int64
}

// Watcher polls a fixed set of files and reports which ones changed.
type Watcher struct {
	paths    []string
	onChange func(changed []string)
	interval time.Duration

	mu     sync.Mutex
	states map[string]fileState
}

// NewWatcher creates a watcher over paths. Missing files are watched for creation.
func NewWatcher(paths []string, onChange func(changed []string)) *Watcher {
	w := &Watcher{
		paths:    append([]string(nil), paths...),
		onChange: onChange,
		interval: DefaultPollInterval,
		states:   make(map[string]fileState),
	}
	w.mu.Lock()
	w.snapshotLocked()
	w.mu.Unlock()
	return w
}

// SetInterval overrides the polling interval. It takes effect on the next Run.
func (w *Watcher) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	w.mu.Lock()
	w.interval = d
	w.mu.Unlock()
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the files against the last snapshot and, if any changed,
// records the new state and calls onChange synchronously. It reports whether
// a change was seen.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	changed := w.diffLocked()
	if len(changed) > 0 {
		w.snapshotLocked()
	}
	w.mu.Unlock()

	if len(changed) == 0 {
		return false
	}
	if w.onChange != nil {
		w.onChange(changed)
	}
	return true
}

func (w *Watcher) diffLocked() []string {
	var changed []string
	for _, path := range w.paths {
		prev, existed := w.states[path]
		info, err := os.Stat(path)
		if err != nil {
			if existed {
				changed = append(changed, path)
			}
			continue
		}
		cur := fileState{mtime: info.ModTime(), size: info.Size()}
		if !existed || cur.size != prev.size || !cur.mtime.Equal(prev.mtime) {
			changed = append(changed, path)
		}
	}
	return changed
}

func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.states, path)
			continue
		}
		w.states[path] = fileState{mtime: info.ModTime(), size: info.Size()}
	}
}
