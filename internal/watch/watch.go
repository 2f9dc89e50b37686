// Package watch reloads the board when the save file changes on disk.
// Game clients rewrite the save in bursts, so events are debounced before
// the reload fires. See design doc Section 6.3.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce absorbs the write burst of a typical save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes one save file and invokes a callback after changes
// settle.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	done     chan struct{}
}

// New starts watching path. Watching the parent directory instead of the
// file itself survives the rename-over-replace that editors and games use
// when saving.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()
	slog.Info("watching save file", "path", abs, "debounce", debounce)
	return w, nil
}

// Close stops the watcher. Pending debounced reloads are discarded.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			slog.Info("save file changed, reloading", "path", w.path)
			w.onChange()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}
