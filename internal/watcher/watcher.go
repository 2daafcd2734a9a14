// Package watcher notices changes to the presentation file so the
// presenter can reload it. Events arrive in a one-slot channel the
// presenter checks without blocking once per tick; rapid saves
// collapse into a single pending event.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"dais/internal/logging"
)

// pollInterval is how often the fallback watcher compares mtimes when
// fsnotify is unavailable.
const pollInterval = time.Second

// Watcher reports modifications of one file.
type Watcher struct {
	path    string
	changes chan struct{}
	done    chan struct{}
	fs      *fsnotify.Watcher
}

// New watches the given file. If the fsnotify backend cannot start,
// the watcher degrades to mtime polling.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}

	w := &Watcher{
		path:    abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	fs, err := fsnotify.NewWatcher()
	if err == nil {
		// Watch the directory, not the file: editors typically save by
		// renaming a temp file over the original, which would drop a
		// watch on the file itself.
		err = fs.Add(filepath.Dir(abs))
	}
	if err != nil {
		logging.Warn("file watcher unavailable, falling back to polling", "error", err)
		go w.poll()
		return w, nil
	}

	w.fs = fs
	go w.run()
	return w, nil
}

// TryPoll reports whether the file changed since the last check,
// without blocking.
func (w *Watcher) TryPoll() bool {
	select {
	case <-w.changes:
		return true
	default:
		return false
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	if w.fs != nil {
		return w.fs.Close()
	}
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.mark()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("file watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) poll() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	last := w.mtime()
	for {
		select {
		case <-ticker.C:
			if current := w.mtime(); !current.Equal(last) {
				last = current
				w.mark()
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) mtime() time.Time {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (w *Watcher) mark() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
