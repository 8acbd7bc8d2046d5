package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadThrottle coalesces the burst of events an editor save produces.
const reloadThrottle = 500 * time.Millisecond

// Watcher reloads the rule table when the rule file changes on disk. The
// parent directory is watched rather than the file itself, so the
// delete-and-recreate save strategy most editors use keeps working.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	reload func() error
	log    *zap.Logger

	mu   sync.Mutex
	last time.Time

	done chan struct{}
}

// New creates a watcher for the rule file at path. reload is called on the
// watcher's goroutine.
func New(path string, reload func() error, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:     fw,
		path:   filepath.Clean(path),
		reload: reload,
		log:    log,
		done:   make(chan struct{}),
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
	w.log.Info("watching rule file", zap.String("file", w.path))
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error("rule file watch error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	if time.Since(w.last) < reloadThrottle {
		w.mu.Unlock()
		return
	}
	w.last = time.Now()
	w.mu.Unlock()

	w.log.Info("rule file changed, reloading", zap.String("file", w.path))
	if err := w.reload(); err != nil {
		w.log.Error("reload after file change failed", zap.Error(err))
	}
}
