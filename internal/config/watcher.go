package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives the freshly loaded config after the watched
// file changes, or the load error if the new contents are invalid.
type ReloadHandler func(cfg Config, err error)

// Watcher reloads a config file when it changes on disk. Invalid
// intermediate states are reported to the handler but never replace the
// last good config.
type Watcher struct {
	mu      sync.RWMutex
	path    string
	current Config
	handler ReloadHandler

	fsw    *fsnotify.Watcher
	done   chan struct{}
	closed bool
}

// NewWatcher loads path and starts watching it. The handler runs on the
// watcher goroutine; it must not block.
func NewWatcher(path string, handler ReloadHandler) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops
	// a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		current: cfg,
		handler: handler,
		fsw:     fsw,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Current returns the last successfully loaded config.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err == nil {
		w.mu.Lock()
		w.current = cfg
		w.mu.Unlock()
	}
	if w.handler != nil {
		w.handler(cfg, err)
	}
}
