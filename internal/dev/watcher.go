package dev

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Files are the files to watch. Their directories are watched so
	// editors that replace files on save are still seen.
	Files []string

	// Debounce is the delay before reporting a burst of writes.
	Debounce time.Duration
}

// Watcher reports writes to a fixed set of files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	debounce  time.Duration
	changes   chan string
	errs      chan error
	done      chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a new file watcher.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Debounce == 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	files := make(map[string]bool, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		files[abs] = true
	}

	return &Watcher{
		fsWatcher: fsw,
		files:     files,
		debounce:  cfg.Debounce,
		changes:   make(chan string, 16),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives the path of each
// changed file once per debounce window.
func (w *Watcher) Start() (<-chan string, error) {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.loop()
	return w.changes, nil
}

// Errors returns watcher errors. Errors are dropped while the previous one
// is unread.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			pending[name] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			for name := range pending {
				select {
				case w.changes <- name:
				case <-w.done:
					return
				}
			}
			pending = make(map[string]bool)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports writes and creations of watched files.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[name]
}
