// Package watcher notices when the file open in the editor is changed or
// removed by another program.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/pubsub"
)

// Watcher publishes pubsub.ChangedEvent or pubsub.RemovedEvent, with the
// file path as payload, after a burst of filesystem activity settles.
type Watcher struct {
	fsw        *fsnotify.Watcher
	path       string
	debounce   time.Duration
	broker     *pubsub.Broker[string]
	quietUntil atomic.Int64
	done       chan struct{}
	stopOnce   sync.Once
}

var _ pubsub.Subscriber[string] = (*Watcher)(nil)

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 200 * time.Millisecond}
}

// New creates a watcher for cfg.Path. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: cfg.Debounce,
		broker:   pubsub.NewBroker[string](),
		done:     make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Subscribe returns a channel of change notifications.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return w.broker.Subscribe(ctx)
}

// Start watches the file's directory, so the file may be replaced by
// rename and still be tracked.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching file", "path", w.path)
	go w.loop()
	return nil
}

// Suppress ignores events for the next d. The editor calls it around its
// own writes.
func (w *Watcher) Suppress(d time.Duration) {
	w.quietUntil.Store(time.Now().Add(d).UnixNano())
}

// Stop terminates the watcher and closes every subscription.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var pending pubsub.EventType
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			kind, relevant := w.classify(ev)
			if !relevant {
				continue
			}
			pending = kind
			timer.Reset(w.debounce)

		case <-timer.C:
			if pending == "" {
				continue
			}
			log.Debug(log.CatWatcher, "File changed on disk", "path", w.path, "kind", pending)
			w.broker.Publish(pending, w.path)
			pending = ""

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "Watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// classify maps an fsnotify event on the watched file to the event type
// to publish. The most recent event in a burst wins, so a remove followed
// by a create (an atomic save) reports a change.
func (w *Watcher) classify(ev fsnotify.Event) (pubsub.EventType, bool) {
	if filepath.Clean(ev.Name) != w.path {
		return "", false
	}
	if time.Now().UnixNano() < w.quietUntil.Load() {
		return "", false
	}
	switch {
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return pubsub.ChangedEvent, true
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return pubsub.RemovedEvent, true
	}
	return "", false
}
