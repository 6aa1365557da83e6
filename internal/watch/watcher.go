// Package watch regenerates calendars automatically when the session
// configuration file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// ConfigWatcher watches the session config file and invokes a callback
// after each change. Editors tend to fire several events per save, so
// events are debounced.
type ConfigWatcher struct {
	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	configPath string
	debounce   time.Duration
	onChange   func()
	log        *zap.Logger

	lastEvent time.Time
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewConfigWatcher creates a watcher for the given config file. onChange is
// called after every debounced modification.
func NewConfigWatcher(configPath string, onChange func(), log *zap.Logger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return &ConfigWatcher{
		watcher:    watcher,
		configPath: abs,
		debounce:   defaultDebounce,
		onChange:   onChange,
		log:        log,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine
// until Stop is called or the context is cancelled.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	// Watch the directory, not the file: editors replace files via rename,
	// which drops a watch placed on the file itself.
	if err := cw.watcher.Add(filepath.Dir(cw.configPath)); err != nil {
		return err
	}

	cw.log.Info("watching session config", zap.String("path", cw.configPath))

	go cw.loop(ctx)
	return nil
}

// Stop stops the watcher and waits for the watch loop to exit.
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh
	cw.watcher.Close()
}

func (cw *ConfigWatcher) loop(ctx context.Context) {
	defer close(cw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (cw *ConfigWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.configPath {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	cw.mu.Lock()
	now := time.Now()
	if now.Sub(cw.lastEvent) < cw.debounce {
		cw.mu.Unlock()
		return
	}
	cw.lastEvent = now
	cw.mu.Unlock()

	cw.log.Info("session config changed", zap.String("op", event.Op.String()))
	cw.onChange()
}
