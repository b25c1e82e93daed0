package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"splitbook/internal/logger"
)

// ReloadHandler receives every successfully reloaded configuration.
type ReloadHandler func(*Config)

// Watcher reloads the config file when it is written and hands the result to
// a handler. Invalid files are logged and ignored so the last good config
// stays in effect.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload ReloadHandler
	log      *slog.Logger
	done     chan struct{}
}

// Watch starts watching path. The file's directory is watched so editors
// that replace the file atomically are still seen.
func Watch(path string, onReload ReloadHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onReload: onReload,
		log:      logger.ComponentLogger("config"),
		done:     make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != w.path {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("reload failed", "path", w.path, "error", err)
				continue
			}
			w.log.Info("config reloaded", "path", w.path)
			if w.onReload != nil {
				w.onReload(cfg)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}
