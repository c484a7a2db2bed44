// Package watch re-runs a callback whenever a watched file changes, for
// the `pgschema watch` dev loop.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Run watches path and invokes onChange once immediately and again after
// every debounced write/create event, until ctx is cancelled. A handler
// error is logged, not fatal — the watch loop keeps running.
func Run(ctx context.Context, path string, logger *slog.Logger, onChange func() error) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err := onChange(); err != nil {
		logger.Error("initial run failed", slog.String("path", path), slog.Any("error", err))
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				logger.Info("change detected", slog.String("path", path))
				if err := onChange(); err != nil {
					logger.Error("rebuild failed", slog.String("path", path), slog.Any("error", err))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", slog.Any("error", err))
		}
	}
}
