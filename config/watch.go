package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written or created
// and sends each config that loads cleanly. Invalid edits are logged and
// skipped. The directory is watched rather than the file so that editors
// which replace the file on save keep working. The channel is closed when
// ctx is done.
func Watch(ctx context.Context, path string, logger *log.Logger) (<-chan Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				cfg, err := Load(target)
				if err != nil {
					logger.Printf("config reload: %v", err)
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Printf("config watcher: %v", err)
			}
		}
	}()
	return out, nil
}
