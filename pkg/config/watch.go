package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/sirenhq/siren/internal/logger"
)

// Watch monitors the configuration file and invokes onChange with the
// reloaded configuration whenever the file is rewritten.
//
// The parent directory is watched rather than the file itself so that
// editors and configuration management tools that replace the file
// atomically (write to temp file, then rename) are still observed.
//
// Reload failures are logged and skipped; the previous configuration stays
// in effect until a valid file appears. Watch blocks until the context is
// cancelled or the watcher fails.
//
// Parameters:
//   - ctx: Controls the watch lifecycle. Cancellation stops the watcher.
//   - path: Path to the configuration file
//   - onChange: Called with the freshly loaded configuration on each change
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	target := filepath.Clean(path)
	logger.Debug("Watching configuration file", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := Load(target)
			if err != nil {
				logger.Warn("Configuration reload failed, keeping previous configuration",
					"path", target,
					"error", err,
				)
				continue
			}

			logger.Info("Configuration reloaded", "path", target)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("config watcher error: %w", err)
		}
	}
}
