// SPDX-License-Identifier: MIT

package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/rysi3k/video-fullscreen/internal/log"
)

// Watch observes the config file and invokes onChange with the freshly
// loaded configuration after every write. Only runtime-adjustable settings
// (log level) should be applied by the callback; structural changes need a
// restart and are the callback's job to report. Watch blocks until ctx is
// done.
func Watch(ctx context.Context, loader *Loader, onChange func(Config)) error {
	if loader.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(loader.path); err != nil {
		return err
	}

	logger := log.WithComponent("config")
	logger.Info().
		Str("event", "config.watching").
		Str("path", loader.path).
		Msg("watching config file for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := loader.Load()
			if err != nil {
				logger.Warn().
					Err(err).
					Str("event", "config.reload_failed").
					Msg("ignoring invalid config change")
				continue
			}
			logger.Info().
				Str("event", "config.reloaded").
				Str("path", loader.path).
				Msg("config file changed")
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().
				Err(err).
				Str("event", "config.watch_error").
				Msg("config watcher error")
		}
	}
}
