// ABOUTME: --watch mode: re-splits and re-solves whenever the source PNG is rewritten
// ABOUTME: Debounces fsnotify write events the same way the teacher's file watcher does

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// runWatch re-runs the CLI solve every time opts.InputImage is written
// to, until the watcher's event or error channel closes. Watcher errors
// are logged and watching continues.
func runWatch(logger *slog.Logger, opts RunOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.InputImage); err != nil {
		return fmt.Errorf("watch %s: %w", opts.InputImage, err)
	}

	logger.Info("watching for changes", "input", opts.InputImage)

	if err := runCLI(logger, opts); err != nil {
		logger.Error("initial solve failed", "error", err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}

			// Debounce: give an atomic rewrite time to finish landing.
			time.Sleep(100 * time.Millisecond)

			logger.Info("source image changed, re-solving", "input", opts.InputImage)
			if err := runCLI(logger, opts); err != nil {
				logger.Error("solve failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
