// File: watch.go
// Title: Configuration File Watching
// Description: Reloads a file-backed configuration when the file changes,
//              driven by fsnotify events on the containing directory.
// Author: msto63
// Version: v0.1.0
// Created: 2025-04-03
// Modified: 2025-04-03
//
// Change History:
// - 2025-04-03 v0.1.0: fsnotify based watcher replacing polling

package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/smython/foundation/core/error"
)

// ChangeHandler is called after a reload; err is non-nil when the changed
// file could not be read or parsed, in which case the old values stay
type ChangeHandler func(c *Config, err error)

// Watch reloads the configuration whenever its file is written, created or
// renamed into place, calling handler after each attempt. It blocks until
// ctx is done.
func (c *Config) Watch(ctx context.Context, handler ChangeHandler) error {
	if c.filePath == "" {
		return mdwerror.New("file path required for watching").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.Watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeIO).
			WithOperation("config.Watch")
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(c.filePath)
	if err := watcher.Add(dir); err != nil {
		return mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeIO).
			WithOperation("config.Watch").
			WithDetail("dir", dir)
	}

	target := filepath.Clean(c.filePath)
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			err := c.reload()
			if handler != nil {
				handler(c, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if handler != nil {
				handler(c, mdwerror.Wrap(err, "file watcher error").WithCode(mdwerror.CodeIO))
			}
		}
	}
}
