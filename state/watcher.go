// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package state

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/types"
)

// DefaultDebounce coalesces the burst of events an atomic save produces.
const DefaultDebounce = 200 * time.Millisecond

// Update is delivered when the watched config file changes on disk.
type Update struct {
	Doc *types.Document
	Err error
}

// Watcher reports external edits to a config file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      logger.Logger
}

// NewWatcher watches the directory containing path, which survives the
// file being replaced by rename.
func NewWatcher(path string, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Nop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		log:      log.With(logger.F("component", "watcher")),
	}, nil
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d >= 0 {
		w.debounce = d
	}
}

// Run blocks until ctx is done, calling onChange with the re-parsed
// document after each settled change. Parse failures are delivered as
// Update.Err.
func (w *Watcher) Run(ctx context.Context, onChange func(Update)) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug("Config file changed", logger.F("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			doc, _, err := ReadDocument(w.path)
			if err != nil {
				w.log.Warn("Failed to reload config", logger.Err(err))
				onChange(Update{Err: err})
				continue
			}
			doc.InitializeOrders()
			onChange(Update{Doc: doc})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("File watcher error", logger.Err(err))
			return fmt.Errorf("file watcher error: %w", err)
		}
	}
}

// Close closes the file watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
