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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/config"
	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/secret"
	"github.com/focus-game-deck/fgd/state"
)

// workspace is what a verb operates on: the loaded session, its revision
// store and the secret codec.
type workspace struct {
	settings  *config.Settings
	session   *state.Session
	history   *state.History // nil when history is disabled
	codec     *secret.Codec
	log       logger.Logger
	loadIssue *messages.Message
}

// openWorkspace opens the workspace for the resolved settings.
// Tests replace it to work on a temporary directory.
var openWorkspace = func() (*workspace, error) {
	log := logger.Default()
	codec, err := secret.NewDefault(log)
	if err != nil {
		log.Warn("Secret storage unavailable; secrets will not be saved", logger.Err(err))
		codec = secret.New(nil, log)
	}
	return newWorkspace(settings, log, codec), nil
}

func newWorkspace(s *config.Settings, log logger.Logger, codec *secret.Codec) *workspace {
	ws := &workspace{settings: s, codec: codec, log: log}

	opts := []state.Option{state.WithLogger(log)}
	if s.History.Enabled {
		h, err := state.OpenHistory(s.History.Path)
		if err != nil {
			log.Warn("History disabled", logger.F("path", s.History.Path), logger.Err(err))
		} else {
			ws.history = h
			opts = append(opts, state.WithHistory(h))
		}
	}

	ws.session = state.Load(s.ConfigPath, opts...)
	ws.loadIssue = ws.session.TakeLoadIssue()
	if ws.loadIssue != nil {
		log.Warn(say(ws.loadIssue))
	}
	if ws.session.Created() {
		log.Info(say(messages.New(messages.ConfigCreated, s.ConfigPath)))
	}
	return ws
}

// Close releases the history database.
func (w *workspace) Close() error {
	if w.history == nil {
		return nil
	}
	return w.history.Close()
}

// writable refuses edits while the session runs on fallback defaults, so a
// broken file on disk is never overwritten by accident.
func (w *workspace) writable() error {
	if w.loadIssue != nil && w.loadIssue.Key == messages.ConfigLoadFailed {
		return fmt.Errorf("%s; fix or remove the file before editing", say(w.loadIssue))
	}
	return nil
}

// save writes the session and trims old revisions.
func (w *workspace) save() error {
	if err := w.session.Save(); err != nil {
		return err
	}
	if w.history != nil && w.settings.History.Keep > 0 {
		if n, err := w.history.Prune(w.session.Path(), w.settings.History.Keep); err != nil {
			w.log.Warn("Failed to prune history", logger.Err(err))
		} else if n > 0 {
			w.log.Debug("Pruned history", logger.F("removed", n))
		}
	}
	return nil
}

// say renders a message in the editor language.
func say(m *messages.Message) string {
	return messages.Format(messages.English, m)
}

// describe renders err, resolving messages through the catalog.
func describe(err error) string {
	if m, ok := err.(*messages.Message); ok {
		return say(m)
	}
	return err.Error()
}

// run opens the workspace, runs fn and reports a failure the way every verb does.
func run(cmd *cobra.Command, fn func(ws *workspace) error) {
	ws, err := openWorkspace()
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
		return
	}
	defer ws.Close()

	if err := fn(ws); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %s", describe(err)))
		exitWithError()
	}
}
