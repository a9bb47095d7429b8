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
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/types"
	"github.com/focus-game-deck/fgd/validation"
)

// Session is the single editing context for one config file: the document,
// the modified flag, the current game/app selection and the comparison
// snapshot. A Session is not safe for concurrent use.
type Session struct {
	path string
	doc  *types.Document

	modified     bool
	selectedGame string
	selectedApp  string

	// serialized document at load, save or the last SnapshotForComparison
	snapshot []byte

	loadIssue *messages.Message
	created   bool

	history *History
	log     logger.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistory records every successful save in h.
func WithHistory(h *History) Option {
	return func(s *Session) {
		s.history = h
	}
}

// NewSession wraps an in-memory document without touching disk.
func NewSession(path string, doc *types.Document, opts ...Option) *Session {
	s := &Session{path: path, doc: doc, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.repairOrders()
	s.snapshot = s.serialize()
	return s
}

// Load opens the config at path. A missing file is replaced by the default
// document, which is written to disk. An unreadable or corrupt file is left
// untouched and the session falls back to an in-memory default; the failure
// is reported once through TakeLoadIssue. Load never fails.
func Load(path string, opts ...Option) *Session {
	s := &Session{path: path, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.F("component", "state"))

	doc, data, err := ReadDocument(path)
	switch {
	case err == nil:
		s.doc = doc
		s.checkSchema(data)
		s.log.Info("Loaded configuration", logger.F("path", path))

	case errors.Is(err, fs.ErrNotExist):
		s.doc = DefaultDocument()
		if err := s.persist("create"); err != nil {
			s.log.Error("Failed to write default configuration", logger.F("path", path), logger.Err(err))
			s.loadIssue = messages.New(messages.ConfigSaveFailed, err.Error())
		} else {
			s.created = true
			s.log.Info("Created default configuration", logger.F("path", path))
		}

	default:
		s.log.Error("Failed to load configuration, using defaults", logger.F("path", path), logger.Err(err))
		s.loadIssue = messages.New(messages.ConfigLoadFailed, path, err.Error())
		s.doc = DefaultDocument()
	}

	s.repairOrders()
	s.snapshot = s.serialize()
	return s
}

func (s *Session) checkSchema(data []byte) {
	issues, err := validation.ValidateDocumentSchema(data)
	if err != nil {
		s.log.Debug("Schema check skipped", logger.Err(err))
		return
	}
	for _, issue := range issues {
		s.log.Warn("Configuration schema issue", logger.F("issue", issue))
	}
}

func (s *Session) repairOrders() {
	games, apps := s.doc.InitializeOrders()
	if games.Changed() {
		s.log.Warn("Repaired games order", logger.F("dropped", games.Dropped), logger.F("appended", games.Appended))
	}
	if apps.Changed() {
		s.log.Warn("Repaired managedApps order", logger.F("dropped", apps.Dropped), logger.F("appended", apps.Appended))
	}
}

func (s *Session) serialize() []byte {
	data, err := MarshalDocument(s.doc)
	if err != nil {
		s.log.Error("Failed to serialize configuration", logger.Err(err))
		return nil
	}
	return data
}

func (s *Session) persist(reason string) error {
	data, err := MarshalDocument(s.doc)
	if err != nil {
		return err
	}
	backup, err := WriteDocument(s.path, data)
	if err != nil {
		return err
	}
	if backup != "" {
		s.log.Debug("Backed up previous configuration", logger.F("backup", backup))
	}
	if s.history != nil {
		if _, err := s.history.Record(s.path, data, reason); err != nil {
			s.log.Warn("Failed to record history", logger.Err(err))
		}
	}
	s.snapshot = data
	return nil
}

// Path returns the config file path.
func (s *Session) Path() string {
	return s.path
}

// Document returns the live document.
func (s *Session) Document() *types.Document {
	return s.doc
}

// Logger returns the session logger.
func (s *Session) Logger() logger.Logger {
	return s.log
}

// Replace installs doc as the live document, e.g. an edited clone, and
// marks the session modified. Selections that no longer resolve are cleared.
func (s *Session) Replace(doc *types.Document) {
	s.doc = doc
	s.repairOrders()
	s.dropStaleSelection()
	s.MarkModified()
}

func (s *Session) dropStaleSelection() {
	if !s.doc.Games.Has(s.selectedGame) {
		s.selectedGame = ""
	}
	if !s.doc.ManagedApps.Has(s.selectedApp) {
		s.selectedApp = ""
	}
}

// GetOrCreateDefault returns the document, installing the default document
// when the session has none.
func (s *Session) GetOrCreateDefault() *types.Document {
	if s.doc == nil {
		s.doc = DefaultDocument()
		s.repairOrders()
	}
	return s.doc
}

// Created reports whether Load wrote a fresh default file.
func (s *Session) Created() bool {
	return s.created
}

// TakeLoadIssue returns the pending load failure once, then nil.
func (s *Session) TakeLoadIssue() *messages.Message {
	issue := s.loadIssue
	s.loadIssue = nil
	return issue
}

// MarkModified flags the session as having unsaved edits.
func (s *Session) MarkModified() {
	s.modified = true
}

// ClearModified acknowledges the current edits.
func (s *Session) ClearModified() {
	s.modified = false
}

// IsModified reports the modified flag.
func (s *Session) IsModified() bool {
	return s.modified
}

// SnapshotForComparison records the current document as the baseline for
// HasUnsavedChanges and Changes.
func (s *Session) SnapshotForComparison() {
	s.snapshot = s.serialize()
}

// HasUnsavedChanges compares the document with the last snapshot.
func (s *Session) HasUnsavedChanges() bool {
	return !bytes.Equal(s.serialize(), s.snapshot)
}

// Baseline returns the document as of the last snapshot.
func (s *Session) Baseline() (*types.Document, error) {
	if len(s.snapshot) == 0 {
		return &types.Document{}, nil
	}
	return ParseDocument(s.snapshot)
}

// Changes diffs the last snapshot against the live document.
func (s *Session) Changes() ([]DiffResult, error) {
	base, err := s.Baseline()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	base.InitializeOrders()
	return DiffDocuments(base, s.doc), nil
}

// Save repairs orders and writes the document to disk. On success the
// modified flag is cleared and the snapshot is refreshed.
func (s *Session) Save() (err error) {
	defer s.guard("save", &err)

	s.repairOrders()
	if err := s.persist("save"); err != nil {
		s.log.Error("Failed to save configuration", logger.F("path", s.path), logger.Err(err))
		return messages.New(messages.ConfigSaveFailed, err.Error())
	}

	s.modified = false
	s.log.Info("Saved configuration", logger.F("path", s.path))
	return nil
}

// Reload replaces the document with the file content, discarding edits.
func (s *Session) Reload() error {
	doc, data, err := ReadDocument(s.path)
	if err != nil {
		return messages.New(messages.ConfigLoadFailed, s.path, err.Error())
	}
	s.doc = doc
	s.checkSchema(data)
	s.repairOrders()
	s.snapshot = s.serialize()
	s.modified = false
	s.dropStaleSelection()
	return nil
}

// guard converts a panic in a mutating entry point into internalError.
func (s *Session) guard(op string, err *error) {
	if r := recover(); r != nil {
		s.log.Error("Recovered from panic", logger.F("op", op), logger.F("panic", fmt.Sprint(r)))
		*err = messages.New(messages.InternalError, fmt.Sprint(r))
	}
}

// Restore replaces the document with data, e.g. a history revision, and
// marks the session modified. Nothing is written until Save.
func (s *Session) Restore(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return messages.New(messages.ConfigLoadFailed, s.path, err.Error())
	}
	s.doc = doc
	s.repairOrders()
	s.modified = true
	return nil
}
