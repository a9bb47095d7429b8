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
	"strings"

	"github.com/google/uuid"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/types"
	"github.com/focus-game-deck/fgd/validation"
)

// SelectGame sets the current game selection. An unknown id clears it.
func (s *Session) SelectGame(id string) bool {
	if !s.doc.Games.Has(id) {
		s.selectedGame = ""
		return false
	}
	s.selectedGame = id
	return true
}

// SelectedGame returns the selected game id, or "".
func (s *Session) SelectedGame() string {
	return s.selectedGame
}

// SelectApp sets the current managed-app selection. An unknown id clears it.
func (s *Session) SelectApp(id string) bool {
	if !s.doc.ManagedApps.Has(id) {
		s.selectedApp = ""
		return false
	}
	s.selectedApp = id
	return true
}

// SelectedApp returns the selected app id, or "".
func (s *Session) SelectedApp() string {
	return s.selectedApp
}

// NewID returns an id with the given prefix that is not used by exists.
func NewID(prefix string, exists func(string) bool) string {
	for {
		id := prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
		if !exists(id) {
			return id
		}
	}
}

// AddGame inserts entry under id and selects it. An empty id is replaced by
// a fresh unique one. The new id is appended to the order-list.
func (s *Session) AddGame(id string, entry *types.GameEntry) (newID string, err error) {
	defer s.guard("addGame", &err)

	id = strings.TrimSpace(id)
	if id == "" {
		id = NewID("game", s.doc.Games.Has)
	}
	if err := validation.ValidateID(id); err != nil {
		return "", messages.New(messages.GameIDInvalid, id)
	}
	if s.doc.Games.Has(id) {
		return "", messages.New(messages.GameIDAlreadyExists, id)
	}
	if entry == nil {
		entry = &types.GameEntry{Name: id, Platform: types.PlatformSteam}
	}

	s.doc.Games.Put(id, entry)
	s.selectedGame = id
	s.MarkModified()
	s.log.Debug("Added game", logger.F("id", id))
	return id, nil
}

// AddApp inserts entry under id and selects it. An empty id is replaced by
// a fresh unique one.
func (s *Session) AddApp(id string, entry *types.AppEntry) (newID string, err error) {
	defer s.guard("addApp", &err)

	id = strings.TrimSpace(id)
	if id == "" {
		id = NewID("app", s.doc.ManagedApps.Has)
	}
	if err := validation.ValidateID(id); err != nil {
		return "", messages.New(messages.AppIDInvalid, id)
	}
	if s.doc.ManagedApps.Has(id) {
		return "", messages.New(messages.AppIDAlreadyExists, id)
	}
	if entry == nil {
		entry = &types.AppEntry{
			Name:              id,
			GameStartAction:   types.ActionNone,
			GameEndAction:     types.ActionNone,
			TerminationMethod: types.TerminationAuto,
			GracefulTimeoutMs: types.DefaultGracefulTimeoutMs,
		}
	}

	s.doc.ManagedApps.Put(id, entry)
	s.selectedApp = id
	s.MarkModified()
	s.log.Debug("Added managed app", logger.F("id", id))
	return id, nil
}

// PutGame stores entry under an existing or new id, keeping its order position.
// Only a new id has to pass ValidateID.
func (s *Session) PutGame(id string, entry *types.GameEntry) (err error) {
	defer s.guard("putGame", &err)

	if !s.doc.Games.Has(id) && validation.ValidateID(id) != nil {
		return messages.New(messages.GameIDInvalid, id)
	}
	s.doc.Games.Put(id, entry)
	s.MarkModified()
	return nil
}

// PutApp stores entry under an existing or new id, keeping its order position.
// Only a new id has to pass ValidateID.
func (s *Session) PutApp(id string, entry *types.AppEntry) (err error) {
	defer s.guard("putApp", &err)

	if !s.doc.ManagedApps.Has(id) && validation.ValidateID(id) != nil {
		return messages.New(messages.AppIDInvalid, id)
	}
	s.doc.ManagedApps.Put(id, entry)
	s.MarkModified()
	return nil
}

// RenameGame moves a game to newID, keeping its order position and updating
// the selection. Every precondition is checked first; a rejected rename
// leaves the document unchanged.
func (s *Session) RenameGame(oldID, newID string) (err error) {
	defer s.guard("renameGame", &err)

	newID = strings.TrimSpace(newID)
	switch {
	case newID == "":
		return messages.New(messages.GameIDCannotBeEmpty)
	case !s.doc.Games.Has(oldID):
		return messages.New(messages.GameNotFound, oldID)
	case oldID == newID:
		return nil
	case s.doc.Games.Has(newID):
		return messages.New(messages.GameIDAlreadyExists, newID)
	case validation.ValidateID(newID) != nil:
		return messages.New(messages.GameIDInvalid, newID)
	}

	if err := s.doc.Games.Rename(oldID, newID); err != nil {
		return messages.New(messages.InternalError, err.Error())
	}
	if s.selectedGame == oldID {
		s.selectedGame = newID
	}
	s.MarkModified()
	s.log.Info("Renamed game", logger.F("from", oldID), logger.F("to", newID))
	return nil
}

// RenameApp moves a managed app to newID and rewrites every game's
// appsToManage reference in place. A rejected rename leaves the document
// unchanged.
func (s *Session) RenameApp(oldID, newID string) (err error) {
	defer s.guard("renameApp", &err)

	newID = strings.TrimSpace(newID)
	switch {
	case newID == "":
		return messages.New(messages.AppIDCannotBeEmpty)
	case !s.doc.ManagedApps.Has(oldID):
		return messages.New(messages.AppNotFound, oldID)
	case oldID == newID:
		return nil
	case s.doc.ManagedApps.Has(newID):
		return messages.New(messages.AppIDAlreadyExists, newID)
	case validation.ValidateID(newID) != nil:
		return messages.New(messages.AppIDInvalid, newID)
	}

	// collect referencing games before mutating anything
	var referencing []*types.GameEntry
	for _, gameID := range s.doc.Games.IDs() {
		g, _ := s.doc.Games.Get(gameID)
		for _, ref := range g.AppsToManage {
			if ref == oldID {
				referencing = append(referencing, g)
				break
			}
		}
	}

	if err := s.doc.ManagedApps.Rename(oldID, newID); err != nil {
		return messages.New(messages.InternalError, err.Error())
	}
	for _, g := range referencing {
		g.ReplaceApp(oldID, newID)
	}

	if s.selectedApp == oldID {
		s.selectedApp = newID
	}
	s.MarkModified()
	s.log.Info("Renamed managed app",
		logger.F("from", oldID),
		logger.F("to", newID),
		logger.F("games_updated", len(referencing)))
	return nil
}

// DeleteGame removes a game from the map and the order-list.
func (s *Session) DeleteGame(id string) (err error) {
	defer s.guard("deleteGame", &err)

	if !s.doc.Games.Delete(id) {
		return messages.New(messages.GameNotFound, id)
	}
	if s.selectedGame == id {
		s.selectedGame = ""
	}
	s.MarkModified()
	s.log.Info("Deleted game", logger.F("id", id))
	return nil
}

// DeleteApp removes a managed app and purges it from every game's appsToManage.
func (s *Session) DeleteApp(id string) (err error) {
	defer s.guard("deleteApp", &err)

	if !s.doc.ManagedApps.Delete(id) {
		return messages.New(messages.AppNotFound, id)
	}

	purged := 0
	for _, gameID := range s.doc.Games.IDs() {
		g, _ := s.doc.Games.Get(gameID)
		purged += g.RemoveApp(id)
	}

	if s.selectedApp == id {
		s.selectedApp = ""
	}
	s.MarkModified()
	s.log.Info("Deleted managed app", logger.F("id", id), logger.F("references_removed", purged))
	return nil
}

// MoveGame places a game at index in the order-list.
func (s *Session) MoveGame(id string, index int) error {
	if err := s.doc.Games.Move(id, index); err != nil {
		return messages.New(messages.GameNotFound, id)
	}
	s.MarkModified()
	return nil
}

// MoveApp places a managed app at index in the order-list.
func (s *Session) MoveApp(id string, index int) error {
	if err := s.doc.ManagedApps.Move(id, index); err != nil {
		return messages.New(messages.AppNotFound, id)
	}
	s.MarkModified()
	return nil
}
