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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/types"
)

func emptySession() *Session {
	return NewSession("unused.json", &types.Document{})
}

func messageKey(t *testing.T, err error) messages.Key {
	t.Helper()
	var msg *messages.Message
	require.True(t, errors.As(err, &msg), "expected a message error, got %v", err)
	return msg.Key
}

func TestAddRenameDeleteGameScenario(t *testing.T) {
	s := emptySession()
	games := &s.Document().Games

	id, err := s.AddGame("g1", &types.GameEntry{Platform: types.PlatformSteam, SteamAppID: "123"})
	require.NoError(t, err)
	assert.Equal(t, "g1", id)
	assert.Equal(t, []string{"g1"}, games.IDs())

	require.NoError(t, s.RenameGame("g1", "g2"))
	assert.Equal(t, []string{"g2"}, games.IDs())
	assert.False(t, games.Has("g1"))

	require.NoError(t, s.DeleteGame("g2"))
	assert.Equal(t, 0, games.Len())
	assert.Empty(t, games.IDs())
}

func TestAddGameGeneratesID(t *testing.T) {
	s := emptySession()

	id, err := s.AddGame("", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "game-"))
	assert.Equal(t, id, s.SelectedGame())
	assert.True(t, s.IsModified())

	other, err := s.AddGame("  ", nil)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, []string{id, other}, s.Document().Games.IDs())
}

func TestAddRejections(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())

	_, err := s.AddGame("apex", nil)
	assert.Equal(t, messages.GameIDAlreadyExists, messageKey(t, err))

	_, err = s.AddGame("_order", nil)
	assert.Equal(t, messages.GameIDInvalid, messageKey(t, err))

	_, err = s.AddApp("noWinKey", nil)
	assert.Equal(t, messages.AppIDAlreadyExists, messageKey(t, err))

	id, err := s.AddApp("", nil)
	require.NoError(t, err)
	app, ok := s.Document().ManagedApps.Get(id)
	require.True(t, ok)
	assert.Equal(t, types.DefaultGracefulTimeoutMs, app.GracefulTimeoutMs)
	assert.Equal(t, id, s.SelectedApp())
}

func TestRenameGameRejectionLeavesDocumentUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		oldID   string
		newID   string
		wantKey messages.Key
	}{
		{"collision", "apex", "valorant", messages.GameIDAlreadyExists},
		{"empty", "apex", "  ", messages.GameIDCannotBeEmpty},
		{"missing", "ghost", "x", messages.GameNotFound},
		{"reserved", "apex", "_order", messages.GameIDInvalid},
		{"dotted", "apex", "a.b", messages.GameIDInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("unused.json", DefaultDocument())
			require.True(t, s.SelectGame("apex"))
			before, err := MarshalDocument(s.Document())
			require.NoError(t, err)

			err = s.RenameGame(tt.oldID, tt.newID)
			assert.Equal(t, tt.wantKey, messageKey(t, err))

			after, err := MarshalDocument(s.Document())
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
			assert.False(t, s.IsModified())
			assert.Equal(t, "apex", s.SelectedGame())
		})
	}
}

func TestRenameGameToSameIDIsNoop(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	require.NoError(t, s.RenameGame("apex", "apex"))
	assert.False(t, s.IsModified())
}

func TestRenameGameUpdatesSelectionAndPosition(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	require.True(t, s.SelectGame("apex"))

	require.NoError(t, s.RenameGame("apex", "apex-legends"))
	assert.Equal(t, []string{"apex-legends", "valorant"}, s.Document().Games.IDs())
	assert.Equal(t, "apex-legends", s.SelectedGame())
	assert.True(t, s.IsModified())
}

func TestRenameAppCascades(t *testing.T) {
	doc := &types.Document{}
	doc.ManagedApps.Put("noWinKey", &types.AppEntry{})
	doc.ManagedApps.Put("obs", &types.AppEntry{})
	doc.Games.Put("apex", &types.GameEntry{Platform: types.PlatformEA, AppsToManage: []string{"obs", "noWinKey"}})
	doc.Games.Put("valorant", &types.GameEntry{Platform: types.PlatformEA, AppsToManage: []string{"noWinKey", "obs", "noWinKey"}})
	doc.Games.Put("fifa", &types.GameEntry{Platform: types.PlatformEA, AppsToManage: []string{"obs"}})
	s := NewSession("unused.json", doc)
	require.True(t, s.SelectApp("noWinKey"))

	require.NoError(t, s.RenameApp("noWinKey", "no-win-key"))

	apex, _ := doc.Games.Get("apex")
	valorant, _ := doc.Games.Get("valorant")
	fifa, _ := doc.Games.Get("fifa")
	assert.Equal(t, []string{"obs", "no-win-key"}, apex.AppsToManage)
	assert.Equal(t, []string{"no-win-key", "obs", "no-win-key"}, valorant.AppsToManage)
	assert.Equal(t, []string{"obs"}, fifa.AppsToManage)
	assert.NotContains(t, apex.AppsToManage, "noWinKey")
	assert.NotContains(t, valorant.AppsToManage, "noWinKey")

	assert.Equal(t, []string{"no-win-key", "obs"}, doc.ManagedApps.IDs())
	assert.Equal(t, "no-win-key", s.SelectedApp())
	assert.True(t, s.IsModified())
}

func TestRenameAppCollisionLeavesReferences(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	before, err := MarshalDocument(s.Document())
	require.NoError(t, err)

	err = s.RenameApp("noWinKey", "autoHotkey")
	assert.Equal(t, messages.AppIDAlreadyExists, messageKey(t, err))

	after, err := MarshalDocument(s.Document())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	assert.Equal(t, messages.AppIDCannotBeEmpty, messageKey(t, s.RenameApp("noWinKey", "")))
	assert.Equal(t, messages.AppNotFound, messageKey(t, s.RenameApp("ghost", "x")))
}

func TestDeleteAppPurgesReferences(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	require.True(t, s.SelectApp("noWinKey"))

	require.NoError(t, s.DeleteApp("noWinKey"))

	for _, id := range s.Document().Games.IDs() {
		g, _ := s.Document().Games.Get(id)
		assert.NotContains(t, g.AppsToManage, "noWinKey", id)
	}
	apex, _ := s.Document().Games.Get("apex")
	assert.Equal(t, []string{"autoHotkey", "wallpaperEngine"}, apex.AppsToManage)
	assert.Equal(t, "", s.SelectedApp())
	assert.Equal(t, []string{"autoHotkey", "wallpaperEngine"}, s.Document().ManagedApps.IDs())

	assert.Equal(t, messages.AppNotFound, messageKey(t, s.DeleteApp("noWinKey")))
}

func TestDeleteGameClearsSelection(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	require.True(t, s.SelectGame("valorant"))

	require.NoError(t, s.DeleteGame("valorant"))
	assert.Equal(t, "", s.SelectedGame())
	assert.Equal(t, messages.GameNotFound, messageKey(t, s.DeleteGame("valorant")))
}

func TestSelectUnknownClears(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())
	require.True(t, s.SelectGame("apex"))
	assert.False(t, s.SelectGame("ghost"))
	assert.Equal(t, "", s.SelectedGame())
	assert.False(t, s.SelectApp("ghost"))
}

func TestPutAndMove(t *testing.T) {
	s := NewSession("unused.json", DefaultDocument())

	apex, _ := s.Document().Games.Get("apex")
	edited := apex.Clone()
	edited.Name = "Apex"
	require.NoError(t, s.PutGame("apex", edited))
	got, _ := s.Document().Games.Get("apex")
	assert.Equal(t, "Apex", got.Name)
	assert.Equal(t, []string{"apex", "valorant"}, s.Document().Games.IDs())

	require.NoError(t, s.MoveGame("valorant", 0))
	assert.Equal(t, []string{"valorant", "apex"}, s.Document().Games.IDs())
	assert.Equal(t, messages.GameNotFound, messageKey(t, s.MoveGame("ghost", 0)))

	require.NoError(t, s.MoveApp("wallpaperEngine", 0))
	assert.Equal(t, "wallpaperEngine", s.Document().ManagedApps.IDs()[0])

	assert.Equal(t, messages.AppIDInvalid, messageKey(t, s.PutApp("a.b", &types.AppEntry{})))
}

func TestPutKeepsStoredIDs(t *testing.T) {
	doc := DefaultDocument()
	doc.Games.Put("apex.legends", &types.GameEntry{Name: "Apex", Platform: types.PlatformSteam, SteamAppID: "1"})
	doc.ManagedApps.Put("obs.studio", &types.AppEntry{Path: "C:/obs/obs64.exe"})
	s := NewSession("unused.json", doc)

	require.NoError(t, s.PutGame("apex.legends", &types.GameEntry{Name: "Apex Legends", Platform: types.PlatformSteam, SteamAppID: "1"}))
	require.NoError(t, s.PutApp("obs.studio", &types.AppEntry{Name: "OBS", Path: "C:/obs/obs64.exe"}))

	g, _ := s.Document().Games.Get("apex.legends")
	assert.Equal(t, "Apex Legends", g.Name)
	assert.Equal(t, messages.GameIDInvalid, messageKey(t, s.PutGame("new.game", &types.GameEntry{})))
}

func TestPanicIsReportedAsInternalError(t *testing.T) {
	doc := DefaultDocument()
	doc.Games.Put("broken", nil)
	s := NewSession("unused.json", doc)

	err := s.RenameApp("noWinKey", "no-win-key")
	assert.Equal(t, messages.InternalError, messageKey(t, err))
	assert.True(t, s.Document().ManagedApps.Has("noWinKey"))
	assert.False(t, s.IsModified())
}
