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

package binding

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/secret"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
)

// reverseVault is a reversible test vault.
type reverseVault struct{}

var reverseMagic = []byte("REV:")

func (reverseVault) Seal(p []byte) ([]byte, error) {
	out := append([]byte(nil), reverseMagic...)
	for i := len(p) - 1; i >= 0; i-- {
		out = append(out, p[i])
	}
	return out, nil
}

func (reverseVault) Open(s []byte) ([]byte, error) {
	if !bytes.HasPrefix(s, reverseMagic) {
		return nil, errors.New("not sealed")
	}
	body := s[len(reverseMagic):]
	out := make([]byte, 0, len(body))
	for i := len(body) - 1; i >= 0; i-- {
		out = append(out, body[i])
	}
	return out, nil
}

func testCodec() *secret.Codec {
	return secret.New(reverseVault{}, nil)
}

func newSession(t *testing.T) *state.Session {
	t.Helper()
	return state.NewSession("unused.json", state.DefaultDocument())
}

func snapshot(t *testing.T, s *state.Session) string {
	t.Helper()
	data, err := state.MarshalDocument(s.Document())
	require.NoError(t, err)
	return string(data)
}

func TestFormAccessors(t *testing.T) {
	f := NewForm().
		Set("n", " 42 ").
		Set("bad", "abc").
		Set("neg", "-1").
		Set("flag", "on").
		SetList("list", []string{" a ", "", "b"}).
		Set("pw", " secret ").
		SetTag("pw", SavedTag)

	assert.Equal(t, 42, f.Int("n", 7))
	assert.Equal(t, 7, f.Int("bad", 7))
	assert.Equal(t, 7, f.Int("neg", 7))
	assert.Equal(t, 7, f.Int("missing", 7))
	assert.True(t, f.Bool("flag"))
	assert.False(t, f.Bool("missing"))
	assert.Equal(t, []string{"a", "b"}, f.List("list"))
	assert.True(t, f.Has("list"))
	assert.False(t, f.Has("missing"))
	assert.True(t, f.HasAny("missing", "n"))
	assert.Equal(t, secret.Input{Value: " secret ", Saved: true}, f.Secret("pw"))
}

func TestSaveGameRequiresSelection(t *testing.T) {
	s := newSession(t)

	res := SaveGame(s, NewForm().Set(GameName, "x"))
	assert.False(t, res.Saved)
	assert.Equal(t, messages.NoGameSelected, res.Message.Key)
	assert.Error(t, res.Err())
}

func TestSaveGameAppliesFields(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("valorant"))

	res := SaveGame(s, NewForm().
		Set(GameName, "  Valorant ").
		Set(Platform, "direct").
		Set(ExecutablePath, `C:\Riot Games\VALORANT\live\VALORANT.exe`).
		Set(GameComment, "").
		SetList(AppsToManage, []string{"autoHotkey", "ghost", "autoHotkey", "noWinKey"}))

	require.True(t, res.Saved, "%v", res.Errors)
	assert.NoError(t, res.Err())
	assert.Equal(t, messages.GameSaved, res.Message.Key)

	g, _ := s.Document().Games.Get("valorant")
	assert.Equal(t, "Valorant", g.Name)
	assert.Equal(t, types.PlatformDirect, g.Platform)
	assert.Equal(t, "C:/Riot Games/VALORANT/live/VALORANT.exe", g.ExecutablePath)
	assert.Equal(t, []string{"autoHotkey", "noWinKey"}, g.AppsToManage)
	assert.True(t, s.IsModified())
}

func TestSaveGameValidationGating(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("apex"))
	before := snapshot(t, s)

	res := SaveGame(s, NewForm().
		Set(GameName, "Changed").
		Set(SteamAppID, "").
		SetBool(UseOBS, false))

	assert.False(t, res.Saved)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, messages.SteamAppIDRequired, res.Errors[0].Key)
	assert.Equal(t, messages.SteamAppIDRequired, res.Message.Key)
	assert.Equal(t, before, snapshot(t, s), "a rejected save applies no field mutations")
	assert.False(t, s.IsModified())
}

func TestSaveGameReportsAllInvalidFields(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("apex"))

	res := SaveGame(s, NewForm().Set(GameID, "valorant").Set(SteamAppID, ""))

	assert.Equal(t, []string{"gameId", "steamAppId"}, res.Errors.Fields())
	assert.Equal(t, messages.GameIDAlreadyExists, res.Message.Key)
	assert.Equal(t, []interface{}{"valorant"}, res.Message.Args)
}

func loadFile(t *testing.T, content string) *state.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	s := state.Load(path)
	require.Nil(t, s.TakeLoadIssue())
	return s
}

func TestSaveKeepsStoredIDs(t *testing.T) {
	s := loadFile(t, `{
		"managedApps": {"_order": ["obs.studio"], "obs.studio": {"path": "C:/obs/obs64.exe", "gameStartAction": "none", "gameEndAction": "none"}},
		"games": {"_order": ["apex.legends"], "apex.legends": {"name": "Apex", "platform": "steam", "steamAppId": "1"}}
	}`)

	require.True(t, s.SelectGame("apex.legends"))
	res := SaveGame(s, NewForm().Set(GameName, "Apex Legends"))
	require.True(t, res.Saved, "%v", res.Errors)
	g, _ := s.Document().Games.Get("apex.legends")
	assert.Equal(t, "Apex Legends", g.Name)

	require.True(t, s.SelectApp("obs.studio"))
	res = SaveApp(s, NewForm().Set(AppName, "OBS"))
	require.True(t, res.Saved, "%v", res.Errors)
	a, _ := s.Document().ManagedApps.Get("obs.studio")
	assert.Equal(t, "OBS", a.Name)

	res = SaveGame(s, NewForm().Set(GameID, "apex.2"))
	assert.False(t, res.Saved)
	assert.Equal(t, messages.GameIDInvalid, res.Message.Key)
}

func TestSaveGameRename(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("apex"))

	res := SaveGame(s, NewForm().Set(GameID, "apex-legends").Set(GameName, "Apex"))

	require.True(t, res.Saved)
	assert.Equal(t, "apex-legends", res.ID)
	assert.Equal(t, []string{"apex-legends", "valorant"}, s.Document().Games.IDs())
	assert.Equal(t, "apex-legends", s.SelectedGame())
	g, _ := s.Document().Games.Get("apex-legends")
	assert.Equal(t, "Apex", g.Name)
}

func TestSaveGameIntegrationToggles(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("apex"))

	res := SaveGame(s, NewForm().
		SetBool(UseOBS, false).
		SetBool(UseVTubeStudio, true).
		Set(VTSModelID, "model-1").
		SetList(VTSOnLaunchHotkeys, []string{"hk1", " "}))
	require.True(t, res.Saved)

	g, _ := s.Document().Games.Get("apex")
	require.NotNil(t, g.Integrations)
	assert.False(t, g.Integrations.UseOBS)
	assert.Nil(t, g.Integrations.OBSSettings, "disabled integration drops its settings")
	require.NotNil(t, g.Integrations.VTubeStudioSettings)
	assert.Equal(t, "model-1", g.Integrations.VTubeStudioSettings.ModelID)
	assert.Equal(t, []string{"hk1"}, g.Integrations.VTubeStudioSettings.OnLaunchHotkeys)

	res = SaveGame(s, NewForm().SetBool(UseVTubeStudio, false))
	require.True(t, res.Saved)
	g, _ = s.Document().Games.Get("apex")
	assert.Nil(t, g.Integrations.VTubeStudioSettings)
}

func TestSaveGameDoesNotCreateIntegrationsWhenAllOff(t *testing.T) {
	doc := &types.Document{}
	doc.Games.Put("fifa", &types.GameEntry{Name: "FIFA", Platform: types.PlatformEA})
	s := state.NewSession("unused.json", doc)
	require.True(t, s.SelectGame("fifa"))

	res := SaveGame(s, NewForm().SetBool(UseOBS, false).SetBool(UseDiscord, false))
	require.True(t, res.Saved)

	g, _ := s.Document().Games.Get("fifa")
	assert.Nil(t, g.Integrations)
}

func TestGameFormRoundTrip(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectGame("apex"))
	before := snapshot(t, s)

	g, _ := s.Document().Games.Get("apex")
	res := SaveGame(s, GameForm("apex", g))

	require.True(t, res.Saved)
	assert.Equal(t, before, snapshot(t, s))
}

func TestSaveGameRecoversPanic(t *testing.T) {
	doc := state.DefaultDocument()
	doc.Games.Put("broken", nil)
	s := state.NewSession("unused.json", doc)
	require.True(t, s.SelectGame("broken"))
	before := snapshot(t, s)

	res := SaveGame(s, NewForm().Set(GameName, "x"))

	assert.False(t, res.Saved)
	assert.Equal(t, messages.InternalError, res.Message.Key)
	assert.Equal(t, before, snapshot(t, s))
}

func TestSaveAppRenameCascades(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectApp("noWinKey"))

	res := SaveApp(s, NewForm().Set(AppID, "no-win-key"))
	require.True(t, res.Saved, "%v", res.Errors)

	for _, id := range []string{"apex", "valorant"} {
		g, _ := s.Document().Games.Get(id)
		assert.Contains(t, g.AppsToManage, "no-win-key", id)
		assert.NotContains(t, g.AppsToManage, "noWinKey", id)
	}
	assert.Equal(t, "no-win-key", s.SelectedApp())
	assert.Equal(t, "no-win-key", s.Document().ManagedApps.IDs()[0])
}

func TestSaveAppFieldsAndDefaults(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectApp("autoHotkey"))

	res := SaveApp(s, NewForm().
		Set(AppName, "AHK").
		Set(AppPath, `D:\Tools\AutoHotkey.exe`).
		Set(WorkingDirectory, "").
		Set(AppProcessName, "AutoHotkey | AutoHotkey64").
		Set(GameStartAction, "").
		Set(TerminationMethod, "force").
		Set(GracefulTimeoutMs, "soon"))
	require.True(t, res.Saved, "%v", res.Errors)

	a, _ := s.Document().ManagedApps.Get("autoHotkey")
	assert.Equal(t, "AHK", a.Name)
	assert.Equal(t, "D:/Tools/AutoHotkey.exe", a.Path)
	assert.Equal(t, "", a.WorkingDirectory)
	assert.Equal(t, types.ProcessNames{"AutoHotkey", "AutoHotkey64"}, a.ProcessName)
	assert.Equal(t, types.ActionNone, a.GameStartAction)
	assert.Equal(t, types.TerminationForce, a.TerminationMethod)
	assert.Equal(t, types.DefaultGracefulTimeoutMs, a.GracefulTimeoutMs, "unparseable timeout falls back to default")

	res = SaveApp(s, NewForm().Set(GracefulTimeoutMs, ""))
	require.True(t, res.Saved)
	a, _ = s.Document().ManagedApps.Get("autoHotkey")
	assert.Equal(t, 0, a.GracefulTimeoutMs, "blank timeout is removed")
}

func TestSaveAppValidation(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectApp("noWinKey"))
	before := snapshot(t, s)

	res := SaveApp(s, NewForm().Set(AppID, "").Set(GameStartAction, "explode"))

	assert.False(t, res.Saved)
	assert.Equal(t, []string{"appId", "gameStartAction"}, res.Errors.Fields())
	assert.Equal(t, messages.AppIDCannotBeEmpty, res.Message.Key)
	assert.Equal(t, before, snapshot(t, s))

	res = SaveApp(s, NewForm().Set(AppID, "autoHotkey"))
	assert.Equal(t, messages.AppIDAlreadyExists, res.Message.Key)

	empty := state.NewSession("unused.json", state.DefaultDocument())
	assert.Equal(t, messages.NoAppSelected, SaveApp(empty, NewForm()).Message.Key)
}

func TestAppFormRoundTrip(t *testing.T) {
	s := newSession(t)
	require.True(t, s.SelectApp("autoHotkey"))
	before := snapshot(t, s)

	a, _ := s.Document().ManagedApps.Get("autoHotkey")
	require.True(t, SaveApp(s, AppForm("autoHotkey", a)).Saved)
	assert.Equal(t, before, snapshot(t, s))
}

func TestSaveGlobalSettingsSecretTriState(t *testing.T) {
	codec := testCodec()
	stored := codec.Encrypt("original")

	tests := []struct {
		name  string
		input string
		saved bool
		want  string
	}{
		{"blank with saved flag keeps secret", "", true, stored},
		{"blank without saved flag clears secret", "", false, ""},
		{"new value overwrites", "x", false, codec.Encrypt("x")},
		{"new value wins over saved flag", "x", true, codec.Encrypt("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			s.Document().EnsureOBSWebsocket().Password = stored
			s.Document().EnsureVTubeStudio().AuthToken = stored

			form := NewForm().Set(OBSPassword, tt.input).Set(VTSAuthToken, tt.input)
			if tt.saved {
				form.SetTag(OBSPassword, SavedTag).SetTag(VTSAuthToken, SavedTag)
			}

			res := SaveGlobalSettings(s, form, codec)
			require.True(t, res.Saved)
			assert.Equal(t, tt.want, s.Document().OBSPassword())
			assert.Equal(t, tt.want, s.Document().VTubeStudioAuthToken())

			out := snapshot(t, s)
			assert.Contains(t, out, `"password": `+strconv.Quote(tt.want))
			assert.Contains(t, out, `"authToken": `+strconv.Quote(tt.want))
		})
	}
}

func TestSaveGlobalSettingsCreatesSectionsAndDefaults(t *testing.T) {
	s := state.NewSession("unused.json", &types.Document{})

	res := SaveGlobalSettings(s, NewForm().
		Set(Language, "ja").
		Set(OBSHost, "").
		Set(OBSPort, "not-a-port").
		Set(VTSPort, "70000").
		SetBool(VTSEnabled, true).
		SetBool(DiscordRPCEnabled, true).
		Set(DiscordRPCApplicationID, "1234").
		Set(DiscordStatusOnGameStart, "dnd").
		Set(SteamPath, `C:\Steam\steam.exe`).
		Set(LogRetentionDays, "x").
		SetBool(EnableNotarization, true), testCodec())
	require.True(t, res.Saved)
	assert.Equal(t, messages.GlobalSettingsSaved, res.Message.Key)

	doc := s.Document()
	assert.Equal(t, "ja", doc.Language)
	assert.Equal(t, types.DefaultWebsocketHost, doc.Integrations.OBS.Websocket.Host)
	assert.Equal(t, types.DefaultOBSPort, doc.Integrations.OBS.Websocket.Port)
	assert.Equal(t, types.DefaultVTubeStudioPort, doc.Integrations.VTubeStudio.Websocket.Port)
	require.NotNil(t, doc.Integrations.VTubeStudio.Websocket.Enabled)
	assert.True(t, *doc.Integrations.VTubeStudio.Websocket.Enabled)
	assert.True(t, doc.Integrations.Discord.RPC.Enabled)
	assert.Equal(t, "1234", doc.Integrations.Discord.RPC.ApplicationID)
	assert.Equal(t, "dnd", doc.Integrations.Discord.StatusOnGameStart)
	assert.Equal(t, "C:/Steam/steam.exe", doc.Paths.Steam)
	assert.Equal(t, types.DefaultLogRetentionDays, doc.Logging.LogRetentionDays)
	assert.True(t, doc.Logging.EnableNotarization)
	assert.True(t, s.IsModified())
}

func TestSaveGlobalSettingsRejectsUnknownAction(t *testing.T) {
	s := newSession(t)
	before := snapshot(t, s)

	res := SaveGlobalSettings(s, NewForm().Set(Language, "ja").Set(OBSStartAction, "explode"), testCodec())

	assert.False(t, res.Saved)
	assert.Equal(t, messages.InvalidAction, res.Message.Key)
	assert.Equal(t, before, snapshot(t, s))
}

func TestGlobalFormTagsSavedSecrets(t *testing.T) {
	doc := state.DefaultDocument()
	doc.EnsureOBSWebsocket().Password = "sealed"

	f := GlobalForm(doc)
	assert.Equal(t, "", f.Values[OBSPassword])
	assert.Equal(t, SavedTag, f.Tag(OBSPassword))
	assert.Equal(t, "", f.Tag(VTSAuthToken))
	assert.Equal(t, "4455", f.Value(OBSPort))

	s := state.NewSession("unused.json", doc)
	before := snapshot(t, s)
	require.True(t, SaveGlobalSettings(s, f, testCodec()).Saved)
	assert.Equal(t, before, snapshot(t, s), "saving an untouched form changes nothing")
	assert.False(t, s.IsModified())

	require.True(t, SaveGlobalSettings(s, NewForm(), testCodec()).Saved)
	assert.False(t, s.IsModified())
}
