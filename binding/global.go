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
	"strconv"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/secret"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
	"github.com/focus-game-deck/fgd/validation"
)

// SaveGlobalSettings applies integration, launcher path and logging fields.
// Sections are created on first write. Secret fields follow the tri-state
// contract of secret.Input: a blank field tagged SavedTag keeps the stored
// secret, an untagged blank clears it, anything else is encrypted.
func SaveGlobalSettings(s *state.Session, form *Form, codec *secret.Codec) (res Result) {
	defer recoverInto(s, "saveGlobalSettings", &res)

	edited, err := s.Document().Clone()
	if err != nil {
		return failed(err)
	}

	c := validation.NewCollector()
	for _, key := range []string{OBSStartAction, OBSEndAction, DiscordStartAction, DiscordEndAction, VTSStartAction, VTSEndAction} {
		if form.Has(key) {
			c.Check(key, validation.ValidateAction(form.Value(key)))
		}
	}
	if errs := c.Errors(); len(errs) > 0 {
		return rejected(errs)
	}

	if form.Has(Language) {
		edited.Language = form.Value(Language)
	}
	applyOBS(edited, form, codec)
	applyDiscord(edited, form)
	applyVTubeStudio(edited, form, codec)
	applyPaths(edited, form)
	applyLogging(edited, form)

	if sameDocument(s.Document(), edited) {
		s.Logger().Debug("Global settings unchanged")
		return Result{Saved: true, Message: messages.New(messages.GlobalSettingsSaved)}
	}
	s.Replace(edited)
	s.Logger().Info("Saved global settings")
	return Result{Saved: true, Message: messages.New(messages.GlobalSettingsSaved)}
}

func applyOBS(doc *types.Document, form *Form, codec *secret.Codec) {
	if !form.HasAny(OBSPath, OBSHost, OBSPort, OBSPassword, OBSReplayBufferEnabled, OBSStartAction, OBSEndAction) {
		return
	}
	obs := doc.EnsureOBS()
	if form.Has(OBSPath) {
		obs.Path = types.NormalizePath(form.Value(OBSPath))
	}
	if form.Has(OBSReplayBufferEnabled) {
		obs.ReplayBuffer = form.Bool(OBSReplayBufferEnabled)
	}
	if form.Has(OBSStartAction) {
		obs.GameStartAction = types.Action(form.Value(OBSStartAction))
	}
	if form.Has(OBSEndAction) {
		obs.GameEndAction = types.Action(form.Value(OBSEndAction))
	}

	if form.HasAny(OBSHost, OBSPort, OBSPassword) {
		ws := doc.EnsureOBSWebsocket()
		if form.Has(OBSHost) {
			ws.Host = hostOrDefault(form.Value(OBSHost))
		}
		if form.Has(OBSPort) {
			ws.Port = portOrDefault(form, OBSPort, types.DefaultOBSPort)
		}
		if form.Has(OBSPassword) {
			ws.Password = codec.Apply(ws.Password, form.Secret(OBSPassword))
		}
	}
}

func applyDiscord(doc *types.Document, form *Form) {
	if !form.HasAny(DiscordPath, DiscordStartAction, DiscordEndAction, DiscordStatusOnGameStart,
		DiscordStatusOnGameEnd, DiscordDisableOverlay, DiscordRPCEnabled, DiscordRPCApplicationID) {
		return
	}
	d := doc.EnsureDiscord()
	if form.Has(DiscordPath) {
		d.Path = types.NormalizePath(form.Value(DiscordPath))
	}
	if form.Has(DiscordStartAction) {
		d.GameStartAction = types.Action(form.Value(DiscordStartAction))
	}
	if form.Has(DiscordEndAction) {
		d.GameEndAction = types.Action(form.Value(DiscordEndAction))
	}
	if form.Has(DiscordStatusOnGameStart) {
		d.StatusOnGameStart = form.Value(DiscordStatusOnGameStart)
	}
	if form.Has(DiscordStatusOnGameEnd) {
		d.StatusOnGameEnd = form.Value(DiscordStatusOnGameEnd)
	}
	if form.Has(DiscordDisableOverlay) {
		d.DisableOverlay = form.Bool(DiscordDisableOverlay)
	}

	switch {
	case form.Bool(DiscordRPCEnabled):
		rpc := doc.EnsureDiscordRPC()
		rpc.Enabled = true
		if form.Has(DiscordRPCApplicationID) {
			rpc.ApplicationID = form.Value(DiscordRPCApplicationID)
		}
	case form.Has(DiscordRPCEnabled) && d.RPC != nil:
		d.RPC.Enabled = false
	}
}

func applyVTubeStudio(doc *types.Document, form *Form, codec *secret.Codec) {
	if !form.HasAny(VTSPath, VTSStartAction, VTSEndAction, VTSHost, VTSPort, VTSEnabled, VTSAuthToken) {
		return
	}
	vts := doc.EnsureVTubeStudio()
	if form.Has(VTSPath) {
		vts.Path = types.NormalizePath(form.Value(VTSPath))
	}
	if form.Has(VTSStartAction) {
		vts.GameStartAction = types.Action(form.Value(VTSStartAction))
	}
	if form.Has(VTSEndAction) {
		vts.GameEndAction = types.Action(form.Value(VTSEndAction))
	}
	if form.Has(VTSAuthToken) {
		vts.AuthToken = codec.Apply(vts.AuthToken, form.Secret(VTSAuthToken))
	}

	if form.HasAny(VTSHost, VTSPort, VTSEnabled) {
		ws := doc.EnsureVTubeStudioWebsocket()
		if form.Has(VTSHost) {
			ws.Host = hostOrDefault(form.Value(VTSHost))
		}
		if form.Has(VTSPort) {
			ws.Port = portOrDefault(form, VTSPort, types.DefaultVTubeStudioPort)
		}
		if form.Has(VTSEnabled) {
			enabled := form.Bool(VTSEnabled)
			ws.Enabled = &enabled
		}
	}
}

func applyPaths(doc *types.Document, form *Form) {
	if !form.HasAny(SteamPath, EpicPath, RiotPath, OBSLauncherPath) {
		return
	}
	p := doc.EnsurePaths()
	if form.Has(SteamPath) {
		p.Steam = types.NormalizePath(form.Value(SteamPath))
	}
	if form.Has(EpicPath) {
		p.Epic = types.NormalizePath(form.Value(EpicPath))
	}
	if form.Has(RiotPath) {
		p.Riot = types.NormalizePath(form.Value(RiotPath))
	}
	if form.Has(OBSLauncherPath) {
		p.OBS = types.NormalizePath(form.Value(OBSLauncherPath))
	}
}

func applyLogging(doc *types.Document, form *Form) {
	if !form.HasAny(LogLevel, LogRetentionDays, EnableNotarization) {
		return
	}
	l := doc.EnsureLogging()
	if form.Has(LogLevel) {
		l.Level = form.Value(LogLevel)
	}
	if form.Has(LogRetentionDays) {
		l.LogRetentionDays = form.Int(LogRetentionDays, types.DefaultLogRetentionDays)
		if l.LogRetentionDays == 0 {
			l.LogRetentionDays = types.DefaultLogRetentionDays
		}
	}
	if form.Has(EnableNotarization) {
		l.EnableNotarization = form.Bool(EnableNotarization)
	}
}

// sameDocument compares the serialized forms of a and b.
func sameDocument(a, b *types.Document) bool {
	before, err := state.MarshalDocument(a)
	if err != nil {
		return false
	}
	after, err := state.MarshalDocument(b)
	if err != nil {
		return false
	}
	return bytes.Equal(before, after)
}

func hostOrDefault(host string) string {
	if host == "" {
		return types.DefaultWebsocketHost
	}
	return host
}

func portOrDefault(form *Form, key string, def int) int {
	port := form.Int(key, def)
	if port < 1 || port > 65535 {
		logger.Debug("Port out of range; using default", logger.F("field", key), logger.F("default", def))
		return def
	}
	return port
}

// GlobalForm renders the global settings as a form. Stored secrets are never
// rendered; their fields are blank and tagged SavedTag instead.
func GlobalForm(doc *types.Document) *Form {
	f := NewForm().Set(Language, doc.Language)

	if in := doc.Integrations; in != nil {
		if obs := in.OBS; obs != nil {
			f.Set(OBSPath, obs.Path).
				SetBool(OBSReplayBufferEnabled, obs.ReplayBuffer).
				Set(OBSStartAction, string(obs.GameStartAction)).
				Set(OBSEndAction, string(obs.GameEndAction))
			if ws := obs.Websocket; ws != nil {
				f.Set(OBSHost, ws.Host).Set(OBSPort, strconv.Itoa(ws.Port)).Set(OBSPassword, "")
				if ws.Password != "" {
					f.SetTag(OBSPassword, SavedTag)
				}
			}
		}
		if d := in.Discord; d != nil {
			f.Set(DiscordPath, d.Path).
				Set(DiscordStartAction, string(d.GameStartAction)).
				Set(DiscordEndAction, string(d.GameEndAction)).
				Set(DiscordStatusOnGameStart, d.StatusOnGameStart).
				Set(DiscordStatusOnGameEnd, d.StatusOnGameEnd).
				SetBool(DiscordDisableOverlay, d.DisableOverlay)
			if d.RPC != nil {
				f.SetBool(DiscordRPCEnabled, d.RPC.Enabled).Set(DiscordRPCApplicationID, d.RPC.ApplicationID)
			}
		}
		if vts := in.VTubeStudio; vts != nil {
			f.Set(VTSPath, vts.Path).
				Set(VTSStartAction, string(vts.GameStartAction)).
				Set(VTSEndAction, string(vts.GameEndAction)).
				Set(VTSAuthToken, "")
			if vts.AuthToken != "" {
				f.SetTag(VTSAuthToken, SavedTag)
			}
			if ws := vts.Websocket; ws != nil {
				f.Set(VTSHost, ws.Host).Set(VTSPort, strconv.Itoa(ws.Port))
				if ws.Enabled != nil {
					f.SetBool(VTSEnabled, *ws.Enabled)
				}
			}
		}
	}

	p := doc.PathsOrDefault()
	f.Set(SteamPath, p.Steam).Set(EpicPath, p.Epic).Set(RiotPath, p.Riot).Set(OBSLauncherPath, p.OBS)

	l := doc.LoggingOrDefault()
	f.Set(LogLevel, l.Level).
		Set(LogRetentionDays, strconv.Itoa(l.LogRetentionDays)).
		SetBool(EnableNotarization, l.EnableNotarization)
	return f
}
