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

// Package binding translates flat form input into validated mutations of
// the session document, and renders entities back into forms. Forms are
// plain data; nothing here knows how the values were collected.
package binding

import (
	"strconv"
	"strings"

	"github.com/focus-game-deck/fgd/secret"
)

// SavedTag marks a secret field whose stored value exists but is not shown.
const SavedTag = "SAVED"

// Game form fields
const (
	GameID             = "gameId"
	GameName           = "gameName"
	Platform           = "platform"
	SteamAppID         = "steamAppId"
	EpicGameID         = "epicGameId"
	RiotGameID         = "riotGameId"
	ExecutablePath     = "executablePath"
	GameProcessName    = "gameProcessName"
	GameComment        = "gameComment"
	AppsToManage       = "appsToManage"
	UseOBS             = "useOBS"
	UseDiscord         = "useDiscord"
	UseVTubeStudio     = "useVTubeStudio"
	OBSReplayBuffer    = "obsEnableReplayBuffer"
	OBSTargetScene     = "obsTargetScene"
	OBSRollback        = "obsEnableRollback"
	VTSModelID         = "vtsModelId"
	VTSOnLaunchHotkeys = "vtsOnLaunchHotkeys"
	VTSOnExitHotkeys   = "vtsOnExitHotkeys"
)

// Managed app form fields
const (
	AppID             = "appId"
	AppName           = "appName"
	AppComment        = "appComment"
	AppPath           = "appPath"
	WorkingDirectory  = "workingDirectory"
	AppProcessName    = "appProcessName"
	Arguments         = "arguments"
	GameStartAction   = "gameStartAction"
	GameEndAction     = "gameEndAction"
	TerminationMethod = "terminationMethod"
	GracefulTimeoutMs = "gracefulTimeoutMs"
)

// Global settings form fields
const (
	Language                 = "language"
	OBSPath                  = "obsPath"
	OBSHost                  = "obsHost"
	OBSPort                  = "obsPort"
	OBSPassword              = "obsPassword"
	OBSReplayBufferEnabled   = "obsReplayBuffer"
	OBSStartAction           = "obsGameStartAction"
	OBSEndAction             = "obsGameEndAction"
	DiscordPath              = "discordPath"
	DiscordStartAction       = "discordGameStartAction"
	DiscordEndAction         = "discordGameEndAction"
	DiscordStatusOnGameStart = "discordStatusOnGameStart"
	DiscordStatusOnGameEnd   = "discordStatusOnGameEnd"
	DiscordDisableOverlay    = "discordDisableOverlay"
	DiscordRPCEnabled        = "discordRpcEnabled"
	DiscordRPCApplicationID  = "discordRpcApplicationId"
	VTSPath                  = "vtsPath"
	VTSStartAction           = "vtsGameStartAction"
	VTSEndAction             = "vtsGameEndAction"
	VTSHost                  = "vtsHost"
	VTSPort                  = "vtsPort"
	VTSEnabled               = "vtsWebsocketEnabled"
	VTSAuthToken             = "vtsAuthToken"
	SteamPath                = "steamPath"
	EpicPath                 = "epicPath"
	RiotPath                 = "riotPath"
	OBSLauncherPath          = "obsLauncherPath"
	LogLevel                 = "logLevel"
	LogRetentionDays         = "logRetentionDays"
	EnableNotarization       = "enableNotarization"
)

// Form is a named set of input values. A key that is absent leaves the
// corresponding document field alone; a key that is present but blank
// clears it.
type Form struct {
	Values map[string]string
	Lists  map[string][]string
	Tags   map[string]string
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{
		Values: make(map[string]string),
		Lists:  make(map[string][]string),
		Tags:   make(map[string]string),
	}
}

// Set stores a string value.
func (f *Form) Set(key, value string) *Form {
	f.Values[key] = value
	return f
}

// SetBool stores a checkbox value.
func (f *Form) SetBool(key string, value bool) *Form {
	f.Values[key] = strconv.FormatBool(value)
	return f
}

// SetList stores a multi-value selection.
func (f *Form) SetList(key string, values []string) *Form {
	f.Lists[key] = append([]string(nil), values...)
	return f
}

// SetTag stores side-channel metadata for key.
func (f *Form) SetTag(key, tag string) *Form {
	f.Tags[key] = tag
	return f
}

// Has reports whether key was submitted as a value or a list.
func (f *Form) Has(key string) bool {
	if _, ok := f.Values[key]; ok {
		return true
	}
	_, ok := f.Lists[key]
	return ok
}

// HasAny reports whether any of keys was submitted.
func (f *Form) HasAny(keys ...string) bool {
	for _, k := range keys {
		if f.Has(k) {
			return true
		}
	}
	return false
}

// Value returns the trimmed value for key.
func (f *Form) Value(key string) string {
	return strings.TrimSpace(f.Values[key])
}

// Bool interprets the value for key as a checkbox state.
func (f *Form) Bool(key string) bool {
	switch strings.ToLower(f.Value(key)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// Int parses the value for key, returning def when it is blank, not a
// number or negative.
func (f *Form) Int(key string, def int) int {
	n, err := strconv.Atoi(f.Value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// List returns the trimmed, non-blank items for key in submitted order.
func (f *Form) List(key string) []string {
	var out []string
	for _, v := range f.Lists[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Tag returns the side-channel tag for key.
func (f *Form) Tag(key string) string {
	return f.Tags[key]
}

// Secret returns the tri-state secret input for key. The raw value is used
// untrimmed; whitespace can be part of a password.
func (f *Form) Secret(key string) secret.Input {
	return secret.Input{
		Value: f.Values[key],
		Saved: f.Tags[key] == SavedTag,
	}
}
