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

// Package types defines the Focus Game Deck configuration document: games,
// managed companion apps, integration settings, launcher paths and logging.
// Optional sections are pointers; Ensure* builders create missing parents on
// first write so older documents upgrade by addition.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document represents config.json
type Document struct {
	Language     string                `json:"language,omitempty"`
	Integrations *Integrations         `json:"integrations,omitempty"`
	Paths        *Paths                `json:"paths,omitempty"`
	ManagedApps  Collection[AppEntry]  `json:"managedApps"`
	Games        Collection[GameEntry] `json:"games"`
	Logging      *Logging              `json:"logging,omitempty"`
}

// GameEntry is a launchable game keyed by its game id.
type GameEntry struct {
	Name           string            `json:"name"`
	Platform       Platform          `json:"platform"`
	SteamAppID     string            `json:"steamAppId,omitempty"`
	EpicGameID     string            `json:"epicGameId,omitempty"`
	RiotGameID     string            `json:"riotGameId,omitempty"`
	ExecutablePath string            `json:"executablePath,omitempty"`
	ProcessName    string            `json:"processName,omitempty"` // wildcard match pattern, e.g. "r5apex*"
	Comment        string            `json:"comment,omitempty"`
	AppsToManage   []string          `json:"appsToManage,omitempty"`
	Integrations   *GameIntegrations `json:"integrations,omitempty"`
}

// GameIntegrations toggles integrations for a single game.
type GameIntegrations struct {
	UseOBS              bool                     `json:"useOBS"`
	UseDiscord          bool                     `json:"useDiscord"`
	UseVTubeStudio      bool                     `json:"useVTubeStudio"`
	OBSSettings         *GameOBSSettings         `json:"obsSettings,omitempty"`
	VTubeStudioSettings *GameVTubeStudioSettings `json:"vtubeStudioSettings,omitempty"`
}

// GameOBSSettings holds per-game OBS behaviour.
type GameOBSSettings struct {
	EnableReplayBuffer bool   `json:"enableReplayBuffer"`
	TargetScene        string `json:"targetScene,omitempty"`
	EnableRollback     bool   `json:"enableRollback"`
}

// GameVTubeStudioSettings holds per-game VTube Studio behaviour.
type GameVTubeStudioSettings struct {
	ModelID         string   `json:"modelId,omitempty"`
	OnLaunchHotkeys []string `json:"onLaunchHotkeys,omitempty"`
	OnExitHotkeys   []string `json:"onExitHotkeys,omitempty"`
}

// AppEntry is a managed companion application keyed by its app id.
type AppEntry struct {
	Name              string            `json:"name,omitempty"`
	Comment           string            `json:"comment,omitempty"`
	Path              string            `json:"path"`
	WorkingDirectory  string            `json:"workingDirectory,omitempty"`
	ProcessName       ProcessNames      `json:"processName,omitempty"`
	Arguments         string            `json:"arguments,omitempty"`
	GameStartAction   Action            `json:"gameStartAction"`
	GameEndAction     Action            `json:"gameEndAction"`
	TerminationMethod TerminationMethod `json:"terminationMethod,omitempty"`
	GracefulTimeoutMs int               `json:"gracefulTimeoutMs,omitempty"`
}

// Paths holds launcher executable locations.
type Paths struct {
	Steam string `json:"steam,omitempty"`
	Epic  string `json:"epic,omitempty"`
	Riot  string `json:"riot,omitempty"`
	OBS   string `json:"obs,omitempty"`
}

// Logging holds the launcher's log retention policy.
type Logging struct {
	Level              string `json:"level,omitempty"`
	LogRetentionDays   int    `json:"logRetentionDays,omitempty"`
	EnableNotarization bool   `json:"enableNotarization"`
}

// ProcessNames is one or more process matchers. A single matcher is stored
// as a JSON string, several as an array. Pipe-delimited strings are split on read.
type ProcessNames []string

// SplitProcessNames splits pipe-delimited input, dropping blank parts.
func SplitProcessNames(input string) ProcessNames {
	var out ProcessNames
	for _, part := range strings.Split(input, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String joins the matchers with '|'.
func (p ProcessNames) String() string {
	return strings.Join(p, "|")
}

// MarshalJSON writes a string for a single matcher, an array otherwise.
func (p ProcessNames) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(p[0])
	}
	return json.Marshal([]string(p))
}

// UnmarshalJSON accepts a string or an array of strings.
func (p *ProcessNames) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = SplitProcessNames(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("processName must be a string or array of strings: %w", err)
	}
	*p = nil
	for _, m := range many {
		*p = append(*p, SplitProcessNames(m)...)
	}
	return nil
}

// DisplayName returns the app's name, falling back to its id.
func (a *AppEntry) DisplayName(id string) string {
	if strings.TrimSpace(a.Name) == "" {
		return id
	}
	return a.Name
}

// Clone returns a deep copy.
func (a *AppEntry) Clone() *AppEntry {
	c := *a
	c.ProcessName = append(ProcessNames(nil), a.ProcessName...)
	return &c
}

// PlatformIdentifier returns the identifier field relevant to the game's platform.
func (g *GameEntry) PlatformIdentifier() string {
	switch g.Platform {
	case PlatformSteam:
		return g.SteamAppID
	case PlatformEpic:
		return g.EpicGameID
	case PlatformRiot:
		return g.RiotGameID
	case PlatformDirect:
		return g.ExecutablePath
	}
	return ""
}

// EnsureIntegrations returns the game's integration toggles, creating them if absent.
func (g *GameEntry) EnsureIntegrations() *GameIntegrations {
	if g.Integrations == nil {
		g.Integrations = &GameIntegrations{}
	}
	return g.Integrations
}

// EnsureOBSSettings returns the per-game OBS settings, creating the parent chain.
func (g *GameEntry) EnsureOBSSettings() *GameOBSSettings {
	in := g.EnsureIntegrations()
	if in.OBSSettings == nil {
		in.OBSSettings = &GameOBSSettings{}
	}
	return in.OBSSettings
}

// EnsureVTubeStudioSettings returns the per-game VTube Studio settings, creating the parent chain.
func (g *GameEntry) EnsureVTubeStudioSettings() *GameVTubeStudioSettings {
	in := g.EnsureIntegrations()
	if in.VTubeStudioSettings == nil {
		in.VTubeStudioSettings = &GameVTubeStudioSettings{}
	}
	return in.VTubeStudioSettings
}

// IntegrationsOrDefault returns the toggles, or all-disabled when absent.
func (g *GameEntry) IntegrationsOrDefault() GameIntegrations {
	if g.Integrations == nil {
		return GameIntegrations{}
	}
	return *g.Integrations
}

// ReplaceApp rewrites every occurrence of oldID in AppsToManage, keeping
// position and multiplicity. Returns the number of replacements.
func (g *GameEntry) ReplaceApp(oldID, newID string) int {
	n := 0
	for i, id := range g.AppsToManage {
		if id == oldID {
			g.AppsToManage[i] = newID
			n++
		}
	}
	return n
}

// RemoveApp drops every occurrence of id from AppsToManage.
func (g *GameEntry) RemoveApp(id string) int {
	before := len(g.AppsToManage)
	g.AppsToManage = removeString(g.AppsToManage, id)
	if len(g.AppsToManage) == 0 {
		g.AppsToManage = nil
	}
	return before - len(g.AppsToManage)
}

// Clone returns a deep copy.
func (g *GameEntry) Clone() *GameEntry {
	c := *g
	c.AppsToManage = append([]string(nil), g.AppsToManage...)
	if g.Integrations != nil {
		in := *g.Integrations
		if in.OBSSettings != nil {
			obs := *in.OBSSettings
			in.OBSSettings = &obs
		}
		if in.VTubeStudioSettings != nil {
			vts := *in.VTubeStudioSettings
			vts.OnLaunchHotkeys = append([]string(nil), vts.OnLaunchHotkeys...)
			vts.OnExitHotkeys = append([]string(nil), vts.OnExitHotkeys...)
			in.VTubeStudioSettings = &vts
		}
		c.Integrations = &in
	}
	return &c
}

// EnsurePaths returns the paths section, creating it if absent.
func (d *Document) EnsurePaths() *Paths {
	if d.Paths == nil {
		d.Paths = &Paths{}
	}
	return d.Paths
}

// PathsOrDefault returns the paths section, or empty paths when absent.
func (d *Document) PathsOrDefault() Paths {
	if d.Paths == nil {
		return Paths{}
	}
	return *d.Paths
}

// EnsureLogging returns the logging section, creating it with defaults if absent.
func (d *Document) EnsureLogging() *Logging {
	if d.Logging == nil {
		l := DefaultLogging()
		d.Logging = &l
	}
	return d.Logging
}

// LoggingOrDefault returns the logging section with defaults filled in.
func (d *Document) LoggingOrDefault() Logging {
	l := DefaultLogging()
	if d.Logging == nil {
		return l
	}
	if d.Logging.Level != "" {
		l.Level = d.Logging.Level
	}
	if d.Logging.LogRetentionDays > 0 {
		l.LogRetentionDays = d.Logging.LogRetentionDays
	}
	l.EnableNotarization = d.Logging.EnableNotarization
	return l
}

// DefaultLogging returns the logging section used when none is configured.
func DefaultLogging() Logging {
	return Logging{
		Level:            DefaultLogLevel,
		LogRetentionDays: DefaultLogRetentionDays,
	}
}

// Clone returns a deep copy via the document's JSON form.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	return &out, nil
}

// InitializeOrders repairs the order-list of every ordered collection.
func (d *Document) InitializeOrders() (games, apps OrderRepair) {
	games.Dropped, games.Appended = d.Games.InitializeOrder()
	apps.Dropped, apps.Appended = d.ManagedApps.InitializeOrder()
	return games, apps
}

// OrderRepair reports what InitializeOrder changed.
type OrderRepair struct {
	Dropped  []string
	Appended []string
}

// Changed reports whether any repair was needed.
func (r OrderRepair) Changed() bool {
	return len(r.Dropped) > 0 || len(r.Appended) > 0
}

// NormalizePath trims whitespace and converts Windows separators to '/'.
func NormalizePath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}
