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

package types

import "encoding/json"

// Integrations holds global settings for OBS, Discord and VTube Studio.
type Integrations struct {
	OBS         *OBSIntegration         `json:"obs,omitempty"`
	Discord     *DiscordIntegration     `json:"discord,omitempty"`
	VTubeStudio *VTubeStudioIntegration `json:"vtubeStudio,omitempty"`
}

// Websocket is a host/port pair with an optional enable switch.
type Websocket struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// OBSWebsocket is the OBS websocket endpoint. A cleared password is written
// as "" so the file records that it was removed.
type OBSWebsocket struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"` // encrypted secret
	Enabled  *bool  `json:"enabled,omitempty"`
}

// OBSIntegration configures OBS Studio control.
type OBSIntegration struct {
	Path            string        `json:"path,omitempty"`
	Websocket       *OBSWebsocket `json:"websocket,omitempty"`
	ReplayBuffer    bool          `json:"replayBuffer"`
	GameStartAction Action        `json:"gameStartAction,omitempty"`
	GameEndAction   Action        `json:"gameEndAction,omitempty"`
}

// DiscordRPC configures Discord rich presence.
type DiscordRPC struct {
	Enabled       bool   `json:"enabled"`
	ApplicationID string `json:"applicationId,omitempty"`
}

// DiscordIntegration configures Discord status switching.
//
// statusOnGameStart/statusOnGameEnd are the canonical field names; the
// legacy statusOnStart/statusOnEnd spellings are accepted on read only.
type DiscordIntegration struct {
	Path              string      `json:"path,omitempty"`
	GameStartAction   Action      `json:"gameStartAction,omitempty"`
	GameEndAction     Action      `json:"gameEndAction,omitempty"`
	StatusOnGameStart string      `json:"statusOnGameStart,omitempty"`
	StatusOnGameEnd   string      `json:"statusOnGameEnd,omitempty"`
	DisableOverlay    bool        `json:"disableOverlay"`
	RPC               *DiscordRPC `json:"rpc,omitempty"`
}

// UnmarshalJSON migrates legacy status field names.
func (d *DiscordIntegration) UnmarshalJSON(data []byte) error {
	type plain DiscordIntegration
	var aux struct {
		plain
		LegacyStatusOnStart string `json:"statusOnStart"`
		LegacyStatusOnEnd   string `json:"statusOnEnd"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = DiscordIntegration(aux.plain)
	if d.StatusOnGameStart == "" {
		d.StatusOnGameStart = aux.LegacyStatusOnStart
	}
	if d.StatusOnGameEnd == "" {
		d.StatusOnGameEnd = aux.LegacyStatusOnEnd
	}
	return nil
}

// VTubeStudioIntegration configures VTube Studio control.
type VTubeStudioIntegration struct {
	Path            string     `json:"path,omitempty"`
	GameStartAction Action     `json:"gameStartAction,omitempty"`
	GameEndAction   Action     `json:"gameEndAction,omitempty"`
	Websocket       *Websocket `json:"websocket,omitempty"`
	AuthToken       string     `json:"authToken"` // encrypted secret; cleared as ""
}

// EnsureIntegrations returns the integrations section, creating it if absent.
func (d *Document) EnsureIntegrations() *Integrations {
	if d.Integrations == nil {
		d.Integrations = &Integrations{}
	}
	return d.Integrations
}

// EnsureOBS returns the OBS settings, creating the parent chain.
func (d *Document) EnsureOBS() *OBSIntegration {
	in := d.EnsureIntegrations()
	if in.OBS == nil {
		in.OBS = &OBSIntegration{}
	}
	return in.OBS
}

// EnsureOBSWebsocket returns the OBS websocket settings, creating the parent chain
// with the default host and port.
func (d *Document) EnsureOBSWebsocket() *OBSWebsocket {
	obs := d.EnsureOBS()
	if obs.Websocket == nil {
		obs.Websocket = &OBSWebsocket{Host: DefaultWebsocketHost, Port: DefaultOBSPort}
	}
	return obs.Websocket
}

// EnsureDiscord returns the Discord settings, creating the parent chain.
func (d *Document) EnsureDiscord() *DiscordIntegration {
	in := d.EnsureIntegrations()
	if in.Discord == nil {
		in.Discord = &DiscordIntegration{}
	}
	return in.Discord
}

// EnsureDiscordRPC returns the Discord RPC settings, creating the parent chain.
func (d *Document) EnsureDiscordRPC() *DiscordRPC {
	discord := d.EnsureDiscord()
	if discord.RPC == nil {
		discord.RPC = &DiscordRPC{}
	}
	return discord.RPC
}

// EnsureVTubeStudio returns the VTube Studio settings, creating the parent chain.
func (d *Document) EnsureVTubeStudio() *VTubeStudioIntegration {
	in := d.EnsureIntegrations()
	if in.VTubeStudio == nil {
		in.VTubeStudio = &VTubeStudioIntegration{}
	}
	return in.VTubeStudio
}

// EnsureVTubeStudioWebsocket returns the VTube Studio websocket settings,
// creating the parent chain with the default host and port.
func (d *Document) EnsureVTubeStudioWebsocket() *Websocket {
	vts := d.EnsureVTubeStudio()
	if vts.Websocket == nil {
		vts.Websocket = &Websocket{Host: DefaultWebsocketHost, Port: DefaultVTubeStudioPort}
	}
	return vts.Websocket
}

// OBSPassword returns the stored (encrypted) OBS websocket password, or "".
func (d *Document) OBSPassword() string {
	if d.Integrations == nil || d.Integrations.OBS == nil || d.Integrations.OBS.Websocket == nil {
		return ""
	}
	return d.Integrations.OBS.Websocket.Password
}

// VTubeStudioAuthToken returns the stored (encrypted) VTube Studio token, or "".
func (d *Document) VTubeStudioAuthToken() string {
	if d.Integrations == nil || d.Integrations.VTubeStudio == nil {
		return ""
	}
	return d.Integrations.VTubeStudio.AuthToken
}
