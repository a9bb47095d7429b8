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

import "github.com/focus-game-deck/fgd/types"

// DefaultDocument returns the sample configuration written when no config
// file exists yet.
func DefaultDocument() *types.Document {
	doc := &types.Document{}

	doc.ManagedApps.Put("noWinKey", &types.AppEntry{
		Name:              "NoWinKey",
		Path:              "C:/Apps/NoWinKey/NoWinKey.exe",
		ProcessName:       types.ProcessNames{"NoWinKey"},
		GameStartAction:   types.ActionStartProcess,
		GameEndAction:     types.ActionStopProcess,
		TerminationMethod: types.TerminationAuto,
		GracefulTimeoutMs: types.DefaultGracefulTimeoutMs,
	})
	doc.ManagedApps.Put("autoHotkey", &types.AppEntry{
		Name:              "AutoHotkey",
		Path:              "C:/Program Files/AutoHotkey/AutoHotkey.exe",
		ProcessName:       types.ProcessNames{"AutoHotkey", "AutoHotkeyU64"},
		GameStartAction:   types.ActionStopProcess,
		GameEndAction:     types.ActionStartProcess,
		TerminationMethod: types.TerminationGraceful,
		GracefulTimeoutMs: types.DefaultGracefulTimeoutMs,
	})
	doc.ManagedApps.Put("wallpaperEngine", &types.AppEntry{
		Name:            "Wallpaper Engine",
		Path:            "C:/Program Files (x86)/Steam/steamapps/common/wallpaper_engine/wallpaper64.exe",
		ProcessName:     types.ProcessNames{"wallpaper64"},
		GameStartAction: types.ActionPauseWallpaper,
		GameEndAction:   types.ActionPlayWallpaper,
	})

	doc.Games.Put("apex", &types.GameEntry{
		Name:         "Apex Legends",
		Platform:     types.PlatformSteam,
		SteamAppID:   "1172470",
		ProcessName:  "r5apex*",
		AppsToManage: []string{"noWinKey", "autoHotkey", "wallpaperEngine"},
		Integrations: &types.GameIntegrations{
			UseOBS: true,
			OBSSettings: &types.GameOBSSettings{
				EnableReplayBuffer: true,
			},
		},
	})
	doc.Games.Put("valorant", &types.GameEntry{
		Name:         "VALORANT",
		Platform:     types.PlatformRiot,
		RiotGameID:   "valorant",
		ProcessName:  "VALORANT-Win64-Shipping*",
		AppsToManage: []string{"noWinKey", "wallpaperEngine"},
		Integrations: &types.GameIntegrations{UseDiscord: true},
	})

	obs := doc.EnsureOBS()
	obs.Path = "C:/Program Files/obs-studio/bin/64bit/obs64.exe"
	obs.ReplayBuffer = true
	doc.EnsureOBSWebsocket()

	discord := doc.EnsureDiscord()
	discord.GameStartAction = types.ActionSetDiscordGamingMode
	discord.GameEndAction = types.ActionRestoreDiscordNormal
	discord.StatusOnGameStart = "dnd"
	discord.StatusOnGameEnd = "online"

	doc.EnsureVTubeStudioWebsocket()

	*doc.EnsurePaths() = types.Paths{
		Steam: "C:/Program Files (x86)/Steam/steam.exe",
		Epic:  "C:/Program Files (x86)/Epic Games/Launcher/Portal/Binaries/Win64/EpicGamesLauncher.exe",
		Riot:  "C:/Riot Games/Riot Client/RiotClientServices.exe",
		OBS:   "C:/Program Files/obs-studio/bin/64bit/obs64.exe",
	}
	doc.EnsureLogging()

	return doc
}
