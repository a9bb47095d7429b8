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

// Platform identifies the launcher a game is started through.
type Platform string

const (
	PlatformSteam  Platform = "steam"
	PlatformEpic   Platform = "epic"
	PlatformEA     Platform = "ea"
	PlatformRiot   Platform = "riot"
	PlatformDirect Platform = "direct"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformSteam, PlatformEpic, PlatformEA, PlatformRiot, PlatformDirect}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Action is a lifecycle verb executed at game start or end.
type Action string

const (
	ActionNone                 Action = "none"
	ActionStartProcess         Action = "start-process"
	ActionStopProcess          Action = "stop-process"
	ActionToggleHotkeys        Action = "toggle-hotkeys"
	ActionEnterGameMode        Action = "enter-game-mode"
	ActionExitGameMode         Action = "exit-game-mode"
	ActionPauseWallpaper       Action = "pause-wallpaper"
	ActionPlayWallpaper        Action = "play-wallpaper"
	ActionStartVTubeStudio     Action = "start-vtube-studio"
	ActionStopVTubeStudio      Action = "stop-vtube-studio"
	ActionSetDiscordGamingMode Action = "set-discord-gaming-mode"
	ActionRestoreDiscordNormal Action = "restore-discord-normal"
)

// Actions lists every action verb.
var Actions = []Action{
	ActionNone,
	ActionStartProcess,
	ActionStopProcess,
	ActionToggleHotkeys,
	ActionEnterGameMode,
	ActionExitGameMode,
	ActionPauseWallpaper,
	ActionPlayWallpaper,
	ActionStartVTubeStudio,
	ActionStopVTubeStudio,
	ActionSetDiscordGamingMode,
	ActionRestoreDiscordNormal,
}

// Valid reports whether a is a known action verb.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// TerminationMethod controls how a managed process is stopped.
type TerminationMethod string

const (
	TerminationAuto     TerminationMethod = "auto"
	TerminationGraceful TerminationMethod = "graceful"
	TerminationForce    TerminationMethod = "force"
)

// TerminationMethods lists the supported termination methods.
var TerminationMethods = []TerminationMethod{TerminationAuto, TerminationGraceful, TerminationForce}

// Valid reports whether m is a supported termination method.
func (m TerminationMethod) Valid() bool {
	return m == TerminationAuto || m == TerminationGraceful || m == TerminationForce
}

// Defaults applied when form input is missing or unparseable.
const (
	DefaultGracefulTimeoutMs = 3000
	DefaultOBSPort           = 4455
	DefaultVTubeStudioPort   = 8001
	DefaultWebsocketHost     = "localhost"
	DefaultLogRetentionDays  = 90
	DefaultLogLevel          = "info"
)
