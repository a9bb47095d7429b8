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

package messages

// English is the fallback catalog used by the CLI.
var English = MapCatalog{
	GameIDCannotBeEmpty:    "Game ID cannot be empty",
	GameIDAlreadyExists:    "Game ID '{0}' already exists",
	GameIDInvalid:          "Game ID '{0}' may not contain '.' or start with '_'",
	AppIDCannotBeEmpty:     "App ID cannot be empty",
	AppIDAlreadyExists:     "App ID '{0}' already exists",
	AppIDInvalid:           "App ID '{0}' may not contain '.' or start with '_'",
	InvalidPlatform:        "Unknown platform '{0}'",
	SteamAppIDRequired:     "Steam AppID is required for Steam games",
	EpicGameIDRequired:     "Epic game ID is required for Epic games",
	RiotGameIDRequired:     "Riot game ID is required for Riot games",
	ExecutablePathRequired: "Executable path is required for direct-launch games",
	InvalidAction:          "Unknown action '{0}'",
	InvalidTermination:     "Unknown termination method '{0}'",
	UnknownManagedApp:      "Game '{0}' references unknown managed app '{1}'",
	ConfigLoadFailed:       "Failed to load configuration '{0}': {1}. Using defaults.",
	ConfigCreated:          "Created default configuration at {0}",
	ConfigSaved:            "Configuration saved to {0}",
	ConfigSaveFailed:       "Failed to save configuration: {0}",
	GameSaved:              "Game '{0}' saved",
	GameAdded:              "Game '{0}' added",
	GameRenamed:            "Game '{0}' renamed to '{1}'",
	GameDeleted:            "Game '{0}' deleted",
	GameNotFound:           "Game '{0}' not found",
	NoGameSelected:         "No game selected",
	AppSaved:               "Managed app '{0}' saved",
	AppAdded:               "Managed app '{0}' added",
	AppRenamed:             "Managed app '{0}' renamed to '{1}'",
	AppDeleted:             "Managed app '{0}' deleted",
	AppNotFound:            "Managed app '{0}' not found",
	NoAppSelected:          "No managed app selected",
	GlobalSettingsSaved:    "Global settings saved",
	ReservedPath:           "Path '{0}' is reserved",
	InternalError:          "Internal error: {0}",
}
