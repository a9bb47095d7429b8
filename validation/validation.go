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

// Package validation provides the input rules for game and managed-app
// edits. Validators are pure: they return field-attributed message keys and
// never touch the document.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/types"
)

// Field references reported in FieldError.Field.
const (
	FieldGameID         = "gameId"
	FieldPlatform       = "platform"
	FieldSteamAppID     = "steamAppId"
	FieldEpicGameID     = "epicGameId"
	FieldRiotGameID     = "riotGameId"
	FieldExecutablePath = "executablePath"
	FieldAppID          = "appId"
	FieldAppsToManage   = "appsToManage"
	FieldStartAction    = "gameStartAction"
	FieldEndAction      = "gameEndAction"
	FieldTermination    = "terminationMethod"
)

// GameInput is the candidate state of a game edit.
type GameInput struct {
	OriginalID     string // id before the edit; empty for a new entry
	ID             string
	Platform       types.Platform
	SteamAppID     string
	EpicGameID     string
	RiotGameID     string
	ExecutablePath string
}

// AppInput is the candidate state of a managed-app edit.
type AppInput struct {
	OriginalID string
	ID         string
}

// ValidateGame checks a game edit against the ids already in use.
func ValidateGame(in GameInput, existingIDs []string) Errors {
	c := NewCollector()

	id := strings.TrimSpace(in.ID)
	switch {
	case id == "":
		c.Add(FieldGameID, messages.GameIDCannotBeEmpty)
	case id != in.OriginalID && ValidateID(id) != nil:
		c.Add(FieldGameID, messages.GameIDInvalid, id)
	case id != in.OriginalID && contains(existingIDs, id):
		c.Add(FieldGameID, messages.GameIDAlreadyExists, id)
	}

	if !in.Platform.Valid() {
		c.Add(FieldPlatform, messages.InvalidPlatform, string(in.Platform))
		return c.Errors()
	}

	switch in.Platform {
	case types.PlatformSteam:
		if strings.TrimSpace(in.SteamAppID) == "" {
			c.Add(FieldSteamAppID, messages.SteamAppIDRequired)
		}
	case types.PlatformEpic:
		if strings.TrimSpace(in.EpicGameID) == "" {
			c.Add(FieldEpicGameID, messages.EpicGameIDRequired)
		}
	case types.PlatformRiot:
		if strings.TrimSpace(in.RiotGameID) == "" {
			c.Add(FieldRiotGameID, messages.RiotGameIDRequired)
		}
	case types.PlatformDirect:
		if strings.TrimSpace(in.ExecutablePath) == "" {
			c.Add(FieldExecutablePath, messages.ExecutablePathRequired)
		}
	case types.PlatformEA:
		// no launcher-specific identifier is required
	}

	return c.Errors()
}

// ValidateApp checks a managed-app edit against the ids already in use.
func ValidateApp(in AppInput, existingIDs []string) Errors {
	c := NewCollector()

	id := strings.TrimSpace(in.ID)
	switch {
	case id == "":
		c.Add(FieldAppID, messages.AppIDCannotBeEmpty)
	case id != in.OriginalID && ValidateID(id) != nil:
		c.Add(FieldAppID, messages.AppIDInvalid, id)
	case id != in.OriginalID && contains(existingIDs, id):
		c.Add(FieldAppID, messages.AppIDAlreadyExists, id)
	}

	return c.Errors()
}

// ErrInvalidID is wrapped by ValidateID. Callers pick the message key that
// fits the collection being edited.
var ErrInvalidID = errors.New("invalid id")

// ValidateID checks that id is usable as a collection key and a path segment.
// Only new or changed ids are checked; ids already stored are left alone.
func ValidateID(id string) error {
	if id == "" || strings.ContainsAny(id, ".*?") || types.IsMetadataKey(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// ValidatePlatform validates a platform tag.
func ValidatePlatform(p string) error {
	if !types.Platform(p).Valid() {
		return messages.New(messages.InvalidPlatform, p)
	}
	return nil
}

// ValidateAction validates an action verb. Empty is allowed.
func ValidateAction(a string) error {
	if a == "" {
		return nil
	}
	if !types.Action(a).Valid() {
		return messages.New(messages.InvalidAction, a)
	}
	return nil
}

// ValidateTerminationMethod validates a termination method. Empty is allowed.
func ValidateTerminationMethod(m string) error {
	if m == "" {
		return nil
	}
	if !types.TerminationMethod(m).Valid() {
		return messages.New(messages.InvalidTermination, m)
	}
	return nil
}

// ValidateDocument applies the entity rules to every stored game and app,
// plus referential checks on appsToManage. Fields are prefixed with the
// collection path, e.g. "games.apex.steamAppId".
func ValidateDocument(doc *types.Document) Errors {
	var all Errors

	for _, id := range doc.Games.IDs() {
		g, _ := doc.Games.Get(id)
		errs := ValidateGame(GameInput{
			OriginalID:     id,
			ID:             id,
			Platform:       g.Platform,
			SteamAppID:     g.SteamAppID,
			EpicGameID:     g.EpicGameID,
			RiotGameID:     g.RiotGameID,
			ExecutablePath: g.ExecutablePath,
		}, nil)

		c := NewCollector().WithContext("games." + id)
		for _, fe := range errs {
			c.Add(fe.Field, fe.Key, fe.Args...)
		}
		for _, appID := range g.AppsToManage {
			if !doc.ManagedApps.Has(appID) {
				c.Add(FieldAppsToManage, messages.UnknownManagedApp, id, appID)
			}
		}
		all = append(all, c.Errors()...)
	}

	for _, id := range doc.ManagedApps.IDs() {
		a, _ := doc.ManagedApps.Get(id)
		c := NewCollector().WithContext("managedApps." + id)
		for _, fe := range ValidateApp(AppInput{OriginalID: id, ID: id}, nil) {
			c.Add(fe.Field, fe.Key, fe.Args...)
		}
		c.Check(FieldStartAction, ValidateAction(string(a.GameStartAction)))
		c.Check(FieldEndAction, ValidateAction(string(a.GameEndAction)))
		c.Check(FieldTermination, ValidateTerminationMethod(string(a.TerminationMethod)))
		all = append(all, c.Errors()...)
	}

	return all
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
