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

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageError(t *testing.T) {
	assert.Equal(t, "noGameSelected", New(NoGameSelected).Error())
	assert.Equal(t, "gameRenamed: apex, apex-legends", New(GameRenamed, "apex", "apex-legends").Error())
}

func TestMessageIs(t *testing.T) {
	err := fmt.Errorf("save: %w", New(ConfigSaveFailed, "disk full"))

	assert.True(t, errors.Is(err, New(ConfigSaveFailed)))
	assert.False(t, errors.Is(err, New(ConfigSaved)))
}

func TestFormat(t *testing.T) {
	cat := MapCatalog{GameRenamed: "{1} was {0}"}

	tests := []struct {
		name string
		cat  Catalog
		msg  *Message
		want string
	}{
		{"nil message", cat, nil, ""},
		{"nil catalog", nil, New(GameDeleted, "apex"), "gameDeleted: apex"},
		{"positional args", cat, New(GameRenamed, "a", "b"), "b was a"},
		{"missing key falls back", cat, New(GameDeleted, "apex"), "gameDeleted: apex"},
		{"english", English, New(GameAdded, "apex"), "Game 'apex' added"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cat, tt.msg))
		})
	}
}

func TestEnglishCoversEveryKey(t *testing.T) {
	keys := []Key{
		GameIDCannotBeEmpty, GameIDAlreadyExists, GameIDInvalid,
		AppIDCannotBeEmpty, AppIDAlreadyExists, AppIDInvalid,
		InvalidPlatform, SteamAppIDRequired, EpicGameIDRequired, RiotGameIDRequired,
		ExecutablePathRequired, InvalidAction, InvalidTermination, UnknownManagedApp,
		ConfigLoadFailed, ConfigCreated, ConfigSaved, ConfigSaveFailed,
		GameSaved, GameAdded, GameRenamed, GameDeleted, GameNotFound, NoGameSelected,
		AppSaved, AppAdded, AppRenamed, AppDeleted, AppNotFound, NoAppSelected,
		GlobalSettingsSaved, ReservedPath, InternalError,
	}
	for _, k := range keys {
		_, ok := English.Lookup(k)
		assert.True(t, ok, "missing English text for %s", k)
	}
	assert.Len(t, English, len(keys))
}
