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

// Package messages defines the symbolic message keys used to report
// validation and status outcomes. Display text is resolved by a Catalog
// supplied by the caller; this package never hard-codes localized strings.
package messages

import (
	"fmt"
	"strings"
)

// Key is a symbolic message identifier resolved by a localization catalog.
type Key string

// Validation keys
const (
	GameIDCannotBeEmpty    Key = "gameIdCannotBeEmpty"
	GameIDAlreadyExists    Key = "gameIdAlreadyExists"
	GameIDInvalid          Key = "gameIdInvalid"
	AppIDCannotBeEmpty     Key = "appIdCannotBeEmpty"
	AppIDAlreadyExists     Key = "appIdAlreadyExists"
	AppIDInvalid           Key = "appIdInvalid"
	InvalidPlatform        Key = "invalidPlatform"
	SteamAppIDRequired     Key = "steamAppIdRequired"
	EpicGameIDRequired     Key = "epicGameIdRequired"
	RiotGameIDRequired     Key = "riotGameIdRequired"
	ExecutablePathRequired Key = "executablePathRequired"
	InvalidAction          Key = "invalidAction"
	InvalidTermination     Key = "invalidTerminationMethod"
	UnknownManagedApp      Key = "unknownManagedApp"
)

// Status keys
const (
	ConfigLoadFailed    Key = "configLoadFailed"
	ConfigCreated       Key = "configCreated"
	ConfigSaved         Key = "configSaved"
	ConfigSaveFailed    Key = "configSaveFailed"
	GameSaved           Key = "gameSaved"
	GameAdded           Key = "gameAdded"
	GameRenamed         Key = "gameRenamed"
	GameDeleted         Key = "gameDeleted"
	GameNotFound        Key = "gameNotFound"
	NoGameSelected      Key = "noGameSelected"
	AppSaved            Key = "appSaved"
	AppAdded            Key = "appAdded"
	AppRenamed          Key = "appRenamed"
	AppDeleted          Key = "appDeleted"
	AppNotFound         Key = "appNotFound"
	NoAppSelected       Key = "noAppSelected"
	GlobalSettingsSaved Key = "globalSettingsSaved"
	ReservedPath        Key = "reservedPath"
	InternalError       Key = "internalError"
)

// Message is a key plus positional format arguments. It satisfies error so
// it can travel through ordinary error returns.
type Message struct {
	Key  Key
	Args []interface{}
}

// New creates a message for key with optional positional arguments.
func New(key Key, args ...interface{}) *Message {
	return &Message{Key: key, Args: args}
}

// Error renders the message without a catalog.
func (m *Message) Error() string {
	if len(m.Args) == 0 {
		return string(m.Key)
	}
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = fmt.Sprint(a)
	}
	return string(m.Key) + ": " + strings.Join(parts, ", ")
}

// Is reports whether target is a message with the same key.
func (m *Message) Is(target error) bool {
	t, ok := target.(*Message)
	return ok && t.Key == m.Key
}

// Catalog resolves keys to format strings using positional placeholders
// {0}, {1}, ...
type Catalog interface {
	Lookup(key Key) (string, bool)
}

// MapCatalog is a Catalog backed by a plain map.
type MapCatalog map[Key]string

// Lookup implements Catalog.
func (c MapCatalog) Lookup(key Key) (string, bool) {
	s, ok := c[key]
	return s, ok
}

// Format resolves m through cat. Unknown keys fall back to Message.Error.
func Format(cat Catalog, m *Message) string {
	if m == nil {
		return ""
	}
	if cat == nil {
		return m.Error()
	}
	tmpl, ok := cat.Lookup(m.Key)
	if !ok {
		return m.Error()
	}
	for i, a := range m.Args {
		tmpl = strings.ReplaceAll(tmpl, fmt.Sprintf("{%d}", i), fmt.Sprint(a))
	}
	return tmpl
}
