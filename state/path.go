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

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/types"
)

// ParsePath splits a dotted path and rejects metadata segments such as
// "_order" and query syntax.
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if strings.ContainsAny(path, "*?#@|\\") {
		return nil, fmt.Errorf("invalid path: %s", path)
	}

	parts := strings.Split(path, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid path: %s", path)
		}
		if types.IsMetadataKey(part) {
			return nil, messages.New(messages.ReservedPath, path)
		}
	}
	return parts, nil
}

// GetPath returns the JSON value at a dotted path, e.g.
// "integrations.obs.websocket.port". An empty path returns the whole document.
func (s *Session) GetPath(path string) (gjson.Result, error) {
	if _, err := ParsePath(path); err != nil {
		return gjson.Result{}, err
	}

	data, err := MarshalDocument(s.doc)
	if err != nil {
		return gjson.Result{}, err
	}
	if path == "" {
		return gjson.ParseBytes(data), nil
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("key '%s' not found", path)
	}
	return result, nil
}

// SetPath writes value at a dotted path, creating any missing parent
// objects. The edit is applied to the serialized document and parsed back,
// so a value of the wrong shape is rejected without changing anything.
func (s *Session) SetPath(path string, value interface{}) error {
	return s.editPath(path, func(data []byte) ([]byte, error) {
		return sjson.SetBytes(data, path, value)
	})
}

// SetPathRaw is SetPath for a value that is already JSON.
func (s *Session) SetPathRaw(path, raw string) error {
	if !gjson.Valid(raw) {
		return fmt.Errorf("value is not valid JSON: %s", raw)
	}
	return s.editPath(path, func(data []byte) ([]byte, error) {
		return sjson.SetRawBytes(data, path, []byte(raw))
	})
}

// DeletePath removes the key at a dotted path. Removing a whole game or
// managed app goes through DeleteGame/DeleteApp so references are purged.
func (s *Session) DeletePath(path string) error {
	parts, err := ParsePath(path)
	if err != nil {
		return err
	}
	if len(parts) == 2 {
		switch parts[0] {
		case "games":
			return s.DeleteGame(parts[1])
		case "managedApps":
			return s.DeleteApp(parts[1])
		}
	}

	if _, err := s.GetPath(path); err != nil {
		return err
	}
	return s.editPath(path, func(data []byte) ([]byte, error) {
		return sjson.DeleteBytes(data, path)
	})
}

func (s *Session) editPath(path string, edit func([]byte) ([]byte, error)) (err error) {
	defer s.guard("editPath", &err)

	parts, err := ParsePath(path)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("path cannot be empty")
	}

	data, err := MarshalDocument(s.doc)
	if err != nil {
		return err
	}
	edited, err := edit(data)
	if err != nil {
		return fmt.Errorf("failed to edit %s: %w", path, err)
	}

	doc, err := ParseDocument(edited)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", path, err)
	}

	s.doc = doc
	s.repairOrders()
	s.dropStaleSelection()
	s.MarkModified()
	s.log.Debug("Edited path", logger.F("path", path))
	return nil
}
