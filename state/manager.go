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

// Package state owns the configuration document for an editing session:
// loading and persisting config.json, ordered-collection repair, entity
// rename/delete with reference cascades, dotted-path access, diffs, save
// history and external change watching.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/focus-game-deck/fgd/types"
)

// backupTimeFormat is appended to the config path for pre-save backups.
const backupTimeFormat = "20060102-150405"

// ReadDocument loads and parses the document at path.
func ReadDocument(path string) (*types.Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, data, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}
	return doc, data, nil
}

// ParseDocument unmarshals config.json bytes. Syntax errors carry the line
// and column of the offending byte.
func ParseDocument(data []byte) (*types.Document, error) {
	var doc types.Document
	if err := UnmarshalJSON(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalDocument renders the document as indented JSON with a trailing newline.
func MarshalDocument(doc *types.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteDocument writes data to path, keeping a timestamped backup of the
// previous file. The write goes through a temp file and a rename so a crash
// never leaves a truncated config behind.
func WriteDocument(path string, data []byte) (backupPath string, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backupPath = fmt.Sprintf("%s.backup.%s", path, time.Now().Format(backupTimeFormat))
		if err := copyFile(path, backupPath); err != nil {
			return "", fmt.Errorf("failed to create backup: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	return backupPath, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0600)
}

// getLineCol calculates the line and column number for a byte offset in JSON data
func getLineCol(data []byte, offset int64) (line, col int) {
	line = 1
	col = 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}

// UnmarshalJSON unmarshals JSON data with enhanced error reporting
func UnmarshalJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := getLineCol(data, syntaxErr.Offset)
			return fmt.Errorf("JSON syntax error at line %d, column %d: %w", line, col, err)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			line, col := getLineCol(data, typeErr.Offset)
			return fmt.Errorf("JSON type error at line %d, column %d: %w", line, col, err)
		}
		return err
	}
	return nil
}
