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

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-game-deck/fgd/config"
	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/secret"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
)

// xorVault is a reversible test vault.
type xorVault struct{}

var xorMagic = []byte("XOR1")

func (xorVault) Seal(p []byte) ([]byte, error) {
	out := append([]byte(nil), xorMagic...)
	for _, b := range p {
		out = append(out, b^0x5a)
	}
	return out, nil
}

func (xorVault) Open(s []byte) ([]byte, error) {
	if !bytes.HasPrefix(s, xorMagic) {
		return nil, errors.New("not sealed")
	}
	out := make([]byte, 0, len(s)-len(xorMagic))
	for _, b := range s[len(xorMagic):] {
		out = append(out, b^0x5a)
	}
	return out, nil
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	dir := t.TempDir()
	return &config.Settings{
		ConfigPath: filepath.Join(dir, "config.json"),
		Log:        config.LogSettings{Level: "info", Format: "text"},
		History:    config.HistorySettings{Enabled: true, Path: filepath.Join(dir, "history.db")},
	}
}

// newTestWorkspace opens a workspace on a fresh default config.
func newTestWorkspace(t *testing.T) *workspace {
	t.Helper()
	return openTestWorkspace(t, testSettings(t))
}

func openTestWorkspace(t *testing.T, s *config.Settings) *workspace {
	t.Helper()
	ws := newWorkspace(s, logger.Nop(), secret.New(xorVault{}, nil))
	t.Cleanup(func() { ws.Close() })
	return ws
}

// onDisk reads the persisted document back.
func onDisk(t *testing.T, ws *workspace) *types.Document {
	t.Helper()
	doc, _, err := state.ReadDocument(ws.session.Path())
	require.NoError(t, err)
	doc.InitializeOrders()
	return doc
}

func fileContent(t *testing.T, ws *workspace) string {
	t.Helper()
	data, err := os.ReadFile(ws.session.Path())
	require.NoError(t, err)
	return string(data)
}

func TestRootCmdExists(t *testing.T) {
	assert.NotNil(t, rootCmd, "root command should exist")
	assert.Equal(t, "fgd", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Focus Game Deck")
}

func TestRootCmdHasCommands(t *testing.T) {
	expectedCommands := []string{
		"show", "get", "set", "unset", "game", "app", "integrations",
		"secret", "validate", "diff", "history", "watch",
	}

	commandNames := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		commandNames = append(commandNames, c.Name())
	}

	for _, expected := range expectedCommands {
		assert.Contains(t, commandNames, expected, "command %s should be registered", expected)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format", "log-file", "history", "history-path"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "today")
	assert.Equal(t, "1.2.3", rootCmd.Version)
	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "today", BuildTime)
}

func TestNewWorkspaceCreatesDefault(t *testing.T) {
	ws := newTestWorkspace(t)

	assert.Nil(t, ws.loadIssue)
	assert.True(t, ws.session.Created())
	assert.FileExists(t, ws.session.Path())
	require.NotNil(t, ws.history)

	revs, err := ws.history.List(ws.session.Path(), 0)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "create", revs[0].Reason)
}

func TestWorkspaceWithoutHistory(t *testing.T) {
	s := testSettings(t)
	s.History.Enabled = false
	ws := openTestWorkspace(t, s)

	assert.Nil(t, ws.history)
	var out bytes.Buffer
	assert.Error(t, executeHistoryList(&out, ws, 0))
}

func TestWritableRefusesAfterLoadFailure(t *testing.T) {
	s := testSettings(t)
	require.NoError(t, os.WriteFile(s.ConfigPath, []byte("{broken"), 0600))
	ws := openTestWorkspace(t, s)

	require.NotNil(t, ws.loadIssue)

	var out bytes.Buffer
	err := executeSet(&out, ws, []string{"language", "ja"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fix or remove the file")
	assert.Equal(t, "{broken", fileContent(t, ws))
}

func TestSavePrunesHistory(t *testing.T) {
	s := testSettings(t)
	s.History.Keep = 2
	ws := openTestWorkspace(t, s)

	var out bytes.Buffer
	for _, lang := range []string{"ja", "en", "de"} {
		require.NoError(t, executeSet(&out, ws, []string{"language", lang}, false))
	}

	revs, err := ws.history.List(ws.session.Path(), 0)
	require.NoError(t, err)
	assert.Len(t, revs, 2)
}
