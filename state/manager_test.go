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
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-game-deck/fgd/types"
)

// tempConfigPath returns a config.json path inside a fresh temp directory
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config", "config.json")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWriteDocumentCreatesDirectoriesAndBackup(t *testing.T) {
	path := tempConfigPath(t)

	backup, err := WriteDocument(path, []byte(`{"language":"en"}`))
	require.NoError(t, err)
	assert.Empty(t, backup, "first write has nothing to back up")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	backup, err = WriteDocument(path, []byte(`{"language":"ja"}`))
	require.NoError(t, err)
	require.NotEmpty(t, backup)
	assert.True(t, strings.HasPrefix(filepath.Base(backup), "config.json.backup."))

	old, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, `{"language":"en"}`, string(old))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"language":"ja"}`, string(current))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not be left behind")
}

func TestParseDocumentSyntaxErrorPosition(t *testing.T) {
	_, err := ParseDocument([]byte("{\n  \"games\": {,\n}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDocumentTypeError(t *testing.T) {
	_, err := ParseDocument([]byte(`{"games": {"apex": {"name": 5}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apex")
}

func TestReadDocumentMissing(t *testing.T) {
	_, _, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMarshalDocumentOrderFirst(t *testing.T) {
	doc := &types.Document{}
	doc.Games.Put("b", &types.GameEntry{Platform: types.PlatformEA})
	doc.Games.Put("a", &types.GameEntry{Platform: types.PlatformEA})

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasSuffix(s, "\n"))
	orderAt := strings.Index(s, `"_order"`)
	bAt := strings.Index(s, `"b": {`)
	aAt := strings.Index(s, `"a": {`)
	require.True(t, orderAt >= 0 && bAt >= 0 && aAt >= 0, s)
	assert.Less(t, orderAt, bAt)
	assert.Less(t, bAt, aAt)
}

func TestGetLineCol(t *testing.T) {
	data := []byte("ab\ncd\nef")

	tests := []struct {
		offset   int64
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := getLineCol(data, tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestDefaultDocumentIsConsistent(t *testing.T) {
	doc := DefaultDocument()

	assert.Equal(t, []string{"apex", "valorant"}, doc.Games.IDs())
	assert.Equal(t, []string{"noWinKey", "autoHotkey", "wallpaperEngine"}, doc.ManagedApps.IDs())

	for _, id := range doc.Games.IDs() {
		g, _ := doc.Games.Get(id)
		for _, appID := range g.AppsToManage {
			assert.True(t, doc.ManagedApps.Has(appID), "%s references %s", id, appID)
		}
	}
	assert.Equal(t, types.DefaultOBSPort, doc.Integrations.OBS.Websocket.Port)
}
