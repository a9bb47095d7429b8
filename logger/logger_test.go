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

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"verbose", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	backend := NewBufferBackend(&buf, "text")
	log := New(Config{Level: "warn", Component: "test"}, []Backend{backend})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown", F("id", "apex"))
	log.Error("shown too", Err(errors.New("boom")))

	entries := backend.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "apex", entries[0].Fields["id"])
	assert.Equal(t, "boom", entries[1].Fields["error"])
	assert.Contains(t, buf.String(), "[test] shown id=apex")
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	backend := NewBufferBackend(&buf, "json")
	log := New(Config{Level: "debug"}, []Backend{backend})

	child := log.With(F("component", "session"), F("path", "config.json"))
	child.Debug("loaded", F("games", 3))

	entries := backend.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "session", entries[0].Component)
	assert.Equal(t, "config.json", entries[0].Fields["path"])
	_, hasComponent := entries[0].Fields["component"]
	assert.False(t, hasComponent)

	var decoded Entry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded))
	assert.Equal(t, "loaded", decoded.Message)
}

func TestEntryToTextSortsFields(t *testing.T) {
	e := NewEntry("info", "", "msg", map[string]interface{}{"b": 2, "a": "x"})
	text := e.ToText()
	assert.True(t, strings.HasSuffix(text, "[info] msg a=x b=2"), text)
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fgd.log")
	backend, err := NewFileBackend(path, "text", FileOptions{})
	require.NoError(t, err)

	log := New(Config{Level: "info", Component: "cli"}, []Backend{backend})
	log.Info("hello", F("k", "v"))
	require.NoError(t, backend.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[cli] hello k=v")
}

func TestConsoleBackend(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug"}, []Backend{NewConsoleBackend(&buf, "text")})

	log.With(F("component", "secret")).Debug("decode fallback", F("reason", "not base64"))

	out := buf.String()
	assert.Contains(t, out, "decode fallback")
	assert.Contains(t, out, "fgd.secret")
	assert.Contains(t, out, "reason=")
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info"}, []Backend{NewBufferBackend(&buf, "text")})
	t.Cleanup(func() { _ = Close() })

	Info("global")
	Debug("filtered")
	assert.Contains(t, buf.String(), "global")
	assert.NotContains(t, buf.String(), "filtered")
}
