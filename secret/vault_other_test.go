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

//go:build !windows

package secret

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFileVaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	v, err := NewKeyFileVault(dir, "machine-a/1000")
	require.NoError(t, err)

	sealed, err := v.Seal([]byte("hunter2"))
	require.NoError(t, err)

	opened, err := v.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(opened))

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestKeyFileVaultReusesSalt(t *testing.T) {
	dir := t.TempDir()
	v1, err := NewKeyFileVault(dir, "machine-a/1000")
	require.NoError(t, err)
	sealed, err := v1.Seal([]byte("token"))
	require.NoError(t, err)

	v2, err := NewKeyFileVault(dir, "machine-a/1000")
	require.NoError(t, err)
	opened, err := v2.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", string(opened))
}

func TestKeyFileVaultIsNotPortable(t *testing.T) {
	dir := t.TempDir()
	v, err := NewKeyFileVault(dir, "machine-a/1000")
	require.NoError(t, err)
	sealed, err := v.Seal([]byte("token"))
	require.NoError(t, err)

	otherUser, err := NewKeyFileVault(dir, "machine-a/1001")
	require.NoError(t, err)
	_, err = otherUser.Open(sealed)
	assert.Error(t, err)

	otherMachine, err := NewKeyFileVault(t.TempDir(), "machine-a/1000")
	require.NoError(t, err)
	_, err = otherMachine.Open(sealed)
	assert.Error(t, err)
}

func TestKeyFileVaultWithCodec(t *testing.T) {
	v, err := NewKeyFileVault(t.TempDir(), LocalIdentity())
	require.NoError(t, err)
	c := New(v, nil)

	enc := c.Encrypt("obs-password")
	assert.Equal(t, "obs-password", c.Decrypt(enc))
	assert.Equal(t, "legacy plain", c.Decrypt("legacy plain"))
}

func TestCorruptKeyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("short"), 0600))
	_, err := NewKeyFileVault(dir, "x")
	assert.Error(t, err)
}
