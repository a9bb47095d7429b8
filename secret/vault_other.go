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
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	saltSize    = 32
	keyFileName = "secret.key"
)

var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// KeyFileVault is the non-Windows stand-in for DPAPI. The key is derived
// from a per-user random salt file (mode 0600) and the machine/user identity,
// so a blob copied to another machine or account does not open.
type KeyFileVault struct {
	key []byte
}

// DefaultVault returns a key-file vault rooted in the user config directory.
func DefaultVault() (Vault, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return NewKeyFileVault(filepath.Join(dir, "FocusGameDeck"), LocalIdentity())
}

// LocalIdentity returns the machine id and user id of the current process.
func LocalIdentity() string {
	machine := ""
	for _, p := range machineIDPaths {
		if data, err := os.ReadFile(p); err == nil {
			machine = strings.TrimSpace(string(data))
			break
		}
	}
	if machine == "" {
		machine, _ = os.Hostname()
	}
	return machine + "/" + strconv.Itoa(os.Getuid())
}

// NewKeyFileVault loads or creates the salt file in dir and binds the key to identity.
func NewKeyFileVault(dir, identity string) (*KeyFileVault, error) {
	salt, err := loadOrCreateSalt(filepath.Join(dir, keyFileName))
	if err != nil {
		return nil, err
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, salt, []byte(identity), []byte("fgd secret v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return &KeyFileVault{key: key}, nil
}

func loadOrCreateSalt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != saltSize {
			return nil, fmt.Errorf("key file %s is corrupt", path)
		}
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if err := os.WriteFile(path, salt, 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	return salt, nil
}

// Seal implements Vault. The output is nonce || ciphertext.
func (v *KeyFileVault) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements Vault.
func (v *KeyFileVault) Open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("sealed value too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
