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

// Package secret encrypts sensitive configuration strings (passwords,
// tokens) with a key bound to the current user and machine. Encrypted values
// are opaque base64 strings stored inline in the configuration document.
//
// Decoding is dual-mode: a value that cannot be decrypted is treated as
// legacy plaintext and returned unchanged. Probe makes that distinction
// explicit.
package secret

import (
	"encoding/base64"

	"github.com/focus-game-deck/fgd/logger"
)

// Vault seals and opens bytes with key material scoped to the local user
// and machine. A sealed blob must not open for a different user or machine.
type Vault interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Kind tells whether a stored value was encrypted or plaintext.
type Kind int

const (
	Plaintext Kind = iota
	Encrypted
)

func (k Kind) String() string {
	if k == Encrypted {
		return "encrypted"
	}
	return "plaintext"
}

// Result is the outcome of probing a stored value.
type Result struct {
	Kind  Kind
	Value string // decrypted value, or the input itself for plaintext
}

// Codec encodes secrets through a Vault.
type Codec struct {
	vault Vault
	log   logger.Logger
}

// New creates a codec over vault.
func New(vault Vault, log logger.Logger) *Codec {
	if log == nil {
		log = logger.Nop()
	}
	return &Codec{vault: vault, log: log.With(logger.F("component", "secret"))}
}

// NewDefault creates a codec over the platform vault.
func NewDefault(log logger.Logger) (*Codec, error) {
	v, err := DefaultVault()
	if err != nil {
		return nil, err
	}
	return New(v, log), nil
}

// Encrypt seals plaintext. Empty input yields "". Any failure yields ""
// so plaintext is never persisted by accident.
func (c *Codec) Encrypt(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	if c == nil || c.vault == nil {
		return ""
	}
	sealed, err := c.vault.Seal([]byte(plaintext))
	if err != nil {
		c.log.Warn("Secret encryption failed; storing empty value", logger.Err(err))
		return ""
	}
	return base64.StdEncoding.EncodeToString(sealed)
}

// Probe classifies a stored value and decodes it when possible.
// It never fails: anything that does not decrypt is plaintext.
func (c *Codec) Probe(stored string) Result {
	if stored == "" {
		return Result{Kind: Plaintext}
	}
	if c == nil || c.vault == nil {
		return Result{Kind: Plaintext, Value: stored}
	}

	blob, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		c.log.Debug("Secret is not encoded; treating as plaintext", logger.F("reason", "not base64"))
		return Result{Kind: Plaintext, Value: stored}
	}

	plain, err := c.vault.Open(blob)
	if err != nil {
		c.log.Debug("Secret did not decrypt; treating as plaintext", logger.Err(err))
		return Result{Kind: Plaintext, Value: stored}
	}

	return Result{Kind: Encrypted, Value: string(plain)}
}

// Decrypt returns the plaintext for stored, falling back to stored itself.
func (c *Codec) Decrypt(stored string) string {
	return c.Probe(stored).Value
}
