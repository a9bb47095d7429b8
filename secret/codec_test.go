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

package secret

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-game-deck/fgd/logger"
)

// xorVault is a reversible test vault with an integrity prefix.
type xorVault struct {
	key     byte
	sealErr error
}

var xorMagic = []byte("FGD1")

func (v *xorVault) Seal(p []byte) ([]byte, error) {
	if v.sealErr != nil {
		return nil, v.sealErr
	}
	out := append([]byte(nil), xorMagic...)
	for _, b := range p {
		out = append(out, b^v.key)
	}
	return out, nil
}

func (v *xorVault) Open(s []byte) ([]byte, error) {
	if !bytes.HasPrefix(s, xorMagic) {
		return nil, errors.New("bad magic")
	}
	out := make([]byte, 0, len(s)-len(xorMagic))
	for _, b := range s[len(xorMagic):] {
		out = append(out, b^v.key)
	}
	return out, nil
}

func TestRoundTrip(t *testing.T) {
	c := New(&xorVault{key: 0x5a}, nil)

	for _, s := range []string{"a", "hunter2", "パスワード", "with spaces and symbols !@#$%^&*()"} {
		enc := c.Encrypt(s)
		require.NotEmpty(t, enc)
		assert.NotEqual(t, s, enc)
		assert.Equal(t, s, c.Decrypt(enc))
	}
}

func TestEmptyInput(t *testing.T) {
	c := New(&xorVault{key: 1}, nil)
	assert.Equal(t, "", c.Encrypt(""))
	assert.Equal(t, "", c.Decrypt(""))
	assert.Equal(t, Plaintext, c.Probe("").Kind)
}

func TestEncryptFailsClosed(t *testing.T) {
	var buf bytes.Buffer
	backend := logger.NewBufferBackend(&buf, "text")
	log := logger.New(logger.Config{Level: "debug"}, []logger.Backend{backend})

	c := New(&xorVault{sealErr: errors.New("vault locked")}, log)
	assert.Equal(t, "", c.Encrypt("hunter2"))
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "vault locked")
}

func TestNilCodecFailsClosed(t *testing.T) {
	var c *Codec
	assert.Equal(t, "", c.Encrypt("x"))
	assert.Equal(t, "legacy", c.Decrypt("legacy"))
}

func TestPlaintextFallback(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug"}, []logger.Backend{logger.NewBufferBackend(&buf, "text")})
	c := New(&xorVault{key: 7}, log)

	tests := []struct {
		name  string
		value string
	}{
		{"not base64", "my obs password!"},
		{"valid base64 but not sealed", base64.StdEncoding.EncodeToString([]byte("plain"))},
		{"base64-looking word", "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Probe(tt.value)
			assert.Equal(t, Plaintext, r.Kind)
			assert.Equal(t, tt.value, r.Value)
			assert.Equal(t, tt.value, c.Decrypt(tt.value))
		})
	}
	assert.Contains(t, buf.String(), "[debug]")
}

func TestProbeEncrypted(t *testing.T) {
	c := New(&xorVault{key: 9}, nil)
	r := c.Probe(c.Encrypt("token"))
	assert.Equal(t, Encrypted, r.Kind)
	assert.Equal(t, "token", r.Value)
	assert.Equal(t, "encrypted", r.Kind.String())
}

func TestApplyTriState(t *testing.T) {
	c := New(&xorVault{key: 3}, nil)
	stored := c.Encrypt("old")

	t.Run("saved flag keeps stored secret", func(t *testing.T) {
		assert.Equal(t, stored, c.Apply(stored, Input{Saved: true}))
	})

	t.Run("blank without flag clears", func(t *testing.T) {
		assert.Equal(t, "", c.Apply(stored, Input{}))
	})

	t.Run("new value overwrites", func(t *testing.T) {
		got := c.Apply(stored, Input{Value: "x", Saved: true})
		assert.Equal(t, "x", c.Decrypt(got))
		assert.NotEqual(t, stored, got)
	})
}
