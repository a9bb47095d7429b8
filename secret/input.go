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

// Input is the state of a secret entry field at save time.
//
// A blank Value is ambiguous on its own: with Saved set it means "leave the
// stored secret alone", without it it means "store nothing".
type Input struct {
	Value string
	Saved bool // the field is blank but a value is already persisted
}

// Apply returns the value to persist for in given the currently stored value.
func (c *Codec) Apply(stored string, in Input) string {
	switch {
	case in.Value != "":
		return c.Encrypt(in.Value)
	case in.Saved:
		return stored
	default:
		return ""
	}
}
