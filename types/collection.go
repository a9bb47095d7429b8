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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// OrderKey is the metadata key holding a collection's order-list.
const OrderKey = "_order"

// IsMetadataKey reports whether key is collection metadata rather than an entry id.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// Collection is an id-keyed map with an explicit order-list.
// The order-list is kept a permutation of the entry ids by every mutating
// method; documents read from disk are brought back in line by InitializeOrder.
type Collection[T any] struct {
	entries map[string]*T
	order   []string

	// key order as it appeared in the source document, used when
	// InitializeOrder has to append ids that were missing from _order
	fileOrder []string
}

func (c *Collection[T]) init() {
	if c.entries == nil {
		c.entries = make(map[string]*T)
	}
}

// Len returns the number of entries.
func (c *Collection[T]) Len() int {
	return len(c.entries)
}

// Has reports whether id is present.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Get returns the entry for id.
func (c *Collection[T]) Get(id string) (*T, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// IDs returns a copy of the order-list.
func (c *Collection[T]) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Put stores entry under id. New ids are appended to the order-list;
// existing ids keep their position.
func (c *Collection[T]) Put(id string, entry *T) {
	c.init()
	if _, exists := c.entries[id]; !exists {
		c.order = append(c.order, id)
	}
	c.entries[id] = entry
}

// Delete removes id from both the map and the order-list.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	c.order = removeString(c.order, id)
	return true
}

// CanRename checks the preconditions of Rename without mutating anything.
func (c *Collection[T]) CanRename(oldID, newID string) error {
	if newID == "" {
		return fmt.Errorf("new id cannot be empty")
	}
	if _, ok := c.entries[oldID]; !ok {
		return fmt.Errorf("id %q not found", oldID)
	}
	if oldID != newID {
		if _, taken := c.entries[newID]; taken {
			return fmt.Errorf("id %q already exists", newID)
		}
	}
	return nil
}

// Rename moves the entry at oldID to newID, keeping its order position.
// All preconditions are checked before any mutation.
func (c *Collection[T]) Rename(oldID, newID string) error {
	if err := c.CanRename(oldID, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}

	entry := c.entries[oldID]
	c.entries[newID] = entry
	delete(c.entries, oldID)

	replaced := false
	for i, id := range c.order {
		if id == oldID {
			c.order[i] = newID
			replaced = true
			break
		}
	}
	if !replaced {
		c.order = append(c.order, newID)
	}
	return nil
}

// Move places id at index in the order-list. Out-of-range indexes clamp.
func (c *Collection[T]) Move(id string, index int) error {
	if _, ok := c.entries[id]; !ok {
		return fmt.Errorf("id %q not found", id)
	}
	order := removeString(c.order, id)
	if index < 0 {
		index = 0
	}
	if index > len(order) {
		index = len(order)
	}
	order = append(order, "")
	copy(order[index+1:], order[index:])
	order[index] = id
	c.order = order
	return nil
}

// SetOrder replaces the raw order-list without repairing it.
// Callers normally follow it with InitializeOrder.
func (c *Collection[T]) SetOrder(order []string) {
	c.order = append([]string(nil), order...)
}

// InitializeOrder repairs the order-list so it is a permutation of exactly the
// entry ids: stale and duplicate ids are dropped, unordered ids are appended
// in source-document order (then sorted for ids added in memory).
func (c *Collection[T]) InitializeOrder() (dropped, appended []string) {
	seen := make(map[string]bool, len(c.entries))
	repaired := make([]string, 0, len(c.entries))

	for _, id := range c.order {
		if _, ok := c.entries[id]; !ok || seen[id] {
			dropped = append(dropped, id)
			continue
		}
		seen[id] = true
		repaired = append(repaired, id)
	}

	for _, id := range c.fileOrder {
		if _, ok := c.entries[id]; ok && !seen[id] {
			seen[id] = true
			appended = append(appended, id)
		}
	}

	var rest []string
	for id := range c.entries {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	appended = append(appended, rest...)

	c.order = append(repaired, appended...)
	return dropped, appended
}

// MarshalJSON writes _order first, then entries in order.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	order := c.order
	if order == nil {
		order = []string{}
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + OrderKey + `":`)
	buf.Write(orderJSON)

	written := make(map[string]bool, len(c.entries))
	write := func(id string) error {
		entry, ok := c.entries[id]
		if !ok || written[id] {
			return nil
		}
		written[id] = true
		key, err := json.Marshal(id)
		if err != nil {
			return err
		}
		val, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", id, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	for _, id := range order {
		if err := write(id); err != nil {
			return nil, err
		}
	}

	// Entries missing from the order-list are still persisted
	var rest []string
	for id := range c.entries {
		if !written[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		if err := write(id); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads entries and the raw _order list. Other metadata keys are ignored.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Collection[T]{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("collection must be a JSON object")
	}

	fresh := Collection[T]{entries: make(map[string]*T)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		if key == OrderKey {
			var order []string
			if err := json.Unmarshal(raw, &order); err != nil {
				return fmt.Errorf("invalid %s: %w", OrderKey, err)
			}
			fresh.order = order
			continue
		}
		if IsMetadataKey(key) {
			continue
		}

		entry := new(T)
		if err := json.Unmarshal(raw, entry); err != nil {
			return fmt.Errorf("invalid entry %s: %w", key, err)
		}
		if _, dup := fresh.entries[key]; !dup {
			fresh.fileOrder = append(fresh.fileOrder, key)
		}
		fresh.entries[key] = entry
	}

	*c = fresh
	return nil
}

func removeString(list []string, s string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
