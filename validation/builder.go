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

package validation

import (
	"errors"
	"strings"

	"github.com/focus-game-deck/fgd/messages"
)

// FieldError attributes a message key to a form field.
type FieldError struct {
	Field string
	Key   messages.Key
	Args  []interface{}
}

// Message returns the field error as a displayable message.
func (e FieldError) Message() *messages.Message {
	return messages.New(e.Key, e.Args...)
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message().Error()
}

// Errors is an ordered list of field errors. Order follows field
// declaration order so the first entry is the blocking message.
type Errors []FieldError

// First returns the blocking error, or nil.
func (e Errors) First() *FieldError {
	if len(e) == 0 {
		return nil
	}
	return &e[0]
}

// Fields returns every invalid field, in order, without duplicates.
func (e Errors) Fields() []string {
	seen := make(map[string]bool, len(e))
	var out []string
	for _, fe := range e {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			out = append(out, fe.Field)
		}
	}
	return out
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil for an empty list, otherwise the list as an error.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Collector accumulates field errors in the order checks are made.
type Collector struct {
	errs Errors
	ctx  string // Optional field prefix (e.g., "games.apex")
}

// NewCollector creates a new error collector.
func NewCollector() *Collector {
	return &Collector{}
}

// WithContext sets a prefix joined to every subsequent field name with '.'.
func (c *Collector) WithContext(ctx string) *Collector {
	c.ctx = ctx
	return c
}

func (c *Collector) field(name string) string {
	if c.ctx == "" {
		return name
	}
	return c.ctx + "." + name
}

// Add records a field error.
func (c *Collector) Add(field string, key messages.Key, args ...interface{}) {
	c.errs = append(c.errs, FieldError{Field: c.field(field), Key: key, Args: args})
}

// Check records err against field. Message errors keep their key;
// other errors are recorded as internalError.
func (c *Collector) Check(field string, err error) {
	if err == nil {
		return
	}
	var msg *messages.Message
	if errors.As(err, &msg) {
		c.Add(field, msg.Key, msg.Args...)
		return
	}
	c.Add(field, messages.InternalError, err.Error())
}

// Errors returns the collected errors.
func (c *Collector) Errors() Errors {
	return c.errs
}
