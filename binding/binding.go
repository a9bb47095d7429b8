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

package binding

import (
	"fmt"

	"github.com/focus-game-deck/fgd/logger"
	"github.com/focus-game-deck/fgd/messages"
	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/validation"
)

// Result is the outcome of a save. Errors lists every invalid field in
// declaration order; Message is the status or blocking message to show.
type Result struct {
	Saved   bool
	ID      string
	Errors  validation.Errors
	Message *messages.Message
}

// Err returns nil for a successful save, otherwise the blocking message.
func (r Result) Err() error {
	if r.Saved {
		return nil
	}
	if r.Message == nil {
		return messages.New(messages.InternalError, "save failed")
	}
	return r.Message
}

func rejected(errs validation.Errors) Result {
	return Result{Errors: errs, Message: errs.First().Message()}
}

func failed(err error) Result {
	if msg, ok := err.(*messages.Message); ok {
		return Result{Message: msg}
	}
	return Result{Message: messages.New(messages.InternalError, err.Error())}
}

// recoverInto turns a panic during a save into internalError. Saves edit a
// clone, so the live document is still intact when this runs.
func recoverInto(s *state.Session, op string, res *Result) {
	if r := recover(); r != nil {
		s.Logger().Error("Recovered from panic",
			logger.F("op", op),
			logger.F("panic", fmt.Sprint(r)))
		*res = Result{Message: messages.New(messages.InternalError, fmt.Sprint(r))}
	}
}

// dedupeKnown drops blank, duplicate and unknown ids, keeping first occurrence.
func dedupeKnown(ids []string, known func(string) bool) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if seen[id] || !known(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
