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
	"io"

	"github.com/hashicorp/go-hclog"
)

// ConsoleBackend writes log entries through an hclog logger, usually to stderr.
type ConsoleBackend struct {
	hl hclog.Logger
}

// NewConsoleBackend creates a console backend writing to w.
// Level filtering happens in the Logger; the hclog logger accepts everything.
func NewConsoleBackend(w io.Writer, format string) *ConsoleBackend {
	return &ConsoleBackend{
		hl: hclog.New(&hclog.LoggerOptions{
			Name:       "fgd",
			Output:     w,
			Level:      hclog.Trace,
			JSONFormat: format == "json",
		}),
	}
}

// Write writes a log entry to the console
func (b *ConsoleBackend) Write(entry *Entry) error {
	hl := b.hl
	if entry.Component != "" {
		hl = hl.Named(entry.Component)
	}

	args := make([]interface{}, 0, len(entry.Fields)*2)
	for _, k := range entry.sortedKeys() {
		args = append(args, k, entry.Fields[k])
	}

	switch entry.Level {
	case "debug":
		hl.Debug(entry.Message, args...)
	case "warn":
		hl.Warn(entry.Message, args...)
	case "error":
		hl.Error(entry.Message, args...)
	default:
		hl.Info(entry.Message, args...)
	}
	return nil
}

// Close is a no-op; the underlying writer belongs to the caller
func (b *ConsoleBackend) Close() error {
	return nil
}
