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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/focus-game-deck/fgd/binding"
)

type flagKind int

const (
	stringFlag flagKind = iota
	boolFlag
	listFlag
)

// formFlag maps a command-line flag to a form field.
type formFlag struct {
	name  string
	key   string
	kind  flagKind
	usage string
}

func addFormFlags(fs *pflag.FlagSet, flags []formFlag) {
	for _, f := range flags {
		switch f.kind {
		case boolFlag:
			fs.Bool(f.name, false, f.usage)
		case listFlag:
			fs.StringSlice(f.name, nil, f.usage)
		default:
			fs.String(f.name, "", f.usage)
		}
	}
}

// formFromFlags builds a form holding only the flags set on the command
// line, so untouched fields keep their stored values.
func formFromFlags(fs *pflag.FlagSet, flags []formFlag) (*binding.Form, error) {
	form := binding.NewForm()
	for _, f := range flags {
		if !fs.Changed(f.name) {
			continue
		}
		switch f.kind {
		case boolFlag:
			v, err := fs.GetBool(f.name)
			if err != nil {
				return nil, err
			}
			form.SetBool(f.key, v)
		case listFlag:
			v, err := fs.GetStringSlice(f.name)
			if err != nil {
				return nil, err
			}
			form.SetList(f.key, v)
		default:
			v, err := fs.GetString(f.name)
			if err != nil {
				return nil, err
			}
			form.Set(f.key, v)
		}
	}
	return form, nil
}

// report prints the outcome of a save and returns its error.
func report(w io.Writer, res binding.Result) error {
	if res.Saved {
		fmt.Fprintln(w, say(res.Message))
		return nil
	}
	for _, fe := range res.Errors {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, say(fe.Message()))
	}
	return res.Err()
}
