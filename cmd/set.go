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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var setRaw bool

var setCmd = &cobra.Command{
	Use:   "set [path...] [value]",
	Short: "Set a configuration value",
	Long: `Sets a value in the configuration using space-separated path components.
Missing parent sections are created. The edited document must still parse,
so a value of the wrong shape is rejected without changing anything.

If no path is provided, lists the top-level sections.

Examples:
  fgd set                                       # List sections
  fgd set language ja
  fgd set integrations obs websocket port 4455
  fgd set games apex steamAppId 1172470
  fgd set --json games apex appsToManage '["noWinKey"]'`,
	Run: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVar(&setRaw, "json", false, "treat the value as raw JSON")
}

func runSet(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		return executeSet(cmd.OutOrStdout(), ws, args, setRaw)
	})
}

// parseSetArgs parses the arguments for the set command.
// Returns empty path if no arguments (to list sections).
// It returns the path and the parsed value (bool, int, or string).
func parseSetArgs(args []string) (string, interface{}, error) {
	if len(args) < 1 {
		return "", nil, nil // Empty path will list available sections
	}

	if len(args) < 2 {
		return "", nil, fmt.Errorf("requires at least 2 arguments (path and value)")
	}

	// Last argument is always the value
	valueStr := args[len(args)-1]

	// Everything before that is the path
	pathParts := args[:len(args)-1]
	path := pathParts[0]
	for i := 1; i < len(pathParts); i++ {
		path += "." + pathParts[i]
	}

	// Parse value type (bool, int, or string)
	var value interface{}
	if valueStr == "true" {
		value = true
	} else if valueStr == "false" {
		value = false
	} else if i, err := strconv.Atoi(valueStr); err == nil {
		value = i
	} else {
		value = valueStr
	}

	return path, value, nil
}

// coerceValue keeps a value textual when the field it replaces is a string,
// so ids such as steamAppId stay strings even when they look numeric.
func coerceValue(existing gjson.Result, raw string, parsed interface{}) interface{} {
	if existing.Exists() && existing.Type == gjson.String {
		return raw
	}
	return parsed
}

func executeSet(w io.Writer, ws *workspace, args []string, raw bool) error {
	path, value, err := parseSetArgs(args)
	if err != nil {
		return err
	}
	if path == "" {
		return listSections(w, ws)
	}
	if err := ws.writable(); err != nil {
		return err
	}

	valueStr := args[len(args)-1]
	if raw {
		err = ws.session.SetPathRaw(path, valueStr)
	} else {
		existing, _ := ws.session.GetPath(path)
		err = ws.session.SetPath(path, coerceValue(existing, valueStr, value))
	}
	if err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Set %s\n", path)
	return nil
}
