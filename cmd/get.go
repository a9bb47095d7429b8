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
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var getCmd = &cobra.Command{
	Use:   "get [path...]",
	Short: "Get a configuration value",
	Long: `Gets a value from the configuration using space-separated path components.

If no path is provided, lists the top-level sections.

Examples:
  fgd get                                   # List sections
  fgd get games apex platform
  fgd get integrations obs websocket port
  fgd get managedApps _order`,
	Run: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		return executeGet(cmd.OutOrStdout(), ws, args)
	})
}

// parseGetPath joins the path components with '.'.
// Returns empty string if no arguments provided (to list sections).
func parseGetPath(args []string) string {
	return strings.Join(args, ".")
}

func executeGet(w io.Writer, ws *workspace, args []string) error {
	path := parseGetPath(args)
	if path == "" {
		return listSections(w, ws)
	}

	// _order is addressable for reading even though edits go through move
	if strings.HasSuffix(path, "._order") {
		result, err := ws.session.GetPath(strings.TrimSuffix(path, "._order"))
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(pretty.Pretty([]byte(result.Get("_order").Raw))))
		return nil
	}

	result, err := ws.session.GetPath(path)
	if err != nil {
		return err
	}
	if result.IsObject() || result.IsArray() {
		fmt.Fprint(w, string(pretty.Pretty([]byte(result.Raw))))
		return nil
	}
	fmt.Fprintln(w, result.Raw)
	return nil
}

func listSections(w io.Writer, ws *workspace) error {
	result, err := ws.session.GetPath("")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available configuration sections:")
	result.ForEach(func(key, _ gjson.Result) bool {
		fmt.Fprintf(w, "  %s\n", key.String())
		return true
	})
	return nil
}
