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
)

var unsetCmd = &cobra.Command{
	Use:   "unset <path...>",
	Short: "Remove a configuration value",
	Long: `Removes the key at the given path. Removing a whole game or managed app
also drops it from the order-list, and removing a managed app drops it from
every game's appsToManage.

Examples:
  fgd unset integrations vtubeStudio
  fgd unset games apex comment
  fgd unset managedApps autoHotkey`,
	Args: cobra.MinimumNArgs(1),
	Run:  runUnset,
}

func init() {
	rootCmd.AddCommand(unsetCmd)
}

func runUnset(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		return executeUnset(cmd.OutOrStdout(), ws, args)
	})
}

func executeUnset(w io.Writer, ws *workspace, args []string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	path := strings.Join(args, ".")
	if err := ws.session.DeletePath(path); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %s\n", path)
	return nil
}
