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
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or restore saved revisions",
	Long: `Every save records a revision of the configuration. Revisions can be
listed, compared with 'fgd diff --revision', and restored.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List revisions, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeHistoryList(cmd.OutOrStdout(), ws, historyLimit)
		})
	},
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore <revision>",
	Short: "Restore a revision",
	Long: `Replaces the configuration with a saved revision. The current file is
backed up first and the restore is recorded as a new revision.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeHistoryRestore(cmd.OutOrStdout(), ws, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyRestoreCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of revisions to show (0 for all)")
}

func executeHistoryList(w io.Writer, ws *workspace, limit int) error {
	if ws.history == nil {
		return fmt.Errorf("history is disabled")
	}
	revs, err := ws.history.List(ws.session.Path(), limit)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		fmt.Fprintln(w, "No revisions recorded")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-8s %s\n", "ID", "SAVED", "REASON", "SIZE", "CHECKSUM")
	for _, r := range revs {
		sum := r.Checksum
		if len(sum) > 12 {
			sum = sum[:12]
		}
		fmt.Fprintf(w, "%-6d %-20s %-8s %-8d %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Reason, r.Size, sum)
	}
	return nil
}

func executeHistoryRestore(w io.Writer, ws *workspace, arg string) error {
	if ws.history == nil {
		return fmt.Errorf("history is disabled")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid revision %q", arg)
	}
	rev, err := ws.history.Get(id)
	if err != nil {
		return err
	}
	if rev.Path != ws.session.Path() {
		return fmt.Errorf("revision %d belongs to %s", id, rev.Path)
	}
	if err := ws.session.Restore(rev.Data); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Restored revision %d\n", id)
	return nil
}
