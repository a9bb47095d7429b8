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

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/types"
)

var diffRevision int64

var diffCmd = &cobra.Command{
	Use:   "diff [file]",
	Short: "Show differences between configurations",
	Long: `Compares the configuration with another document.

With a file argument, shows what would change if the file replaced the
configuration. With --revision, shows what changed since that revision.

Examples:
  fgd diff other-config.json
  fgd diff --revision 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Int64VarP(&diffRevision, "revision", "r", 0, "history revision to compare against")
}

func runDiff(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		return executeDiff(cmd.OutOrStdout(), ws, args, diffRevision)
	})
}

func executeDiff(w io.Writer, ws *workspace, args []string, revision int64) error {
	var before, after *types.Document
	current := ws.session.Document()

	switch {
	case len(args) == 1 && revision != 0:
		return fmt.Errorf("use either a file or --revision, not both")
	case len(args) == 1:
		doc, _, err := state.ReadDocument(args[0])
		if err != nil {
			return err
		}
		before, after = current, doc
	case revision != 0:
		doc, err := revisionDocument(ws, revision)
		if err != nil {
			return err
		}
		before, after = doc, current
	default:
		return fmt.Errorf("requires a file or --revision")
	}

	before.InitializeOrders()
	after.InitializeOrders()

	diffs := state.DiffDocuments(before, after)
	if len(diffs) == 0 {
		fmt.Fprintln(w, "No changes")
		return nil
	}
	fmt.Fprintln(w, state.FormatDiff(diffs))
	return nil
}

func revisionDocument(ws *workspace, id int64) (*types.Document, error) {
	if ws.history == nil {
		return nil, fmt.Errorf("history is disabled")
	}
	rev, err := ws.history.Get(id)
	if err != nil {
		return nil, err
	}
	return state.ParseDocument(rev.Data)
}
