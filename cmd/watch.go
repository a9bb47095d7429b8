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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/state"
	"github.com/focus-game-deck/fgd/validation"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report external edits to the configuration file",
	Long: `Watches the configuration file and reports every change made by another
program, such as the launcher or a text editor, until interrupted.`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return executeWatch(ctx, cmd.OutOrStdout(), ws)
	})
}

func executeWatch(ctx context.Context, w io.Writer, ws *workspace) error {
	watcher, err := state.NewWatcher(ws.session.Path(), ws.log)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(w, "Watching %s (Ctrl+C to stop)\n", ws.session.Path())
	return watcher.Run(ctx, func(u state.Update) {
		printUpdate(w, u)
	})
}

func printUpdate(w io.Writer, u state.Update) {
	if u.Err != nil {
		fmt.Fprintf(w, "❌ %v\n", u.Err)
		return
	}
	fmt.Fprintf(w, "✓ reloaded: %d game(s), %d managed app(s)\n", u.Doc.Games.Len(), u.Doc.ManagedApps.Len())
	for _, fe := range validation.ValidateDocument(u.Doc) {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, say(fe.Message()))
	}
}
