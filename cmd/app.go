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

	"github.com/focus-game-deck/fgd/binding"
	"github.com/focus-game-deck/fgd/messages"
)

var appFlags = []formFlag{
	{"name", binding.AppName, stringFlag, "display name"},
	{"comment", binding.AppComment, stringFlag, "free-form comment"},
	{"path", binding.AppPath, stringFlag, "executable path"},
	{"working-dir", binding.WorkingDirectory, stringFlag, "working directory"},
	{"process", binding.AppProcessName, stringFlag, "process names, '|' separated"},
	{"args", binding.Arguments, stringFlag, "launch arguments"},
	{"start-action", binding.GameStartAction, stringFlag, "action when a game starts"},
	{"end-action", binding.GameEndAction, stringFlag, "action when a game ends"},
	{"termination", binding.TerminationMethod, stringFlag, "termination method (auto, graceful, force)"},
	{"timeout", binding.GracefulTimeoutMs, stringFlag, "graceful termination timeout in ms"},
}

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage companion apps",
	Long: `Lists, adds, edits, renames, reorders and deletes managed apps.
Renaming or deleting an app updates every game that references it.`,
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List managed apps in display order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeAppList(cmd.OutOrStdout(), ws)
		})
	},
}

var appAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add a managed app",
	Long: `Adds a managed app. Without an id a unique one is generated.

Examples:
  fgd app add discord --path 'C:\Discord\Update.exe' --process Discord --start-action set-discord-gaming-mode`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			form, err := formFromFlags(cmd.Flags(), appFlags)
			if err != nil {
				return err
			}
			return executeAppAdd(cmd.OutOrStdout(), ws, firstArg(args), form)
		})
	},
}

var appEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a managed app",
	Long: `Edits a managed app. Only the flags given are changed; an empty value
clears the field. Use --id to rename in the same step.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			form, err := formFromFlags(cmd.Flags(), appFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				newID, _ := cmd.Flags().GetString("id")
				form.Set(binding.AppID, newID)
			}
			return executeAppEdit(cmd.OutOrStdout(), ws, args[0], form)
		})
	},
}

var appRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-id>",
	Short: "Rename a managed app and every reference to it",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeAppRename(cmd.OutOrStdout(), ws, args[0], args[1])
		})
	},
}

var appDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a managed app and every reference to it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeAppDelete(cmd.OutOrStdout(), ws, args[0])
		})
	},
}

var appMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a managed app to a zero-based position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeAppMove(cmd.OutOrStdout(), ws, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(appCmd)
	appCmd.AddCommand(appListCmd, appAddCmd, appEditCmd, appRenameCmd, appDeleteCmd, appMoveCmd)
	addFormFlags(appAddCmd.Flags(), appFlags)
	addFormFlags(appEditCmd.Flags(), appFlags)
	appEditCmd.Flags().String("id", "", "new app id")
}

func executeAppList(w io.Writer, ws *workspace) error {
	apps := &ws.session.Document().ManagedApps
	if apps.Len() == 0 {
		fmt.Fprintln(w, "No managed apps configured")
		return nil
	}
	fmt.Fprintf(w, "%-3s %-20s %-24s %-16s %s\n", "#", "ID", "NAME", "ON START", "ON END")
	for i, id := range apps.IDs() {
		a, _ := apps.Get(id)
		fmt.Fprintf(w, "%-3d %-20s %-24s %-16s %s\n", i, id, a.DisplayName(id), a.GameStartAction, a.GameEndAction)
	}
	return nil
}

func executeAppAdd(w io.Writer, ws *workspace, id string, form *binding.Form) error {
	if err := ws.writable(); err != nil {
		return err
	}
	newID, err := ws.session.AddApp(id, nil)
	if err != nil {
		return err
	}
	if !form.Has(binding.AppName) {
		form.Set(binding.AppName, newID)
	}
	res := binding.SaveApp(ws.session, form)
	if !res.Saved {
		return report(w, res)
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.AppAdded, res.ID)))
	return nil
}

func executeAppEdit(w io.Writer, ws *workspace, id string, form *binding.Form) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if !ws.session.SelectApp(id) {
		return messages.New(messages.AppNotFound, id)
	}
	res := binding.SaveApp(ws.session, form)
	if !res.Saved {
		return report(w, res)
	}
	if err := ws.save(); err != nil {
		return err
	}
	return report(w, res)
}

func executeAppRename(w io.Writer, ws *workspace, oldID, newID string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if err := ws.session.RenameApp(oldID, newID); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.AppRenamed, oldID, newID)))
	return nil
}

func executeAppDelete(w io.Writer, ws *workspace, id string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if err := ws.session.DeleteApp(id); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.AppDeleted, id)))
	return nil
}

func executeAppMove(w io.Writer, ws *workspace, id, position string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	index, err := strconv.Atoi(position)
	if err != nil {
		return fmt.Errorf("invalid position %q", position)
	}
	if err := ws.session.MoveApp(id, index); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Moved %s\n", id)
	return nil
}
