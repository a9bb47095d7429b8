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

var gameFlags = []formFlag{
	{"name", binding.GameName, stringFlag, "display name"},
	{"platform", binding.Platform, stringFlag, "launcher platform (steam, epic, ea, riot, direct)"},
	{"steam-app-id", binding.SteamAppID, stringFlag, "Steam AppID"},
	{"epic-game-id", binding.EpicGameID, stringFlag, "Epic game id"},
	{"riot-game-id", binding.RiotGameID, stringFlag, "Riot game id"},
	{"executable", binding.ExecutablePath, stringFlag, "executable path for direct launch"},
	{"process", binding.GameProcessName, stringFlag, "process name pattern, e.g. r5apex*"},
	{"comment", binding.GameComment, stringFlag, "free-form comment"},
	{"apps", binding.AppsToManage, listFlag, "managed app ids to control"},
	{"obs", binding.UseOBS, boolFlag, "use OBS"},
	{"discord", binding.UseDiscord, boolFlag, "use Discord"},
	{"vtube-studio", binding.UseVTubeStudio, boolFlag, "use VTube Studio"},
	{"obs-replay-buffer", binding.OBSReplayBuffer, boolFlag, "start the OBS replay buffer"},
	{"obs-scene", binding.OBSTargetScene, stringFlag, "OBS scene to switch to"},
	{"obs-rollback", binding.OBSRollback, boolFlag, "restore the previous OBS scene on exit"},
	{"vts-model", binding.VTSModelID, stringFlag, "VTube Studio model id"},
	{"vts-launch-hotkeys", binding.VTSOnLaunchHotkeys, listFlag, "VTube Studio hotkeys on launch"},
	{"vts-exit-hotkeys", binding.VTSOnExitHotkeys, listFlag, "VTube Studio hotkeys on exit"},
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage games",
	Long:  `Lists, adds, edits, renames, reorders and deletes games.`,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games in display order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeGameList(cmd.OutOrStdout(), ws)
		})
	},
}

var gameAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add a game",
	Long: `Adds a game. Without an id a unique one is generated.

Examples:
  fgd game add fortnite --name Fortnite --platform epic --epic-game-id Fortnite
  fgd game add --name "My Game" --platform direct --executable 'C:\Games\game.exe'`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			form, err := formFromFlags(cmd.Flags(), gameFlags)
			if err != nil {
				return err
			}
			return executeGameAdd(cmd.OutOrStdout(), ws, firstArg(args), form)
		})
	},
}

var gameEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a game",
	Long: `Edits a game. Only the flags given are changed; an empty value clears
the field. Use --id to rename in the same step.

Examples:
  fgd game edit apex --obs=false
  fgd game edit apex --apps noWinKey,autoHotkey --comment ""`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			form, err := formFromFlags(cmd.Flags(), gameFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				newID, _ := cmd.Flags().GetString("id")
				form.Set(binding.GameID, newID)
			}
			return executeGameEdit(cmd.OutOrStdout(), ws, args[0], form)
		})
	},
}

var gameRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-id>",
	Short: "Rename a game, keeping its position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeGameRename(cmd.OutOrStdout(), ws, args[0], args[1])
		})
	},
}

var gameDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a game",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeGameDelete(cmd.OutOrStdout(), ws, args[0])
		})
	},
}

var gameMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a game to a zero-based position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeGameMove(cmd.OutOrStdout(), ws, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.AddCommand(gameListCmd, gameAddCmd, gameEditCmd, gameRenameCmd, gameDeleteCmd, gameMoveCmd)
	addFormFlags(gameAddCmd.Flags(), gameFlags)
	addFormFlags(gameEditCmd.Flags(), gameFlags)
	gameEditCmd.Flags().String("id", "", "new game id")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func executeGameList(w io.Writer, ws *workspace) error {
	games := &ws.session.Document().Games
	if games.Len() == 0 {
		fmt.Fprintln(w, "No games configured")
		return nil
	}
	fmt.Fprintf(w, "%-3s %-20s %-28s %-8s %s\n", "#", "ID", "NAME", "PLATFORM", "APPS")
	for i, id := range games.IDs() {
		g, _ := games.Get(id)
		fmt.Fprintf(w, "%-3d %-20s %-28s %-8s %d\n", i, id, g.Name, g.Platform, len(g.AppsToManage))
	}
	return nil
}

// executeGameAdd adds the game and saves it through the form. Nothing is
// written when the form is rejected.
func executeGameAdd(w io.Writer, ws *workspace, id string, form *binding.Form) error {
	if err := ws.writable(); err != nil {
		return err
	}
	newID, err := ws.session.AddGame(id, nil)
	if err != nil {
		return err
	}
	if !form.Has(binding.GameName) {
		form.Set(binding.GameName, newID)
	}
	res := binding.SaveGame(ws.session, form)
	if !res.Saved {
		return report(w, res)
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.GameAdded, res.ID)))
	return nil
}

func executeGameEdit(w io.Writer, ws *workspace, id string, form *binding.Form) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if !ws.session.SelectGame(id) {
		return messages.New(messages.GameNotFound, id)
	}
	res := binding.SaveGame(ws.session, form)
	if !res.Saved {
		return report(w, res)
	}
	if err := ws.save(); err != nil {
		return err
	}
	return report(w, res)
}

func executeGameRename(w io.Writer, ws *workspace, oldID, newID string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if err := ws.session.RenameGame(oldID, newID); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.GameRenamed, oldID, newID)))
	return nil
}

func executeGameDelete(w io.Writer, ws *workspace, id string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if err := ws.session.DeleteGame(id); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintln(w, say(messages.New(messages.GameDeleted, id)))
	return nil
}

func executeGameMove(w io.Writer, ws *workspace, id, position string) error {
	if err := ws.writable(); err != nil {
		return err
	}
	index, err := strconv.Atoi(position)
	if err != nil {
		return fmt.Errorf("invalid position %q", position)
	}
	if err := ws.session.MoveGame(id, index); err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Moved %s\n", id)
	return nil
}
