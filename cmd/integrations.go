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
	"sort"

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/binding"
)

var globalFlags = []formFlag{
	{"language", binding.Language, stringFlag, "editor and launcher language"},
	{"obs-path", binding.OBSPath, stringFlag, "OBS executable"},
	{"obs-host", binding.OBSHost, stringFlag, "OBS websocket host"},
	{"obs-port", binding.OBSPort, stringFlag, "OBS websocket port"},
	{"obs-password", binding.OBSPassword, stringFlag, "OBS websocket password (empty clears it)"},
	{"obs-replay-buffer", binding.OBSReplayBufferEnabled, boolFlag, "enable the OBS replay buffer"},
	{"obs-start-action", binding.OBSStartAction, stringFlag, "OBS action when a game starts"},
	{"obs-end-action", binding.OBSEndAction, stringFlag, "OBS action when a game ends"},
	{"discord-path", binding.DiscordPath, stringFlag, "Discord executable"},
	{"discord-start-action", binding.DiscordStartAction, stringFlag, "Discord action when a game starts"},
	{"discord-end-action", binding.DiscordEndAction, stringFlag, "Discord action when a game ends"},
	{"discord-status-start", binding.DiscordStatusOnGameStart, stringFlag, "Discord status while playing"},
	{"discord-status-end", binding.DiscordStatusOnGameEnd, stringFlag, "Discord status after playing"},
	{"discord-disable-overlay", binding.DiscordDisableOverlay, boolFlag, "disable the Discord overlay while playing"},
	{"discord-rpc", binding.DiscordRPCEnabled, boolFlag, "enable Discord rich presence"},
	{"discord-rpc-app-id", binding.DiscordRPCApplicationID, stringFlag, "Discord rich presence application id"},
	{"vts-path", binding.VTSPath, stringFlag, "VTube Studio executable"},
	{"vts-start-action", binding.VTSStartAction, stringFlag, "VTube Studio action when a game starts"},
	{"vts-end-action", binding.VTSEndAction, stringFlag, "VTube Studio action when a game ends"},
	{"vts-host", binding.VTSHost, stringFlag, "VTube Studio websocket host"},
	{"vts-port", binding.VTSPort, stringFlag, "VTube Studio websocket port"},
	{"vts-websocket", binding.VTSEnabled, boolFlag, "enable the VTube Studio websocket"},
	{"vts-auth-token", binding.VTSAuthToken, stringFlag, "VTube Studio auth token (empty clears it)"},
	{"steam-path", binding.SteamPath, stringFlag, "Steam launcher"},
	{"epic-path", binding.EpicPath, stringFlag, "Epic launcher"},
	{"riot-path", binding.RiotPath, stringFlag, "Riot client"},
	{"obs-launcher-path", binding.OBSLauncherPath, stringFlag, "OBS launcher"},
	{"log-level", binding.LogLevel, stringFlag, "launcher log level"},
	{"log-retention-days", binding.LogRetentionDays, stringFlag, "days of launcher logs to keep"},
	{"notarization", binding.EnableNotarization, boolFlag, "enable log notarization"},
}

var secretFields = map[string]bool{
	binding.OBSPassword:  true,
	binding.VTSAuthToken: true,
}

var integrationsCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Show or change global settings",
	Long: `Shows or changes integration settings, launcher paths and logging.
Stored passwords and tokens are never printed.`,
}

var integrationsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show global settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeIntegrationsShow(cmd.OutOrStdout(), ws)
		})
	},
}

var integrationsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change global settings",
	Long: `Changes global settings. Only the flags given are changed. Sections are
created on first use. Secrets are encrypted before they are stored; an empty
--obs-password or --vts-auth-token removes the stored value.

Examples:
  fgd integrations set --obs-host localhost --obs-port 4455 --obs-password hunter2
  fgd integrations set --discord-rpc --discord-rpc-app-id 1234567890
  fgd integrations set --log-retention-days 30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			form, err := formFromFlags(cmd.Flags(), globalFlags)
			if err != nil {
				return err
			}
			return executeIntegrationsSet(cmd.OutOrStdout(), ws, form)
		})
	},
}

func init() {
	rootCmd.AddCommand(integrationsCmd)
	integrationsCmd.AddCommand(integrationsShowCmd, integrationsSetCmd)
	addFormFlags(integrationsSetCmd.Flags(), globalFlags)
}

func executeIntegrationsShow(w io.Writer, ws *workspace) error {
	form := binding.GlobalForm(ws.session.Document())

	keys := make([]string, 0, len(form.Values))
	for k := range form.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := form.Values[k]
		if secretFields[k] {
			v = "(not set)"
			if form.Tag(k) == binding.SavedTag {
				v = "(saved)"
			}
		}
		fmt.Fprintf(w, "%-26s %s\n", k, v)
	}
	return nil
}

func executeIntegrationsSet(w io.Writer, ws *workspace, form *binding.Form) error {
	if err := ws.writable(); err != nil {
		return err
	}
	if len(form.Values) == 0 && len(form.Lists) == 0 {
		return fmt.Errorf("nothing to change; see 'fgd integrations set --help'")
	}
	res := binding.SaveGlobalSettings(ws.session, form, ws.codec)
	if !res.Saved {
		return report(w, res)
	}
	if err := ws.save(); err != nil {
		return err
	}
	return report(w, res)
}
