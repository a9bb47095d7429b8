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

	"github.com/focus-game-deck/fgd/secret"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Encrypt, decrypt or inspect stored secrets",
	Long: `Works with secrets sealed for the current user and machine. Values that
do not decrypt are reported as plaintext, which is how older configurations
stored them.`,
}

var secretEncryptCmd = &cobra.Command{
	Use:   "encrypt <plaintext>",
	Short: "Encrypt a value for storage",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeSecretEncrypt(cmd.OutOrStdout(), ws.codec, args[0])
		})
	},
}

var secretDecryptCmd = &cobra.Command{
	Use:   "decrypt <stored>",
	Short: "Decrypt a stored value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			fmt.Fprintln(cmd.OutOrStdout(), ws.codec.Decrypt(args[0]))
			return nil
		})
	},
}

var secretProbeCmd = &cobra.Command{
	Use:   "probe [stored]",
	Short: "Tell whether stored values are encrypted",
	Long: `Reports whether a value is encrypted or plaintext. Without an argument
the secrets in the configuration are checked.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, func(ws *workspace) error {
			return executeSecretProbe(cmd.OutOrStdout(), ws, args)
		})
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretEncryptCmd, secretDecryptCmd, secretProbeCmd)
}

func executeSecretEncrypt(w io.Writer, codec *secret.Codec, plaintext string) error {
	sealed := codec.Encrypt(plaintext)
	if sealed == "" && plaintext != "" {
		return fmt.Errorf("encryption failed")
	}
	fmt.Fprintln(w, sealed)
	return nil
}

func executeSecretProbe(w io.Writer, ws *workspace, args []string) error {
	if len(args) == 1 {
		fmt.Fprintln(w, ws.codec.Probe(args[0]).Kind)
		return nil
	}

	doc := ws.session.Document()
	stored := []struct {
		path  string
		value string
	}{
		{"integrations.obs.websocket.password", doc.OBSPassword()},
		{"integrations.vtubeStudio.authToken", doc.VTubeStudioAuthToken()},
	}
	for _, s := range stored {
		kind := "not set"
		if s.value != "" {
			kind = ws.codec.Probe(s.value).Kind.String()
		}
		fmt.Fprintf(w, "%-38s %s\n", s.path, kind)
	}
	return nil
}
