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
	"os"

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Checks the configuration file against the document schema and the
game and managed-app rules, including references to unknown apps.`,
	Args: cobra.NoArgs,
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	run(cmd, func(ws *workspace) error {
		return executeValidate(cmd.OutOrStdout(), ws)
	})
}

func executeValidate(w io.Writer, ws *workspace) error {
	path := ws.session.Path()
	fmt.Fprintf(w, "Validating %s...\n\n", path)

	if ws.loadIssue != nil {
		fmt.Fprintf(w, "❌ %s\n", say(ws.loadIssue))
		return fmt.Errorf("validation failed")
	}

	problems := 0

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	issues, err := validation.ValidateDocumentSchema(data)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintln(w, "✓ schema: valid")
	}
	for _, issue := range issues {
		fmt.Fprintf(w, "❌ schema: %s\n", issue)
		problems++
	}

	errs := validation.ValidateDocument(ws.session.Document())
	if len(errs) == 0 {
		fmt.Fprintln(w, "✓ games and managed apps: valid")
	}
	for _, fe := range errs {
		fmt.Fprintf(w, "❌ %s: %s\n", fe.Field, say(fe.Message()))
		problems++
	}

	fmt.Fprintln(w)
	if problems > 0 {
		fmt.Fprintf(w, "❌ Validation failed - %d problem(s) found\n", problems)
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintln(w, "✓ Configuration is valid")
	return nil
}
