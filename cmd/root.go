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

// Package cmd implements the fgd command line using cobra. Every editor
// operation is reachable from a verb: verbs collect flags into a form and
// hand it to the binding routines, so the CLI validates exactly like the GUI.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/focus-game-deck/fgd/config"
	"github.com/focus-game-deck/fgd/logger"
)

// Version is the application version string.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// settings is resolved once per invocation by setup.
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "fgd",
	Short: "fgd - Focus Game Deck configuration editor",
	Long: `fgd edits the Focus Game Deck configuration document.

Games, managed apps and integration settings are validated before they are
written. Every save keeps a backup of the previous file and records a
revision in the history database.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Close()
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("fgd v%s (built: %s)\n", Version, BuildTime))
	config.AddFlags(rootCmd.PersistentFlags())
}

// Execute runs the root command and handles any errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion updates the version and build time for display in help and version output.
func SetVersion(version, buildTime string) {
	Version = version
	BuildTime = buildTime
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("fgd v%s (built: %s)\n", version, buildTime))
}

// exitWithError is a helper function that exits with code 1.
// It can be overridden in tests to avoid actual exit.
var exitWithError = func() {
	os.Exit(1)
}

// setup resolves settings from defaults, FGD_* variables and flags, then
// starts the logger.
func setup(cmd *cobra.Command, args []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	s, err := config.Load(v)
	if err != nil {
		return err
	}
	settings = s
	return initLogger(cmd.ErrOrStderr(), s.Log)
}

func initLogger(stderr io.Writer, ls config.LogSettings) error {
	backends := []logger.Backend{logger.NewConsoleBackend(stderr, ls.Format)}
	if ls.File != "" {
		fb, err := logger.NewFileBackend(ls.File, ls.Format, logger.FileOptions{MaxBackups: 3, MaxAgeDays: 30})
		if err != nil {
			return err
		}
		backends = append(backends, fb)
	}
	logger.Init(logger.Config{Level: ls.Level, Format: ls.Format, Component: "fgd"}, backends)
	return nil
}
